package bitio

import "math/bits"

// BoolWriter is the boolean encoder matching BoolReader. The decoders never
// write streams; tests and tools use it to build frames bit for bit.
type BoolWriter struct {
	low   uint32 // bottom of the coding interval, 24 live bits
	rng   uint32 // interval width, 128..255 between symbols
	count int    // shifts left before the next byte is due, starting at -24
	buf   []byte
}

// NewBoolWriter returns a writer whose buffer holds sizeHint bytes before
// growing.
func NewBoolWriter(sizeHint int) *BoolWriter {
	bw := &BoolWriter{}
	bw.Reset(sizeHint)
	return bw
}

// Reset empties the writer, reusing its buffer when it is large enough.
func (bw *BoolWriter) Reset(sizeHint int) {
	if cap(bw.buf) < sizeHint {
		bw.buf = make([]byte, 0, sizeHint)
	}
	bw.buf = bw.buf[:0]
	bw.low, bw.rng, bw.count = 0, 255, -24
}

// PutBit codes bit, which is zero with probability prob/256, and returns it.
func (bw *BoolWriter) PutBit(bit, prob int) int {
	split := 1 + (bw.rng-1)*uint32(prob)>>8
	rng := split
	if bit != 0 {
		bw.low += split
		rng = bw.rng - split
	}

	shift := bits.LeadingZeros8(uint8(rng))
	bw.rng = rng << shift
	count := bw.count + shift
	if count >= 0 {
		offset := shift - count
		if bw.low<<(offset-1)&0x80000000 != 0 {
			bw.carry()
		}
		bw.buf = append(bw.buf, byte(bw.low>>(24-offset)))
		bw.low = bw.low << offset & 0xffffff
		shift = count
		count -= 8
	}
	bw.low <<= shift
	bw.count = count
	return bit
}

// carry adds one to the bytes already written.
func (bw *BoolWriter) carry() {
	i := len(bw.buf) - 1
	for ; i >= 0 && bw.buf[i] == 0xff; i-- {
		bw.buf[i] = 0
	}
	if i >= 0 {
		bw.buf[i]++
	}
}

// PutBitUniform codes bit with probability one half.
func (bw *BoolWriter) PutBitUniform(bit int) int {
	return bw.PutBit(bit, 0x80)
}

// PutBits codes the low n bits of v, most significant first.
func (bw *BoolWriter) PutBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		bw.PutBitUniform(int(v >> uint(i) & 1))
	}
}

// PutSignedBits codes v the way BoolReader.GetOptionalSigned reads it: a
// presence flag, then the magnitude in n bits and a sign.
func (bw *BoolWriter) PutSignedBits(v, n int) {
	if v == 0 {
		bw.PutBitUniform(0)
		return
	}
	bw.PutBitUniform(1)
	sign := uint32(0)
	if v < 0 {
		v, sign = -v, 1
	}
	bw.PutBits(uint32(v)<<1|sign, n+1)
}

// Finish pads the stream so a reader sees every coded bit and returns the
// encoded bytes. The writer must be Reset before reuse.
func (bw *BoolWriter) Finish() []byte {
	for i := 0; i < 32; i++ {
		bw.PutBit(0, 0x80)
	}
	return bw.buf
}
