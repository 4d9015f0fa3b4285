// Package bitio provides the bit-level readers shared by the VP8 and VP9
// decoders: a fixed-width field reader for uncompressed headers and the
// boolean (arithmetic) decoder that every entropy-coded syntax element goes
// through. A matching boolean writer is kept for synthesizing streams.
package bitio

import "math/bits"

// lotsOfBits is added to the bit count once the input is exhausted, so the
// zero padding that follows never triggers another refill.
const lotsOfBits = 0x4000

// BoolReader is the boolean decoder of VP8 and VP9. The next input bits
// are kept left-aligned in a 64-bit window. Reading past the end of the
// data yields zero bits and sets EOF.
type BoolReader struct {
	value uint64
	count int    // valid bits in value below the top byte
	rng   uint32 // 128..255 between symbols
	buf   []byte
	eof   bool
}

// NewBoolReader returns a reader positioned at the start of data.
func NewBoolReader(data []byte) *BoolReader {
	br := &BoolReader{}
	br.Init(data)
	return br
}

// Init restarts br on data.
func (br *BoolReader) Init(data []byte) {
	br.value, br.count, br.rng = 0, -8, 255
	br.buf = data
	br.eof = false
	br.fill()
}

func (br *BoolReader) fill() {
	if len(br.buf) == 0 {
		br.eof = true
		br.count += lotsOfBits
		return
	}
	for shift := 48 - br.count; shift >= 0 && len(br.buf) > 0; shift -= 8 {
		br.value |= uint64(br.buf[0]) << uint(shift)
		br.buf = br.buf[1:]
		br.count += 8
	}
}

// GetBit decodes one symbol that is zero with probability prob/256.
func (br *BoolReader) GetBit(prob uint8) int {
	split := (br.rng*uint32(prob) + 256 - uint32(prob)) >> 8
	if br.count < 0 {
		br.fill()
	}
	rng, bit := split, 0
	if big := uint64(split) << 56; br.value >= big {
		rng = br.rng - split
		br.value -= big
		bit = 1
	}
	shift := bits.LeadingZeros8(uint8(rng))
	br.rng = rng << shift
	br.value <<= uint(shift)
	br.count -= shift
	return bit
}

// GetFlag decodes an even-odds symbol as a boolean.
func (br *BoolReader) GetFlag() bool {
	return br.GetBit(0x80) != 0
}

// GetSigned negates v when an even-odds sign bit is set.
func (br *BoolReader) GetSigned(v int) int {
	if br.GetBit(0x80) != 0 {
		return -v
	}
	return v
}

// GetValue reads an unsigned numBits literal, MSB first.
func (br *BoolReader) GetValue(numBits int) uint32 {
	var v uint32
	for i := numBits - 1; i >= 0; i-- {
		v |= uint32(br.GetBit(0x80)) << uint(i)
	}
	return v
}

// GetSignedValue reads a numBits magnitude followed by a sign bit.
func (br *BoolReader) GetSignedValue(numBits int) int32 {
	value := int32(br.GetValue(numBits))
	if br.GetBit(0x80) != 0 {
		return -value
	}
	return value
}

// GetOptionalSigned reads a presence flag and, when set, a signed value.
func (br *BoolReader) GetOptionalSigned(numBits int) int32 {
	if !br.GetFlag() {
		return 0
	}
	return br.GetSignedValue(numBits)
}

// EOF reports whether the reader has consumed padding past the buffer end.
func (br *BoolReader) EOF() bool {
	return br.eof
}

// Overread reports whether more bits were decoded than the data holds.
// Unlike EOF it ignores the lookahead of the bit window.
func (br *BoolReader) Overread() bool {
	if len(br.buf) != 0 {
		return false
	}
	if br.eof {
		return br.count < lotsOfBits
	}
	return br.count < 0
}
