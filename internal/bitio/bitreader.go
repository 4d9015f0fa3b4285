package bitio

import (
	"github.com/bluenviron/mediacommon/pkg/bits"
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/vpxerr"
)

// BitReader reads fixed-width, MSB-first fields from a byte buffer. It is
// used for the uncompressed parts of VP8 and VP9 frames, where the boolean
// decoder is not yet active.
type BitReader struct {
	buf []byte
	pos int // in bits
}

// NewBitReader returns a BitReader positioned at the first bit of buf.
func NewBitReader(buf []byte) *BitReader {
	return &BitReader{buf: buf}
}

// ReadBits returns the next n bits (n <= 32) as an unsigned integer. When
// fewer than n bits remain it fails with ErrTruncatedStream and the cursor
// does not move.
func (r *BitReader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	v, err := bits.ReadBits(r.buf, &r.pos, n)
	if err != nil {
		return 0, errors.Wrapf(vpxerr.ErrTruncatedStream, "reading %d bits at bit %d", n, r.pos)
	}
	return uint32(v), nil
}

// ReadFlag returns the next bit as a boolean.
func (r *BitReader) ReadFlag() (bool, error) {
	v, err := bits.ReadFlag(r.buf, &r.pos)
	if err != nil {
		return false, errors.Wrapf(vpxerr.ErrTruncatedStream, "reading flag at bit %d", r.pos)
	}
	return v, nil
}

// ReadSigned reads an n-bit magnitude followed by a sign bit.
func (r *BitReader) ReadSigned(n int) (int32, error) {
	if err := bits.HasSpace(r.buf, r.pos, n+1); err != nil {
		return 0, errors.Wrapf(vpxerr.ErrTruncatedStream, "reading signed %d bits at bit %d", n, r.pos)
	}
	v := int32(bits.ReadBitsUnsafe(r.buf, &r.pos, n))
	if bits.ReadFlagUnsafe(r.buf, &r.pos) {
		v = -v
	}
	return v, nil
}

// Skip advances the cursor by n bits.
func (r *BitReader) Skip(n int) error {
	if err := bits.HasSpace(r.buf, r.pos, n); err != nil {
		return errors.Wrapf(vpxerr.ErrTruncatedStream, "skipping %d bits at bit %d", n, r.pos)
	}
	r.pos += n
	return nil
}

// ByteAlign moves the cursor to the next byte boundary and returns the
// padding bits that were skipped.
func (r *BitReader) ByteAlign() (uint32, error) {
	pad := (8 - r.pos&7) & 7
	return r.ReadBits(pad)
}

// Position returns the cursor position in bits.
func (r *BitReader) Position() int { return r.pos }

// BytePosition returns the number of whole or partial bytes consumed.
func (r *BitReader) BytePosition() int { return (r.pos + 7) >> 3 }

// Remaining returns the number of unread bits.
func (r *BitReader) Remaining() int { return len(r.buf)*8 - r.pos }
