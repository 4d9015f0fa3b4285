// Package container reads and writes IVF, the minimal container that carries
// raw VP8 and VP9 frames with their presentation timestamps.
package container

import "errors"

// FourCC creates a FourCC value from four bytes (little-endian).
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// FourCCString returns a human-readable string for a FourCC value.
func FourCCString(fourcc uint32) string {
	b := [4]byte{
		byte(fourcc),
		byte(fourcc >> 8),
		byte(fourcc >> 16),
		byte(fourcc >> 24),
	}
	return string(b[:])
}

// IVF FourCC values.
var (
	SignatureDKIF = FourCC('D', 'K', 'I', 'F')
	FourCCVP80    = FourCC('V', 'P', '8', '0')
	FourCCVP90    = FourCC('V', 'P', '9', '0')
)

// IVF layout constants.
const (
	FileHeaderSize  = 32 // DKIF file header
	FrameHeaderSize = 12 // frame size (4) + timestamp (8)
	MaxFrameSize    = 1 << 28
	Version         = 0
)

// Common errors.
var (
	ErrInvalidSignature = errors.New("ivf: invalid DKIF signature")
	ErrInvalidHeader    = errors.New("ivf: invalid file header")
	ErrTruncated        = errors.New("ivf: truncated data")
	ErrTooLarge         = errors.New("ivf: frame too large")
)
