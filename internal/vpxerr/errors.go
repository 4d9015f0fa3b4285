// Package vpxerr defines the error taxonomy shared by every stage of the
// decoder. All decode-time errors are frame-local: the caller may drop the
// frame and feed the next one.
package vpxerr

import "errors"

var (
	// ErrTruncatedStream is returned when a header or partition declares
	// more bytes than the buffer holds.
	ErrTruncatedStream = errors.New("vpx: truncated stream")

	// ErrInvalidHeader is returned for malformed frame header syntax.
	ErrInvalidHeader = errors.New("vpx: invalid frame header")

	// ErrCorruptBitstream is returned when entropy decoding yields a symbol
	// outside its table.
	ErrCorruptBitstream = errors.New("vpx: corrupt bitstream")

	// ErrUninitializedReference is returned when an inter frame predicts
	// from a reference slot that was never populated.
	ErrUninitializedReference = errors.New("vpx: uninitialized reference")

	// ErrMissingKeyFrame is returned when the first frame after a reset is
	// not a key frame.
	ErrMissingKeyFrame = errors.New("vpx: missing key frame")

	// ErrUnsupported is returned for valid streams using features this
	// decoder does not implement.
	ErrUnsupported = errors.New("vpx: unsupported feature")

	// ErrClosed is returned by a decoder after Close.
	ErrClosed = errors.New("vpx: decoder closed")
)
