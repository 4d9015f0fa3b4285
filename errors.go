package vpx

import "github.com/deepteams/vpx/internal/vpxerr"

// Errors returned by the decoder. Decode errors are wrapped with the frame
// and stage they occurred in; match them with errors.Is.
var (
	ErrTruncatedStream        = vpxerr.ErrTruncatedStream
	ErrInvalidHeader          = vpxerr.ErrInvalidHeader
	ErrCorruptBitstream       = vpxerr.ErrCorruptBitstream
	ErrUninitializedReference = vpxerr.ErrUninitializedReference
	ErrMissingKeyFrame        = vpxerr.ErrMissingKeyFrame
	ErrUnsupported            = vpxerr.ErrUnsupported
	ErrClosed                 = vpxerr.ErrClosed
)
