package vpx

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Codec selects the bitstream format a Decoder accepts.
type Codec int

const (
	CodecVP8 Codec = iota + 1
	CodecVP9
)

func (c Codec) String() string {
	switch c {
	case CodecVP8:
		return "VP8"
	case CodecVP9:
		return "VP9"
	}
	return "unknown"
}

// ParseCodec accepts a codec name ("vp8", "vp9") or an IVF FourCC ("VP80",
// "VP90"), case-insensitively.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(s) {
	case "vp8", "vp80":
		return CodecVP8, nil
	case "vp9", "vp90":
		return CodecVP9, nil
	}
	return 0, errors.Errorf("vpx: unknown codec %q", s)
}

// maxThreadCount bounds Config.ThreadCount.
const maxThreadCount = 256

// Config configures a Decoder.
type Config struct {
	Codec Codec

	// StrictHeaderValidation rejects reserved header values and non-zero
	// padding bits instead of tolerating them.
	StrictHeaderValidation bool

	// ThreadCount bounds the goroutines reconstructing one frame. Zero
	// means runtime.NumCPU().
	ThreadCount int

	// Logger receives per-frame events. Nil means a logrus logger at Warn
	// level.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the configuration for decoding codec with one
// goroutine per CPU and lax header validation.
func DefaultConfig(codec Codec) Config {
	return Config{Codec: codec}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var err error
	if c.Codec != CodecVP8 && c.Codec != CodecVP9 {
		err = multierr.Append(err, errors.Errorf("vpx: unknown codec %d", int(c.Codec)))
	}
	if c.ThreadCount < 0 {
		err = multierr.Append(err, errors.Errorf("vpx: negative thread count %d", c.ThreadCount))
	}
	if c.ThreadCount > maxThreadCount {
		err = multierr.Append(err, errors.Errorf("vpx: thread count %d exceeds %d", c.ThreadCount, maxThreadCount))
	}
	return err
}
