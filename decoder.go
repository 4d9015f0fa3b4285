package vpx

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vp8"
	"github.com/deepteams/vpx/internal/vp9"
)

// stage is the pipeline position of the frame being decoded. Block
// decoding and filtering run inside the codec packages, which advance the
// buffer's own state; the pipeline observes the result.
type stage int

const (
	stageAwaitingFrame stage = iota
	stageHeaderParsed
	stageBlocksDecoded
	stageFiltered
	stagePublished
)

func (s stage) String() string {
	switch s {
	case stageAwaitingFrame:
		return "awaiting frame"
	case stageHeaderParsed:
		return "header parsed"
	case stageBlocksDecoded:
		return "blocks decoded"
	case stageFiltered:
		return "filtered"
	case stagePublished:
		return "published"
	}
	return "unknown"
}

func stageOf(s frame.State) stage {
	switch s {
	case frame.Filtered:
		return stageFiltered
	case frame.Published:
		return stagePublished
	}
	return stageBlocksDecoded
}

// result is what a codec hands back for one frame.
type result struct {
	buf *frame.Buffer
	// decoded is false for frames that re-show a reference slot.
	decoded bool
	show    bool
}

// Decoder decodes a stream of one codec. Stats may be called from any
// goroutine; every other method must be called from one goroutine at a
// time.
type Decoder struct {
	cfg Config
	log logrus.FieldLogger

	vp8 *vp8.Decoder
	vp9 *vp9.Decoder

	out    frame.OutputQueue
	stage  stage
	frames uint64
	closed bool
	stats  counters
}

// NewDecoder returns a decoder awaiting a key frame.
func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ThreadCount == 0 {
		cfg.ThreadCount = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.Logger = l
	}
	d := &Decoder{
		cfg: cfg,
		log: cfg.Logger.WithField("codec", strings.ToLower(cfg.Codec.String())),
	}
	switch cfg.Codec {
	case CodecVP8:
		d.vp8 = vp8.NewDecoder(vp8.Config{
			Strict:  cfg.StrictHeaderValidation,
			Threads: cfg.ThreadCount,
			Logger:  cfg.Logger,
		})
	case CodecVP9:
		d.vp9 = vp9.NewDecoder(vp9.Config{
			Strict:  cfg.StrictHeaderValidation,
			Threads: cfg.ThreadCount,
			Logger:  cfg.Logger,
		})
	}
	return d, nil
}

// Codec returns the codec the decoder was configured for.
func (d *Decoder) Codec() Codec { return d.cfg.Codec }

// Decode decodes one coded frame, or for VP9 every frame of a superframe
// in order. Frames meant for display are queued for TakeOutput. A failed
// frame is dropped and leaves references and probability state as they
// were, so the caller may continue with the next frame; frames of a
// superframe after a failed one are dropped too.
func (d *Decoder) Decode(data []byte) error {
	if d.closed {
		return ErrClosed
	}
	d.stats.bytes.Add(uint64(len(data)))
	if d.cfg.Codec == CodecVP8 {
		return d.decodeFrame(data, d.decodeVP8)
	}

	frames, err := vp9.ParseSuperframeIndex(data)
	if err == nil && len(frames) == 0 {
		err = errors.Wrap(ErrTruncatedStream, "vp9: empty chunk")
	}
	if err != nil {
		id := d.frames
		d.frames++
		return d.drop(id, err)
	}
	for i, f := range frames {
		if err := d.decodeFrame(f, d.decodeVP9); err != nil {
			d.stats.dropped.Add(uint64(len(frames) - i - 1))
			return err
		}
	}
	return nil
}

func (d *Decoder) decodeFrame(data []byte, decode func([]byte) (result, error)) error {
	id := d.frames
	d.frames++
	d.stage = stageAwaitingFrame
	res, err := decode(data)
	if err != nil {
		return d.drop(id, err)
	}

	d.stage = stageOf(res.buf.State())
	if d.stage != stagePublished {
		err := errors.Errorf("vpx: codec returned a %s buffer", res.buf.State())
		res.buf.Release()
		return d.drop(id, err)
	}
	if res.decoded {
		d.stats.decoded.Inc()
		if res.buf.Meta.KeyFrame {
			d.stats.keys.Inc()
		}
	}
	if res.show {
		d.out.Push(res.buf)
		d.stats.shown.Inc()
	}
	d.log.WithFields(logrus.Fields{
		"function": "vpx.Decoder.Decode",
		"frame":    id,
		"picture":  res.buf.Meta.FrameID,
		"decoded":  res.decoded,
		"shown":    res.show,
		"queued":   d.out.Len(),
	}).Debug("frame published")
	res.buf.Release()
	d.stage = stageAwaitingFrame
	return nil
}

// drop records a failed frame and returns err wrapped with the frame
// number and the stage it reached.
func (d *Decoder) drop(id uint64, err error) error {
	reached := d.stage
	d.stage = stageAwaitingFrame
	d.stats.dropped.Inc()
	d.log.WithFields(logrus.Fields{
		"function": "vpx.Decoder.Decode",
		"frame":    id,
		"stage":    reached.String(),
	}).WithError(err).Warn("frame dropped")
	return errors.Wrapf(err, "vpx: frame %d (%s)", id, reached)
}

func (d *Decoder) decodeVP8(data []byte) (result, error) {
	out, hdr, err := d.vp8.Decode(data)
	if hdr != nil {
		d.stage = stageHeaderParsed
	}
	if err != nil {
		return result{}, err
	}
	return result{buf: out, decoded: true, show: hdr.Show}, nil
}

func (d *Decoder) decodeVP9(data []byte) (result, error) {
	out, hdr, err := d.vp9.Decode(data)
	if hdr != nil {
		d.stage = stageHeaderParsed
	}
	if err != nil {
		return result{}, err
	}
	if hdr.ShowExistingFrame {
		return result{buf: out, show: true}, nil
	}
	return result{buf: out, decoded: true, show: hdr.ShowFrame}, nil
}

// TakeOutput returns the oldest queued picture. The caller owns it and
// must Release it.
func (d *Decoder) TakeOutput() (*Picture, bool) {
	b, ok := d.out.Take()
	if !ok {
		return nil, false
	}
	return newPicture(b, d.cfg.Codec), true
}

// Reset clears every reference slot and all probability adaptation state.
// The next frame must be a key frame. Queued pictures are kept.
func (d *Decoder) Reset() {
	if d.closed {
		return
	}
	if d.vp8 != nil {
		d.vp8.Reset()
	}
	if d.vp9 != nil {
		d.vp9.Reset()
	}
	d.stage = stageAwaitingFrame
	d.log.WithField("function", "vpx.Decoder.Reset").Debug("decoder reset")
}

// Close releases the reference slots and every queued picture. Pictures
// already taken stay valid until released. Later calls return ErrClosed.
func (d *Decoder) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.Reset()
	d.out.Drain()
	d.closed = true
	return nil
}

// Stats returns a snapshot of the decoder's counters.
func (d *Decoder) Stats() Stats { return d.stats.snapshot() }
