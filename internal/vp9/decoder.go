// Package vp9 decodes VP9 frames: superframe indices, the uncompressed and
// compressed headers, tile data and the probability contexts carried from
// frame to frame. Tile columns are decoded in parallel; the loop filter
// runs once the whole frame is reconstructed.
package vp9

import (
	"encoding/binary"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vpxerr"
)

// Config configures a Decoder.
type Config struct {
	Strict bool
	// Threads bounds the tile columns decoded at once; zero means one per
	// CPU.
	Threads int
	Logger  logrus.FieldLogger
}

type persistentState struct {
	contexts [NumFrameContexts]FrameContext
	// prev carries loop filter deltas, segmentation and colour config.
	prev    *FrameHeader
	sizes   [NumRefSlots]Size
	keySeen bool

	// State of the last decoded frame used by the next one. segMap and
	// mvs are replaced, never written in place, so a saved copy of the
	// state stays valid.
	segMap       []uint8
	mvs          []mvRef
	lastW, lastH int
	lastShow     bool
	lastKey      bool
}

// Decoder decodes a sequence of VP9 frames. It is not safe for concurrent
// use.
type Decoder struct {
	cfg    Config
	log    logrus.FieldLogger
	state  persistentState
	slots  *frame.SlotTable
	pool   *frame.Pool
	frames uint64
}

// NewDecoder returns a decoder awaiting a key frame.
func NewDecoder(cfg Config) *Decoder {
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.Logger = l
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	d := &Decoder{
		cfg:   cfg,
		log:   cfg.Logger.WithField("codec", "vp9"),
		slots: frame.NewSlotTable(NumRefSlots),
	}
	d.Reset()
	return d
}

// Reset drops every reference and all carried state.
func (d *Decoder) Reset() {
	d.slots.Clear()
	d.pool = nil
	d.state = persistentState{}
	for i := range d.state.contexts {
		d.state.contexts[i] = DefaultFrameContext()
	}
}

// Slots exposes the reference slot table.
func (d *Decoder) Slots() *frame.SlotTable { return d.slots }

// Context returns saved probability context i.
func (d *Decoder) Context(i int) FrameContext { return d.state.contexts[i] }

// Decode decodes one frame; superframes must be split first. A frame that
// shows an existing slot returns that slot's buffer with a reference owned
// by the caller. On error the decoder state is left as it was before the
// call.
func (d *Decoder) Decode(data []byte) (out *frame.Buffer, hdr *FrameHeader, err error) {
	var refs *[NumRefSlots]Size
	if d.state.keySeen {
		refs = &d.state.sizes
	}
	hdr, err = ParseUncompressedHeader(data, d.state.prev, refs, d.cfg.Strict)
	if err != nil {
		return nil, nil, err
	}
	if hdr.ShowExistingFrame {
		b, err := d.slots.Get(hdr.FrameToShow)
		if err != nil {
			return nil, hdr, errors.Wrap(err, "vp9: show existing frame")
		}
		return b.Retain(), hdr, nil
	}
	if hdr.Color.BitDepth != 8 {
		return nil, hdr, errors.Wrapf(vpxerr.ErrUnsupported, "vp9: %d-bit samples", hdr.Color.BitDepth)
	}
	if !hdr.Color.SubsamplingX || !hdr.Color.SubsamplingY {
		return nil, hdr, errors.Wrap(vpxerr.ErrUnsupported, "vp9: chroma subsampling other than 4:2:0")
	}

	id := d.frames
	logger := d.log.WithFields(logrus.Fields{
		"function": "vp9.Decoder.Decode",
		"frame":    id,
		"key":      hdr.KeyFrame,
	})
	saved := d.state
	defer func() {
		if err != nil {
			d.state = saved
			logger.WithError(err).Debug("frame dropped")
		}
	}()

	if hdr.resetsContext() {
		d.setupPastIndependence(hdr)
	}
	pre := d.state.contexts[hdr.FrameContextIdx]
	fc := pre
	start := hdr.UncompressedHeaderSize
	end := start + hdr.CompressedHeaderSize
	ch, err := ParseCompressedHeader(data[start:end], hdr, &fc)
	if err != nil {
		return nil, hdr, errors.Wrapf(err, "frame %d", id)
	}

	logger.WithFields(logrus.Fields{
		"width":      hdr.Width,
		"height":     hdr.Height,
		"q":          hdr.Quant.BaseQIdx,
		"filter":     hdr.LoopFilter.Level,
		"tx_mode":    ch.TxMode,
		"tile_cols":  1 << hdr.Tiles.Log2Cols,
		"tile_rows":  1 << hdr.Tiles.Log2Rows,
		"coef_delta": ch.CoefUpdates,
	}).Debug("headers parsed")

	tiles, err := SplitTiles(data[end:], hdr)
	if err != nil {
		return nil, hdr, errors.Wrapf(err, "frame %d", id)
	}
	if d.pool == nil || !d.pool.Matches(hdr.Width, hdr.Height) {
		d.pool = frame.NewPool(hdr.Width, hdr.Height, 64)
	}
	buf := d.pool.Get()
	defer func() {
		if err != nil {
			buf.Release()
		}
	}()

	f := newFrameDecoder(hdr, ch, &fc, buf)
	if err = d.setupReferences(f); err != nil {
		return nil, hdr, errors.Wrapf(err, "frame %d", id)
	}
	var counts FrameCounts
	if err = f.decodeTiles(tiles, d.cfg.Threads, &counts); err != nil {
		return nil, hdr, errors.Wrapf(err, "frame %d", id)
	}

	buf.Meta = frame.Meta{
		FrameID:      id,
		KeyFrame:     hdr.KeyFrame,
		Shown:        hdr.ShowFrame,
		ColorSpace:   hdr.Color.ColorSpace,
		FullRange:    hdr.Color.FullRange,
		BitDepth:     hdr.Color.BitDepth,
		SubsamplingX: 1,
		SubsamplingY: 1,
	}
	buf.SetState(frame.Published)
	d.commit(f, &pre, &counts)
	d.frames++
	return buf, hdr, nil
}

// setupPastIndependence resets the probability contexts for frames that
// may not depend on earlier frames. The frame then uses context 0.
func (d *Decoder) setupPastIndependence(h *FrameHeader) {
	switch {
	case h.KeyFrame || h.ErrorResilient || h.ResetFrameContext == 3:
		for i := range d.state.contexts {
			d.state.contexts[i] = DefaultFrameContext()
		}
	case h.ResetFrameContext == 2:
		d.state.contexts[h.FrameContextIdx] = DefaultFrameContext()
	}
	h.FrameContextIdx = 0
}

// setupReferences hands the frame decoder what it may take from earlier
// frames: the reference buffers of an inter frame, the previous segment
// map and the previous motion vectors.
func (d *Decoder) setupReferences(f *frameDecoder) error {
	h, st := f.h, &d.state
	if !h.IntraOnlyFrame() {
		for i, idx := range h.RefIdx {
			b, err := d.slots.Get(idx)
			if err != nil {
				return err
			}
			f.refs[i] = b
		}
	}

	sameSize := h.Width == st.lastW && h.Height == st.lastH
	if h.resetsContext() || !sameSize {
		st.segMap = nil
	}
	f.segPrev = st.segMap
	if !h.ErrorResilient && sameSize && st.lastShow {
		f.prevMVs = st.mvs
	}
	return nil
}

// commit applies the end-of-frame updates: backward adaptation, the
// context refresh, the reference slot refreshes and the state the next
// frame predicts from.
func (d *Decoder) commit(f *frameDecoder, pre *FrameContext, counts *FrameCounts) {
	h, fc, st := f.h, f.fc, &d.state
	if !h.ErrorResilient && !h.FrameParallel {
		*fc = Adapt(pre, fc, counts, AdaptParams{
			InterpFilter:         h.InterpFilter,
			TxMode:               f.ch.TxMode,
			AllowHighPrecisionMV: h.AllowHighPrecisionMV,
			IntraOnly:            h.IntraOnlyFrame(),
			LastKeyFrame:         st.lastKey,
		})
	}
	if h.RefreshFrameContext {
		st.contexts[h.FrameContextIdx] = *fc
	}
	for i := 0; i < NumRefSlots; i++ {
		if h.RefreshFrameFlags&(1<<i) != 0 {
			d.slots.Assign(i, f.out)
			st.sizes[i] = Size{Width: h.Width, Height: h.Height}
		}
	}
	if h.Seg.Enabled {
		st.segMap = f.segCur
	}
	st.mvs = f.curMVs
	st.lastW, st.lastH = h.Width, h.Height
	st.lastShow = h.ShowFrame
	st.lastKey = h.KeyFrame
	st.prev = h
	if h.IntraOnlyFrame() {
		st.keySeen = true
	}
}

// SplitTiles returns the tile payloads of a frame in raster order. Every
// tile but the last is preceded by its 4-byte big-endian size.
func SplitTiles(data []byte, h *FrameHeader) ([][]byte, error) {
	cols, rows := 1<<h.Tiles.Log2Cols, 1<<h.Tiles.Log2Rows
	tiles := make([][]byte, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r == rows-1 && c == cols-1 {
				if len(data) == 0 {
					return nil, errors.Wrap(vpxerr.ErrTruncatedStream, "vp9: missing tile data")
				}
				tiles = append(tiles, data)
				continue
			}
			if len(data) < 4 {
				return nil, errors.Wrapf(vpxerr.ErrTruncatedStream, "vp9: tile %d,%d size truncated", r, c)
			}
			size := int(binary.BigEndian.Uint32(data))
			data = data[4:]
			if size > len(data) {
				return nil, errors.Wrapf(vpxerr.ErrTruncatedStream,
					"vp9: tile %d,%d of %d bytes exceeds %d remaining bytes", r, c, size, len(data))
			}
			tiles = append(tiles, data[:size])
			data = data[size:]
		}
	}
	return tiles, nil
}
