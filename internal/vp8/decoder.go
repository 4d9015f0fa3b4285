// Package vp8 decodes VP8 frames: key and inter frames, segmentation,
// multiple token partitions, golden and altref references and the normal
// and simple loop filters.
package vp8

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/dsp"
	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vpxerr"
)

// Reference slots.
const (
	SlotLast = iota
	SlotGolden
	SlotAltRef
	NumSlots
)

// Config configures a Decoder.
type Config struct {
	// Strict rejects reserved header values instead of tolerating them.
	Strict bool
	// Threads bounds the number of goroutines reconstructing one frame.
	// Zero means runtime.NumCPU().
	Threads int
	Logger  logrus.FieldLogger
}

// persistentState is the decoder state carried from frame to frame.
type persistentState struct {
	Probs    probContext
	Seg      segmentation
	Filter   filterParams
	SignBias [numRefFrames]bool
	// ColorSpace is signalled on key frames only.
	ColorSpace int
}

// geometry holds everything sized by the frame dimensions.
type geometry struct {
	width, height int
	mbW, mbH      int
	pool          *frame.Pool
	mbs           []mbInfo
	segMap        []uint8
	nzTop         []tokenContext
}

func newGeometry(width, height int) *geometry {
	mbW, mbH := (width+15)>>4, (height+15)>>4
	return &geometry{
		width:  width,
		height: height,
		mbW:    mbW,
		mbH:    mbH,
		pool:   frame.NewPool(width, height, 16),
		mbs:    make([]mbInfo, mbW*mbH),
		segMap: make([]uint8, mbW*mbH),
		nzTop:  make([]tokenContext, mbW),
	}
}

// Decoder decodes a sequence of VP8 frames. It is not safe for concurrent
// use.
type Decoder struct {
	*geometry

	cfg Config
	log logrus.FieldLogger

	state      persistentState
	savedProbs probContext
	segBackup  []uint8
	slots      *frame.SlotTable
	frames     uint64

	first   bitio.BoolReader
	parts   [maxPartitions]bitio.BoolReader
	dqm     [numSegments]quantMatrix
	workers []*worker
}

// NewDecoder returns a decoder awaiting a key frame.
func NewDecoder(cfg Config) *Decoder {
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.Logger = l
	}
	return &Decoder{
		cfg:   cfg,
		log:   cfg.Logger.WithField("codec", "vp8"),
		slots: frame.NewSlotTable(NumSlots),
	}
}

// Reset drops every reference and all adapted state. The next frame must
// be a key frame.
func (d *Decoder) Reset() {
	d.slots.Clear()
	d.geometry = nil
	d.state = persistentState{}
}

// Slots exposes the reference slot table.
func (d *Decoder) Slots() *frame.SlotTable { return d.slots }

func (d *Decoder) resetForKeyFrame() {
	st := &d.state
	st.Probs = defaultProbContext()
	st.Seg.AbsDelta = false
	st.Seg.Quant = [numSegments]int8{}
	st.Seg.FilterLvl = [numSegments]int8{}
	st.Filter.RefDelta = [numRefLFDeltas]int8{}
	st.Filter.ModeDelta = [numModeLFDeltas]int8{}
	st.SignBias = [numRefFrames]bool{}
}

// Decode decodes one frame. The returned buffer is published, carries one
// reference owned by the caller and is also held by any reference slot the
// frame refreshed. On error every piece of decoder state is left as it was
// before the call. The header is nil only when the uncompressed prefix
// itself could not be parsed.
func (d *Decoder) Decode(data []byte) (out *frame.Buffer, hdr *FrameHeader, err error) {
	parsed, n, err := ParseFrameHeader(data, d.cfg.Strict)
	if err != nil {
		return nil, nil, err
	}
	hdr = &parsed
	if !hdr.KeyFrame && d.geometry == nil {
		return nil, hdr, errors.Wrap(vpxerr.ErrMissingKeyFrame, "vp8: inter frame without a key frame")
	}
	id := d.frames
	logger := d.log.WithFields(logrus.Fields{
		"function": "vp8.Decoder.Decode",
		"frame":    id,
		"key":      hdr.KeyFrame,
	})

	saved := d.state
	geo := d.geometry
	snap := d.slots.Snapshot()
	if geo != nil {
		d.segBackup = append(d.segBackup[:0], geo.segMap...)
	}
	defer func() {
		if err == nil {
			frame.ReleaseSnapshot(snap)
			return
		}
		if out != nil {
			out.Release()
			out = nil
		}
		d.state = saved
		d.geometry = geo
		if geo != nil {
			copy(geo.segMap, d.segBackup)
		}
		d.slots.Restore(snap)
		logger.WithError(err).Debug("frame dropped")
	}()

	if hdr.KeyFrame {
		d.resetForKeyFrame()
		if d.geometry == nil || d.width != hdr.Width || d.height != hdr.Height {
			d.geometry = newGeometry(hdr.Width, hdr.Height)
			logger.WithFields(logrus.Fields{"width": hdr.Width, "height": hdr.Height}).Debug("frame size set")
		}
	}

	fp := frameParams{FrameHeader: parsed}
	end := n + hdr.FirstPartSize
	d.first.Init(data[n:end])
	if err = d.parseHeader(&d.first, &fp, data[end:]); err != nil {
		return nil, hdr, errors.Wrapf(err, "frame %d", id)
	}
	if hdr.KeyFrame {
		d.state.ColorSpace = fp.ColorSpace
	}
	buildQuant(&fp.Quant, &d.state.Seg, &d.dqm)
	if err = d.parseModes(&d.first, &fp); err != nil {
		return nil, hdr, errors.Wrapf(err, "frame %d", id)
	}

	var refs [numRefFrames]*frame.Buffer
	if !hdr.KeyFrame {
		for r := refLast; r < numRefFrames; r++ {
			if refs[r], err = d.slots.Get(r - refLast); err != nil {
				return nil, hdr, errors.Wrapf(err, "frame %d", id)
			}
		}
	}

	out = d.pool.Get()
	// VP8 is always 8-bit 4:2:0 with studio range.
	out.Meta = frame.Meta{
		FrameID:      id,
		KeyFrame:     hdr.KeyFrame,
		Shown:        hdr.Show,
		ColorSpace:   d.state.ColorSpace,
		BitDepth:     8,
		SubsamplingX: 1,
		SubsamplingY: 1,
	}
	if err = d.decodeMacroblocks(&fp, out, refs); err != nil {
		return out, hdr, errors.Wrapf(err, "frame %d", id)
	}

	d.loopFilter(&fp, out)
	out.SetState(frame.Filtered)
	out.SetState(frame.Published)
	d.updateReferences(&fp, out)
	if !fp.RefreshEntropy {
		d.state.Probs = d.savedProbs
	}
	d.frames++

	logger.WithFields(logrus.Fields{
		"partitions": fp.Partitions,
		"q":          fp.Quant.BaseQ,
		"show":       hdr.Show,
	}).Debug("frame decoded")
	return out, hdr, nil
}

// updateReferences applies the buffer copies and refreshes signalled by
// the frame header. Copies happen before refreshes and the altref copy
// sees the golden buffer of the previous frame.
func (d *Decoder) updateReferences(fp *frameParams, out *frame.Buffer) {
	get := func(slot int) *frame.Buffer {
		b, _ := d.slots.Get(slot)
		return b
	}
	switch fp.CopyToAltRef {
	case 1:
		d.slots.Assign(SlotAltRef, get(SlotLast))
	case 2:
		d.slots.Assign(SlotAltRef, get(SlotGolden))
	}
	switch fp.CopyToGolden {
	case 1:
		d.slots.Assign(SlotGolden, get(SlotLast))
	case 2:
		d.slots.Assign(SlotGolden, get(SlotAltRef))
	}
	if fp.RefreshGolden {
		d.slots.Assign(SlotGolden, out)
	}
	if fp.RefreshAltRef {
		d.slots.Assign(SlotAltRef, out)
	}
	if fp.RefreshLast {
		d.slots.Assign(SlotLast, out)
	}
}

// rowProgress publishes how many macroblocks of each row are done so that
// a row can trail the one above it.
type rowProgress struct {
	mu    sync.Mutex
	cond  *sync.Cond
	done  []int
	abort atomic.Bool
}

func newRowProgress(rows int) *rowProgress {
	p := &rowProgress{done: make([]int, rows)}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// wait blocks until row has at least cols finished macroblocks. It returns
// false if the frame was abandoned.
func (p *rowProgress) wait(row, cols int) bool {
	if row < 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.done[row] < cols && !p.abort.Load() {
		p.cond.Wait()
	}
	return !p.abort.Load()
}

func (p *rowProgress) advance(row, cols int) {
	p.mu.Lock()
	p.done[row] = cols
	p.cond.Broadcast()
	p.mu.Unlock()
}

func (p *rowProgress) cancel() {
	p.abort.Store(true)
	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()
}

// decodeMacroblocks decodes tokens and reconstructs every macroblock.
// Rows of the same partition stay on one goroutine, and row r starts
// column x only once row r-1 has finished column x+1.
func (d *Decoder) decodeMacroblocks(fp *frameParams, out *frame.Buffer, refs [numRefFrames]*frame.Buffer) error {
	for i := range d.nzTop {
		d.nzTop[i] = tokenContext{}
	}

	nw := min(d.cfg.Threads, fp.Partitions)
	for len(d.workers) < nw {
		d.workers = append(d.workers, &worker{})
	}

	interp := dsp.InterpFunc(dsp.SixtapPredict)
	uvMask := int16(-1)
	switch fp.Version {
	case 1, 2:
		interp = dsp.BilinearPredict
	case 3:
		interp = dsp.BilinearPredict
		uvMask = ^int16(7)
	}

	progress := newRowProgress(d.mbH)
	var g errgroup.Group
	g.SetLimit(nw)
	for wi := 0; wi < nw; wi++ {
		w := d.workers[wi]
		w.d, w.out, w.refs, w.interp, w.uvMask = d, out, refs, interp, uvMask
		g.Go(func() error {
			for mbY := 0; mbY < d.mbH; mbY++ {
				part := mbY % fp.Partitions
				if part%nw != wi {
					continue
				}
				if err := w.decodeRow(fp, mbY, &d.parts[part], progress); err != nil {
					progress.cancel()
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// decodeRow decodes and reconstructs macroblock row mbY. It returns nil
// without finishing the row when another row failed.
func (w *worker) decodeRow(fp *frameParams, mbY int, br *bitio.BoolReader, progress *rowProgress) error {
	d := w.d
	w.left = tokenContext{}
	for mbX := 0; mbX < d.mbW; mbX++ {
		if !progress.wait(mbY-1, min(mbX+2, d.mbW)) {
			return nil
		}
		mb := &d.mbs[mbY*d.mbW+mbX]
		top := &d.nzTop[mbX]
		seg := 0
		if d.state.Seg.Enabled {
			seg = int(mb.Segment)
		}
		if mb.Skip {
			skipResiduals(top, &w.left, mb.hasY2(), &w.res)
		} else {
			parseResiduals(br, &d.state.Probs.Coeff, &d.dqm[seg], mb.hasY2(), top, &w.left, &w.res)
		}
		mb.Coded = w.res.Coded
		w.reconstruct(mbX, mbY, mb)
		progress.advance(mbY, mbX+1)
	}
	if br.EOF() {
		return errors.Wrapf(vpxerr.ErrTruncatedStream, "vp8: token partition exhausted at row %d", mbY)
	}
	return nil
}
