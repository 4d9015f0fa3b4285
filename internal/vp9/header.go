package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/dsp"
	"github.com/deepteams/vpx/internal/vpxerr"
)

const (
	// NumRefSlots is the size of the reference buffer pool.
	NumRefSlots = 8
	// RefsPerFrame is the number of slots an inter frame predicts from.
	RefsPerFrame = 3

	NumFrameContexts = 4
	MaxSegments      = 8

	frameMarker   = 2
	maxLoopFilter = 63
	maxQ          = 255

	minTileWidthB64 = 4
	maxTileWidthB64 = 64
)

var syncCode = [3]byte{0x49, 0x83, 0x42}

// Colour spaces.
const (
	ColorSpaceUnknown = iota
	ColorSpaceBT601
	ColorSpaceBT709
	ColorSpaceSMPTE170
	ColorSpaceSMPTE240
	ColorSpaceBT2020
	ColorSpaceReserved
	ColorSpaceSRGB
)

// Reference frame indices used by sign bias and loop filter deltas.
const (
	IntraFrame = iota
	LastFrame
	GoldenFrame
	AltRefFrame
	numRefFrames
)

// InterpSwitchable marks a frame whose blocks signal their own filter.
const InterpSwitchable = dsp.NumInterpFilters

var literalToFilter = [4]int{
	dsp.FilterEightTapSmooth,
	dsp.FilterEightTap,
	dsp.FilterEightTapSharp,
	dsp.FilterBilinear,
}

// ColorConfig is the colour description of a key or intra-only frame.
type ColorConfig struct {
	BitDepth     int
	ColorSpace   int
	FullRange    bool
	SubsamplingX bool
	SubsamplingY bool
}

// LoopFilter holds the loop filter header. The deltas persist between
// frames.
type LoopFilter struct {
	Level        int
	Sharpness    int
	DeltaEnabled bool
	DeltaUpdate  bool
	RefDeltas    [numRefFrames]int8
	ModeDeltas   [2]int8
}

// Quantization holds the quantizer indices of a frame.
type Quantization struct {
	BaseQIdx   int
	DeltaQYDC  int
	DeltaQUVDC int
	DeltaQUVAC int
}

// Lossless reports whether the frame is coded with the lossless WHT.
func (q *Quantization) Lossless() bool {
	return q.BaseQIdx == 0 && q.DeltaQYDC == 0 && q.DeltaQUVDC == 0 && q.DeltaQUVAC == 0
}

// Segment features.
const (
	SegLvlAltQ = iota
	SegLvlAltLF
	SegLvlRefFrame
	SegLvlSkip
	SegLvlMax
)

var (
	segFeatureBits   = [SegLvlMax]int{8, 6, 2, 0}
	segFeatureSigned = [SegLvlMax]bool{true, true, false, false}
	segFeatureMax    = [SegLvlMax]int{maxQ, maxLoopFilter, 3, 0}
)

// Segmentation holds the segmentation header. Feature data and tree
// probabilities persist between frames.
type Segmentation struct {
	Enabled        bool
	UpdateMap      bool
	TemporalUpdate bool
	UpdateData     bool
	AbsDelta       bool
	TreeProbs      [MaxSegments - 1]uint8
	PredProbs      [3]uint8
	FeatureEnabled [MaxSegments][SegLvlMax]bool
	FeatureData    [MaxSegments][SegLvlMax]int16
}

// Active reports whether feature f is enabled for segment s.
func (s *Segmentation) Active(seg, f int) bool {
	return s.Enabled && s.FeatureEnabled[seg][f]
}

func (s *Segmentation) clearFeatures() {
	s.FeatureEnabled = [MaxSegments][SegLvlMax]bool{}
	s.FeatureData = [MaxSegments][SegLvlMax]int16{}
}

// TileInfo is the tile layout, in log2 units.
type TileInfo struct {
	Log2Cols int
	Log2Rows int
}

// Size is a frame size in pixels. The zero value marks an empty slot.
type Size struct {
	Width, Height int
}

// FrameHeader is a parsed VP9 uncompressed header.
type FrameHeader struct {
	Profile           int
	ShowExistingFrame bool
	FrameToShow       int

	KeyFrame          bool
	ShowFrame         bool
	ErrorResilient    bool
	IntraOnly         bool
	ResetFrameContext int

	Color                     ColorConfig
	Width, Height             int
	RenderWidth, RenderHeight int

	RefreshFrameFlags uint8
	RefIdx            [RefsPerFrame]int
	// SignBias is indexed by LastFrame..AltRefFrame.
	SignBias             [numRefFrames]bool
	AllowHighPrecisionMV bool
	InterpFilter         int

	RefreshFrameContext bool
	FrameParallel       bool
	FrameContextIdx     int

	LoopFilter LoopFilter
	Quant      Quantization
	Seg        Segmentation
	Tiles      TileInfo

	// Byte sizes of the two headers; tile data follows them.
	UncompressedHeaderSize int
	CompressedHeaderSize   int
}

// IntraOnlyFrame reports whether the frame predicts from no reference.
func (h *FrameHeader) IntraOnlyFrame() bool {
	return h.KeyFrame || h.IntraOnly
}

// resetsContext reports whether the frame starts from default state.
func (h *FrameHeader) resetsContext() bool {
	return h.IntraOnlyFrame() || h.ErrorResilient
}

// MiCols returns the frame width in 8x8 mode info units.
func (h *FrameHeader) MiCols() int { return (h.Width + 7) >> 3 }

// MiRows returns the frame height in 8x8 mode info units.
func (h *FrameHeader) MiRows() int { return (h.Height + 7) >> 3 }

func defaultLoopFilterDeltas(lf *LoopFilter) {
	lf.DeltaEnabled = true
	lf.DeltaUpdate = true
	lf.RefDeltas = [numRefFrames]int8{1, 0, -1, -1}
	lf.ModeDeltas = [2]int8{0, 0}
}

// headerReader wraps a BitReader and keeps the first error so that the
// field-by-field parsing stays linear.
type headerReader struct {
	r   *bitio.BitReader
	err error
}

func (hr *headerReader) bits(n int) int {
	if hr.err != nil {
		return 0
	}
	v, err := hr.r.ReadBits(n)
	hr.err = err
	return int(v)
}

func (hr *headerReader) flag() bool {
	return hr.bits(1) != 0
}

func (hr *headerReader) signed(n int) int {
	if hr.err != nil {
		return 0
	}
	v, err := hr.r.ReadSigned(n)
	hr.err = err
	return int(v)
}

func (hr *headerReader) deltaQ() int {
	if hr.flag() {
		return hr.signed(4)
	}
	return 0
}

// ParseUncompressedHeader parses the uncompressed header at the start of a
// frame. prev carries the state persisting from the previous frame (loop
// filter deltas, segmentation, colour config) and may be nil after a
// reset; refs are the sizes of the reference slots, nil before the first
// key frame. strict rejects non-zero padding after the header fields.
func ParseUncompressedHeader(data []byte, prev *FrameHeader, refs *[NumRefSlots]Size, strict bool) (*FrameHeader, error) {
	h := &FrameHeader{}
	if prev != nil {
		h.LoopFilter = prev.LoopFilter
		h.Seg = prev.Seg
		h.Color = prev.Color
	} else {
		defaultLoopFilterDeltas(&h.LoopFilter)
	}

	hr := &headerReader{r: bitio.NewBitReader(data)}
	if hr.bits(2) != frameMarker {
		if hr.err != nil {
			return nil, hr.err
		}
		return nil, errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: invalid frame marker")
	}
	low := hr.bits(1)
	high := hr.bits(1)
	h.Profile = high<<1 | low
	if h.Profile == 3 && hr.flag() {
		return nil, errors.Wrap(vpxerr.ErrUnsupported, "vp9: bitstream profile above 3")
	}

	h.ShowExistingFrame = hr.flag()
	if h.ShowExistingFrame {
		h.FrameToShow = hr.bits(3)
		if hr.err != nil {
			return nil, hr.err
		}
		h.ShowFrame = true
		h.LoopFilter.Level = 0
		h.UncompressedHeaderSize = hr.r.BytePosition()
		return h, nil
	}

	h.KeyFrame = !hr.flag()
	h.ShowFrame = hr.flag()
	h.ErrorResilient = hr.flag()
	if hr.err != nil {
		return nil, hr.err
	}

	if h.KeyFrame {
		if err := readSyncCode(hr); err != nil {
			return nil, err
		}
		if err := readColorConfig(hr, h); err != nil {
			return nil, err
		}
		h.RefreshFrameFlags = 0xff
		readFrameSize(hr, h)
		readRenderSize(hr, h)
	} else {
		if !h.ShowFrame {
			h.IntraOnly = hr.flag()
		}
		if !h.ErrorResilient {
			h.ResetFrameContext = hr.bits(2)
		}
		if h.IntraOnly {
			if err := readSyncCode(hr); err != nil {
				return nil, err
			}
			if h.Profile > 0 {
				if err := readColorConfig(hr, h); err != nil {
					return nil, err
				}
			} else {
				h.Color = ColorConfig{BitDepth: 8, ColorSpace: ColorSpaceBT601, SubsamplingX: true, SubsamplingY: true}
			}
			h.RefreshFrameFlags = uint8(hr.bits(8))
			readFrameSize(hr, h)
			readRenderSize(hr, h)
		} else {
			h.RefreshFrameFlags = uint8(hr.bits(8))
			for i := range h.RefIdx {
				h.RefIdx[i] = hr.bits(3)
				h.SignBias[LastFrame+i] = hr.flag()
			}
			if err := readFrameSizeWithRefs(hr, h, refs); err != nil {
				return nil, err
			}
			h.AllowHighPrecisionMV = hr.flag()
			if hr.flag() {
				h.InterpFilter = InterpSwitchable
			} else {
				h.InterpFilter = literalToFilter[hr.bits(2)]
			}
		}
	}
	if hr.err != nil {
		return nil, hr.err
	}
	if h.Width == 0 || h.Height == 0 {
		return nil, errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: zero frame size")
	}

	if !h.ErrorResilient {
		h.RefreshFrameContext = hr.flag()
		h.FrameParallel = hr.flag()
	} else {
		h.FrameParallel = true
	}
	h.FrameContextIdx = hr.bits(2)

	if h.resetsContext() {
		h.Seg.clearFeatures()
		h.Seg.AbsDelta = false
		defaultLoopFilterDeltas(&h.LoopFilter)
	}

	readLoopFilter(hr, &h.LoopFilter)
	readQuantization(hr, &h.Quant)
	readSegmentation(hr, &h.Seg)
	readTileInfo(hr, h)

	h.CompressedHeaderSize = hr.bits(16)
	if hr.err != nil {
		return nil, hr.err
	}
	if h.CompressedHeaderSize == 0 {
		return nil, errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: invalid compressed header size")
	}
	if pad, err := hr.r.ByteAlign(); err != nil {
		return nil, err
	} else if pad != 0 && strict {
		return nil, errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: non-zero trailing bits")
	}
	h.UncompressedHeaderSize = hr.r.BytePosition()
	if h.UncompressedHeaderSize+h.CompressedHeaderSize > len(data) {
		return nil, errors.Wrapf(vpxerr.ErrTruncatedStream,
			"vp9: compressed header of %d bytes exceeds %d remaining bytes",
			h.CompressedHeaderSize, len(data)-h.UncompressedHeaderSize)
	}
	return h, nil
}

func readSyncCode(hr *headerReader) error {
	for _, b := range syncCode {
		if v := hr.bits(8); hr.err == nil && v != int(b) {
			return errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: invalid frame sync code")
		}
	}
	return hr.err
}

func readColorConfig(hr *headerReader, h *FrameHeader) error {
	c := &h.Color
	c.BitDepth = 8
	if h.Profile >= 2 {
		c.BitDepth = 10
		if hr.flag() {
			c.BitDepth = 12
		}
	}
	c.ColorSpace = hr.bits(3)
	if c.ColorSpace != ColorSpaceSRGB {
		c.FullRange = hr.flag()
		if h.Profile == 1 || h.Profile == 3 {
			c.SubsamplingX = hr.flag()
			c.SubsamplingY = hr.flag()
			if c.SubsamplingX && c.SubsamplingY {
				return errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: 4:2:0 colour not allowed in profile 1 or 3")
			}
			if hr.flag() {
				return errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: reserved colour config bit set")
			}
		} else {
			c.SubsamplingX, c.SubsamplingY = true, true
		}
	} else {
		c.FullRange = true
		if h.Profile == 1 || h.Profile == 3 {
			c.SubsamplingX, c.SubsamplingY = false, false
			if hr.flag() {
				return errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: reserved colour config bit set")
			}
		} else {
			return errors.Wrap(vpxerr.ErrInvalidHeader, "vp9: 4:4:4 colour not allowed in profile 0 or 2")
		}
	}
	return hr.err
}

func readFrameSize(hr *headerReader, h *FrameHeader) {
	h.Width = hr.bits(16) + 1
	h.Height = hr.bits(16) + 1
}

func readRenderSize(hr *headerReader, h *FrameHeader) {
	h.RenderWidth, h.RenderHeight = h.Width, h.Height
	if hr.flag() {
		h.RenderWidth = hr.bits(16) + 1
		h.RenderHeight = hr.bits(16) + 1
	}
}

// readFrameSizeWithRefs reads the size of an inter frame, which may be
// copied from one of its references. Every reference must be populated and
// have the frame's size.
func readFrameSizeWithRefs(hr *headerReader, h *FrameHeader, refs *[NumRefSlots]Size) error {
	if refs == nil {
		return errors.Wrap(vpxerr.ErrMissingKeyFrame, "vp9: inter frame without a key frame")
	}
	var sizes [RefsPerFrame]Size
	for i, idx := range h.RefIdx {
		if refs[idx] == (Size{}) {
			return errors.Wrapf(vpxerr.ErrUninitializedReference, "vp9: reference %d uses empty slot %d", i, idx)
		}
		sizes[i] = refs[idx]
	}

	found := false
	for i := 0; i < RefsPerFrame && !found; i++ {
		if hr.flag() {
			h.Width, h.Height = sizes[i].Width, sizes[i].Height
			found = true
		}
	}
	if !found {
		readFrameSize(hr, h)
	}
	readRenderSize(hr, h)
	if hr.err != nil {
		return hr.err
	}

	for i, s := range sizes {
		if s.Width != h.Width || s.Height != h.Height {
			return errors.Wrapf(vpxerr.ErrInvalidHeader,
				"vp9: reference %d is %dx%d, scaled prediction to %dx%d is not supported",
				i, s.Width, s.Height, h.Width, h.Height)
		}
	}
	return nil
}

func readLoopFilter(hr *headerReader, lf *LoopFilter) {
	lf.Level = hr.bits(6)
	lf.Sharpness = hr.bits(3)
	lf.DeltaUpdate = false
	lf.DeltaEnabled = hr.flag()
	if !lf.DeltaEnabled {
		return
	}
	lf.DeltaUpdate = hr.flag()
	if !lf.DeltaUpdate {
		return
	}
	for i := range lf.RefDeltas {
		if hr.flag() {
			lf.RefDeltas[i] = int8(hr.signed(6))
		}
	}
	for i := range lf.ModeDeltas {
		if hr.flag() {
			lf.ModeDeltas[i] = int8(hr.signed(6))
		}
	}
}

func readQuantization(hr *headerReader, q *Quantization) {
	q.BaseQIdx = hr.bits(8)
	q.DeltaQYDC = hr.deltaQ()
	q.DeltaQUVDC = hr.deltaQ()
	q.DeltaQUVAC = hr.deltaQ()
}

func readProb(hr *headerReader) uint8 {
	if hr.flag() {
		return uint8(hr.bits(8))
	}
	return 255
}

func readSegmentation(hr *headerReader, s *Segmentation) {
	s.UpdateMap = false
	s.UpdateData = false
	s.Enabled = hr.flag()
	if !s.Enabled {
		return
	}

	s.UpdateMap = hr.flag()
	if s.UpdateMap {
		for i := range s.TreeProbs {
			s.TreeProbs[i] = readProb(hr)
		}
		s.TemporalUpdate = hr.flag()
		for i := range s.PredProbs {
			s.PredProbs[i] = 255
			if s.TemporalUpdate {
				s.PredProbs[i] = readProb(hr)
			}
		}
	}

	s.UpdateData = hr.flag()
	if !s.UpdateData {
		return
	}
	s.AbsDelta = hr.flag()
	s.clearFeatures()
	for seg := 0; seg < MaxSegments; seg++ {
		for f := 0; f < SegLvlMax; f++ {
			if !hr.flag() {
				continue
			}
			s.FeatureEnabled[seg][f] = true
			v := hr.bits(segFeatureBits[f])
			if segFeatureSigned[f] && hr.flag() {
				v = -v
			}
			s.FeatureData[seg][f] = int16(clamp(v, -segFeatureMax[f], segFeatureMax[f]))
		}
	}
}

// tileColsRange returns the minimum and maximum log2 tile column counts for
// a frame sb64Cols superblocks wide.
func tileColsRange(sb64Cols int) (minLog2, maxLog2 int) {
	for maxTileWidthB64<<minLog2 < sb64Cols {
		minLog2++
	}
	maxLog2 = 1
	for sb64Cols>>maxLog2 >= minTileWidthB64 {
		maxLog2++
	}
	return minLog2, maxLog2 - 1
}

func readTileInfo(hr *headerReader, h *FrameHeader) {
	sb64Cols := (h.MiCols() + 7) >> 3
	minLog2, maxLog2 := tileColsRange(sb64Cols)
	h.Tiles.Log2Cols = minLog2
	for ones := maxLog2 - minLog2; ones > 0 && hr.flag(); ones-- {
		h.Tiles.Log2Cols++
	}
	h.Tiles.Log2Rows = hr.bits(1)
	if h.Tiles.Log2Rows != 0 {
		h.Tiles.Log2Rows += hr.bits(1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
