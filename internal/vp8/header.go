package vp8

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/vpxerr"
)

const (
	numSegments      = 4
	numRefLFDeltas   = 4
	numModeLFDeltas  = 4
	maxPartitions    = 8
	segmentTreeProbs = 3
)

// FrameHeader is the uncompressed prefix of a VP8 frame: the 3-byte frame
// tag and, on key frames, the start code and dimensions.
type FrameHeader struct {
	KeyFrame      bool
	Version       int
	Show          bool
	FirstPartSize int

	// Key frames only.
	Width  int
	Height int
	XScale int
	YScale int
}

// ParseFrameHeader decodes the uncompressed frame prefix and returns it
// together with the number of bytes it occupies. Versions above 3 are
// rejected when strict is set.
func ParseFrameHeader(data []byte, strict bool) (FrameHeader, int, error) {
	var hdr FrameHeader
	if len(data) < 3 {
		return hdr, 0, errors.Wrap(vpxerr.ErrTruncatedStream, "vp8: frame tag")
	}
	bits := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	hdr.KeyFrame = bits&1 == 0
	hdr.Version = int(bits>>1) & 7
	hdr.Show = (bits>>4)&1 != 0
	hdr.FirstPartSize = int(bits >> 5)

	if hdr.Version > 3 && strict {
		return hdr, 0, errors.Wrapf(vpxerr.ErrInvalidHeader, "vp8: unsupported version %d", hdr.Version)
	}

	n := 3
	if hdr.KeyFrame {
		if len(data) < 10 {
			return hdr, 0, errors.Wrap(vpxerr.ErrTruncatedStream, "vp8: key frame header")
		}
		if data[3] != 0x9d || data[4] != 0x01 || data[5] != 0x2a {
			return hdr, 0, errors.Wrap(vpxerr.ErrInvalidHeader, "vp8: bad start code")
		}
		w := binary.LittleEndian.Uint16(data[6:8])
		h := binary.LittleEndian.Uint16(data[8:10])
		hdr.Width = int(w & 0x3fff)
		hdr.XScale = int(w >> 14)
		hdr.Height = int(h & 0x3fff)
		hdr.YScale = int(h >> 14)
		if hdr.Width == 0 || hdr.Height == 0 {
			return hdr, 0, errors.Wrap(vpxerr.ErrInvalidHeader, "vp8: zero dimensions")
		}
		n = 10
	}
	if hdr.FirstPartSize > len(data)-n {
		return hdr, 0, errors.Wrapf(vpxerr.ErrTruncatedStream,
			"vp8: first partition size %d exceeds %d remaining bytes", hdr.FirstPartSize, len(data)-n)
	}
	return hdr, n, nil
}

// segmentation is the segment state. Everything except Enabled and the
// per-frame map flags persists across frames.
type segmentation struct {
	Enabled    bool
	UpdateMap  bool
	UpdateData bool
	AbsDelta   bool
	Quant      [numSegments]int8
	FilterLvl  [numSegments]int8
	TreeProbs  [segmentTreeProbs]uint8
}

// filterParams carries the loop filter header. The deltas persist across
// frames and are reset on key frames.
type filterParams struct {
	Simple       bool
	Level        int
	Sharpness    int
	DeltaEnabled bool
	RefDelta     [numRefLFDeltas]int8
	ModeDelta    [numModeLFDeltas]int8
}

type quantParams struct {
	BaseQ int
	Y1DC  int
	Y2DC  int
	Y2AC  int
	UVDC  int
	UVAC  int
}

// probContext is the entropy state that persists between frames and is
// saved/restored around frames with refresh_entropy_probs unset.
type probContext struct {
	Coeff  tokenProbs
	YMode  [numYModes - 1]uint8
	UVMode [3]uint8
	MV     mvProbs
}

func defaultProbContext() probContext {
	return probContext{
		Coeff:  defaultCoeffProbs,
		YMode:  defaultYModeProbs,
		UVMode: defaultUVModeProbs,
		MV:     defaultMVProbs,
	}
}

// frameParams is the fully parsed header of the frame being decoded.
type frameParams struct {
	FrameHeader

	ColorSpace int
	ClampType  int

	Partitions int
	Quant      quantParams

	RefreshGolden  bool
	RefreshAltRef  bool
	CopyToGolden   int
	CopyToAltRef   int
	RefreshEntropy bool
	RefreshLast    bool

	SkipEnabled bool
	SkipProb    uint8
	ProbIntra   uint8
	ProbLast    uint8
	ProbGolden  uint8
}

// parseHeader reads the bool-coded part of the first partition up to the
// start of the per-macroblock modes. It mutates the decoder's persistent
// state; callers snapshot it beforehand.
func (d *Decoder) parseHeader(br *bitio.BoolReader, fp *frameParams, data []byte) error {
	st := &d.state
	if fp.KeyFrame {
		fp.ColorSpace = int(br.GetValue(1))
		fp.ClampType = int(br.GetValue(1))
		if fp.ColorSpace != 0 && d.cfg.Strict {
			return errors.Wrap(vpxerr.ErrInvalidHeader, "vp8: reserved color space")
		}
	}

	d.parseSegmentation(br)
	d.parseFilter(br)

	if err := d.parsePartitions(br, fp, data); err != nil {
		return err
	}

	q := &fp.Quant
	q.BaseQ = int(br.GetValue(7))
	q.Y1DC = int(br.GetOptionalSigned(4))
	q.Y2DC = int(br.GetOptionalSigned(4))
	q.Y2AC = int(br.GetOptionalSigned(4))
	q.UVDC = int(br.GetOptionalSigned(4))
	q.UVAC = int(br.GetOptionalSigned(4))

	if fp.KeyFrame {
		fp.RefreshGolden = true
		fp.RefreshAltRef = true
	} else {
		fp.RefreshGolden = br.GetFlag()
		fp.RefreshAltRef = br.GetFlag()
		if !fp.RefreshGolden {
			fp.CopyToGolden = int(br.GetValue(2))
		}
		if !fp.RefreshAltRef {
			fp.CopyToAltRef = int(br.GetValue(2))
		}
		st.SignBias[refGolden] = br.GetFlag()
		st.SignBias[refAltRef] = br.GetFlag()
	}

	fp.RefreshEntropy = br.GetFlag()
	if !fp.RefreshEntropy {
		d.savedProbs = st.Probs
	}
	fp.RefreshLast = fp.KeyFrame || br.GetFlag()

	coeff := &st.Probs.Coeff
	for t := range coeff {
		for b := range coeff[t] {
			for c := range coeff[t][b] {
				for p := range coeff[t][b][c] {
					if br.GetBit(coeffUpdateProbs[t][b][c][p]) != 0 {
						coeff[t][b][c][p] = uint8(br.GetValue(8))
					}
				}
			}
		}
	}

	fp.SkipEnabled = br.GetFlag()
	if fp.SkipEnabled {
		fp.SkipProb = uint8(br.GetValue(8))
	}

	if !fp.KeyFrame {
		fp.ProbIntra = uint8(br.GetValue(8))
		fp.ProbLast = uint8(br.GetValue(8))
		fp.ProbGolden = uint8(br.GetValue(8))
		if br.GetFlag() {
			for i := range st.Probs.YMode {
				st.Probs.YMode[i] = uint8(br.GetValue(8))
			}
		}
		if br.GetFlag() {
			for i := range st.Probs.UVMode {
				st.Probs.UVMode[i] = uint8(br.GetValue(8))
			}
		}
		readMVProbUpdates(br, &st.Probs.MV)
	}

	if br.EOF() {
		return errors.Wrap(vpxerr.ErrTruncatedStream, "vp8: frame header")
	}
	return nil
}

func (d *Decoder) parseSegmentation(br *bitio.BoolReader) {
	seg := &d.state.Seg
	seg.Enabled = br.GetFlag()
	seg.UpdateMap = false
	seg.UpdateData = false
	if !seg.Enabled {
		return
	}
	seg.UpdateMap = br.GetFlag()
	seg.UpdateData = br.GetFlag()
	if seg.UpdateData {
		seg.AbsDelta = br.GetFlag()
		for s := range seg.Quant {
			seg.Quant[s] = int8(br.GetOptionalSigned(7))
		}
		for s := range seg.FilterLvl {
			seg.FilterLvl[s] = int8(br.GetOptionalSigned(6))
		}
	}
	if seg.UpdateMap {
		for i := range seg.TreeProbs {
			seg.TreeProbs[i] = 255
			if br.GetFlag() {
				seg.TreeProbs[i] = uint8(br.GetValue(8))
			}
		}
	}
}

func (d *Decoder) parseFilter(br *bitio.BoolReader) {
	lf := &d.state.Filter
	lf.Simple = br.GetFlag()
	lf.Level = int(br.GetValue(6))
	lf.Sharpness = int(br.GetValue(3))
	lf.DeltaEnabled = br.GetFlag()
	if lf.DeltaEnabled && br.GetFlag() {
		for i := range lf.RefDelta {
			if br.GetFlag() {
				lf.RefDelta[i] = int8(br.GetSignedValue(6))
			}
		}
		for i := range lf.ModeDelta {
			if br.GetFlag() {
				lf.ModeDelta[i] = int8(br.GetSignedValue(6))
			}
		}
	}
}

// parsePartitions sets up the token partition readers. data starts right
// after the first partition.
func (d *Decoder) parsePartitions(br *bitio.BoolReader, fp *frameParams, data []byte) error {
	fp.Partitions = 1 << br.GetValue(2)
	last := fp.Partitions - 1
	if len(data) < 3*last {
		return errors.Wrap(vpxerr.ErrTruncatedStream, "vp8: partition sizes")
	}
	sizes := data[:3*last]
	rest := data[3*last:]
	for p := 0; p < last; p++ {
		size := int(sizes[3*p]) | int(sizes[3*p+1])<<8 | int(sizes[3*p+2])<<16
		if size > len(rest) {
			return errors.Wrapf(vpxerr.ErrTruncatedStream,
				"vp8: partition %d size %d exceeds %d remaining bytes", p, size, len(rest))
		}
		d.parts[p].Init(rest[:size])
		rest = rest[size:]
	}
	d.parts[last].Init(rest)
	return nil
}

// readMVProbUpdates applies the per-frame motion vector probability updates.
func readMVProbUpdates(br *bitio.BoolReader, mv *mvProbs) {
	for c := range mv {
		for i := range mv[c] {
			if br.GetBit(mvUpdateProbs[c][i]) != 0 {
				if x := uint8(br.GetValue(7)); x != 0 {
					mv[c][i] = x << 1
				} else {
					mv[c][i] = 1
				}
			}
		}
	}
}
