package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/entropy"
	"github.com/deepteams/vpx/internal/vpxerr"
)

var segmentTree = entropy.Tree{2, 4, 6, 8, 10, 12, -0, -1, -2, -3, -4, -5, -6, -7}

// readModeInfo reads the mode info of t.b, which covers xMis by yMis 8x8
// units inside the frame, and records its motion for the next frame.
func (t *tileDecoder) readModeInfo(xMis, yMis int) error {
	f, b := t.f, t.b
	b.Ref = [2]int8{IntraFrame, noneFrame}
	var err error
	if f.h.IntraOnlyFrame() {
		err = t.readIntraFrameModeInfo(xMis, yMis)
	} else {
		err = t.readInterFrameModeInfo(xMis, yMis)
	}
	if err != nil {
		return err
	}
	ref := mvRef{Ref: b.Ref, MV: b.MV}
	idx := t.miRow*f.miCols + t.miCol
	for y := 0; y < yMis; y++ {
		row := f.curMVs[idx+y*f.miCols:]
		for x := 0; x < xMis; x++ {
			row[x] = ref
		}
	}
	return nil
}

func (t *tileDecoder) readIntraFrameModeInfo(xMis, yMis int) error {
	b := t.b
	seg, err := t.readSegmentID(xMis, yMis, false)
	if err != nil {
		return err
	}
	b.Segment = uint8(seg)
	b.Skip = t.readSkip()
	b.TxSize = t.readTxSize(true)
	b.Filter = numSwitchableFilter

	err = t.readIntraModes(func(i int) (uint8, error) {
		m, err := entropy.ReadTree(&t.br, intraModeTree, kfYModeProbs[t.aboveMode(i)][t.leftMode(i)][:])
		return uint8(m), err
	})
	if err != nil {
		return err
	}
	uv, err := entropy.ReadTree(&t.br, intraModeTree, kfUVModeProbs[b.Mode][:])
	b.UVMode = uint8(uv)
	return err
}

func (t *tileDecoder) readInterFrameModeInfo(xMis, yMis int) error {
	b := t.b
	seg, err := t.readSegmentID(xMis, yMis, true)
	if err != nil {
		return err
	}
	b.Segment = uint8(seg)
	b.Skip = t.readSkip()
	inter := t.readIsInter()
	b.TxSize = t.readTxSize(!b.Skip || !inter)
	if inter {
		return t.readInterBlock()
	}
	return t.readIntraBlock()
}

// readIntraModes reads the luma modes of a block with next, once for a
// block of 8x8 or more and once per distinct sub-block otherwise.
func (t *tileDecoder) readIntraModes(next func(i int) (uint8, error)) error {
	b := t.b
	if b.Size >= block8x8 {
		m, err := next(0)
		b.Mode = m
		return err
	}
	w4, h4 := 1<<blockWidthLog2[b.Size], 1<<blockHeightLog2[b.Size]
	for y := 0; y < 2; y += h4 {
		for x := 0; x < 2; x += w4 {
			i := y*2 + x
			m, err := next(i)
			if err != nil {
				return err
			}
			b.SubModes[i] = m
			if h4 == 2 {
				b.SubModes[i+2] = m
			}
			if w4 == 2 {
				b.SubModes[i+1] = m
			}
		}
	}
	b.Mode = b.SubModes[3]
	return nil
}

// aboveMode returns the luma mode above sub-block i, DC when the
// neighbour is missing or inter coded.
func (t *tileDecoder) aboveMode(i int) uint8 {
	if i >= 2 {
		return t.b.SubModes[i-2]
	}
	if t.above == nil || t.above.isInter() {
		return ModeDC
	}
	return t.above.subMode(i + 2)
}

func (t *tileDecoder) leftMode(i int) uint8 {
	if i&1 == 1 {
		return t.b.SubModes[i-1]
	}
	if t.left == nil || t.left.isInter() {
		return ModeDC
	}
	return t.left.subMode(i + 1)
}

// readSegmentID returns the segment of the block and records it in the
// current segmentation map.
func (t *tileDecoder) readSegmentID(xMis, yMis int, inter bool) (int, error) {
	s := &t.f.h.Seg
	if !s.Enabled {
		return 0, nil
	}
	pred := 0
	if inter {
		pred = t.predictedSegment(xMis, yMis)
	}
	if !s.UpdateMap {
		t.copySegments(xMis, yMis)
		return pred, nil
	}
	var id int
	var err error
	if inter && s.TemporalUpdate {
		ctx := t.segPredContext()
		t.b.SegPred = t.br.GetBit(s.PredProbs[ctx]) == 1
		if t.b.SegPred {
			id = pred
		} else {
			id, err = entropy.ReadTree(&t.br, segmentTree, s.TreeProbs[:])
		}
	} else {
		id, err = entropy.ReadTree(&t.br, segmentTree, s.TreeProbs[:])
	}
	if err != nil {
		return 0, err
	}
	t.setSegments(id, xMis, yMis)
	return id, nil
}

// predictedSegment returns the lowest segment of the previous map under
// the block.
func (t *tileDecoder) predictedSegment(xMis, yMis int) int {
	f := t.f
	if f.segPrev == nil {
		return 0
	}
	idx := t.miRow*f.miCols + t.miCol
	id := MaxSegments
	for y := 0; y < yMis; y++ {
		for x := 0; x < xMis; x++ {
			id = min(id, int(f.segPrev[idx+y*f.miCols+x]))
		}
	}
	return id
}

func (t *tileDecoder) copySegments(xMis, yMis int) {
	f := t.f
	idx := t.miRow*f.miCols + t.miCol
	for y := 0; y < yMis; y++ {
		o := idx + y*f.miCols
		if f.segPrev == nil {
			clear(f.segCur[o : o+xMis])
		} else {
			copy(f.segCur[o:o+xMis], f.segPrev[o:o+xMis])
		}
	}
}

func (t *tileDecoder) setSegments(id, xMis, yMis int) {
	f := t.f
	idx := t.miRow*f.miCols + t.miCol
	for y := 0; y < yMis; y++ {
		row := f.segCur[idx+y*f.miCols:]
		for x := 0; x < xMis; x++ {
			row[x] = uint8(id)
		}
	}
}

func (t *tileDecoder) readSkip() bool {
	if t.f.h.Seg.Active(int(t.b.Segment), SegLvlSkip) {
		return true
	}
	ctx := t.skipContext()
	return entropy.ReadBoolCounted(&t.br, t.f.fc.Skip[ctx], &t.counts.Skip[ctx]) == 1
}

func (t *tileDecoder) readTxSize(allowSelect bool) uint8 {
	b, f := t.b, t.f
	maxTx := maxTxSize[b.Size]
	if !allowSelect || f.ch.TxMode != TxModeSelect || b.Size < block8x8 {
		return uint8(min(maxTx, min(f.ch.TxMode, Tx32x32)))
	}
	ctx := t.txSizeContext(maxTx)
	p := &f.fc.Tx
	var probs []uint8
	switch maxTx {
	case Tx8x8:
		probs = p.P8x8[ctx][:]
	case Tx16x16:
		probs = p.P16x16[ctx][:]
	default:
		probs = p.P32x32[ctx][:]
	}
	tx := t.br.GetBit(probs[0])
	if tx != Tx4x4 && maxTx >= Tx16x16 {
		tx += t.br.GetBit(probs[1])
		if tx != Tx8x8 && maxTx >= Tx32x32 {
			tx += t.br.GetBit(probs[2])
		}
	}
	switch maxTx {
	case Tx8x8:
		t.counts.Tx8x8[ctx][tx]++
	case Tx16x16:
		t.counts.Tx16x16[ctx][tx]++
	default:
		t.counts.Tx32x32[ctx][tx]++
	}
	return uint8(tx)
}

func (t *tileDecoder) readIsInter() bool {
	s := &t.f.h.Seg
	seg := int(t.b.Segment)
	if s.Active(seg, SegLvlRefFrame) {
		return s.FeatureData[seg][SegLvlRefFrame] != IntraFrame
	}
	ctx := t.intraInterContext()
	return entropy.ReadBoolCounted(&t.br, t.f.fc.IntraInter[ctx], &t.counts.IntraInter[ctx]) == 1
}

// readIntraBlock reads the modes of an intra block in an inter frame.
func (t *tileDecoder) readIntraBlock() error {
	b, fc := t.b, t.f.fc
	group := sizeGroup[b.Size]
	err := t.readIntraModes(func(int) (uint8, error) {
		m, err := entropy.ReadCounted(&t.br, intraModeTree, fc.YMode[group][:], t.counts.YMode[group][:])
		return uint8(m), err
	})
	if err != nil {
		return err
	}
	uv, err := entropy.ReadCounted(&t.br, intraModeTree, fc.UVMode[b.Mode][:], t.counts.UVMode[b.Mode][:])
	b.UVMode = uint8(uv)
	b.Filter = numSwitchableFilter
	return err
}

func (t *tileDecoder) readRefFrames() {
	b, f := t.b, t.f
	s := &f.h.Seg
	seg := int(b.Segment)
	if s.Active(seg, SegLvlRefFrame) {
		b.Ref = [2]int8{int8(s.FeatureData[seg][SegLvlRefFrame]), noneFrame}
		return
	}
	mode := f.ch.ReferenceMode
	if mode == ReferenceModeSelect {
		ctx := t.compInterContext()
		mode = entropy.ReadBoolCounted(&t.br, f.fc.CompInter[ctx], &t.counts.CompInter[ctx])
	}
	if mode == CompoundReference {
		idx := b2i(f.h.SignBias[f.ch.CompFixedRef])
		ctx := t.compRefContext()
		bit := entropy.ReadBoolCounted(&t.br, f.fc.CompRef[ctx], &t.counts.CompRef[ctx])
		b.Ref[idx] = int8(f.ch.CompFixedRef)
		b.Ref[1-idx] = int8(f.ch.CompVarRef[bit])
		return
	}
	ctx := t.singleRefContext1()
	if entropy.ReadBoolCounted(&t.br, f.fc.SingleRef[ctx][0], &t.counts.SingleRef[ctx][0]) == 0 {
		b.Ref = [2]int8{LastFrame, noneFrame}
		return
	}
	ctx = t.singleRefContext2()
	ref := int8(GoldenFrame)
	if entropy.ReadBoolCounted(&t.br, f.fc.SingleRef[ctx][1], &t.counts.SingleRef[ctx][1]) == 1 {
		ref = AltRefFrame
	}
	b.Ref = [2]int8{ref, noneFrame}
}

func (t *tileDecoder) readInterMode(ctx int) (uint8, error) {
	m, err := entropy.ReadCounted(&t.br, interModeTree, t.f.fc.InterMode[ctx][:], t.counts.InterMode[ctx][:])
	return uint8(modeNearest + m), err
}

// readInterBlock reads the references, modes, filter and motion vectors of
// an inter block.
func (t *tileDecoder) readInterBlock() error {
	f, b := t.f, t.b
	t.readRefFrames()
	refs := 1 + b2i(b.compound())

	var lists [2][2]motionVector
	ctx := 0
	for r := 0; r < refs; r++ {
		lists[r], ctx = t.findMVRefs(b.Ref[r], -1)
	}

	var err error
	switch {
	case f.h.Seg.Active(int(b.Segment), SegLvlSkip):
		b.Mode = modeZero
		if b.Size < block8x8 {
			return errors.Wrap(vpxerr.ErrCorruptBitstream, "vp9: segment skip on a block below 8x8")
		}
	case b.Size >= block8x8:
		if b.Mode, err = t.readInterMode(ctx); err != nil {
			return err
		}
	}

	var nearest, near [2]motionVector
	if b.Size < block8x8 || b.Mode != modeZero {
		for r := 0; r < refs; r++ {
			nearest[r], near[r] = t.bestRefMVs(lists[r])
		}
	}

	if f.h.InterpFilter == InterpSwitchable {
		fctx := t.switchableContext()
		ft, err := entropy.ReadCounted(&t.br, switchableTree, f.fc.SwitchableInterp[fctx][:], t.counts.SwitchableInterp[fctx][:])
		if err != nil {
			return err
		}
		b.Filter = uint8(ft)
	} else {
		b.Filter = uint8(f.h.InterpFilter)
	}

	if b.Size < block8x8 {
		return t.readSubBlockMVs(nearest, ctx)
	}
	return t.assignMV(int(b.Mode), &b.MV, nearest, nearest, near)
}

// readSubBlockMVs reads the mode and motion of each distinct sub-block of
// a block below 8x8. best holds the block level nearest vectors that new
// vectors are coded against.
func (t *tileDecoder) readSubBlockMVs(best [2]motionVector, ctx int) error {
	b := t.b
	refs := 1 + b2i(b.compound())
	w4, h4 := 1<<blockWidthLog2[b.Size], 1<<blockHeightLog2[b.Size]
	var nearest, near [2]motionVector
	var mode uint8
	for y := 0; y < 2; y += h4 {
		for x := 0; x < 2; x += w4 {
			i := y*2 + x
			var err error
			if mode, err = t.readInterMode(ctx); err != nil {
				return err
			}
			if mode == modeNearest || mode == modeNear {
				for r := 0; r < refs; r++ {
					nearest[r], near[r] = t.appendSub8x8(i, r)
				}
			}
			var mv [2]motionVector
			if err := t.assignMV(int(mode), &mv, best, nearest, near); err != nil {
				return err
			}
			b.SubMVs[i] = mv
			if h4 == 2 {
				b.SubMVs[i+2] = mv
			}
			if w4 == 2 {
				b.SubMVs[i+1] = mv
			}
		}
	}
	b.Mode = mode
	b.MV = b.SubMVs[3]
	return nil
}

func (t *tileDecoder) assignMV(mode int, mv *[2]motionVector, ref, nearest, near [2]motionVector) error {
	for r := 0; r < 1+b2i(t.b.compound()); r++ {
		switch mode {
		case modeNew:
			v, err := t.readMV(ref[r])
			if err != nil {
				return err
			}
			mv[r] = v
		case modeNearest:
			mv[r] = nearest[r]
		case modeNear:
			mv[r] = near[r]
		default:
			mv[r] = motionVector{}
		}
	}
	return nil
}
