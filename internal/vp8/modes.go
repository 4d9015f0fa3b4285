package vp8

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/entropy"
	"github.com/deepteams/vpx/internal/vpxerr"
)

// motionVector is in eighth-pel units; VP8 only codes even values for luma.
type motionVector struct {
	Row, Col int16
}

func (v motionVector) isZero() bool { return v.Row == 0 && v.Col == 0 }

// mbInfo is the per-macroblock mode information of the current frame.
type mbInfo struct {
	YMode     uint8
	UVMode    uint8
	Ref       uint8
	Segment   uint8
	Skip      bool
	NeedClamp bool
	// Coded is set by the token stage when any coefficient was non-zero.
	Coded bool

	MV     motionVector
	BModes [16]uint8
	MVs    [16]motionVector
}

func (mb *mbInfo) hasY2() bool {
	return mb.YMode != modeBPred && mb.YMode != modeSplit
}

// outsideMB stands in for neighbours beyond the frame edge.
var outsideMB mbInfo

func (d *Decoder) neighbor(mbX, mbY int) *mbInfo {
	if mbX < 0 || mbY < 0 || mbX >= d.mbW {
		return &outsideMB
	}
	return &d.mbs[mbY*d.mbW+mbX]
}

// mvBounds are the distances, in eighth pels, from a macroblock to the
// frame edges.
type mvBounds struct {
	toLeft, toRight, toTop, toBottom int
}

// mvMargin lets motion vectors point up to one macroblock past the edge.
const mvMargin = 16 << 3

func (d *Decoder) bounds(mbX, mbY int) mvBounds {
	return mvBounds{
		toLeft:   -(mbX * 16) << 3,
		toRight:  ((d.mbW - 1 - mbX) * 16) << 3,
		toTop:    -(mbY * 16) << 3,
		toBottom: ((d.mbH - 1 - mbY) * 16) << 3,
	}
}

// clamp limits v to the margined frame area.
func (b mvBounds) clamp(v motionVector) motionVector {
	col, row := int(v.Col), int(v.Row)
	if col < b.toLeft-mvMargin {
		col = b.toLeft - mvMargin
	} else if col > b.toRight+mvMargin {
		col = b.toRight + mvMargin
	}
	if row < b.toTop-mvMargin {
		row = b.toTop - mvMargin
	} else if row > b.toBottom+mvMargin {
		row = b.toBottom + mvMargin
	}
	return motionVector{Row: int16(row), Col: int16(col)}
}

// outside reports whether v reaches beyond the margined frame area.
func (b mvBounds) outside(v motionVector) bool {
	col, row := int(v.Col), int(v.Row)
	return col < b.toLeft-mvMargin || col > b.toRight+mvMargin ||
		row < b.toTop-mvMargin || row > b.toBottom+mvMargin
}

// parseModes reads the modes and motion vectors of every macroblock from
// the first partition.
func (d *Decoder) parseModes(br *bitio.BoolReader, fp *frameParams) error {
	for mbY := 0; mbY < d.mbH; mbY++ {
		for mbX := 0; mbX < d.mbW; mbX++ {
			if err := d.parseMBMode(br, fp, mbX, mbY); err != nil {
				return errors.Wrapf(err, "vp8: modes of macroblock (%d,%d)", mbX, mbY)
			}
		}
		if br.EOF() {
			return errors.Wrapf(vpxerr.ErrTruncatedStream, "vp8: first partition exhausted at row %d", mbY)
		}
	}
	return nil
}

func (d *Decoder) parseMBMode(br *bitio.BoolReader, fp *frameParams, mbX, mbY int) error {
	idx := mbY*d.mbW + mbX
	mb := &d.mbs[idx]
	*mb = mbInfo{}

	seg := &d.state.Seg
	if seg.UpdateMap {
		var s int
		if br.GetBit(seg.TreeProbs[0]) == 0 {
			s = br.GetBit(seg.TreeProbs[1])
		} else {
			s = 2 + br.GetBit(seg.TreeProbs[2])
		}
		d.segMap[idx] = uint8(s)
	} else if fp.KeyFrame {
		d.segMap[idx] = 0
	}
	mb.Segment = d.segMap[idx]

	if fp.SkipEnabled {
		mb.Skip = br.GetBit(fp.SkipProb) != 0
	}

	switch {
	case fp.KeyFrame:
		return d.parseKeyFrameModes(br, mb, mbX, mbY)
	case br.GetBit(fp.ProbIntra) == 0:
		return d.parseIntraModes(br, mb)
	default:
		return d.parseInterModes(br, fp, mb, mbX, mbY)
	}
}

func (d *Decoder) parseKeyFrameModes(br *bitio.BoolReader, mb *mbInfo, mbX, mbY int) error {
	mb.Ref = refIntra
	ym, err := entropy.ReadTree(br, kfYModeTree, kfYModeProbs[:])
	if err != nil {
		return err
	}
	mb.YMode = uint8(ym)

	if ym == modeBPred {
		above := d.neighbor(mbX, mbY-1)
		left := d.neighbor(mbX-1, mbY)
		for i := 0; i < 16; i++ {
			var a, l uint8
			if i < 4 {
				a = above.BModes[i+12]
			} else {
				a = mb.BModes[i-4]
			}
			if i&3 == 0 {
				l = left.BModes[i+3]
			} else {
				l = mb.BModes[i-1]
			}
			m, err := entropy.ReadTree(br, bModeTree, kfBModeProbs[a][l][:])
			if err != nil {
				return err
			}
			mb.BModes[i] = uint8(m)
		}
	} else {
		fillBModes(mb)
	}

	uv, err := entropy.ReadTree(br, uvModeTree, kfUVModeProbs[:])
	if err != nil {
		return err
	}
	mb.UVMode = uint8(uv)
	return nil
}

// parseIntraModes reads an intra macroblock of an inter frame.
func (d *Decoder) parseIntraModes(br *bitio.BoolReader, mb *mbInfo) error {
	mb.Ref = refIntra
	probs := &d.state.Probs
	ym, err := entropy.ReadTree(br, yModeTree, probs.YMode[:])
	if err != nil {
		return err
	}
	mb.YMode = uint8(ym)
	if ym == modeBPred {
		for i := range mb.BModes {
			m, err := entropy.ReadTree(br, bModeTree, bModeProbs[:])
			if err != nil {
				return err
			}
			mb.BModes[i] = uint8(m)
		}
	} else {
		fillBModes(mb)
	}
	uv, err := entropy.ReadTree(br, uvModeTree, probs.UVMode[:])
	if err != nil {
		return err
	}
	mb.UVMode = uint8(uv)
	return nil
}

func fillBModes(mb *mbInfo) {
	b := yModeToBMode[mb.YMode]
	for i := range mb.BModes {
		mb.BModes[i] = b
	}
}

// Indices into the near motion vector candidate list.
const (
	cntIntra = iota
	cntNearest
	cntNear
	cntSplit
)

// findNearMVs ranks the motion vectors of the above, left and above-left
// neighbours. near[cntNearest] and near[cntNear] are the two best distinct
// candidates; cnt holds their votes.
func (d *Decoder) findNearMVs(mbX, mbY int, ref uint8) (near [4]motionVector, cnt [4]int) {
	above := d.neighbor(mbX, mbY-1)
	left := d.neighbor(mbX-1, mbY)
	aboveLeft := d.neighbor(mbX-1, mbY-1)
	bias := &d.state.SignBias

	biased := func(n *mbInfo) motionVector {
		v := n.MV
		if bias[n.Ref] != bias[ref] {
			v.Row, v.Col = -v.Row, -v.Col
		}
		return v
	}

	i := 0
	if above.Ref != refIntra {
		if !above.MV.isZero() {
			i++
			near[i] = biased(above)
		}
		cnt[i] += 2
	}
	for _, n := range [2]struct {
		mb     *mbInfo
		weight int
	}{{left, 2}, {aboveLeft, 1}} {
		if n.mb.Ref == refIntra {
			continue
		}
		if n.mb.MV.isZero() {
			cnt[cntIntra] += n.weight
			continue
		}
		v := biased(n.mb)
		if v != near[i] {
			i++
			near[i] = v
		}
		cnt[i] += n.weight
	}

	// Three distinct candidates where the last matches the first.
	if cnt[cntSplit] > 0 && near[i] == near[cntNearest] {
		cnt[cntNearest]++
	}

	cnt[cntSplit] = 0
	if above.YMode == modeSplit {
		cnt[cntSplit] += 2
	}
	if left.YMode == modeSplit {
		cnt[cntSplit] += 2
	}
	if aboveLeft.YMode == modeSplit {
		cnt[cntSplit]++
	}

	if cnt[cntNear] > cnt[cntNearest] {
		cnt[cntNearest], cnt[cntNear] = cnt[cntNear], cnt[cntNearest]
		near[cntNearest], near[cntNear] = near[cntNear], near[cntNearest]
	}
	if cnt[cntNearest] >= cnt[cntIntra] {
		near[cntIntra] = near[cntNearest]
	}
	return near, cnt
}

func (d *Decoder) parseInterModes(br *bitio.BoolReader, fp *frameParams, mb *mbInfo, mbX, mbY int) error {
	mb.Ref = refLast
	if br.GetBit(fp.ProbLast) != 0 {
		mb.Ref = refGolden + uint8(br.GetBit(fp.ProbGolden))
	}
	mb.UVMode = modeDC

	near, cnt := d.findNearMVs(mbX, mbY, mb.Ref)
	b := d.bounds(mbX, mbY)
	mvp := &d.state.Probs.MV

	if br.GetBit(modeContexts[cnt[cntIntra]][0]) == 0 {
		mb.YMode = modeZero
		return nil
	}
	if br.GetBit(modeContexts[cnt[cntNearest]][1]) == 0 {
		mb.YMode = modeNearest
		mb.MV = b.clamp(near[cntNearest])
		return nil
	}
	if br.GetBit(modeContexts[cnt[cntNear]][2]) == 0 {
		mb.YMode = modeNear
		mb.MV = b.clamp(near[cntNear])
		return nil
	}

	best := b.clamp(near[cntIntra])
	if br.GetBit(modeContexts[cnt[cntSplit]][3]) == 0 {
		mb.YMode = modeNew
		v, err := readMV(br, mvp)
		if err != nil {
			return err
		}
		mb.MV = motionVector{Row: v.Row + best.Row, Col: v.Col + best.Col}
		mb.NeedClamp = b.outside(mb.MV)
		return nil
	}

	mb.YMode = modeSplit
	return d.parseSplitMVs(br, mb, mbX, mbY, best, b)
}

func (d *Decoder) parseSplitMVs(br *bitio.BoolReader, mb *mbInfo, mbX, mbY int, best motionVector, b mvBounds) error {
	s := split4x4
	if br.GetBit(110) != 0 {
		s = split8x8
		if br.GetBit(111) != 0 {
			s = br.GetBit(150)
		}
	}

	left := d.neighbor(mbX-1, mbY)
	above := d.neighbor(mbX, mbY-1)
	fillCount := 16 / splitCounts[s]
	for j := 0; j < splitCounts[s]; j++ {
		k := int(splitFirst[s][j])

		var leftMV, aboveMV motionVector
		if k&3 == 0 {
			leftMV = left.MV
			if left.YMode == modeSplit {
				leftMV = left.MVs[k+3]
			}
		} else {
			leftMV = mb.MVs[k-1]
		}
		if k < 4 {
			aboveMV = above.MV
			if above.YMode == modeSplit {
				aboveMV = above.MVs[k+12]
			}
		} else {
			aboveMV = mb.MVs[k-4]
		}

		ctx := 0
		if aboveMV.isZero() {
			ctx |= 4
		}
		if leftMV.isZero() {
			ctx |= 2
		}
		if leftMV == aboveMV {
			ctx |= 1
		}
		p := &subMVRefProbs[ctx]

		var v motionVector
		switch {
		case br.GetBit(p[0]) == 0:
			v = leftMV
		case br.GetBit(p[1]) == 0:
			v = aboveMV
		case br.GetBit(p[2]) == 0:
		default:
			delta, err := readMV(br, &d.state.Probs.MV)
			if err != nil {
				return err
			}
			v = motionVector{Row: delta.Row + best.Row, Col: delta.Col + best.Col}
		}
		if b.outside(v) {
			mb.NeedClamp = true
		}

		for _, blk := range splitFill[s][j*fillCount : (j+1)*fillCount] {
			mb.MVs[blk] = v
		}
	}
	mb.MV = mb.MVs[15]
	return nil
}

// readMV reads a row then column motion vector delta.
func readMV(br *bitio.BoolReader, p *mvProbs) (motionVector, error) {
	row, err := readMVComponent(br, p[0][:])
	if err != nil {
		return motionVector{}, err
	}
	col, err := readMVComponent(br, p[1][:])
	if err != nil {
		return motionVector{}, err
	}
	return motionVector{Row: int16(row * 2), Col: int16(col * 2)}, nil
}

func readMVComponent(br *bitio.BoolReader, p []uint8) (int, error) {
	x := 0
	if br.GetBit(p[mvpIsShort]) != 0 {
		for i := 0; i < 3; i++ {
			x += br.GetBit(p[mvpBits+i]) << uint(i)
		}
		for i := mvLongBits - 1; i > 3; i-- {
			x += br.GetBit(p[mvpBits+i]) << uint(i)
		}
		if x&0xfff0 == 0 || br.GetBit(p[mvpBits+3]) != 0 {
			x += 8
		}
	} else {
		v, err := entropy.ReadTree(br, smallMVTree, p[mvpShort:mvpBits])
		if err != nil {
			return 0, err
		}
		x = v
	}
	if x != 0 && br.GetBit(p[mvpSign]) != 0 {
		x = -x
	}
	return x, nil
}
