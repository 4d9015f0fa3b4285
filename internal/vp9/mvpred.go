package vp9

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/entropy"
	"github.com/deepteams/vpx/internal/vpxerr"
)

const (
	// mvBorder bounds candidate vectors to 16 pixels past the frame edge.
	mvBorder = 16 << 3
	// mvMargin bounds predicted vectors, in eighth pels.
	mvMargin = (160 - 4) << 3
	// Vectors must lie strictly inside (mvLow, mvHigh).
	mvLow  = -(1 << 14)
	mvHigh = 1<<14 - 1

	hpThreshold = 8
)

// mvRefSearch lists, per block size, the row and column offsets in 8x8
// units of the neighbours scanned for candidate vectors. The first two
// also form the mode context.
var mvRefSearch = [numBlockSizes][8][2]int8{
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	{{-1, 0}, {0, -1}, {-1, -1}, {-2, 0}, {0, -2}, {-2, -1}, {-1, -2}, {-2, -2}},
	{{0, -1}, {-1, 0}, {1, -1}, {-1, -1}, {0, -2}, {-2, 0}, {-2, -1}, {-1, -2}},
	{{-1, 0}, {0, -1}, {-1, 1}, {-1, -1}, {-2, 0}, {0, -2}, {-1, -2}, {-2, -1}},
	{{-1, 0}, {0, -1}, {-1, 1}, {1, -1}, {-1, -1}, {-3, 0}, {0, -3}, {-3, -3}},
	{{0, -1}, {-1, 0}, {2, -1}, {-1, -1}, {-1, 1}, {0, -3}, {-3, 0}, {-3, -3}},
	{{-1, 0}, {0, -1}, {-1, 2}, {-1, -1}, {1, -1}, {-3, 0}, {0, -3}, {-3, -3}},
	{{-1, 1}, {1, -1}, {-1, 2}, {2, -1}, {-1, -1}, {-3, 0}, {0, -3}, {-3, -3}},
	{{0, -1}, {-1, 0}, {4, -1}, {-1, 2}, {-1, -1}, {0, -3}, {-3, 0}, {2, -1}},
	{{-1, 0}, {0, -1}, {-1, 4}, {2, -1}, {-1, -1}, {-3, 0}, {0, -3}, {-1, 2}},
	{{-1, 3}, {3, -1}, {-1, 4}, {4, -1}, {-1, -1}, {-1, 0}, {0, -1}, {-1, 6}},
}

var (
	// modeCounter weighs the mode of a neighbour for the mode context.
	modeCounter = [modeNew + 1]int{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 0, 0, 3, 1}
	// counterToContext maps the summed weights of the two nearest
	// neighbours to an inter mode context. Unreachable sums map to 9.
	counterToContext = [19]uint8{2, 3, 4, 1, 3, 9, 0, 9, 9, 5, 5, 9, 5, 9, 9, 9, 9, 9, 6}
	// subBlockFromNeighbour gives, per sub-block, which sub-block of the
	// left (index 0) or above (index 1) neighbour it borrows a vector from.
	subBlockFromNeighbour = [4][2]int{{1, 2}, {1, 3}, {3, 2}, {3, 3}}
)

// mvList collects up to two distinct candidate vectors.
type mvList struct {
	mvs [2]motionVector
	n   int
}

// add appends v unless it repeats the first entry and reports whether the
// list is full.
func (l *mvList) add(v motionVector) bool {
	if l.n == 0 {
		l.mvs[0] = v
		l.n = 1
		return false
	}
	if v != l.mvs[0] {
		l.mvs[1] = v
		l.n = 2
		return true
	}
	return false
}

// candidate returns the block at offset pos from the current one, nil when
// it lies outside the frame rows or the tile columns.
func (t *tileDecoder) candidate(pos [2]int8) *blockInfo {
	row, col := t.miRow+int(pos[0]), t.miCol+int(pos[1])
	if row < 0 || row >= t.f.miRows || col < t.colStart || col >= t.colEnd {
		return nil
	}
	return t.f.grid[row*t.f.miCols+col]
}

// findMVRefs returns the two candidate vectors of reference frame ref,
// clamped near the frame, and the inter mode context. block is the
// sub-block being predicted, or -1 for the whole block.
func (t *tileDecoder) findMVRefs(ref int8, block int) ([2]motionVector, int) {
	search := &mvRefSearch[t.b.Size]
	var cands [8]*blockInfo
	for i, pos := range search {
		cands[i] = t.candidate(pos)
	}
	counter := 0
	for _, c := range cands[:2] {
		if c != nil {
			counter += modeCounter[c.Mode]
		}
	}
	list := t.gatherMVs(&cands, search, ref, block)
	for i := range list {
		list[i] = t.clampMV(list[i], mvBorder)
	}
	return list, int(counterToContext[counter])
}

func (t *tileDecoder) gatherMVs(cands *[8]*blockInfo, search *[8][2]int8, ref int8, block int) [2]motionVector {
	var l mvList
	found := false
	for i, c := range cands {
		if c == nil {
			continue
		}
		found = true
		for r := 0; r < 2; r++ {
			if c.Ref[r] != ref {
				continue
			}
			v := c.MV[r]
			if i < 2 && block >= 0 && c.Size < block8x8 {
				v = c.SubMVs[subBlockFromNeighbour[block][b2i(search[i][1] == 0)]][r]
			}
			if l.add(v) {
				return l.mvs
			}
			break
		}
	}

	var prev *mvRef
	if t.f.prevMVs != nil {
		prev = &t.f.prevMVs[t.miRow*t.f.miCols+t.miCol]
		switch ref {
		case prev.Ref[0]:
			if l.add(prev.MV[0]) {
				return l.mvs
			}
		case prev.Ref[1]:
			if l.add(prev.MV[1]) {
				return l.mvs
			}
		}
	}

	if found {
		for _, c := range cands {
			if c == nil || !c.isInter() {
				continue
			}
			if c.Ref[0] != ref && l.add(t.scaleMV(c.MV[0], c.Ref[0], ref)) {
				return l.mvs
			}
			if c.compound() && c.Ref[1] != ref && c.MV[1] != c.MV[0] &&
				l.add(t.scaleMV(c.MV[1], c.Ref[1], ref)) {
				return l.mvs
			}
		}
	}

	if prev != nil {
		if prev.Ref[0] != ref && prev.Ref[0] > IntraFrame && l.add(t.scaleMV(prev.MV[0], prev.Ref[0], ref)) {
			return l.mvs
		}
		if prev.Ref[1] > IntraFrame && prev.Ref[1] != ref && prev.MV[1] != prev.MV[0] {
			l.add(t.scaleMV(prev.MV[1], prev.Ref[1], ref))
		}
	}
	return l.mvs
}

// scaleMV flips v when its reference points the other way in time from
// ref.
func (t *tileDecoder) scaleMV(v motionVector, from, to int8) motionVector {
	if t.f.h.SignBias[from] != t.f.h.SignBias[to] {
		return motionVector{Row: -v.Row, Col: -v.Col}
	}
	return v
}

// clampMV keeps v within margin eighth pels of the frame around the block.
func (t *tileDecoder) clampMV(v motionVector, margin int) motionVector {
	return motionVector{
		Row: int16(clamp(int(v.Row), t.toTop-margin, t.toBottom+margin)),
		Col: int16(clamp(int(v.Col), t.toLeft-margin, t.toRight+margin)),
	}
}

// bestRefMVs returns the nearest and near vectors of a candidate list.
func (t *tileDecoder) bestRefMVs(list [2]motionVector) (nearest, near motionVector) {
	hp := t.f.h.AllowHighPrecisionMV
	for i := range list {
		list[i] = t.clampMV(lowerPrecision(list[i], hp), mvMargin)
	}
	return list[0], list[1]
}

// appendSub8x8 returns the nearest and near vectors of sub-block block for
// reference slot r, preferring vectors of the sub-blocks already read.
func (t *tileDecoder) appendSub8x8(block, r int) (nearest, near motionVector) {
	b := t.b
	list, _ := t.findMVRefs(b.Ref[r], block)
	switch block {
	case 0:
		return list[0], list[1]
	case 1, 2:
		nearest = b.SubMVs[0][r]
		for _, v := range list {
			if v != nearest {
				return nearest, v
			}
		}
	case 3:
		nearest = b.SubMVs[2][r]
		for _, v := range [4]motionVector{b.SubMVs[1][r], b.SubMVs[0][r], list[0], list[1]} {
			if v != nearest {
				return nearest, v
			}
		}
	}
	return nearest, motionVector{}
}

func useHP(v motionVector) bool {
	return abs(int(v.Row))>>3 < hpThreshold && abs(int(v.Col))>>3 < hpThreshold
}

// lowerPrecision rounds v to quarter pels toward zero unless eighth pels
// are allowed and v is short.
func lowerPrecision(v motionVector, allowHP bool) motionVector {
	if allowHP && useHP(v) {
		return v
	}
	if v.Row&1 != 0 {
		if v.Row > 0 {
			v.Row--
		} else {
			v.Row++
		}
	}
	if v.Col&1 != 0 {
		if v.Col > 0 {
			v.Col--
		} else {
			v.Col++
		}
	}
	return v
}

// readMV reads a vector coded as a difference from ref.
func (t *tileDecoder) readMV(ref motionVector) (motionVector, error) {
	p := &t.f.fc.MV
	j, err := entropy.ReadCounted(&t.br, mvJointTree, p.Joints[:], t.counts.MVJoints[:])
	if err != nil {
		return motionVector{}, err
	}
	hp := t.f.h.AllowHighPrecisionMV && useHP(ref)
	var diff [2]int
	if j == MVJointHZVNZ || j == MVJointHNZVNZ {
		if diff[0], err = t.readMVComponent(&p.Comps[0], hp); err != nil {
			return motionVector{}, err
		}
		countMVComponent(diff[0], &t.counts.MVComps[0])
	}
	if j == MVJointHNZVZ || j == MVJointHNZVNZ {
		if diff[1], err = t.readMVComponent(&p.Comps[1], hp); err != nil {
			return motionVector{}, err
		}
		countMVComponent(diff[1], &t.counts.MVComps[1])
	}
	row, col := int(ref.Row)+diff[0], int(ref.Col)+diff[1]
	if row <= mvLow || row >= mvHigh || col <= mvLow || col >= mvHigh {
		return motionVector{}, errors.Wrapf(vpxerr.ErrCorruptBitstream, "vp9: motion vector %d,%d out of range", row, col)
	}
	return motionVector{Row: int16(row), Col: int16(col)}, nil
}

func (t *tileDecoder) readMVComponent(p *MVComponentProbs, hp bool) (int, error) {
	sign := t.br.GetBit(p.Sign)
	class, err := entropy.ReadTree(&t.br, mvClassTree, p.Classes[:])
	if err != nil {
		return 0, err
	}
	var mag, d, fr int
	if class == 0 {
		d = t.br.GetBit(p.Class0[0])
		fr, err = entropy.ReadTree(&t.br, mvFPTree, p.Class0FP[d][:])
	} else {
		for i := 0; i < class; i++ {
			d |= t.br.GetBit(p.Bits[i]) << i
		}
		mag = class0Size << (class + 2)
		fr, err = entropy.ReadTree(&t.br, mvFPTree, p.FP[:])
	}
	if err != nil {
		return 0, err
	}
	h := 1
	if hp {
		if class == 0 {
			h = t.br.GetBit(p.Class0HP)
		} else {
			h = t.br.GetBit(p.HP)
		}
	}
	mag += (d<<3 | fr<<1 | h) + 1
	if sign == 1 {
		return -mag, nil
	}
	return mag, nil
}

// countMVComponent counts the symbols of a nonzero component v.
func countMVComponent(v int, c *MVComponentCounts) {
	c.Sign[b2i(v < 0)]++
	z := abs(v) - 1
	class, o := mvClass(z)
	c.Classes[class]++
	d, fr, e := o>>3, (o>>1)&3, o&1
	if class == 0 {
		c.Class0[d]++
		c.Class0FP[d][fr]++
		c.Class0HP[e]++
		return
	}
	for i := 0; i < class; i++ {
		c.Bits[i][(d>>i)&1]++
	}
	c.FP[fr]++
	c.HP[e]++
}

// mvClass returns the class of magnitude z, one less than the component's
// absolute value, and its offset within the class.
func mvClass(z int) (class, offset int) {
	if z >= class0Size*4096 {
		class = numMVClasses - 1
	} else if z>>3 > 0 {
		class = bits.Len(uint(z>>3)) - 1
	}
	if class > 0 {
		offset = z - class0Size<<(class+2)
	} else {
		offset = z
	}
	return class, offset
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
