package vp8

import (
	"encoding/binary"

	"github.com/deepteams/vpx/internal/bitio"
)

// testMB describes one synthesized macroblock.
type testMB struct {
	// yMode is an intra mode (modeDC..modeBPred) or, on inter frames with
	// inter set, modeZero, modeNearest or modeNew.
	yMode  int
	bModes [16]int
	uvMode int
	// dc is the Y2 DC level in [-4, 4]. Zero codes the macroblock as
	// skipped. It is ignored when levels is set.
	dc int
	// levels holds quantized levels in scan order for the 16 luma blocks,
	// four U, four V and the Y2 block. An all-zero set codes the
	// macroblock as skipped.
	levels *[25][16]int
	segment int

	inter bool
	// cnt are the near motion vector votes the decoder will compute for
	// this macroblock. Only the mode probabilities depend on them.
	cnt [4]int
	// delta is the NEWMV delta in full-pel luma units times 4 (quarter
	// pels), i.e. the coded component value.
	delta [2]int
}

// testFrame is a minimal VP8 frame writer covering the syntax elements the
// tests need.
type testFrame struct {
	key           bool
	version       int
	hidden        bool
	width, height int
	mbW           int

	simple      bool
	filterLevel int
	sharpness   int
	baseQ       int
	// log2 of the token partition count.
	partitions int

	refreshGolden, refreshAlt bool
	copyToGolden, copyToAlt   int
	noRefreshLast             bool
	noRefreshEntropy          bool

	quantDelta [5]int // y1 dc, y2 dc, y2 ac, uv dc, uv ac
	seg        *testSegmentation
	lfDelta    *testFilterDeltas

	mbs []testMB
}

// testSegmentation is the segment header of a testFrame. Zero tree
// probabilities are left out of the header and read as 255.
type testSegmentation struct {
	updateMap, updateData bool
	absDelta              bool
	quant                 [numSegments]int
	level                 [numSegments]int
	probs                 [3]int
}

type testFilterDeltas struct {
	ref, mode [4]int
}

const testSkipProb = 200

func putMVComponent(bw *bitio.BoolWriter, p []uint8, v int) {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs >= 8 {
		panic("long motion vectors are not supported by the test writer")
	}
	bw.PutBit(0, int(p[mvpIsShort]))
	putTree(bw, smallMVTree, p[mvpShort:mvpBits], abs)
	if abs != 0 {
		sign := 0
		if v < 0 {
			sign = 1
		}
		bw.PutBit(sign, int(p[mvpSign]))
	}
}

func (f *testFrame) encode() []byte {
	hdr := bitio.NewBoolWriter(0)
	if f.key {
		hdr.PutBitUniform(0) // color space
		hdr.PutBitUniform(0) // clamping type
	}
	f.putSegmentation(hdr)
	hdr.PutBitUniform(boolInt(f.simple))
	hdr.PutBits(uint32(f.filterLevel), 6)
	hdr.PutBits(uint32(f.sharpness), 3)
	hdr.PutBitUniform(boolInt(f.lfDelta != nil))
	if f.lfDelta != nil {
		hdr.PutBitUniform(1)
		for _, v := range f.lfDelta.ref {
			hdr.PutSignedBits(v, 6)
		}
		for _, v := range f.lfDelta.mode {
			hdr.PutSignedBits(v, 6)
		}
	}
	hdr.PutBits(uint32(f.partitions), 2)
	hdr.PutBits(uint32(f.baseQ), 7)
	for _, v := range f.quantDelta {
		hdr.PutSignedBits(v, 4)
	}
	if !f.key {
		hdr.PutBitUniform(boolInt(f.refreshGolden))
		hdr.PutBitUniform(boolInt(f.refreshAlt))
		if !f.refreshGolden {
			hdr.PutBits(uint32(f.copyToGolden), 2)
		}
		if !f.refreshAlt {
			hdr.PutBits(uint32(f.copyToAlt), 2)
		}
		hdr.PutBitUniform(0) // golden sign bias
		hdr.PutBitUniform(0) // altref sign bias
	}
	hdr.PutBitUniform(boolInt(!f.noRefreshEntropy))
	if !f.key {
		hdr.PutBitUniform(boolInt(!f.noRefreshLast))
	}
	for t := range coeffUpdateProbs {
		for b := range coeffUpdateProbs[t] {
			for c := range coeffUpdateProbs[t][b] {
				for _, p := range coeffUpdateProbs[t][b][c] {
					hdr.PutBit(0, int(p))
				}
			}
		}
	}
	hdr.PutBitUniform(1)
	hdr.PutBits(testSkipProb, 8)
	const probIntra, probLast, probGolden = 60, 128, 128
	if !f.key {
		hdr.PutBits(probIntra, 8)
		hdr.PutBits(probLast, 8)
		hdr.PutBits(probGolden, 8)
		hdr.PutBitUniform(0) // y mode probs
		hdr.PutBitUniform(0) // uv mode probs
		for c := range mvUpdateProbs {
			for _, p := range mvUpdateProbs[c] {
				hdr.PutBit(0, int(p))
			}
		}
	}

	mbH := len(f.mbs) / f.mbW
	bgrid := make([][]int, mbH*4)
	for i := range bgrid {
		bgrid[i] = make([]int, f.mbW*4)
	}
	bmodeAt := func(r, c int) int {
		if r < 0 || c < 0 {
			return bDC
		}
		return bgrid[r][c]
	}

	nparts := 1 << f.partitions
	parts := make([]*bitio.BoolWriter, nparts)
	for i := range parts {
		parts[i] = bitio.NewBoolWriter(0)
	}
	probs := &defaultCoeffProbs
	topCtx := make([]tokenContext, f.mbW)

	for mbY := 0; mbY < mbH; mbY++ {
		var leftCtx tokenContext
		tw := parts[mbY%nparts]
		for mbX := 0; mbX < f.mbW; mbX++ {
			mb := &f.mbs[mbY*f.mbW+mbX]
			if f.seg != nil && f.seg.updateMap {
				f.seg.putSegmentID(hdr, mb.segment)
			}
			skip := mb.skipped()
			hdr.PutBit(boolInt(skip), testSkipProb)

			hasY2 := true
			switch {
			case f.key:
				putTree(hdr, kfYModeTree, kfYModeProbs[:], mb.yMode)
				for i := 0; i < 16; i++ {
					r, c := mbY*4+i/4, mbX*4+i%4
					m := int(yModeToBMode[mb.yMode])
					if mb.yMode == modeBPred {
						m = mb.bModes[i]
						a, l := bmodeAt(r-1, c), bmodeAt(r, c-1)
						putTree(hdr, bModeTree, kfBModeProbs[a][l][:], m)
					}
					bgrid[r][c] = m
				}
				putTree(hdr, uvModeTree, kfUVModeProbs[:], mb.uvMode)
				hasY2 = mb.yMode != modeBPred
			case !mb.inter:
				hdr.PutBit(0, probIntra)
				putTree(hdr, yModeTree, defaultYModeProbs[:], mb.yMode)
				if mb.yMode == modeBPred {
					for _, m := range mb.bModes {
						putTree(hdr, bModeTree, bModeProbs[:], m)
					}
				}
				putTree(hdr, uvModeTree, defaultUVModeProbs[:], mb.uvMode)
				hasY2 = mb.yMode != modeBPred
			default:
				hdr.PutBit(1, probIntra)
				hdr.PutBit(0, probLast)
				mc := func(i int) int { return int(modeContexts[mb.cnt[i]][i]) }
				switch mb.yMode {
				case modeZero:
					hdr.PutBit(0, mc(0))
				case modeNearest:
					hdr.PutBit(1, mc(0))
					hdr.PutBit(0, mc(1))
				case modeNew:
					hdr.PutBit(1, mc(0))
					hdr.PutBit(1, mc(1))
					hdr.PutBit(1, mc(2))
					hdr.PutBit(0, mc(3))
					putMVComponent(hdr, defaultMVProbs[0][:], mb.delta[0])
					putMVComponent(hdr, defaultMVProbs[1][:], mb.delta[1])
				default:
					panic("unsupported inter mode")
				}
			}

			top, left := &topCtx[mbX], &leftCtx
			if skip {
				y2Top, y2Left := top[ctxY2], left[ctxY2]
				*top, *left = tokenContext{}, tokenContext{}
				if !hasY2 {
					top[ctxY2], left[ctxY2] = y2Top, y2Left
				}
				continue
			}
			putResiduals(tw, probs, mb.coded(), hasY2, top, left)
		}
	}

	first := hdr.Finish()
	var out []byte
	tag := uint32(f.version&7)<<1 | uint32(len(first))<<5
	if !f.key {
		tag |= 1
	}
	if !f.hidden {
		tag |= 1 << 4
	}
	out = append(out, byte(tag), byte(tag>>8), byte(tag>>16))
	if f.key {
		out = append(out, 0x9d, 0x01, 0x2a)
		out = binary.LittleEndian.AppendUint16(out, uint16(f.width))
		out = binary.LittleEndian.AppendUint16(out, uint16(f.height))
	}
	out = append(out, first...)
	data := make([][]byte, nparts)
	for i, p := range parts {
		data[i] = p.Finish()
	}
	for _, d := range data[:nparts-1] {
		out = append(out, byte(len(d)), byte(len(d)>>8), byte(len(d)>>16))
	}
	for _, d := range data {
		out = append(out, d...)
	}
	return out
}

func (f *testFrame) putSegmentation(bw *bitio.BoolWriter) {
	seg := f.seg
	bw.PutBitUniform(boolInt(seg != nil))
	if seg == nil {
		return
	}
	bw.PutBitUniform(boolInt(seg.updateMap))
	bw.PutBitUniform(boolInt(seg.updateData))
	if seg.updateData {
		bw.PutBitUniform(boolInt(seg.absDelta))
		for _, v := range seg.quant {
			bw.PutSignedBits(v, 7)
		}
		for _, v := range seg.level {
			bw.PutSignedBits(v, 6)
		}
	}
	if seg.updateMap {
		for _, p := range seg.probs {
			bw.PutBitUniform(boolInt(p != 0))
			if p != 0 {
				bw.PutBits(uint32(p), 8)
			}
		}
	}
}

func (seg *testSegmentation) putSegmentID(bw *bitio.BoolWriter, id int) {
	prob := func(i int) int {
		if seg.probs[i] == 0 {
			return 255
		}
		return seg.probs[i]
	}
	bw.PutBit(id>>1, prob(0))
	bw.PutBit(id&1, prob(1+id>>1))
}

// coded returns the levels the macroblock carries.
func (mb *testMB) coded() *[25][16]int {
	if mb.levels != nil {
		return mb.levels
	}
	var l [25][16]int
	l[24][0] = mb.dc
	return &l
}

func (mb *testMB) skipped() bool {
	for _, b := range mb.coded() {
		for _, v := range b {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// putResiduals writes the tokens of one macroblock in the order
// parseResiduals reads them.
func putResiduals(bw *bitio.BoolWriter, probs *tokenProbs, l *[25][16]int, hasY2 bool, top, left *tokenContext) {
	block := func(plane int, t, tl *uint8, first int, levels []int) {
		flag := uint8(0)
		if putBlock(bw, &probs[plane], int(*t+*tl), first, levels) {
			flag = 1
		}
		*t, *tl = flag, flag
	}
	first, plane := 0, planeY1SansY2
	if hasY2 {
		block(planeY2, &top[ctxY2], &left[ctxY2], 0, l[24][:])
		first, plane = 1, planeY1WithY2
	} else if !allZero(l[24][:]) {
		panic("Y2 levels on a macroblock without a Y2 block")
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			levels := l[4*y+x][:]
			if first == 1 && levels[0] != 0 {
				panic("luma DC level on a macroblock with a Y2 block")
			}
			block(plane, &top[x], &left[y], first, levels)
		}
	}
	for i, base := range [2]int{ctxU, ctxV} {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				block(planeUV, &top[base+x], &left[base+y], 0, l[16+4*i+2*y+x][:])
			}
		}
	}
}

func allZero(levels []int) bool {
	for _, v := range levels {
		if v != 0 {
			return false
		}
	}
	return true
}

// putBlock writes the tokens of one block from scan position first and
// reports whether any level was coded.
func putBlock(bw *bitio.BoolWriter, probs *bandProbs, ctx, first int, levels []int) bool {
	last := -1
	for n := first; n < 16; n++ {
		if levels[n] != 0 {
			last = n
		}
	}
	afterZero := false
	for n := first; n < 16; n++ {
		p := probs[coeffBands[n]][ctx][:]
		if n > last {
			bw.PutBit(0, int(p[0]))
			break
		}
		if !afterZero {
			bw.PutBit(1, int(p[0]))
		}
		v := levels[n]
		abs := v
		if abs < 0 {
			abs = -abs
		}
		if abs == 0 {
			bw.PutBit(0, int(p[1]))
			ctx, afterZero = 0, true
			continue
		}
		bw.PutBit(1, int(p[1]))
		afterZero = false
		if abs == 1 {
			bw.PutBit(0, int(p[2]))
			ctx = 1
		} else {
			bw.PutBit(1, int(p[2]))
			putLarge(bw, p, abs)
			ctx = 2
		}
		bw.PutBitUniform(boolInt(v < 0))
	}
	return last >= first
}

// putLarge writes a magnitude of two or more past the "one" node of the
// token tree.
func putLarge(bw *bitio.BoolWriter, p []uint8, abs int) {
	switch {
	case abs == 2:
		bw.PutBit(0, int(p[3]))
		bw.PutBit(0, int(p[4]))
		return
	case abs <= 4:
		bw.PutBit(0, int(p[3]))
		bw.PutBit(1, int(p[4]))
		bw.PutBit(abs-3, int(p[5]))
		return
	}
	cat := len(dctCategories) - 1
	for dctCategories[cat].base > abs {
		cat--
	}
	bw.PutBit(1, int(p[3]))
	if cat < 2 {
		bw.PutBit(0, int(p[6]))
		bw.PutBit(cat, int(p[7]))
	} else {
		hi := (cat - 2) >> 1
		bw.PutBit(1, int(p[6]))
		bw.PutBit(hi, int(p[8]))
		bw.PutBit((cat-2)&1, int(p[9+hi]))
	}
	c := &dctCategories[cat]
	extra := abs - c.base
	if extra >= 1<<len(c.probs) {
		panic("level out of range")
	}
	for i, prob := range c.probs {
		bw.PutBit(extra>>(len(c.probs)-1-i)&1, int(prob))
	}
}

// keyFrame returns a key frame of the given size with a deterministic mix
// of modes and DC levels. B_PRED is kept away from the last column.
func keyFrame(width, height int) *testFrame {
	mbW, mbH := (width+15)/16, (height+15)/16
	f := &testFrame{key: true, width: width, height: height, mbW: mbW, baseQ: 40}
	yModes := []int{modeDC, modeV, modeH, modeTM, modeBPred}
	for i := 0; i < mbW*mbH; i++ {
		mb := testMB{
			yMode:  yModes[i%len(yModes)],
			uvMode: (i / 2) % 4,
			dc:     (i*5)%9 - 4,
		}
		if mb.yMode == modeBPred && i%mbW == mbW-1 {
			mb.yMode = modeTM
		}
		if mb.yMode == modeBPred {
			for j := range mb.bModes {
				mb.bModes[j] = (i + j) % numBModes
			}
			mb.dc = 0
		}
		f.mbs = append(f.mbs, mb)
	}
	return f
}
