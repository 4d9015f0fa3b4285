package vp9

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/dsp"
	"github.com/deepteams/vpx/internal/entropy"
	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vpxerr"
)

// frameDecoder holds the state shared by the tiles of one frame. Tile
// columns write disjoint parts of it and may run concurrently.
type frameDecoder struct {
	h    *FrameHeader
	ch   *CompressedHeader
	fc   *FrameContext
	out  *frame.Buffer
	refs [RefsPerFrame]*frame.Buffer

	miCols, miRows int
	sbCols, sbRows int

	// infos holds a block at its top-left 8x8 unit; grid points every
	// covered unit at it.
	infos []blockInfo
	grid  []*blockInfo

	// Nonzero flags per 4x4 column of each plane, and partition context
	// per 8x8 column. Cleared once per frame.
	aboveNZ   [3][]uint8
	abovePart []uint8

	// segPrev is nil when no earlier map applies.
	segPrev, segCur []uint8
	// prevMVs is nil when the previous frame's motion may not be used.
	prevMVs, curMVs []mvRef

	dequant  [MaxSegments][2][2]int16
	lossless bool
	levels   LevelTable
	// masks holds one loop filter mask per superblock, nil when the frame
	// is not filtered.
	masks []lfMask
}

func newFrameDecoder(h *FrameHeader, ch *CompressedHeader, fc *FrameContext, out *frame.Buffer) *frameDecoder {
	f := &frameDecoder{
		h:      h,
		ch:     ch,
		fc:     fc,
		out:    out,
		miCols: h.MiCols(),
		miRows: h.MiRows(),
	}
	f.sbCols, f.sbRows = (f.miCols+7)>>3, (f.miRows+7)>>3
	n := f.miCols * f.miRows
	f.infos = make([]blockInfo, n)
	f.grid = make([]*blockInfo, n)
	f.curMVs = make([]mvRef, n)
	f.segCur = make([]uint8, n)
	f.aboveNZ[0] = make([]uint8, f.sbCols*16)
	f.aboveNZ[1] = make([]uint8, f.sbCols*8)
	f.aboveNZ[2] = make([]uint8, f.sbCols*8)
	f.abovePart = make([]uint8, f.sbCols*8)

	q := &h.Quant
	f.lossless = q.Lossless()
	for s := range f.dequant {
		qi := QIndex(&h.Seg, s, q.BaseQIdx)
		f.dequant[s][0] = [2]int16{dcQLookup[clamp(qi+q.DeltaQYDC, 0, maxQ)], acQLookup[qi]}
		f.dequant[s][1] = [2]int16{
			dcQLookup[clamp(qi+q.DeltaQUVDC, 0, maxQ)],
			acQLookup[clamp(qi+q.DeltaQUVAC, 0, maxQ)],
		}
	}
	if h.LoopFilter.Level > 0 {
		f.levels = FilterLevels(&h.LoopFilter, &h.Seg)
		f.masks = make([]lfMask, f.sbCols*f.sbRows)
	}
	return f
}

// tileBounds returns the range, in 8x8 units, of tile i of 1<<log2 tiles
// across mis units. Tiles split on superblock boundaries.
func tileBounds(i, log2, mis int) (start, end int) {
	sbs := (mis + 7) >> 3
	start = min(((i*sbs)>>log2)<<3, mis)
	end = min((((i+1)*sbs)>>log2)<<3, mis)
	return start, end
}

// decodeTiles decodes every tile and loop filters the frame. Each tile
// column runs on its own goroutine, bounded by threads, and walks its
// tile rows top to bottom. The symbol counts of all tiles are added to
// counts.
func (f *frameDecoder) decodeTiles(tiles [][]byte, threads int, counts *FrameCounts) error {
	cols, rows := 1<<f.h.Tiles.Log2Cols, 1<<f.h.Tiles.Log2Rows
	if len(tiles) != cols*rows {
		return errors.Wrapf(vpxerr.ErrTruncatedStream, "vp9: %d tiles for a %dx%d layout", len(tiles), cols, rows)
	}
	tds := make([]*tileDecoder, cols)
	var g errgroup.Group
	if threads > 0 {
		g.SetLimit(threads)
	}
	for c := 0; c < cols; c++ {
		td := &tileDecoder{f: f}
		td.colStart, td.colEnd = tileBounds(c, f.h.Tiles.Log2Cols, f.miCols)
		tds[c] = td
		g.Go(func() error {
			for r := 0; r < rows; r++ {
				rowStart, rowEnd := tileBounds(r, f.h.Tiles.Log2Rows, f.miRows)
				if err := td.decode(tiles[r*cols+c], rowStart, rowEnd); err != nil {
					return errors.Wrapf(err, "tile %d,%d", r, c)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, td := range tds {
		counts.add(&td.counts)
	}
	if f.masks != nil {
		f.loopFilter()
	}
	return nil
}

// tileDecoder decodes the tiles of one tile column.
type tileDecoder struct {
	f                *frameDecoder
	br               bitio.BoolReader
	counts           FrameCounts
	colStart, colEnd int

	leftNZ   [3][16]uint8
	leftPart [8]uint8

	coefs [32 * 32]int16
	cache [32 * 32]uint8
	fetch [(64 + 7) * (64 + 7)]byte
	edges dsp.IntraEdges

	// The block being decoded and its neighbours, nil when unavailable.
	b            *blockInfo
	above, left  *blockInfo
	miRow, miCol int
	// Block size in 4x4 units, log2; blocks below 8x8 count as 8x8.
	bwl, bhl int
	// Distances from the block to the frame edges in eighth pels,
	// negative when the block extends past the edge.
	toLeft, toRight, toTop, toBottom int
}

func (t *tileDecoder) decode(data []byte, rowStart, rowEnd int) error {
	if len(data) == 0 {
		return errors.Wrap(vpxerr.ErrTruncatedStream, "vp9: empty tile")
	}
	t.br.Init(data)
	if t.br.GetBit(0x80) != 0 {
		return errors.Wrap(vpxerr.ErrCorruptBitstream, "vp9: tile marker bit set")
	}
	for miRow := rowStart; miRow < rowEnd; miRow += 8 {
		t.leftNZ = [3][16]uint8{}
		t.leftPart = [8]uint8{}
		for miCol := t.colStart; miCol < t.colEnd; miCol += 8 {
			if err := t.decodePartition(miRow, miCol, block64x64, 3); err != nil {
				return err
			}
		}
	}
	return nil
}

// decodePartition decodes the square block of 8<<bsl pixels at miRow,
// miCol.
func (t *tileDecoder) decodePartition(miRow, miCol, bsize, bsl int) error {
	f := t.f
	if miRow >= f.miRows || miCol >= f.miCols {
		return nil
	}
	num8x8 := 1 << bsl
	hbs := num8x8 >> 1
	hasRows := miRow+hbs < f.miRows
	hasCols := miCol+hbs < f.miCols

	ctx := bsl*4 + int(t.leftPart[miRow&7]>>bsl&1)*2 + int(f.abovePart[miCol]>>bsl&1)
	probs := f.fc.Partition[ctx][:]
	if f.h.IntraOnlyFrame() {
		probs = kfPartitionProbs[ctx][:]
	}
	p := PartitionSplit
	switch {
	case hasRows && hasCols:
		var err error
		if p, err = entropy.ReadTree(&t.br, partitionTree, probs); err != nil {
			return err
		}
	case hasCols:
		if t.br.GetBit(probs[1]) == 0 {
			p = PartitionHorz
		}
	case hasRows:
		if t.br.GetBit(probs[2]) == 0 {
			p = PartitionVert
		}
	}
	t.counts.Partition[ctx][p]++

	sub := bsize - p
	var err error
	if hbs == 0 {
		err = t.decodeBlock(miRow, miCol, sub, 1, 1)
	} else {
		switch p {
		case PartitionNone:
			err = t.decodeBlock(miRow, miCol, sub, bsl+1, bsl+1)
		case PartitionHorz:
			err = t.decodeBlock(miRow, miCol, sub, bsl+1, bsl)
			if err == nil && hasRows {
				err = t.decodeBlock(miRow+hbs, miCol, sub, bsl+1, bsl)
			}
		case PartitionVert:
			err = t.decodeBlock(miRow, miCol, sub, bsl, bsl+1)
			if err == nil && hasCols {
				err = t.decodeBlock(miRow, miCol+hbs, sub, bsl, bsl+1)
			}
		case PartitionSplit:
			for i := 0; i < 4 && err == nil; i++ {
				err = t.decodePartition(miRow+hbs*(i>>1), miCol+hbs*(i&1), sub, bsl-1)
			}
		}
	}
	if err != nil {
		return err
	}

	if bsize == block8x8 || p != PartitionSplit {
		pc := partitionCtx[sub]
		for i := 0; i < num8x8; i++ {
			f.abovePart[miCol+i] = pc[0]
			t.leftPart[(miRow&7)+i] = pc[1]
		}
	}
	return nil
}

// decodeBlock reads the mode info of one block and reconstructs it. bwl
// and bhl give its size in 4x4 units, log2.
func (t *tileDecoder) decodeBlock(miRow, miCol, bsize, bwl, bhl int) error {
	f := t.f
	bw8, bh8 := 1<<(bwl-1), 1<<(bhl-1)
	xMis, yMis := min(bw8, f.miCols-miCol), min(bh8, f.miRows-miRow)

	idx := miRow*f.miCols + miCol
	b := &f.infos[idx]
	*b = blockInfo{Size: uint8(bsize)}
	for y := 0; y < yMis; y++ {
		for x := 0; x < xMis; x++ {
			f.grid[idx+y*f.miCols+x] = b
		}
	}
	t.b, t.miRow, t.miCol, t.bwl, t.bhl = b, miRow, miCol, bwl, bhl
	t.toLeft, t.toRight = -miCol*64, (f.miCols-bw8-miCol)*64
	t.toTop, t.toBottom = -miRow*64, (f.miRows-bh8-miRow)*64
	t.above, t.left = nil, nil
	if miRow > 0 {
		t.above = f.grid[idx-f.miCols]
	}
	if miCol > t.colStart {
		t.left = f.grid[idx-1]
	}

	if err := t.readModeInfo(xMis, yMis); err != nil {
		return errors.Wrapf(err, "block at %d,%d", miRow, miCol)
	}
	if b.Skip {
		t.resetSkipContext()
	}
	if !b.isInter() {
		t.reconstructIntra()
	} else {
		if err := t.predictInter(); err != nil {
			return errors.Wrapf(err, "block at %d,%d", miRow, miCol)
		}
		if !b.Skip {
			if eobs := t.reconstructInter(); bsize >= block8x8 && eobs == 0 {
				b.Skip = true
			}
		}
	}
	if t.br.Overread() {
		return errors.Wrapf(vpxerr.ErrCorruptBitstream, "vp9: tile data exhausted at block %d,%d", miRow, miCol)
	}
	if f.masks != nil {
		f.buildMask(b, miRow, miCol, bw8, bh8)
	}
	return nil
}

// resetSkipContext clears the nonzero flags along the edges of a block
// coded without residual.
func (t *tileDecoder) resetSkipContext() {
	for p := 0; p < 3; p++ {
		ss := min(p, 1)
		n4w, n4h := 1<<(t.bwl-ss), 1<<(t.bhl-ss)
		a := t.f.aboveNZ[p][(t.miCol*2)>>ss:]
		clear(a[:n4w])
		l := t.leftNZ[p][((t.miRow&7)*2)>>ss:]
		clear(l[:n4h])
	}
}

// add accumulates the counts of o into c.
func (c *FrameCounts) add(o *FrameCounts) {
	for i := range c.YMode {
		addCounts(c.YMode[i][:], o.YMode[i][:])
	}
	for i := range c.UVMode {
		addCounts(c.UVMode[i][:], o.UVMode[i][:])
	}
	for i := range c.Partition {
		addCounts(c.Partition[i][:], o.Partition[i][:])
	}
	for i := range c.SwitchableInterp {
		addCounts(c.SwitchableInterp[i][:], o.SwitchableInterp[i][:])
	}
	for i := range c.IntraInter {
		addCounts(c.IntraInter[i][:], o.IntraInter[i][:])
	}
	for i := range c.CompInter {
		addCounts(c.CompInter[i][:], o.CompInter[i][:])
	}
	for i := range c.SingleRef {
		addCounts(c.SingleRef[i][0][:], o.SingleRef[i][0][:])
		addCounts(c.SingleRef[i][1][:], o.SingleRef[i][1][:])
		addCounts(c.CompRef[i][:], o.CompRef[i][:])
	}
	for i := range c.Tx8x8 {
		addCounts(c.Tx8x8[i][:], o.Tx8x8[i][:])
		addCounts(c.Tx16x16[i][:], o.Tx16x16[i][:])
		addCounts(c.Tx32x32[i][:], o.Tx32x32[i][:])
	}
	for i := range c.Skip {
		addCounts(c.Skip[i][:], o.Skip[i][:])
	}
	for i := range c.InterMode {
		addCounts(c.InterMode[i][:], o.InterMode[i][:])
	}

	addCounts(c.MVJoints[:], o.MVJoints[:])
	for i := range c.MVComps {
		cc, oc := &c.MVComps[i], &o.MVComps[i]
		addCounts(cc.Sign[:], oc.Sign[:])
		addCounts(cc.Classes[:], oc.Classes[:])
		addCounts(cc.Class0[:], oc.Class0[:])
		for j := range cc.Bits {
			addCounts(cc.Bits[j][:], oc.Bits[j][:])
		}
		for j := range cc.Class0FP {
			addCounts(cc.Class0FP[j][:], oc.Class0FP[j][:])
		}
		addCounts(cc.FP[:], oc.FP[:])
		addCounts(cc.Class0HP[:], oc.Class0HP[:])
		addCounts(cc.HP[:], oc.HP[:])
	}

	for tx := range c.Coef {
		for i := range c.Coef[tx] {
			for j := range c.Coef[tx][i] {
				for k := range c.Coef[tx][i][j] {
					addCounts(c.EOBBranch[tx][i][j][k][:], o.EOBBranch[tx][i][j][k][:])
					for l := range c.Coef[tx][i][j][k] {
						addCounts(c.Coef[tx][i][j][k][l][:], o.Coef[tx][i][j][k][l][:])
					}
				}
			}
		}
	}
}

func addCounts(dst, src []uint32) {
	for i, v := range src {
		dst[i] += v
	}
}
