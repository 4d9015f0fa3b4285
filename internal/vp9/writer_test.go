package vp9

import (
	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/entropy"
)

// bitWriter writes MSB-first fixed-width fields.
type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) put(v, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>i&1 != 0 {
			w.buf[w.n/8] |= 0x80 >> (w.n % 8)
		}
		w.n++
	}
}

func (w *bitWriter) flag(b bool) {
	if b {
		w.put(1, 1)
	} else {
		w.put(0, 1)
	}
}

func (w *bitWriter) signed(v, n int) {
	if v < 0 {
		w.put(-v, n)
		w.flag(true)
		return
	}
	w.put(v, n)
	w.flag(false)
}

type testSeg struct {
	updateMap  bool
	treeProbs  [MaxSegments - 1]int // 0 leaves the probability at 255
	temporal   bool
	predProbs  [3]int
	updateData bool
	absDelta   bool
	features   map[[2]int]int
}

// testHeader is an uncompressed header writer. Zero values give a shown
// 8-bit 4:2:0 key frame.
type testHeader struct {
	profile      int
	showExisting bool
	showIdx      int

	inter        bool
	hidden       bool
	errorRes     bool
	intraOnly    bool
	resetContext int

	highBitDepth bool
	colorSpace   int
	fullRange    bool
	subX, subY   bool

	width, height    int
	renderW, renderH int

	refresh  uint8
	refIdx   [RefsPerFrame]int
	signBias [RefsPerFrame]bool
	// 1-based reference whose size is reused; 0 codes the size explicitly.
	sizeFromRef int
	hp          bool
	// 0..3 literal filter, 4 switchable.
	interp int

	refreshContext bool
	parallel       bool
	contextIdx     int

	lfLevel, sharpness int
	lfDeltaEnabled     bool
	lfUpdate           bool
	refDeltas          [4]int // zero entries are not updated
	modeDeltas         [2]int

	baseQ  int
	deltaQ [3]int

	seg *testSeg

	tileColsLog2 int
	tileRowsLog2 int

	// compressedSize overrides len(compressed) when non-zero.
	compressedSize int
	compressed     []byte
	tiles          []byte
}

func (th *testHeader) writeColor(w *bitWriter) {
	if th.profile >= 2 {
		w.flag(th.highBitDepth)
	}
	w.put(th.colorSpace, 3)
	if th.colorSpace != ColorSpaceSRGB {
		w.flag(th.fullRange)
		if th.profile == 1 || th.profile == 3 {
			w.flag(th.subX)
			w.flag(th.subY)
			w.put(0, 1)
		}
	} else if th.profile == 1 || th.profile == 3 {
		w.put(0, 1)
	}
}

func (th *testHeader) writeRender(w *bitWriter) {
	w.flag(th.renderW != 0)
	if th.renderW != 0 {
		w.put(th.renderW-1, 16)
		w.put(th.renderH-1, 16)
	}
}

func (th *testHeader) writeSize(w *bitWriter) {
	w.put(th.width-1, 16)
	w.put(th.height-1, 16)
	th.writeRender(w)
}

func writeDeltas(w *bitWriter, deltas []int) {
	for _, v := range deltas {
		w.flag(v != 0)
		if v != 0 {
			w.signed(v, 6)
		}
	}
}

func writeProbs(w *bitWriter, probs []int) {
	for _, p := range probs {
		w.flag(p != 0)
		if p != 0 {
			w.put(p, 8)
		}
	}
}

func (th *testHeader) writeSegmentation(w *bitWriter) {
	s := th.seg
	w.flag(s != nil)
	if s == nil {
		return
	}
	w.flag(s.updateMap)
	if s.updateMap {
		writeProbs(w, s.treeProbs[:])
		w.flag(s.temporal)
		if s.temporal {
			writeProbs(w, s.predProbs[:])
		}
	}
	w.flag(s.updateData)
	if !s.updateData {
		return
	}
	w.flag(s.absDelta)
	for seg := 0; seg < MaxSegments; seg++ {
		for f := 0; f < SegLvlMax; f++ {
			v, ok := s.features[[2]int{seg, f}]
			w.flag(ok)
			if !ok {
				continue
			}
			abs := v
			if abs < 0 {
				abs = -abs
			}
			w.put(abs, segFeatureBits[f])
			if segFeatureSigned[f] {
				w.flag(v < 0)
			}
		}
	}
}

func (th *testHeader) encode() []byte {
	w := &bitWriter{}
	w.put(frameMarker, 2)
	w.put(th.profile&1, 1)
	w.put(th.profile>>1, 1)
	if th.profile == 3 {
		w.put(0, 1)
	}
	w.flag(th.showExisting)
	if th.showExisting {
		w.put(th.showIdx, 3)
		return w.buf
	}
	w.flag(th.inter)
	w.flag(!th.hidden)
	w.flag(th.errorRes)

	if !th.inter {
		w.put(0x498342, 24)
		th.writeColor(w)
		th.writeSize(w)
	} else {
		if th.hidden {
			w.flag(th.intraOnly)
		}
		if !th.errorRes {
			w.put(th.resetContext, 2)
		}
		if th.intraOnly {
			w.put(0x498342, 24)
			if th.profile > 0 {
				th.writeColor(w)
			}
			w.put(int(th.refresh), 8)
			th.writeSize(w)
		} else {
			w.put(int(th.refresh), 8)
			for i := 0; i < RefsPerFrame; i++ {
				w.put(th.refIdx[i], 3)
				w.flag(th.signBias[i])
			}
			for i := 1; i <= RefsPerFrame; i++ {
				w.flag(th.sizeFromRef == i)
				if th.sizeFromRef == i {
					break
				}
			}
			if th.sizeFromRef == 0 {
				w.put(th.width-1, 16)
				w.put(th.height-1, 16)
			}
			th.writeRender(w)
			w.flag(th.hp)
			w.flag(th.interp == InterpSwitchable)
			if th.interp != InterpSwitchable {
				w.put(th.interp, 2)
			}
		}
	}

	if !th.errorRes {
		w.flag(th.refreshContext)
		w.flag(th.parallel)
	}
	w.put(th.contextIdx, 2)

	w.put(th.lfLevel, 6)
	w.put(th.sharpness, 3)
	w.flag(th.lfDeltaEnabled)
	if th.lfDeltaEnabled {
		w.flag(th.lfUpdate)
		if th.lfUpdate {
			writeDeltas(w, th.refDeltas[:])
			writeDeltas(w, th.modeDeltas[:])
		}
	}

	w.put(th.baseQ, 8)
	for _, dq := range th.deltaQ {
		w.flag(dq != 0)
		if dq != 0 {
			w.signed(dq, 4)
		}
	}
	th.writeSegmentation(w)

	minLog2, maxLog2 := tileColsRange(((th.width+7)>>3 + 7) >> 3)
	for i := minLog2; i < th.tileColsLog2; i++ {
		w.flag(true)
	}
	if th.tileColsLog2 < maxLog2 {
		w.flag(false)
	}
	w.flag(th.tileRowsLog2 > 0)
	if th.tileRowsLog2 > 0 {
		w.flag(th.tileRowsLog2 > 1)
	}

	size := len(th.compressed)
	if th.compressedSize != 0 {
		size = th.compressedSize
	}
	w.put(size, 16)

	out := append(w.buf, th.compressed...)
	return append(out, th.tiles...)
}

// probWriter writes compressed header probability updates.
type probWriter struct {
	*bitio.BoolWriter
}

func newProbWriter() probWriter {
	pw := probWriter{bitio.NewBoolWriter(0)}
	pw.PutBitUniform(0) // marker
	return pw
}

// keep writes n "no update" flags.
func (pw probWriter) keep(n int) {
	for i := 0; i < n; i++ {
		pw.PutBit(0, entropy.DiffUpdateProb)
	}
}

// update writes a delta update with a remap index below 16.
func (pw probWriter) update(v int) {
	pw.PutBit(1, entropy.DiffUpdateProb)
	pw.PutBitUniform(0)
	pw.PutBits(uint32(v), 4)
}

// mv writes a 7-bit motion vector probability update.
func (pw probWriter) mv(v int) {
	pw.PutBit(1, entropy.DiffUpdateProb)
	pw.PutBits(uint32(v), 7)
}

func (pw probWriter) txMode(mode int) {
	pw.PutBits(uint32(min(mode, TxModeAllow32x32)), 2)
	if mode >= TxModeAllow32x32 {
		pw.PutBitUniform(mode - TxModeAllow32x32)
	}
}

// noCoefUpdates writes the per-size coefficient update flags as unset.
func (pw probWriter) noCoefUpdates(txMode int) {
	for tx := Tx4x4; tx <= txModeToBiggestTxSize[txMode]; tx++ {
		pw.PutBitUniform(0)
	}
}

// intraCompressed returns a compressed header for a key or intra-only
// frame that changes nothing.
func intraCompressed() []byte {
	pw := newProbWriter()
	pw.txMode(TxModeAllow8x8)
	pw.noCoefUpdates(TxModeAllow8x8)
	pw.keep(skipContexts)
	return pw.Finish()
}

// interCompressed returns a compressed header for an inter frame with a
// fixed filter, single references and no high precision motion vectors
// that changes nothing.
func interCompressed() []byte {
	pw := newProbWriter()
	pw.txMode(TxModeOnly4x4)
	pw.noCoefUpdates(TxModeOnly4x4)
	pw.keep(skipContexts)
	pw.keep(interModeContexts * (NumInterModes - 1))
	pw.keep(intraInterContexts)
	pw.keep(refContexts * 2)
	pw.keep(blockSizeGroups * (NumIntraModes - 1))
	pw.keep(partitionContexts * (NumPartitionTypes - 1))
	pw.keep(NumMVJoints - 1)
	pw.keep(2 * (1 + numMVClasses - 1 + class0Size - 1 + mvOffsetBits))
	pw.keep(2 * (class0Size*(mvFPSize-1) + mvFPSize - 1))
	return pw.Finish()
}

// putTree writes symbol v of tree t.
func putTree(bw *bitio.BoolWriter, t entropy.Tree, probs []uint8, v int) {
	bits, nodes, ok := t.Path(v)
	if !ok {
		panic("symbol not in tree")
	}
	for i, b := range bits {
		bw.PutBit(b, int(probs[nodes[i]]))
	}
}
