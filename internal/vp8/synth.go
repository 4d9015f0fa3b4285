package vp8

import (
	"encoding/binary"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/entropy"
)

// SynthFrame describes a VP8 frame whose macroblocks are all DC predicted
// and carry at most a Y2 DC coefficient. Packages layered on this one use
// it to build streams for their tests.
type SynthFrame struct {
	Key, Hidden   bool
	Width, Height int
	BaseQ         int
	FilterLevel   int
	// DC holds the Y2 DC level, in [-4, 4], of each macroblock in raster
	// order. Zero and missing entries code skipped macroblocks.
	DC []int

	RefreshGolden, RefreshAlt bool
	NoRefreshLast             bool
}

const (
	synthSkipProb  = 200
	synthProbIntra = 60
)

func (f *SynthFrame) dc(i int) int {
	if i < len(f.DC) {
		return f.DC[i]
	}
	return 0
}

// Encode returns the coded frame, a single token partition.
func (f *SynthFrame) Encode() []byte {
	mbW, mbH := (f.Width+15)>>4, (f.Height+15)>>4
	hdr := bitio.NewBoolWriter(0)
	if f.Key {
		hdr.PutBitUniform(0) // color space
		hdr.PutBitUniform(0) // clamping type
	}
	hdr.PutBitUniform(0) // segmentation
	hdr.PutBitUniform(0) // normal filter
	hdr.PutBits(uint32(f.FilterLevel), 6)
	hdr.PutBits(0, 3)
	hdr.PutBitUniform(0) // loop filter deltas
	hdr.PutBits(0, 2)
	hdr.PutBits(uint32(f.BaseQ), 7)
	for i := 0; i < 5; i++ {
		hdr.PutBitUniform(0)
	}
	if !f.Key {
		hdr.PutBitUniform(boolInt(f.RefreshGolden))
		hdr.PutBitUniform(boolInt(f.RefreshAlt))
		if !f.RefreshGolden {
			hdr.PutBits(0, 2)
		}
		if !f.RefreshAlt {
			hdr.PutBits(0, 2)
		}
		hdr.PutBitUniform(0)
		hdr.PutBitUniform(0)
	}
	hdr.PutBitUniform(1) // refresh entropy probs
	if !f.Key {
		hdr.PutBitUniform(boolInt(!f.NoRefreshLast))
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
	hdr.PutBits(synthSkipProb, 8)
	if !f.Key {
		hdr.PutBits(synthProbIntra, 8)
		hdr.PutBits(128, 8)
		hdr.PutBits(128, 8)
		hdr.PutBitUniform(0)
		hdr.PutBitUniform(0)
		for c := range mvUpdateProbs {
			for _, p := range mvUpdateProbs[c] {
				hdr.PutBit(0, int(p))
			}
		}
	}

	tw := bitio.NewBoolWriter(0)
	topDC := make([]int, mbW)
	for mbY := 0; mbY < mbH; mbY++ {
		leftDC := 0
		for mbX := 0; mbX < mbW; mbX++ {
			dc := f.dc(mbY*mbW + mbX)
			hdr.PutBit(boolInt(dc == 0), synthSkipProb)
			if f.Key {
				putTree(hdr, kfYModeTree, kfYModeProbs[:], modeDC)
				putTree(hdr, uvModeTree, kfUVModeProbs[:], modeDC)
			} else {
				hdr.PutBit(0, synthProbIntra)
				putTree(hdr, yModeTree, defaultYModeProbs[:], modeDC)
				putTree(hdr, uvModeTree, defaultUVModeProbs[:], modeDC)
			}
			if dc == 0 {
				topDC[mbX], leftDC = 0, 0
				continue
			}
			putY2DC(tw, &defaultCoeffProbs, topDC[mbX]+leftDC, dc)
			topDC[mbX], leftDC = 1, 1
			for i := 0; i < 16; i++ {
				tw.PutBit(0, int(defaultCoeffProbs[planeY1WithY2][coeffBands[1]][0][0]))
			}
			for i := 0; i < 8; i++ {
				tw.PutBit(0, int(defaultCoeffProbs[planeUV][0][0][0]))
			}
		}
	}

	first := hdr.Finish()
	tag := uint32(len(first)) << 5
	if !f.Key {
		tag |= 1
	}
	if !f.Hidden {
		tag |= 1 << 4
	}
	out := []byte{byte(tag), byte(tag >> 8), byte(tag >> 16)}
	if f.Key {
		out = append(out, 0x9d, 0x01, 0x2a)
		out = binary.LittleEndian.AppendUint16(out, uint16(f.Width))
		out = binary.LittleEndian.AppendUint16(out, uint16(f.Height))
	}
	out = append(out, first...)
	return append(out, tw.Finish()...)
}

func putTree(bw *bitio.BoolWriter, t entropy.Tree, probs []uint8, sym int) {
	bits, nodes, ok := t.Path(sym)
	if !ok {
		panic("symbol not in tree")
	}
	for i, b := range bits {
		bw.PutBit(b, int(probs[nodes[i]]))
	}
}

func putY2DC(bw *bitio.BoolWriter, probs *tokenProbs, ctx, v int) {
	p := probs[planeY2][0][ctx][:]
	bw.PutBit(1, int(p[0]))
	bw.PutBit(1, int(p[1]))
	abs := v
	if abs < 0 {
		abs = -abs
	}
	next := 1
	if abs == 1 {
		bw.PutBit(0, int(p[2]))
	} else {
		next = 2
		bw.PutBit(1, int(p[2]))
		bw.PutBit(0, int(p[3]))
		if abs == 2 {
			bw.PutBit(0, int(p[4]))
		} else {
			bw.PutBit(1, int(p[4]))
			bw.PutBit(abs-3, int(p[5]))
		}
	}
	sign := 0
	if v < 0 {
		sign = 1
	}
	bw.PutBitUniform(sign)
	bw.PutBit(0, int(probs[planeY2][coeffBands[1]][next][0]))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
