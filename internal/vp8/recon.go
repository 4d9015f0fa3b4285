package vp8

import (
	"github.com/deepteams/vpx/internal/dsp"
	"github.com/deepteams/vpx/internal/frame"
)

// Work buffer layout: one 16x16 luma block and two 8x8 chroma blocks with
// a border row above and four columns to the left.
const (
	bps     = dsp.BPS
	yuvSize = bps*17 + bps*9
	yOff    = bps*1 + 8
	uOff    = yOff + bps*16 + bps
	vOff    = uOff + 16
)

// worker reconstructs macroblock rows. Each goroutine owns one.
type worker struct {
	d      *Decoder
	out    *frame.Buffer
	refs   [numRefFrames]*frame.Buffer
	interp dsp.InterpFunc
	// uvMask clears the fractional chroma motion in full-pixel streams.
	uvMask int16

	yuv   [yuvSize]byte
	res   residuals
	left  tokenContext
	fetch [(16 + 5) * (16 + 5)]byte
}

func fillBytes(dst []byte, v byte, n int) {
	for i := 0; i < n; i++ {
		dst[i] = v
	}
}

// loadEdges copies the unfiltered neighbouring pixels of macroblock
// (mbX, mbY) into the work buffer, substituting 127 above the frame and
// 129 left of it.
func (w *worker) loadEdges(mbX, mbY int) {
	buf := w.yuv[:]
	out := w.out
	last := mbX == w.d.mbW-1

	loadPlane := func(plane []byte, stride, base, size int, topRight bool) {
		x := mbX * size
		y := mbY * size
		extra := 0
		if topRight {
			extra = 4
		}
		if mbY == 0 {
			fillBytes(buf[base-bps-1:], 127, size+1+extra)
		} else {
			row := (y-1)*stride + x
			if mbX == 0 {
				buf[base-bps-1] = 129
			} else {
				buf[base-bps-1] = plane[row-1]
			}
			copy(buf[base-bps:base-bps+size], plane[row:row+size])
			if topRight {
				if last {
					fillBytes(buf[base-bps+size:], plane[row+size-1], 4)
				} else {
					copy(buf[base-bps+size:base-bps+size+4], plane[row+size:row+size+4])
				}
			}
		}
		for j := 0; j < size; j++ {
			if mbX == 0 {
				buf[base+j*bps-1] = 129
			} else {
				buf[base+j*bps-1] = plane[(y+j)*stride+x-1]
			}
		}
	}
	loadPlane(out.Y, out.YStride, yOff, 16, true)
	loadPlane(out.U, out.UVStride, uOff, 8, false)
	loadPlane(out.V, out.UVStride, vOff, 8, false)
}

func addResidual(kind uint8, src []int16, dst []byte) {
	switch kind {
	case txFull:
		dsp.Transform(src, dst, false)
	case txAC3:
		dsp.TransformAC3(src, dst)
	case txDC:
		dsp.TransformDC(src, dst)
	}
}

// addChromaResidual adds the residual of one 8x8 chroma block given the
// kinds of its four sub-blocks.
func addChromaResidual(kinds []uint8, src []int16, dst []byte) {
	var most uint8
	for _, k := range kinds {
		most = max(most, k)
	}
	switch {
	case most >= txAC3:
		dsp.TransformUV(src, dst)
	case most == txDC:
		dsp.TransformDCUV(src, dst)
	}
}

// reconstruct predicts macroblock (mbX, mbY), adds its residual and
// writes the result to the output frame.
func (w *worker) reconstruct(mbX, mbY int, mb *mbInfo) {
	buf := w.yuv[:]
	res := &w.res

	if mb.Ref != refIntra {
		w.predictInter(mbX, mbY, mb)
	} else {
		w.loadEdges(mbX, mbY)
		if mb.YMode == modeBPred {
			// Sub-blocks on the right edge reuse the above-right pixels
			// of the macroblock.
			topRight := buf[yOff-bps+16:]
			for r := 4; r < 16; r += 4 {
				copy(topRight[r*bps:r*bps+4], topRight[:4])
			}
		} else {
			dsp.PredLuma16[dsp.CheckMode(mbX, mbY, int(mb.YMode))](buf, yOff)
		}
		uvMode := dsp.CheckMode(mbX, mbY, int(mb.UVMode))
		dsp.PredChroma8[uvMode](buf, uOff)
		dsp.PredChroma8[uvMode](buf, vOff)
	}

	for n := 0; n < 16; n++ {
		off := yOff + dsp.Scan[n]
		if mb.Ref == refIntra && mb.YMode == modeBPred {
			dsp.PredLuma4[mb.BModes[n]](buf, off)
		}
		addResidual(res.Kind[n], res.Coeffs[16*n:], buf[off:])
	}
	addChromaResidual(res.Kind[16:20], res.Coeffs[16*16:], buf[uOff:])
	addChromaResidual(res.Kind[20:24], res.Coeffs[20*16:], buf[vOff:])

	w.store(mbX, mbY)
}

// store copies the work buffer into the output frame.
func (w *worker) store(mbX, mbY int) {
	out := w.out
	buf := w.yuv[:]
	yo := mbY*16*out.YStride + mbX*16
	for j := 0; j < 16; j++ {
		copy(out.Y[yo+j*out.YStride:yo+j*out.YStride+16], buf[yOff+j*bps:yOff+j*bps+16])
	}
	uvo := mbY*8*out.UVStride + mbX*8
	for j := 0; j < 8; j++ {
		copy(out.U[uvo+j*out.UVStride:uvo+j*out.UVStride+8], buf[uOff+j*bps:uOff+j*bps+8])
		copy(out.V[uvo+j*out.UVStride:uvo+j*out.UVStride+8], buf[vOff+j*bps:vOff+j*bps+8])
	}
}
