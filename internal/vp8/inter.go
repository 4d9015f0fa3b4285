package vp8

import "github.com/deepteams/vpx/internal/dsp"

// clampToBorder limits a motion vector that points entirely outside the
// frame to one macroblock past the edge, dropping its fractional part.
func clampToBorder(v motionVector, b mvBounds) motionVector {
	col, row := int(v.Col), int(v.Row)
	if col < b.toLeft-(19<<3) {
		col = b.toLeft - mvMargin
	} else if col > b.toRight+(18<<3) {
		col = b.toRight + mvMargin
	}
	if row < b.toTop-(19<<3) {
		row = b.toTop - mvMargin
	} else if row > b.toBottom+(18<<3) {
		row = b.toBottom + mvMargin
	}
	return motionVector{Row: int16(row), Col: int16(col)}
}

// clampChromaToBorder is clampToBorder for a chroma vector.
func clampChromaToBorder(v motionVector, b mvBounds) motionVector {
	col, row := int(v.Col), int(v.Row)
	if 2*col < b.toLeft-(19<<3) {
		col = (b.toLeft - mvMargin) >> 1
	} else if 2*col > b.toRight+(18<<3) {
		col = (b.toRight + mvMargin) >> 1
	}
	if 2*row < b.toTop-(19<<3) {
		row = (b.toTop - mvMargin) >> 1
	} else if 2*row > b.toBottom+(18<<3) {
		row = (b.toBottom + mvMargin) >> 1
	}
	return motionVector{Row: int16(row), Col: int16(col)}
}

// chromaMV derives the chroma vector of a whole-macroblock luma vector,
// rounding away from zero.
func chromaMV(v motionVector, mask int16) motionVector {
	half := func(x int16) int16 {
		if x < 0 {
			x--
		} else {
			x++
		}
		return (x / 2) & mask
	}
	return motionVector{Row: half(v.Row), Col: half(v.Col)}
}

// splitChromaMV averages the four luma sub-block vectors covering chroma
// sub-block (i, j).
func splitChromaMV(mvs *[16]motionVector, i, j int, mask int16) motionVector {
	k := i*8 + j*2
	avg := func(a, b, c, d int16) int16 {
		sum := int(a) + int(b) + int(c) + int(d)
		if sum < 0 {
			sum -= 4
		} else {
			sum += 4
		}
		return int16(sum/8) & mask
	}
	return motionVector{
		Row: avg(mvs[k].Row, mvs[k+1].Row, mvs[k+4].Row, mvs[k+5].Row),
		Col: avg(mvs[k].Col, mvs[k+1].Col, mvs[k+4].Col, mvs[k+5].Col),
	}
}

// predictInter builds the motion-compensated prediction of an inter
// macroblock in the work buffer.
func (w *worker) predictInter(mbX, mbY int, mb *mbInfo) {
	ref := w.refs[mb.Ref]
	b := w.d.bounds(mbX, mbY)
	buf := w.yuv[:]
	x, y := mbX*16, mbY*16
	uvW, uvH := ref.UVWidth(), ref.UVHeight()

	if mb.YMode != modeSplit {
		v := mb.MV
		if mb.NeedClamp {
			v = clampToBorder(v, b)
		}
		w.predictBlock(buf, yOff, ref.Y, ref.YStride, ref.AlignedW, ref.AlignedH, x, y, v, 16, 16)
		uv := chromaMV(v, w.uvMask)
		w.predictBlock(buf, uOff, ref.U, ref.UVStride, uvW, uvH, x/2, y/2, uv, 8, 8)
		w.predictBlock(buf, vOff, ref.V, ref.UVStride, uvW, uvH, x/2, y/2, uv, 8, 8)
		return
	}

	for n := 0; n < 16; n++ {
		v := mb.MVs[n]
		if mb.NeedClamp {
			v = clampToBorder(v, b)
		}
		bx, by := (n&3)*4, (n>>2)*4
		w.predictBlock(buf, yOff+by*bps+bx, ref.Y, ref.YStride, ref.AlignedW, ref.AlignedH, x+bx, y+by, v, 4, 4)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			uv := splitChromaMV(&mb.MVs, i, j, w.uvMask)
			if mb.NeedClamp {
				uv = clampChromaToBorder(uv, b)
			}
			bx, by := j*4, i*4
			w.predictBlock(buf, uOff+by*bps+bx, ref.U, ref.UVStride, uvW, uvH, x/2+bx, y/2+by, uv, 4, 4)
			w.predictBlock(buf, vOff+by*bps+bx, ref.V, ref.UVStride, uvW, uvH, x/2+bx, y/2+by, uv, 4, 4)
		}
	}
}

// predictBlock predicts a bw x bh block at plane position (px, py)
// displaced by v. Reads outside the plane are clamped to its edge.
func (w *worker) predictBlock(dst []byte, dstOff int, plane []byte, stride, pw, ph, px, py int, v motionVector, bw, bh int) {
	x := px + int(v.Col>>3)
	y := py + int(v.Row>>3)
	fx, fy := int(v.Col&7), int(v.Row&7)

	src, srcOff, srcStride := plane, y*stride+x, stride
	if x-dsp.SixtapBorder < 0 || y-dsp.SixtapBorder < 0 ||
		x+bw+dsp.SixtapBorder+1 > pw || y+bh+dsp.SixtapBorder+1 > ph {
		fw, fh := bw+5, bh+5
		for j := 0; j < fh; j++ {
			sy := clampInt(y-dsp.SixtapBorder+j, 0, ph-1)
			row := plane[sy*stride:]
			for i := 0; i < fw; i++ {
				w.fetch[j*fw+i] = row[clampInt(x-dsp.SixtapBorder+i, 0, pw-1)]
			}
		}
		src, srcOff, srcStride = w.fetch[:], dsp.SixtapBorder*fw+dsp.SixtapBorder, fw
	}

	if fx == 0 && fy == 0 {
		dsp.CopyBlock(dst, dstOff, bps, src, srcOff, srcStride, bw, bh)
		return
	}
	w.interp(dst, dstOff, bps, src, srcOff, srcStride, fx, fy, bw, bh)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
