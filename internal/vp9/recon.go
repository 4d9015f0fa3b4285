package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/dsp"
	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vpxerr"
)

// interpExtend is the number of pixels the interpolation filters read
// beyond a block edge.
const interpExtend = 4

func planeBuf(b *frame.Buffer, p int) ([]byte, int) {
	switch p {
	case 0:
		return b.Y, b.YStride
	case 1:
		return b.U, b.UVStride
	}
	return b.V, b.UVStride
}

// maxBlocks returns the number of 4x4 columns and rows of plane p that the
// current block has inside the frame.
func (t *tileDecoder) maxBlocks(p int) (w, h int) {
	ss := min(p, 1)
	w, h = 1<<(t.bwl-ss), 1<<(t.bhl-ss)
	if t.toRight < 0 {
		w += t.toRight >> (5 + ss)
	}
	if t.toBottom < 0 {
		h += t.toBottom >> (5 + ss)
	}
	return w, h
}

func (t *tileDecoder) txSizeOf(p int) int {
	if p > 0 {
		return t.b.uvTxSize()
	}
	return int(t.b.TxSize)
}

// reconstructIntra predicts and reconstructs an intra block one transform
// block at a time, so that later transform blocks predict from earlier
// reconstructed ones.
func (t *tileDecoder) reconstructIntra() {
	f, b := t.f, t.b
	for p := 0; p < 3; p++ {
		ss := min(p, 1)
		buf, stride := planeBuf(f.out, p)
		tx := t.txSizeOf(p)
		step := 1 << tx
		maxW, maxH := t.maxBlocks(p)
		bx, by := (t.miCol*8)>>ss, (t.miRow*8)>>ss
		for row := 0; row < maxH; row += step {
			for col := 0; col < maxW; col += step {
				mode := int(b.UVMode)
				if p == 0 {
					mode = int(b.Mode)
					if b.Size < block8x8 {
						mode = int(b.SubModes[row<<1+col])
					}
				}
				x, y := bx+col*4, by+row*4
				off := y*stride + x
				haveAbove := row > 0 || t.above != nil
				haveLeft := col > 0 || t.left != nil
				haveRight := col+step < 1<<(t.bwl-ss)
				t.intraEdges(buf, stride, p, x, y, 4<<tx, haveAbove, haveLeft, haveRight)
				dsp.PredictIntra(mode, 4<<tx, buf, off, stride, &t.edges, haveAbove, haveLeft)
				if b.Skip {
					continue
				}
				txType := dsp.DCTDCT
				if p == 0 && !f.lossless {
					txType = intraTxType[mode]
				}
				if eob := t.decodeTokens(p, tx, col, row, maxW, maxH, txType); eob > 0 {
					t.inverseTransform(tx, txType, eob, buf, off, stride)
				}
			}
		}
	}
}

// intraEdges gathers the neighbours of the bs x bs transform block at x, y
// of plane p. Pixels past the decoded area repeat the last one; missing
// rows and columns take the fixed values 127 above and 129 left.
func (t *tileDecoder) intraEdges(buf []byte, stride, p, x, y, bs int, haveAbove, haveLeft, haveRight bool) {
	ss := min(p, 1)
	maxX := (t.f.miCols*8)>>ss - 1
	maxY := (t.f.miRows*8)>>ss - 1
	e := &t.edges

	if haveAbove {
		above := buf[(y-1)*stride:]
		for i := 0; i < bs; i++ {
			e.Above[1+i] = above[min(maxX, x+i)]
		}
		for i := bs; i < 2*bs; i++ {
			if bs == 4 && haveRight {
				e.Above[1+i] = above[min(maxX, x+i)]
			} else {
				e.Above[1+i] = e.Above[bs]
			}
		}
		e.Above[0] = 129
		if haveLeft {
			e.Above[0] = above[x-1]
		}
	} else {
		for i := 0; i <= 2*bs; i++ {
			e.Above[i] = 127
		}
	}

	for i := 0; i < bs; i++ {
		if haveLeft {
			e.Left[i] = buf[min(maxY, y+i)*stride+x-1]
		} else {
			e.Left[i] = 129
		}
	}
}

// decodeTokens reads the coefficients of one transform block of plane p
// into t.coefs and updates the nonzero contexts, which are cleared for
// the part of the block outside the frame. It returns the end of block.
func (t *tileDecoder) decodeTokens(p, tx, col, row, maxW, maxH int, txType dsp.TxType) int {
	f, b := t.f, t.b
	ss := min(p, 1)
	a := f.aboveNZ[p][(t.miCol*2)>>ss+col:]
	l := t.leftNZ[p][((t.miRow&7)*2)>>ss+row:]
	n := 1 << tx
	ctx := b2i(anySet(a[:n])) + b2i(anySet(l[:n]))

	pt, ref := min(p, 1), b2i(b.isInter())
	eob := decodeCoefs(&t.br, &f.fc.Coef[tx][pt][ref], &t.counts.Coef[tx][pt][ref], &t.counts.EOBBranch[tx][pt][ref],
		&scanOrders[tx][txType], tx, ctx, f.dequant[b.Segment][pt], t.coefs[:16<<(2*tx)], t.cache[:])

	nz := uint8(b2i(eob > 0))
	for i := 0; i < n; i++ {
		a[i], l[i] = 0, 0
		if col+i < maxW {
			a[i] = nz
		}
		if row+i < maxH {
			l[i] = nz
		}
	}
	return eob
}

func anySet(s []uint8) bool {
	for _, v := range s {
		if v != 0 {
			return true
		}
	}
	return false
}

// inverseTransform adds the residual in t.coefs to dst and clears the
// coefficients for the next block.
func (t *tileDecoder) inverseTransform(tx int, txType dsp.TxType, eob int, dst []byte, off, stride int) {
	coefs := t.coefs[:16<<(2*tx)]
	if t.f.lossless {
		dsp.IWHT4x4Add(coefs, dst, off, stride)
	} else {
		dsp.InverseTransformAdd(dsp.TxSize(tx), txType, coefs, dst, off, stride)
	}
	scan := scanOrders[tx][txType].scan
	for _, pos := range scan[:eob] {
		coefs[pos] = 0
	}
}

// reconstructInter adds the residual of an inter block to its prediction
// and returns the summed end of block positions.
func (t *tileDecoder) reconstructInter() int {
	eobs := 0
	for p := 0; p < 3; p++ {
		ss := min(p, 1)
		buf, stride := planeBuf(t.f.out, p)
		tx := t.txSizeOf(p)
		step := 1 << tx
		maxW, maxH := t.maxBlocks(p)
		bx, by := (t.miCol*8)>>ss, (t.miRow*8)>>ss
		for row := 0; row < maxH; row += step {
			for col := 0; col < maxW; col += step {
				eob := t.decodeTokens(p, tx, col, row, maxW, maxH, dsp.DCTDCT)
				if eob > 0 {
					t.inverseTransform(tx, dsp.DCTDCT, eob, buf, (by+row*4)*stride+bx+col*4, stride)
				}
				eobs += eob
			}
		}
	}
	return eobs
}

// predictInter builds the motion compensated prediction of an inter block
// in every plane. A second reference is averaged into the first.
func (t *tileDecoder) predictInter() error {
	f, b := t.f, t.b
	ks := &dsp.Kernels[b.Filter]
	for r := 0; r < 1+b2i(b.compound()); r++ {
		ref := f.refs[b.Ref[r]-LastFrame]
		if ref == nil {
			return errors.Wrapf(vpxerr.ErrUninitializedReference, "vp9: reference frame %d", b.Ref[r])
		}
		if ref.Width != f.out.Width || ref.Height != f.out.Height {
			return errors.Wrapf(vpxerr.ErrUnsupported, "vp9: scaled reference %dx%d for a %dx%d frame",
				ref.Width, ref.Height, f.out.Width, f.out.Height)
		}
		for p := 0; p < 3; p++ {
			ss := min(p, 1)
			w, h := 4<<(t.bwl-ss), 4<<(t.bhl-ss)
			if b.Size >= block8x8 {
				t.predictBlock(ref, p, r, ks, 0, 0, w, h, w, h, b.MV[r])
				continue
			}
			if p == 0 {
				for i := 0; i < 4; i++ {
					t.predictBlock(ref, p, r, ks, (i&1)*4, (i>>1)*4, 4, 4, w, h, b.SubMVs[i][r])
				}
				continue
			}
			t.predictBlock(ref, p, r, ks, 0, 0, 4, 4, w, h, averageMV(b, r))
		}
	}
	return nil
}

// averageMV is the chroma vector of a block below 8x8: the rounded mean of
// its four luma sub-block vectors.
func averageMV(b *blockInfo, r int) motionVector {
	var row, col int
	for i := range b.SubMVs {
		row += int(b.SubMVs[i][r].Row)
		col += int(b.SubMVs[i][r].Col)
	}
	round := func(v int) int16 {
		if v < 0 {
			return int16((v - 2) / 4)
		}
		return int16((v + 2) / 4)
	}
	return motionVector{Row: round(row), Col: round(col)}
}

// predictBlock predicts the w x h area at x, y within the block, whose
// plane size is bw x bh, from reference ref with vector mv. Reference
// pixels outside the visible picture repeat its edge.
func (t *tileDecoder) predictBlock(ref *frame.Buffer, p, r int, ks *dsp.KernelSet, x, y, w, h, bw, bh int, mv motionVector) {
	ss := min(p, 1)
	dst, stride := planeBuf(t.f.out, p)
	src, sstride := planeBuf(ref, p)
	fw, fh := ref.Width, ref.Height
	if p > 0 {
		fw, fh = (fw+1)>>1, (fh+1)>>1
	}

	// Vector in 1/16 pel of the plane, limited to where it still reaches
	// visible pixels.
	spelLeft := (interpExtend + bw) << dsp.SubpelBits
	spelTop := (interpExtend + bh) << dsp.SubpelBits
	scale := 1 << (1 - ss)
	mvRow := clamp(int(mv.Row)*scale, t.toTop*scale-spelTop, t.toBottom*scale+spelTop-16)
	mvCol := clamp(int(mv.Col)*scale, t.toLeft*scale-spelLeft, t.toRight*scale+spelLeft-16)

	x0 := (t.miCol*8)>>ss + x + mvCol>>dsp.SubpelBits
	y0 := (t.miRow*8)>>ss + y + mvRow>>dsp.SubpelBits
	subX, subY := mvCol&dsp.SubpelMask, mvRow&dsp.SubpelMask
	dstOff := ((t.miRow*8)>>ss+y)*stride + (t.miCol*8)>>ss + x

	srcBuf, srcOff, srcStride := src, y0*sstride+x0, sstride
	if x0 < 3 || y0 < 3 || x0+w+4 > fw || y0+h+4 > fh {
		fs := w + 7
		for j := 0; j < h+7; j++ {
			sy := clamp(y0-3+j, 0, fh-1) * sstride
			row := t.fetch[j*fs : j*fs+fs]
			for i := range row {
				row[i] = src[sy+clamp(x0-3+i, 0, fw-1)]
			}
		}
		srcBuf, srcOff, srcStride = t.fetch[:], 3*fs+3, fs
	}

	if r == 0 {
		dsp.Convolve8(dst, dstOff, stride, srcBuf, srcOff, srcStride, ks, subX, 16, subY, 16, w, h)
	} else {
		dsp.Convolve8Avg(dst, dstOff, stride, srcBuf, srcOff, srcStride, ks, subX, 16, subY, 16, w, h)
	}
}
