package vp9

import "github.com/deepteams/vpx/internal/dsp"

// lfMask records, for one 64x64 superblock, which 8x8 edges are filtered
// and with what width. Luma masks hold one bit per 8x8 unit in raster
// order; chroma masks one bit per 8x8 chroma unit. The masks are indexed
// by transform size, which selects the filter width.
type lfMask struct {
	leftY, aboveY   [NumTxSizes]uint64
	int4Y           uint64
	leftUV, aboveUV [NumTxSizes]uint16
	int4UV          uint16
	lflY            [64]uint8
}

// Edge masks per block size, anchored at the block's top-left unit.
var (
	leftPredMask = [numBlockSizes]uint64{
		0x1, 0x1, 0x1, 0x1, 0x101, 0x1, 0x101, 0x1010101, 0x101,
		0x1010101, 0x0101010101010101, 0x1010101, 0x0101010101010101,
	}
	abovePredMask = [numBlockSizes]uint64{
		0x1, 0x1, 0x1, 0x1, 0x1, 0x3, 0x3, 0x3, 0xf, 0xf, 0xf, 0xff, 0xff,
	}
	sizeMask = [numBlockSizes]uint64{
		0x1, 0x1, 0x1, 0x1, 0x101, 0x3, 0x303, 0x3030303, 0xf0f,
		0xf0f0f0f, 0x0f0f0f0f0f0f0f0f, 0xffffffff, 0xffffffffffffffff,
	}
	leftTxMask  = [NumTxSizes]uint64{0xffffffffffffffff, 0xffffffffffffffff, 0x5555555555555555, 0x1111111111111111}
	aboveTxMask = [NumTxSizes]uint64{0xffffffffffffffff, 0xffffffffffffffff, 0x00ff00ff00ff00ff, 0x000000ff000000ff}

	leftPredMaskUV = [numBlockSizes]uint16{
		0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x11, 0x1, 0x11, 0x1111, 0x11, 0x1111,
	}
	abovePredMaskUV = [numBlockSizes]uint16{
		0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x3, 0x3, 0x3, 0xf, 0xf,
	}
	sizeMaskUV = [numBlockSizes]uint16{
		0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x1, 0x11, 0x3, 0x33, 0x3333, 0xff, 0xffff,
	}
	leftTxMaskUV  = [NumTxSizes]uint16{0xffff, 0xffff, 0x5555, 0x1111}
	aboveTxMaskUV = [NumTxSizes]uint16{0xffff, 0xffff, 0x0f0f, 0x000f}
)

const (
	leftBorder    = 0x1111111111111111
	aboveBorder   = 0x000000ff000000ff
	leftBorderUV  = 0x1111
	aboveBorderUV = 0x000f
)

// filterLevel returns the loop filter level of a decoded block.
func (f *frameDecoder) filterLevel(b *blockInfo) uint8 {
	class := 0
	if b.Mode == modeNearest || b.Mode == modeNear || b.Mode == modeNew {
		class = 1
	}
	return f.levels[b.Segment][max(b.Ref[0], 0)][class]
}

// buildMask adds the edges of a decoded block to its superblock's mask.
// Prediction edges are always filtered; transform edges inside the block
// only when it is intra or has residual. Chroma edges are added by the
// block that owns the top-left of each 16x16 luma area.
func (f *frameDecoder) buildMask(b *blockInfo, miRow, miCol, bw8, bh8 int) {
	level := f.filterLevel(b)
	if level == 0 {
		return
	}
	m := &f.masks[(miRow>>3)*f.sbCols+miCol>>3]
	r, c := miRow&7, miCol&7
	shiftY := uint(r<<3 + c)
	shiftUV := uint((r>>1)<<2 + c>>1)
	buildUV := r&1 == 0 && c&1 == 0
	for i := 0; i < bh8; i++ {
		for j := 0; j < bw8; j++ {
			m.lflY[int(shiftY)+i*8+j] = level
		}
	}

	bs, tx, uvTx := b.Size, b.TxSize, b.uvTxSize()
	m.aboveY[tx] |= abovePredMask[bs] << shiftY
	m.leftY[tx] |= leftPredMask[bs] << shiftY
	if buildUV {
		m.aboveUV[uvTx] |= abovePredMaskUV[bs] << shiftUV
		m.leftUV[uvTx] |= leftPredMaskUV[bs] << shiftUV
	}

	if b.Skip && b.isInter() {
		return
	}

	m.aboveY[tx] |= (sizeMask[bs] & aboveTxMask[tx]) << shiftY
	m.leftY[tx] |= (sizeMask[bs] & leftTxMask[tx]) << shiftY
	if buildUV {
		m.aboveUV[uvTx] |= (sizeMaskUV[bs] & aboveTxMaskUV[uvTx]) << shiftUV
		m.leftUV[uvTx] |= (sizeMaskUV[bs] & leftTxMaskUV[uvTx]) << shiftUV
	}
	if tx == Tx4x4 {
		m.int4Y |= sizeMask[bs] << shiftY
	}
	if buildUV && uvTx == Tx4x4 {
		m.int4UV |= sizeMaskUV[bs] << shiftUV
	}
}

// adjustMask prepares the mask of the superblock at miRow, miCol for
// filtering. 32x32 edges use the 16-wide filter, superblock borders get at
// least the 8-wide filter, and edges outside the frame or on its left
// border are dropped.
func (f *frameDecoder) adjustMask(m *lfMask, miRow, miCol int) {
	m.leftY[Tx16x16] |= m.leftY[Tx32x32]
	m.aboveY[Tx16x16] |= m.aboveY[Tx32x32]
	m.leftUV[Tx16x16] |= m.leftUV[Tx32x32]
	m.aboveUV[Tx16x16] |= m.aboveUV[Tx32x32]

	m.leftY[Tx8x8] |= m.leftY[Tx4x4] & leftBorder
	m.leftY[Tx4x4] &^= leftBorder
	m.aboveY[Tx8x8] |= m.aboveY[Tx4x4] & aboveBorder
	m.aboveY[Tx4x4] &^= aboveBorder
	m.leftUV[Tx8x8] |= m.leftUV[Tx4x4] & leftBorderUV
	m.leftUV[Tx4x4] &^= leftBorderUV
	m.aboveUV[Tx8x8] |= m.aboveUV[Tx4x4] & aboveBorderUV
	m.aboveUV[Tx4x4] &^= aboveBorderUV

	if rows := f.miRows - miRow; rows < 8 {
		maskY := uint64(1)<<(rows<<3) - 1
		maskUV := uint16(1)<<(((rows+1)>>1)<<2) - 1
		for tx := Tx4x4; tx < Tx32x32; tx++ {
			m.leftY[tx] &= maskY
			m.aboveY[tx] &= maskY
			m.leftUV[tx] &= maskUV
			m.aboveUV[tx] &= maskUV
		}
		m.int4Y &= maskY
		m.int4UV &= maskUV

		// The last chroma row never takes the 16-wide filter.
		switch rows {
		case 1:
			m.aboveUV[Tx8x8] |= m.aboveUV[Tx16x16]
			m.aboveUV[Tx16x16] = 0
		case 5:
			m.aboveUV[Tx8x8] |= m.aboveUV[Tx16x16] & 0xff00
			m.aboveUV[Tx16x16] &^= 0xff00
		}
	}

	if cols := f.miCols - miCol; cols < 8 {
		maskY := (uint64(1)<<cols - 1) * 0x0101010101010101
		maskUV := (uint16(1)<<((cols+1)>>1) - 1) * 0x1111
		maskUVInt := (uint16(1)<<(cols>>1) - 1) * 0x1111
		for tx := Tx4x4; tx < Tx32x32; tx++ {
			m.leftY[tx] &= maskY
			m.aboveY[tx] &= maskY
			m.leftUV[tx] &= maskUV
			m.aboveUV[tx] &= maskUV
		}
		m.int4Y &= maskY
		m.int4UV &= maskUVInt

		switch cols {
		case 1:
			m.leftUV[Tx8x8] |= m.leftUV[Tx16x16]
			m.leftUV[Tx16x16] = 0
		case 5:
			m.leftUV[Tx8x8] |= m.leftUV[Tx16x16] & 0xcccc
			m.leftUV[Tx16x16] &^= 0xcccc
		}
	}

	if miCol == 0 {
		for tx := Tx4x4; tx < Tx32x32; tx++ {
			m.leftY[tx] &= 0xfefefefefefefefe
			m.leftUV[tx] &= 0xeeee
		}
	}
}

// loopFilter filters the decoded frame superblock by superblock in raster
// order. Within a superblock each plane takes its vertical edges first,
// then its horizontal ones.
func (f *frameDecoder) loopFilter() {
	limits := FilterLimits(f.h.LoopFilter.Sharpness)
	for sbRow := 0; sbRow < f.sbRows; sbRow++ {
		for sbCol := 0; sbCol < f.sbCols; sbCol++ {
			m := &f.masks[sbRow*f.sbCols+sbCol]
			miRow, miCol := sbRow<<3, sbCol<<3
			f.adjustMask(m, miRow, miCol)

			rows := min(8, f.miRows-miRow)
			f.filterPlane(&limits, f.out.Y, f.out.YStride, miRow*8*f.out.YStride+miCol*8,
				8, rows, miRow, 1, m.leftY[:], m.aboveY[:], m.int4Y, m.lflY[:])

			var lflUV [16]uint8
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					lflUV[r*4+c] = m.lflY[r*16+c*2]
				}
			}
			var left, above [NumTxSizes]uint64
			for tx := range left {
				left[tx], above[tx] = uint64(m.leftUV[tx]), uint64(m.aboveUV[tx])
			}
			off := miRow*4*f.out.UVStride + miCol*4
			for _, buf := range [][]byte{f.out.U, f.out.V} {
				f.filterPlane(&limits, buf, f.out.UVStride, off, 4, (rows+1)>>1, miRow, 2,
					left[:], above[:], uint64(m.int4UV), lflUV[:])
			}
		}
	}
}

// filterPlane filters the edges of one plane of a superblock. The plane
// spans n x n units of 8x8 pixels, rows of which are inside the frame; each
// unit row covers step 8x8 luma rows. Masks and levels are in raster order
// of those units.
func (f *frameDecoder) filterPlane(limits *[maxLoopFilter + 1]dsp.LFLimits, buf []byte, stride, base, n, rows, miRow, step int,
	left, above []uint64, int4 uint64, lfl []uint8) {
	unitMask := uint64(1)<<n - 1
	row := func(masks []uint64, r int) (m16, m8, m4 uint64) {
		s := uint(r * n)
		return masks[Tx16x16] >> s & unitMask, masks[Tx8x8] >> s & unitMask, masks[Tx4x4] >> s & unitMask
	}

	// Vertical edges. Rows pair up two by two; a 16-wide edge set in both
	// rows of a pair is filtered with the level of the first.
	for r := 0; r < rows; r++ {
		m16, m8, m4 := row(left, r)
		in4 := int4 >> uint(r*n) & unitMask
		var pair16 uint64
		if r&1 == 1 {
			pair16, _, _ = row(left, r-1)
		}
		for c := 0; c < n; c++ {
			off := base + r*8*stride + c*8
			lvl := lfl[r*n+c]
			switch {
			case m16>>c&1 != 0:
				l16 := lvl
				if pair16>>c&1 != 0 {
					l16 = lfl[(r-1)*n+c]
				}
				dsp.LPFVertical(dsp.LPF16, buf, off, stride, 1, limits[l16])
			case m8>>c&1 != 0:
				dsp.LPFVertical(dsp.LPF8, buf, off, stride, 1, limits[lvl])
			case m4>>c&1 != 0:
				dsp.LPFVertical(dsp.LPF4, buf, off, stride, 1, limits[lvl])
			}
			if in4>>c&1 != 0 {
				dsp.LPFVertical(dsp.LPF4, buf, off+4, stride, 1, limits[lvl])
			}
		}
	}

	// Horizontal edges. The top edge of the frame is not filtered, nor is
	// the inner chroma edge of the last 8x8 row. Adjacent 16-wide edges
	// pair up from the left and take the level of the first.
	for r := 0; r < rows; r++ {
		m16, m8, m4 := row(above, r)
		if miRow+r*step == 0 {
			m16, m8, m4 = 0, 0, 0
		}
		in4 := int4 >> uint(r*n) & unitMask
		if step == 2 && miRow+r*step == f.miRows-1 {
			in4 = 0
		}
		paired, pairLevel := false, uint8(0)
		for c := 0; c < n; c++ {
			off := base + r*8*stride + c*8
			lvl := lfl[r*n+c]
			switch {
			case m16>>c&1 != 0:
				l16 := lvl
				if paired {
					l16 = pairLevel
				}
				paired, pairLevel = !paired && m16>>(c+1)&1 != 0, lvl
				dsp.LPFHorizontal(dsp.LPF16, buf, off, stride, 1, limits[l16])
			case m8>>c&1 != 0:
				paired = false
				dsp.LPFHorizontal(dsp.LPF8, buf, off, stride, 1, limits[lvl])
			case m4>>c&1 != 0:
				paired = false
				dsp.LPFHorizontal(dsp.LPF4, buf, off, stride, 1, limits[lvl])
			default:
				paired = false
			}
			if in4>>c&1 != 0 {
				dsp.LPFHorizontal(dsp.LPF4, buf, off+4*stride, stride, 1, limits[lvl])
			}
		}
	}
}
