package dsp

// VP8 sub-pixel interpolation. Motion vectors carry eighth-pel fractions;
// the six-tap filters are used by version 0 streams and the bilinear ones by
// versions 1 to 3.

var sixtapFilters = [8][6]int{
	{0, 0, 128, 0, 0, 0},
	{0, -6, 123, 12, -1, 0},
	{2, -11, 108, 36, -8, 1},
	{0, -9, 93, 50, -6, 0},
	{3, -16, 77, 77, -16, 3},
	{0, -6, 50, 93, -9, 0},
	{1, -8, 36, 108, -11, 2},
	{0, -1, 12, 123, -6, 0},
}

var bilinearFilters = [8][2]int{
	{128, 0}, {112, 16}, {96, 32}, {80, 48},
	{64, 64}, {48, 80}, {32, 96}, {16, 112},
}

const (
	filterShift    = 7
	filterRounding = 1 << (filterShift - 1)
)

// SixtapBorder is the number of extra source rows and columns the six-tap
// filter reads before (SixtapBorder) and after (SixtapBorder+1) a block.
const SixtapBorder = 2

// InterpFunc predicts a w x h block into dst from src, where src[srcOff] is
// the integer-pel origin of the block and fx, fy are eighth-pel fractions.
type InterpFunc func(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride, fx, fy, w, h int)

// SixtapPredict applies the two-pass six-tap filter: a horizontal pass over
// h+5 rows followed by a vertical pass.
func SixtapPredict(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride, fx, fy, w, h int) {
	var tmp [(16 + 5) * 16]int
	hf := &sixtapFilters[fx&7]
	vf := &sixtapFilters[fy&7]

	rows := h + 5
	s := srcOff - SixtapBorder*srcStride
	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			o := s + x
			v := int(src[o-2])*hf[0] + int(src[o-1])*hf[1] + int(src[o])*hf[2] +
				int(src[o+1])*hf[3] + int(src[o+2])*hf[4] + int(src[o+3])*hf[5]
			tmp[y*16+x] = int(Clip8b((v + filterRounding) >> filterShift))
		}
		s += srcStride
	}
	for y := 0; y < h; y++ {
		d := dstOff + y*dstStride
		for x := 0; x < w; x++ {
			t := (y+SixtapBorder)*16 + x
			v := tmp[t-32]*vf[0] + tmp[t-16]*vf[1] + tmp[t]*vf[2] +
				tmp[t+16]*vf[3] + tmp[t+32]*vf[4] + tmp[t+48]*vf[5]
			dst[d+x] = Clip8b((v + filterRounding) >> filterShift)
		}
	}
}

// BilinearPredict applies the two-pass bilinear filter over h+1 rows.
func BilinearPredict(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride, fx, fy, w, h int) {
	var tmp [17 * 16]int
	hf := &bilinearFilters[fx&7]
	vf := &bilinearFilters[fy&7]

	s := srcOff
	for y := 0; y <= h; y++ {
		for x := 0; x < w; x++ {
			tmp[y*16+x] = (int(src[s+x])*hf[0] + int(src[s+x+1])*hf[1] + filterRounding) >> filterShift
		}
		s += srcStride
	}
	for y := 0; y < h; y++ {
		d := dstOff + y*dstStride
		for x := 0; x < w; x++ {
			t := y*16 + x
			dst[d+x] = uint8((tmp[t]*vf[0] + tmp[t+16]*vf[1] + filterRounding) >> filterShift)
		}
	}
}

// CopyBlock copies a w x h block without filtering.
func CopyBlock(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride, w, h int) {
	for y := 0; y < h; y++ {
		copy(dst[dstOff+y*dstStride:dstOff+y*dstStride+w], src[srcOff+y*srcStride:srcOff+y*srcStride+w])
	}
}
