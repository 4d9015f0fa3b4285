package dsp

// VP9 sub-pixel convolution. Positions are in 1/16 pel; each kernel set
// holds 16 eight-tap filters whose taps sum to 128.

// InterpKernel is one eight-tap filter.
type InterpKernel [8]int16

// KernelSet holds the 16 phase filters of one interpolation type.
type KernelSet [16]InterpKernel

// Interpolation filter types in bitstream order after the literal remap.
const (
	FilterEightTap = iota
	FilterEightTapSmooth
	FilterEightTapSharp
	FilterBilinear

	NumInterpFilters
)

const (
	SubpelBits = 4
	SubpelMask = (1 << SubpelBits) - 1
	SubpelTaps = 8
	maxBlock   = 64
)

// halfKernels builds a full kernel set from phases 0 to 8; phases 9 to 15
// mirror phases 7 to 1.
func halfKernels(half [9]InterpKernel) KernelSet {
	var ks KernelSet
	copy(ks[:9], half[:])
	for i := 9; i < 16; i++ {
		src := half[16-i]
		for t := 0; t < 8; t++ {
			ks[i][t] = src[7-t]
		}
	}
	return ks
}

// Kernels is indexed by the interpolation filter type.
var Kernels = [NumInterpFilters]KernelSet{
	FilterEightTap: halfKernels([9]InterpKernel{
		{0, 0, 0, 128, 0, 0, 0, 0},
		{0, 1, -5, 126, 8, -3, 1, 0},
		{-1, 3, -10, 122, 18, -6, 2, 0},
		{-1, 4, -13, 118, 27, -9, 3, -1},
		{-1, 4, -16, 112, 37, -11, 4, -1},
		{-1, 5, -18, 105, 48, -14, 4, -1},
		{-1, 5, -19, 97, 58, -16, 5, -1},
		{-1, 6, -19, 88, 68, -18, 5, -1},
		{-1, 6, -19, 78, 78, -19, 6, -1},
	}),
	FilterEightTapSmooth: halfKernels([9]InterpKernel{
		{0, 0, 0, 128, 0, 0, 0, 0},
		{-3, -1, 32, 64, 38, 1, -3, 0},
		{-2, -2, 29, 63, 41, 2, -3, 0},
		{-2, -2, 26, 63, 43, 4, -4, 0},
		{-2, -3, 24, 62, 46, 5, -4, 0},
		{-2, -3, 21, 60, 49, 7, -4, 0},
		{-1, -4, 18, 59, 51, 9, -4, 0},
		{-1, -4, 16, 57, 53, 12, -4, -1},
		{-1, -4, 14, 55, 55, 14, -4, -1},
	}),
	FilterEightTapSharp: halfKernels([9]InterpKernel{
		{0, 0, 0, 128, 0, 0, 0, 0},
		{-1, 3, -7, 127, 8, -3, 1, 0},
		{-2, 5, -13, 125, 17, -6, 3, -1},
		{-3, 7, -17, 121, 27, -10, 5, -2},
		{-4, 9, -20, 115, 37, -13, 6, -2},
		{-4, 10, -23, 108, 48, -16, 8, -3},
		{-4, 10, -24, 100, 59, -19, 9, -3},
		{-4, 11, -24, 90, 70, -21, 10, -4},
		{-4, 11, -23, 80, 80, -23, 11, -4},
	}),
	FilterBilinear: func() KernelSet {
		var ks KernelSet
		for i := range ks {
			ks[i][3] = int16(128 - 8*i)
			ks[i][4] = int16(8 * i)
		}
		return ks
	}(),
}

func scalarProduct(src []byte, off, step int, k *InterpKernel) int {
	sum := 0
	for t := 0; t < SubpelTaps; t++ {
		sum += int(src[off+t*step]) * int(k[t])
	}
	return sum
}

func convolveHoriz(src []byte, srcOff, srcStride int, dst []byte, dstOff, dstStride int, ks *KernelSet, x0q4, xStepQ4, w, h int) {
	srcOff -= SubpelTaps/2 - 1
	for y := 0; y < h; y++ {
		xq4 := x0q4
		for x := 0; x < w; x++ {
			sum := scalarProduct(src, srcOff+xq4>>SubpelBits, 1, &ks[xq4&SubpelMask])
			dst[dstOff+x] = Clip8b((sum + filterRounding) >> filterShift)
			xq4 += xStepQ4
		}
		srcOff += srcStride
		dstOff += dstStride
	}
}

func convolveVert(src []byte, srcOff, srcStride int, dst []byte, dstOff, dstStride int, ks *KernelSet, y0q4, yStepQ4, w, h int) {
	srcOff -= srcStride * (SubpelTaps/2 - 1)
	for x := 0; x < w; x++ {
		yq4 := y0q4
		for y := 0; y < h; y++ {
			sum := scalarProduct(src, srcOff+(yq4>>SubpelBits)*srcStride+x, srcStride, &ks[yq4&SubpelMask])
			dst[dstOff+y*dstStride+x] = Clip8b((sum + filterRounding) >> filterShift)
			yq4 += yStepQ4
		}
	}
}

// Convolve8 predicts a w x h block (at most 64x64) into dst. src[srcOff] is
// the integer-pel origin; x0q4/y0q4 are the starting 1/16-pel phases and
// xStepQ4/yStepQ4 the per-pixel advance, 16 for unscaled references. The
// source must provide 3 pixels before and 4 after the covered area.
func Convolve8(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride int, ks *KernelSet, x0q4, xStepQ4, y0q4, yStepQ4, w, h int) {
	var temp [maxBlock * (2*maxBlock + SubpelTaps + 8)]byte
	interH := (((h-1)*yStepQ4 + y0q4) >> SubpelBits) + SubpelTaps
	convolveHoriz(src, srcOff-srcStride*(SubpelTaps/2-1), srcStride, temp[:], 0, maxBlock, ks, x0q4, xStepQ4, w, interH)
	convolveVert(temp[:], maxBlock*(SubpelTaps/2-1), maxBlock, dst, dstOff, dstStride, ks, y0q4, yStepQ4, w, h)
}

// Convolve8Avg is Convolve8 followed by a rounded average with the
// prediction already in dst, as used by compound prediction.
func Convolve8Avg(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride int, ks *KernelSet, x0q4, xStepQ4, y0q4, yStepQ4, w, h int) {
	var temp [maxBlock * maxBlock]byte
	Convolve8(temp[:], 0, maxBlock, src, srcOff, srcStride, ks, x0q4, xStepQ4, y0q4, yStepQ4, w, h)
	for y := 0; y < h; y++ {
		d := dst[dstOff+y*dstStride : dstOff+y*dstStride+w]
		t := temp[y*maxBlock : y*maxBlock+w]
		for x := range d {
			d[x] = uint8((int(d[x]) + int(t[x]) + 1) >> 1)
		}
	}
}
