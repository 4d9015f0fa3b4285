package dsp

// VP8 inverse transforms. Each one adds its residual to the prediction
// already in dst, which has stride BPS.

const (
	cosPi8Sqrt2Minus1 = 20091
	sinPi8Sqrt2       = 35468
)

func mul1(a int) int { return a + a*cosPi8Sqrt2Minus1>>16 }

func mul2(a int) int { return a * sinPi8Sqrt2 >> 16 }

// idct4 is the one-dimensional inverse DCT.
func idct4(x0, x1, x2, x3 int) (int, int, int, int) {
	a, b := x0+x2, x0-x2
	c := mul2(x1) - mul1(x3)
	d := mul1(x1) + mul2(x3)
	return a + d, b + c, b - c, a - d
}

// addRow adds four residuals, already biased for rounding, to a row of dst.
func addRow(dst []byte, o0, o1, o2, o3 int) {
	dst[0] = Clip8b(int(dst[0]) + o0>>3)
	dst[1] = Clip8b(int(dst[1]) + o1>>3)
	dst[2] = Clip8b(int(dst[2]) + o2>>3)
	dst[3] = Clip8b(int(dst[3]) + o3>>3)
}

// transformOne inverts one 4x4 block of coefficients in raster order.
func transformOne(in []int16, dst []byte) {
	var tmp [16]int
	for i := 0; i < 4; i++ {
		tmp[i], tmp[4+i], tmp[8+i], tmp[12+i] = idct4(int(in[i]), int(in[4+i]), int(in[8+i]), int(in[12+i]))
	}
	for j := 0; j < 4; j++ {
		r := tmp[4*j : 4*j+4]
		o0, o1, o2, o3 := idct4(r[0]+4, r[1], r[2], r[3])
		addRow(dst[j*BPS:], o0, o1, o2, o3)
	}
}

// transformTwo inverts one block, or two horizontally adjacent ones.
func transformTwo(in []int16, dst []byte, doTwo bool) {
	transformOne(in, dst)
	if doTwo {
		transformOne(in[16:], dst[4:])
	}
}

func transformDC(in []int16, dst []byte) {
	dc := int(in[0]) + 4
	for j := 0; j < 4; j++ {
		addRow(dst[j*BPS:], dc, dc, dc, dc)
	}
}

// transformAC3 handles blocks whose only non-zero coefficients are 0, 1
// and 4.
func transformAC3(in []int16, dst []byte) {
	a := int(in[0]) + 4
	rows := [4]int{a + mul1(int(in[4])), a + mul2(int(in[4])), a - mul2(int(in[4])), a - mul1(int(in[4]))}
	c, d := mul2(int(in[1])), mul1(int(in[1]))
	for j, r := range rows {
		addRow(dst[j*BPS:], r+d, r+c, r-c, r-d)
	}
}

// transformUV inverts the four blocks of an 8x8 chroma block.
func transformUV(in []int16, dst []byte) {
	transformTwo(in, dst, true)
	transformTwo(in[32:], dst[4*BPS:], true)
}

// transformDCUV is transformUV for blocks carrying only DC values; blocks
// with a zero DC are skipped.
func transformDCUV(in []int16, dst []byte) {
	for i, off := range [4]int{0, 4, 4 * BPS, 4*BPS + 4} {
		if in[16*i] != 0 {
			transformDC(in[16*i:], dst[off:])
		}
	}
}

func iwht4(x0, x1, x2, x3 int) (int, int, int, int) {
	a, b := x0+x3, x1+x2
	c, d := x1-x2, x0-x3
	return a + b, d + c, a - b, d - c
}

// transformWHT inverts the Y2 block. Result k becomes the DC of luma block
// k, so out holds 16 blocks of 16 coefficients.
func transformWHT(in []int16, out []int16) {
	var tmp [16]int
	for i := 0; i < 4; i++ {
		tmp[i], tmp[4+i], tmp[8+i], tmp[12+i] = iwht4(int(in[i]), int(in[4+i]), int(in[8+i]), int(in[12+i]))
	}
	for j := 0; j < 4; j++ {
		r := tmp[4*j : 4*j+4]
		o0, o1, o2, o3 := iwht4(r[0]+3, r[1], r[2], r[3])
		base := j * 64
		out[base] = int16(o0 >> 3)
		out[base+16] = int16(o1 >> 3)
		out[base+32] = int16(o2 >> 3)
		out[base+48] = int16(o3 >> 3)
	}
}
