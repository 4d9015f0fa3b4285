package dsp

// VP9 inverse transforms. Coefficients are 16-bit; every butterfly output
// wraps to 16 bits and products are rounded by 14 bits.

const (
	dctConstBits     = 14
	dctConstRounding = 1 << (dctConstBits - 1)
)

var cospi = [32]int64{
	16384, 16364, 16305, 16207, 16069, 15893, 15679, 15426,
	15137, 14811, 14449, 14053, 13623, 13160, 12665, 12140,
	11585, 11003, 10394, 9760, 9102, 8423, 7723, 7005,
	6270, 5520, 4756, 3981, 3196, 2404, 1606, 804,
}

const (
	sinpi1_9 = 5283
	sinpi2_9 = 9929
	sinpi3_9 = 13377
	sinpi4_9 = 15212
)

// TxSize is a transform block size.
type TxSize int

const (
	Tx4x4 TxSize = iota
	Tx8x8
	Tx16x16
	Tx32x32

	NumTxSizes
)

// Width returns the edge length of the transform in pixels.
func (s TxSize) Width() int { return 4 << s }

// TxType selects the 1-D transforms applied to columns and rows.
type TxType int

const (
	DCTDCT TxType = iota
	ADSTDCT
	DCTADST
	ADSTADST
)

func rshift(v int64) int64 { return (v + dctConstRounding) >> dctConstBits }

func wrap(v int64) int16 { return int16(v) }

func roundPow2(v, n int) int { return (v + 1<<(n-1)) >> n }

type txfm1D func(in, out []int16)

func idct4c(in, out []int16) {
	var step [4]int16
	i0, i1, i2, i3 := int64(in[0]), int64(in[1]), int64(in[2]), int64(in[3])
	step[0] = wrap(rshift((i0 + i2) * cospi[16]))
	step[1] = wrap(rshift((i0 - i2) * cospi[16]))
	step[2] = wrap(rshift(i1*cospi[24] - i3*cospi[8]))
	step[3] = wrap(rshift(i1*cospi[8] + i3*cospi[24]))
	out[0] = wrap(int64(step[0]) + int64(step[3]))
	out[1] = wrap(int64(step[1]) + int64(step[2]))
	out[2] = wrap(int64(step[1]) - int64(step[2]))
	out[3] = wrap(int64(step[0]) - int64(step[3]))
}

func idct8(in, out []int16) {
	var s1, s2 [8]int16
	s1[0] = in[0]
	s1[2] = in[4]
	s1[1] = in[2]
	s1[3] = in[6]
	s1[4] = wrap(rshift(int64(in[1])*cospi[28] - int64(in[7])*cospi[4]))
	s1[7] = wrap(rshift(int64(in[1])*cospi[4] + int64(in[7])*cospi[28]))
	s1[5] = wrap(rshift(int64(in[5])*cospi[12] - int64(in[3])*cospi[20]))
	s1[6] = wrap(rshift(int64(in[5])*cospi[20] + int64(in[3])*cospi[12]))

	idct4c(s1[:4], s1[:4])
	s2[4] = wrap(int64(s1[4]) + int64(s1[5]))
	s2[5] = wrap(int64(s1[4]) - int64(s1[5]))
	s2[6] = wrap(-int64(s1[6]) + int64(s1[7]))
	s2[7] = wrap(int64(s1[6]) + int64(s1[7]))

	s1[4] = s2[4]
	s1[5] = wrap(rshift((int64(s2[6]) - int64(s2[5])) * cospi[16]))
	s1[6] = wrap(rshift((int64(s2[5]) + int64(s2[6])) * cospi[16]))
	s1[7] = s2[7]

	for i := 0; i < 4; i++ {
		out[i] = wrap(int64(s1[i]) + int64(s1[7-i]))
		out[7-i] = wrap(int64(s1[i]) - int64(s1[7-i]))
	}
}

// rot computes the rounded pair (a*c0 - b*c1, a*c1 + b*c0).
func rot(a, b int16, c0, c1 int64) (int16, int16) {
	return wrap(rshift(int64(a)*c0 - int64(b)*c1)), wrap(rshift(int64(a)*c1 + int64(b)*c0))
}

func add(a, b int16) int16 { return wrap(int64(a) + int64(b)) }
func sub(a, b int16) int16 { return wrap(int64(a) - int64(b)) }

// half16 rotates by cospi_16 in the forms used by the last stages.
func half16(a, b int16) (int16, int16) {
	return wrap(rshift((int64(b) - int64(a)) * cospi[16])), wrap(rshift((int64(a) + int64(b)) * cospi[16]))
}

func idct16(in, out []int16) {
	var s1, s2 [16]int16
	for i, k := range [16]int{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15} {
		s1[i] = in[k]
	}

	// stage 2
	copy(s2[:8], s1[:8])
	s2[8], s2[15] = rot(s1[8], s1[15], cospi[30], cospi[2])
	s2[9], s2[14] = rot(s1[9], s1[14], cospi[14], cospi[18])
	s2[10], s2[13] = rot(s1[10], s1[13], cospi[22], cospi[10])
	s2[11], s2[12] = rot(s1[11], s1[12], cospi[6], cospi[26])

	// stage 3
	copy(s1[:4], s2[:4])
	s1[4], s1[7] = rot(s2[4], s2[7], cospi[28], cospi[4])
	s1[5], s1[6] = rot(s2[5], s2[6], cospi[12], cospi[20])
	s1[8] = add(s2[8], s2[9])
	s1[9] = sub(s2[8], s2[9])
	s1[10] = sub(s2[11], s2[10])
	s1[11] = add(s2[10], s2[11])
	s1[12] = add(s2[12], s2[13])
	s1[13] = sub(s2[12], s2[13])
	s1[14] = sub(s2[15], s2[14])
	s1[15] = add(s2[14], s2[15])

	// stage 4
	s2[0] = wrap(rshift((int64(s1[0]) + int64(s1[1])) * cospi[16]))
	s2[1] = wrap(rshift((int64(s1[0]) - int64(s1[1])) * cospi[16]))
	s2[2], s2[3] = rot(s1[2], s1[3], cospi[24], cospi[8])
	s2[4] = add(s1[4], s1[5])
	s2[5] = sub(s1[4], s1[5])
	s2[6] = sub(s1[7], s1[6])
	s2[7] = add(s1[6], s1[7])
	s2[8] = s1[8]
	s2[15] = s1[15]
	s2[9] = wrap(rshift(-int64(s1[9])*cospi[8] + int64(s1[14])*cospi[24]))
	s2[14] = wrap(rshift(int64(s1[9])*cospi[24] + int64(s1[14])*cospi[8]))
	s2[10] = wrap(rshift(-int64(s1[10])*cospi[24] - int64(s1[13])*cospi[8]))
	s2[13] = wrap(rshift(-int64(s1[10])*cospi[8] + int64(s1[13])*cospi[24]))
	s2[11] = s1[11]
	s2[12] = s1[12]

	// stage 5
	s1[0] = add(s2[0], s2[3])
	s1[1] = add(s2[1], s2[2])
	s1[2] = sub(s2[1], s2[2])
	s1[3] = sub(s2[0], s2[3])
	s1[4] = s2[4]
	s1[5], s1[6] = half16(s2[5], s2[6])
	s1[7] = s2[7]
	s1[8] = add(s2[8], s2[11])
	s1[9] = add(s2[9], s2[10])
	s1[10] = sub(s2[9], s2[10])
	s1[11] = sub(s2[8], s2[11])
	s1[12] = sub(s2[15], s2[12])
	s1[13] = sub(s2[14], s2[13])
	s1[14] = add(s2[13], s2[14])
	s1[15] = add(s2[12], s2[15])

	// stage 6
	for i := 0; i < 4; i++ {
		s2[i] = add(s1[i], s1[7-i])
		s2[7-i] = sub(s1[i], s1[7-i])
	}
	s2[8] = s1[8]
	s2[9] = s1[9]
	s2[10], s2[13] = half16(s1[10], s1[13])
	s2[11], s2[12] = half16(s1[11], s1[12])
	s2[14] = s1[14]
	s2[15] = s1[15]

	// stage 7
	for i := 0; i < 8; i++ {
		out[i] = add(s2[i], s2[15-i])
		out[15-i] = sub(s2[i], s2[15-i])
	}
}

func idct32(in, out []int16) {
	var s1, s2 [32]int16
	for i, k := range [16]int{0, 16, 8, 24, 4, 20, 12, 28, 2, 18, 10, 26, 6, 22, 14, 30} {
		s1[i] = in[k]
	}
	s1[16], s1[31] = rot(in[1], in[31], cospi[31], cospi[1])
	s1[17], s1[30] = rot(in[17], in[15], cospi[15], cospi[17])
	s1[18], s1[29] = rot(in[9], in[23], cospi[23], cospi[9])
	s1[19], s1[28] = rot(in[25], in[7], cospi[7], cospi[25])
	s1[20], s1[27] = rot(in[5], in[27], cospi[27], cospi[5])
	s1[21], s1[26] = rot(in[21], in[11], cospi[11], cospi[21])
	s1[22], s1[25] = rot(in[13], in[19], cospi[19], cospi[13])
	s1[23], s1[24] = rot(in[29], in[3], cospi[3], cospi[29])

	// stage 2
	copy(s2[:8], s1[:8])
	s2[8], s2[15] = rot(s1[8], s1[15], cospi[30], cospi[2])
	s2[9], s2[14] = rot(s1[9], s1[14], cospi[14], cospi[18])
	s2[10], s2[13] = rot(s1[10], s1[13], cospi[22], cospi[10])
	s2[11], s2[12] = rot(s1[11], s1[12], cospi[6], cospi[26])
	for i := 16; i < 32; i += 4 {
		s2[i] = add(s1[i], s1[i+1])
		s2[i+1] = sub(s1[i], s1[i+1])
		s2[i+2] = sub(s1[i+3], s1[i+2])
		s2[i+3] = add(s1[i+2], s1[i+3])
	}

	// stage 3
	copy(s1[:4], s2[:4])
	s1[4], s1[7] = rot(s2[4], s2[7], cospi[28], cospi[4])
	s1[5], s1[6] = rot(s2[5], s2[6], cospi[12], cospi[20])
	for i := 8; i < 16; i += 4 {
		s1[i] = add(s2[i], s2[i+1])
		s1[i+1] = sub(s2[i], s2[i+1])
		s1[i+2] = sub(s2[i+3], s2[i+2])
		s1[i+3] = add(s2[i+2], s2[i+3])
	}
	s1[16] = s2[16]
	s1[31] = s2[31]
	s1[17] = wrap(rshift(-int64(s2[17])*cospi[4] + int64(s2[30])*cospi[28]))
	s1[30] = wrap(rshift(int64(s2[17])*cospi[28] + int64(s2[30])*cospi[4]))
	s1[18] = wrap(rshift(-int64(s2[18])*cospi[28] - int64(s2[29])*cospi[4]))
	s1[29] = wrap(rshift(-int64(s2[18])*cospi[4] + int64(s2[29])*cospi[28]))
	s1[19] = s2[19]
	s1[20] = s2[20]
	s1[21] = wrap(rshift(-int64(s2[21])*cospi[20] + int64(s2[26])*cospi[12]))
	s1[26] = wrap(rshift(int64(s2[21])*cospi[12] + int64(s2[26])*cospi[20]))
	s1[22] = wrap(rshift(-int64(s2[22])*cospi[12] - int64(s2[25])*cospi[20]))
	s1[25] = wrap(rshift(-int64(s2[22])*cospi[20] + int64(s2[25])*cospi[12]))
	s1[23] = s2[23]
	s1[24] = s2[24]
	s1[27] = s2[27]
	s1[28] = s2[28]

	// stage 4
	s2[0] = wrap(rshift((int64(s1[0]) + int64(s1[1])) * cospi[16]))
	s2[1] = wrap(rshift((int64(s1[0]) - int64(s1[1])) * cospi[16]))
	s2[2], s2[3] = rot(s1[2], s1[3], cospi[24], cospi[8])
	s2[4] = add(s1[4], s1[5])
	s2[5] = sub(s1[4], s1[5])
	s2[6] = sub(s1[7], s1[6])
	s2[7] = add(s1[6], s1[7])
	s2[8] = s1[8]
	s2[15] = s1[15]
	s2[9] = wrap(rshift(-int64(s1[9])*cospi[8] + int64(s1[14])*cospi[24]))
	s2[14] = wrap(rshift(int64(s1[9])*cospi[24] + int64(s1[14])*cospi[8]))
	s2[10] = wrap(rshift(-int64(s1[10])*cospi[24] - int64(s1[13])*cospi[8]))
	s2[13] = wrap(rshift(-int64(s1[10])*cospi[8] + int64(s1[13])*cospi[24]))
	s2[11] = s1[11]
	s2[12] = s1[12]
	for i := 16; i < 32; i += 8 {
		s2[i] = add(s1[i], s1[i+3])
		s2[i+1] = add(s1[i+1], s1[i+2])
		s2[i+2] = sub(s1[i+1], s1[i+2])
		s2[i+3] = sub(s1[i], s1[i+3])
		s2[i+4] = sub(s1[i+7], s1[i+4])
		s2[i+5] = sub(s1[i+6], s1[i+5])
		s2[i+6] = add(s1[i+5], s1[i+6])
		s2[i+7] = add(s1[i+4], s1[i+7])
	}

	// stage 5
	s1[0] = add(s2[0], s2[3])
	s1[1] = add(s2[1], s2[2])
	s1[2] = sub(s2[1], s2[2])
	s1[3] = sub(s2[0], s2[3])
	s1[4] = s2[4]
	s1[5], s1[6] = half16(s2[5], s2[6])
	s1[7] = s2[7]
	s1[8] = add(s2[8], s2[11])
	s1[9] = add(s2[9], s2[10])
	s1[10] = sub(s2[9], s2[10])
	s1[11] = sub(s2[8], s2[11])
	s1[12] = sub(s2[15], s2[12])
	s1[13] = sub(s2[14], s2[13])
	s1[14] = add(s2[13], s2[14])
	s1[15] = add(s2[12], s2[15])
	s1[16] = s2[16]
	s1[17] = s2[17]
	s1[18] = wrap(rshift(-int64(s2[18])*cospi[8] + int64(s2[29])*cospi[24]))
	s1[29] = wrap(rshift(int64(s2[18])*cospi[24] + int64(s2[29])*cospi[8]))
	s1[19] = wrap(rshift(-int64(s2[19])*cospi[8] + int64(s2[28])*cospi[24]))
	s1[28] = wrap(rshift(int64(s2[19])*cospi[24] + int64(s2[28])*cospi[8]))
	s1[20] = wrap(rshift(-int64(s2[20])*cospi[24] - int64(s2[27])*cospi[8]))
	s1[27] = wrap(rshift(-int64(s2[20])*cospi[8] + int64(s2[27])*cospi[24]))
	s1[21] = wrap(rshift(-int64(s2[21])*cospi[24] - int64(s2[26])*cospi[8]))
	s1[26] = wrap(rshift(-int64(s2[21])*cospi[8] + int64(s2[26])*cospi[24]))
	s1[22] = s2[22]
	s1[23] = s2[23]
	s1[24] = s2[24]
	s1[25] = s2[25]
	s1[30] = s2[30]
	s1[31] = s2[31]

	// stage 6
	for i := 0; i < 4; i++ {
		s2[i] = add(s1[i], s1[7-i])
		s2[7-i] = sub(s1[i], s1[7-i])
	}
	s2[8] = s1[8]
	s2[9] = s1[9]
	s2[10], s2[13] = half16(s1[10], s1[13])
	s2[11], s2[12] = half16(s1[11], s1[12])
	s2[14] = s1[14]
	s2[15] = s1[15]
	for i := 0; i < 4; i++ {
		s2[16+i] = add(s1[16+i], s1[23-i])
		s2[23-i] = sub(s1[16+i], s1[23-i])
		s2[24+i] = sub(s1[31-i], s1[24+i])
		s2[31-i] = add(s1[24+i], s1[31-i])
	}

	// stage 7
	for i := 0; i < 8; i++ {
		s1[i] = add(s2[i], s2[15-i])
		s1[15-i] = sub(s2[i], s2[15-i])
	}
	copy(s1[16:20], s2[16:20])
	s1[20], s1[27] = half16(s2[20], s2[27])
	s1[21], s1[26] = half16(s2[21], s2[26])
	s1[22], s1[25] = half16(s2[22], s2[25])
	s1[23], s1[24] = half16(s2[23], s2[24])
	copy(s1[28:32], s2[28:32])

	// final stage
	for i := 0; i < 16; i++ {
		out[i] = add(s1[i], s1[31-i])
		out[31-i] = sub(s1[i], s1[31-i])
	}
}

func iadst4(in, out []int16) {
	x0, x1, x2, x3 := int64(in[0]), int64(in[1]), int64(in[2]), int64(in[3])
	if x0|x1|x2|x3 == 0 {
		clear(out[:4])
		return
	}
	s0 := sinpi1_9 * x0
	s1 := sinpi2_9 * x0
	s2 := sinpi3_9 * x1
	s3 := sinpi4_9 * x2
	s4 := sinpi1_9 * x2
	s5 := sinpi2_9 * x3
	s6 := sinpi4_9 * x3
	s7 := int64(wrap(x0 - x2 + x3))

	s0 = s0 + s3 + s5
	s1 = s1 - s4 - s6
	s3 = s2
	s2 = sinpi3_9 * s7

	out[0] = wrap(rshift(s0 + s3))
	out[1] = wrap(rshift(s1 + s3))
	out[2] = wrap(rshift(s2))
	out[3] = wrap(rshift(s0 + s1 - s3))
}

func iadst8(in, out []int16) {
	x0, x1, x2, x3 := int64(in[7]), int64(in[0]), int64(in[5]), int64(in[2])
	x4, x5, x6, x7 := int64(in[3]), int64(in[4]), int64(in[1]), int64(in[6])
	if x0|x1|x2|x3|x4|x5|x6|x7 == 0 {
		clear(out[:8])
		return
	}

	// stage 1
	s0 := cospi[2]*x0 + cospi[30]*x1
	s1 := cospi[30]*x0 - cospi[2]*x1
	s2 := cospi[10]*x2 + cospi[22]*x3
	s3 := cospi[22]*x2 - cospi[10]*x3
	s4 := cospi[18]*x4 + cospi[14]*x5
	s5 := cospi[14]*x4 - cospi[18]*x5
	s6 := cospi[26]*x6 + cospi[6]*x7
	s7 := cospi[6]*x6 - cospi[26]*x7
	x0 = int64(wrap(rshift(s0 + s4)))
	x1 = int64(wrap(rshift(s1 + s5)))
	x2 = int64(wrap(rshift(s2 + s6)))
	x3 = int64(wrap(rshift(s3 + s7)))
	x4 = int64(wrap(rshift(s0 - s4)))
	x5 = int64(wrap(rshift(s1 - s5)))
	x6 = int64(wrap(rshift(s2 - s6)))
	x7 = int64(wrap(rshift(s3 - s7)))

	// stage 2
	s0, s1, s2, s3 = x0, x1, x2, x3
	s4 = cospi[8]*x4 + cospi[24]*x5
	s5 = cospi[24]*x4 - cospi[8]*x5
	s6 = -cospi[24]*x6 + cospi[8]*x7
	s7 = cospi[8]*x6 + cospi[24]*x7
	x0 = int64(wrap(s0 + s2))
	x1 = int64(wrap(s1 + s3))
	x2 = int64(wrap(s0 - s2))
	x3 = int64(wrap(s1 - s3))
	x4 = int64(wrap(rshift(s4 + s6)))
	x5 = int64(wrap(rshift(s5 + s7)))
	x6 = int64(wrap(rshift(s4 - s6)))
	x7 = int64(wrap(rshift(s5 - s7)))

	// stage 3
	s2 = cospi[16] * (x2 + x3)
	s3 = cospi[16] * (x2 - x3)
	s6 = cospi[16] * (x6 + x7)
	s7 = cospi[16] * (x6 - x7)
	x2 = int64(wrap(rshift(s2)))
	x3 = int64(wrap(rshift(s3)))
	x6 = int64(wrap(rshift(s6)))
	x7 = int64(wrap(rshift(s7)))

	out[0] = wrap(x0)
	out[1] = wrap(-x4)
	out[2] = wrap(x6)
	out[3] = wrap(-x2)
	out[4] = wrap(x3)
	out[5] = wrap(-x7)
	out[6] = wrap(x5)
	out[7] = wrap(-x1)
}

func iadst16(in, out []int16) {
	var x [16]int64
	for i, k := range [16]int{15, 0, 13, 2, 11, 4, 9, 6, 7, 8, 5, 10, 3, 12, 1, 14} {
		x[i] = int64(in[k])
	}
	var nz int64
	for _, v := range x {
		nz |= v
	}
	if nz == 0 {
		clear(out[:16])
		return
	}
	var s [16]int64

	// stage 1
	for i, c := range [8][2]int{{1, 31}, {5, 27}, {9, 23}, {13, 19}, {17, 15}, {21, 11}, {25, 7}, {29, 3}} {
		a, b := x[2*i], x[2*i+1]
		s[2*i] = a*cospi[c[0]] + b*cospi[c[1]]
		s[2*i+1] = a*cospi[c[1]] - b*cospi[c[0]]
	}
	for i := 0; i < 8; i++ {
		x[i] = int64(wrap(rshift(s[i] + s[i+8])))
		x[i+8] = int64(wrap(rshift(s[i] - s[i+8])))
	}

	// stage 2
	copy(s[:8], x[:8])
	s[8] = x[8]*cospi[4] + x[9]*cospi[28]
	s[9] = x[8]*cospi[28] - x[9]*cospi[4]
	s[10] = x[10]*cospi[20] + x[11]*cospi[12]
	s[11] = x[10]*cospi[12] - x[11]*cospi[20]
	s[12] = -x[12]*cospi[28] + x[13]*cospi[4]
	s[13] = x[12]*cospi[4] + x[13]*cospi[28]
	s[14] = -x[14]*cospi[12] + x[15]*cospi[20]
	s[15] = x[14]*cospi[20] + x[15]*cospi[12]
	for i := 0; i < 4; i++ {
		x[i] = int64(wrap(s[i] + s[i+4]))
		x[i+4] = int64(wrap(s[i] - s[i+4]))
		x[i+8] = int64(wrap(rshift(s[i+8] + s[i+12])))
		x[i+12] = int64(wrap(rshift(s[i+8] - s[i+12])))
	}

	// stage 3
	for _, b := range [2]int{0, 8} {
		s[b], s[b+1], s[b+2], s[b+3] = x[b], x[b+1], x[b+2], x[b+3]
		s[b+4] = x[b+4]*cospi[8] + x[b+5]*cospi[24]
		s[b+5] = x[b+4]*cospi[24] - x[b+5]*cospi[8]
		s[b+6] = -x[b+6]*cospi[24] + x[b+7]*cospi[8]
		s[b+7] = x[b+6]*cospi[8] + x[b+7]*cospi[24]
		x[b] = int64(wrap(s[b] + s[b+2]))
		x[b+1] = int64(wrap(s[b+1] + s[b+3]))
		x[b+2] = int64(wrap(s[b] - s[b+2]))
		x[b+3] = int64(wrap(s[b+1] - s[b+3]))
		x[b+4] = int64(wrap(rshift(s[b+4] + s[b+6])))
		x[b+5] = int64(wrap(rshift(s[b+5] + s[b+7])))
		x[b+6] = int64(wrap(rshift(s[b+4] - s[b+6])))
		x[b+7] = int64(wrap(rshift(s[b+5] - s[b+7])))
	}

	// stage 4
	s[2] = -cospi[16] * (x[2] + x[3])
	s[3] = cospi[16] * (x[2] - x[3])
	s[6] = cospi[16] * (x[6] + x[7])
	s[7] = cospi[16] * (-x[6] + x[7])
	s[10] = cospi[16] * (x[10] + x[11])
	s[11] = cospi[16] * (-x[10] + x[11])
	s[14] = -cospi[16] * (x[14] + x[15])
	s[15] = cospi[16] * (x[14] - x[15])
	for _, i := range [8]int{2, 3, 6, 7, 10, 11, 14, 15} {
		x[i] = int64(wrap(rshift(s[i])))
	}

	out[0] = wrap(x[0])
	out[1] = wrap(-x[8])
	out[2] = wrap(x[12])
	out[3] = wrap(-x[4])
	out[4] = wrap(x[6])
	out[5] = wrap(x[14])
	out[6] = wrap(x[10])
	out[7] = wrap(x[2])
	out[8] = wrap(x[3])
	out[9] = wrap(x[11])
	out[10] = wrap(x[15])
	out[11] = wrap(x[7])
	out[12] = wrap(x[5])
	out[13] = wrap(-x[13])
	out[14] = wrap(x[9])
	out[15] = wrap(-x[1])
}

var (
	idcts  = [NumTxSizes]txfm1D{idct4c, idct8, idct16, idct32}
	iadsts = [NumTxSizes]txfm1D{iadst4, iadst8, iadst16, nil}
	// Final rounding shift after the column pass.
	txShift = [NumTxSizes]int{4, 5, 6, 6}
)

// InverseTransformAdd inverse-transforms a size x size block of dequantized
// coefficients in raster order and adds the result to dst. 32x32 blocks
// only exist as DCT_DCT.
func InverseTransformAdd(size TxSize, txType TxType, coeffs []int16, dst []byte, off, stride int) {
	n := size.Width()
	cols, rows := idcts[size], idcts[size]
	if size != Tx32x32 {
		if txType == ADSTDCT || txType == ADSTADST {
			cols = iadsts[size]
		}
		if txType == DCTADST || txType == ADSTADST {
			rows = iadsts[size]
		}
	}

	var out [32 * 32]int16
	for i := 0; i < n; i++ {
		row := coeffs[i*n : i*n+n]
		nonZero := false
		for _, c := range row {
			if c != 0 {
				nonZero = true
				break
			}
		}
		if nonZero {
			rows(row, out[i*n:i*n+n])
		}
	}

	var tmpIn, tmpOut [32]int16
	shift := txShift[size]
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			tmpIn[j] = out[j*n+i]
		}
		cols(tmpIn[:n], tmpOut[:n])
		for j := 0; j < n; j++ {
			o := off + j*stride + i
			dst[o] = Clip8b(int(dst[o]) + roundPow2(int(tmpOut[j]), shift))
		}
	}
}

// IWHT4x4Add is the lossless 4x4 inverse Walsh-Hadamard transform.
func IWHT4x4Add(coeffs []int16, dst []byte, off, stride int) {
	const unitQuantShift = 2
	var out [16]int16
	for i := 0; i < 4; i++ {
		ip := coeffs[i*4:]
		a1 := int64(ip[0]) >> unitQuantShift
		c1 := int64(ip[1]) >> unitQuantShift
		d1 := int64(ip[2]) >> unitQuantShift
		b1 := int64(ip[3]) >> unitQuantShift
		a1 += c1
		d1 -= b1
		e1 := (a1 - d1) >> 1
		b1 = e1 - b1
		c1 = e1 - c1
		a1 -= b1
		d1 += c1
		out[i*4+0] = wrap(a1)
		out[i*4+1] = wrap(b1)
		out[i*4+2] = wrap(c1)
		out[i*4+3] = wrap(d1)
	}
	for i := 0; i < 4; i++ {
		a1 := int64(out[i])
		c1 := int64(out[4+i])
		d1 := int64(out[8+i])
		b1 := int64(out[12+i])
		a1 += c1
		d1 -= b1
		e1 := (a1 - d1) >> 1
		b1 = e1 - b1
		c1 = e1 - c1
		a1 -= b1
		d1 += c1
		for j, v := range [4]int64{a1, b1, c1, d1} {
			o := off + j*stride + i
			dst[o] = Clip8b(int(dst[o]) + int(wrap(v)))
		}
	}
}
