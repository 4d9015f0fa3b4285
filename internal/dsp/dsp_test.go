package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(n int, v byte) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func TestTransformDCAddsRoundedDC(t *testing.T) {
	dst := filled(4*BPS, 100)
	in := make([]int16, 16)
	in[0] = 80
	TransformDC(in, dst)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, byte(110), dst[x+y*BPS], "pixel %d,%d", x, y)
		}
		assert.Equal(t, byte(100), dst[4+y*BPS])
	}
}

func TestDC16AveragesEdges(t *testing.T) {
	buf := make([]byte, 17*BPS)
	off := BPS + 1
	for i := 0; i < 16; i++ {
		buf[off-BPS+i] = 10
		buf[off-1+i*BPS] = 20
	}
	PredLuma16[PredDC](buf, off)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, byte(15), buf[off+x+y*BPS])
		}
	}
}

func TestInverseTransformDCOnly(t *testing.T) {
	rs := func(v int) int { return (v + dctConstRounding) >> dctConstBits }
	for size := Tx4x4; size < NumTxSizes; size++ {
		n := size.Width()
		coeffs := make([]int16, n*n)
		coeffs[0] = 64
		dst := filled(n*n, 128)
		InverseTransformAdd(size, DCTDCT, coeffs, dst, 0, n)

		want := 128 + roundPow2(rs(rs(64*11585)*11585), txShift[size])
		for i, v := range dst {
			require.Equal(t, byte(want), v, "size %d pixel %d", n, i)
		}
	}
}

func TestInverseTransformZeroBlock(t *testing.T) {
	for size := Tx4x4; size < Tx32x32; size++ {
		for _, tt := range []TxType{DCTDCT, ADSTDCT, DCTADST, ADSTADST} {
			n := size.Width()
			dst := filled(n*n, 77)
			InverseTransformAdd(size, tt, make([]int16, n*n), dst, 0, n)
			assert.Equal(t, filled(n*n, 77), dst)
		}
	}
}

func TestIADST4Basis(t *testing.T) {
	in := []int16{1000, 0, 0, 0}
	out := make([]int16, 4)
	iadst4(in, out)
	assert.Equal(t, []int16{322, 606, 816, 928}, out)
}

func TestIWHT4x4DC(t *testing.T) {
	coeffs := make([]int16, 16)
	coeffs[0] = 16
	dst := filled(4*8, 50)
	IWHT4x4Add(coeffs, dst, 0, 8)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, byte(51), dst[y*8+x])
		}
		assert.Equal(t, byte(50), dst[y*8+4])
	}
}

func TestKernelsSumTo128(t *testing.T) {
	for f, ks := range Kernels {
		for phase, k := range ks {
			sum := 0
			for _, tap := range k {
				sum += int(tap)
			}
			assert.Equal(t, 128, sum, "filter %d phase %d", f, phase)
		}
		assert.Equal(t, InterpKernel{0, 0, 0, 128, 0, 0, 0, 0}, ks[0], "filter %d", f)
	}
}

func TestConvolve8FullPelCopies(t *testing.T) {
	const stride = 32
	src := make([]byte, stride*32)
	for i := range src {
		src[i] = byte(i * 7)
	}
	dst := make([]byte, 8*8)
	origin := 8*stride + 8
	Convolve8(dst, 0, 8, src, origin, stride, &Kernels[FilterEightTap], 0, 16, 0, 16, 8, 8)
	for y := 0; y < 8; y++ {
		assert.Equal(t, src[origin+y*stride:origin+y*stride+8], dst[y*8:y*8+8])
	}
}

func TestConvolve8AvgRoundsUp(t *testing.T) {
	const stride = 32
	src := filled(stride*32, 11)
	dst := filled(4*4, 20)
	Convolve8Avg(dst, 0, 4, src, 8*stride+8, stride, &Kernels[FilterEightTapSharp], 5, 16, 9, 16, 4, 4)
	assert.Equal(t, filled(16, 16), dst)
}

func TestVP8InterpolationFullPel(t *testing.T) {
	const stride = 32
	src := make([]byte, stride*32)
	for i := range src {
		src[i] = byte(i*13 + 1)
	}
	origin := 4*stride + 4
	for name, fn := range map[string]InterpFunc{"sixtap": SixtapPredict, "bilinear": BilinearPredict} {
		dst := make([]byte, 16*16)
		fn(dst, 0, 16, src, origin, stride, 0, 0, 16, 16)
		for y := 0; y < 16; y++ {
			require.Equal(t, src[origin+y*stride:origin+y*stride+16], dst[y*16:y*16+16], name)
		}
	}
}

func TestSixtapFlatSource(t *testing.T) {
	const stride = 32
	src := filled(stride*32, 90)
	dst := make([]byte, 8*8)
	SixtapPredict(dst, 0, 8, src, 8*stride+8, stride, 3, 5, 8, 8)
	assert.Equal(t, filled(64, 90), dst)
}

func TestNewLFLimits(t *testing.T) {
	assert.Equal(t, LFLimits{MBLim: 100, Lim: 32, HevThr: 2}, NewLFLimits(32, 0))
	assert.Equal(t, LFLimits{MBLim: 26, Lim: 2, HevThr: 0}, NewLFLimits(10, 5))
	assert.Equal(t, LFLimits{MBLim: 5, Lim: 1, HevThr: 0}, NewLFLimits(0, 0))
}

// stepRows builds 8 rows of 16 pixels with a vertical edge at column 8.
func stepRows(left, right byte) []byte {
	buf := make([]byte, 16*8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				buf[y*16+x] = left
			} else {
				buf[y*16+x] = right
			}
		}
	}
	return buf
}

func TestLPFVerticalStep(t *testing.T) {
	l := NewLFLimits(32, 0)
	cases := []struct {
		width FilterWidth
		want  []byte
	}{
		{LPF4, []byte{100, 100, 102, 104, 106, 108, 110, 110}},
		{LPF8, []byte{100, 101, 103, 104, 106, 108, 109, 110}},
	}
	for _, c := range cases {
		buf := stepRows(100, 110)
		LPFVertical(c.width, buf, 8, 16, 1, l)
		for y := 0; y < 8; y++ {
			assert.Equal(t, c.want, buf[y*16+4:y*16+12], "width %d row %d", c.width, y)
		}
	}
}

func TestLPFHorizontalMatchesVertical(t *testing.T) {
	l := NewLFLimits(40, 2)
	for _, width := range []FilterWidth{LPF4, LPF8, LPF16} {
		vert := stepRows(60, 66)
		LPFVertical(width, vert, 8, 16, 1, l)

		// The same edge transposed.
		horiz := make([]byte, 16*8)
		for y := 0; y < 8; y++ {
			for x := 0; x < 16; x++ {
				horiz[x*8+y] = stepRows(60, 66)[y*16+x]
			}
		}
		LPFHorizontal(width, horiz, 8*8, 8, 1, l)
		for y := 0; y < 8; y++ {
			for x := 0; x < 16; x++ {
				require.Equal(t, vert[y*16+x], horiz[x*8+y], "width %d", width)
			}
		}
	}
}

func TestLoopFiltersLeaveFlatInput(t *testing.T) {
	l := NewLFLimits(63, 0)
	for _, width := range []FilterWidth{LPF4, LPF8, LPF16} {
		buf := filled(16*16, 42)
		LPFHorizontal(width, buf, 8*16, 16, 2, l)
		LPFVertical(width, buf, 8, 16, 2, l)
		assert.Equal(t, filled(16*16, 42), buf)
	}

	buf := filled(32*BPS, 42)
	SimpleVFilter16(buf, 8*BPS, BPS, 40)
	VFilter16(buf, 8*BPS, BPS, 40, 10, 2)
	HFilter16(buf, 8*BPS+8, BPS, 40, 10, 2)
	assert.Equal(t, filled(32*BPS, 42), buf)
}
