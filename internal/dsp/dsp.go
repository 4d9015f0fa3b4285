// Package dsp provides the pixel-level kernels shared by the VP8 and VP9
// decoders: intra predictors, inverse transforms, sub-pixel interpolation
// and the in-loop deblocking filters.
package dsp

// BPS is the row stride of the VP8 macroblock work buffer.
const BPS = 32

// VP8 inverse transforms. Each adds a dequantized 4x4 residual to the
// prediction at dst.
var (
	Transform     func(coeffs []int16, dst []byte, doTwo bool)
	TransformAC3  func(coeffs []int16, dst []byte)
	TransformUV   func(coeffs []int16, dst []byte)
	TransformDC   func(coeffs []int16, dst []byte)
	TransformDCUV func(coeffs []int16, dst []byte)
	TransformWHT  func(in, out []int16)
)

// PredFunc fills the block at buf[off] from the pixels above and to the
// left of it.
type PredFunc func(buf []byte, off int)

// VP8 intra predictors by mode. PredChroma8 shares the numbering of
// PredLuma16.
var (
	PredLuma16  [NumPred16]PredFunc
	PredChroma8 [NumPred16]PredFunc
	PredLuma4   [NumPred4]PredFunc
)

// Whole-block modes. The DC variants past PredHE are chosen by CheckMode
// at the frame edges.
const (
	PredDC = iota
	PredTM
	PredVE
	PredHE
	PredDCNoTop
	PredDCNoLeft
	PredDCNoTopLeft

	NumPred16
)

// Sub-block modes.
const (
	Pred4DC = iota
	Pred4TM
	Pred4VE
	Pred4HE
	Pred4RD
	Pred4VR
	Pred4LD
	Pred4VL
	Pred4HD
	Pred4HU

	NumPred4
)

// Scan holds the work buffer offset of each luma sub-block in raster
// order.
var Scan [16]int

// Clip8b clamps v to [0, 255].
func Clip8b(v int) uint8 {
	if uint(v) <= 255 {
		return uint8(v)
	}
	if v < 0 {
		return 0
	}
	return 255
}

// Init installs the portable kernels.
func Init() {
	for n := range Scan {
		Scan[n] = (n&3)*4 + (n>>2)*4*BPS
	}
	Transform = transformTwo
	TransformAC3 = transformAC3
	TransformUV = transformUV
	TransformDC = transformDC
	TransformDCUV = transformDCUV
	TransformWHT = transformWHT
	initPredictors()
}

func init() {
	Init()
}
