package dsp

// Intra predictors. A PredFunc fills the block whose top-left pixel is
// buf[off]; the row above starts at off-BPS and the left column at off-1.

func avg2(a, b int) int { return (a + b + 1) >> 1 }

func avg3(a, b, c int) int { return (a + 2*b + c + 2) >> 2 }

func fillBlock(dst []byte, off, n int, v uint8) {
	for j := 0; j < n; j++ {
		row := dst[off+j*BPS : off+j*BPS+n]
		for i := range row {
			row[i] = v
		}
	}
}

// dcPred averages the available edges of an n×n block, or fills it with
// 128 when neither is available.
func dcPred(n int, useTop, useLeft bool) PredFunc {
	return func(dst []byte, off int) {
		sum, cnt := 0, 0
		for i := 0; i < n; i++ {
			if useTop {
				sum += int(dst[off+i-BPS])
			}
			if useLeft {
				sum += int(dst[off-1+i*BPS])
			}
		}
		if useTop {
			cnt += n
		}
		if useLeft {
			cnt += n
		}
		v := uint8(128)
		if cnt > 0 {
			v = uint8((sum + cnt/2) / cnt)
		}
		fillBlock(dst, off, n, v)
	}
}

func tmPred(n int) PredFunc {
	return func(dst []byte, off int) {
		corner := int(dst[off-1-BPS])
		for j := 0; j < n; j++ {
			d := int(dst[off-1+j*BPS]) - corner
			row := dst[off+j*BPS : off+j*BPS+n]
			for i := range row {
				row[i] = Clip8b(d + int(dst[off+i-BPS]))
			}
		}
	}
}

func vePred(n int) PredFunc {
	return func(dst []byte, off int) {
		above := dst[off-BPS : off-BPS+n]
		for j := 0; j < n; j++ {
			copy(dst[off+j*BPS:], above)
		}
	}
}

func hePred(n int) PredFunc {
	return func(dst []byte, off int) {
		for j := 0; j < n; j++ {
			row := dst[off+j*BPS : off+j*BPS+n]
			for i := range row {
				row[i] = dst[off-1+j*BPS]
			}
		}
	}
}

// edge4 holds the pixels around a 4x4 sub-block in one run: the left
// column from bottom to top, the corner, then the eight pixels above and
// above-right.
type edge4 [13]int

func loadEdge4(dst []byte, off int) *edge4 {
	var e edge4
	for k := 0; k < 4; k++ {
		e[3-k] = int(dst[off-1+k*BPS])
	}
	e[4] = int(dst[off-1-BPS])
	for k := 0; k < 8; k++ {
		e[5+k] = int(dst[off+k-BPS])
	}
	return &e
}

// top returns the pixel above column k. Negative k walks through the
// corner into the left column.
func (e *edge4) top(k int) int { return e[5+k] }

// left returns the pixel left of row k, repeating the bottom one past the
// block. Negative k walks through the corner into the top row.
func (e *edge4) left(k int) int { return e[3-min(k, 3)] }

type subblockPred func(e *edge4, r, c int) int

func pred4(f subblockPred) PredFunc {
	return func(dst []byte, off int) {
		e := loadEdge4(dst, off)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				dst[off+r*BPS+c] = Clip8b(f(e, r, c))
			}
		}
	}
}

func dc4(e *edge4, _, _ int) int {
	sum := 4
	for k := 0; k < 4; k++ {
		sum += e.top(k) + e.left(k)
	}
	return sum >> 3
}

func tm4(e *edge4, r, c int) int { return e.left(r) + e.top(c) - e.top(-1) }

func ve4(e *edge4, _, c int) int { return avg3(e.top(c-1), e.top(c), e.top(c+1)) }

func he4(e *edge4, r, _ int) int { return avg3(e.left(r-1), e.left(r), e.left(r+1)) }

func ld4(e *edge4, r, c int) int {
	k := r + c
	return avg3(e.top(k), e.top(k+1), e.top(min(k+2, 7)))
}

func rd4(e *edge4, r, c int) int {
	k := c - r
	return avg3(e.top(k-2), e.top(k-1), e.top(k))
}

func vr4(e *edge4, r, c int) int {
	z, k := 2*c-r, c-r/2
	switch {
	case z >= 0 && z%2 == 0:
		return avg2(e.top(k-1), e.top(k))
	case z >= -1:
		return avg3(e.top(k-2), e.top(k-1), e.top(k))
	default:
		return avg3(e.left(r-1), e.left(r-2), e.left(r-3))
	}
}

func hd4(e *edge4, r, c int) int {
	z, k := 2*r-c, r-c/2
	switch {
	case z >= 0 && z%2 == 0:
		return avg2(e.left(k-1), e.left(k))
	case z >= -1:
		return avg3(e.left(k-2), e.left(k-1), e.left(k))
	default:
		return avg3(e.top(c-1), e.top(c-2), e.top(c-3))
	}
}

func vl4(e *edge4, r, c int) int {
	switch {
	case r == 2 && c == 3:
		return avg3(e.top(4), e.top(5), e.top(6))
	case r == 3 && c == 3:
		return avg3(e.top(5), e.top(6), e.top(7))
	}
	k := c + r/2
	if r%2 == 0 {
		return avg2(e.top(k), e.top(k+1))
	}
	return avg3(e.top(k), e.top(k+1), e.top(k+2))
}

func hu4(e *edge4, r, c int) int {
	z := c + 2*r
	k := z / 2
	if z%2 == 0 {
		return avg2(e.left(k), e.left(k+1))
	}
	return avg3(e.left(k), e.left(k+1), e.left(k+2))
}

// CheckMode swaps the DC predictor for its edge variant when the block at
// (mbX, mbY) has no row above or no column to the left.
func CheckMode(mbX, mbY, mode int) int {
	if mode != PredDC {
		return mode
	}
	switch {
	case mbX == 0 && mbY == 0:
		return PredDCNoTopLeft
	case mbX == 0:
		return PredDCNoLeft
	case mbY == 0:
		return PredDCNoTop
	}
	return mode
}

func initPredictors() {
	for _, t := range []struct {
		table *[NumPred16]PredFunc
		n     int
	}{{&PredLuma16, 16}, {&PredChroma8, 8}} {
		*t.table = [NumPred16]PredFunc{
			PredDC:          dcPred(t.n, true, true),
			PredTM:          tmPred(t.n),
			PredVE:          vePred(t.n),
			PredHE:          hePred(t.n),
			PredDCNoTop:     dcPred(t.n, false, true),
			PredDCNoLeft:    dcPred(t.n, true, false),
			PredDCNoTopLeft: dcPred(t.n, false, false),
		}
	}
	for mode, f := range [NumPred4]subblockPred{
		Pred4DC: dc4, Pred4TM: tm4, Pred4VE: ve4, Pred4HE: he4, Pred4RD: rd4,
		Pred4VR: vr4, Pred4LD: ld4, Pred4VL: vl4, Pred4HD: hd4, Pred4HU: hu4,
	} {
		PredLuma4[mode] = pred4(f)
	}
}
