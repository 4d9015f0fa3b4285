package dsp

// VP9 intra modes, in bitstream order.
const (
	IntraDC = iota
	IntraV
	IntraH
	IntraD45
	IntraD135
	IntraD117
	IntraD153
	IntraD207
	IntraD63
	IntraTM

	NumIntraModes
)

// Edge pixels an intra mode reads.
const (
	NeedLeft = 1 << iota
	NeedAbove
	NeedAboveRight
)

// IntraEdgeNeeds lists the edges each VP9 intra mode reads.
var IntraEdgeNeeds = [NumIntraModes]int{
	IntraDC:   NeedAbove | NeedLeft,
	IntraV:    NeedAbove,
	IntraH:    NeedLeft,
	IntraD45:  NeedAboveRight,
	IntraD135: NeedLeft | NeedAbove,
	IntraD117: NeedLeft | NeedAbove,
	IntraD153: NeedLeft | NeedAbove,
	IntraD207: NeedLeft,
	IntraD63:  NeedAboveRight,
	IntraTM:   NeedLeft | NeedAbove,
}

// IntraEdges holds the neighbours of a VP9 transform block of up to 32x32
// pixels. Above[0] is the top-left corner and Above[1:] the row above,
// continued to the right for twice the block width.
type IntraEdges struct {
	Above [2*32 + 1]byte
	Left  [32]byte
}

// PredictIntra fills the bs x bs block at dst[off] with VP9 intra mode.
// haveAbove and haveLeft select the DC variant; the other modes read e as
// is.
func PredictIntra(mode, bs int, dst []byte, off, stride int, e *IntraEdges, haveAbove, haveLeft bool) {
	a := func(i int) int { return int(e.Above[i+1]) }
	l := func(i int) int { return int(e.Left[i]) }
	set := func(r, c, v int) { dst[off+r*stride+c] = uint8(v) }
	at := func(r, c int) int { return int(dst[off+r*stride+c]) }

	switch mode {
	case IntraDC:
		sum, cnt := 0, 0
		if haveAbove {
			for i := 0; i < bs; i++ {
				sum += a(i)
			}
			cnt += bs
		}
		if haveLeft {
			for i := 0; i < bs; i++ {
				sum += l(i)
			}
			cnt += bs
		}
		v := uint8(128)
		if cnt > 0 {
			v = uint8((sum + cnt>>1) / cnt)
		}
		for r := 0; r < bs; r++ {
			row := dst[off+r*stride : off+r*stride+bs]
			for c := range row {
				row[c] = v
			}
		}

	case IntraV:
		for r := 0; r < bs; r++ {
			copy(dst[off+r*stride:off+r*stride+bs], e.Above[1:1+bs])
		}

	case IntraH:
		for r := 0; r < bs; r++ {
			row := dst[off+r*stride : off+r*stride+bs]
			for c := range row {
				row[c] = e.Left[r]
			}
		}

	case IntraTM:
		for r := 0; r < bs; r++ {
			for c := 0; c < bs; c++ {
				set(r, c, int(Clip8b(l(r)+a(c)-a(-1))))
			}
		}

	case IntraD45:
		for r := 0; r < bs; r++ {
			for c := 0; c < bs; c++ {
				if r+c+2 < 2*bs {
					set(r, c, avg3(a(r+c), a(r+c+1), a(r+c+2)))
				} else {
					set(r, c, a(2*bs-1))
				}
			}
		}

	case IntraD63:
		for r := 0; r < bs; r++ {
			for c := 0; c < bs; c++ {
				i := r>>1 + c
				if r&1 != 0 {
					set(r, c, avg3(a(i), a(i+1), a(i+2)))
				} else {
					set(r, c, avg2(a(i), a(i+1)))
				}
			}
		}

	case IntraD207:
		for r := 0; r < bs-1; r++ {
			set(r, 0, avg2(l(r), l(r+1)))
		}
		set(bs-1, 0, l(bs-1))
		for r := 0; r < bs-2; r++ {
			set(r, 1, avg3(l(r), l(r+1), l(r+2)))
		}
		set(bs-2, 1, avg3(l(bs-2), l(bs-1), l(bs-1)))
		set(bs-1, 1, l(bs-1))
		for c := 2; c < bs; c++ {
			set(bs-1, c, l(bs-1))
		}
		for r := bs - 2; r >= 0; r-- {
			for c := 2; c < bs; c++ {
				set(r, c, at(r+1, c-2))
			}
		}

	case IntraD117:
		for c := 0; c < bs; c++ {
			set(0, c, avg2(a(c-1), a(c)))
		}
		set(1, 0, avg3(l(0), a(-1), a(0)))
		for c := 1; c < bs; c++ {
			set(1, c, avg3(a(c-2), a(c-1), a(c)))
		}
		set(2, 0, avg3(a(-1), l(0), l(1)))
		for r := 3; r < bs; r++ {
			set(r, 0, avg3(l(r-3), l(r-2), l(r-1)))
		}
		for r := 2; r < bs; r++ {
			for c := 1; c < bs; c++ {
				set(r, c, at(r-2, c-1))
			}
		}

	case IntraD135:
		var border [2*32 - 1]int
		for i := 0; i < bs-2; i++ {
			border[i] = avg3(l(bs-3-i), l(bs-2-i), l(bs-1-i))
		}
		border[bs-2] = avg3(a(-1), l(0), l(1))
		border[bs-1] = avg3(l(0), a(-1), a(0))
		border[bs] = avg3(a(-1), a(0), a(1))
		for i := 0; i < bs-2; i++ {
			border[bs+1+i] = avg3(a(i), a(i+1), a(i+2))
		}
		for r := 0; r < bs; r++ {
			for c := 0; c < bs; c++ {
				set(r, c, border[bs-1-r+c])
			}
		}

	case IntraD153:
		set(0, 0, avg2(a(-1), l(0)))
		for r := 1; r < bs; r++ {
			set(r, 0, avg2(l(r-1), l(r)))
		}
		set(0, 1, avg3(l(0), a(-1), a(0)))
		set(1, 1, avg3(a(-1), l(0), l(1)))
		for r := 2; r < bs; r++ {
			set(r, 1, avg3(l(r-2), l(r-1), l(r)))
		}
		for c := 2; c < bs; c++ {
			set(0, c, avg3(a(c-3), a(c-2), a(c-1)))
		}
		for r := 1; r < bs; r++ {
			for c := 2; c < bs; c++ {
				set(r, c, at(r-1, c-2))
			}
		}
	}
}
