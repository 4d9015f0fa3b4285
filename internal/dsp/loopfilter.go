package dsp

// VP9 loop filters. Each call filters one edge over 8 pixels per count,
// reading up to 8 pixels on each side for the 16-wide filter.

// FilterWidth is the number of pixels a VP9 filter may touch across an edge.
type FilterWidth int

const (
	LPF4  FilterWidth = 4
	LPF8  FilterWidth = 8
	LPF16 FilterWidth = 16
)

// LFLimits holds the thresholds derived from a filter level.
type LFLimits struct {
	MBLim  int
	Lim    int
	HevThr int
}

// NewLFLimits derives the thresholds for a VP9 filter level and sharpness.
func NewLFLimits(level, sharpness int) LFLimits {
	shift := 0
	if sharpness > 0 {
		shift++
	}
	if sharpness > 4 {
		shift++
	}
	lim := level >> shift
	if sharpness > 0 && lim > 9-sharpness {
		lim = 9 - sharpness
	}
	if lim < 1 {
		lim = 1
	}
	return LFLimits{
		MBLim:  2*(level+2) + lim,
		Lim:    lim,
		HevThr: level >> 4,
	}
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func sclamp(v int) int {
	if v < -128 {
		return -128
	}
	if v > 127 {
		return 127
	}
	return v
}

// edge gathers the 16 pixels across an edge, p7 at index 0 and q7 at 15.
type edge struct {
	buf  []byte
	base int
	step int
}

func (e edge) at(i int) int { return e.base + (i-8)*e.step }

func (e edge) px(i int) byte { return e.buf[e.at(i)] }

func (e edge) filterMask(l LFLimits) bool {
	p3, p2, p1, p0 := e.px(4), e.px(5), e.px(6), e.px(7)
	q0, q1, q2, q3 := e.px(8), e.px(9), e.px(10), e.px(11)
	if absDiff(p3, p2) > l.Lim || absDiff(p2, p1) > l.Lim || absDiff(p1, p0) > l.Lim ||
		absDiff(q1, q0) > l.Lim || absDiff(q2, q1) > l.Lim || absDiff(q3, q2) > l.Lim {
		return false
	}
	return e.simpleMask(l.MBLim)
}

// flat reports whether pixels n..3 away on each side stay within 1 of p0/q0.
func (e edge) flat(from, to int) bool {
	p0, q0 := e.px(7), e.px(8)
	for k := from; k <= to; k++ {
		if absDiff(e.px(7-k), p0) > 1 || absDiff(e.px(8+k), q0) > 1 {
			return false
		}
	}
	return true
}

func (e edge) hev(thresh int) bool {
	return absDiff(e.px(6), e.px(7)) > thresh || absDiff(e.px(9), e.px(8)) > thresh
}

func (e edge) filter4(thresh int) {
	hev := e.hev(thresh)
	ps1, qs1 := e.signed(6), e.signed(9)
	f1 := e.adjust(hev)
	if !hev {
		f := (f1 + 1) >> 1
		e.set(9, qs1-f)
		e.set(6, ps1+f)
	}
}

// smooth replaces the taps-1 pixels nearest the edge with the running
// average of a 2*taps-wide window. taps is 4 or 8.
func (e edge) smooth(taps int) {
	var in [16]int
	lo := 8 - taps
	for i := range 2 * taps {
		in[i] = int(e.px(lo + i))
	}
	n := 2 * taps
	shift := 3
	if taps == 8 {
		shift = 4
	}
	var out [16]int
	for i := 1; i < n-1; i++ {
		sum := in[i]
		for j := i - (taps - 1); j <= i+(taps-1); j++ {
			k := max(0, min(j, n-1))
			sum += in[k]
		}
		out[i] = (sum + 1<<(shift-1)) >> shift
	}
	for i := 1; i < n-1; i++ {
		e.buf[e.at(lo+i)] = byte(out[i])
	}
}

func (e edge) apply(width FilterWidth, l LFLimits) {
	if !e.filterMask(l) {
		return
	}
	if width >= LPF8 && e.flat(1, 3) {
		if width == LPF16 && e.flat(4, 7) {
			e.smooth(8)
			return
		}
		e.smooth(4)
		return
	}
	e.filter4(l.HevThr)
}

// LPFHorizontal filters a horizontal edge that lies just above off, walking
// 8*count pixels to the right.
func LPFHorizontal(width FilterWidth, buf []byte, off, stride, count int, l LFLimits) {
	for i := range 8 * count {
		edge{buf: buf, base: off + i, step: stride}.apply(width, l)
	}
}

// LPFVertical filters a vertical edge that lies just left of off, walking
// 8*count rows down.
func LPFVertical(width FilterWidth, buf []byte, off, stride, count int, l LFLimits) {
	for i := range 8 * count {
		edge{buf: buf, base: off + i*stride, step: 1}.apply(width, l)
	}
}
