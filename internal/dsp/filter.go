package dsp

// VP8 loop filters. They walk the same edge accessor as the VP9 filters.
// thresh bounds |p0-q0|*2 + |p1-q1|/2 across the edge, interior bounds the
// steps between neighbouring pixels on either side and hevT selects the
// high edge variance path. Callers pass the full plane and the offset of
// the first pixel past the edge.

type vp8EdgeKind int

const (
	simpleEdge vp8EdgeKind = iota
	mbEdge
	subblockEdge
)

func (e edge) signed(i int) int { return int(int8(e.px(i) ^ 0x80)) }

func (e edge) set(i, v int) { e.buf[e.at(i)] = byte(sclamp(v)) ^ 0x80 }

func (e edge) simpleMask(thresh int) bool {
	return absDiff(e.px(7), e.px(8))*2+absDiff(e.px(6), e.px(9))/2 <= thresh
}

// adjust moves p0 and q0 toward each other and returns the step taken by
// q0. The p1-q1 term is included only when outer is set.
func (e edge) adjust(outer bool) int {
	ps0, qs0 := e.signed(7), e.signed(8)
	a := 0
	if outer {
		a = sclamp(e.signed(6) - e.signed(9))
	}
	a = sclamp(a + 3*(qs0-ps0))
	f1 := sclamp(a+4) >> 3
	f2 := sclamp(a+3) >> 3
	e.set(8, qs0-f1)
	e.set(7, ps0+f2)
	return f1
}

// mbFilter spreads the correction over three pixels on each side unless
// the edge has high variance.
func (e edge) mbFilter(hevT int) {
	if e.hev(hevT) {
		e.adjust(true)
		return
	}
	w := sclamp(sclamp(e.signed(6)-e.signed(9)) + 3*(e.signed(8)-e.signed(7)))
	for k, taps := range [3]int{27, 18, 9} {
		u := (taps*w + 63) >> 7
		e.set(8+k, e.signed(8+k)-u)
		e.set(7-k, e.signed(7-k)+u)
	}
}

func filterRun(kind vp8EdgeKind, buf []byte, off, across, along, n, thresh, interior, hevT int) {
	l := LFLimits{MBLim: thresh, Lim: interior}
	for i := 0; i < n; i++ {
		e := edge{buf: buf, base: off + i*along, step: across}
		switch kind {
		case simpleEdge:
			if e.simpleMask(thresh) {
				e.adjust(true)
			}
		case mbEdge:
			if e.filterMask(l) {
				e.mbFilter(hevT)
			}
		default:
			if e.filterMask(l) {
				e.filter4(hevT)
			}
		}
	}
}

// SimpleVFilter16 filters the horizontal edge above base, 16 pixels wide.
func SimpleVFilter16(p []byte, base, stride, thresh int) {
	filterRun(simpleEdge, p, base, stride, 1, 16, thresh, 0, 0)
}

// SimpleHFilter16 filters the vertical edge left of base, 16 rows high.
func SimpleHFilter16(p []byte, base, stride, thresh int) {
	filterRun(simpleEdge, p, base, 1, stride, 16, thresh, 0, 0)
}

// SimpleVFilter16i filters the three inner horizontal edges of the
// macroblock at base.
func SimpleVFilter16i(p []byte, base, stride, thresh int) {
	for k := 1; k <= 3; k++ {
		SimpleVFilter16(p, base+k*4*stride, stride, thresh)
	}
}

// SimpleHFilter16i filters the three inner vertical edges.
func SimpleHFilter16i(p []byte, base, stride, thresh int) {
	for k := 1; k <= 3; k++ {
		SimpleHFilter16(p, base+k*4, stride, thresh)
	}
}

// VFilter16 filters a horizontal macroblock edge.
func VFilter16(p []byte, base, stride, thresh, interior, hevT int) {
	filterRun(mbEdge, p, base, stride, 1, 16, thresh, interior, hevT)
}

// HFilter16 filters a vertical macroblock edge.
func HFilter16(p []byte, base, stride, thresh, interior, hevT int) {
	filterRun(mbEdge, p, base, 1, stride, 16, thresh, interior, hevT)
}

func VFilter8(u, v []byte, uBase, vBase, stride, thresh, interior, hevT int) {
	filterRun(mbEdge, u, uBase, stride, 1, 8, thresh, interior, hevT)
	filterRun(mbEdge, v, vBase, stride, 1, 8, thresh, interior, hevT)
}

func HFilter8(u, v []byte, uBase, vBase, stride, thresh, interior, hevT int) {
	filterRun(mbEdge, u, uBase, 1, stride, 8, thresh, interior, hevT)
	filterRun(mbEdge, v, vBase, 1, stride, 8, thresh, interior, hevT)
}

// VFilter16i filters the inner horizontal sub-block edges of a luma
// macroblock.
func VFilter16i(p []byte, base, stride, thresh, interior, hevT int) {
	for k := 1; k <= 3; k++ {
		filterRun(subblockEdge, p, base+k*4*stride, stride, 1, 16, thresh, interior, hevT)
	}
}

func HFilter16i(p []byte, base, stride, thresh, interior, hevT int) {
	for k := 1; k <= 3; k++ {
		filterRun(subblockEdge, p, base+k*4, 1, stride, 16, thresh, interior, hevT)
	}
}

// VFilter8i filters the middle horizontal edge of both 8x8 chroma blocks.
func VFilter8i(u, v []byte, uBase, vBase, stride, thresh, interior, hevT int) {
	filterRun(subblockEdge, u, uBase+4*stride, stride, 1, 8, thresh, interior, hevT)
	filterRun(subblockEdge, v, vBase+4*stride, stride, 1, 8, thresh, interior, hevT)
}

func HFilter8i(u, v []byte, uBase, vBase, stride, thresh, interior, hevT int) {
	filterRun(subblockEdge, u, uBase+4, 1, stride, 8, thresh, interior, hevT)
	filterRun(subblockEdge, v, vBase+4, 1, stride, 8, thresh, interior, hevT)
}
