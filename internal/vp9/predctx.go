package vp9

// Probability contexts derived from the blocks above and to the left.

func (t *tileDecoder) skipContext() int {
	ctx := 0
	if t.above != nil && t.above.Skip {
		ctx++
	}
	if t.left != nil && t.left.Skip {
		ctx++
	}
	return ctx
}

func (t *tileDecoder) txSizeContext(maxTx int) int {
	above, left := maxTx, maxTx
	if t.above != nil && !t.above.Skip {
		above = int(t.above.TxSize)
	}
	if t.left != nil && !t.left.Skip {
		left = int(t.left.TxSize)
	}
	if t.left == nil {
		left = above
	}
	if t.above == nil {
		above = left
	}
	if above+left > maxTx {
		return 1
	}
	return 0
}

func (t *tileDecoder) segPredContext() int {
	ctx := 0
	if t.above != nil && t.above.SegPred {
		ctx++
	}
	if t.left != nil && t.left.SegPred {
		ctx++
	}
	return ctx
}

func (t *tileDecoder) intraInterContext() int {
	a, l := t.above, t.left
	switch {
	case a != nil && l != nil:
		ai, li := !a.isInter(), !l.isInter()
		if ai && li {
			return 3
		}
		return b2i(ai || li)
	case a != nil:
		return 2 * b2i(!a.isInter())
	case l != nil:
		return 2 * b2i(!l.isInter())
	}
	return 0
}

func (t *tileDecoder) switchableContext() int {
	left, above := numSwitchableFilter, numSwitchableFilter
	if t.left != nil && t.left.isInter() {
		left = int(t.left.Filter)
	}
	if t.above != nil && t.above.isInter() {
		above = int(t.above.Filter)
	}
	switch {
	case left == above:
		return left
	case left == numSwitchableFilter:
		return above
	case above == numSwitchableFilter:
		return left
	}
	return numSwitchableFilter
}

// edge returns the one available neighbour when exactly one of above and
// left is present.
func (t *tileDecoder) edge() *blockInfo {
	if t.above != nil {
		return t.above
	}
	return t.left
}

func (t *tileDecoder) compInterContext() int {
	a, l := t.above, t.left
	fixed := int8(t.f.ch.CompFixedRef)
	switch {
	case a != nil && l != nil:
		switch {
		case !a.compound() && !l.compound():
			return b2i(a.Ref[0] == fixed) ^ b2i(l.Ref[0] == fixed)
		case !a.compound():
			return 2 + b2i(a.Ref[0] == fixed || !a.isInter())
		case !l.compound():
			return 2 + b2i(l.Ref[0] == fixed || !l.isInter())
		}
		return 4
	case a != nil || l != nil:
		e := t.edge()
		if !e.compound() {
			return b2i(e.Ref[0] == fixed)
		}
		return 3
	}
	return 1
}

func (t *tileDecoder) compRefContext() int {
	a, l := t.above, t.left
	ch, h := t.f.ch, t.f.h
	fixIdx := b2i(h.SignBias[ch.CompFixedRef])
	varIdx := 1 - fixIdx
	fixed := int8(ch.CompFixedRef)
	var0, var1 := int8(ch.CompVarRef[0]), int8(ch.CompVarRef[1])

	switch {
	case a != nil && l != nil:
		ai, li := !a.isInter(), !l.isInter()
		switch {
		case ai && li:
			return 2
		case ai || li:
			e := a
			if ai {
				e = l
			}
			if !e.compound() {
				return 1 + 2*b2i(e.Ref[0] != var1)
			}
			return 1 + 2*b2i(e.Ref[varIdx] != var1)
		}
		lsg, asg := !l.compound(), !a.compound()
		vrfa, vrfl := a.Ref[varIdx], l.Ref[varIdx]
		if asg {
			vrfa = a.Ref[0]
		}
		if lsg {
			vrfl = l.Ref[0]
		}
		switch {
		case vrfa == vrfl && var1 == vrfa:
			return 0
		case lsg && asg:
			if (vrfa == fixed && vrfl == var0) || (vrfl == fixed && vrfa == var0) {
				return 4
			}
			if vrfa == vrfl {
				return 3
			}
			return 1
		case lsg || asg:
			vrfc, rfs := vrfl, vrfl
			if lsg {
				vrfc = vrfa
			}
			if asg {
				rfs = vrfa
			}
			switch {
			case vrfc == var1 && rfs != var1:
				return 1
			case rfs == var1 && vrfc != var1:
				return 2
			}
			return 4
		case vrfa == vrfl:
			return 4
		}
		return 2
	case a != nil || l != nil:
		e := t.edge()
		if !e.isInter() {
			return 2
		}
		if e.compound() {
			return 4 * b2i(e.Ref[varIdx] != var1)
		}
		return 3 * b2i(e.Ref[0] != var1)
	}
	return 2
}

// singleRefContext1 is the context of the LAST versus GOLDEN/ALTREF
// decision.
func (t *tileDecoder) singleRefContext1() int {
	a, l := t.above, t.left
	has := func(b *blockInfo, ref int8) bool { return b.Ref[0] == ref || b.Ref[1] == ref }
	switch {
	case a != nil && l != nil:
		ai, li := !a.isInter(), !l.isInter()
		switch {
		case ai && li:
			return 2
		case ai || li:
			e := a
			if ai {
				e = l
			}
			if !e.compound() {
				return 4 * b2i(e.Ref[0] == LastFrame)
			}
			return 1 + b2i(has(e, LastFrame))
		}
		switch {
		case a.compound() && l.compound():
			return 1 + b2i(has(a, LastFrame) || has(l, LastFrame))
		case a.compound() || l.compound():
			single, comp := a, l
			if a.compound() {
				single, comp = l, a
			}
			if single.Ref[0] == LastFrame {
				return 3 + b2i(has(comp, LastFrame))
			}
			return b2i(has(comp, LastFrame))
		}
		return 2*b2i(a.Ref[0] == LastFrame) + 2*b2i(l.Ref[0] == LastFrame)
	case a != nil || l != nil:
		e := t.edge()
		if !e.isInter() {
			return 2
		}
		if !e.compound() {
			return 4 * b2i(e.Ref[0] == LastFrame)
		}
		return 1 + b2i(has(e, LastFrame))
	}
	return 2
}

// singleRefContext2 is the context of the GOLDEN versus ALTREF decision.
func (t *tileDecoder) singleRefContext2() int {
	a, l := t.above, t.left
	has := func(b *blockInfo, ref int8) bool { return b.Ref[0] == ref || b.Ref[1] == ref }
	switch {
	case a != nil && l != nil:
		ai, li := !a.isInter(), !l.isInter()
		switch {
		case ai && li:
			return 2
		case ai || li:
			e := a
			if ai {
				e = l
			}
			if !e.compound() {
				if e.Ref[0] == LastFrame {
					return 3
				}
				return 4 * b2i(e.Ref[0] == GoldenFrame)
			}
			return 1 + 2*b2i(has(e, GoldenFrame))
		}
		a0, l0 := a.Ref[0], l.Ref[0]
		switch {
		case a.compound() && l.compound():
			if a0 == l0 && a.Ref[1] == l.Ref[1] {
				return 3 * b2i(has(a, GoldenFrame) || has(l, GoldenFrame))
			}
			return 2
		case a.compound() || l.compound():
			single, comp := a, l
			if a.compound() {
				single, comp = l, a
			}
			switch single.Ref[0] {
			case GoldenFrame:
				return 3 + b2i(has(comp, GoldenFrame))
			case AltRefFrame:
				return b2i(has(comp, GoldenFrame))
			}
			return 1 + 2*b2i(has(comp, GoldenFrame))
		}
		switch {
		case a0 == LastFrame && l0 == LastFrame:
			return 3
		case a0 == LastFrame || l0 == LastFrame:
			e0 := a0
			if a0 == LastFrame {
				e0 = l0
			}
			return 4 * b2i(e0 == GoldenFrame)
		}
		return 2*b2i(a0 == GoldenFrame) + 2*b2i(l0 == GoldenFrame)
	case a != nil || l != nil:
		e := t.edge()
		switch {
		case !e.isInter() || (e.Ref[0] == LastFrame && !e.compound()):
			return 2
		case !e.compound():
			return 4 * b2i(e.Ref[0] == GoldenFrame)
		}
		return 3 * b2i(has(e, GoldenFrame))
	}
	return 2
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
