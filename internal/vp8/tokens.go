package vp8

import (
	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/dsp"
)

// bandProbs is the token probability set of one plane type.
type bandProbs = [numBands][numContexts][numTokenProbs]uint8

// Indices into a tokenContext.
const (
	ctxU  = 4
	ctxV  = 6
	ctxY2 = 8
)

// tokenContext records, for the 4x4 blocks along one macroblock edge,
// whether the block had coefficients: four luma, two U, two V, then Y2.
type tokenContext [9]uint8

// Inverse transform needed by a 4x4 block, from cheapest to full.
const (
	txNone uint8 = iota
	txDC
	txAC3
	txFull
)

func transformKind(end int, dc int16) uint8 {
	switch {
	case end > 3:
		return txFull
	case end > 1:
		return txAC3
	case dc != 0:
		return txDC
	}
	return txNone
}

// readLarge decodes a magnitude of two or more once the token tree has
// passed its "one" node.
func readLarge(br *bitio.BoolReader, p []uint8) int {
	if br.GetBit(p[3]) == 0 {
		if br.GetBit(p[4]) == 0 {
			return 2
		}
		return 3 + br.GetBit(p[5])
	}
	var cat int
	if br.GetBit(p[6]) == 0 {
		cat = br.GetBit(p[7])
	} else {
		hi := br.GetBit(p[8])
		cat = 2 + 2*hi + br.GetBit(p[9+hi])
	}
	c := &dctCategories[cat]
	v := 0
	for _, prob := range c.probs {
		v = 2*v + br.GetBit(prob)
	}
	return c.base + v
}

// readBlock decodes the tokens of one 4x4 block from scan position first
// and stores the dequantized coefficients in raster order. It returns the
// scan position after the last token read.
func readBlock(br *bitio.BoolReader, probs *bandProbs, ctx int, dq [2]int, first int, out []int16) int {
	afterZero := false
	for n := first; n < 16; n++ {
		p := probs[coeffBands[n]][ctx][:]
		if !afterZero && br.GetBit(p[0]) == 0 {
			return n
		}
		if br.GetBit(p[1]) == 0 {
			ctx, afterZero = 0, true
			continue
		}
		afterZero = false
		v := 1
		ctx = 1
		if br.GetBit(p[2]) != 0 {
			v = readLarge(br, p)
			ctx = 2
		}
		out[zigzag[n]] = int16(br.GetSigned(v) * dq[min(n, 1)])
	}
	return 16
}

// residuals is the dequantized coefficient block of one macroblock: 16
// luma blocks, then four U and four V.
type residuals struct {
	Coeffs [24 * 16]int16
	Kind   [24]uint8
	// Coded is set when any block carried a token.
	Coded bool
}

// skipResiduals clears the contexts of a macroblock coded without tokens.
// The Y2 flags survive macroblocks that have no Y2 block.
func skipResiduals(top, left *tokenContext, hasY2 bool, r *residuals) {
	y2Top, y2Left := top[ctxY2], left[ctxY2]
	*top, *left = tokenContext{}, tokenContext{}
	if !hasY2 {
		top[ctxY2], left[ctxY2] = y2Top, y2Left
	}
	r.Kind = [24]uint8{}
	r.Coded = false
}

// parseResiduals decodes every coefficient of one macroblock.
func parseResiduals(br *bitio.BoolReader, probs *tokenProbs, q *quantMatrix, hasY2 bool, top, left *tokenContext, r *residuals) {
	r.Coeffs = [24 * 16]int16{}
	r.Coded = false

	// block decodes one block and updates the edge flags it borders.
	block := func(plane int, t, l *uint8, dq [2]int, first int, out []int16) int {
		end := readBlock(br, &probs[plane], int(*t+*l), dq, first, out)
		var flag uint8
		if end > first {
			flag = 1
			r.Coded = true
		}
		*t, *l = flag, flag
		return end
	}

	first, plane := 0, planeY1SansY2
	if hasY2 {
		var dc [16]int16
		end := block(planeY2, &top[ctxY2], &left[ctxY2], q.Y2, 0, dc[:])
		if end > 1 {
			dsp.TransformWHT(dc[:], r.Coeffs[:])
		} else {
			dc0 := int16((int(dc[0]) + 3) >> 3)
			for n := 0; n < 16; n++ {
				r.Coeffs[16*n] = dc0
			}
		}
		first, plane = 1, planeY1WithY2
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			n := 4*y + x
			out := r.Coeffs[16*n : 16*n+16]
			end := block(plane, &top[x], &left[y], q.Y1, first, out)
			r.Kind[n] = transformKind(end, out[0])
		}
	}
	for i, base := range [2]int{ctxU, ctxV} {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				n := 16 + 4*i + 2*y + x
				out := r.Coeffs[16*n : 16*n+16]
				end := block(planeUV, &top[base+x], &left[base+y], q.UV, 0, out)
				r.Kind[n] = transformKind(end, out[0])
			}
		}
	}
}
