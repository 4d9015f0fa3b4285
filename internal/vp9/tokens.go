package vp9

import "github.com/deepteams/vpx/internal/bitio"

// Token classes counted for adaptation.
const (
	tokenZero = iota
	tokenOne
	tokenMore
	tokenEOB
)

// Token values above ONE, as read from the constrained tree.
const (
	tokenTwo = iota + 2
	tokenThree
	tokenFour
	tokenCat1
	tokenCat2
	tokenCat3
	tokenCat4
	tokenCat5
	tokenCat6
)

type dctCategory struct {
	probs []uint8
	base  int
}

var dctCategories = [6]dctCategory{
	{[]uint8{159}, 5},
	{[]uint8{165, 145}, 7},
	{[]uint8{173, 148, 140}, 11},
	{[]uint8{176, 155, 140, 135}, 19},
	{[]uint8{180, 157, 141, 134, 130}, 35},
	{[]uint8{254, 254, 254, 252, 249, 243, 230, 196, 177, 153, 140, 133, 130, 129}, 67},
}

// tokenEnergy is the context contribution of a decoded token.
var tokenEnergy = [tokenCat6 + 1]uint8{0, 1, 2, 3, 3, 4, 4, 5, 5, 5, 5}

type (
	bandCoefProbs  = [coefBands][bandCoeffContexts][unconstrainedNodes]uint8
	bandCoefCounts = [coefBands][bandCoeffContexts][unconstrainedNodes + 1]uint32
	bandEOBCounts  = [coefBands][bandCoeffContexts]uint32
)

// readLarge decodes a token above ONE with the Pareto-extended node
// probabilities p and returns its token and magnitude.
func readLarge(br *bitio.BoolReader, p *[8]uint8) (token, val int) {
	if br.GetBit(p[0]) == 0 {
		if br.GetBit(p[1]) == 0 {
			return tokenTwo, 2
		}
		if br.GetBit(p[2]) == 0 {
			return tokenThree, 3
		}
		return tokenFour, 4
	}
	var cat int
	if br.GetBit(p[3]) == 0 {
		cat = br.GetBit(p[4])
	} else if br.GetBit(p[5]) == 0 {
		cat = 2 + br.GetBit(p[6])
	} else {
		cat = 4 + br.GetBit(p[7])
	}
	c := &dctCategories[cat]
	v := 0
	for _, prob := range c.probs {
		v = 2*v + br.GetBit(prob)
	}
	return tokenCat1 + cat, c.base + v
}

// decodeCoefs reads the tokens of one transform block, storing dequantized
// coefficients in raster order in out. ctx is the context of the first
// token; cache must hold one entry per coefficient of the block. It
// returns the end of block position.
func decodeCoefs(br *bitio.BoolReader, probs *bandCoefProbs, counts *bandCoefCounts, eobs *bandEOBCounts,
	so *scanOrder, tx, ctx int, dq [2]int16, out []int16, cache []uint8) int {
	maxEob := 16 << (2 * tx)
	bands := band8x8Plus[:]
	if tx == Tx4x4 {
		bands = band4x4[:]
	}
	shift := 0
	if tx == Tx32x32 {
		shift = 1
	}
	dqv := int(dq[0])
	scan, nb := so.scan, so.neighbors

	c := 0
	for c < maxEob {
		band := bands[c]
		eobs[band][ctx]++
		if br.GetBit(probs[band][ctx][0]) == 0 {
			counts[band][ctx][tokenEOB]++
			break
		}
		for br.GetBit(probs[band][ctx][1]) == 0 {
			counts[band][ctx][tokenZero]++
			dqv = int(dq[1])
			cache[scan[c]] = 0
			c++
			if c >= maxEob {
				return c
			}
			ctx = int(1+cache[nb[c][0]]+cache[nb[c][1]]) >> 1
			band = bands[c]
		}

		p := &probs[band][ctx]
		token, val := tokenOne, 1
		if br.GetBit(p[2]) == 0 {
			counts[band][ctx][tokenOne]++
		} else {
			counts[band][ctx][tokenMore]++
			token, val = readLarge(br, &paretoProbs[p[2]-1])
		}
		v := (val * dqv) >> shift
		if br.GetBit(128) != 0 {
			v = -v
		}
		out[scan[c]] = int16(v)
		cache[scan[c]] = tokenEnergy[token]
		c++
		if c < maxEob {
			ctx = int(1+cache[nb[c][0]]+cache[nb[c][1]]) >> 1
		}
		dqv = int(dq[1])
	}
	return c
}
