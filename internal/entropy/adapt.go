package entropy

// Saturation and update limits for the backward adaptation of VP9
// probabilities at frame end.
const (
	ModeMVCountSat        = 20
	ModeMVMaxUpdateFactor = 128

	CoefCountSat                = 24
	CoefMaxUpdateFactor         = 112
	CoefCountSatKey             = 24
	CoefMaxUpdateFactorKey      = 112
	CoefCountSatAfterKey        = 24
	CoefMaxUpdateFactorAfterKey = 128
)

var countToUpdateFactor = [ModeMVCountSat + 1]uint32{
	0, 6, 12, 19, 25, 32, 38, 44, 51, 57, 64,
	70, 76, 83, 89, 96, 102, 108, 115, 121, 128,
}

// ClipProb clamps p to the valid probability range [1, 255].
func ClipProb(p int) uint8 {
	switch {
	case p > 255:
		return 255
	case p < 1:
		return 1
	}
	return uint8(p)
}

// Prob returns the probability of a zero given num zeros out of den
// symbols, rounded to nearest. An empty count yields 128.
func Prob(num, den uint32) uint8 {
	if den == 0 {
		return 128
	}
	return ClipProb(int((uint64(num)*256 + uint64(den>>1)) / uint64(den)))
}

// BinaryProb is Prob over a pair of branch counts.
func BinaryProb(n0, n1 uint32) uint8 {
	return Prob(n0, n0+n1)
}

func weightedProb(p1, p2 uint8, factor uint32) uint8 {
	return uint8((uint32(p1)*(256-factor) + uint32(p2)*factor + 128) >> 8)
}

// MergeProb blends preProb with the probability observed in ct, weighting
// the observation by how many symbols were seen, up to countSat.
func MergeProb(preProb uint8, ct [2]uint32, countSat, maxUpdateFactor uint32) uint8 {
	prob := BinaryProb(ct[0], ct[1])
	count := min(ct[0]+ct[1], countSat)
	factor := maxUpdateFactor * count / countSat
	return weightedProb(preProb, prob, factor)
}

// ModeMVMergeProb is the mode and motion-vector variant of MergeProb,
// using a fixed count-to-factor table. An empty count keeps preProb.
func ModeMVMergeProb(preProb uint8, ct [2]uint32) uint8 {
	den := ct[0] + ct[1]
	if den == 0 {
		return preProb
	}
	count := min(den, uint32(ModeMVCountSat))
	return weightedProb(preProb, Prob(ct[0], den), countToUpdateFactor[count])
}

// MergeTreeProbs adapts every node probability of t. counts is indexed by
// leaf symbol; probs receives the adapted node probabilities.
func MergeTreeProbs(t Tree, preProbs []uint8, counts []uint32, probs []uint8) {
	mergeTree(0, t, preProbs, counts, probs)
}

func mergeTree(i int, t Tree, preProbs []uint8, counts []uint32, probs []uint8) uint32 {
	branch := func(v int) uint32 {
		if v <= 0 {
			return counts[-v]
		}
		return mergeTree(v, t, preProbs, counts, probs)
	}
	left := branch(int(t[i]))
	right := branch(int(t[i+1]))
	probs[i>>1] = ModeMVMergeProb(preProbs[i>>1], [2]uint32{left, right})
	return left + right
}
