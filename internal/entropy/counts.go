package entropy

// ReadCounted decodes a tree symbol and increments counts[symbol].
func ReadCounted(src BoolSource, t Tree, probs []uint8, counts []uint32) (int, error) {
	sym, err := ReadTree(src, t, probs)
	if err != nil {
		return 0, err
	}
	if sym < len(counts) {
		counts[sym]++
	}
	return sym, nil
}

// ReadBoolCounted decodes one boolean with prob and increments ct[bit].
func ReadBoolCounted(src BoolSource, prob uint8, ct *[2]uint32) int {
	bit := src.GetBit(prob)
	ct[bit]++
	return bit
}

// BranchCounts converts per-symbol counts into per-node [zero, one]
// branch counts for every internal node of t.
func BranchCounts(t Tree, counts []uint32, branch [][2]uint32) {
	var walk func(i int) uint32
	walk = func(i int) uint32 {
		var ct [2]uint32
		for b := 0; b < 2; b++ {
			v := int(t[i+b])
			if v <= 0 {
				ct[b] = counts[-v]
			} else {
				ct[b] = walk(v)
			}
		}
		branch[i>>1] = ct
		return ct[0] + ct[1]
	}
	walk(0)
}
