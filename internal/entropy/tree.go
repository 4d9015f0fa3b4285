// Package entropy holds the probability machinery layered on top of the
// boolean decoder: tree-coded symbol decoding, symbol counting and the
// backward adaptation rules that blend decoded frequencies into the
// probabilities used by the next frame.
package entropy

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/vpxerr"
)

// BoolSource is the decoder-side view of a boolean decoder.
type BoolSource interface {
	GetBit(prob uint8) int
}

// Tree is a binary decision tree laid out as consecutive node pairs.
// tree[i] and tree[i+1] are the 0 and 1 branches of node i/2; positive
// entries index the next pair, entries <= 0 are negated leaf symbols.
// Node i/2 is decoded with probs[i/2].
type Tree []int8

// Leaves returns the number of symbols reachable from the root.
func (t Tree) Leaves() int {
	n := 0
	for _, v := range t {
		if v <= 0 {
			n++
		}
	}
	return n
}

// ReadTree decodes one symbol. A path that leaves the tree or needs a
// probability that probs does not hold is reported as ErrCorruptBitstream.
func ReadTree(src BoolSource, t Tree, probs []uint8) (int, error) {
	return ReadTreeAt(src, t, probs, 0)
}

// ReadTreeAt decodes one symbol starting at node index start, as used by
// VP8 to skip the first branch of a tree already decided elsewhere.
func ReadTreeAt(src BoolSource, t Tree, probs []uint8, start int) (int, error) {
	i := start
	for steps := 0; steps <= len(t); steps++ {
		if i < 0 || i+1 >= len(t) || i>>1 >= len(probs) {
			return 0, errors.Wrapf(vpxerr.ErrCorruptBitstream, "tree node %d out of range", i)
		}
		next := int(t[i+src.GetBit(probs[i>>1])])
		if next <= 0 {
			return -next, nil
		}
		i = next
	}
	return 0, errors.Wrap(vpxerr.ErrCorruptBitstream, "tree does not terminate")
}

// Path returns the branch decisions and node indices that lead from the
// root to symbol, or ok=false when the symbol is not a leaf of t.
func (t Tree) Path(symbol int) (bits []int, nodes []int, ok bool) {
	var walk func(i int) bool
	walk = func(i int) bool {
		for b := 0; b < 2; b++ {
			v := int(t[i+b])
			bits = append(bits, b)
			nodes = append(nodes, i>>1)
			if v <= 0 {
				if -v == symbol {
					return true
				}
			} else if walk(v) {
				return true
			}
			bits = bits[:len(bits)-1]
			nodes = nodes[:len(nodes)-1]
		}
		return false
	}
	ok = walk(0)
	return bits, nodes, ok
}
