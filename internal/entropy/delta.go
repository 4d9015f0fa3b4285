package entropy

// DiffUpdateProb is the probability with which a VP9 compressed header
// signals that a single probability is updated.
const DiffUpdateProb = 252

const maxProb = 255

var invMapTable = func() [maxProb]uint8 {
	var t [maxProb]uint8
	n := 0
	special := make(map[int]bool)
	for i := 0; i < 20; i++ {
		v := 7 + 13*i
		t[n] = uint8(v)
		special[v] = true
		n++
	}
	for v := 1; v < maxProb-1 && n < maxProb; v++ {
		if !special[v] {
			t[n] = uint8(v)
			n++
		}
	}
	for ; n < maxProb; n++ {
		t[n] = maxProb - 2
	}
	return t
}()

func readLiteral(src BoolSource, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		v = v<<1 | src.GetBit(128)
	}
	return v
}

func invRecenterNonneg(v, m int) int {
	if v > 2*m {
		return v
	}
	if v&1 != 0 {
		return m - (v+1)>>1
	}
	return m + v>>1
}

// InvRemapProb maps a decoded delta index v back to a probability near the
// previous value m.
func InvRemapProb(v int, m uint8) uint8 {
	if v < 0 {
		v = 0
	} else if v >= maxProb {
		v = maxProb - 1
	}
	v = int(invMapTable[v])
	mm := int(m) - 1
	if mm<<1 <= maxProb {
		return uint8(1 + invRecenterNonneg(v, mm))
	}
	return uint8(maxProb - invRecenterNonneg(v, maxProb-1-mm))
}

func decodeUniform(src BoolSource) int {
	const l = 8
	const m = (1 << l) - 191
	v := readLiteral(src, l-1)
	if v < m {
		return v
	}
	return v<<1 - m + src.GetBit(128)
}

func decodeTermSubexp(src BoolSource) int {
	if src.GetBit(128) == 0 {
		return readLiteral(src, 4)
	}
	if src.GetBit(128) == 0 {
		return readLiteral(src, 4) + 16
	}
	if src.GetBit(128) == 0 {
		return readLiteral(src, 5) + 32
	}
	return decodeUniform(src) + 64
}

// ReadDiffUpdate reads an optional sub-exponentially coded update of *p.
// It reports whether an update was present.
func ReadDiffUpdate(src BoolSource, p *uint8) bool {
	if src.GetBit(DiffUpdateProb) == 0 {
		return false
	}
	*p = InvRemapProb(decodeTermSubexp(src), *p)
	return true
}

// ReadMVUpdate reads an optional 7-bit motion vector probability update,
// stored as (v << 1) | 1.
func ReadMVUpdate(src BoolSource, p *uint8) bool {
	if src.GetBit(DiffUpdateProb) == 0 {
		return false
	}
	*p = uint8(readLiteral(src, 7)<<1 | 1)
	return true
}
