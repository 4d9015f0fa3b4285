// Package pool recycles picture plane allocations through size-classed
// sync.Pools. Classes grow by a factor of four from 4 KiB to 16 MiB, enough
// for an 8-bit plane of 4096x4096.
package pool

import "sync"

const (
	minClassShift = 12 // 4 KiB
	NumClasses    = 7  // 4K, 16K, 64K, 256K, 1M, 4M, 16M
)

// ClassSize returns the capacity of the slices held by size class i.
func ClassSize(i int) int { return 1 << (minClassShift + 2*i) }

// classOf returns the smallest class holding size bytes, or -1 when size
// exceeds the largest class.
func classOf(size int) int {
	for i := 0; i < NumClasses; i++ {
		if size <= ClassSize(i) {
			return i
		}
	}
	return -1
}

var pools [NumClasses]sync.Pool

func init() {
	for i := range pools {
		sz := ClassSize(i)
		pools[i].New = func() any {
			b := make([]byte, sz)
			return &b
		}
	}
}

// Get returns a slice of length size. Its contents are undefined. Sizes
// above the largest class are allocated directly.
func Get(size int) []byte {
	i := classOf(size)
	if i < 0 {
		return make([]byte, size)
	}
	bp := pools[i].Get().(*[]byte)
	return (*bp)[:size]
}

// Put recycles b. Slices whose capacity is not a class size were not
// obtained from Get and are left to the garbage collector.
func Put(b []byte) {
	c := cap(b)
	i := classOf(c)
	if i < 0 || ClassSize(i) != c {
		return
	}
	b = b[:c]
	pools[i].Put(&b)
}
