// Package frame holds decoded picture buffers and the bookkeeping around
// them: a recycling pool, the reference slot table and the output queue.
package frame

import (
	"go.uber.org/atomic"

	"github.com/deepteams/vpx/internal/pool"
)

// State tracks how far a buffer has progressed through the pipeline. Only
// Published buffers may enter a slot or the output queue.
type State int32

const (
	Decoding State = iota
	Filtered
	Published
)

func (s State) String() string {
	switch s {
	case Decoding:
		return "decoding"
	case Filtered:
		return "filtered"
	case Published:
		return "published"
	}
	return "unknown"
}

// Meta is the per-picture information carried to the caller.
type Meta struct {
	FrameID      uint64
	KeyFrame     bool
	Shown        bool
	ColorSpace   int
	FullRange    bool
	BitDepth     int
	SubsamplingX int
	SubsamplingY int
}

// Buffer is a reference-counted 8-bit 4:2:0 picture. Plane dimensions are
// padded up to the codec's block alignment; Width and Height give the
// visible area.
type Buffer struct {
	Y, U, V  []byte
	YStride  int
	UVStride int

	Width, Height      int
	AlignedW, AlignedH int

	Meta Meta

	state atomic.Int32
	refs  atomic.Int32
	pool  *Pool
}

// State returns the buffer's pipeline state.
func (b *Buffer) State() State { return State(b.state.Load()) }

// SetState advances the buffer's pipeline state.
func (b *Buffer) SetState(s State) { b.state.Store(int32(s)) }

// Retain adds a reference and returns b.
func (b *Buffer) Retain() *Buffer {
	b.refs.Inc()
	return b
}

// Release drops a reference. The planes go back to the pool when the last
// reference is released.
func (b *Buffer) Release() {
	switch n := b.refs.Dec(); {
	case n == 0:
		if b.pool != nil {
			b.pool.recycle(b)
		}
	case n < 0:
		panic("frame: buffer released too many times")
	}
}

// Refs returns the current reference count.
func (b *Buffer) Refs() int { return int(b.refs.Load()) }

// UVHeight returns the number of rows in each chroma plane.
func (b *Buffer) UVHeight() int { return (b.AlignedH + 1) >> 1 }

// UVWidth returns the number of columns in each chroma plane.
func (b *Buffer) UVWidth() int { return (b.AlignedW + 1) >> 1 }

// CopyFrom copies the pixels of src, which must have the same geometry.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.Y, src.Y)
	copy(b.U, src.U)
	copy(b.V, src.V)
}

// Pool hands out Buffers of one geometry, recycling their planes through
// the shared byte pool.
type Pool struct {
	width, height int
	align         int
	allocated     atomic.Int64
	live          atomic.Int64
}

// NewPool returns a pool for width x height pictures whose planes are padded
// to a multiple of align luma pixels.
func NewPool(width, height, align int) *Pool {
	return &Pool{width: width, height: height, align: align}
}

// Matches reports whether the pool produces buffers of the given geometry.
func (p *Pool) Matches(width, height int) bool {
	return p.width == width && p.height == height
}

// Get returns a zeroed buffer with one reference, in the Decoding state.
func (p *Pool) Get() *Buffer {
	aw := (p.width + p.align - 1) / p.align * p.align
	ah := (p.height + p.align - 1) / p.align * p.align
	uvw, uvh := (aw+1)>>1, (ah+1)>>1

	b := &Buffer{
		Y:        pool.Get(aw * ah),
		U:        pool.Get(uvw * uvh),
		V:        pool.Get(uvw * uvh),
		YStride:  aw,
		UVStride: uvw,
		Width:    p.width,
		Height:   p.height,
		AlignedW: aw,
		AlignedH: ah,
		pool:     p,
	}
	clear(b.Y)
	clear(b.U)
	clear(b.V)
	b.refs.Store(1)
	p.allocated.Inc()
	p.live.Inc()
	return b
}

// Live returns the number of buffers handed out and not yet fully released.
func (p *Pool) Live() int { return int(p.live.Load()) }

func (p *Pool) recycle(b *Buffer) {
	pool.Put(b.Y)
	pool.Put(b.U)
	pool.Put(b.V)
	b.Y, b.U, b.V = nil, nil, nil
	p.live.Dec()
}
