package frame

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepteams/vpx/internal/vpxerr"
)

func published(p *Pool) *Buffer {
	b := p.Get()
	b.SetState(Published)
	return b
}

func TestPoolGeometry(t *testing.T) {
	p := NewPool(33, 17, 16)
	b := p.Get()
	assert.Equal(t, 48, b.AlignedW)
	assert.Equal(t, 32, b.AlignedH)
	assert.Equal(t, 48, b.YStride)
	assert.Equal(t, 24, b.UVStride)
	assert.Len(t, b.Y, 48*32)
	assert.Len(t, b.U, 24*16)
	assert.Equal(t, Decoding, b.State())
	assert.Equal(t, 1, p.Live())
	b.Release()
	assert.Equal(t, 0, p.Live())
	assert.True(t, p.Matches(33, 17))
	assert.False(t, p.Matches(32, 17))
}

func TestSlotTableRefcounts(t *testing.T) {
	p := NewPool(16, 16, 16)
	slots := NewSlotTable(3)

	_, err := slots.Get(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpxerr.ErrUninitializedReference))

	a := published(p)
	slots.Assign(0, a)
	slots.Assign(1, a)
	assert.Equal(t, 3, a.Refs())
	a.Release()

	got, err := slots.Get(0)
	require.NoError(t, err)
	assert.Same(t, a, got)

	b := published(p)
	slots.Assign(0, b)
	b.Release()
	assert.Equal(t, 1, a.Refs())
	assert.Equal(t, 1, b.Refs())

	slots.Clear()
	assert.Equal(t, 0, p.Live())
	assert.False(t, slots.Populated(0))
}

func TestSlotTableSnapshotRestore(t *testing.T) {
	p := NewPool(16, 16, 16)
	slots := NewSlotTable(2)
	a := published(p)
	slots.Assign(0, a)
	a.Release()

	snap := slots.Snapshot()
	b := published(p)
	slots.Assign(0, b)
	slots.Assign(1, b)
	b.Release()

	slots.Restore(snap)
	got, err := slots.Get(0)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.False(t, slots.Populated(1))
	assert.Equal(t, 1, a.Refs())

	slots.Clear()
	assert.Equal(t, 0, p.Live())
}

func TestSlotTableRejectsUnpublished(t *testing.T) {
	p := NewPool(16, 16, 16)
	slots := NewSlotTable(1)
	b := p.Get()
	assert.Panics(t, func() { slots.Assign(0, b) })
	b.Release()
}

func TestOutputQueueOrder(t *testing.T) {
	p := NewPool(16, 16, 16)
	var q OutputQueue
	var bufs []*Buffer
	for i := 0; i < 3; i++ {
		b := published(p)
		b.Meta.FrameID = uint64(i)
		q.Push(b)
		b.Release()
		bufs = append(bufs, b)
	}
	assert.Equal(t, 3, q.Len())

	first, ok := q.Take()
	require.True(t, ok)
	assert.Equal(t, uint64(0), first.Meta.FrameID)
	first.Release()

	second, ok := q.Take()
	require.True(t, ok)
	assert.Same(t, bufs[1], second)
	second.Release()

	q.Drain()
	_, ok = q.Take()
	assert.False(t, ok)
	assert.Equal(t, 0, p.Live())
}

func TestReleaseTooManyPanics(t *testing.T) {
	b := NewPool(16, 16, 16).Get()
	b.Release()
	assert.Panics(t, b.Release)
}
