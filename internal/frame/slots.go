package frame

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/vpxerr"
)

// SlotTable is the fixed set of reference slots. A slot holds one reference
// on its buffer.
type SlotTable struct {
	slots []*Buffer
}

// NewSlotTable returns a table with n empty slots.
func NewSlotTable(n int) *SlotTable {
	return &SlotTable{slots: make([]*Buffer, n)}
}

// Len returns the number of slots.
func (t *SlotTable) Len() int { return len(t.slots) }

// Get returns the buffer in slot i without retaining it.
func (t *SlotTable) Get(i int) (*Buffer, error) {
	if i < 0 || i >= len(t.slots) {
		return nil, errors.Wrapf(vpxerr.ErrInvalidHeader, "reference slot %d out of range", i)
	}
	if t.slots[i] == nil {
		return nil, errors.Wrapf(vpxerr.ErrUninitializedReference, "reference slot %d", i)
	}
	return t.slots[i], nil
}

// Populated reports whether slot i holds a buffer.
func (t *SlotTable) Populated(i int) bool {
	return i >= 0 && i < len(t.slots) && t.slots[i] != nil
}

// Assign stores b in slot i, retaining b and releasing the previous
// occupant. Only published buffers are accepted.
func (t *SlotTable) Assign(i int, b *Buffer) {
	if b != nil {
		if b.State() != Published {
			panic("frame: assigning unpublished buffer to slot")
		}
		b.Retain()
	}
	if old := t.slots[i]; old != nil {
		old.Release()
	}
	t.slots[i] = b
}

// Snapshot returns a retained copy of the slot contents.
func (t *SlotTable) Snapshot() []*Buffer {
	snap := make([]*Buffer, len(t.slots))
	for i, b := range t.slots {
		if b != nil {
			snap[i] = b.Retain()
		}
	}
	return snap
}

// Restore replaces the slot contents with snap, taking over its references.
func (t *SlotTable) Restore(snap []*Buffer) {
	for i := range t.slots {
		if t.slots[i] != nil {
			t.slots[i].Release()
		}
		t.slots[i] = snap[i]
	}
}

// ReleaseSnapshot drops the references held by an unused snapshot.
func ReleaseSnapshot(snap []*Buffer) {
	for _, b := range snap {
		if b != nil {
			b.Release()
		}
	}
}

// Clear empties every slot.
func (t *SlotTable) Clear() {
	for i, b := range t.slots {
		if b != nil {
			b.Release()
			t.slots[i] = nil
		}
	}
}
