package frame

// OutputQueue is a FIFO of published buffers awaiting the caller. The queue
// holds one reference per entry.
type OutputQueue struct {
	items []*Buffer
}

// Push retains b and appends it.
func (q *OutputQueue) Push(b *Buffer) {
	if b.State() != Published {
		panic("frame: queueing unpublished buffer")
	}
	q.items = append(q.items, b.Retain())
}

// Take removes the oldest buffer, handing its reference to the caller.
func (q *OutputQueue) Take() (*Buffer, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	b := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return b, true
}

// Len returns the number of queued buffers.
func (q *OutputQueue) Len() int { return len(q.items) }

// Drain releases every queued buffer.
func (q *OutputQueue) Drain() {
	for _, b := range q.items {
		b.Release()
	}
	q.items = nil
}
