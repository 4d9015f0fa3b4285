package vpx

import "go.uber.org/atomic"

// Stats is a snapshot of a decoder's counters.
type Stats struct {
	// FramesDecoded counts frames that were reconstructed, shown or not.
	FramesDecoded uint64
	// FramesShown counts pictures queued for output, including frames
	// re-shown from a reference slot.
	FramesShown   uint64
	FramesDropped uint64
	KeyFrames     uint64
	// Bytes counts the coded bytes passed to Decode.
	Bytes uint64
}

type counters struct {
	decoded atomic.Uint64
	shown   atomic.Uint64
	dropped atomic.Uint64
	keys    atomic.Uint64
	bytes   atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		FramesDecoded: c.decoded.Load(),
		FramesShown:   c.shown.Load(),
		FramesDropped: c.dropped.Load(),
		KeyFrames:     c.keys.Load(),
		Bytes:         c.bytes.Load(),
	}
}
