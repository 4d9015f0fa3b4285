package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/vpxerr"
)

// ParseSuperframeIndex splits a chunk into the frames listed in its trailing
// superframe index. A chunk without an index is returned as a single frame.
// Zero-sized entries are skipped.
func ParseSuperframeIndex(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	marker := data[len(data)-1]
	if marker&0xe0 != 0xc0 {
		return [][]byte{data}, nil
	}

	frames := int(marker&7) + 1
	mag := int(marker>>3&3) + 1
	indexSize := 2 + mag*frames
	if len(data) < indexSize {
		return nil, errors.Wrapf(vpxerr.ErrCorruptBitstream,
			"vp9: superframe index of %d bytes in a %d byte chunk", indexSize, len(data))
	}
	if data[len(data)-indexSize] != marker {
		// The marker byte pattern occurs in frame data; a real index is
		// bracketed by two copies of it.
		return [][]byte{data}, nil
	}

	index := data[len(data)-indexSize+1:]
	payload := data[:len(data)-indexSize]
	out := make([][]byte, 0, frames)
	off := 0
	for i := 0; i < frames; i++ {
		size := 0
		for b := 0; b < mag; b++ {
			size |= int(index[i*mag+b]) << (8 * b)
		}
		if size > len(payload)-off {
			return nil, errors.Wrapf(vpxerr.ErrCorruptBitstream,
				"vp9: superframe entry %d of %d bytes exceeds %d remaining bytes", i, size, len(payload)-off)
		}
		if size == 0 {
			continue
		}
		out = append(out, payload[off:off+size])
		off += size
	}
	return out, nil
}

// BuildSuperframe appends a superframe index to the concatenated frames.
func BuildSuperframe(frames [][]byte) []byte {
	largest := 0
	for _, f := range frames {
		largest = max(largest, len(f))
	}
	mag := 1
	for mag < 4 && largest >= 1<<(8*mag) {
		mag++
	}
	marker := byte(0xc0 | (mag-1)<<3 | (len(frames) - 1))

	var out []byte
	for _, f := range frames {
		out = append(out, f...)
	}
	out = append(out, marker)
	for _, f := range frames {
		for b := 0; b < mag; b++ {
			out = append(out, byte(len(f)>>(8*b)))
		}
	}
	return append(out, marker)
}
