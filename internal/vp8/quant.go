package vp8

// quantMatrix holds the dequantization factors for one segment.
// Each pair is [DC, AC].
type quantMatrix struct {
	Y1 [2]int
	Y2 [2]int
	UV [2]int
}

func clip(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// buildQuant fills the per-segment dequantization matrices from the frame
// quantizer and the segment quantizer data.
func buildQuant(q *quantParams, seg *segmentation, dqm *[numSegments]quantMatrix) {
	for s := range dqm {
		base := q.BaseQ
		if seg.Enabled {
			if seg.AbsDelta {
				base = int(seg.Quant[s])
			} else {
				base += int(seg.Quant[s])
			}
		} else if s > 0 {
			dqm[s] = dqm[0]
			continue
		}
		base = clip(base, 127)

		m := &dqm[s]
		m.Y1[0] = int(dcQLookup[clip(base+q.Y1DC, 127)])
		m.Y1[1] = int(acQLookup[base])

		m.Y2[0] = int(dcQLookup[clip(base+q.Y2DC, 127)]) * 2
		// x * 155 / 100
		m.Y2[1] = int(acQLookup[clip(base+q.Y2AC, 127)]) * 101581 >> 16
		if m.Y2[1] < 8 {
			m.Y2[1] = 8
		}

		m.UV[0] = int(dcQLookup[clip(base+q.UVDC, 127)])
		if m.UV[0] > 132 {
			m.UV[0] = 132
		}
		m.UV[1] = int(acQLookup[clip(base+q.UVAC, 127)])
	}
}
