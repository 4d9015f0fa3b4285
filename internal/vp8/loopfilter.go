package vp8

import (
	"github.com/deepteams/vpx/internal/dsp"
	"github.com/deepteams/vpx/internal/frame"
)

// Mode delta slots of the loop filter.
const (
	lfModeBPred = iota
	lfModeZero
	lfModeMV
	lfModeSplit
)

// lfModeIndex returns the mode delta slot of a macroblock. Intra modes
// other than B_PRED share slot 1 with ZEROMV but never take its delta.
func lfModeIndex(mode uint8) int {
	switch mode {
	case modeBPred:
		return lfModeBPred
	case modeNearest, modeNear, modeNew:
		return lfModeMV
	case modeSplit:
		return lfModeSplit
	}
	return lfModeZero
}

func clampLevel(l int) int {
	return clip(l, 63)
}

// filterLevels returns the filter level for every segment, reference frame
// and mode delta slot.
func (d *Decoder) filterLevels() (lvl [numSegments][numRefFrames][4]uint8) {
	lf := &d.state.Filter
	seg := &d.state.Seg
	for s := range lvl {
		lvlSeg := lf.Level
		if seg.Enabled {
			if seg.AbsDelta {
				lvlSeg = int(seg.FilterLvl[s])
			} else {
				lvlSeg += int(seg.FilterLvl[s])
			}
			lvlSeg = clampLevel(lvlSeg)
		}
		if !lf.DeltaEnabled {
			for r := range lvl[s] {
				for m := range lvl[s][r] {
					lvl[s][r][m] = uint8(lvlSeg)
				}
			}
			continue
		}

		lvlRef := lvlSeg + int(lf.RefDelta[refIntra])
		lvl[s][refIntra][lfModeBPred] = uint8(clampLevel(lvlRef + int(lf.ModeDelta[lfModeBPred])))
		lvl[s][refIntra][lfModeZero] = uint8(clampLevel(lvlRef))
		for r := refLast; r < numRefFrames; r++ {
			base := lvlSeg + int(lf.RefDelta[r])
			for m := lfModeZero; m <= lfModeSplit; m++ {
				lvl[s][r][m] = uint8(clampLevel(base + int(lf.ModeDelta[m])))
			}
		}
	}
	return lvl
}

// edgeLimits are the filter thresholds of one level.
type edgeLimits struct {
	limit, ilevel, hevT int
}

func (d *Decoder) edgeLimits(level int, keyFrame bool) edgeLimits {
	sharp := d.state.Filter.Sharpness
	ilevel := level
	if sharp > 0 {
		if sharp > 4 {
			ilevel >>= 2
		} else {
			ilevel >>= 1
		}
		if ilevel > 9-sharp {
			ilevel = 9 - sharp
		}
	}
	if ilevel < 1 {
		ilevel = 1
	}

	hevT := 0
	if keyFrame {
		if level >= 40 {
			hevT = 2
		} else if level >= 15 {
			hevT = 1
		}
	} else {
		if level >= 40 {
			hevT = 3
		} else if level >= 20 {
			hevT = 2
		} else if level >= 15 {
			hevT = 1
		}
	}
	return edgeLimits{limit: 2*level + ilevel, ilevel: ilevel, hevT: hevT}
}

// loopFilter deblocks the reconstructed frame in raster order.
func (d *Decoder) loopFilter(fp *frameParams, out *frame.Buffer) {
	if d.state.Filter.Level == 0 {
		return
	}
	levels := d.filterLevels()
	var cache [64]edgeLimits
	var cached [64]bool

	for mbY := 0; mbY < d.mbH; mbY++ {
		for mbX := 0; mbX < d.mbW; mbX++ {
			mb := &d.mbs[mbY*d.mbW+mbX]
			seg := 0
			if d.state.Seg.Enabled {
				seg = int(mb.Segment)
			}
			level := int(levels[seg][mb.Ref][lfModeIndex(mb.YMode)])
			if level == 0 {
				continue
			}
			if !cached[level] {
				cache[level] = d.edgeLimits(level, fp.KeyFrame)
				cached[level] = true
			}
			inner := mb.Coded || mb.YMode == modeBPred || mb.YMode == modeSplit
			filterMB(out, mbX, mbY, cache[level], inner, d.state.Filter.Simple)
		}
	}
}

// filterMB filters the left edge, the inner vertical edges, the top edge
// and the inner horizontal edges of one macroblock, in that order.
func filterMB(out *frame.Buffer, mbX, mbY int, el edgeLimits, inner, simple bool) {
	yStride := out.YStride
	yo := mbY*16*yStride + mbX*16
	limit := el.limit

	if simple {
		if mbX > 0 {
			dsp.SimpleHFilter16(out.Y, yo, yStride, limit+4)
		}
		if inner {
			dsp.SimpleHFilter16i(out.Y, yo, yStride, limit)
		}
		if mbY > 0 {
			dsp.SimpleVFilter16(out.Y, yo, yStride, limit+4)
		}
		if inner {
			dsp.SimpleVFilter16i(out.Y, yo, yStride, limit)
		}
		return
	}

	uvStride := out.UVStride
	uvo := mbY*8*uvStride + mbX*8
	ilevel, hevT := el.ilevel, el.hevT
	if mbX > 0 {
		dsp.HFilter16(out.Y, yo, yStride, limit+4, ilevel, hevT)
		dsp.HFilter8(out.U, out.V, uvo, uvo, uvStride, limit+4, ilevel, hevT)
	}
	if inner {
		dsp.HFilter16i(out.Y, yo, yStride, limit, ilevel, hevT)
		dsp.HFilter8i(out.U, out.V, uvo, uvo, uvStride, limit, ilevel, hevT)
	}
	if mbY > 0 {
		dsp.VFilter16(out.Y, yo, yStride, limit+4, ilevel, hevT)
		dsp.VFilter8(out.U, out.V, uvo, uvo, uvStride, limit+4, ilevel, hevT)
	}
	if inner {
		dsp.VFilter16i(out.Y, yo, yStride, limit, ilevel, hevT)
		dsp.VFilter8i(out.U, out.V, uvo, uvo, uvStride, limit, ilevel, hevT)
	}
}
