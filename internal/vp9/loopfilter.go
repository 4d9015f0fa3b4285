package vp9

import "github.com/deepteams/vpx/internal/dsp"

// LevelTable holds the loop filter level per segment, reference frame and
// mode delta class (0 for ZEROMV and intra, 1 otherwise).
type LevelTable [MaxSegments][numRefFrames][2]uint8

// FilterLevels computes the loop filter levels of a frame.
func FilterLevels(lf *LoopFilter, seg *Segmentation) LevelTable {
	var t LevelTable
	scale := 1 << (lf.Level >> 5)
	for s := 0; s < MaxSegments; s++ {
		lvlSeg := lf.Level
		if seg.Active(s, SegLvlAltLF) {
			data := int(seg.FeatureData[s][SegLvlAltLF])
			if !seg.AbsDelta {
				data += lf.Level
			}
			lvlSeg = clamp(data, 0, maxLoopFilter)
		}

		if !lf.DeltaEnabled {
			for ref := range t[s] {
				t[s][ref] = [2]uint8{uint8(lvlSeg), uint8(lvlSeg)}
			}
			continue
		}
		intra := uint8(clamp(lvlSeg+int(lf.RefDeltas[IntraFrame])*scale, 0, maxLoopFilter))
		t[s][IntraFrame] = [2]uint8{intra, intra}
		for ref := LastFrame; ref < numRefFrames; ref++ {
			for mode := 0; mode < 2; mode++ {
				lvl := lvlSeg + int(lf.RefDeltas[ref])*scale + int(lf.ModeDeltas[mode])*scale
				t[s][ref][mode] = uint8(clamp(lvl, 0, maxLoopFilter))
			}
		}
	}
	return t
}

// FilterLimits returns the edge thresholds for every filter level at the
// given sharpness.
func FilterLimits(sharpness int) [maxLoopFilter + 1]dsp.LFLimits {
	var l [maxLoopFilter + 1]dsp.LFLimits
	for lvl := range l {
		l[lvl] = dsp.NewLFLimits(lvl, sharpness)
	}
	return l
}
