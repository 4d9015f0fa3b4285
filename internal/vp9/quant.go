package vp9

// QIndex returns the quantizer index used by segment segID.
func QIndex(seg *Segmentation, segID, baseQIdx int) int {
	if !seg.Active(segID, SegLvlAltQ) {
		return baseQIdx
	}
	data := int(seg.FeatureData[segID][SegLvlAltQ])
	if !seg.AbsDelta {
		data += baseQIdx
	}
	return clamp(data, 0, maxQ)
}
