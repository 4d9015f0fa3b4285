package vp9

import "github.com/deepteams/vpx/internal/entropy"

// TxProbs are the transform size probabilities, per maximum size.
type TxProbs struct {
	P8x8   [txSizeContexts][1]uint8
	P16x16 [txSizeContexts][2]uint8
	P32x32 [txSizeContexts][3]uint8
}

// MVComponentProbs are the probabilities of one motion vector component.
type MVComponentProbs struct {
	Sign     uint8
	Classes  [numMVClasses - 1]uint8
	Class0   [class0Size - 1]uint8
	Bits     [mvOffsetBits]uint8
	Class0FP [class0Size][mvFPSize - 1]uint8
	FP       [mvFPSize - 1]uint8
	Class0HP uint8
	HP       uint8
}

// MVContext holds the motion vector probabilities. Comps[0] is the row.
type MVContext struct {
	Joints [NumMVJoints - 1]uint8
	Comps  [2]MVComponentProbs
}

// CoefProbs are the coefficient token probabilities of one transform size,
// indexed by plane type, reference type, band and context.
type CoefProbs [planeTypes][refTypes][coefBands][bandCoeffContexts][unconstrainedNodes]uint8

// FrameContext is one of the four saved probability sets a frame may load
// and refresh.
type FrameContext struct {
	Coef             [NumTxSizes]CoefProbs
	Tx               TxProbs
	Skip             [skipContexts]uint8
	InterMode        [interModeContexts][NumInterModes - 1]uint8
	SwitchableInterp [switchableContexts][numSwitchableFilter - 1]uint8
	IntraInter       [intraInterContexts]uint8
	CompInter        [compInterContexts]uint8
	SingleRef        [refContexts][2]uint8
	CompRef          [refContexts]uint8
	YMode            [blockSizeGroups][NumIntraModes - 1]uint8
	UVMode           [NumIntraModes][NumIntraModes - 1]uint8
	Partition        [partitionContexts][NumPartitionTypes - 1]uint8
	MV               MVContext
}

// DefaultFrameContext returns the probabilities every context is reset to.
func DefaultFrameContext() FrameContext {
	return FrameContext{
		Coef:             defaultCoefProbs,
		Tx:               defaultTxProbs,
		Skip:             defaultSkipProbs,
		InterMode:        defaultInterModeProbs,
		SwitchableInterp: defaultSwitchableInterpProbs,
		IntraInter:       defaultIntraInterProbs,
		CompInter:        defaultCompInterProbs,
		SingleRef:        defaultSingleRefProbs,
		CompRef:          defaultCompRefProbs,
		YMode:            defaultYModeProbs,
		UVMode:           defaultUVModeProbs,
		Partition:        defaultPartitionProbs,
		MV:               defaultMVContext,
	}
}

// MVComponentCounts counts the symbols of one motion vector component.
type MVComponentCounts struct {
	Sign     [2]uint32
	Classes  [numMVClasses]uint32
	Class0   [class0Size]uint32
	Bits     [mvOffsetBits][2]uint32
	Class0FP [class0Size][mvFPSize]uint32
	FP       [mvFPSize]uint32
	Class0HP [2]uint32
	HP       [2]uint32
}

// FrameCounts accumulates the symbols decoded in a frame for backward
// adaptation.
type FrameCounts struct {
	YMode            [blockSizeGroups][NumIntraModes]uint32
	UVMode           [NumIntraModes][NumIntraModes]uint32
	Partition        [partitionContexts][NumPartitionTypes]uint32
	SwitchableInterp [switchableContexts][numSwitchableFilter]uint32
	IntraInter       [intraInterContexts][2]uint32
	CompInter        [compInterContexts][2]uint32
	SingleRef        [refContexts][2][2]uint32
	CompRef          [refContexts][2]uint32
	Tx8x8            [txSizeContexts][2]uint32
	Tx16x16          [txSizeContexts][3]uint32
	Tx32x32          [txSizeContexts][4]uint32
	Skip             [skipContexts][2]uint32
	InterMode        [interModeContexts][NumInterModes]uint32

	MVJoints [NumMVJoints]uint32
	MVComps  [2]MVComponentCounts

	// Coef counts ZERO, ONE, larger tokens and end of block per context;
	// EOBBranch counts how often the end-of-block branch was read.
	Coef      [NumTxSizes][planeTypes][refTypes][coefBands][bandCoeffContexts][unconstrainedNodes + 1]uint32
	EOBBranch [NumTxSizes][planeTypes][refTypes][coefBands][bandCoeffContexts]uint32
}

// AdaptParams are the frame properties that gate parts of the adaptation.
type AdaptParams struct {
	InterpFilter         int
	TxMode               int
	AllowHighPrecisionMV bool
	// IntraOnly frames adapt only coefficient probabilities.
	IntraOnly bool
	// LastKeyFrame is set when the previously decoded frame was a key
	// frame; it speeds up coefficient adaptation.
	LastKeyFrame bool
}

// Adapt blends the symbol counts of a finished frame into pre, the context
// the frame was decoded with, and returns the result. cur is the context
// after the frame's forward updates; parts not adapted are taken from it.
func Adapt(pre, cur *FrameContext, counts *FrameCounts, p AdaptParams) FrameContext {
	fc := *cur
	adaptCoef(&fc, pre, counts, p)
	if p.IntraOnly {
		return fc
	}
	adaptTx(&fc, pre, counts, p.TxMode)
	for i := range fc.Skip {
		fc.Skip[i] = entropy.ModeMVMergeProb(pre.Skip[i], counts.Skip[i])
	}

	for i := range fc.IntraInter {
		fc.IntraInter[i] = entropy.ModeMVMergeProb(pre.IntraInter[i], counts.IntraInter[i])
	}
	for i := range fc.CompInter {
		fc.CompInter[i] = entropy.ModeMVMergeProb(pre.CompInter[i], counts.CompInter[i])
	}
	for i := range fc.CompRef {
		fc.CompRef[i] = entropy.ModeMVMergeProb(pre.CompRef[i], counts.CompRef[i])
	}
	for i := range fc.SingleRef {
		for j := range fc.SingleRef[i] {
			fc.SingleRef[i][j] = entropy.ModeMVMergeProb(pre.SingleRef[i][j], counts.SingleRef[i][j])
		}
	}
	for i := range fc.InterMode {
		entropy.MergeTreeProbs(interModeTree, pre.InterMode[i][:], counts.InterMode[i][:], fc.InterMode[i][:])
	}
	for i := range fc.YMode {
		entropy.MergeTreeProbs(intraModeTree, pre.YMode[i][:], counts.YMode[i][:], fc.YMode[i][:])
	}
	for i := range fc.UVMode {
		entropy.MergeTreeProbs(intraModeTree, pre.UVMode[i][:], counts.UVMode[i][:], fc.UVMode[i][:])
	}
	for i := range fc.Partition {
		entropy.MergeTreeProbs(partitionTree, pre.Partition[i][:], counts.Partition[i][:], fc.Partition[i][:])
	}
	if p.InterpFilter == InterpSwitchable {
		for i := range fc.SwitchableInterp {
			entropy.MergeTreeProbs(switchableTree, pre.SwitchableInterp[i][:],
				counts.SwitchableInterp[i][:], fc.SwitchableInterp[i][:])
		}
	}
	adaptMV(&fc.MV, &pre.MV, counts, p.AllowHighPrecisionMV)
	return fc
}

func adaptCoef(fc, pre *FrameContext, counts *FrameCounts, p AdaptParams) {
	var factor uint32 = entropy.CoefMaxUpdateFactor
	switch {
	case p.IntraOnly:
		factor = entropy.CoefMaxUpdateFactorKey
	case p.LastKeyFrame:
		factor = entropy.CoefMaxUpdateFactorAfterKey
	}
	for tx := range fc.Coef {
		probs, preProbs := &fc.Coef[tx], &pre.Coef[tx]
		for i := range probs {
			for j := range probs[i] {
				for k := range probs[i][j] {
					for l := range probs[i][j][k] {
						c := counts.Coef[tx][i][j][k][l]
						eob := counts.EOBBranch[tx][i][j][k][l]
						branch := [unconstrainedNodes][2]uint32{
							{c[tokenEOB], eob - c[tokenEOB]},
							{c[tokenZero], c[tokenOne] + c[tokenMore]},
							{c[tokenOne], c[tokenMore]},
						}
						for m, ct := range branch {
							probs[i][j][k][l][m] = entropy.MergeProb(preProbs[i][j][k][l][m], ct,
								entropy.CoefCountSat, factor)
						}
					}
				}
			}
		}
	}
}

func adaptTx(fc, pre *FrameContext, counts *FrameCounts, txMode int) {
	if txMode != TxModeSelect {
		return
	}
	for i := 0; i < txSizeContexts; i++ {
		c8 := counts.Tx8x8[i]
		fc.Tx.P8x8[i][0] = entropy.ModeMVMergeProb(pre.Tx.P8x8[i][0], [2]uint32{c8[Tx4x4], c8[Tx8x8]})

		c16 := counts.Tx16x16[i]
		branch16 := [2][2]uint32{
			{c16[Tx4x4], c16[Tx8x8] + c16[Tx16x16]},
			{c16[Tx8x8], c16[Tx16x16]},
		}
		for j, ct := range branch16 {
			fc.Tx.P16x16[i][j] = entropy.ModeMVMergeProb(pre.Tx.P16x16[i][j], ct)
		}

		c32 := counts.Tx32x32[i]
		branch32 := [3][2]uint32{
			{c32[Tx4x4], c32[Tx8x8] + c32[Tx16x16] + c32[Tx32x32]},
			{c32[Tx8x8], c32[Tx16x16] + c32[Tx32x32]},
			{c32[Tx16x16], c32[Tx32x32]},
		}
		for j, ct := range branch32 {
			fc.Tx.P32x32[i][j] = entropy.ModeMVMergeProb(pre.Tx.P32x32[i][j], ct)
		}
	}
}

func adaptMV(mv, pre *MVContext, counts *FrameCounts, allowHP bool) {
	entropy.MergeTreeProbs(mvJointTree, pre.Joints[:], counts.MVJoints[:], mv.Joints[:])
	for i := range mv.Comps {
		c, pc, ct := &mv.Comps[i], &pre.Comps[i], &counts.MVComps[i]
		c.Sign = entropy.ModeMVMergeProb(pc.Sign, ct.Sign)
		entropy.MergeTreeProbs(mvClassTree, pc.Classes[:], ct.Classes[:], c.Classes[:])
		entropy.MergeTreeProbs(mvClass0Tree, pc.Class0[:], ct.Class0[:], c.Class0[:])
		for j := range c.Bits {
			c.Bits[j] = entropy.ModeMVMergeProb(pc.Bits[j], ct.Bits[j])
		}
		for j := range c.Class0FP {
			entropy.MergeTreeProbs(mvFPTree, pc.Class0FP[j][:], ct.Class0FP[j][:], c.Class0FP[j][:])
		}
		entropy.MergeTreeProbs(mvFPTree, pc.FP[:], ct.FP[:], c.FP[:])
		if allowHP {
			c.Class0HP = entropy.ModeMVMergeProb(pc.Class0HP, ct.Class0HP)
			c.HP = entropy.ModeMVMergeProb(pc.HP, ct.HP)
		}
	}
}
