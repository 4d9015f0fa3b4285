package vp8

import "github.com/deepteams/vpx/internal/entropy"

// Macroblock luma modes. The first four share numbering with the sub-block
// modes they imply for B_PRED context.
const (
	modeDC = iota
	modeTM
	modeV
	modeH
	modeBPred
	numYModes
)

// Inter macroblock modes, numbered after the intra ones.
const (
	modeNearest = numYModes + iota
	modeNear
	modeZero
	modeNew
	modeSplit
)

// Sub-block intra modes.
const (
	bDC = iota
	bTM
	bVE
	bHE
	bRD
	bVR
	bLD
	bVL
	bHD
	bHU
	numBModes
)

// Reference frames.
const (
	refIntra = iota
	refLast
	refGolden
	refAltRef
	numRefFrames
)

var (
	kfYModeTree = entropy.Tree{-modeBPred, 2, 4, 6, -modeDC, -modeV, -modeH, -modeTM}
	yModeTree   = entropy.Tree{-modeDC, 2, 4, 6, -modeV, -modeH, -modeTM, -modeBPred}
	uvModeTree  = entropy.Tree{-modeDC, 2, -modeV, 4, -modeH, -modeTM}
	bModeTree   = entropy.Tree{
		-bDC, 2,
		-bTM, 4,
		-bVE, 6,
		8, 12,
		-bHE, 10,
		-bRD, -bVR,
		-bLD, 14,
		-bVL, 16,
		-bHD, -bHU,
	}
	smallMVTree = entropy.Tree{2, 8, 4, 6, -0, -1, -2, -3, 10, 12, -4, -5, -6, -7}
)

var (
	kfYModeProbs  = [numYModes - 1]uint8{145, 156, 163, 128}
	kfUVModeProbs = [3]uint8{142, 114, 183}

	defaultYModeProbs  = [numYModes - 1]uint8{112, 86, 140, 37}
	defaultUVModeProbs = [3]uint8{162, 101, 204}

	// Sub-block modes of intra macroblocks in inter frames use fixed
	// probabilities.
	bModeProbs = [numBModes - 1]uint8{120, 90, 79, 133, 87, 85, 80, 111, 151}
)

// yModeToBMode gives the sub-block context implied by a whole-block mode.
var yModeToBMode = [numYModes]uint8{bDC, bTM, bVE, bHE, bDC}

// Motion vector probability layout.
const (
	mvpIsShort = 0
	mvpSign    = 1
	mvpShort   = 2
	mvpBits    = mvpShort + 8 - 1
	mvpCount   = mvpBits + mvLongBits

	mvLongBits = 10
)

type mvProbs [2][mvpCount]uint8

var defaultMVProbs = mvProbs{
	{
		162, 128,
		225, 146, 172, 147, 214, 39, 156,
		128, 129, 132, 75, 145, 178, 206, 239, 254, 254,
	},
	{
		164, 128,
		204, 170, 119, 235, 140, 230, 228,
		128, 130, 130, 74, 148, 180, 203, 236, 254, 254,
	},
}

var mvUpdateProbs = mvProbs{
	{237, 246, 253, 253, 254, 254, 254, 254, 254, 254, 254, 254, 254, 254, 250, 250, 252, 254, 254},
	{231, 243, 245, 253, 254, 254, 254, 254, 254, 254, 254, 254, 254, 254, 251, 251, 254, 254, 254},
}

// modeContexts gives the inter mode tree probabilities, indexed by the
// neighbour vote count and then the tree node.
var modeContexts = [6][4]uint8{
	{7, 1, 1, 143},
	{14, 18, 14, 107},
	{135, 64, 57, 68},
	{60, 56, 128, 65},
	{159, 134, 128, 34},
	{234, 188, 128, 28},
}

// Split MV partitionings.
const (
	split16x8 = iota
	split8x16
	split8x8
	split4x4
)

var splitCounts = [4]int{2, 2, 4, 16}

// splitFirst is the first sub-block of each partition.
var splitFirst = [4][16]uint8{
	{0, 8},
	{0, 2},
	{0, 2, 8, 10},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
}

// splitFill lists the sub-blocks covered by each partition, in partition
// order.
var splitFill = [4][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{0, 1, 4, 5, 8, 9, 12, 13, 2, 3, 6, 7, 10, 11, 14, 15},
	{0, 1, 4, 5, 2, 3, 6, 7, 8, 9, 12, 13, 10, 11, 14, 15},
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
}

// subMVRefProbs is indexed by (above==0)<<2 | (left==0)<<1 | (left==above).
var subMVRefProbs = [8][3]uint8{
	{147, 136, 18},
	{223, 1, 34},
	{106, 145, 1},
	{208, 1, 1},
	{179, 121, 1},
	{223, 1, 34},
	{179, 121, 1},
	{208, 1, 1},
}
