package vp9

import "github.com/deepteams/vpx/internal/entropy"

// Intra prediction modes.
const (
	ModeDC = iota
	ModeV
	ModeH
	ModeD45
	ModeD135
	ModeD117
	ModeD153
	ModeD207
	ModeD63
	ModeTM
	NumIntraModes
)

// Inter modes, as offsets from NEARESTMV.
const (
	InterNearest = iota
	InterNear
	InterZero
	InterNew
	NumInterModes
)

// Block partitions.
const (
	PartitionNone = iota
	PartitionHorz
	PartitionVert
	PartitionSplit
	NumPartitionTypes
)

// Transform modes.
const (
	TxModeOnly4x4 = iota
	TxModeAllow8x8
	TxModeAllow16x16
	TxModeAllow32x32
	TxModeSelect
)

// Transform sizes.
const (
	Tx4x4 = iota
	Tx8x8
	Tx16x16
	Tx32x32
	NumTxSizes
)

// Reference modes.
const (
	SingleReference = iota
	CompoundReference
	ReferenceModeSelect
)

// Motion vector joints.
const (
	MVJointZero = iota
	MVJointHNZVZ
	MVJointHZVNZ
	MVJointHNZVNZ
	NumMVJoints
)

const (
	blockSizeGroups     = 4
	partitionContexts   = 16
	interModeContexts   = 7
	switchableContexts  = 4
	intraInterContexts  = 4
	compInterContexts   = 5
	refContexts         = 5
	txSizeContexts      = 2
	skipContexts        = 3
	numMVClasses        = 11
	class0Size          = 2
	mvOffsetBits        = numMVClasses - 1
	mvFPSize            = 4
	numSwitchableFilter = 3
)

var (
	intraModeTree = entropy.Tree{
		-ModeDC, 2,
		-ModeTM, 4,
		-ModeV, 6,
		8, 12,
		-ModeH, 10,
		-ModeD135, -ModeD117,
		-ModeD45, 14,
		-ModeD63, 16,
		-ModeD153, -ModeD207,
	}
	interModeTree  = entropy.Tree{-InterZero, 2, -InterNearest, 4, -InterNear, -InterNew}
	partitionTree  = entropy.Tree{-PartitionNone, 2, -PartitionHorz, 4, -PartitionVert, -PartitionSplit}
	switchableTree = entropy.Tree{-0, 2, -1, -2}

	mvJointTree = entropy.Tree{-MVJointZero, 2, -MVJointHNZVZ, 4, -MVJointHZVNZ, -MVJointHNZVNZ}
	mvClassTree = entropy.Tree{
		-0, 2,
		-1, 4,
		6, 8,
		-2, -3,
		10, 12,
		-4, -5,
		-6, 14,
		16, 18,
		-7, -8,
		-9, -10,
	}
	mvClass0Tree = entropy.Tree{-0, -1}
	mvFPTree     = entropy.Tree{-0, 2, -1, 4, -2, -3}
)

var defaultTxProbs = TxProbs{
	P8x8:   [txSizeContexts][1]uint8{{100}, {66}},
	P16x16: [txSizeContexts][2]uint8{{20, 152}, {15, 101}},
	P32x32: [txSizeContexts][3]uint8{{3, 136, 37}, {5, 52, 13}},
}

var defaultSkipProbs = [skipContexts]uint8{192, 128, 64}

var defaultInterModeProbs = [interModeContexts][NumInterModes - 1]uint8{
	{2, 173, 34},
	{7, 145, 85},
	{7, 166, 63},
	{7, 94, 66},
	{8, 64, 46},
	{17, 81, 31},
	{25, 29, 30},
}

var defaultSwitchableInterpProbs = [switchableContexts][numSwitchableFilter - 1]uint8{
	{235, 162},
	{36, 255},
	{34, 3},
	{149, 144},
}

var defaultIntraInterProbs = [intraInterContexts]uint8{9, 102, 187, 225}

var defaultCompInterProbs = [compInterContexts]uint8{239, 183, 119, 96, 41}

var defaultSingleRefProbs = [refContexts][2]uint8{
	{33, 16},
	{77, 74},
	{142, 142},
	{172, 170},
	{238, 247},
}

var defaultCompRefProbs = [refContexts]uint8{50, 126, 123, 221, 226}

var defaultYModeProbs = [blockSizeGroups][NumIntraModes - 1]uint8{
	{65, 32, 18, 144, 162, 194, 41, 51, 98},
	{132, 68, 18, 165, 217, 196, 45, 40, 78},
	{173, 80, 19, 176, 240, 193, 64, 35, 46},
	{221, 135, 38, 194, 248, 121, 96, 85, 29},
}

var defaultUVModeProbs = [NumIntraModes][NumIntraModes - 1]uint8{
	{120, 7, 76, 176, 208, 126, 28, 54, 103},
	{48, 12, 154, 155, 139, 90, 34, 117, 119},
	{67, 6, 25, 204, 243, 158, 13, 21, 96},
	{97, 5, 44, 131, 176, 139, 48, 68, 97},
	{83, 5, 42, 156, 111, 152, 26, 49, 152},
	{80, 5, 58, 178, 74, 83, 33, 62, 145},
	{86, 5, 32, 154, 192, 168, 14, 22, 163},
	{85, 5, 32, 156, 216, 148, 19, 29, 73},
	{77, 7, 64, 116, 132, 122, 37, 126, 120},
	{101, 21, 107, 181, 192, 103, 19, 67, 125},
}

var defaultPartitionProbs = [partitionContexts][NumPartitionTypes - 1]uint8{
	// 8x8 -> 4x4
	{199, 122, 141},
	{147, 63, 159},
	{148, 133, 118},
	{121, 104, 114},
	// 16x16 -> 8x8
	{174, 73, 87},
	{92, 41, 83},
	{82, 99, 50},
	{53, 39, 39},
	// 32x32 -> 16x16
	{177, 58, 59},
	{68, 26, 63},
	{52, 79, 25},
	{17, 14, 12},
	// 64x64 -> 32x32
	{222, 34, 30},
	{72, 16, 44},
	{58, 32, 12},
	{10, 7, 6},
}

var defaultMVContext = MVContext{
	Joints: [NumMVJoints - 1]uint8{32, 64, 96},
	Comps: [2]MVComponentProbs{
		{
			Sign:     128,
			Classes:  [numMVClasses - 1]uint8{224, 144, 192, 168, 192, 176, 192, 198, 198, 245},
			Class0:   [class0Size - 1]uint8{216},
			Bits:     [mvOffsetBits]uint8{136, 140, 148, 160, 176, 192, 224, 234, 234, 240},
			Class0FP: [class0Size][mvFPSize - 1]uint8{{128, 128, 64}, {96, 112, 64}},
			FP:       [mvFPSize - 1]uint8{64, 96, 64},
			Class0HP: 160,
			HP:       128,
		},
		{
			Sign:     128,
			Classes:  [numMVClasses - 1]uint8{216, 128, 176, 160, 176, 176, 192, 198, 198, 208},
			Class0:   [class0Size - 1]uint8{208},
			Bits:     [mvOffsetBits]uint8{136, 140, 148, 160, 176, 192, 224, 234, 234, 240},
			Class0FP: [class0Size][mvFPSize - 1]uint8{{128, 128, 64}, {96, 112, 64}},
			FP:       [mvFPSize - 1]uint8{64, 96, 64},
			Class0HP: 160,
			HP:       128,
		},
	},
}
