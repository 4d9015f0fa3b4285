package vp9

// Block sizes, ordered so that a partition of a square size s yields
// s-PartitionHorz, s-PartitionVert and s-PartitionSplit.
const (
	block4x4 = iota
	block4x8
	block8x4
	block8x8
	block8x16
	block16x8
	block16x16
	block16x32
	block32x16
	block32x32
	block32x64
	block64x32
	block64x64
	numBlockSizes
)

// Inter modes follow the intra modes in blockInfo.mode.
const (
	modeNearest = NumIntraModes + iota
	modeNear
	modeZero
	modeNew
)

// noneFrame marks the unused second reference of a single-reference block.
const noneFrame = -1

var (
	// Block width and height in 4x4 units, log2.
	blockWidthLog2  = [numBlockSizes]int{0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4}
	blockHeightLog2 = [numBlockSizes]int{0, 1, 0, 1, 2, 1, 2, 3, 2, 3, 4, 3, 4}

	maxTxSize = [numBlockSizes]int{
		Tx4x4, Tx4x4, Tx4x4, Tx8x8, Tx8x8, Tx8x8, Tx16x16,
		Tx16x16, Tx16x16, Tx32x32, Tx32x32, Tx32x32, Tx32x32,
	}
	sizeGroup = [numBlockSizes]int{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3, 3}

	// Partition context written above and left of a finished block; a set
	// bit n means the block is narrower (shorter) than 8<<n pixels.
	partitionCtx = [numBlockSizes][2]uint8{
		{15, 15}, {15, 14}, {14, 15}, {14, 14}, {14, 12}, {12, 14}, {12, 12},
		{12, 8}, {8, 12}, {8, 8}, {8, 0}, {0, 8}, {0, 0},
	}
)

// mi8x8 returns the width and height of a block size in 8x8 units, at
// least one.
func mi8x8(bsize int) (w, h int) {
	return max(1, 1<<blockWidthLog2[bsize]>>1), max(1, 1<<blockHeightLog2[bsize]>>1)
}

// motionVector is in eighth-pel units.
type motionVector struct {
	Row, Col int16
}

func (v motionVector) isZero() bool { return v.Row == 0 && v.Col == 0 }

// mvRef is the motion of one 8x8 unit kept for the next frame's
// prediction.
type mvRef struct {
	Ref [2]int8
	MV  [2]motionVector
}

// blockInfo is the mode information of one coded block. Every 8x8 unit
// the block covers points at it.
type blockInfo struct {
	Size    uint8
	Skip    bool
	TxSize  uint8
	Segment uint8
	SegPred bool
	// Mode is the luma mode; for blocks below 8x8 the mode of the last
	// sub-block.
	Mode     uint8
	SubModes [4]uint8
	UVMode   uint8
	Filter   uint8

	Ref    [2]int8
	MV     [2]motionVector
	SubMVs [4][2]motionVector
}

func (b *blockInfo) isInter() bool { return b.Ref[0] > IntraFrame }

func (b *blockInfo) compound() bool { return b.Ref[1] > IntraFrame }

// subMode returns the luma mode of 4x4 sub-block i.
func (b *blockInfo) subMode(i int) uint8 {
	if b.Size < block8x8 {
		return b.SubModes[i]
	}
	return b.Mode
}

// subMV returns the motion vector of sub-block i for reference slot ref.
func (b *blockInfo) subMV(ref, i int) motionVector {
	if b.Size < block8x8 {
		return b.SubMVs[i][ref]
	}
	return b.MV[ref]
}

// uvTxSize returns the chroma transform size of a 4:2:0 block.
func (b *blockInfo) uvTxSize() int {
	if b.Size < block8x8 {
		return Tx4x4
	}
	return min(int(b.TxSize), min(blockWidthLog2[b.Size], blockHeightLog2[b.Size])-1)
}
