package vp9

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vpxerr"
)

// flatKeyTile codes a 64x48 key frame as one skipped 64x64 DC block.
func flatKeyTile() []byte {
	fc := DefaultFrameContext()
	bw := bitio.NewBoolWriter(0)
	bw.PutBit(0, 128)
	putTree(bw, partitionTree, kfPartitionProbs[12][:], PartitionNone)
	bw.PutBit(1, int(fc.Skip[0]))
	putTree(bw, intraModeTree, kfYModeProbs[ModeDC][ModeDC][:], ModeDC)
	putTree(bw, intraModeTree, kfUVModeProbs[ModeDC][:], ModeDC)
	return bw.Finish()
}

func assertPlane(t *testing.T, b *frame.Buffer, p, w, h int, want func(x, y int) byte) {
	t.Helper()
	buf, stride := planeBuf(b, p)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !assert.Equal(t, want(x, y), buf[y*stride+x], "plane %d at %d,%d", p, x, y) {
				return
			}
		}
	}
}

func TestDecodeKeyFrameDCPrediction(t *testing.T) {
	for _, tc := range []struct {
		name    string
		lfLevel int
	}{
		{"unfiltered", 0},
		{"filtered", 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(Config{Threads: 2})
			th := testHeader{width: 64, height: 48, baseQ: 40, lfLevel: tc.lfLevel, refresh: 0xff,
				compressed: intraCompressed(), tiles: flatKeyTile()}
			out, hdr, err := d.Decode(th.encode())
			require.NoError(t, err)
			defer out.Release()
			assert.True(t, hdr.KeyFrame)
			assert.Equal(t, frame.Published, out.State())

			flat := func(int, int) byte { return 128 }
			assertPlane(t, out, 0, 64, 48, flat)
			assertPlane(t, out, 1, 32, 24, flat)
			assertPlane(t, out, 2, 32, 24, flat)

			for i := 0; i < NumRefSlots; i++ {
				b, err := d.Slots().Get(i)
				require.NoError(t, err)
				assert.Same(t, out, b)
			}
		})
	}
}

func TestDecodeInterFrameZeroMotionCopiesReference(t *testing.T) {
	d, ref := committedDecoder(t)
	pattern := func(p int) func(x, y int) byte {
		return func(x, y int) byte { return byte(x*3 + y*5 + p*40) }
	}
	for p := 0; p < 3; p++ {
		buf, stride := planeBuf(ref, p)
		for y := 0; y < len(buf)/stride; y++ {
			for x := 0; x < stride; x++ {
				buf[y*stride+x] = pattern(p)(x, y)
			}
		}
	}

	fc := d.Context(0)
	bw := bitio.NewBoolWriter(0)
	bw.PutBit(0, 128)
	putTree(bw, partitionTree, fc.Partition[12][:], PartitionNone)
	bw.PutBit(1, int(fc.Skip[0]))
	bw.PutBit(1, int(fc.IntraInter[0]))
	bw.PutBit(0, int(fc.SingleRef[2][0]))
	putTree(bw, interModeTree, fc.InterMode[2][:], InterZero)

	th := testHeader{
		inter: true, width: 64, height: 48, sizeFromRef: 1,
		refresh:    0x01,
		baseQ:      60,
		compressed: interCompressed(),
		tiles:      bw.Finish(),
	}
	out, hdr, err := d.Decode(th.encode())
	require.NoError(t, err)
	defer out.Release()
	assert.False(t, hdr.KeyFrame)
	assert.NotSame(t, ref, out)

	assertPlane(t, out, 0, 64, 48, pattern(0))
	assertPlane(t, out, 1, 32, 24, pattern(1))
	assertPlane(t, out, 2, 32, 24, pattern(2))

	b, err := d.Slots().Get(0)
	require.NoError(t, err)
	assert.Same(t, out, b)
	b, err = d.Slots().Get(1)
	require.NoError(t, err)
	assert.Same(t, ref, b)
}

func TestDecodeFailureReleasesFrame(t *testing.T) {
	d := NewDecoder(Config{})
	th := testHeader{width: 64, height: 48, baseQ: 40, compressed: intraCompressed(), tiles: []byte{0x80}}
	_, _, err := d.Decode(th.encode())
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpxerr.ErrCorruptBitstream), "got %v", err)
	require.NotNil(t, d.pool)
	assert.Equal(t, 0, d.pool.Live())
	assert.False(t, d.Slots().Populated(0))
}

func TestTileBounds(t *testing.T) {
	for _, tc := range []struct {
		i, log2, mis int
		start, end   int
	}{
		{0, 0, 6, 0, 6},
		{0, 2, 100, 0, 24},
		{1, 2, 100, 24, 48},
		{3, 2, 100, 72, 100},
		{1, 1, 8, 0, 8},
	} {
		start, end := tileBounds(tc.i, tc.log2, tc.mis)
		assert.Equal(t, tc.start, start, "tile %d of %d across %d", tc.i, 1<<tc.log2, tc.mis)
		assert.Equal(t, tc.end, end, "tile %d of %d across %d", tc.i, 1<<tc.log2, tc.mis)
	}
}

func TestFrameCountsAdd(t *testing.T) {
	var a, b FrameCounts
	a.Skip[1] = [2]uint32{1, 2}
	b.Skip[1] = [2]uint32{3, 4}
	b.MVComps[1].Bits[2] = [2]uint32{5, 6}
	b.Coef[1][0][1][2][3][1] = 7
	b.EOBBranch[2][1][0][1][4] = 8
	b.SingleRef[3][1] = [2]uint32{9, 10}

	a.add(&b)
	assert.Equal(t, [2]uint32{4, 6}, a.Skip[1])
	assert.Equal(t, [2]uint32{5, 6}, a.MVComps[1].Bits[2])
	assert.Equal(t, uint32(7), a.Coef[1][0][1][2][3][1])
	assert.Equal(t, uint32(8), a.EOBBranch[2][1][0][1][4])
	assert.Equal(t, [2]uint32{9, 10}, a.SingleRef[3][1])
}

func TestNeighbourContexts(t *testing.T) {
	intra := &blockInfo{Ref: [2]int8{IntraFrame, noneFrame}, Filter: numSwitchableFilter}
	skipped := &blockInfo{Skip: true, TxSize: Tx32x32, Ref: [2]int8{LastFrame, noneFrame}, Filter: 2}
	last := &blockInfo{TxSize: Tx16x16, Ref: [2]int8{LastFrame, noneFrame}, Filter: 1}

	td := &tileDecoder{}
	assert.Equal(t, 0, td.skipContext())
	assert.Equal(t, 0, td.intraInterContext())
	assert.Equal(t, numSwitchableFilter, td.switchableContext())

	td.above, td.left = skipped, skipped
	assert.Equal(t, 2, td.skipContext())
	assert.Equal(t, 2, td.switchableContext())
	// Skipped inter neighbours count as the largest size.
	assert.Equal(t, 1, td.txSizeContext(Tx16x16))

	td.above, td.left = last, nil
	assert.Equal(t, 1, td.txSizeContext(Tx16x16))
	assert.Equal(t, 1, td.txSizeContext(Tx32x32))
	assert.Equal(t, 1, td.switchableContext())
	td.left = &blockInfo{TxSize: Tx4x4, Ref: [2]int8{LastFrame, noneFrame}}
	assert.Equal(t, 0, td.txSizeContext(Tx32x32))

	td.above, td.left = intra, last
	assert.Equal(t, 1, td.intraInterContext())
	assert.Equal(t, 1, td.switchableContext())
	td.left = intra
	assert.Equal(t, 3, td.intraInterContext())
	td.left = nil
	assert.Equal(t, 2, td.intraInterContext())

	td.above, td.left = last, skipped
	assert.Equal(t, numSwitchableFilter, td.switchableContext())
}

func TestMVClass(t *testing.T) {
	for _, tc := range []struct{ z, class, offset int }{
		{0, 0, 0},
		{15, 0, 15},
		{16, 1, 0},
		{40, 2, 8},
		{8191, 9, 8191 - class0Size<<11},
		{8192, numMVClasses - 1, 0},
	} {
		class, offset := mvClass(tc.z)
		assert.Equal(t, tc.class, class, "z=%d", tc.z)
		assert.Equal(t, tc.offset, offset, "z=%d", tc.z)
	}
}

func TestLowerPrecision(t *testing.T) {
	assert.Equal(t, motionVector{2, -4}, lowerPrecision(motionVector{3, -5}, false))
	assert.Equal(t, motionVector{3, -5}, lowerPrecision(motionVector{3, -5}, true))
	assert.Equal(t, motionVector{66, 0}, lowerPrecision(motionVector{67, 1}, true))
	assert.Equal(t, motionVector{-8, 6}, lowerPrecision(motionVector{-8, 6}, false))
}

func TestAverageMV(t *testing.T) {
	b := &blockInfo{}
	for i, v := range []int16{1, 2, 3, 4} {
		b.SubMVs[i][0] = motionVector{Row: v, Col: -v}
	}
	assert.Equal(t, motionVector{Row: 3, Col: -3}, averageMV(b, 0))
	assert.Equal(t, motionVector{}, averageMV(b, 1))
}

func TestMVListKeepsTwoDistinct(t *testing.T) {
	var l mvList
	assert.False(t, l.add(motionVector{1, 1}))
	assert.False(t, l.add(motionVector{1, 1}))
	assert.True(t, l.add(motionVector{2, 0}))
	assert.Equal(t, [2]motionVector{{1, 1}, {2, 0}}, l.mvs)
}

func TestLoopFilterMask(t *testing.T) {
	f := &frameDecoder{miCols: 8, miRows: 8, sbCols: 1, sbRows: 1, masks: make([]lfMask, 1)}
	f.levels[0][IntraFrame] = [2]uint8{10, 10}
	f.levels[0][LastFrame] = [2]uint8{20, 30}

	b := &blockInfo{Size: block64x64, TxSize: Tx32x32, Ref: [2]int8{IntraFrame, noneFrame}, Mode: ModeDC}
	f.buildMask(b, 0, 0, 8, 8)
	m := &f.masks[0]
	for _, l := range m.lflY {
		require.Equal(t, uint8(10), l)
	}
	assert.Equal(t, uint64(0x1111111111111111), m.leftY[Tx32x32])
	assert.Equal(t, uint64(0x000000ff000000ff), m.aboveY[Tx32x32])
	assert.Equal(t, uint16(0x1111), m.leftUV[Tx32x32])
	assert.Equal(t, uint16(0x000f), m.aboveUV[Tx32x32])
	assert.Zero(t, m.int4Y)

	f.adjustMask(m, 0, 0)
	assert.Equal(t, uint64(0x1010101010101010), m.leftY[Tx16x16])
	assert.Equal(t, uint64(0x000000ff000000ff), m.aboveY[Tx16x16])
	assert.Zero(t, m.leftUV[Tx16x16])
	assert.Equal(t, uint16(0x000f), m.aboveUV[Tx16x16])

	// A skipped inter block only filters its outline.
	f.masks[0] = lfMask{}
	b = &blockInfo{Size: block32x32, TxSize: Tx8x8, Skip: true, Ref: [2]int8{LastFrame, noneFrame}, Mode: modeZero}
	f.buildMask(b, 0, 4, 4, 4)
	assert.Equal(t, uint64(0xf0), m.aboveY[Tx8x8])
	assert.Equal(t, uint64(0x10101010), m.leftY[Tx8x8])
	assert.Equal(t, uint8(20), m.lflY[4])
	assert.Equal(t, uint8(0), m.lflY[3])
	assert.Zero(t, m.int4Y)

	// Blocks with motion take the second mode class.
	f.masks[0] = lfMask{}
	b.Mode = modeNew
	f.buildMask(b, 0, 4, 4, 4)
	assert.Equal(t, uint8(30), m.lflY[4])

	// A zero level leaves the mask empty.
	f.masks[0] = lfMask{}
	f.levels[0][LastFrame] = [2]uint8{}
	f.buildMask(b, 0, 4, 4, 4)
	assert.Equal(t, lfMask{}, *m)
}

func TestAdjustMaskFrameEdge(t *testing.T) {
	f := &frameDecoder{miCols: 13, miRows: 3}
	m := &lfMask{}
	for tx := range m.leftY {
		m.leftY[tx], m.aboveY[tx] = ^uint64(0), ^uint64(0)
		m.leftUV[tx], m.aboveUV[tx] = 0xffff, 0xffff
	}
	m.int4Y, m.int4UV = ^uint64(0), 0xffff
	f.adjustMask(m, 0, 8)

	assert.Equal(t, uint64(0x1f1f1f), m.int4Y)
	assert.Equal(t, uint16(0x0077), m.aboveUV[Tx4x4]|m.aboveUV[Tx8x8]|m.aboveUV[Tx16x16])
	// Inner chroma edges stop one column early.
	assert.Equal(t, uint16(0x0033), m.int4UV)
	// The last chroma column of a five column superblock drops to the
	// 8-wide filter.
	assert.Equal(t, uint16(0x0033), m.leftUV[Tx16x16])
	assert.Equal(t, uint16(0x0077), m.leftUV[Tx8x8])
}
