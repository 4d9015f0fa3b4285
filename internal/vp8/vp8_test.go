package vp8

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xvp8 "golang.org/x/image/vp8"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vpxerr"
)

func decodeOne(t *testing.T, d *Decoder, data []byte) *frame.Buffer {
	t.Helper()
	out, _, err := d.Decode(data)
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func requireSamePlanes(t *testing.T, want, got *frame.Buffer) {
	t.Helper()
	require.Equal(t, want.Width, got.Width)
	require.Equal(t, want.Height, got.Height)
	for y := 0; y < got.Height; y++ {
		require.Equal(t, want.Y[y*want.YStride:y*want.YStride+want.Width],
			got.Y[y*got.YStride:y*got.YStride+got.Width], "luma row %d", y)
	}
	for y := 0; y < got.UVHeight(); y++ {
		w := got.UVWidth()
		require.Equal(t, want.U[y*want.UVStride:y*want.UVStride+w], got.U[y*got.UVStride:y*got.UVStride+w], "u row %d", y)
		require.Equal(t, want.V[y*want.UVStride:y*want.UVStride+w], got.V[y*got.UVStride:y*got.UVStride+w], "v row %d", y)
	}
}

func TestKeyFrameMatchesReference(t *testing.T) {
	for _, tc := range []struct {
		name       string
		w, h       int
		simple     bool
		level      int
		sharpness  int
		partitions int
		q          int
	}{
		{name: "unfiltered", w: 40, h: 24, q: 40},
		{name: "normal filter", w: 40, h: 24, level: 20, sharpness: 2, q: 40},
		{name: "strong filter", w: 48, h: 48, level: 45, q: 90},
		{name: "simple filter", w: 33, h: 17, simple: true, level: 12, q: 20},
		{name: "partitions", w: 64, h: 64, level: 8, sharpness: 5, partitions: 2, q: 60},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := keyFrame(tc.w, tc.h)
			f.simple = tc.simple
			f.filterLevel = tc.level
			f.sharpness = tc.sharpness
			f.partitions = tc.partitions
			f.baseQ = tc.q
			data := f.encode()

			out, hdr, err := NewDecoder(Config{Threads: 2}).Decode(data)
			require.NoError(t, err)
			assert.True(t, hdr.KeyFrame)
			assert.True(t, hdr.Show)
			assert.Equal(t, tc.w, hdr.Width)
			assert.Equal(t, tc.h, hdr.Height)
			assert.Equal(t, frame.Published, out.State())
			requireReferenceMatch(t, data, out)
		})
	}
}

// requireReferenceMatch decodes a key frame with x/image/vp8 and compares
// the visible area of every plane with out.
func requireReferenceMatch(t *testing.T, data []byte, out *frame.Buffer) {
	t.Helper()
	ref := xvp8.NewDecoder()
	ref.Init(bytes.NewReader(data), len(data))
	fh, err := ref.DecodeFrameHeader()
	require.NoError(t, err)
	require.True(t, fh.KeyFrame)
	img, err := ref.DecodeFrame()
	require.NoError(t, err)

	w, h := out.Width, out.Height
	for y := 0; y < h; y++ {
		require.Equal(t, img.Y[y*img.YStride:y*img.YStride+w],
			out.Y[y*out.YStride:y*out.YStride+w], "luma row %d", y)
	}
	cw, ch := (w+1)/2, (h+1)/2
	for y := 0; y < ch; y++ {
		require.Equal(t, img.Cb[y*img.CStride:y*img.CStride+cw],
			out.U[y*out.UVStride:y*out.UVStride+cw], "u row %d", y)
		require.Equal(t, img.Cr[y*img.CStride:y*img.CStride+cw],
			out.V[y*out.UVStride:y*out.UVStride+cw], "v row %d", y)
	}
}

func TestThreadCountDoesNotChangeOutput(t *testing.T) {
	f := keyFrame(96, 80)
	f.partitions = 3
	f.filterLevel = 30
	data := f.encode()

	single := decodeOne(t, NewDecoder(Config{Threads: 1}), data)
	for _, threads := range []int{2, 3, 8} {
		got := decodeOne(t, NewDecoder(Config{Threads: threads}), data)
		requireSamePlanes(t, single, got)
	}
}

// zeroMVFrame returns an inter frame where every macroblock copies the
// last frame.
func zeroMVFrame(mbW, mbH int) *testFrame {
	f := &testFrame{mbW: mbW}
	for mbY := 0; mbY < mbH; mbY++ {
		for mbX := 0; mbX < mbW; mbX++ {
			mb := testMB{inter: true, yMode: modeZero}
			if mbY > 0 {
				mb.cnt[0] += 2
			}
			if mbX > 0 {
				mb.cnt[0] += 2
			}
			if mbX > 0 && mbY > 0 {
				mb.cnt[0]++
			}
			f.mbs = append(f.mbs, mb)
		}
	}
	return f
}

func TestInterFrameZeroMVCopiesLastFrame(t *testing.T) {
	d := NewDecoder(Config{Threads: 2})
	key := decodeOne(t, d, keyFrame(48, 32).encode())

	out, hdr, err := d.Decode(zeroMVFrame(3, 2).encode())
	require.NoError(t, err)
	assert.False(t, hdr.KeyFrame)
	assert.False(t, out.Meta.KeyFrame)
	assert.Equal(t, uint64(1), out.Meta.FrameID)
	requireSamePlanes(t, key, out)

	last, err := d.Slots().Get(SlotLast)
	require.NoError(t, err)
	assert.Same(t, out, last)
	golden, err := d.Slots().Get(SlotGolden)
	require.NoError(t, err)
	assert.Same(t, key, golden)
	alt, err := d.Slots().Get(SlotAltRef)
	require.NoError(t, err)
	assert.Same(t, key, alt)
}

func TestInterFrameMotionVectors(t *testing.T) {
	d := NewDecoder(Config{Threads: 1})
	kf := &testFrame{key: true, width: 32, height: 16, mbW: 2, baseQ: 127, mbs: []testMB{
		{yMode: modeDC, uvMode: modeDC, dc: 4},
		{yMode: modeDC, uvMode: modeDC, dc: -4},
	}}
	key := decodeOne(t, d, kf.encode())
	a, b := key.Y[0], key.Y[16]
	require.NotEqual(t, a, b)

	// One pixel to the right: a NEWMV followed by a NEARESTMV reusing it.
	inter := &testFrame{mbW: 2, mbs: []testMB{
		{inter: true, yMode: modeNew, delta: [2]int{0, 4}},
		{inter: true, yMode: modeNearest, cnt: [4]int{0, 2, 0, 0}},
	}}
	out := decodeOne(t, d, inter.encode())

	assert.Equal(t, motionVector{Row: 0, Col: 8}, d.mbs[0].MV)
	assert.Equal(t, motionVector{Row: 0, Col: 8}, d.mbs[1].MV)
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			want := key.Y[y*key.YStride+min(x+1, 31)]
			require.Equal(t, want, out.Y[y*out.YStride+x], "pixel (%d,%d)", x, y)
		}
	}
	for i := 0; i < 8*16; i++ {
		y, x := i/16, i%16
		require.Equal(t, byte(128), out.U[y*out.UVStride+x])
		require.Equal(t, byte(128), out.V[y*out.UVStride+x])
	}
}

func TestReferenceCopyOrder(t *testing.T) {
	d := NewDecoder(Config{})
	k := decodeOne(t, d, keyFrame(32, 32).encode())
	f1 := decodeOne(t, d, zeroMVFrame(2, 2).encode())

	get := func(slot int) *frame.Buffer {
		b, err := d.Slots().Get(slot)
		require.NoError(t, err)
		return b
	}

	// The altref copy sees the golden buffer from before this frame.
	f := zeroMVFrame(2, 2)
	f.copyToAlt = 2
	f.copyToGolden = 1
	f.noRefreshLast = true
	decodeOne(t, d, f.encode())
	assert.Same(t, f1, get(SlotLast))
	assert.Same(t, f1, get(SlotGolden))
	assert.Same(t, k, get(SlotAltRef))

	// The golden copy from altref sees the altref written by this frame.
	f = zeroMVFrame(2, 2)
	f.copyToAlt = 1
	f.copyToGolden = 2
	f.noRefreshLast = true
	decodeOne(t, d, f.encode())
	assert.Same(t, f1, get(SlotAltRef))
	assert.Same(t, f1, get(SlotGolden))
}

func TestHiddenFrameRefreshesReferences(t *testing.T) {
	d := NewDecoder(Config{})
	decodeOne(t, d, keyFrame(32, 16).encode())

	f := zeroMVFrame(2, 1)
	f.hidden = true
	f.refreshGolden = true
	out, hdr, err := d.Decode(f.encode())
	require.NoError(t, err)
	assert.False(t, hdr.Show)
	assert.False(t, out.Meta.Shown)

	golden, err := d.Slots().Get(SlotGolden)
	require.NoError(t, err)
	assert.Same(t, out, golden)
	last, err := d.Slots().Get(SlotLast)
	require.NoError(t, err)
	assert.Same(t, out, last)
}

func TestEntropyProbsRestoredWithoutRefresh(t *testing.T) {
	d := NewDecoder(Config{})
	decodeOne(t, d, keyFrame(32, 32).encode())
	before := d.state.Probs

	f := zeroMVFrame(2, 2)
	f.noRefreshEntropy = true
	decodeOne(t, d, f.encode())
	assert.Equal(t, before, d.state.Probs)
}

func TestParseFrameHeaderErrors(t *testing.T) {
	valid := keyFrame(16, 16).encode()
	withVersion := func(v int) []byte {
		b := append([]byte(nil), valid...)
		b[0] = b[0]&^0x0e | byte(v<<1)
		return b
	}

	for _, tc := range []struct {
		name   string
		data   []byte
		strict bool
		want   error
	}{
		{name: "empty", data: nil, want: vpxerr.ErrTruncatedStream},
		{name: "short tag", data: valid[:2], want: vpxerr.ErrTruncatedStream},
		{name: "short key frame", data: valid[:8], want: vpxerr.ErrTruncatedStream},
		{name: "bad start code", data: func() []byte {
			b := append([]byte(nil), valid...)
			b[4] = 0x02
			return b
		}(), want: vpxerr.ErrInvalidHeader},
		{name: "zero width", data: func() []byte {
			b := append([]byte(nil), valid...)
			b[6], b[7] = 0, 0
			return b
		}(), want: vpxerr.ErrInvalidHeader},
		{name: "first partition overflow", data: valid[:12], want: vpxerr.ErrTruncatedStream},
		{name: "strict version", data: withVersion(5), strict: true, want: vpxerr.ErrInvalidHeader},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseFrameHeader(tc.data, tc.strict)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	hdr, n, err := ParseFrameHeader(withVersion(5), false)
	require.NoError(t, err)
	assert.Equal(t, 5, hdr.Version)
	assert.Equal(t, 10, n)
}

func TestLaxVersionDecodesAsSixtap(t *testing.T) {
	data := keyFrame(32, 32).encode()
	want := decodeOne(t, NewDecoder(Config{}), data)

	data[0] = data[0]&^0x0e | 6<<1
	got := decodeOne(t, NewDecoder(Config{}), data)
	requireSamePlanes(t, want, got)

	_, _, err := NewDecoder(Config{Strict: true}).Decode(data)
	assert.True(t, errors.Is(err, vpxerr.ErrInvalidHeader))
}

func TestInterFrameWithoutKeyFrame(t *testing.T) {
	d := NewDecoder(Config{})
	_, _, err := d.Decode(zeroMVFrame(1, 1).encode())
	assert.True(t, errors.Is(err, vpxerr.ErrMissingKeyFrame))

	decodeOne(t, d, keyFrame(16, 16).encode())
	d.Reset()
	_, _, err = d.Decode(zeroMVFrame(1, 1).encode())
	assert.True(t, errors.Is(err, vpxerr.ErrMissingKeyFrame))
}

func TestFailedFrameLeavesStateUntouched(t *testing.T) {
	d := NewDecoder(Config{})
	key := decodeOne(t, d, keyFrame(40, 24).encode())
	state := d.state

	// A frame with two partitions whose size table is cut off fails after
	// the loop filter header has been parsed.
	f := zeroMVFrame(3, 2)
	f.filterLevel = 33
	f.partitions = 1
	data := f.encode()
	firstSize := int(uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16) >> 5
	_, _, err := d.Decode(data[:3+firstSize+2])
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpxerr.ErrTruncatedStream), "got %v", err)
	assert.Equal(t, state, d.state)

	// A key frame of another size without its token partition fails after
	// the geometry was replaced.
	kf := keyFrame(64, 48).encode()
	hdr, n, err := ParseFrameHeader(kf, false)
	require.NoError(t, err)
	_, _, err = d.Decode(kf[:n+hdr.FirstPartSize])
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpxerr.ErrTruncatedStream), "got %v", err)
	assert.Equal(t, 40, d.width)
	assert.Equal(t, 24, d.height)

	for slot := 0; slot < NumSlots; slot++ {
		b, err := d.Slots().Get(slot)
		require.NoError(t, err)
		assert.Same(t, key, b)
	}

	out := decodeOne(t, d, zeroMVFrame(3, 2).encode())
	requireSamePlanes(t, key, out)
}

func TestReadMVComponent(t *testing.T) {
	p := defaultMVProbs[0][:]
	values := []int{0, 1, -1, 3, -7, 8, -8, 15, 100, -255, 1023}

	bw := bitio.NewBoolWriter(0)
	for _, v := range values {
		x := v
		if x < 0 {
			x = -x
		}
		if x < 8 {
			putMVComponent(bw, p, v)
			continue
		}
		bw.PutBit(1, int(p[mvpIsShort]))
		for i := 0; i < 3; i++ {
			bw.PutBit((x>>i)&1, int(p[mvpBits+i]))
		}
		for i := mvLongBits - 1; i > 3; i-- {
			bw.PutBit((x>>i)&1, int(p[mvpBits+i]))
		}
		if x&0xfff0 != 0 {
			bw.PutBit((x>>3)&1, int(p[mvpBits+3]))
		}
		bw.PutBit(boolInt(v < 0), int(p[mvpSign]))
	}

	br := bitio.NewBoolReader(bw.Finish())
	for _, want := range values {
		got, err := readMVComponent(br, p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestChromaMV(t *testing.T) {
	assert.Equal(t, motionVector{Row: 4, Col: -4}, chromaMV(motionVector{Row: 8, Col: -8}, -1))
	assert.Equal(t, motionVector{Row: 2, Col: -2}, chromaMV(motionVector{Row: 3, Col: -3}, -1))
	assert.Equal(t, motionVector{Row: 1, Col: -1}, chromaMV(motionVector{Row: 2, Col: -2}, -1))
	assert.Equal(t, motionVector{Row: 8, Col: -8}, chromaMV(motionVector{Row: 22, Col: -10}, ^int16(7)))

	var mvs [16]motionVector
	for i := range mvs {
		mvs[i] = motionVector{Row: int16(i), Col: -int16(i)}
	}
	// Blocks 0, 1, 4 and 5 sum to 10.
	assert.Equal(t, motionVector{Row: 1, Col: -1}, splitChromaMV(&mvs, 0, 0, -1))
	// Blocks 10, 11, 14 and 15 sum to 50.
	assert.Equal(t, motionVector{Row: 6, Col: -6}, splitChromaMV(&mvs, 1, 1, -1))
}

func TestClampToBorder(t *testing.T) {
	d := &Decoder{geometry: newGeometry(64, 64)}
	b := d.bounds(0, 0)

	v := clampToBorder(motionVector{Row: -153, Col: 500}, b)
	assert.Equal(t, motionVector{Row: -128, Col: 500}, v)

	v = clampToBorder(motionVector{Row: -152, Col: 3*128 + 145}, b)
	assert.Equal(t, motionVector{Row: -152, Col: 3*128 + 128}, v)

	assert.False(t, b.outside(motionVector{Row: -128, Col: 3*128 + 128}))
	assert.True(t, b.outside(motionVector{Row: -130, Col: 0}))
	assert.Equal(t, motionVector{Row: -128, Col: 0}, b.clamp(motionVector{Row: -130, Col: 0}))
}

func TestEdgeLimits(t *testing.T) {
	d := &Decoder{}
	assert.Equal(t, edgeLimits{limit: 2*20 + 20, ilevel: 20, hevT: 1}, d.edgeLimits(20, true))
	assert.Equal(t, edgeLimits{limit: 2*20 + 20, ilevel: 20, hevT: 2}, d.edgeLimits(20, false))
	assert.Equal(t, edgeLimits{limit: 2*45 + 45, ilevel: 45, hevT: 3}, d.edgeLimits(45, false))
	assert.Equal(t, edgeLimits{limit: 2 + 1, ilevel: 1, hevT: 0}, d.edgeLimits(1, true))

	d.state.Filter.Sharpness = 3
	assert.Equal(t, edgeLimits{limit: 2*20 + 6, ilevel: 6, hevT: 1}, d.edgeLimits(20, true))
	d.state.Filter.Sharpness = 6
	assert.Equal(t, edgeLimits{limit: 2*8 + 2, ilevel: 2, hevT: 0}, d.edgeLimits(8, false))
}

func TestFilterLevels(t *testing.T) {
	d := &Decoder{}
	d.state.Filter = filterParams{
		Level:        30,
		DeltaEnabled: true,
		RefDelta:     [numRefLFDeltas]int8{2, 0, -2, -2},
		ModeDelta:    [numModeLFDeltas]int8{4, -2, 2, 4},
	}
	d.state.Seg = segmentation{Enabled: true, FilterLvl: [numSegments]int8{0, 40, -40, 0}}

	lvl := d.filterLevels()
	assert.Equal(t, uint8(36), lvl[0][refIntra][lfModeBPred])
	assert.Equal(t, uint8(32), lvl[0][refIntra][lfModeZero])
	assert.Equal(t, uint8(28), lvl[0][refLast][lfModeZero])
	assert.Equal(t, uint8(32), lvl[0][refLast][lfModeMV])
	assert.Equal(t, uint8(32), lvl[0][refGolden][lfModeSplit])
	assert.Equal(t, uint8(63), lvl[1][refLast][lfModeSplit])
	assert.Equal(t, uint8(0), lvl[2][refGolden][lfModeZero])

	assert.Equal(t, lfModeBPred, lfModeIndex(modeBPred))
	assert.Equal(t, lfModeZero, lfModeIndex(modeTM))
	assert.Equal(t, lfModeZero, lfModeIndex(modeZero))
	assert.Equal(t, lfModeMV, lfModeIndex(modeNew))
	assert.Equal(t, lfModeSplit, lfModeIndex(modeSplit))
}

func TestBuildQuant(t *testing.T) {
	var dqm [numSegments]quantMatrix
	buildQuant(&quantParams{BaseQ: 0}, &segmentation{}, &dqm)
	assert.Equal(t, quantMatrix{Y1: [2]int{4, 4}, Y2: [2]int{8, 8}, UV: [2]int{4, 4}}, dqm[0])
	assert.Equal(t, dqm[0], dqm[3])

	buildQuant(&quantParams{BaseQ: 127}, &segmentation{}, &dqm)
	assert.Equal(t, 132, dqm[0].UV[0])
	assert.Equal(t, int(acQLookup[127])*155/100, dqm[0].Y2[1])

	seg := &segmentation{Enabled: true, Quant: [numSegments]int8{0, 10, -10, 100}}
	buildQuant(&quantParams{BaseQ: 50}, seg, &dqm)
	assert.Equal(t, int(acQLookup[50]), dqm[0].Y1[1])
	assert.Equal(t, int(acQLookup[60]), dqm[1].Y1[1])
	assert.Equal(t, int(acQLookup[40]), dqm[2].Y1[1])
	assert.Equal(t, int(acQLookup[127]), dqm[3].Y1[1])
}

func TestSynthFrame(t *testing.T) {
	key := &SynthFrame{Key: true, Width: 50, Height: 30, BaseQ: 25, DC: []int{4, -3, 0, 2, -1, 1, 0, -4}}
	data := key.Encode()

	ref := xvp8.NewDecoder()
	ref.Init(bytes.NewReader(data), len(data))
	_, err := ref.DecodeFrameHeader()
	require.NoError(t, err)
	img, err := ref.DecodeFrame()
	require.NoError(t, err)

	d := NewDecoder(Config{})
	out := decodeOne(t, d, data)
	for y := 0; y < 30; y++ {
		require.Equal(t, img.Y[y*img.YStride:y*img.YStride+50],
			out.Y[y*out.YStride:y*out.YStride+50], "luma row %d", y)
	}

	// The same levels coded as intra macroblocks of an inter frame give
	// the same picture.
	inter := *key
	inter.Key = false
	inter.RefreshAlt = true
	got := decodeOne(t, d, inter.Encode())
	requireSamePlanes(t, out, got)
	alt, err := d.Slots().Get(SlotAltRef)
	require.NoError(t, err)
	assert.Same(t, got, alt)
}

// maxLevel bounds token magnitudes so the dequantized coefficients of a
// frame whose quantizer indices stay at or below q fit the inverse
// transforms without truncation.
func maxLevel(q int) int {
	return 2047 / (2 * int(acQLookup[min(q, 127)]))
}

// randomLevels returns sparse levels covering every token category up to
// limit. Macroblocks with a Y2 block carry no luma DC levels.
func randomLevels(rng *rand.Rand, hasY2 bool, limit int) *[25][16]int {
	magnitudes := []int{1, 2, 3, 4, 5, 6, 7, 10, 11, 18, 19, 34, 35, 66, 67, 2114}
	var l [25][16]int
	for b := range l {
		first := 0
		switch {
		case b == 24 && !hasY2:
			continue
		case b < 16 && hasY2:
			first = 1
		}
		for k := rng.Intn(4); k > 0; k-- {
			v := min(magnitudes[rng.Intn(len(magnitudes))], limit)
			if rng.Intn(2) == 0 {
				v = -v
			}
			l[b][first+rng.Intn(16-first)] = v
		}
	}
	return &l
}

// randomKeyFrame returns a key frame with residuals in every plane, B_PRED
// macroblocks, segmentation and loop filter deltas. Segment quantizers and
// filter levels are drawn in range before the frame deltas apply and
// filter level sums stay below 128, the domain where x/image/vp8 and
// libvpx agree.
func randomKeyFrame(rng *rand.Rand) *testFrame {
	mbW, mbH := 1+rng.Intn(4), 1+rng.Intn(3)
	f := &testFrame{
		key:         true,
		width:       16*mbW - rng.Intn(16),
		height:      16*mbH - rng.Intn(16),
		mbW:         mbW,
		simple:      rng.Intn(3) == 0,
		filterLevel: rng.Intn(64),
		sharpness:   rng.Intn(8),
		partitions:  rng.Intn(4),
		baseQ:       rng.Intn(8),
	}
	if rng.Intn(2) == 0 {
		f.baseQ = rng.Intn(128)
	}
	for i := range f.quantDelta {
		if rng.Intn(2) == 0 {
			f.quantDelta[i] = rng.Intn(31) - 15
		}
	}
	if rng.Intn(2) == 0 {
		f.lfDelta = &testFilterDeltas{}
		for i := 0; i < 4; i++ {
			f.lfDelta.ref[i] = rng.Intn(63) - 31
			f.lfDelta.mode[i] = rng.Intn(63) - 31
		}
	}
	maxQ := f.baseQ
	if rng.Intn(2) == 0 {
		seg := &testSegmentation{updateMap: true, updateData: true, absDelta: rng.Intn(2) == 0}
		for s := 0; s < numSegments; s++ {
			q, level := rng.Intn(128), rng.Intn(64)
			maxQ = max(maxQ, q)
			if seg.absDelta {
				seg.quant[s], seg.level[s] = q, level
			} else {
				seg.quant[s], seg.level[s] = q-f.baseQ, level-f.filterLevel
			}
		}
		for i := range seg.probs {
			seg.probs[i] = rng.Intn(256)
		}
		f.seg = seg
	}

	limit := maxLevel(maxQ + 15)
	yModes := []int{modeDC, modeV, modeH, modeTM, modeBPred}
	for i := 0; i < mbW*mbH; i++ {
		mb := testMB{yMode: yModes[rng.Intn(len(yModes))], uvMode: rng.Intn(4)}
		if mb.yMode == modeBPred && i%mbW == mbW-1 {
			mb.yMode = modeTM
		}
		if mb.yMode == modeBPred {
			for j := range mb.bModes {
				mb.bModes[j] = rng.Intn(numBModes)
			}
		}
		if f.seg != nil {
			mb.segment = rng.Intn(numSegments)
		}
		if rng.Intn(4) != 0 {
			mb.levels = randomLevels(rng, mb.yMode != modeBPred, limit)
		}
		f.mbs = append(f.mbs, mb)
	}
	return f
}

func TestRandomKeyFramesMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 150; i++ {
		f := randomKeyFrame(rng)
		data := f.encode()
		out, _, err := NewDecoder(Config{Threads: 2}).Decode(data)
		require.NoError(t, err, "frame %d", i)
		requireReferenceMatch(t, data, out)
	}
}

func TestTokenCategoriesMatchReference(t *testing.T) {
	var bpred, dc [25][16]int
	// One level per category boundary, both signs, spread over the
	// luma, chroma and Y2 blocks of two macroblocks.
	values := []int{1, -2, 3, -4, 5, -6, 7, -10, 11, -18, 19, -34, 35, -66, 67, -255}
	for i, v := range values {
		bpred[i%16][i] = v
		bpred[16+i%8][15-i] = -v
		if i > 0 {
			dc[i%16][i] = v
		}
		dc[24][i] = v
	}
	f := &testFrame{key: true, width: 32, height: 16, mbW: 2, mbs: []testMB{
		{yMode: modeBPred, levels: &bpred},
		{yMode: modeTM, uvMode: modeV, levels: &dc},
	}}
	for j := range f.mbs[0].bModes {
		f.mbs[0].bModes[j] = j % numBModes
	}
	for _, level := range []int{0, 20} {
		f.filterLevel = level
		data := f.encode()
		out := decodeOne(t, NewDecoder(Config{}), data)
		requireReferenceMatch(t, data, out)
	}
}

func TestFlatKeyFrameIsUniform(t *testing.T) {
	for _, tc := range []struct {
		dc         int
		luma, chro byte
	}{
		{dc: 0, luma: 128, chro: 128},
		{dc: 4, luma: 129, chro: 128},
		{dc: -4, luma: 128, chro: 128},
		{dc: -5, luma: 127, chro: 128},
	} {
		f := &testFrame{key: true, width: 16, height: 16, mbW: 1, mbs: []testMB{{yMode: modeDC, uvMode: modeDC, dc: tc.dc}}}
		out := decodeOne(t, NewDecoder(Config{}), f.encode())
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				require.Equal(t, tc.luma, out.Y[y*out.YStride+x], "dc %d pixel (%d,%d)", tc.dc, x, y)
			}
		}
		for i := 0; i < 64; i++ {
			y, x := i/8, i%8
			require.Equal(t, tc.chro, out.U[y*out.UVStride+x])
			require.Equal(t, tc.chro, out.V[y*out.UVStride+x])
		}
	}
}

func TestDecodingTwiceIsIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	key := randomKeyFrame(rng)
	key.filterLevel = 24
	stream := [][]byte{key.encode()}
	inter := zeroMVFrame(key.mbW, len(key.mbs)/key.mbW)
	inter.filterLevel = 12
	stream = append(stream, inter.encode())

	decodeAll := func() []*frame.Buffer {
		d := NewDecoder(Config{Threads: 3})
		var outs []*frame.Buffer
		for _, data := range stream {
			outs = append(outs, decodeOne(t, d, data))
		}
		return outs
	}
	first, second := decodeAll(), decodeAll()
	for i := range first {
		requireSamePlanes(t, first[i], second[i])
	}
}

func TestZeroFilterLevelDisablesFiltering(t *testing.T) {
	f := keyFrame(48, 32)
	want := decodeOne(t, NewDecoder(Config{}), f.encode())

	// Segment and delta levels do not matter once the frame level is zero.
	f.lfDelta = &testFilterDeltas{ref: [4]int{30, 0, 0, 0}, mode: [4]int{20, 0, 0, 0}}
	f.seg = &testSegmentation{updateData: true, absDelta: true, level: [numSegments]int{40, 40, 40, 40}}
	f.seg.quant = [numSegments]int{f.baseQ, f.baseQ, f.baseQ, f.baseQ}
	got := decodeOne(t, NewDecoder(Config{}), f.encode())
	requireSamePlanes(t, want, got)

	f.filterLevel = 1
	filtered := decodeOne(t, NewDecoder(Config{}), f.encode())
	assert.NotEqual(t, want.Y, filtered.Y)
}

func TestSegmentQuantizerClampsBeforeDeltas(t *testing.T) {
	seg := segmentation{Enabled: true, Quant: [numSegments]int8{-20, 100, 0, 0}}
	q := quantParams{BaseQ: 60, Y1DC: 5, UVAC: -5}
	var dqm [numSegments]quantMatrix
	buildQuant(&q, &seg, &dqm)

	// 60-20 = 40
	assert.Equal(t, int(dcQLookup[45]), dqm[0].Y1[0])
	// 160 clamps to 127 before the deltas: 127+5 and 127-5.
	assert.Equal(t, int(dcQLookup[127]), dqm[1].Y1[0])
	assert.Equal(t, int(acQLookup[122]), dqm[1].UV[1])
	assert.Equal(t, int(acQLookup[127]), dqm[1].Y1[1])

	seg.AbsDelta = true
	seg.Quant = [numSegments]int8{-10, 3, 0, 0}
	buildQuant(&q, &seg, &dqm)
	// -10 clamps to 0: 0+5.
	assert.Equal(t, int(dcQLookup[5]), dqm[0].Y1[0])
	assert.Equal(t, int(acQLookup[0]), dqm[0].UV[1])
	assert.Equal(t, int(dcQLookup[8]), dqm[1].Y1[0])
	assert.Equal(t, 8, dqm[0].Y2[1])
}

func TestSegmentFilterLevelClampsBeforeDeltas(t *testing.T) {
	d := NewDecoder(Config{})
	d.state.Seg = segmentation{Enabled: true, FilterLvl: [numSegments]int8{-40, 40, 0, 5}}
	d.state.Filter = filterParams{Level: 30, DeltaEnabled: true}
	d.state.Filter.RefDelta[refIntra] = -5
	d.state.Filter.RefDelta[refLast] = 12
	d.state.Filter.ModeDelta[lfModeBPred] = 3

	lvl := d.filterLevels()
	// 30-40 clamps to 0 before the reference delta.
	assert.Equal(t, uint8(0), lvl[0][refIntra][lfModeZero])
	assert.Equal(t, uint8(12), lvl[0][refLast][lfModeZero])
	// 70 clamps to 63 before the deltas.
	assert.Equal(t, uint8(58), lvl[1][refIntra][lfModeZero])
	assert.Equal(t, uint8(61), lvl[1][refIntra][lfModeBPred])
	assert.Equal(t, uint8(25), lvl[2][refIntra][lfModeZero])
	assert.Equal(t, uint8(47), lvl[3][refLast][lfModeZero])
}

func TestDecodeReportsParsedHeader(t *testing.T) {
	d := NewDecoder(Config{})
	_, hdr, err := d.Decode([]byte{0x00})
	require.Error(t, err)
	assert.Nil(t, hdr)

	_, hdr, err = d.Decode(zeroMVFrame(1, 1).encode())
	assert.True(t, errors.Is(err, vpxerr.ErrMissingKeyFrame))
	require.NotNil(t, hdr)
	assert.False(t, hdr.KeyFrame)
}
