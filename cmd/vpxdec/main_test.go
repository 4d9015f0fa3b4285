package main

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepteams/vpx/internal/container"
	"github.com/deepteams/vpx/internal/vp8"
	"github.com/deepteams/vpx/internal/vp9"
)

const frameBytes = 40*24 + 2*20*12

func writeIVF(t *testing.T, fourcc uint32, frames ...[]byte) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := container.NewWriter(&buf, container.FileHeader{
		FourCC:     fourcc,
		Width:      40,
		Height:     24,
		FrameRate:  30,
		TimeScale:  1,
		FrameCount: uint32(len(frames)),
	})
	require.NoError(t, err)
	for i, f := range frames {
		require.NoError(t, w.WriteFrame(uint64(i), f))
	}
	path := filepath.Join(t.TempDir(), "in.ivf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func vp8Stream(t *testing.T) string {
	key := &vp8.SynthFrame{Key: true, Width: 40, Height: 24, BaseQ: 30, DC: []int{2, -1, 3, 0, 4, -4}}
	hidden := &vp8.SynthFrame{Hidden: true, Width: 40, Height: 24, BaseQ: 30, RefreshGolden: true}
	inter := &vp8.SynthFrame{Width: 40, Height: 24, BaseQ: 30, DC: []int{1}}
	return writeIVF(t, container.FourCCVP80, key.Encode(), hidden.Encode(), inter.Encode())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"vpxdec"}, args...))
	return stdout.String(), err
}

func TestProbeVP8(t *testing.T) {
	out, err := run(t, "probe", vp8Stream(t))
	require.NoError(t, err)
	assert.Contains(t, out, "codec: VP80  size: 40x24  rate: 30/1  frames: 3\n")
	assert.Contains(t, out, "key 40x24, version 0, shown\n")
	assert.Contains(t, out, "frame 1: pts 1, ")
	assert.Contains(t, out, "inter, version 0, hidden\n")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestProbeVP9(t *testing.T) {
	path := writeIVF(t, container.FourCCVP90, vp9.BuildSuperframe([][]byte{{0x88}, {0x8a}}))
	out, err := run(t, "probe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "superframe of 2\n")
	assert.Contains(t, out, "  [0] 1 bytes, profile 0, show existing 0\n")
	assert.Contains(t, out, "  [1] 1 bytes, profile 0, show existing 2\n")
}

func TestDecodeI420WithMD5(t *testing.T) {
	in := vp8Stream(t)
	outPath := filepath.Join(t.TempDir(), "out.yuv")
	out, err := run(t, "decode", "--md5", "-o", outPath, in)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Len(t, data, 2*frameBytes)
	sum := md5.Sum(data)
	assert.Equal(t, hex.EncodeToString(sum[:])+"\n", out)
}

func TestDecodeY4M(t *testing.T) {
	in := vp8Stream(t)
	outPath := filepath.Join(t.TempDir(), "out.y4m")
	_, err := run(t, "decode", "--threads", "2", "--strict", "-o", outPath, in)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	header := "YUV4MPEG2 W40 H24 F30:1 Ip A0:0 C420jpeg\n"
	require.True(t, bytes.HasPrefix(data, []byte(header)))
	assert.Len(t, data, len(header)+2*(len("FRAME\n")+frameBytes))
}

func TestDecodeFrameLimitToStdout(t *testing.T) {
	out, err := run(t, "decode", "--frames", "1", "-o", "-", vp8Stream(t))
	require.NoError(t, err)
	assert.Len(t, out, frameBytes)
}

func TestDecodeErrors(t *testing.T) {
	_, err := run(t, "decode")
	assert.ErrorContains(t, err, "missing input file")

	_, err = run(t, "decode", "--md5", "--format", "rgb", vp8Stream(t))
	assert.ErrorContains(t, err, "unknown format")

	vp9Path := writeIVF(t, container.FourCCVP90, []byte{0x88})
	_, err = run(t, "decode", "--md5", vp9Path)
	assert.ErrorContains(t, err, "1 frames dropped")

	bad := writeIVF(t, container.FourCC('A', 'V', '0', '1'), []byte{0})
	_, err = run(t, "probe", bad)
	assert.ErrorContains(t, err, "unknown codec")
}

func TestRemuxSplitAndMerge(t *testing.T) {
	hidden := []byte{0x84, 0xaa, 0xbb}
	shown := []byte{0x86, 0xcc}
	in := writeIVF(t, container.FourCCVP90, vp9.BuildSuperframe([][]byte{hidden, shown}), []byte{0x88})

	dir := t.TempDir()
	splitPath := filepath.Join(dir, "split.ivf")
	_, err := run(t, "remux", "--split-superframes", "-o", splitPath, in)
	require.NoError(t, err)
	out, err := run(t, "probe", splitPath)
	require.NoError(t, err)
	assert.Contains(t, out, "frames: 3\n")
	assert.NotContains(t, out, "superframe")
	assert.Contains(t, out, "frame 0: pts 0, 3 bytes\n  [0] 3 bytes, profile 0, inter, hidden\n")
	assert.Contains(t, out, "frame 1: pts 0, 2 bytes\n  [0] 2 bytes, profile 0, inter, shown\n")
	assert.Contains(t, out, "frame 2: pts 1, 1 bytes\n")

	mergedPath := filepath.Join(dir, "merged.ivf")
	_, err = run(t, "remux", "--merge-superframes", "-o", mergedPath, splitPath)
	require.NoError(t, err)
	out, err = run(t, "probe", mergedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "frames: 2\n")
	assert.Contains(t, out, "frame 0: pts 0, 9 bytes, superframe of 2\n")

	original, err := os.ReadFile(in)
	require.NoError(t, err)
	merged, err := os.ReadFile(mergedPath)
	require.NoError(t, err)
	assert.Equal(t, original, merged)
}

func TestRemuxErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.ivf")
	_, err := run(t, "remux", "-o", out, vp8Stream(t))
	assert.ErrorContains(t, err, "exactly one of")

	_, err = run(t, "remux", "--split-superframes", "-o", out, vp8Stream(t))
	assert.ErrorContains(t, err, "input is VP8")
}
