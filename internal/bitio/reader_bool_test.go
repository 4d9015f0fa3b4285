package bitio

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolReader_RoundTripUniform(t *testing.T) {
	const numBits = 500
	rng := rand.New(rand.NewSource(42))
	expected := make([]int, numBits)

	bw := NewBoolWriter(256)
	for i := range expected {
		expected[i] = rng.Intn(2)
		bw.PutBitUniform(expected[i])
	}
	br := NewBoolReader(bw.Finish())
	for i, want := range expected {
		require.Equal(t, want, br.GetBit(0x80), "bit %d", i)
	}
	assert.False(t, br.EOF())
}

func TestBoolReader_RoundTripVariedProb(t *testing.T) {
	type entry struct {
		bit  int
		prob int
	}
	rng := rand.New(rand.NewSource(99))
	entries := make([]entry, 2000)

	bw := NewBoolWriter(0)
	for i := range entries {
		entries[i] = entry{bit: rng.Intn(2), prob: rng.Intn(255) + 1}
		bw.PutBit(entries[i].bit, entries[i].prob)
	}
	br := NewBoolReader(bw.Finish())
	for i, e := range entries {
		require.Equal(t, e.bit, br.GetBit(uint8(e.prob)), "symbol %d (prob %d)", i, e.prob)
	}
}

func TestBoolReader_Literals(t *testing.T) {
	bw := NewBoolWriter(0)
	bw.PutBits(0x5a, 8)
	bw.PutBits(3, 2)
	bw.PutSignedBits(-9, 4)
	bw.PutSignedBits(0, 4)
	bw.PutSignedBits(6, 4)
	bw.PutBits(11, 4)
	bw.PutBitUniform(1)

	br := NewBoolReader(bw.Finish())
	assert.Equal(t, uint32(0x5a), br.GetValue(8))
	assert.Equal(t, uint32(3), br.GetValue(2))
	assert.Equal(t, int32(-9), br.GetOptionalSigned(4))
	assert.Equal(t, int32(0), br.GetOptionalSigned(4))
	assert.Equal(t, int32(6), br.GetOptionalSigned(4))
	assert.Equal(t, int32(-11), br.GetSignedValue(4))
}

func TestBoolReader_GetSigned(t *testing.T) {
	bw := NewBoolWriter(0)
	signs := []int{0, 1, 1, 0, 1}
	for _, s := range signs {
		bw.PutBitUniform(s)
	}
	br := NewBoolReader(bw.Finish())
	for _, s := range signs {
		want := 7
		if s == 1 {
			want = -7
		}
		assert.Equal(t, want, br.GetSigned(7))
	}
}

func TestBoolReader_EOF(t *testing.T) {
	br := NewBoolReader([]byte{0x00})
	for i := 0; i < 64; i++ {
		assert.Equal(t, 0, br.GetBit(0x80))
	}
	assert.True(t, br.EOF())

	br.Init(nil)
	assert.Equal(t, 0, br.GetBit(200))
	assert.True(t, br.EOF())
}

func TestBoolReader_Overread(t *testing.T) {
	bw := NewBoolWriter(16)
	for i := 0; i < 40; i++ {
		bw.PutBit(i&1, 90)
	}
	br := NewBoolReader(bw.Finish())
	for i := 0; i < 40; i++ {
		require.Equal(t, i&1, br.GetBit(90))
	}
	assert.False(t, br.Overread())

	for i := 0; i < 200; i++ {
		br.GetBit(0x80)
	}
	assert.True(t, br.Overread())
	assert.True(t, br.EOF())

	br.Init(nil)
	br.GetBit(0x80)
	assert.True(t, br.Overread())
}
