package bitio

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepteams/vpx/internal/vpxerr"
)

func TestBitReader_Fields(t *testing.T) {
	// 1000 0010 | 0100 1001 | 1111 0000
	r := NewBitReader([]byte{0x82, 0x49, 0xf0})

	v, err := r.ReadBits(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	f, err := r.ReadFlag()
	require.NoError(t, err)
	assert.False(t, f)

	v, err = r.ReadBits(13)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0249), v)
	assert.Equal(t, 16, r.Position())

	s, err := r.ReadSigned(3)
	require.NoError(t, err)
	assert.Equal(t, int32(-7), s)
	assert.Equal(t, 20, r.Position())

	pad, err := r.ByteAlign()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), pad)
	assert.Equal(t, 24, r.Position())
	assert.Equal(t, 0, r.Remaining())
}

func TestBitReader_Truncated(t *testing.T) {
	r := NewBitReader([]byte{0xff})
	_, err := r.ReadBits(4)
	require.NoError(t, err)

	_, err = r.ReadBits(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpxerr.ErrTruncatedStream))
	assert.Equal(t, 4, r.Position(), "failed read must not advance")

	_, err = r.ReadSigned(4)
	assert.True(t, errors.Is(err, vpxerr.ErrTruncatedStream))
	assert.True(t, errors.Is(r.Skip(5), vpxerr.ErrTruncatedStream))

	v, err := r.ReadBits(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xf), v)
	_, err = r.ReadFlag()
	assert.True(t, errors.Is(err, vpxerr.ErrTruncatedStream))
}
