package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixed32RoundTrip(t *testing.T) {
	buf := appendFixed32(nil, 0xDEADBEEF)
	require.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf)
	v, err := decodeFixed32(buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), v)
}

func TestFixed64RoundTrip(t *testing.T) {
	buf := appendFixed64(nil, 0x0102030405060708)
	v, err := decodeFixed64(buf, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), v)
}

func TestFixed32Truncated(t *testing.T) {
	_, err := decodeFixed32([]byte{1, 2}, 0)
	require.ErrorIs(t, err, ErrEndOfBuffer)
}

func TestFixed64Truncated(t *testing.T) {
	_, err := decodeFixed64([]byte{1, 2, 3}, 0)
	require.ErrorIs(t, err, ErrEndOfBuffer)
}

func TestFloatBitPatternRoundTrip(t *testing.T) {
	for _, f := range []float32{0, 1, -1, 3.14159, math.MaxFloat32, -math.MaxFloat32} {
		bits := float32ToBits(f)
		require.Equal(t, f, bitsToFloat32(bits))
	}
}

func TestDoubleBitPatternRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 2.71828182845904523536, math.MaxFloat64} {
		bits := float64ToBits(f)
		require.Equal(t, f, bitsToFloat64(bits))
	}
}
