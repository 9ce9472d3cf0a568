package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuplebase/pkg/types"
)

func roundTrip(t *testing.T, d types.Domain, raw any) types.Value {
	t.Helper()
	v, err := types.NewValue(d, raw)
	require.NoError(t, err)

	buf, err := Pack(v)
	require.NoError(t, err)
	require.Len(t, buf, d.Width())

	got, err := Unpack(d, buf)
	require.NoError(t, err)
	return got
}

func TestCodec_IntegerRoundTrip(t *testing.T) {
	assert.Equal(t, int8(-12), roundTrip(t, types.Int8, int8(-12)).Raw())
	assert.Equal(t, int16(-4000), roundTrip(t, types.Int16, int16(-4000)).Raw())
	assert.Equal(t, int32(123456), roundTrip(t, types.Int32, int32(123456)).Raw())
	assert.Equal(t, int64(-987654321), roundTrip(t, types.Int64, int64(-987654321)).Raw())
}

func TestCodec_FloatRoundTrip(t *testing.T) {
	assert.Equal(t, float32(3.5), roundTrip(t, types.Float32, float32(3.5)).Raw())
	assert.Equal(t, float64(-2.25), roundTrip(t, types.Float64, float64(-2.25)).Raw())
}

func TestCodec_CharRoundTrip(t *testing.T) {
	assert.Equal(t, 'Q', roundTrip(t, types.Char, 'Q').Raw())
}

func TestCodec_StringRoundTripStripsNULPadding(t *testing.T) {
	assert.Equal(t, "Star_Wars", roundTrip(t, types.String, "Star_Wars").Raw())
}

func TestCodec_IntegerPacksBigEndian(t *testing.T) {
	v, err := types.NewValue(types.Int32, int32(1))
	require.NoError(t, err)
	buf, err := Pack(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, buf)
}

func TestCodec_FloatPacksLittleEndian(t *testing.T) {
	// IEEE-754 bits of 1.0f are 0x3F800000; little-endian byte order puts
	// the low byte (0x00) first.
	v, err := types.NewValue(types.Float32, float32(1.0))
	require.NoError(t, err)
	buf, err := Pack(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf)
}

func TestCodec_UnpackShortBufferFails(t *testing.T) {
	_, err := Unpack(types.Int64, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestCodec_StringTooLongFails(t *testing.T) {
	long := make([]byte, types.StringWidth+1)
	for i := range long {
		long[i] = 'x'
	}
	v, err := types.NewValue(types.String, string(long))
	require.NoError(t, err)
	_, err = Pack(v)
	require.Error(t, err)
}
