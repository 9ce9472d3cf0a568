// Package codec converts typed scalar values to and from the fixed-width
// byte layout a record store would persist them in (spec §6.2). Integers
// pack big-endian; floats pack their IEEE-754 bit pattern little-endian;
// char is a single byte; string is NUL-padded to a fixed width. The
// asymmetry between integer and float byte order is deliberate and load
// bearing for round-trip tests — it is not a bug to "fix."
package codec

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"

	"tuplebase/pkg/types"
)

// ErrShortBuffer is returned by Unpack when buf is smaller than the
// domain's fixed width.
var ErrShortBuffer = errors.New("codec: buffer shorter than domain width")

// Pack encodes v into its fixed-width byte representation.
func Pack(v types.Value) ([]byte, error) {
	d := v.Domain()
	buf := make([]byte, d.Width())

	switch d {
	case types.Int8:
		buf[0] = byte(v.Raw().(int8))
	case types.Int16:
		binary.BigEndian.PutUint16(buf, uint16(v.Raw().(int16)))
	case types.Int32:
		binary.BigEndian.PutUint32(buf, uint32(v.Raw().(int32)))
	case types.Int64:
		binary.BigEndian.PutUint64(buf, uint64(v.Raw().(int64)))
	case types.Float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(v.Raw().(float32)))
	case types.Float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v.Raw().(float64)))
	case types.Char:
		buf[0] = byte(v.Raw().(rune))
	case types.String:
		s := v.Raw().(string)
		if len(s) > types.StringWidth {
			return nil, errors.Newf("codec: string %q exceeds %d bytes", s, types.StringWidth)
		}
		copy(buf, s) // remaining bytes are already zero (NUL) from make
	default:
		return nil, errors.Newf("codec: unknown domain %s", d)
	}
	return buf, nil
}

// Unpack decodes buf (at least d.Width() bytes) into a Value of domain d.
func Unpack(d types.Domain, buf []byte) (types.Value, error) {
	if len(buf) < d.Width() {
		return types.Value{}, errors.Wrapf(ErrShortBuffer, "domain %s wants %d bytes, got %d", d, d.Width(), len(buf))
	}

	switch d {
	case types.Int8:
		return types.NewValue(d, int8(buf[0]))
	case types.Int16:
		return types.NewValue(d, int16(binary.BigEndian.Uint16(buf)))
	case types.Int32:
		return types.NewValue(d, int32(binary.BigEndian.Uint32(buf)))
	case types.Int64:
		return types.NewValue(d, int64(binary.BigEndian.Uint64(buf)))
	case types.Float32:
		return types.NewValue(d, math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	case types.Float64:
		return types.NewValue(d, math.Float64frombits(binary.LittleEndian.Uint64(buf)))
	case types.Char:
		return types.NewValue(d, rune(buf[0]))
	case types.String:
		n := 0
		for n < types.StringWidth && n < len(buf) && buf[n] != 0 {
			n++
		}
		return types.NewValue(d, string(buf[:n]))
	default:
		return types.Value{}, errors.Newf("codec: unknown domain %s", d)
	}
}
