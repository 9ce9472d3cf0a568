package types

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// Parse converts a literal token (as produced by the infix tokenizer: a bare
// numeric, a single-quote-stripped string, or a one-rune string for Char)
// into a Value of domain d. It fails-with ErrIllFormedPredicate if the token
// cannot be parsed as d.
func Parse(d Domain, token string) (Value, error) {
	switch d {
	case Int8:
		n, err := strconv.ParseInt(token, 10, 8)
		if err != nil {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse i8 %q: %s", token, err)
		}
		return NewValue(d, int8(n))
	case Int16:
		n, err := strconv.ParseInt(token, 10, 16)
		if err != nil {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse i16 %q: %s", token, err)
		}
		return NewValue(d, int16(n))
	case Int32:
		n, err := strconv.ParseInt(token, 10, 32)
		if err != nil {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse i32 %q: %s", token, err)
		}
		return NewValue(d, int32(n))
	case Int64:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse i64 %q: %s", token, err)
		}
		return NewValue(d, n)
	case Float32:
		n, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse f32 %q: %s", token, err)
		}
		return NewValue(d, float32(n))
	case Float64:
		n, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse f64 %q: %s", token, err)
		}
		return NewValue(d, n)
	case Char:
		runes := []rune(token)
		if len(runes) != 1 {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "parse char %q: want exactly one rune", token)
		}
		return NewValue(d, runes[0])
	case String:
		if len(token) > StringWidth {
			return Value{}, errors.Wrapf(ErrIllFormedPredicate, "string %q exceeds %d bytes", token, StringWidth)
		}
		return NewValue(d, token)
	default:
		return Value{}, errors.Wrapf(ErrIllFormedPredicate, "unknown domain %s", d)
	}
}
