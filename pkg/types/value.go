package types

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// CompareOp is one of the six comparison operators the evaluator and the
// relational-algebra join/select operators use to compare two Values of the
// same domain (spec §3.4).
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Value is a domain-tagged scalar. It is the runtime representation of a
// single position in a Tuple (spec §3.1).
type Value struct {
	domain Domain
	data   any
}

// Domain returns the domain tag this value was constructed against.
func (v Value) Domain() Domain { return v.domain }

// NewValue constructs a Value for domain d from a native Go value,
// failing-with ErrDomainMismatch if raw's dynamic type does not match the
// Go representation d requires.
func NewValue(d Domain, raw any) (Value, error) {
	if !d.Valid() {
		return Value{}, errors.Newf("tuplebase: unknown domain tag %d", int(d))
	}
	if err := checkDomainType(d, raw); err != nil {
		return Value{}, err
	}
	return Value{domain: d, data: raw}, nil
}

// checkDomainType verifies raw carries the Go type NewValue expects for d.
func checkDomainType(d Domain, raw any) error {
	ok := false
	switch d {
	case Int8:
		_, ok = raw.(int8)
	case Int16:
		_, ok = raw.(int16)
	case Int32:
		_, ok = raw.(int32)
	case Int64:
		_, ok = raw.(int64)
	case Float32:
		_, ok = raw.(float32)
	case Float64:
		_, ok = raw.(float64)
	case Char:
		_, ok = raw.(rune)
	case String:
		_, ok = raw.(string)
	}
	if !ok {
		return errors.Wrapf(ErrDomainMismatch, "domain %s cannot hold %T", d, raw)
	}
	return nil
}

// Raw returns the underlying Go value.
func (v Value) Raw() any { return v.data }

func (v Value) String() string {
	switch v.domain {
	case Char:
		return string(v.data.(rune))
	default:
		return fmt.Sprintf("%v", v.data)
	}
}

// Equals reports natural equality within v's domain; values from different
// domains are never equal.
func (v Value) Equals(other Value) bool {
	if v.domain != other.domain {
		return false
	}
	eq, err := v.Compare(Eq, other)
	return err == nil && eq
}

// Compare evaluates op between v and other. Comparison is only defined
// within a single domain; mismatched domains fail-with ErrIllFormedPredicate
// (spec §4.E, "cross-domain comparison is undefined").
func (v Value) Compare(op CompareOp, other Value) (bool, error) {
	if v.domain != other.domain {
		return false, errors.Wrapf(ErrIllFormedPredicate,
			"cannot compare domain %s against %s", v.domain, other.domain)
	}

	switch v.domain {
	case Int8:
		return compareOrdered(v.data.(int8), other.data.(int8), op), nil
	case Int16:
		return compareOrdered(v.data.(int16), other.data.(int16), op), nil
	case Int32:
		return compareOrdered(v.data.(int32), other.data.(int32), op), nil
	case Int64:
		return compareOrdered(v.data.(int64), other.data.(int64), op), nil
	case Float32:
		return compareOrdered(v.data.(float32), other.data.(float32), op), nil
	case Float64:
		return compareOrdered(v.data.(float64), other.data.(float64), op), nil
	case Char:
		return compareOrdered(v.data.(rune), other.data.(rune), op), nil
	case String:
		return compareOrdered(v.data.(string), other.data.(string), op), nil
	default:
		return false, errors.Wrapf(ErrIllFormedPredicate, "unknown domain %s", v.domain)
	}
}

type ordered interface {
	int8 | int16 | int32 | int64 | float32 | float64 | string
}

func compareOrdered[T ordered](a, b T, op CompareOp) bool {
	switch op {
	case Eq:
		return a == b
	case Ne:
		return a != b
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	default:
		return false
	}
}
