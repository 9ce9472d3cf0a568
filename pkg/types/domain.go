// Package types defines the closed set of attribute domains a tuplebase
// schema can declare and the typed values that populate tuples built from
// those domains.
package types

import "fmt"

// Domain is one of the fixed attribute domain tags a schema column may
// declare. The enumeration is closed: signed integers of four widths, two
// IEEE-754 float widths, a single Unicode code unit, and a fixed-length
// string.
type Domain int

const (
	Int8 Domain = iota
	Int16
	Int32
	Int64
	Float32
	Float64
	Char
	String
)

// StringWidth is the fixed on-wire size of the String domain: 64 bytes,
// NUL-padded.
const StringWidth = 64

// Class groups domains that share comparison and parsing behavior.
type Class int

const (
	ClassInteger Class = iota
	ClassReal
	ClassChar
	ClassString
)

func (d Domain) String() string {
	switch d {
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Char:
		return "char"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Width returns the fixed byte width this domain occupies on the wire (spec
// §4.A): i8=1, i16=2, i32=4, i64=8, f32=4, f64=8, char=1, string=64.
func (d Domain) Width() int {
	switch d {
	case Int8, Char:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case String:
		return StringWidth
	default:
		return 0
	}
}

// Class reports which comparison/parsing family this domain belongs to.
func (d Domain) Class() Class {
	switch d {
	case Int8, Int16, Int32, Int64:
		return ClassInteger
	case Float32, Float64:
		return ClassReal
	case Char:
		return ClassChar
	case String:
		return ClassString
	default:
		return ClassString
	}
}

// Valid reports whether d is one of the closed set of domain tags.
func (d Domain) Valid() bool {
	return d >= Int8 && d <= String
}
