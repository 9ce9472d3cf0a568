package bptree

import "cmp"

// Ordered is the key constraint accepted by Tree: any of Go's built-in
// totally ordered types (spec §4.A, "keys support total order"). Using
// cmp.Ordered rather than a hand-rolled Compare-method interface keeps
// common key types (int, string, float64, ...) usable without wrapper
// boilerplate, at the cost of disallowing custom key types — acceptable
// here since every scenario in the spec keys on plain integers or strings.
type Ordered = cmp.Ordered
