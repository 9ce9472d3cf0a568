package exthash

import "github.com/cockroachdb/errors"

// ErrInvalidDirectorySize is returned by New when initSize is not a power
// of two ≥ 1 (spec §6.1: "ExtHash takes an initial directory size that is a
// power of two ≥ 1").
var ErrInvalidDirectorySize = errors.New("exthash: initial directory size must be a power of two >= 1")
