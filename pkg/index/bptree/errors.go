package bptree

import "github.com/cockroachdb/errors"

// ErrEmpty is returned by FirstKey/LastKey on a tree with no entries (spec
// §7 Empty).
var ErrEmpty = errors.New("bptree: tree is empty")

// ErrInconsistentRange is returned by SubMap when from > to (spec §7
// InconsistentRange).
var ErrInconsistentRange = errors.New("bptree: inconsistent range, from > to")

// ErrKeyOutOfRange is returned when a SubMap refinement would broaden its
// parent view (spec §7 KeyOutOfRange).
var ErrKeyOutOfRange = errors.New("bptree: refinement would broaden parent view")
