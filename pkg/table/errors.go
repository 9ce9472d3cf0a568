package table

import "github.com/cockroachdb/errors"

// ErrNoUsableKey is returned by Project when every primary-key column of
// the source table was dropped from the projection list, leaving no
// column to rebuild a key index from (spec's SPEC_FULL §4, supplemented
// feature beyond Table.java's plain project).
var ErrNoUsableKey = errors.New("tuplebase: projection drops every primary-key column")

// ErrUnknownAttribute is returned when an operator names a column that
// does not exist in the relevant schema.
var ErrUnknownAttribute = errors.New("tuplebase: unknown attribute")

// ErrSchemaMismatch is returned by union/minus when the two tables are not
// union-compatible (same column count and domains, by position).
var ErrSchemaMismatch = errors.New("tuplebase: schemas are not union-compatible")
