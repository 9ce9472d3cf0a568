// Package table implements the relational table façade of spec §4.F: a
// schema, an append-only tuple sequence, a pluggable primary-key index
// (bptree or exthash behind the narrow Index interface), and the
// relational-algebra operators project/select/union/minus/join/insert.
package table

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"tuplebase/internal/logging"
	"tuplebase/pkg/eval"
	"tuplebase/pkg/types"
)

// Table owns a schema, an append-only tuple sequence, and a primary-key
// index mapping each key's packed bytes to the position of its tuple in
// the sequence.
type Table struct {
	schema *Schema
	tuples [][]types.Value
	index  Index
	logger *slog.Logger
}

// Option configures a Table at construction.
type Option func(*Table)

// WithLogger overrides the package default logger, mirroring bptree's
// WithLogger (used by tests to capture diagnostic output).
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// New constructs an empty Table over schema, backed by index.
func New(schema *Schema, index Index, opts ...Option) *Table {
	t := &Table{schema: schema, index: index}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) logf(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Info(msg, args...)
		return
	}
	logging.Get().Info(msg, args...)
}

// Schema returns the table's schema.
func (t *Table) Schema() *Schema { return t.schema }

// NumTuples returns the length of the tuple sequence, including any rows
// whose key has since been overwritten by a later insert (spec's
// Non-goals exclude deletion/update of index entries, so superseded rows
// are never compacted out of the sequence).
func (t *Table) NumTuples() int { return len(t.tuples) }

// Insert appends tuple to the sequence and registers its primary key in
// the index, failing-with DomainMismatch if any positional value's domain
// does not match the schema (a check Table.java's Comparable[]-typed
// tuples get for free from Java's static typing, and that this Go port
// must perform explicitly since a tuple here is an any-typed Value slice).
func (t *Table) Insert(tuple []types.Value) error {
	if len(tuple) != t.schema.NumAttrs() {
		return errors.Wrapf(types.ErrDomainMismatch,
			"tuple has %d values, schema has %d columns", len(tuple), t.schema.NumAttrs())
	}
	for i, v := range tuple {
		if v.Domain() != t.schema.DomainAt(i) {
			return errors.Wrapf(types.ErrDomainMismatch,
				"column %d: schema wants %s, tuple has %s", i, t.schema.DomainAt(i), v.Domain())
		}
	}

	key, err := EncodeKey(t.schema, tuple)
	if err != nil {
		return err
	}

	pos := len(t.tuples)
	t.tuples = append(t.tuples, tuple)

	if _, exists := t.index.Get(key); exists {
		t.logf("tuplebase: table insert overwrites existing primary key")
	}
	t.index.Put(key, pos)
	return nil
}

// Get returns the tuple currently registered under key, if any.
func (t *Table) Get(key Key) ([]types.Value, bool) {
	pos, ok := t.index.Get(key)
	if !ok {
		return nil, false
	}
	return t.tuples[pos], true
}

// GetByValues projects values onto the primary key columns (in schema
// order, not primary-key order) and looks the result up.
func (t *Table) GetByValues(values []types.Value) ([]types.Value, bool, error) {
	key, err := EncodeKey(t.schema, values)
	if err != nil {
		return nil, false, err
	}
	tup, ok := t.Get(key)
	return tup, ok, nil
}

// Entries materializes every tuple currently reachable through the
// index — one per live key, not one per row ever appended (spec §5: a
// materialized set, not a live view, and invalidated by any later
// mutation).
func (t *Table) Entries() [][]types.Value {
	idxEntries := t.index.Entries()
	out := make([][]types.Value, 0, len(idxEntries))
	for _, e := range idxEntries {
		out = append(out, t.tuples[e.Pos])
	}
	return out
}

// Select returns every entry for which the infix condition evaluates to
// true, via the eval package's tokenize → postfix → evaluate pipeline
// (spec §4.E, §4.F).
func (t *Table) Select(condition string) ([][]types.Value, error) {
	postfix := eval.InfixToPostfix(eval.Tokenize(condition))

	var out [][]types.Value
	for _, tup := range t.Entries() {
		ok, err := eval.Evaluate(postfix, t.schema, tup)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, tup)
		}
	}
	return out, nil
}
