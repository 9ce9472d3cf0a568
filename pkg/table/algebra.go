package table

import (
	"github.com/cockroachdb/errors"

	"tuplebase/pkg/types"
)

// IndexFactory builds a fresh Index for a derived table, letting every
// algebra operator stay agnostic to which index kind backs its result.
type IndexFactory func() Index

// Project keeps only the named attributes of every tuple, in the order
// given. If every primary-key column of the source schema survives the
// projection, the derived table keeps that key; if only some of them
// survive, its key is recomputed from the full projected column list; if
// none survive, Project fails-with ErrNoUsableKey (spec's supplemented
// feature over Table.java's project, which never checks this and accepts an
// unusable key silently).
func (t *Table) Project(attrNames []string, newIndex IndexFactory) (*Table, error) {
	positions := make([]int, len(attrNames))
	cols := make([]Column, len(attrNames))
	for i, name := range attrNames {
		pos, ok := t.schema.AttrIndex(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownAttribute, "%q", name)
		}
		positions[i] = pos
		cols[i] = t.schema.columns[pos]
	}

	newKeyNames := projectedKeyNames(t.schema, positions, attrNames)
	if newKeyNames == nil {
		return nil, errors.Wrapf(ErrNoUsableKey, "projection %v", attrNames)
	}

	newSchema, err := NewSchema(cols, newKeyNames)
	if err != nil {
		return nil, err
	}

	result := New(newSchema, newIndex())
	for _, tup := range t.Entries() {
		projected := make([]types.Value, len(positions))
		for i, pos := range positions {
			projected[i] = tup[pos]
		}
		if err := result.Insert(projected); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// projectedKeyNames decides the derived schema's primary key: the
// original key if every one of its columns survived the projection
// (preserving original key order), else the full projected attribute list
// if at least one key column survived, else nil.
func projectedKeyNames(schema *Schema, positions []int, attrNames []string) []string {
	contains := func(pos int) bool {
		for _, p := range positions {
			if p == pos {
				return true
			}
		}
		return false
	}

	keysPresent, anyPresent := true, false
	for _, pkPos := range schema.primaryKey {
		if contains(pkPos) {
			anyPresent = true
		} else {
			keysPresent = false
		}
	}
	if !anyPresent {
		return nil
	}
	if keysPresent {
		names := make([]string, len(schema.primaryKey))
		for i, pos := range schema.primaryKey {
			names[i] = schema.columns[pos].Name
		}
		return names
	}
	return attrNames
}

// Union returns the tuple-set union of t and other, deduplicating by
// full-tuple equality. The two tables must be union-compatible: same
// column count and domains, by position.
func (t *Table) Union(other *Table, newIndex IndexFactory) (*Table, error) {
	if err := checkCompatible(t.schema, other.schema); err != nil {
		return nil, err
	}

	result := New(t.schema, newIndex())
	seen := t.Entries()
	for _, tup := range seen {
		if err := result.Insert(tup); err != nil {
			return nil, err
		}
	}
	for _, tup := range other.Entries() {
		if containsTuple(seen, tup) {
			continue
		}
		seen = append(seen, tup)
		if err := result.Insert(tup); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Minus returns the tuple-set difference t - other: every tuple of t that
// has no full-tuple-equal match in other. (Table.java's minus has a bug
// where the loop breaks out entirely on the first match instead of
// skipping only that tuple, so it only ever inspects tuples before the
// first one present in both tables; this implements the set-difference
// the method's own doc comment describes.)
func (t *Table) Minus(other *Table, newIndex IndexFactory) (*Table, error) {
	if err := checkCompatible(t.schema, other.schema); err != nil {
		return nil, err
	}

	otherTuples := other.Entries()
	result := New(t.schema, newIndex())
	for _, tup := range t.Entries() {
		if containsTuple(otherTuples, tup) {
			continue
		}
		if err := result.Insert(tup); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func containsTuple(haystack [][]types.Value, tup []types.Value) bool {
	for _, candidate := range haystack {
		if tupleEquals(candidate, tup) {
			return true
		}
	}
	return false
}

func tupleEquals(a, b []types.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func checkCompatible(a, b *Schema) error {
	if len(a.columns) != len(b.columns) {
		return errors.Wrapf(ErrSchemaMismatch, "%d columns vs %d", len(a.columns), len(b.columns))
	}
	for i := range a.columns {
		if a.columns[i].Domain != b.columns[i].Domain {
			return errors.Wrapf(ErrSchemaMismatch, "column %d: %s vs %s", i, a.columns[i].Domain, b.columns[i].Domain)
		}
	}
	return nil
}

// Join performs an equality nested-loop join of t (left) and other
// (right) on attr1 = attr2, grounded on Table.java's join. The result's
// schema is every column of t followed by every column of other, except
// the right join column is dropped unless its name differs from the left
// join column's; any remaining name collision in the right columns is
// disambiguated with an "s_" prefix, matching the source's convention for
// a second relation's attributes.
func (t *Table) Join(attr1 string, other *Table, attr2 string, newIndex IndexFactory) (*Table, error) {
	leftPos, ok := t.schema.AttrIndex(attr1)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAttribute, "%q", attr1)
	}
	rightPos, ok := other.schema.AttrIndex(attr2)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAttribute, "%q", attr2)
	}

	dropRightJoinColumn := attr1 == attr2
	cols := append([]Column(nil), t.schema.columns...)
	rightColAt := make([]int, 0, other.schema.NumAttrs())
	for i, col := range other.schema.columns {
		if dropRightJoinColumn && i == rightPos {
			continue
		}
		name := col.Name
		if _, collides := t.schema.AttrIndex(name); collides {
			name = "s_" + name
		}
		cols = append(cols, Column{Name: name, Domain: col.Domain})
		rightColAt = append(rightColAt, i)
	}

	resultSchema, err := NewSchema(cols, leftKeyNames(t.schema))
	if err != nil {
		return nil, err
	}
	result := New(resultSchema, newIndex())

	for _, leftTup := range t.Entries() {
		for _, rightTup := range other.Entries() {
			eq, err := leftTup[leftPos].Compare(types.Eq, rightTup[rightPos])
			if err != nil || !eq {
				continue
			}
			joined := make([]types.Value, 0, len(cols))
			joined = append(joined, leftTup...)
			for _, i := range rightColAt {
				joined = append(joined, rightTup[i])
			}
			if err := result.Insert(joined); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func leftKeyNames(schema *Schema) []string {
	names := make([]string, len(schema.primaryKey))
	for i, pos := range schema.primaryKey {
		names[i] = schema.columns[pos].Name
	}
	return names
}
