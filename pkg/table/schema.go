package table

import (
	"github.com/cockroachdb/errors"

	"tuplebase/pkg/types"
)

// Column is a single (name, domain) pair in a Schema (spec §3.1).
type Column struct {
	Name   string
	Domain types.Domain
}

// Schema is an ordered sequence of columns plus a non-empty ordered subset
// of column names designated as the primary key. Attribute names are
// unique within a schema and resolved case-insensitively, matching the
// infix predicate language's attribute tokens (spec §4.E, §9).
type Schema struct {
	columns     []Column
	nameToIndex map[string]int
	primaryKey  []int
}

// NewSchema builds a Schema from an ordered column list and the names of
// the columns making up the primary key, in primary-key order.
func NewSchema(columns []Column, primaryKey []string) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errors.New("tuplebase: schema must have at least one column")
	}
	if len(primaryKey) == 0 {
		return nil, errors.New("tuplebase: schema must declare a non-empty primary key")
	}

	nameToIndex := make(map[string]int, len(columns))
	for i, col := range columns {
		lower := foldName(col.Name)
		if _, dup := nameToIndex[lower]; dup {
			return nil, errors.Newf("tuplebase: duplicate attribute name %q", col.Name)
		}
		nameToIndex[lower] = i
	}

	pk := make([]int, 0, len(primaryKey))
	for _, name := range primaryKey {
		pos, ok := nameToIndex[foldName(name)]
		if !ok {
			return nil, errors.Newf("tuplebase: primary key names unknown attribute %q", name)
		}
		pk = append(pk, pos)
	}

	return &Schema{
		columns:     append([]Column(nil), columns...),
		nameToIndex: nameToIndex,
		primaryKey:  pk,
	}, nil
}

// NumAttrs returns the number of columns in the schema.
func (s *Schema) NumAttrs() int { return len(s.columns) }

// AttrIndex resolves name to a column position, case-insensitively. It
// satisfies eval.Schema.
func (s *Schema) AttrIndex(name string) (int, bool) {
	pos, ok := s.nameToIndex[foldName(name)]
	return pos, ok
}

// DomainAt returns the domain tag of the column at i. It satisfies
// eval.Schema.
func (s *Schema) DomainAt(i int) types.Domain { return s.columns[i].Domain }

// ColumnNames returns the schema's column names in declared order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// PrimaryKeyPositions returns the column positions making up the primary
// key, in primary-key order.
func (s *Schema) PrimaryKeyPositions() []int {
	return append([]int(nil), s.primaryKey...)
}

func foldName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
