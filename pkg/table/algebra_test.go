package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuplebase/pkg/types"
)

func ordered() IndexFactory { return NewOrderedIndex }

func TestTable_Project_KeepsOriginalKeyWhenPreserved(t *testing.T) {
	schema := movieSchema(t)
	tbl := New(schema, NewOrderedIndex())
	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))

	projected, err := tbl.Project([]string{"title", "year", "studioName"}, ordered())
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "year"}, projected.Schema().ColumnNames()[:2])
	assert.Equal(t, 2, projected.NumTuples())

	key, err := EncodeKey(projected.Schema(), movieTuple(t, "Star_Wars", 1977, 0, "")[:3])
	require.NoError(t, err)
	got, ok := projected.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Fox", got[2].Raw())
}

func TestTable_Project_RecomputesKeyWhenDropped(t *testing.T) {
	schema := movieSchema(t)
	tbl := New(schema, NewOrderedIndex())
	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))

	projected, err := tbl.Project([]string{"studioName", "title", "length"}, ordered())
	require.NoError(t, err)
	assert.Equal(t, []string{"studioName", "title", "length"}, projected.Schema().ColumnNames())
}

func TestTable_Project_FailsWhenNoKeyColumnSurvives(t *testing.T) {
	schema, err := NewSchema([]Column{
		{Name: "a", Domain: types.Int32},
		{Name: "b", Domain: types.Int32},
		{Name: "c", Domain: types.Int32},
	}, []string{"a"})
	require.NoError(t, err)
	tbl := New(schema, NewOrderedIndex())

	av, _ := types.NewValue(types.Int32, int32(1))
	bv, _ := types.NewValue(types.Int32, int32(2))
	cv, _ := types.NewValue(types.Int32, int32(3))
	require.NoError(t, tbl.Insert([]types.Value{av, bv, cv}))

	_, err = tbl.Project([]string{"b", "c"}, ordered())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoUsableKey)
}

func TestTable_Project_FailsOnUnknownAttribute(t *testing.T) {
	tbl := New(movieSchema(t), NewOrderedIndex())
	_, err := tbl.Project([]string{"nonexistent"}, ordered())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestTable_UnionDeduplicatesByFullTupleEquality(t *testing.T) {
	schema := movieSchema(t)
	a := New(schema, NewOrderedIndex())
	b := New(schema, NewOrderedIndex())

	require.NoError(t, a.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, a.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))
	require.NoError(t, b.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))
	require.NoError(t, b.Insert(movieTuple(t, "Aliens", 1986, 137, "Fox")))

	u, err := a.Union(b, ordered())
	require.NoError(t, err)
	assert.Equal(t, 3, u.NumTuples())
}

func TestTable_UnionFailsOnIncompatibleSchemas(t *testing.T) {
	a := New(movieSchema(t), NewOrderedIndex())

	other, err := NewSchema([]Column{{Name: "x", Domain: types.Int32}}, []string{"x"})
	require.NoError(t, err)
	b := New(other, NewOrderedIndex())

	_, err = a.Union(b, ordered())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestTable_MinusReturnsSetDifference(t *testing.T) {
	schema := movieSchema(t)
	a := New(schema, NewOrderedIndex())
	b := New(schema, NewOrderedIndex())

	require.NoError(t, a.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, a.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))
	require.NoError(t, b.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))

	diff, err := a.Minus(b, ordered())
	require.NoError(t, err)
	require.Equal(t, 1, diff.NumTuples())
	assert.Equal(t, "Star_Wars", diff.Entries()[0][0].Raw())
}

func TestTable_JoinOnEqualityProducesConcatenatedRows(t *testing.T) {
	studioSchema, err := NewSchema([]Column{
		{Name: "name", Domain: types.String},
		{Name: "address", Domain: types.String},
	}, []string{"name"})
	require.NoError(t, err)
	studios := New(studioSchema, NewOrderedIndex())

	nameV, _ := types.NewValue(types.String, "Fox")
	addrV, _ := types.NewValue(types.String, "LA")
	require.NoError(t, studios.Insert([]types.Value{nameV, addrV}))

	movies := New(movieSchema(t), NewOrderedIndex())
	require.NoError(t, movies.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))

	joined, err := movies.Join("studioName", studios, "name", ordered())
	require.NoError(t, err)
	require.Equal(t, 1, joined.NumTuples())

	row := joined.Entries()[0]
	assert.Equal(t, "Star_Wars", row[0].Raw())
	assert.Equal(t, "LA", row[len(row)-1].Raw())
}

func TestTable_JoinFailsOnUnknownAttribute(t *testing.T) {
	movies := New(movieSchema(t), NewOrderedIndex())
	studioSchema, err := NewSchema([]Column{{Name: "name", Domain: types.String}}, []string{"name"})
	require.NoError(t, err)
	studios := New(studioSchema, NewOrderedIndex())

	_, err = movies.Join("nope", studios, "name", ordered())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAttribute)
}
