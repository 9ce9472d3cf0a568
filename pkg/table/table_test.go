package table

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuplebase/pkg/types"
)

func movieSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := NewSchema([]Column{
		{Name: "title", Domain: types.String},
		{Name: "year", Domain: types.Int32},
		{Name: "length", Domain: types.Int32},
		{Name: "studioName", Domain: types.String},
	}, []string{"title", "year"})
	require.NoError(t, err)
	return schema
}

func movieTuple(t *testing.T, title string, year, length int32, studio string) []types.Value {
	t.Helper()
	titleV, err := types.NewValue(types.String, title)
	require.NoError(t, err)
	yearV, err := types.NewValue(types.Int32, year)
	require.NoError(t, err)
	lengthV, err := types.NewValue(types.Int32, length)
	require.NoError(t, err)
	studioV, err := types.NewValue(types.String, studio)
	require.NoError(t, err)
	return []types.Value{titleV, yearV, lengthV, studioV}
}

func TestTable_InsertAndGet(t *testing.T) {
	schema := movieSchema(t)
	tbl := New(schema, NewOrderedIndex())

	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Jaws", 1975, 124, "Universal")))

	key, err := EncodeKey(schema, movieTuple(t, "Star_Wars", 1977, 0, ""))
	require.NoError(t, err)

	got, ok := tbl.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Fox", got[3].Raw())
	assert.Equal(t, 2, tbl.NumTuples())
}

func TestTable_InsertRejectsDomainMismatch(t *testing.T) {
	schema := movieSchema(t)
	tbl := New(schema, NewOrderedIndex())

	yearStr, err := types.NewValue(types.String, "1977")
	require.NoError(t, err)

	bad := movieTuple(t, "Star_Wars", 1977, 124, "Fox")
	bad[1] = yearStr

	err = tbl.Insert(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDomainMismatch)
}

func TestTable_DuplicateKeyOverwriteLogsAndReplaces(t *testing.T) {
	schema := movieSchema(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tbl := New(schema, NewOrderedIndex(), WithLogger(logger))

	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 999, "Disney")))

	key, err := EncodeKey(schema, movieTuple(t, "Star_Wars", 1977, 0, ""))
	require.NoError(t, err)
	got, ok := tbl.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Disney", got[3].Raw())
	assert.Contains(t, buf.String(), "overwrites")
}

func TestTable_Select(t *testing.T) {
	schema := movieSchema(t)
	tbl := New(schema, NewOrderedIndex())
	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Aliens", 1986, 137, "Fox")))

	rows, err := tbl.Select("1979 < year & year < 1990")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aliens", rows[0][0].Raw())
}

func TestTable_SelectByQuotedStringEquality(t *testing.T) {
	schema := movieSchema(t)
	tbl := New(schema, NewOrderedIndex())
	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))
	require.NoError(t, tbl.Insert(movieTuple(t, "Alien", 1979, 117, "Fox")))

	rows, err := tbl.Select("title == 'Star_Wars'")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(1977), rows[0][1].Raw())
}

func TestTable_HashedIndexBacksSameOperations(t *testing.T) {
	schema := movieSchema(t)
	index, err := NewHashedIndex(2)
	require.NoError(t, err)
	tbl := New(schema, index)

	require.NoError(t, tbl.Insert(movieTuple(t, "Star_Wars", 1977, 124, "Fox")))

	key, err := EncodeKey(schema, movieTuple(t, "Star_Wars", 1977, 0, ""))
	require.NoError(t, err)
	got, ok := tbl.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Fox", got[3].Raw())
}
