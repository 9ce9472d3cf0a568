package exthash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSquares(t *testing.T, initSize int) *Table[int, int] {
	t.Helper()
	tbl, err := New[int, int](initSize, IntHasher[int]())
	require.NoError(t, err)
	for k := 1; k < 30; k++ {
		tbl.Put(k, k*k)
	}
	return tbl
}

func TestExtHash_InsertSquares(t *testing.T) {
	tbl := buildSquares(t, 2)

	v, ok := tbl.Get(17)
	require.True(t, ok)
	assert.Equal(t, 289, v)

	assert.Equal(t, Slots*len(tbl.buckets), tbl.Size())
	assertDirectoryInvariant(t, tbl)
}

func TestExtHash_Population(t *testing.T) {
	tbl := buildSquares(t, 2)
	assert.Equal(t, 29, tbl.Population())
	assert.LessOrEqual(t, tbl.Population(), tbl.Size())
}

func TestExtHash_Entries(t *testing.T) {
	tbl := buildSquares(t, 2)
	entries := tbl.Entries()
	require.Len(t, entries, 29)

	seen := make(map[int]int, len(entries))
	for _, e := range entries {
		seen[e.Key] = e.Value
	}
	for k := 1; k < 30; k++ {
		assert.Equal(t, k*k, seen[k])
	}
}

func TestExtHash_DuplicatePutOverwrites(t *testing.T) {
	tbl, err := New[string, string](4, StringHasher())
	require.NoError(t, err)

	tbl.Put("a", "first")
	tbl.Put("a", "second")

	v, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, tbl.Population())
}

func TestExtHash_RejectsNonPowerOfTwoInitSize(t *testing.T) {
	_, err := New[int, int](3, IntHasher[int]())
	require.Error(t, err)

	_, err = New[int, int](0, IntHasher[int]())
	require.Error(t, err)
}

// assertDirectoryInvariant checks spec §8's universal ExtHash property:
// for every bucket b with local mod m, the number of directory slots
// pointing at b equals t.mod/m, and their indices all agree modulo m.
func assertDirectoryInvariant(t *testing.T, tbl *Table[int, int]) {
	t.Helper()

	for _, b := range tbl.buckets {
		var indices []int
		for i, d := range tbl.dir {
			if d == b {
				indices = append(indices, i)
			}
		}
		require.NotEmpty(t, indices, "every pool bucket must be reachable from the directory")
		assert.Equal(t, tbl.mod/b.localMod, len(indices))

		want := indices[0] % b.localMod
		for _, idx := range indices {
			assert.Equal(t, want, idx%b.localMod)
		}
	}
}
