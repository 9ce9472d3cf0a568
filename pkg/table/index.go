package table

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"tuplebase/pkg/codec"
	"tuplebase/pkg/index/bptree"
	"tuplebase/pkg/index/exthash"
	"tuplebase/pkg/types"
)

// Key is the on-wire encoding of a tuple's primary-key projection: the
// byte codec's packed representation of each key column, concatenated in
// primary-key order. It is both cmp.Ordered (satisfying bptree's key
// constraint) and comparable (satisfying exthash's), so either index kind
// can back the same Table without a second key representation.
type Key string

// EncodeKey packs tuple's primary-key columns, per schema's declared
// key positions, into a single Key.
func EncodeKey(schema *Schema, tuple []types.Value) (Key, error) {
	var buf bytes.Buffer
	for _, pos := range schema.primaryKey {
		b, err := codec.Pack(tuple[pos])
		if err != nil {
			return "", err
		}
		buf.Write(b)
	}
	return Key(buf.String()), nil
}

// indexEntry is the value an Index stores for one key: the position of
// the owning tuple within the table's append-only tuple sequence.
type indexEntry = int

// Index is the narrow interface Table demands from its primary-key index,
// spec §4.F: get, put, entries — satisfied by either pkg/index/bptree or
// pkg/index/exthash behind a thin adapter.
type Index interface {
	Get(key Key) (int, bool)
	Put(key Key, pos int)
	Entries() []IndexEntry
	Size() int
}

// IndexEntry pairs a key with the tuple position it resolves to.
type IndexEntry struct {
	Key Key
	Pos int
}

// bptreeIndex adapts bptree.Tree to Index.
type bptreeIndex struct {
	tree *bptree.Tree[Key, int]
}

// NewOrderedIndex backs a Table with a bptree.Tree. The Index interface
// offers only point access; the tree's sub/head/tail map views are reached
// through the adapter's Tree method, which Table does not expose.
func NewOrderedIndex() Index {
	return &bptreeIndex{tree: bptree.New[Key, int]()}
}

func (i *bptreeIndex) Get(key Key) (int, bool) { return i.tree.Get(key) }
func (i *bptreeIndex) Put(key Key, pos int)    { i.tree.Put(key, pos) }
func (i *bptreeIndex) Size() int               { return i.tree.Size() }
func (i *bptreeIndex) Entries() []IndexEntry {
	entries := i.tree.Entries()
	out := make([]IndexEntry, len(entries))
	for j, e := range entries {
		out[j] = IndexEntry{Key: e.Key, Pos: e.Value}
	}
	return out
}

// Tree exposes the underlying ordered tree for callers that need range
// views (sub/head/tail map).
func (i *bptreeIndex) Tree() *bptree.Tree[Key, int] { return i.tree }

// exthashIndex adapts exthash.Table to Index.
type exthashIndex struct {
	table *exthash.Table[Key, int]
}

// NewHashedIndex backs a Table with an exthash.Table of the given initial
// directory size (a power of two ≥ 1).
func NewHashedIndex(initDirSize int) (Index, error) {
	tbl, err := exthash.New[Key, int](initDirSize, keyHasher())
	if err != nil {
		return nil, err
	}
	return &exthashIndex{table: tbl}, nil
}

// keyHasher hashes a Key's string bytes with xxhash, the same non-
// cryptographic hash exthash.StringHasher uses for plain strings.
func keyHasher() exthash.Hasher[Key] {
	return func(k Key) uint64 { return xxhash.Sum64String(string(k)) }
}

func (i *exthashIndex) Get(key Key) (int, bool) { return i.table.Get(key) }
func (i *exthashIndex) Put(key Key, pos int)    { i.table.Put(key, pos) }
func (i *exthashIndex) Size() int               { return i.table.Size() }
func (i *exthashIndex) Entries() []IndexEntry {
	entries := i.table.Entries()
	out := make([]IndexEntry, len(entries))
	for j, e := range entries {
		out[j] = IndexEntry{Key: e.Key, Pos: e.Value}
	}
	return out
}
