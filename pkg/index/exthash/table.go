// Package exthash implements the generic Extendible Hash map of spec
// §3.3/§4.C: a power-of-two directory over a pool of fixed-capacity
// buckets, each carrying its local modulus (2^localDepth) so a
// later-overflowing bucket can tell whether it needs a simple reallocation
// or a full directory doubling.
package exthash

import "github.com/cockroachdb/errors"

// Slots is the maximum number of (key, value) pairs a bucket holds before
// it must split (spec §3.3, reference value 4).
const Slots = 4

type bucket[K comparable, V any] struct {
	keys   []K
	values []V

	// localMod is 2^localDepth: the directory size at which this bucket
	// would own exactly one slot. It equals mod only for buckets created by
	// a directory doubling. This is the teacher source's Bucket.depth field,
	// which despite the name stores 2^localDepth rather than localDepth itself. Keeping the
	// same representation avoids a log2 round trip on every split.
	localMod int
}

func (b *bucket[K, V]) full() bool { return len(b.keys) == Slots }

// Table is an Extendible Hash map keyed by K, holding values of type V.
type Table[K comparable, V any] struct {
	hash Hasher[K]

	dir     []*bucket[K, V] // directory, logical order, len == mod
	buckets []*bucket[K, V] // bucket pool, physical order

	mod    int
	visits int
}

// New constructs a Table with an initial directory of initSize empty
// buckets. initSize must be a power of two ≥ 1.
func New[K comparable, V any](initSize int, hash Hasher[K]) (*Table[K, V], error) {
	if initSize < 1 || initSize&(initSize-1) != 0 {
		return nil, errors.Wrapf(ErrInvalidDirectorySize, "got %d", initSize)
	}

	t := &Table[K, V]{hash: hash, mod: initSize}
	for i := 0; i < initSize; i++ {
		b := &bucket[K, V]{localMod: initSize}
		t.buckets = append(t.buckets, b)
		t.dir = append(t.dir, b)
	}
	return t, nil
}

// Visits returns the number of bucket accesses performed so far, exposed
// for performance testing (mirrors the teacher source's access counter).
func (t *Table[K, V]) Visits() int { return t.visits }

func (t *Table[K, V]) slot(key K) int {
	return int(t.hash(key) % uint64(t.mod))
}

// Get looks up key, consulting the directory slot h(k) mod mod and
// scanning its bucket linearly for equality.
func (t *Table[K, V]) Get(key K) (V, bool) {
	b := t.dir[t.slot(key)]
	t.visits++
	for i, k := range b.keys {
		if k == key {
			return b.values[i], true
		}
	}
	var zero V
	return zero, false
}

// Put inserts or overwrites (key, value). A full target bucket triggers a
// split; put never fails on well-formed keys (pathological hash collisions
// that exceed Slots keys at every depth cause unbounded splitting, a known
// limitation inherited from the source, not guarded against here).
func (t *Table[K, V]) Put(key K, value V) {
	b := t.dir[t.slot(key)]
	t.visits++
	for i, k := range b.keys {
		if k == key {
			b.values[i] = value
			return
		}
	}
	if !b.full() {
		b.keys = append(b.keys, key)
		b.values = append(b.values, value)
		return
	}
	t.split(b, key, value)
}

// split makes room for (key, value) in the overfull bucket b by replacing
// it with two buckets at a finer depth, per spec §4.C's two cases, then
// re-inserts the evicted pairs and the new one through ordinary Put (which
// may recurse into further splits).
func (t *Table[K, V]) split(b *bucket[K, V], key K, value V) {
	var buck1, buck2 *bucket[K, V]

	if b.localMod == t.mod {
		// Directory at local capacity: double it, keeping every old slot's
		// content at both i and i+oldMod, then carve the two target slots
		// out for the fresh buckets.
		oldMod := t.mod
		i := t.slot(key)
		t.dir = append(t.dir, t.dir...)
		t.mod = oldMod * 2

		j := i + oldMod

		buck1 = &bucket[K, V]{localMod: t.mod}
		buck2 = &bucket[K, V]{localMod: t.mod}
		t.dir[i] = buck1
		t.dir[j] = buck2
	} else {
		// Directory has room at a finer depth already: just reallocate the
		// 2^(D-d) slots that used to point at b between the two new
		// buckets, alternating every d slots.
		d := b.localMod
		i := t.firstDirIndex(b)

		buck1 = &bucket[K, V]{localMod: d * 2}
		buck2 = &bucket[K, V]{localMod: d * 2}

		k := 0
		for idx := i; idx < t.mod; idx += d {
			if k%2 == 0 {
				t.dir[idx] = buck1
			} else {
				t.dir[idx] = buck2
			}
			k++
		}
	}

	t.buckets = removeBucket(t.buckets, b)
	t.buckets = append(t.buckets, buck1, buck2)

	t.Put(key, value)
	for i, k := range b.keys {
		t.Put(k, b.values[i])
	}
}

func (t *Table[K, V]) firstDirIndex(b *bucket[K, V]) int {
	for i, d := range t.dir {
		if d == b {
			return i
		}
	}
	return -1
}

func removeBucket[K comparable, V any](pool []*bucket[K, V], target *bucket[K, V]) []*bucket[K, V] {
	for i, b := range pool {
		if b == target {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}

// Entry is a single (key, value) pair, as returned by Entries.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Entries returns every (key, value) pair by iterating the bucket pool
// (not the directory), avoiding the duplicate emission a directory sweep
// would produce once more than one slot points at the same bucket.
func (t *Table[K, V]) Entries() []Entry[K, V] {
	var out []Entry[K, V]
	for _, b := range t.buckets {
		for i, k := range b.keys {
			out = append(out, Entry[K, V]{Key: k, Value: b.values[i]})
		}
	}
	return out
}

// Size returns Slots × (number of physically allocated buckets) — an upper
// bound on capacity, not the population. This is the source's documented
// contract (spec §9): a separate population count is available via
// Population if a caller needs it.
//
// Bucket count is read directly off the pool slice rather than kept as a
// separately incremented counter: the source increments its own counter
// only on the directory-doubling branch of split, leaving it one short of
// len(hTable) after a same-depth-capacity split and so, eventually,
// understating size() below the pool's real capacity. Deriving the count
// from the pool avoids that drift entirely.
func (t *Table[K, V]) Size() int { return Slots * len(t.buckets) }

// Population returns the actual number of stored keys, for callers that
// need population rather than capacity.
func (t *Table[K, V]) Population() int {
	n := 0
	for _, b := range t.buckets {
		n += len(b.keys)
	}
	return n
}
