// Package bptree implements the generic B+Tree map of spec §3.2/§4.D: a
// fixed-fanout, single-threaded ordered index supporting point lookup,
// ordered insertion with split propagation, first/last key, and
// range-restricted SubMap views.
//
// Nodes are held in an append-only arena (node.go) and addressed by integer
// ref rather than by pointer, so the ancestor stack recorded during
// insertion (Put) can hold plain indices instead of node pointers — the
// arena technique spec §9 calls for to keep split propagation free of
// aliasing hazards.
package bptree

import (
	"fmt"
	"log/slog"

	"tuplebase/internal/logging"
)

// Entry is a single (key, value) pair, as returned by Entries.
type Entry[K Ordered, V any] struct {
	Key   K
	Value V
}

// Tree is a B+Tree map keyed by K, holding values of type V.
type Tree[K Ordered, V any] struct {
	arena  arena[K, V]
	root   ref
	visits int
	logger *slog.Logger
}

// Option configures a Tree at construction time.
type Option[K Ordered, V any] func(*Tree[K, V])

// WithLogger overrides the diagnostic sink a Tree warns duplicate-key
// overwrites to; tests use this to capture the warning (spec §9: "tests
// must check for the warning channel").
func WithLogger[K Ordered, V any](l *slog.Logger) Option[K, V] {
	return func(t *Tree[K, V]) { t.logger = l }
}

// New constructs an empty B+Tree map: a single empty leaf root (spec §3.2
// edge cases).
func New[K Ordered, V any](opts ...Option[K, V]) *Tree[K, V] {
	t := &Tree[K, V]{}
	for _, opt := range opts {
		opt(t)
	}
	t.root = t.arena.alloc(newLeaf[K, V]())
	return t
}

func (t *Tree[K, V]) warn(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Warn(msg, args...)
		return
	}
	logging.Warn(msg, args...)
}

// Visits returns the number of node visits performed by Get calls so far,
// exposed for performance testing per spec §4.D.
func (t *Tree[K, V]) Visits() int { return t.visits }

// Get looks up key, descending from the root and applying the left-biased,
// equality-goes-right convention of spec §3.2.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	cur := t.root
	for {
		n := t.arena.at(cur)
		t.visits++
		if n.isLeaf {
			pos := lowerBound(n.keys, key)
			if pos < len(n.keys) && n.keys[pos] == key {
				return n.values[pos], true
			}
			var zero V
			return zero, false
		}
		cur = n.children[upperBoundLE(n.keys, key)]
	}
}

// Put inserts (key, value). A duplicate key overwrites the existing value
// in place and emits a warning (spec §7 DuplicateKeyOverwrite); it never
// increases Size().
func (t *Tree[K, V]) Put(key K, value V) {
	var path []ref // internal ancestors from root down to the leaf's parent
	cur := t.root
	for {
		n := t.arena.at(cur)
		if n.isLeaf {
			break
		}
		path = append(path, cur)
		cur = n.children[upperBoundLE(n.keys, key)]
	}

	leaf := t.arena.at(cur)
	pos := lowerBound(leaf.keys, key)
	if pos < len(leaf.keys) && leaf.keys[pos] == key {
		t.warn("bptree: attempt to insert duplicate key, overwriting", "key", fmt.Sprint(key))
		leaf.values[pos] = value
		return
	}

	if !leaf.full() {
		wedgeLeafAt(leaf, pos, key, value)
		return
	}

	sibRef := t.splitLeaf(cur, pos, key, value)
	if len(path) == 0 {
		return // leaf was the root; splitLeaf already installed a new root.
	}

	i := len(path) - 1
	promoted := t.arena.at(sibRef).keys[0]

	if !t.arena.at(path[i]).full() {
		t.wedgeChild(path[i], promoted, sibRef)
		return
	}

	for {
		p := t.arena.at(path[i])
		ppos := upperBoundLE(p.keys, promoted)
		sibRef = t.splitInternal(path[i], ppos, promoted, sibRef)
		if i == 0 {
			return // root just split; splitInternal installed a new root.
		}
		promoted = t.arena.at(sibRef).keys[0]
		i--
		if !t.arena.at(path[i]).full() {
			break
		}
	}
	t.wedgeChild(path[i], promoted, sibRef)
}

// FirstKey returns the smallest key in the tree, fails-with ErrEmpty if the
// tree has no entries.
func (t *Tree[K, V]) FirstKey() (K, error) {
	cur := t.root
	for {
		n := t.arena.at(cur)
		if n.isLeaf {
			if len(n.keys) == 0 {
				var zero K
				return zero, ErrEmpty
			}
			return n.keys[0], nil
		}
		cur = n.children[0]
	}
}

// LastKey returns the largest key in the tree, fails-with ErrEmpty if the
// tree has no entries.
func (t *Tree[K, V]) LastKey() (K, error) {
	cur := t.root
	for {
		n := t.arena.at(cur)
		if n.isLeaf {
			if len(n.keys) == 0 {
				var zero K
				return zero, ErrEmpty
			}
			return n.keys[len(n.keys)-1], nil
		}
		cur = n.children[len(n.children)-1]
	}
}

// Entries returns all (key, value) pairs via a breadth-first sweep; order is
// not guaranteed (spec §4.D).
func (t *Tree[K, V]) Entries() []Entry[K, V] {
	var out []Entry[K, V]
	queue := []ref{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := t.arena.at(cur)
		if n.isLeaf {
			for i, k := range n.keys {
				out = append(out, Entry[K, V]{Key: k, Value: n.values[i]})
			}
		} else {
			queue = append(queue, n.children...)
		}
	}
	return out
}

// Size returns the total number of keys stored (sum of leaf key counts).
func (t *Tree[K, V]) Size() int {
	sum := 0
	queue := []ref{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := t.arena.at(cur)
		if n.isLeaf {
			sum += len(n.keys)
		} else {
			queue = append(queue, n.children...)
		}
	}
	return sum
}
