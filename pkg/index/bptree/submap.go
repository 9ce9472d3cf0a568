package bptree

// bound is one side of a SubMap's half-open interval. present == false means
// the bound is unconstrained (−∞ for lo, +∞ for hi).
type bound[K Ordered] struct {
	present   bool
	key       K
	inclusive bool
}

// SubMap is a light view over a Tree restricted to keys in [lo, hi)
// (either side may be open). It holds no data of its own; every operation
// delegates to the underlying tree's interval primitives.
type SubMap[K Ordered, V any] struct {
	tree *Tree[K, V]
	lo   bound[K]
	hi   bound[K]
}

// HeadMap returns a view of keys strictly less than to.
func (t *Tree[K, V]) HeadMap(to K) *SubMap[K, V] {
	return &SubMap[K, V]{tree: t, hi: bound[K]{present: true, key: to, inclusive: false}}
}

// TailMap returns a view of keys greater than or equal to from.
func (t *Tree[K, V]) TailMap(from K) *SubMap[K, V] {
	return &SubMap[K, V]{tree: t, lo: bound[K]{present: true, key: from, inclusive: true}}
}

// SubMap returns a view of keys in [from, to). from > to fails-with
// ErrInconsistentRange.
func (t *Tree[K, V]) SubMap(from, to K) (*SubMap[K, V], error) {
	if from > to {
		return nil, ErrInconsistentRange
	}
	return &SubMap[K, V]{
		tree: t,
		lo:   bound[K]{present: true, key: from, inclusive: true},
		hi:   bound[K]{present: true, key: to, inclusive: false},
	}, nil
}

// HeadMap refines this view to keys strictly less than to. Refinement never
// broadens the parent view; an attempt to do so fails-with
// ErrKeyOutOfRange.
func (s *SubMap[K, V]) HeadMap(to K) (*SubMap[K, V], error) {
	hi, err := composeHi(s.hi, bound[K]{present: true, key: to, inclusive: false})
	if err != nil {
		return nil, err
	}
	return &SubMap[K, V]{tree: s.tree, lo: s.lo, hi: hi}, nil
}

// TailMap refines this view to keys greater than or equal to from.
func (s *SubMap[K, V]) TailMap(from K) (*SubMap[K, V], error) {
	lo, err := composeLo(s.lo, bound[K]{present: true, key: from, inclusive: true})
	if err != nil {
		return nil, err
	}
	return &SubMap[K, V]{tree: s.tree, lo: lo, hi: s.hi}, nil
}

// SubMap refines this view to [from, to).
func (s *SubMap[K, V]) SubMap(from, to K) (*SubMap[K, V], error) {
	if from > to {
		return nil, ErrInconsistentRange
	}
	lo, err := composeLo(s.lo, bound[K]{present: true, key: from, inclusive: true})
	if err != nil {
		return nil, err
	}
	hi, err := composeHi(s.hi, bound[K]{present: true, key: to, inclusive: false})
	if err != nil {
		return nil, err
	}
	return &SubMap[K, V]{tree: s.tree, lo: lo, hi: hi}, nil
}

// composeLo merges a candidate lower bound into an existing one, accepting
// it only if the result is at least as strict (never broadens the view).
func composeLo[K Ordered](existing, candidate bound[K]) (bound[K], error) {
	if !candidate.present {
		return existing, nil
	}
	if !existing.present {
		return candidate, nil
	}
	if loAtLeastAsStrict(candidate, existing) {
		return candidate, nil
	}
	var zero bound[K]
	return zero, ErrKeyOutOfRange
}

func composeHi[K Ordered](existing, candidate bound[K]) (bound[K], error) {
	if !candidate.present {
		return existing, nil
	}
	if !existing.present {
		return candidate, nil
	}
	if hiAtLeastAsStrict(candidate, existing) {
		return candidate, nil
	}
	var zero bound[K]
	return zero, ErrKeyOutOfRange
}

// loAtLeastAsStrict reports whether lower bound a admits a subset of what b
// admits: a larger key is stricter, and at equal keys an exclusive bound is
// stricter than an inclusive one.
func loAtLeastAsStrict[K Ordered](a, b bound[K]) bool {
	switch {
	case a.key > b.key:
		return true
	case a.key < b.key:
		return false
	default:
		return !a.inclusive || b.inclusive
	}
}

// hiAtLeastAsStrict is loAtLeastAsStrict's mirror for upper bounds: a
// smaller key is stricter, and at equal keys exclusive beats inclusive.
func hiAtLeastAsStrict[K Ordered](a, b bound[K]) bool {
	switch {
	case a.key < b.key:
		return true
	case a.key > b.key:
		return false
	default:
		return !a.inclusive || b.inclusive
	}
}

func inInterval[K Ordered](k K, lo, hi bound[K]) bool {
	if lo.present {
		if lo.inclusive {
			if k < lo.key {
				return false
			}
		} else if k <= lo.key {
			return false
		}
	}
	if hi.present {
		if hi.inclusive {
			if k > hi.key {
				return false
			}
		} else if k >= hi.key {
			return false
		}
	}
	return true
}

// leftmostLeaf descends children[0] from the root to the first leaf.
func (t *Tree[K, V]) leftmostLeaf() ref {
	cur := t.root
	for {
		n := t.arena.at(cur)
		if n.isLeaf {
			return cur
		}
		cur = n.children[0]
	}
}

// forEachLeaf walks leaves left to right via the nextLeaf chain, in place
// of re-descending from the root at every step (spec §4.D: interval
// primitives "sweep the tree ... at leaves"). visit returns false to stop
// early.
func (t *Tree[K, V]) forEachLeaf(visit func(*node[K, V]) bool) {
	cur := t.leftmostLeaf()
	for cur != nilRef {
		leaf := t.arena.at(cur)
		if !visit(leaf) {
			return
		}
		cur = leaf.nextLeaf
	}
}

func (t *Tree[K, V]) nKeysInInterval(lo, hi bound[K]) int {
	n := 0
	t.forEachLeaf(func(leaf *node[K, V]) bool {
		for _, k := range leaf.keys {
			if inInterval(k, lo, hi) {
				n++
			}
		}
		return true
	})
	return n
}

func (t *Tree[K, V]) firstKeyInInterval(lo, hi bound[K]) (K, error) {
	var found K
	ok := false
	t.forEachLeaf(func(leaf *node[K, V]) bool {
		for _, k := range leaf.keys {
			if inInterval(k, lo, hi) {
				found, ok = k, true
				return false
			}
		}
		return true
	})
	if !ok {
		var zero K
		return zero, ErrEmpty
	}
	return found, nil
}

// lastKeyInInterval scans each leaf's keys back to front. The teacher
// source's equivalent starts its index one past the last valid slot
// (i = n.nKeys before any decrement) and only then steps backward, an
// off-by-one that can read past the leaf's real last key; this iterates
// len(leaf.keys)-1 downward, which starts at the actual last slot.
func (t *Tree[K, V]) lastKeyInInterval(lo, hi bound[K]) (K, error) {
	var found K
	ok := false
	t.forEachLeaf(func(leaf *node[K, V]) bool {
		for i := len(leaf.keys) - 1; i >= 0; i-- {
			if inInterval(leaf.keys[i], lo, hi) {
				found, ok = leaf.keys[i], true
				break
			}
		}
		return true
	})
	if !ok {
		var zero K
		return zero, ErrEmpty
	}
	return found, nil
}

// Size returns the number of keys in the view's interval.
func (s *SubMap[K, V]) Size() int { return s.tree.nKeysInInterval(s.lo, s.hi) }

// FirstKey returns the smallest key in the view, fails-with ErrEmpty if the
// interval contains no keys.
func (s *SubMap[K, V]) FirstKey() (K, error) { return s.tree.firstKeyInInterval(s.lo, s.hi) }

// LastKey returns the largest key in the view, fails-with ErrEmpty if the
// interval contains no keys.
func (s *SubMap[K, V]) LastKey() (K, error) { return s.tree.lastKeyInInterval(s.lo, s.hi) }

// ContainsKey reports whether key is both in the view's interval and
// present in the underlying tree.
func (s *SubMap[K, V]) ContainsKey(key K) bool {
	if !inInterval(key, s.lo, s.hi) {
		return false
	}
	_, ok := s.tree.Get(key)
	return ok
}

// Get looks up key through the view; it is not restricted to the view's
// interval beyond the ContainsKey-style check callers are expected to make
// first, matching the underlying tree's Get exactly.
func (s *SubMap[K, V]) Get(key K) (V, bool) { return s.tree.Get(key) }

// Put writes through to the underlying tree without bounds enforcement,
// matching the source's behavior: a SubMap is a read-oriented view, and
// nothing stops a caller from inserting a key outside its interval.
func (s *SubMap[K, V]) Put(key K, value V) { s.tree.Put(key, value) }
