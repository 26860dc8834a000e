package treap

import (
	"cmp"
	"math/rand/v2"
)

// maxPriority bounds randomly drawn priorities. Ties are tolerated by the
// heap invariant, so the bound only needs to make them rare.
const maxPriority = 1<<31 - 1

// node is a single treap node. Keys obey binary search tree order,
// priorities obey max-heap order.
type node[K cmp.Ordered, V any] struct {
	key      K
	priority int
	value    V
	left     *node[K, V]
	right    *node[K, V]
}

// Treap is a randomized binary search tree: lookups follow key order while
// the shape is governed by per-node priorities kept in max-heap order.
// Because priorities are random, the expected height is logarithmic in the
// number of keys regardless of insertion order.
//
// A Treap is not safe for concurrent mutation. Concurrent readers are fine
// as long as no writer runs.
type Treap[K cmp.Ordered, V any] struct {
	root *node[K, V]
	size int
	seed uint64
	prio func() int
}

// Option configures a Treap created by [New].
type Option func(*config)

type config struct {
	seed   uint64
	seeded bool
	prio   func() int
}

// WithSeed seeds the priority source. Two treaps built with the same seed
// and the same insertion sequence have identical shapes, and therefore
// identical renderings.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithPriority replaces the random priority source with fn. Useful for
// tests that need hand-picked priorities.
func WithPriority(fn func() int) Option {
	return func(c *config) { c.prio = fn }
}

// New returns an empty treap. Without options, priorities come from a
// freshly seeded PCG source.
func New[K cmp.Ordered, V any](opts ...Option) *Treap[K, V] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Treap[K, V]{}
	switch {
	case cfg.prio != nil:
		t.prio = cfg.prio
	default:
		seed := cfg.seed
		if !cfg.seeded {
			seed = rand.Uint64()
		}
		rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
		t.seed = seed
		t.prio = func() int { return rng.IntN(maxPriority) }
	}
	return t
}

// Seed returns the seed of the priority source, or zero when a custom
// priority function was installed with [WithPriority]. Serialized trees
// carry the seed so their provenance survives a round trip.
func (t *Treap[K, V]) Seed() uint64 { return t.seed }

// Len returns the number of keys stored.
func (t *Treap[K, V]) Len() int { return t.size }

// Height returns the number of nodes on the longest root-to-leaf path.
// An empty treap has height 0.
func (t *Treap[K, V]) Height() int { return height(t.root) }

func height[K cmp.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Insert stores value under key with a freshly drawn priority. Inserting an
// existing key replaces its value in place and leaves the shape unchanged.
func (t *Treap[K, V]) Insert(key K, value V) {
	t.InsertWithPriority(key, t.prio(), value)
}

// InsertWithPriority stores value under key with an explicit priority.
// This is the rebuild path used when deserializing a stored tree, where
// priorities must be replayed to reproduce the shape exactly.
func (t *Treap[K, V]) InsertWithPriority(key K, priority int, value V) {
	if n := find(t.root, key); n != nil {
		n.value = value
		return
	}

	l, r := split(t.root, key)
	t.root = merge(merge(l, &node[K, V]{key: key, priority: priority, value: value}), r)
	t.size++
}

// Delete removes key and reports whether it was present.
func (t *Treap[K, V]) Delete(key K) bool {
	root, ok := del(t.root, key)
	t.root = root
	if ok {
		t.size--
	}
	return ok
}

// Get returns the value stored under key.
func (t *Treap[K, V]) Get(key K) (V, bool) {
	if n := find(t.root, key); n != nil {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (t *Treap[K, V]) Has(key K) bool {
	return find(t.root, key) != nil
}

// Min returns the smallest key and its value.
func (t *Treap[K, V]) Min() (K, V, bool) {
	n := t.root
	if n == nil {
		var k K
		var v V
		return k, v, false
	}
	for n.left != nil {
		n = n.left
	}
	return n.key, n.value, true
}

// Max returns the largest key and its value.
func (t *Treap[K, V]) Max() (K, V, bool) {
	n := t.root
	if n == nil {
		var k K
		var v V
		return k, v, false
	}
	for n.right != nil {
		n = n.right
	}
	return n.key, n.value, true
}

// Walk visits every node in ascending key order. The callback also receives
// the node's priority so callers can serialize or inspect the shape.
// Returning false stops the walk early.
func (t *Treap[K, V]) Walk(fn func(key K, priority int, value V) bool) {
	walk(t.root, fn)
}

func walk[K cmp.Ordered, V any](n *node[K, V], fn func(K, int, V) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, fn) {
		return false
	}
	if !fn(n.key, n.priority, n.value) {
		return false
	}
	return walk(n.right, fn)
}

// Keys returns all keys in ascending order.
func (t *Treap[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.Walk(func(k K, _ int, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Clone returns a deep copy sharing no nodes with t. The copy keeps t's
// priority source.
func (t *Treap[K, V]) Clone() *Treap[K, V] {
	return &Treap[K, V]{root: clone(t.root), size: t.size, seed: t.seed, prio: t.prio}
}

func clone[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	return &node[K, V]{
		key:      n.key,
		priority: n.priority,
		value:    n.value,
		left:     clone(n.left),
		right:    clone(n.right),
	}
}

// Split partitions t around key: the first result holds every key below
// key, the second holds key and everything above it. Both results keep t's
// priority source. t is consumed and must not be used afterwards.
func (t *Treap[K, V]) Split(key K) (*Treap[K, V], *Treap[K, V]) {
	l, r := split(t.root, key)
	t.root = nil
	t.size = 0
	return &Treap[K, V]{root: l, size: count(l), seed: t.seed, prio: t.prio},
		&Treap[K, V]{root: r, size: count(r), seed: t.seed, prio: t.prio}
}

// Merge joins two treaps where every key in left is below every key in
// right; that precondition is the caller's to uphold. Both inputs are
// consumed. The result keeps left's priority source.
func Merge[K cmp.Ordered, V any](left, right *Treap[K, V]) *Treap[K, V] {
	out := &Treap[K, V]{
		root: merge(left.root, right.root),
		size: left.size + right.size,
		seed: left.seed,
		prio: left.prio,
	}
	left.root, left.size = nil, 0
	right.root, right.size = nil, 0
	return out
}

// split separates n into nodes with keys below key and nodes with keys at
// or above it, preserving heap order within each side.
func split[K cmp.Ordered, V any](n *node[K, V], key K) (*node[K, V], *node[K, V]) {
	if n == nil {
		return nil, nil
	}
	if n.key < key {
		l, r := split(n.right, key)
		n.right = l
		return n, r
	}
	l, r := split(n.left, key)
	n.left = r
	return l, n
}

// merge joins two heaps whose key ranges do not overlap (all of l below all
// of r), picking the higher-priority root at each step.
func merge[K cmp.Ordered, V any](l, r *node[K, V]) *node[K, V] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.priority >= r.priority:
		l.right = merge(l.right, r)
		return l
	default:
		r.left = merge(l, r.left)
		return r
	}
}

// del removes key from the subtree rooted at n. The removed node's children
// are merged in its place, which keeps both invariants without rotations.
func del[K cmp.Ordered, V any](n *node[K, V], key K) (*node[K, V], bool) {
	if n == nil {
		return nil, false
	}
	switch {
	case key < n.key:
		left, ok := del(n.left, key)
		n.left = left
		return n, ok
	case key > n.key:
		right, ok := del(n.right, key)
		n.right = right
		return n, ok
	default:
		return merge(n.left, n.right), true
	}
}

func find[K cmp.Ordered, V any](n *node[K, V], key K) *node[K, V] {
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func count[K cmp.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + count(n.left) + count(n.right)
}
