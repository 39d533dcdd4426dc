// Package quadtree implements a region quadtree over axis-aligned boxes.
//
// The tree is meant to be rebuilt from scratch every simulation tick: Clear
// keeps the node and item storage so a steady population rebuilds without
// allocating. Each Insert returns a Handle that stays valid until the next
// Clear; handles from an older build are rejected everywhere.
//
// Items are stored at the deepest node whose bounds fully contain them. Items
// straddling a split line stay at the parent and items outside the tree bounds
// stay at the root, so nothing inserted is ever dropped.
package quadtree

import (
	"sync"

	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

const noChildren = -1

type node struct {
	bounds   geometry.Region
	depth    int
	children int // index of the first of four consecutive children
	items    []uint32
}

type entry[T any] struct {
	region geometry.Region
	item   T
	node   int
	live   bool
}

// Tree is a quadtree holding values of type T keyed by their region.
// Insert and Remove are serialized by a mutex; Query, Visit and Get take a
// read lock and may run concurrently with each other.
type Tree[T any] struct {
	mu       sync.RWMutex
	bounds   geometry.Region
	capacity int
	maxDepth int
	gen      uint32
	size     int
	nodes    []node
	entries  []entry[T]
}

// New returns an empty tree covering bounds.
func New[T any](bounds geometry.Region, opts ...Option) *Tree[T] {
	s := settings{capacity: DefaultCapacity, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&s)
	}
	t := &Tree[T]{
		bounds:   geometry.NewRegion(bounds.Min, bounds.Max),
		capacity: s.capacity,
		maxDepth: s.maxDepth,
		gen:      1,
	}
	t.nodes = append(t.nodes, node{bounds: t.bounds, children: noChildren})
	return t
}

// Bounds returns the region the tree was built for.
func (t *Tree[T]) Bounds() geometry.Region {
	return t.bounds
}

// Len returns the number of live items.
func (t *Tree[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// View returns a read-only view backed by t.
func (t *Tree[T]) View() View[T] {
	return frozen[T]{t: t}
}

// Clear removes every item and invalidates every handle issued so far.
// Node and item storage is kept for reuse.
func (t *Tree[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.gen == 0 {
		t.gen = 1
	}
	var zero T
	for i := range t.entries {
		t.entries[i].item = zero
	}
	t.entries = t.entries[:0]
	t.size = 0

	root := &t.nodes[0]
	root.items = root.items[:0]
	root.children = noChildren
	t.nodes = t.nodes[:1]
}

// Insert stores item under region and returns its handle.
func (t *Tree[T]) Insert(region geometry.Region, item T) Handle {
	region = geometry.NewRegion(region.Min, region.Max)

	t.mu.Lock()
	defer t.mu.Unlock()

	slot := uint32(len(t.entries))
	t.entries = append(t.entries, entry[T]{region: region, item: item, live: true})
	t.place(0, slot)
	t.size++
	return Handle{gen: t.gen, slot: slot}
}

// Remove deletes the item behind h. It returns false for stale or unknown handles.
func (t *Tree[T]) Remove(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.lookup(h)
	if e == nil {
		return false
	}
	n := &t.nodes[e.node]
	for i, s := range n.items {
		if s == h.slot {
			last := len(n.items) - 1
			n.items[i] = n.items[last]
			n.items = n.items[:last]
			break
		}
	}
	var zero T
	e.item = zero
	e.live = false
	t.size--
	return true
}

// Get returns the item behind h.
func (t *Tree[T]) Get(h Handle) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if e := t.lookup(h); e != nil {
		return e.item, true
	}
	var zero T
	return zero, false
}

// Query returns every live item whose region intersects region, minus the
// items behind the excluded handles. Each item appears once, in no particular order.
func (t *Tree[T]) Query(region geometry.Region, exclude ...Handle) []T {
	var out []T
	t.Visit(region, func(item T) {
		out = append(out, item)
	}, exclude...)
	return out
}

// Visit calls fn for every item Query would return. fn must not call back
// into Insert, Remove or Clear.
func (t *Tree[T]) Visit(region geometry.Region, fn func(T), exclude ...Handle) {
	region = geometry.NewRegion(region.Min, region.Max)

	t.mu.RLock()
	defer t.mu.RUnlock()

	var stackBuf [64]int
	stack := append(stackBuf[:0], 0)
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[ni]

		// the root also holds out-of-bounds items, so it is never pruned
		if ni != 0 && !n.bounds.Intersects(region) {
			continue
		}
		for _, s := range n.items {
			e := &t.entries[s]
			if !e.region.Intersects(region) || t.excluded(s, exclude) {
				continue
			}
			fn(e.item)
		}
		if n.children != noChildren {
			stack = append(stack, n.children, n.children+1, n.children+2, n.children+3)
		}
	}
}

// Regions returns the bounds of every node currently in the tree.
func (t *Tree[T]) Regions() []geometry.Region {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]geometry.Region, len(t.nodes))
	for i := range t.nodes {
		out[i] = t.nodes[i].bounds
	}
	return out
}

func (t *Tree[T]) lookup(h Handle) *entry[T] {
	if h.IsZero() || h.gen != t.gen || int(h.slot) >= len(t.entries) {
		return nil
	}
	e := &t.entries[h.slot]
	if !e.live {
		return nil
	}
	return e
}

func (t *Tree[T]) excluded(slot uint32, exclude []Handle) bool {
	for _, h := range exclude {
		if h.gen == t.gen && h.slot == slot {
			return true
		}
	}
	return false
}

// place walks down from node ni and stores slot at the deepest node fully
// containing its region, splitting the receiving leaf when it overflows.
func (t *Tree[T]) place(ni int, slot uint32) {
	region := t.entries[slot].region
	for {
		n := &t.nodes[ni]
		if n.children == noChildren {
			break
		}
		q := quadrantOf(n.bounds, region)
		if q < 0 {
			break
		}
		ni = n.children + q
	}
	t.nodes[ni].items = append(t.nodes[ni].items, slot)
	t.entries[slot].node = ni
	t.maybeSplit(ni)
}

func (t *Tree[T]) maybeSplit(ni int) {
	n := &t.nodes[ni]
	if n.children != noChildren || len(n.items) <= t.capacity || n.depth >= t.maxDepth {
		return
	}

	first := t.alloc(n.bounds.Quadrants(), n.depth+1)
	// alloc may have grown t.nodes
	n = &t.nodes[ni]
	n.children = first

	keep := n.items[:0]
	for _, s := range n.items {
		q := quadrantOf(n.bounds, t.entries[s].region)
		if q < 0 {
			keep = append(keep, s)
			continue
		}
		child := first + q
		t.nodes[child].items = append(t.nodes[child].items, s)
		t.entries[s].node = child
	}
	n.items = keep

	for q := 0; q < 4; q++ {
		t.maybeSplit(first + q)
	}
}

// alloc appends four child nodes, reusing the storage left by a previous Clear.
func (t *Tree[T]) alloc(quads [4]geometry.Region, depth int) int {
	first := len(t.nodes)
	for _, b := range quads {
		if len(t.nodes) < cap(t.nodes) {
			t.nodes = t.nodes[:len(t.nodes)+1]
			n := &t.nodes[len(t.nodes)-1]
			n.bounds = b
			n.depth = depth
			n.children = noChildren
			n.items = n.items[:0]
			continue
		}
		t.nodes = append(t.nodes, node{bounds: b, depth: depth, children: noChildren})
	}
	return first
}

// quadrantOf returns the index of the quadrant of bounds fully containing
// region, or -1 when region straddles a split line or leaves bounds.
func quadrantOf(bounds, region geometry.Region) int {
	for i, q := range bounds.Quadrants() {
		if q.Contains(region) {
			return i
		}
	}
	return -1
}
