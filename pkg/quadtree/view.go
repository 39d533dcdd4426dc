package quadtree

import "github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"

// View is the read-only face of a Tree. Code that only needs to look up
// neighbours receives a View, so it cannot mutate the index while other
// readers are walking it.
type View[T any] interface {
	// Query returns every item whose region intersects region, each exactly
	// once, minus the excluded handles. The order is unspecified.
	Query(region geometry.Region, exclude ...Handle) []T
	// Visit calls fn for the same items Query would return, without allocating.
	Visit(region geometry.Region, fn func(T), exclude ...Handle)
	// Regions returns the bounds of every node, for debug overlays.
	Regions() []geometry.Region
	Len() int
	Bounds() geometry.Region
}

type frozen[T any] struct {
	t *Tree[T]
}

func (f frozen[T]) Query(region geometry.Region, exclude ...Handle) []T {
	return f.t.Query(region, exclude...)
}

func (f frozen[T]) Visit(region geometry.Region, fn func(T), exclude ...Handle) {
	f.t.Visit(region, fn, exclude...)
}

func (f frozen[T]) Regions() []geometry.Region { return f.t.Regions() }
func (f frozen[T]) Len() int                   { return f.t.Len() }
func (f frozen[T]) Bounds() geometry.Region    { return f.t.Bounds() }
