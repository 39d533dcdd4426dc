package flock

import (
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/quadtree"
)

// EntityID refers back to the entity a Body was built from. It never implies
// ownership: the entity may be gone by the time a stale Body is read.
type EntityID uint32

// Body is the per-tick snapshot of one boid stored in the spatial index.
// It is replaced, never mutated, on the next rebuild.
type Body struct {
	Owner    EntityID
	Position geometry.Vector3
	Velocity geometry.Vector3
}

// Neighbourhood is the frozen index the force phase reads from.
type Neighbourhood = quadtree.View[Body]

// Collider gives a boid its footprint in the index. Handle is rewritten by
// every rebuild and is only meaningful for the build it came from.
type Collider struct {
	Radius float64
	Handle quadtree.Handle
}

// NewCollider returns a collider of the given radius that is not yet indexed.
func NewCollider(radius float64) Collider {
	return Collider{Radius: radius}
}

// Region is the box of half side Radius centered on pos.
func (c Collider) Region(pos geometry.Vector3) geometry.Region {
	return geometry.Around(pos.XY(), c.Radius)
}

// Transform is where a boid is and where it faces.
// Rotation is in radians, 0 facing +Y.
type Transform struct {
	Position geometry.Vector3
	Rotation float64
}
