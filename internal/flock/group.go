package flock

import (
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/quadtree"
)

// Group is the one simulation universe: tunables, world bounds and the
// spatial index it owns exclusively. A nil *Group is valid and makes every
// per-tick operation a no-op.
type Group struct {
	id       uint32
	count    int
	bounds   geometry.Region
	settings Settings
	index    *quadtree.Tree[Body]
}

func newGroup(id uint32, width, height float64, s Settings, opts ...quadtree.Option) *Group {
	bounds := geometry.Rect(0, 0, width, height)
	return &Group{
		id:       id,
		bounds:   bounds,
		settings: s,
		index:    quadtree.New[Body](bounds, opts...),
	}
}

// ID identifies the group within its lifecycle.
func (g *Group) ID() uint32 { return g.id }

// Count is the number of boids indexed by the last rebuild.
func (g *Group) Count() int { return g.count }

// Bounds is the world box the group was created for.
func (g *Group) Bounds() geometry.Region { return g.bounds }

// Settings returns the current tunables.
func (g *Group) Settings() Settings { return g.settings }

// Tune replaces the tunables. Call it between ticks only.
func (g *Group) Tune(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	g.settings = s
	return nil
}

// Regions exposes the current index partition for debug overlays.
func (g *Group) Regions() []geometry.Region {
	return g.index.Regions()
}

// Registry is the write side of one rebuild. It is only valid until Freeze.
type Registry struct {
	group *Group
}

// Rebuild clears the index and starts a new build. Every handle issued by
// the previous build becomes stale.
func (g *Group) Rebuild() *Registry {
	g.index.Clear()
	g.count = 0
	return &Registry{group: g}
}

// Add indexes one boid and stores the fresh handle in its collider.
// Add is safe for concurrent use.
func (r *Registry) Add(owner EntityID, pos, vel geometry.Vector3, c *Collider) {
	c.Handle = r.group.index.Insert(c.Region(pos), Body{
		Owner:    owner,
		Position: pos,
		Velocity: vel,
	})
}

// Freeze ends the build and returns the read-only view queried by the
// force phase.
func (r *Registry) Freeze() Neighbourhood {
	r.group.count = r.group.index.Len()
	return r.group.index.View()
}
