package hive

import (
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

// BoidState is what the renderer needs to draw one boid.
type BoidState struct {
	ID       uint32  `msgpack:"id"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Rotation float64 `msgpack:"rot"`
}

// Snapshot is an immutable copy of the hive after a step.
type Snapshot struct {
	Tick     uint64            `msgpack:"tick"`
	GroupID  uint32            `msgpack:"group"`
	Bounds   geometry.Region   `msgpack:"bounds"`
	Boids    []BoidState       `msgpack:"boids"`
	Regions  []geometry.Region `msgpack:"regions"`
	Vision   float64           `msgpack:"vision"`
	Settings flock.Settings    `msgpack:"settings"`
}

// Snapshot copies the current state. Boids appear in ECS iteration order.
func (h *Hive) Snapshot() *Snapshot {
	snap := &Snapshot{Tick: h.tick, Settings: h.Settings()}
	snap.Vision = snap.Settings.Vision
	if g := h.lifecycle.Group(); g != nil {
		snap.GroupID = g.ID()
		snap.Bounds = g.Bounds()
		snap.Regions = g.Regions()
	}

	query := h.boids.Query()
	snap.Boids = make([]BoidState, 0, query.Count())
	for query.Next() {
		tr, _, _, _ := query.Get()
		snap.Boids = append(snap.Boids, BoidState{
			ID:       query.Entity().ID(),
			X:        tr.Position.X,
			Y:        tr.Position.Y,
			Rotation: tr.Rotation,
		})
	}
	return snap
}

// Stats is a summary of the hive for inspection.
type Stats struct {
	Tick     uint64
	GroupID  uint32
	Boids    int
	Indexed  int
	Settings flock.Settings
}

func (h *Hive) Stats() Stats {
	st := Stats{Tick: h.tick, Boids: h.Len(), Settings: h.Settings()}
	if g := h.lifecycle.Group(); g != nil {
		st.GroupID = g.ID()
		st.Indexed = g.Count()
	}
	return st
}
