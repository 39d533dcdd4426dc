// Package hive holds the boid entities and runs the flocking tick over them.
//
// Entities live in an ark ECS world. A tick runs three phases that never
// overlap: the spatial index is rebuilt from every boid, every boid is steered
// against the frozen index (in parallel), then every boid is moved.
package hive

import (
	"errors"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

// ErrNoGroup is returned by operations that need world bounds before the
// level has been loaded.
var ErrNoGroup = errors.New("hive: no boid group, load a level first")

// minChunk keeps tiny flocks on a single goroutine.
const minChunk = 64

type job struct {
	transform *flock.Transform
	velocity  *Velocity
	collider  *flock.Collider
}

// Hive owns the ECS world and the boid group lifecycle.
// It is not safe for concurrent use; the simulation actor serializes access.
type Hive struct {
	log       log.Logger
	world     *ecs.World
	bees      *ecs.Map5[flock.Transform, Velocity, flock.Collider, Boid, Bee]
	boids     *ecs.Filter4[flock.Transform, Velocity, flock.Collider, Boid]
	lifecycle *flock.Lifecycle
	rng       *rand.Rand
	radius    float64
	workers   int
	settings  flock.Settings

	tick uint64
	jobs []job
	view flock.Neighbourhood
}

// New returns an empty hive. No group exists until LoadLevel.
func New(opts ...Option) *Hive {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = defaultOptions().workers
	}

	w := ecs.NewWorld()
	world := &w
	return &Hive{
		log:       o.logger,
		world:     world,
		bees:      ecs.NewMap5[flock.Transform, Velocity, flock.Collider, Boid, Bee](world),
		boids:     ecs.NewFilter4[flock.Transform, Velocity, flock.Collider, Boid](world),
		lifecycle: flock.NewLifecycle(o.index...),
		rng:       rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15)),
		radius:    o.radius,
		workers:   o.workers,
		settings:  o.settings,
	}
}

// LoadLevel creates the boid group for a world of the given size. Only the
// first call has an effect; it reports whether the group was created.
func (h *Hive) LoadLevel(width, height float64) bool {
	g, created := h.lifecycle.Create(width, height, h.settings)
	if created {
		h.log.Infof("boid group %d created for a %.0fx%.0f world", g.ID(), width, height)
	}
	return created
}

// Group returns the boid group, or nil before LoadLevel.
func (h *Hive) Group() *flock.Group {
	return h.lifecycle.Group()
}

// Tick is the number of completed steps.
func (h *Hive) Tick() uint64 { return h.tick }

// Len is the number of boid entities, indexed or not.
func (h *Hive) Len() int {
	query := h.boids.Query()
	n := query.Count()
	query.Close()
	return n
}

// Step advances the simulation by dt seconds. Without a group it does nothing.
func (h *Hive) Step(dt float64) {
	g := h.lifecycle.Group()
	if g == nil {
		return
	}

	// rebuild
	reg := g.Rebuild()
	h.jobs = h.jobs[:0]
	query := h.boids.Query()
	for query.Next() {
		tr, vel, col, _ := query.Get()
		reg.Add(flock.EntityID(query.Entity().ID()), tr.Position, vel.Vector3, col)
		h.jobs = append(h.jobs, job{transform: tr, velocity: vel, collider: col})
	}
	view := reg.Freeze()
	h.view = view

	// steer: each job only writes its own velocity
	var eg errgroup.Group
	eg.SetLimit(h.workers)
	chunk := max(minChunk, (len(h.jobs)+h.workers-1)/h.workers)
	for lo := 0; lo < len(h.jobs); lo += chunk {
		part := h.jobs[lo:min(lo+chunk, len(h.jobs))]
		eg.Go(func() error {
			for _, j := range part {
				j.velocity.Vector3 = g.Steer(view, j.transform.Position, j.velocity.Vector3, *j.collider)
			}
			return nil
		})
	}
	// steering never fails
	_ = eg.Wait()

	// move
	for _, j := range h.jobs {
		*j.transform = g.Move(*j.transform, j.velocity.Vector3, dt)
	}
	h.tick++
}

// Tune replaces the group tunables. Before LoadLevel the new settings are
// kept for the group to be created with.
func (h *Hive) Tune(s flock.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	h.settings = s
	if g := h.lifecycle.Group(); g != nil {
		return g.Tune(s)
	}
	return nil
}

// Settings returns the tunables in effect.
func (h *Hive) Settings() flock.Settings {
	if g := h.lifecycle.Group(); g != nil {
		return g.Settings()
	}
	return h.settings
}

// SpawnBee adds one bee at pos moving with vel.
func (h *Hive) SpawnBee(pos geometry.Coord, vel geometry.Vector3) flock.EntityID {
	tr := flock.Transform{Position: geometry.NewVector(pos.X, pos.Y, flock.RenderDepth)}
	v := Velocity{Vector3: vel}
	col := flock.NewCollider(h.radius)
	e := h.bees.NewEntity(&tr, &v, &col, &Boid{}, &Bee{})
	return flock.EntityID(e.ID())
}

// SpawnAt adds one bee at pos with a random velocity in [-1,1) on each axis.
func (h *Hive) SpawnAt(pos geometry.Coord) flock.EntityID {
	return h.SpawnBee(pos, h.randomVelocity())
}

// SpawnRandom adds n bees spread uniformly over the world, keeping them out
// of the border margin.
func (h *Hive) SpawnRandom(n int) error {
	g := h.lifecycle.Group()
	if g == nil {
		return ErrNoGroup
	}
	area := g.Bounds().WithMargin(-g.Settings().Margin)
	for i := 0; i < n; i++ {
		pos := geometry.Coord{
			X: area.Min.X + h.rng.Float64()*area.Width(),
			Y: area.Min.Y + h.rng.Float64()*area.Height(),
		}
		h.SpawnAt(pos)
	}
	h.log.Debugf("spawned %d bees", n)
	return nil
}

func (h *Hive) randomVelocity() geometry.Vector3 {
	return geometry.NewVector(h.rng.Float64()*2-1, h.rng.Float64()*2-1, 0)
}

// Pick returns the boids whose collider, as indexed by the last step,
// overlaps the box of half side radius around point.
func (h *Hive) Pick(point geometry.Coord, radius float64) []flock.EntityID {
	if h.view == nil {
		return nil
	}
	var out []flock.EntityID
	h.view.Visit(geometry.Around(point, radius), func(b flock.Body) {
		out = append(out, b.Owner)
	})
	return out
}
