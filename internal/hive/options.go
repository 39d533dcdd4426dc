package hive

import (
	"runtime"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/quadtree"
)

// DefaultColliderRadius is the footprint of a freshly spawned bee.
const DefaultColliderRadius = 5.0

type options struct {
	settings flock.Settings
	radius   float64
	workers  int
	seed     uint64
	logger   log.Logger
	index    []quadtree.Option
}

// Option configures a Hive.
type Option func(*options)

// WithSettings sets the tunables the group is created with.
func WithSettings(s flock.Settings) Option {
	return func(o *options) { o.settings = s }
}

// WithColliderRadius sets the collider radius of spawned bees.
func WithColliderRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.radius = r
		}
	}
}

// WithWorkers bounds how many goroutines steer boids in parallel.
// Values below 1 mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithSeed fixes the random source used for spawning.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger sets the logger for group and spawn events.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIndexOptions tunes the spatial index of the group.
func WithIndexOptions(opts ...quadtree.Option) Option {
	return func(o *options) { o.index = append(o.index, opts...) }
}

func defaultOptions() options {
	return options{
		settings: flock.DefaultSettings(),
		radius:   DefaultColliderRadius,
		workers:  runtime.NumCPU(),
		seed:     1,
		logger:   log.DiscardLogger,
	}
}
