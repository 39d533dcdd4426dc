package hive

import "github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"

// Velocity is the per-boid velocity component.
type Velocity struct {
	geometry.Vector3
}

// Boid tags entities that take part in flocking.
type Boid struct{}

// Bee tags entities spawned as bees.
type Bee struct{}
