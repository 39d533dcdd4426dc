package hive

import (
	"errors"
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

// velocities reads the Velocity component of every boid in query order.
func velocities(h *Hive) []geometry.Vector3 {
	var out []geometry.Vector3
	query := h.boids.Query()
	for query.Next() {
		_, vel, _, _ := query.Get()
		out = append(out, vel.Vector3)
	}
	return out
}

func TestNew_SpawnedBeesAreQueryable(t *testing.T) {
	h := New()
	vel := geometry.NewVector(0.5, -0.25, 0)
	h.SpawnBee(geometry.Coord{X: 10, Y: 20}, vel)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", h.Len())
	}
	if got := velocities(h); !slices.Equal(got, []geometry.Vector3{vel}) {
		t.Errorf("velocities = %v; want [%v]", got, vel)
	}
	b := h.Snapshot().Boids[0]
	if b.X != 10 || b.Y != 20 {
		t.Errorf("boid at (%v, %v); want (10, 20)", b.X, b.Y)
	}
}

func TestStep_NoGroupIsNoOp(t *testing.T) {
	h := New(WithSeed(3))
	for i := 0; i < 10; i++ {
		h.SpawnAt(geometry.Coord{X: float64(100 + i*10), Y: 100})
	}
	before := h.Snapshot()
	beforeVel := velocities(h)

	h.Step(1.0 / 90)

	after := h.Snapshot()
	if after.Tick != 0 {
		t.Errorf("Tick = %d; want 0 without a group", after.Tick)
	}
	if !slices.Equal(before.Boids, after.Boids) {
		t.Error("boids moved without a group")
	}
	if afterVel := velocities(h); !slices.Equal(beforeVel, afterVel) {
		t.Errorf("velocities changed without a group: %v -> %v", beforeVel, afterVel)
	}
}

func TestSpawnRandom_NeedsGroup(t *testing.T) {
	h := New()
	if err := h.SpawnRandom(5); !errors.Is(err, ErrNoGroup) {
		t.Errorf("SpawnRandom before LoadLevel error = %v; want ErrNoGroup", err)
	}
}

func TestSpawnRandom_StaysOffTheBorder(t *testing.T) {
	h := New(WithSeed(42))
	h.LoadLevel(400, 300)
	if err := h.SpawnRandom(500); err != nil {
		t.Fatalf("SpawnRandom error = %v", err)
	}
	if h.Len() != 500 {
		t.Fatalf("Len() = %d; want 500", h.Len())
	}
	inner := geometry.Rect(flock.DefaultMargin, flock.DefaultMargin, 400-flock.DefaultMargin, 300-flock.DefaultMargin)
	for _, b := range h.Snapshot().Boids {
		if !inner.ContainsPoint(geometry.Coord{X: b.X, Y: b.Y}) {
			t.Errorf("boid %d spawned at (%.1f, %.1f), outside %v", b.ID, b.X, b.Y, inner)
		}
	}
}

func TestLoadLevel_Latch(t *testing.T) {
	h := New()
	if h.Group() != nil {
		t.Fatal("Group() before LoadLevel should be nil")
	}
	if !h.LoadLevel(3840, 2160) {
		t.Fatal("first LoadLevel did not create the group")
	}
	if h.LoadLevel(100, 100) {
		t.Error("second LoadLevel created another group")
	}
	if got := h.Group().Bounds(); got != geometry.Rect(0, 0, 3840, 2160) {
		t.Errorf("group bounds = %v; want the first level size", got)
	}
}

func TestStep_MovesAndPinsDepth(t *testing.T) {
	h := New()
	h.LoadLevel(3840, 2160)
	h.SpawnBee(geometry.Coord{X: 1000, Y: 1000}, geometry.NewVector(1, 0, 0))

	h.Step(0.5)

	snap := h.Snapshot()
	if snap.Tick != 1 {
		t.Errorf("Tick = %d; want 1", snap.Tick)
	}
	b := snap.Boids[0]
	wantX := 1000 + flock.DefaultSpeed*0.5
	if b.X != wantX || b.Y != 1000 {
		t.Errorf("boid at (%v, %v); want (%v, 1000)", b.X, b.Y, wantX)
	}
	if h.Group().Count() != 1 {
		t.Errorf("group Count() = %d; want 1", h.Group().Count())
	}
}

func TestStep_ParallelMatchesSerial(t *testing.T) {
	run := func(workers int) *Snapshot {
		h := New(WithSeed(11), WithWorkers(workers))
		h.LoadLevel(800, 600)
		if err := h.SpawnRandom(600); err != nil {
			t.Fatalf("SpawnRandom error = %v", err)
		}
		for i := 0; i < 20; i++ {
			h.Step(1.0 / 90)
		}
		return h.Snapshot()
	}

	serial := run(1)
	parallel := run(8)
	if !slices.Equal(serial.Boids, parallel.Boids) {
		t.Error("parallel steering produced a different flock than serial steering")
	}
}

func TestPick(t *testing.T) {
	h := New()
	h.LoadLevel(3840, 2160)
	a := h.SpawnBee(geometry.Coord{X: 500, Y: 500}, geometry.Zero)
	h.SpawnBee(geometry.Coord{X: 900, Y: 900}, geometry.Zero)

	if got := h.Pick(geometry.Coord{X: 500, Y: 500}, 2); got != nil {
		t.Errorf("Pick before the first step = %v; want nil", got)
	}
	h.Step(1.0 / 90)
	got := h.Pick(geometry.Coord{X: 502, Y: 498}, 2)
	if !slices.Equal(got, []flock.EntityID{a}) {
		t.Errorf("Pick = %v; want [%d]", got, a)
	}
}

func TestTune(t *testing.T) {
	h := New()
	s := flock.DefaultSettings()
	s.Vision = 200
	if err := h.Tune(s); err != nil {
		t.Fatalf("Tune before LoadLevel error = %v", err)
	}
	h.LoadLevel(100, 100)
	if got := h.Group().Settings().Vision; got != 200 {
		t.Errorf("group created with vision %v; want 200", got)
	}

	s.Speed = -1
	if err := h.Tune(s); err == nil {
		t.Error("Tune accepted a negative speed")
	}
	if got := h.Settings().Speed; got != flock.DefaultSpeed {
		t.Errorf("rejected tuning leaked: speed = %v", got)
	}
}

func TestStats(t *testing.T) {
	h := New()
	h.LoadLevel(3840, 2160)
	h.SpawnAt(geometry.Coord{X: 10, Y: 10})
	h.SpawnAt(geometry.Coord{X: 20, Y: 20})
	h.Step(1.0 / 90)

	st := h.Stats()
	if st.Boids != 2 || st.Indexed != 2 || st.Tick != 1 || st.GroupID == 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func BenchmarkStep(b *testing.B) {
	h := New(WithSeed(1))
	h.LoadLevel(3840, 2160)
	if err := h.SpawnRandom(5000); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		h.Step(1.0 / 90)
	}
}
