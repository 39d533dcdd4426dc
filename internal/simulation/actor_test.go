package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.WorldWidth = 800
	cfg.WorldHeight = 600
	cfg.InitialBoids = 50
	cfg.Workers = 2
	return cfg
}

// nextSnapshot waits for a snapshot matching keep.
func nextSnapshot(t *testing.T, ch <-chan *hive.Snapshot, keep func(*hive.Snapshot) bool) *hive.Snapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-ch:
			if keep(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for a snapshot")
			return nil
		}
	}
}

func TestHiveActor_TickPushesSnapshot(t *testing.T) {
	// 1. Setup
	ctx := context.Background()
	engine, err := Start(ctx, testConfig(), log.DiscardLogger)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() { _ = engine.Stop(ctx) }()

	first := nextSnapshot(t, engine.Snapshots, func(*hive.Snapshot) bool { return true })
	if first.Tick != 0 || len(first.Boids) != 50 {
		t.Fatalf("startup snapshot: tick %d, %d boids; want tick 0, 50 boids", first.Tick, len(first.Boids))
	}
	if first.Bounds != geometry.Rect(0, 0, 800, 600) {
		t.Errorf("snapshot bounds = %v", first.Bounds)
	}

	// 2. Execute
	if err := engine.Tell(ctx, NewTick(time.Second/90)); err != nil {
		t.Fatalf("Tell(tick) error = %v", err)
	}

	// 3. Verify
	snap := nextSnapshot(t, engine.Snapshots, func(s *hive.Snapshot) bool { return s.Tick == 1 })
	if len(snap.Boids) != 50 {
		t.Errorf("tick snapshot has %d boids; want 50", len(snap.Boids))
	}
	if len(snap.Regions) == 0 {
		t.Error("tick snapshot carries no index regions")
	}
}

func TestHiveActor_TuneSpawnInspect(t *testing.T) {
	// 1. Setup
	ctx := context.Background()
	engine, err := Start(ctx, testConfig(), log.DiscardLogger)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() { _ = engine.Stop(ctx) }()

	// 2. Execute
	msgs := []struct {
		name string
		err  error
	}{
		{"tune", engine.Tell(ctx, NewTuning(map[string]float64{"vision": 250}))},
		{"bad tune", engine.Tell(ctx, NewTuning(map[string]float64{"speed": -4}))},
		{"spawn", engine.Tell(ctx, NewSpawn(10))},
		{"spawn at", engine.Tell(ctx, NewSpawnAt(geometry.Coord{X: 400, Y: 300}))},
		{"tick", engine.Tell(ctx, NewTick(time.Second/90))},
	}
	for _, m := range msgs {
		if m.err != nil {
			t.Fatalf("Tell(%s) error = %v", m.name, m.err)
		}
	}

	// 3. Verify
	st, err := engine.Inspect(ctx, 5*time.Second)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if st.Boids != 61 || st.Indexed != 61 {
		t.Errorf("stats boids = %d, indexed = %d; want 61", st.Boids, st.Indexed)
	}
	if st.Settings.Vision != 250 {
		t.Errorf("vision = %v; want 250", st.Settings.Vision)
	}
	if st.Settings.Speed != DefaultConfig().Speed {
		t.Errorf("invalid tuning was applied: speed = %v", st.Settings.Speed)
	}
	if st.Tick != 1 {
		t.Errorf("tick = %d; want 1", st.Tick)
	}
}

func TestRunClock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	engine, err := Start(ctx, testConfig(), log.DiscardLogger)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() { _ = engine.Stop(context.Background()) }()

	done := make(chan error, 1)
	go func() { done <- engine.Run(ctx) }()

	nextSnapshot(t, engine.Snapshots, func(s *hive.Snapshot) bool { return s.Tick >= 3 })
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() after cancel = %v; want nil", err)
	}
}

func TestRunClock_RejectsBadRate(t *testing.T) {
	if err := RunClock(context.Background(), nil, 0); err == nil {
		t.Error("RunClock accepted a zero rate")
	}
}
