package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
)

// HiveActorName is the name the hive actor is spawned under.
const HiveActorName = "hive"

// Engine bundles the actor system, the hive actor and its snapshot feed.
type Engine struct {
	System    actor.ActorSystem
	PID       *actor.PID
	Snapshots <-chan *hive.Snapshot
	cfg       *Config
}

// Start boots an actor system and spawns the hive actor in it.
func Start(ctx context.Context, cfg *Config, logger log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	system, err := actor.NewActorSystem("SwarmHive",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking
	snapshotCh := make(chan *hive.Snapshot, 10)
	pid, err := system.Spawn(ctx, HiveActorName, NewHiveActor(cfg, snapshotCh))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn hive: %w", err)
	}

	return &Engine{
		System:    system,
		PID:       pid,
		Snapshots: snapshotCh,
		cfg:       cfg,
	}, nil
}

// Run drives the hive at the configured tick rate until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	return RunClock(ctx, e.PID, e.cfg.TickRate)
}

// Tell sends a fire-and-forget message to the hive.
func (e *Engine) Tell(ctx context.Context, msg proto.Message) error {
	return actor.Tell(ctx, e.PID, msg)
}

// Inspect asks the hive for its stats.
func (e *Engine) Inspect(ctx context.Context, timeout time.Duration) (hive.Stats, error) {
	reply, err := actor.Ask(ctx, e.PID, NewInspect(), timeout)
	if err != nil {
		return hive.Stats{}, fmt.Errorf("failed to inspect hive: %w", err)
	}
	st, ok := reply.(*structpb.Struct)
	if !ok {
		return hive.Stats{}, fmt.Errorf("unexpected inspect reply %T", reply)
	}
	return DecodeStats(st), nil
}

func (e *Engine) Stop(ctx context.Context) error {
	return e.System.Stop(ctx)
}
