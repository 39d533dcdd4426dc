package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
)

// HiveActor owns the hive. Every tick, tuning and spawn request goes through
// its mailbox, so the simulation never sees two of them at once.
type HiveActor struct {
	cfg  *Config
	hive *hive.Hive
	// Communication with UI
	snapshotCh chan<- *hive.Snapshot

	// --- Benchmark Stats ---
	tickCount   int
	lastLogTime time.Time
}

// NewHiveActor creates the simulation unit. Snapshots are pushed to
// snapshotCh after every tick; a nil channel disables them.
func NewHiveActor(cfg *Config, snapshotCh chan<- *hive.Snapshot) *HiveActor {
	return &HiveActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (a *HiveActor) PreStart(ctx *actor.Context) error {
	logger := ctx.ActorSystem().Logger()
	opts, err := a.cfg.HiveOptions(logger)
	if err != nil {
		return err
	}
	a.hive = hive.New(opts...)
	logger.Infof("%s is preparing a %.0fx%.0f hive", ctx.ActorName(), a.cfg.WorldWidth, a.cfg.WorldHeight)
	return nil
}

func (a *HiveActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		a.hive.LoadLevel(a.cfg.WorldWidth, a.cfg.WorldHeight)
		if err := a.hive.SpawnRandom(a.cfg.InitialBoids); err != nil {
			ctx.Logger().Errorf("initial spawn failed: %v", err)
		}
		ctx.Logger().Infof("Hive started with %d bees", a.hive.Len())
		a.pushSnapshot()

	// The Main Simulation Step (Driven by the clock)
	case *durationpb.Duration:
		a.logBenchmarks(ctx)
		a.hive.Step(msg.AsDuration().Seconds())
		a.tickCount++
		a.pushSnapshot()

	// Tuning from the UI panel
	case *structpb.Struct:
		s, err := applyTuning(a.hive.Settings(), msg)
		if err == nil {
			err = a.hive.Tune(s)
		}
		if err != nil {
			ctx.Logger().Warnf("ignoring tuning: %v", err)
		}

	case *wrapperspb.UInt32Value:
		if err := a.hive.SpawnRandom(int(msg.GetValue())); err != nil {
			ctx.Logger().Warnf("ignoring spawn: %v", err)
		}

	case *structpb.ListValue:
		pos, err := decodeSpawnAt(msg)
		if err != nil {
			ctx.Logger().Warnf("ignoring spawn: %v", err)
			return
		}
		a.hive.SpawnAt(pos)

	case *emptypb.Empty:
		ctx.Response(encodeStats(a.hive.Stats()))

	default:
		ctx.Unhandled()
	}
}

func (a *HiveActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) >= time.Second {
		st := a.hive.Stats()
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Bees: %d | Indexed: %d",
			a.tickCount, st.Boids, st.Indexed)
		a.tickCount = 0
		a.lastLogTime = time.Now()
	}
}

func (a *HiveActor) pushSnapshot() {
	if a.snapshotCh == nil {
		return
	}
	select {
	case a.snapshotCh <- a.hive.Snapshot():
	default:
		// UI busy, skip frame
	}
}

func (a *HiveActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Hive is shutdown after %d ticks", a.hive.Tick())
	return nil
}
