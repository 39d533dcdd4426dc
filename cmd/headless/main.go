package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/tochemey/goakt/v3/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/simulation"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

type runStats struct {
	runIndex int
	seed     uint64

	elapsed  time.Duration
	ticks    int
	boids    int
	escaped  int
	centroid geometry.Coord
	spread   float64
	density  float64
	regions  int
}

func main() {
	var (
		configFile string
		runs       int
		ticks      int
		seedBase   uint64
		seedStep   uint64
		boids      int
		workers    int
		model      string
		dump       string
		verbose    bool
	)

	flag.StringVar(&configFile, "config", "", "JSON config file (defaults are used when empty)")
	flag.IntVar(&runs, "runs", 3, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 900, "ticks per run")
	flag.Uint64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Uint64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&boids, "boids", -1, "bees to spawn (overrides the config when >= 0)")
	flag.IntVar(&workers, "workers", -1, "steering goroutines (overrides the config when >= 0)")
	flag.StringVar(&model, "model", "", "flocking model: direction or centroid (overrides the config)")
	flag.StringVar(&dump, "dump", "", "write the final snapshot of the last run to this msgpack file")
	flag.BoolVar(&verbose, "v", false, "log hive events")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile, ""); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}
	if boids >= 0 {
		cfg.InitialBoids = boids
	}
	if workers >= 0 {
		cfg.Workers = workers
	}
	if model != "" {
		cfg.Model = model
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	logger := log.DiscardLogger
	if verbose {
		logger = log.New(log.InfoLevel, os.Stdout)
	}

	fmt.Printf("=== Headless Hive Report ===\n")
	fmt.Printf("world=%.0fx%.0f boids=%d model=%s runs=%d ticks=%d dt=1/%.0f seed_base=%d seed_step=%d\n\n",
		cfg.WorldWidth, cfg.WorldHeight, cfg.InitialBoids, cfg.Model, runs, ticks, cfg.TickRate, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	var last *hive.Snapshot
	for i := 0; i < runs; i++ {
		cfg.Seed = seedBase + uint64(i)*seedStep
		stats, snap, err := runHive(i+1, cfg, ticks, logger)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, stats)
		last = snap
		printRun(stats)
	}
	printAggregate(all)

	if dump != "" {
		if err := writeSnapshot(dump, last); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nsnapshot of tick %d written to %s\n", last.Tick, dump)
	}
}

func runHive(runIndex int, cfg *simulation.Config, ticks int, logger log.Logger) (runStats, *hive.Snapshot, error) {
	opts, err := cfg.HiveOptions(logger)
	if err != nil {
		return runStats{}, nil, err
	}
	h := hive.New(opts...)
	h.LoadLevel(cfg.WorldWidth, cfg.WorldHeight)
	if err := h.SpawnRandom(cfg.InitialBoids); err != nil {
		return runStats{}, nil, err
	}

	dt := 1 / cfg.TickRate
	start := time.Now()
	for i := 0; i < ticks; i++ {
		h.Step(dt)
	}
	elapsed := time.Since(start)

	snap := h.Snapshot()
	stats := runStats{
		runIndex: runIndex,
		seed:     cfg.Seed,
		elapsed:  elapsed,
		ticks:    ticks,
		boids:    len(snap.Boids),
		regions:  len(snap.Regions),
	}

	var sumX, sumY float64
	for _, b := range snap.Boids {
		sumX += b.X
		sumY += b.Y
		if !snap.Bounds.ContainsPoint(geometry.Coord{X: b.X, Y: b.Y}) {
			stats.escaped++
		}
	}
	if n := float64(len(snap.Boids)); n > 0 {
		stats.centroid = geometry.Coord{X: sumX / n, Y: sumY / n}
		var sq float64
		for _, b := range snap.Boids {
			dx, dy := b.X-stats.centroid.X, b.Y-stats.centroid.Y
			sq += dx*dx + dy*dy
		}
		stats.spread = math.Sqrt(sq / n)
	}

	// density as seen by the index of the last step, which lags the final
	// positions by one move
	var seen int
	for _, b := range snap.Boids {
		seen += len(h.Pick(geometry.Coord{X: b.X, Y: b.Y}, snap.Vision))
	}
	if len(snap.Boids) > 0 {
		stats.density = float64(seen) / float64(len(snap.Boids))
	}
	return stats, snap, nil
}

func printRun(s runStats) {
	tps := float64(s.ticks) / s.elapsed.Seconds()
	fmt.Printf("run %d seed=%d: %d ticks in %s (%.0f ticks/s)\n", s.runIndex, s.seed, s.ticks, s.elapsed.Round(time.Millisecond), tps)
	fmt.Printf("  boids=%d escaped=%d regions=%d\n", s.boids, s.escaped, s.regions)
	fmt.Printf("  centroid=(%.1f, %.1f) spread=%.1f mean_density=%.2f\n\n", s.centroid.X, s.centroid.Y, s.spread, s.density)
}

func printAggregate(all []runStats) {
	var elapsed time.Duration
	var ticks, escaped int
	var spread, density float64
	for _, s := range all {
		elapsed += s.elapsed
		ticks += s.ticks
		escaped += s.escaped
		spread += s.spread
		density += s.density
	}
	n := float64(len(all))
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("ticks/s=%.0f escaped_total=%d mean_spread=%.1f mean_density=%.2f\n",
		float64(ticks)/elapsed.Seconds(), escaped, spread/n, density/n)
}

func writeSnapshot(path string, snap *hive.Snapshot) error {
	b, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
