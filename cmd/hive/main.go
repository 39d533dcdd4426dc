package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/simulation"
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/viewer"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

func main() {
	configFile := flag.String("config", "", "JSON config file (defaults are used when empty)")
	schemaFile := flag.String("schema", "", "JSON schema overriding the embedded one")
	verbose := flag.Bool("v", false, "log actor system messages at debug level")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			stdlog.Fatal(err)
		}
	}
	settings, err := cfg.Settings()
	if err != nil {
		stdlog.Fatal(err)
	}

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := simulation.Start(ctx, cfg, log.New(level, os.Stdout))
	if err != nil {
		stdlog.Fatal(err)
	}
	defer engine.Stop(context.Background())

	go func() {
		if err := engine.Run(ctx); err != nil {
			stdlog.Printf("clock stopped: %v", err)
		}
	}()

	world := geometry.Rect(0, 0, cfg.WorldWidth, cfg.WorldHeight)
	game := viewer.NewGame(ctx, engine, engine.Snapshots, world, settings, screenWidth, screenHeight)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Swarm Hive")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		stdlog.Fatal(err)
	}
}
