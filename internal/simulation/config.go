package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/quadtree"
)

//go:embed config.schema.json
var configSchema string

const schemaURL = "config.schema.json"

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Scheduling
	TickRate float64 `json:"tickRate"` // simulation steps per second
	Workers  int     `json:"workers"`  // 0 means one per CPU

	// Population
	InitialBoids   int     `json:"initialBoids"`
	ColliderRadius float64 `json:"colliderRadius"`
	Seed           uint64  `json:"seed"`

	// Flocking
	Separation   float64 `json:"separation"`
	Alignment    float64 `json:"alignment"`
	Cohesion     float64 `json:"cohesion"`
	Speed        float64 `json:"speed"`
	Vision       float64 `json:"vision"`
	BorderMargin float64 `json:"borderMargin"`
	Model        string  `json:"model"`

	// Spatial index
	IndexCapacity int `json:"indexCapacity"`
	IndexMaxDepth int `json:"indexMaxDepth"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:     3840,
		WorldHeight:    2160,
		TickRate:       90,
		Workers:        0,
		InitialBoids:   1000,
		ColliderRadius: hive.DefaultColliderRadius,
		Seed:           1,
		Separation:     flock.DefaultSeparation,
		Alignment:      flock.DefaultAlignment,
		Cohesion:       flock.DefaultCohesion,
		Speed:          flock.DefaultSpeed,
		Vision:         flock.DefaultVision,
		BorderMargin:   flock.DefaultMargin,
		Model:          string(flock.DirectionBlend),
		IndexCapacity:  quadtree.DefaultCapacity,
		IndexMaxDepth:  quadtree.DefaultMaxDepth,
	}
}

// LoadConfig reads configFile, validates it against the schema and returns
// it merged over DefaultConfig. An empty schemaFile uses the embedded schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	var (
		sch *jsonschema.Schema
		err error
	)
	if schemaFile == "" {
		sch, err = jsonschema.CompileString(schemaURL, configSchema)
	} else {
		sch, err = jsonschema.Compile(schemaFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal over the defaults, missing keys keep their default
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the constraints a hand-built Config must meet.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", c.WorldWidth, c.WorldHeight)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %v", c.TickRate)
	}
	if c.InitialBoids < 0 {
		return fmt.Errorf("initialBoids must not be negative, got %d", c.InitialBoids)
	}
	if c.ColliderRadius <= 0 {
		return fmt.Errorf("colliderRadius must be positive, got %v", c.ColliderRadius)
	}
	s, err := c.Settings()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid flocking settings: %w", err)
	}
	return nil
}

// Settings returns the flocking tunables of the config.
func (c *Config) Settings() (flock.Settings, error) {
	model, err := flock.ParseModel(c.Model)
	if err != nil {
		return flock.Settings{}, err
	}
	return flock.Settings{
		Separation: c.Separation,
		Alignment:  c.Alignment,
		Cohesion:   c.Cohesion,
		Speed:      c.Speed,
		Vision:     c.Vision,
		Margin:     c.BorderMargin,
		Model:      model,
	}, nil
}

// HiveOptions turns the config into options for hive.New.
func (c *Config) HiveOptions(logger log.Logger) ([]hive.Option, error) {
	s, err := c.Settings()
	if err != nil {
		return nil, err
	}
	return []hive.Option{
		hive.WithSettings(s),
		hive.WithColliderRadius(c.ColliderRadius),
		hive.WithWorkers(c.Workers),
		hive.WithSeed(c.Seed),
		hive.WithLogger(logger),
		hive.WithIndexOptions(
			quadtree.WithCapacity(c.IndexCapacity),
			quadtree.WithMaxDepth(c.IndexMaxDepth),
		),
	}, nil
}
