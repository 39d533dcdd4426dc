package simulation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hive.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "Partial file keeps defaults",
			body: `{"worldWidth": 800, "worldHeight": 600, "vision": 120}`,
			check: func(t *testing.T, c *Config) {
				if c.WorldWidth != 800 || c.WorldHeight != 600 || c.Vision != 120 {
					t.Errorf("explicit keys not applied: %+v", c)
				}
				if c.Speed != flock.DefaultSpeed || c.TickRate != 90 || c.ColliderRadius != 5 {
					t.Errorf("missing keys lost their default: %+v", c)
				}
			},
		},
		{
			name: "Centroid model",
			body: `{"model": "centroid"}`,
			check: func(t *testing.T, c *Config) {
				s, err := c.Settings()
				if err != nil || s.Model != flock.CentroidBlend {
					t.Errorf("Settings() = %v, %v; want centroid model", s.Model, err)
				}
			},
		},
		{
			name: "Weight above one",
			body: `{"separation": 1.5}`,
			check: func(t *testing.T, c *Config) {
				s, err := c.Settings()
				if err != nil {
					t.Fatalf("Settings() error = %v", err)
				}
				// the same weight is accepted by runtime tuning
				if _, err := flock.DefaultSettings().With("separation", s.Separation); err != nil {
					t.Errorf("With(separation, %v) error = %v", s.Separation, err)
				}
			},
		},
		{name: "Negative weight", body: `{"cohesion": -0.5}`, wantErr: "validation"},
		{name: "Negative speed", body: `{"speed": -1}`, wantErr: "validation"},
		{name: "Unknown key", body: `{"gravity": 9.81}`, wantErr: "validation"},
		{name: "Unknown model", body: `{"model": "swirl"}`, wantErr: "validation"},
		{name: "Broken json", body: `{"worldWidth": `, wantErr: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.body), "")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadConfig() error = %v; want one mentioning %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"), ""); err == nil {
		t.Error("LoadConfig on a missing file returned no error")
	}
}

func TestLoadConfig_SampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "config", "hive.json"),
		filepath.Join("..", "..", "config", "config.schema.json"))
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if cfg.InitialBoids != 1000 {
		t.Errorf("InitialBoids = %d; want 1000", cfg.InitialBoids)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Defaults", func(*Config) {}, true},
		{"Zero width", func(c *Config) { c.WorldWidth = 0 }, false},
		{"Zero tick rate", func(c *Config) { c.TickRate = 0 }, false},
		{"Zero collider", func(c *Config) { c.ColliderRadius = 0 }, false},
		{"Negative vision", func(c *Config) { c.Vision = -5 }, false},
		{"Bad model", func(c *Config) { c.Model = "swirl" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v; want ok=%v", err, tt.ok)
			}
		})
	}
}
