package flock

import (
	"fmt"
	"math"
)

// Model selects how neighbour positions and velocities are blended.
type Model string

const (
	// DirectionBlend sums normalized neighbour positions and velocities, so
	// only their directions from the origin count.
	DirectionBlend Model = "direction"
	// CentroidBlend steers toward the mean neighbour position and the mean
	// neighbour velocity.
	CentroidBlend Model = "centroid"
)

// ParseModel maps a config value to a Model. The empty string is DirectionBlend.
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case "", DirectionBlend:
		return DirectionBlend, nil
	case CentroidBlend:
		return CentroidBlend, nil
	}
	return "", fmt.Errorf("unknown flocking model %q", s)
}

const (
	DefaultSeparation = 0.3
	DefaultAlignment  = 0.4
	DefaultCohesion   = 0.8
	DefaultSpeed      = 40.0
	DefaultVision     = 50.0
	DefaultMargin     = 20.0

	// RenderDepth is the z every integrated boid is pinned to.
	RenderDepth = 5.0
)

// Settings are the group wide tunables.
type Settings struct {
	Separation float64 `json:"separation" msgpack:"separation"`
	Alignment  float64 `json:"alignment" msgpack:"alignment"`
	Cohesion   float64 `json:"cohesion" msgpack:"cohesion"`
	Speed      float64 `json:"speed" msgpack:"speed"`
	Vision     float64 `json:"vision" msgpack:"vision"`
	Margin     float64 `json:"margin" msgpack:"margin"`
	Model      Model   `json:"model" msgpack:"model"`
}

// DefaultSettings returns the tunables a new hive starts with.
func DefaultSettings() Settings {
	return Settings{
		Separation: DefaultSeparation,
		Alignment:  DefaultAlignment,
		Cohesion:   DefaultCohesion,
		Speed:      DefaultSpeed,
		Vision:     DefaultVision,
		Margin:     DefaultMargin,
		Model:      DirectionBlend,
	}
}

// Validate rejects negative and non finite values.
func (s Settings) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"separation", s.Separation},
		{"alignment", s.Alignment},
		{"cohesion", s.Cohesion},
		{"speed", s.Speed},
		{"vision", s.Vision},
		{"margin", s.Margin},
	}
	for _, f := range fields {
		if err := CheckTunable(f.name, f.value); err != nil {
			return err
		}
	}
	if _, err := ParseModel(string(s.Model)); err != nil {
		return err
	}
	return nil
}

// CheckTunable reports whether v is an acceptable value for the named tunable.
func CheckTunable(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a finite non-negative number, got %v", name, v)
	}
	return nil
}

// Tunables lists the names accepted by With, in display order.
var Tunables = []string{"separation", "alignment", "cohesion", "speed", "vision"}

// With returns a copy of s with the named tunable set to v.
func (s Settings) With(name string, v float64) (Settings, error) {
	if err := CheckTunable(name, v); err != nil {
		return s, err
	}
	switch name {
	case "separation":
		s.Separation = v
	case "alignment":
		s.Alignment = v
	case "cohesion":
		s.Cohesion = v
	case "speed":
		s.Speed = v
	case "vision":
		s.Vision = v
	default:
		return s, fmt.Errorf("unknown tunable %q", name)
	}
	return s, nil
}

// Value returns the named tunable.
func (s Settings) Value(name string) (float64, bool) {
	switch name {
	case "separation":
		return s.Separation, true
	case "alignment":
		return s.Alignment, true
	case "cohesion":
		return s.Cohesion, true
	case "speed":
		return s.Speed, true
	case "vision":
		return s.Vision, true
	}
	return 0, false
}
