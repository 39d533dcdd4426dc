package simulation

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/flock"
	"github.com/lao-tseu-is-alive/go-swarm-hive/internal/hive"
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

// The hive actor speaks protobuf well-known types:
//
//	*durationpb.Duration     one simulation step of that length
//	*structpb.Struct         tuning, any subset of flock.Tunables
//	*wrapperspb.UInt32Value  spawn that many bees at random
//	*structpb.ListValue      spawn one bee at [x, y]
//	*emptypb.Empty           Ask for the hive stats, answered with a *structpb.Struct

// NewTick returns a step message of length dt.
func NewTick(dt time.Duration) *durationpb.Duration {
	return durationpb.New(dt)
}

// NewTuning returns a tuning message. Names must be in flock.Tunables.
func NewTuning(values map[string]float64) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(values))
	for k, v := range values {
		fields[k] = structpb.NewNumberValue(v)
	}
	return &structpb.Struct{Fields: fields}
}

// TuningFromSettings returns a tuning message carrying every tunable of s.
func TuningFromSettings(s flock.Settings) *structpb.Struct {
	values := make(map[string]float64, len(flock.Tunables))
	for _, name := range flock.Tunables {
		v, _ := s.Value(name)
		values[name] = v
	}
	return NewTuning(values)
}

// NewSpawn asks for n bees at random positions.
func NewSpawn(n uint32) *wrapperspb.UInt32Value {
	return wrapperspb.UInt32(n)
}

// NewSpawnAt asks for one bee at c.
func NewSpawnAt(c geometry.Coord) *structpb.ListValue {
	return &structpb.ListValue{Values: []*structpb.Value{
		structpb.NewNumberValue(c.X),
		structpb.NewNumberValue(c.Y),
	}}
}

// NewInspect asks the hive for its stats.
func NewInspect() *emptypb.Empty {
	return &emptypb.Empty{}
}

// applyTuning returns s with every field of msg applied. Any invalid field
// rejects the whole message.
func applyTuning(s flock.Settings, msg *structpb.Struct) (flock.Settings, error) {
	for name, v := range msg.GetFields() {
		num, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return s, fmt.Errorf("tunable %q is not a number", name)
		}
		next, err := s.With(name, num.NumberValue)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}

func decodeSpawnAt(msg *structpb.ListValue) (geometry.Coord, error) {
	vals := msg.GetValues()
	if len(vals) != 2 {
		return geometry.Coord{}, fmt.Errorf("spawn position needs 2 numbers, got %d values", len(vals))
	}
	x, okX := vals[0].GetKind().(*structpb.Value_NumberValue)
	y, okY := vals[1].GetKind().(*structpb.Value_NumberValue)
	if !okX || !okY {
		return geometry.Coord{}, fmt.Errorf("spawn position must be numbers")
	}
	return geometry.Coord{X: x.NumberValue, Y: y.NumberValue}, nil
}

func encodeStats(st hive.Stats) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"tick":    structpb.NewNumberValue(float64(st.Tick)),
		"group":   structpb.NewNumberValue(float64(st.GroupID)),
		"boids":   structpb.NewNumberValue(float64(st.Boids)),
		"indexed": structpb.NewNumberValue(float64(st.Indexed)),
		"model":   structpb.NewStringValue(string(st.Settings.Model)),
		"margin":  structpb.NewNumberValue(st.Settings.Margin),
	}
	for _, name := range flock.Tunables {
		v, _ := st.Settings.Value(name)
		fields[name] = structpb.NewNumberValue(v)
	}
	return &structpb.Struct{Fields: fields}
}

// DecodeStats reads the answer to an inspect message.
func DecodeStats(msg *structpb.Struct) hive.Stats {
	f := msg.GetFields()
	st := hive.Stats{
		Tick:    uint64(f["tick"].GetNumberValue()),
		GroupID: uint32(f["group"].GetNumberValue()),
		Boids:   int(f["boids"].GetNumberValue()),
		Indexed: int(f["indexed"].GetNumberValue()),
	}
	st.Settings.Model = flock.Model(f["model"].GetStringValue())
	st.Settings.Margin = f["margin"].GetNumberValue()
	for _, name := range flock.Tunables {
		// values came from a valid Settings
		st.Settings, _ = st.Settings.With(name, f[name].GetNumberValue())
	}
	return st
}
