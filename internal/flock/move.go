package flock

import "github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"

// Move advances t by vel scaled by the group speed over dt seconds, turns it
// to face vel and pins it to RenderDepth. A zero velocity keeps the current
// rotation. A nil group returns t unchanged.
func (g *Group) Move(t Transform, vel geometry.Vector3, dt float64) Transform {
	if g == nil {
		return t
	}
	if dir := vel.Normalize(); !dir.IsZero() {
		t.Rotation = dir.Heading()
	}
	t.Position = t.Position.Add(vel.Mul(g.settings.Speed * dt))
	t.Position.Z = RenderDepth
	return t
}
