package flock

import (
	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

// Forces are the raw neighbour sums for one boid, before weighting.
// Under CentroidBlend, Cohesion and Alignment hold the mean neighbour
// position and velocity instead of sums of directions.
type Forces struct {
	Neighbours int
	Cohesion   geometry.Vector3
	Alignment  geometry.Vector3
	Separation geometry.Vector3
}

// VisionRegion is the window a boid at pos looks for neighbours in.
func (g *Group) VisionRegion(pos geometry.Vector3, c Collider) geometry.Region {
	return c.Region(pos).WithMargin(g.settings.Vision)
}

// Sense queries view around pos, skipping the boid's own entry, and
// accumulates the neighbour sums.
func (g *Group) Sense(view Neighbourhood, pos geometry.Vector3, c Collider) Forces {
	var f Forces
	if g == nil || view == nil {
		return f
	}

	view.Visit(g.VisionRegion(pos, c), func(n Body) {
		f.Neighbours++
		switch g.settings.Model {
		case CentroidBlend:
			f.Cohesion = f.Cohesion.Add(n.Position)
			f.Alignment = f.Alignment.Add(n.Velocity)
			f.Separation = f.Separation.Add(pos.Sub(n.Position))
		default:
			f.Cohesion = f.Cohesion.Add(n.Position.Normalize())
			f.Alignment = f.Alignment.Add(n.Velocity.Normalize())
			f.Separation = f.Separation.Add(pos.Sub(n.Position).Normalize())
		}
	}, c.Handle)

	if g.settings.Model == CentroidBlend && f.Neighbours > 0 {
		inv := 1 / float64(f.Neighbours)
		f.Cohesion = f.Cohesion.Mul(inv)
		f.Alignment = f.Alignment.Mul(inv)
	}
	return f
}

// Steer returns the boid's velocity for this tick: its current heading
// blended with the weighted neighbour forces, rescaled to the current speed,
// then bounced off the world edges. A nil group returns vel unchanged.
func (g *Group) Steer(view Neighbourhood, pos, vel geometry.Vector3, c Collider) geometry.Vector3 {
	if g == nil {
		return vel
	}
	return g.Blend(g.Sense(view, pos, c), pos, vel)
}

// Blend applies the weighted forces f to vel.
func (g *Group) Blend(f Forces, pos, vel geometry.Vector3) geometry.Vector3 {
	s := g.settings
	dir := vel.Normalize()

	switch s.Model {
	case CentroidBlend:
		if f.Neighbours > 0 {
			dir = dir.Add(f.Cohesion.Sub(pos).Normalize().Mul(s.Cohesion))
		}
	default:
		if !f.Cohesion.IsZero() {
			dir = dir.Add(f.Cohesion.Normalize().Sub(pos.Normalize()).Normalize().Mul(s.Cohesion))
		}
	}
	if !f.Alignment.IsZero() {
		dir = dir.Add(f.Alignment.Normalize().Mul(s.Alignment))
	}
	if !f.Separation.IsZero() {
		dir = dir.Add(f.Separation.Normalize().Mul(s.Separation))
	}

	next := dir.Normalize().Mul(vel.Len())
	return g.bounce(pos, vel, next)
}

// bounce flips an axis of next when the boid sits inside the margin of an
// edge and its pre-steering velocity points further out.
func (g *Group) bounce(pos, prev, next geometry.Vector3) geometry.Vector3 {
	m := g.settings.Margin
	b := g.bounds

	if (pos.X < b.Min.X+m && prev.X < 0) || (pos.X > b.Max.X-m && prev.X > 0) {
		next.X = -next.X
	}
	if (pos.Y < b.Min.Y+m && prev.Y < 0) || (pos.Y > b.Max.Y-m && prev.Y > 0) {
		next.Y = -next.Y
	}
	return next
}
