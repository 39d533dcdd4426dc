package viewer

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-hive/pkg/geometry"
)

// camera maps world coordinates (y up) to screen pixels (y down), fitting the
// whole world inside the screen.
type camera struct {
	world            geometry.Region
	scale            float64
	offsetX          float64
	offsetY          float64
	screenW, screenH float64
}

func newCamera(world geometry.Region, screenW, screenH float64) camera {
	c := camera{world: world, screenW: screenW, screenH: screenH, scale: 1}
	if world.Width() > 0 && world.Height() > 0 {
		c.scale = math.Min(screenW/world.Width(), screenH/world.Height())
	}
	c.offsetX = (screenW - world.Width()*c.scale) / 2
	c.offsetY = (screenH - world.Height()*c.scale) / 2
	return c
}

func (c camera) toScreen(p geometry.Coord) (float64, float64) {
	x := c.offsetX + (p.X-c.world.Min.X)*c.scale
	y := c.offsetY + (c.world.Max.Y-p.Y)*c.scale
	return x, y
}

func (c camera) toWorld(sx, sy float64) geometry.Coord {
	return geometry.Coord{
		X: c.world.Min.X + (sx-c.offsetX)/c.scale,
		Y: c.world.Max.Y - (sy-c.offsetY)/c.scale,
	}
}

// rect returns the screen rectangle (x, y, w, h) of a world region.
func (c camera) rect(r geometry.Region) (float64, float64, float64, float64) {
	x, y := c.toScreen(geometry.Coord{X: r.Min.X, Y: r.Max.Y})
	return x, y, r.Width() * c.scale, r.Height() * c.scale
}

// facing turns a rotation (0 = world +Y) into a screen space unit direction.
func facing(rotation float64) (float64, float64) {
	// world direction is (-sin r, cos r); screen y points down
	return -math.Sin(rotation), -math.Cos(rotation)
}
