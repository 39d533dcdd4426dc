package geometry

import (
	"fmt"
	"math"
)

// Coord is a point on the world plane.
type Coord struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Region is an axis-aligned bounding box on the world plane.
// A valid Region always has Min.X <= Max.X and Min.Y <= Max.Y; build it with
// NewRegion or Around when the corners may come in any order.
type Region struct {
	Min Coord `json:"min" msgpack:"min"`
	Max Coord `json:"max" msgpack:"max"`
}

// NewRegion builds a region from two opposite corners, in any order.
func NewRegion(a, b Coord) Region {
	return Region{
		Min: Coord{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Coord{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Rect is a shortcut for NewRegion(Coord{minX, minY}, Coord{maxX, maxY}).
func Rect(minX, minY, maxX, maxY float64) Region {
	return NewRegion(Coord{X: minX, Y: minY}, Coord{X: maxX, Y: maxY})
}

// Around returns the square of half side |radius| centered on c.
func Around(c Coord, radius float64) Region {
	r := math.Abs(radius)
	return Region{
		Min: Coord{X: c.X - r, Y: c.Y - r},
		Max: Coord{X: c.X + r, Y: c.Y + r},
	}
}

func (r Region) String() string {
	return fmt.Sprintf("[(%.1f, %.1f) - (%.1f, %.1f)]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Width of the region.
func (r Region) Width() float64 { return r.Max.X - r.Min.X }

// Height of the region.
func (r Region) Height() float64 { return r.Max.Y - r.Min.Y }

// Center of the region.
func (r Region) Center() Coord {
	return Coord{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// WithMargin grows the region by m on every side. A negative margin shrinks it,
// but never past its center.
func (r Region) WithMargin(m float64) Region {
	out := Region{
		Min: Coord{X: r.Min.X - m, Y: r.Min.Y - m},
		Max: Coord{X: r.Max.X + m, Y: r.Max.Y + m},
	}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y {
		c := r.Center()
		return Region{Min: c, Max: c}
	}
	return out
}

// Intersects reports whether the two regions overlap. Touching edges count.
func (r Region) Intersects(other Region) bool {
	return r.Min.X <= other.Max.X && other.Min.X <= r.Max.X &&
		r.Min.Y <= other.Max.Y && other.Min.Y <= r.Max.Y
}

// Contains reports whether other lies entirely inside r.
func (r Region) Contains(other Region) bool {
	return other.Min.X >= r.Min.X && other.Max.X <= r.Max.X &&
		other.Min.Y >= r.Min.Y && other.Max.Y <= r.Max.Y
}

// ContainsPoint reports whether c lies inside r (edges included).
func (r Region) ContainsPoint(c Coord) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Quadrants splits r in four equal children:
// 0 = bottom left, 1 = bottom right, 2 = top left, 3 = top right.
func (r Region) Quadrants() [4]Region {
	c := r.Center()
	return [4]Region{
		{Min: r.Min, Max: c},
		{Min: Coord{X: c.X, Y: r.Min.Y}, Max: Coord{X: r.Max.X, Y: c.Y}},
		{Min: Coord{X: r.Min.X, Y: c.Y}, Max: Coord{X: c.X, Y: r.Max.Y}},
		{Min: c, Max: r.Max},
	}
}
