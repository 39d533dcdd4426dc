package geometry

import (
	"fmt"
	"math"
)

// Epsilon Precision constant.
// Lengths below Epsilon are treated as zero by Normalize and IsZero.
const (
	Epsilon = 1e-9
)

// Vector3 represents a point or a direction in the simulation space.
// X and Y are the world plane, Z is only used as a render depth.
// We use public fields because they are fundamental data, not internal state.
type Vector3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Zero is the zero vector.
var Zero = Vector3{}

// NewVector creates a new Vector3.
func NewVector(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// NewVectorPolar creates a new planar Vector3 (Z = 0) from polar coordinates.
// theta is in radians.
func NewVectorPolar(radius, theta float64) Vector3 {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	// Handle standard floating point precision issues near zero
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}
	return Vector3{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector3) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// These methods use value receivers and return new values.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector3) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// IsZero reports whether the vector length is effectively zero.
func (v Vector3) IsZero() bool {
	return v.Len() < Epsilon
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the length is effectively zero, so that callers
// summing normalized terms simply get no contribution from a degenerate one.
func (v Vector3) Normalize() Vector3 {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3) DistanceTo(other Vector3) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3) DistanceSquaredTo(other Vector3) float64 {
	return v.Sub(other).LenSqr()
}

// XY projects the vector on the world plane.
func (v Vector3) XY() Coord {
	return Coord{X: v.X, Y: v.Y}
}

// Heading returns the planar facing angle (radians) for a direction, measured
// from the +Y ("up") axis, positive counter-clockwise. A direction (0,1) gives 0,
// (1,0) gives -Pi/2.
func (v Vector3) Heading() float64 {
	return -math.Atan2(v.X, v.Y)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3) Eq(other Vector3) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}

// IsFinite reports whether every component is a finite number.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
