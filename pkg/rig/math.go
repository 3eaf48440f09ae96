package rig

import "math"

// epsilon is the floor used when normalizing near-zero vectors.
const epsilon = 1e-6

// Vec2 is a point or direction in rig-local space (y up).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns the unit vector in the direction of v.
// Near-zero vectors normalize against an epsilon floor instead of
// dividing by zero, yielding the +X axis.
func (v Vec2) Normalized() Vec2 {
	mag := v.Length()
	if mag < epsilon {
		return Vec2{1, 0}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// Affine is a 2D affine transform:
//
//	| A  C  TX |
//	| B  D  TY |
//	| 0  0  1  |
type Affine struct {
	A, B, C, D, TX, TY float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation returns a pure translation.
func Translation(v Vec2) Affine {
	return Affine{A: 1, D: 1, TX: v.X, TY: v.Y}
}

// Rotation returns a rotation by the given angle in degrees.
func Rotation(degrees float64) Affine {
	rad := Radians(degrees)
	sin, cos := math.Sincos(rad)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// Scaling returns a non-uniform scale.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Mul returns m · other (other applied first).
func (m Affine) Mul(other Affine) Affine {
	return Affine{
		A:  m.A*other.A + m.C*other.B,
		B:  m.B*other.A + m.D*other.B,
		C:  m.A*other.C + m.C*other.D,
		D:  m.B*other.C + m.D*other.D,
		TX: m.A*other.TX + m.C*other.TY + m.TX,
		TY: m.B*other.TX + m.D*other.TY + m.TY,
	}
}

// Apply transforms the point v.
func (m Affine) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.C*v.Y + m.TX,
		Y: m.B*v.X + m.D*v.Y + m.TY,
	}
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// NormalizeAngle wraps an angle in degrees into (-180, 180].
func NormalizeAngle(degrees float64) float64 {
	a := math.Mod(degrees, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
