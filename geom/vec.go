package geom

import "math"

// Vec2 is a 2D world-space point (x, z on the ground plane).
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D world-space point: X and Z span the ground plane, Y is altitude.
type Vec3 struct {
	X, Y, Z float32
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Len returns the Euclidean length of a.
func (a Vec2) Len() float32 {
	return float32(math.Hypot(float64(a.X), float64(a.Y)))
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Scale returns a * s.
func (a Vec3) Scale(s float32) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Len returns the Euclidean length of a.
func (a Vec3) Len() float32 {
	return float32(math.Sqrt(float64(a.Dot(a))))
}

// Ground drops the altitude component.
func (a Vec3) Ground() Vec2 { return Vec2{a.X, a.Z} }

// Lerp interpolates linearly between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
