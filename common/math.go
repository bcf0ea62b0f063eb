package common

import "math"

// Vec3 is a world-space point or direction. Y is up; the ground plane is XZ.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Up is the world up axis.
var Up = Vec3{Y: 1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Flat projects v onto the ground plane.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// AngleDeg returns the unsigned angle between a and b in degrees. A zero
// vector on either side yields 0.
func AngleDeg(a, b Vec3) float64 {
	an := a.Normalize()
	bn := b.Normalize()
	if an.IsZero() || bn.IsZero() {
		return 0
	}
	cos := Clamp(an.Dot(bn), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}

// YawForward returns the ground-plane unit direction for a yaw in radians,
// where yaw 0 faces +Z and positive yaw turns toward +X.
func YawForward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// YawOf is the inverse of YawForward for a non-zero ground-plane direction.
func YawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
