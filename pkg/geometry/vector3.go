package geometry

import "math"

// Vec3 is a 3D vector in a fixed inertial frame. Positions are in meters,
// velocities in m/s, and accelerations in m/s^2.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns the vector scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector pointing in the direction of v. A
// zero vector normalizes to the zero vector.
func (v Vec3) Normalized() Vec3 {
	norm := v.Norm()
	if norm == 0 {
		return Vec3{}
	}
	return v.Scale(1 / norm)
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return other.Sub(v).Norm()
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Frame is a right-handed orthogonal frame of principal axes. The roll axis
// is aligned with the velocity vector, the pitch axis points to starboard in
// the horizontal plane, and the yaw axis points upwards relative to the
// roll-pitch plane.
type Frame struct {
	Roll  Vec3
	Pitch Vec3
	Yaw   Vec3
}

// Normalized returns the frame with all axes normalized. Degenerate axes
// normalize to zero vectors.
func (f Frame) Normalized() Frame {
	return Frame{
		Roll:  f.Roll.Normalized(),
		Pitch: f.Pitch.Normalized(),
		Yaw:   f.Yaw.Normalized(),
	}
}
