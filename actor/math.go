package actor

import "github.com/go-gl/mathgl/mgl64"

// Epsilon below which a length is treated as zero
const Epsilon = 1e-9

// Cross returns the z component of the 3D cross product of a and b
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossScalar returns s × v, where s is the z component of an out-of-plane vector.
// For an angular velocity ω and a radius r, CrossScalar(ω, r) is the tangential velocity.
func CrossScalar(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v.Y(), s * v.X()}
}

// Perpendicular returns v rotated by -90°, which is the outward normal of a CCW edge
func Perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.Y(), -v.X()}
}

// SafeNormalize normalizes v, reporting false when v is too short to have a direction
func SafeNormalize(v mgl64.Vec2) (mgl64.Vec2, bool) {
	length := v.Len()
	if length < Epsilon {
		return mgl64.Vec2{}, false
	}

	return v.Mul(1.0 / length), true
}
