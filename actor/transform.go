package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents a pose in 2D space
type Transform struct {
	Position mgl64.Vec2
	// Rotation is kept as an orthonormal matrix rather than an angle
	Rotation mgl64.Mat2
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Rotation: mgl64.Ident2(),
	}
}

// TransformPoint maps a local point to world space
func (t Transform) TransformPoint(point mgl64.Vec2) mgl64.Vec2 {
	return t.Position.Add(t.Rotation.Mul2x1(point))
}

// InverseTransformPoint maps a world point to local space
func (t Transform) InverseTransformPoint(point mgl64.Vec2) mgl64.Vec2 {
	// the inverse of an orthonormal matrix is its transpose
	return t.Rotation.Transpose().Mul2x1(point.Sub(t.Position))
}

// Rotate composes the current rotation with a rotation of angle radians.
// The result is re-orthonormalised so that repeated small rotations do not drift.
func (t *Transform) Rotate(angle float64) {
	t.Rotation = orthonormalize(mgl64.Rotate2D(angle).Mul2(t.Rotation))
}

// Angle returns the rotation angle in radians, in [-π, π]
func (t Transform) Angle() float64 {
	return math.Atan2(t.Rotation[1], t.Rotation[0])
}

func orthonormalize(m mgl64.Mat2) mgl64.Mat2 {
	x := mgl64.Vec2{m[0], m[1]}
	length := x.Len()
	if length < 1e-12 {
		return mgl64.Ident2()
	}
	x = x.Mul(1.0 / length)

	return mgl64.Mat2{x[0], x[1], -x[1], x[0]}
}
