package actor

import "github.com/go-gl/mathgl/mgl64"

// Line is an oriented boundary edge: a point on the edge and its outward unit normal
type Line struct {
	Point  mgl64.Vec2
	Normal mgl64.Vec2
}

// Transform returns the line expressed in the frame of the given transform
func (l Line) Transform(t Transform) Line {
	return Line{
		Point:  t.TransformPoint(l.Point),
		Normal: t.Rotation.Mul2x1(l.Normal),
	}
}

// Distance returns the signed distance of point to the line, positive on the outer side
func (l Line) Distance(point mgl64.Vec2) float64 {
	return point.Sub(l.Point).Dot(l.Normal)
}
