package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box.
// Min and Max are relative to Position, the owning body's position when the box was built.
type AABB struct {
	Min      mgl64.Vec2
	Max      mgl64.Vec2
	Position mgl64.Vec2

	// Corners of the box relative to Position, counter-clockwise from Min (for rendering)
	Corners [4]mgl64.Vec2

	// IsColliding is set by the broad phase when the box overlaps another one this step
	IsColliding bool
}

// Build computes the box enclosing points (already rotated, not yet translated)
func (a *AABB) Build(points []mgl64.Vec2, position mgl64.Vec2) {
	a.Position = position
	a.Min = mgl64.Vec2{}
	a.Max = mgl64.Vec2{}

	if len(points) > 0 {
		a.Min = points[0]
		a.Max = points[0]
	}

	for _, point := range points[min(1, len(points)):] {
		a.Min[0] = min(a.Min[0], point[0])
		a.Min[1] = min(a.Min[1], point[1])
		a.Max[0] = max(a.Max[0], point[0])
		a.Max[1] = max(a.Max[1], point[1])
	}

	a.Corners = [4]mgl64.Vec2{
		a.Min,
		{a.Max.X(), a.Min.Y()},
		a.Max,
		{a.Min.X(), a.Max.Y()},
	}
}

// WorldMin returns the lower corner in world space
func (a AABB) WorldMin() mgl64.Vec2 {
	return a.Min.Add(a.Position)
}

// WorldMax returns the upper corner in world space
func (a AABB) WorldMax() mgl64.Vec2 {
	return a.Max.Add(a.Position)
}

// ContainsPoint checks if a world point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	lo, hi := a.WorldMin(), a.WorldMax()

	return point.X() >= lo.X() && point.X() <= hi.X() &&
		point.Y() >= lo.Y() && point.Y() <= hi.Y()
}

// Overlaps checks if two AABBs overlap, each one placed at its own Position
func (a AABB) Overlaps(other AABB) bool {
	return a.OverlapsAt(other, other.Position)
}

// OverlapsAt checks if the AABB overlaps other once other is placed at otherPosition.
// Intervals must overlap strictly on both axes: touching edges do not count.
func (a AABB) OverlapsAt(other AABB, otherPosition mgl64.Vec2) bool {
	return a.Min.X()+a.Position.X() < other.Max.X()+otherPosition.X() &&
		a.Max.X()+a.Position.X() > other.Min.X()+otherPosition.X() &&
		a.Min.Y()+a.Position.Y() < other.Max.Y()+otherPosition.Y() &&
		a.Max.Y()+a.Position.Y() > other.Min.Y()+otherPosition.Y()
}
