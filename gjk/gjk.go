// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) overlap test for 2D convex polygons.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski difference
// contains the origin. In 2D the simplex grows to a triangle at most: once a triangle
// encloses the origin, the shapes overlap and the triangle seeds the EPA polytope.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
package gjk

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations bounds the triangle refinement loop.
	// Running out of iterations is reported as no overlap.
	MaxIterations = 25

	// degenerateEpsilon is the squared length under which two simplex points are considered equal
	degenerateEpsilon = 1e-12
)

// Simplex holds up to 3 points of the Minkowski difference.
// Points[0] is always the most recent one.
type Simplex struct {
	Points [3]mgl64.Vec2
	Count  int
}

// Reset empties the simplex
func (s *Simplex) Reset() {
	s.Count = 0
}

// PushFront inserts a point at the front, dropping the oldest one beyond 3 points
func (s *Simplex) PushFront(point mgl64.Vec2) {
	s.Points = [3]mgl64.Vec2{point, s.Points[0], s.Points[1]}
	s.Count = min(s.Count+1, len(s.Points))
}

// Set replaces the content of the simplex, keeping the given order
func (s *Simplex) Set(points ...mgl64.Vec2) {
	s.Count = copy(s.Points[:], points)
}

// Slice returns the active points, most recent first
func (s *Simplex) Slice() []mgl64.Vec2 {
	return s.Points[:s.Count]
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B):
// furthestPoint(A, direction) - furthestPoint(B, -direction)
func MinkowskiSupport(a, b *actor.Polygon, direction mgl64.Vec2) mgl64.Vec2 {
	return a.FindFurthestPoint(direction).Sub(b.FindFurthestPoint(direction.Mul(-1)))
}

// TripleProduct computes (a × b) × c restricted to the plane: b(a·c) - a(b·c).
// TripleProduct(ab, ao, ab) is the perpendicular of ab pointing toward o.
func TripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	ac := a.Dot(c)
	bc := b.Dot(c)

	return mgl64.Vec2{
		b.X()*ac - a.X()*bc,
		b.Y()*ac - a.Y()*bc,
	}
}

// GJK reports whether the hulls of a and b overlap.
//
// Algorithm overview:
//  1. Seed the simplex with the support point along an arbitrary direction
//  2. Search toward the origin; a support point that does not pass the origin proves separation
//  3. Grow to a triangle and test the Voronoi regions of the two edges incident to the newest point
//  4. Reduce to the closest edge and search again, or stop when the triangle encloses the origin
//
// On success the simplex holds the enclosing triangle, which EPA uses as its initial polytope.
// Degenerate simplices and exhausting MaxIterations are reported as no overlap.
func GJK(a, b *actor.Polygon, simplex *Simplex) bool {
	simplex.Reset()

	direction := mgl64.Vec2{1, 0}
	simplex.PushFront(MinkowskiSupport(a, b, direction))

	// New direction towards the origin from this first point
	direction = simplex.Points[0].Mul(-1)
	newPoint := MinkowskiSupport(a, b, direction)
	if !passesOrigin(newPoint, direction) {
		return false
	}
	simplex.PushFront(newPoint)

	direction, ok := lineDirection(simplex.Points[0], simplex.Points[1])
	if !ok {
		return false
	}

	for iter := 0; iter < MaxIterations; iter++ {
		newPoint = MinkowskiSupport(a, b, direction)
		if !passesOrigin(newPoint, direction) {
			return false
		}
		simplex.PushFront(newPoint)

		contains, valid := triangle(simplex, &direction)
		if !valid {
			return false
		}
		if contains {
			return true
		}
	}

	return false
}

// passesOrigin is the early exit test: the new support point must lie strictly beyond
// the origin along the search direction, otherwise the origin cannot be enclosed.
func passesOrigin(point, direction mgl64.Vec2) bool {
	p, ok := actor.SafeNormalize(point)
	if !ok {
		return false
	}
	d, ok := actor.SafeNormalize(direction)
	if !ok {
		return false
	}

	return p.Dot(d) > 0
}

// lineDirection returns the direction perpendicular to ab pointing toward the origin,
// a being the newest point. When the origin lies on the line, either perpendicular is returned.
func lineDirection(a, b mgl64.Vec2) (mgl64.Vec2, bool) {
	ab := b.Sub(a)
	if ab.LenSqr() < degenerateEpsilon {
		return mgl64.Vec2{}, false
	}

	ao := a.Mul(-1)
	direction := TripleProduct(ab, ao, ab)
	if direction.LenSqr() < degenerateEpsilon {
		direction = actor.Perpendicular(ab)
	}

	return direction, true
}

// triangle handles the triangle simplex case (A newest, then B and C).
//
// Tests which region contains the origin:
//   - Region AB: origin beyond edge AB, away from C → keep [A, B]
//   - Region AC: origin beyond edge AC, away from B → keep [A, C]
//   - Otherwise the origin is inside the triangle
//
// Returns contains=true when the origin is enclosed, valid=false for a degenerate triangle.
func triangle(simplex *Simplex, direction *mgl64.Vec2) (contains, valid bool) {
	a := simplex.Points[0]
	b := simplex.Points[1]
	c := simplex.Points[2]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	// duplicated or collinear points
	if ab.LenSqr() < degenerateEpsilon || ac.LenSqr() < degenerateEpsilon ||
		c.Sub(b).LenSqr() < degenerateEpsilon {
		return false, false
	}
	if area := actor.Cross(ab, ac); area*area < degenerateEpsilon*ab.LenSqr()*ac.LenSqr() {
		return false, false
	}

	// perpendiculars of each edge, pointing away from the third vertex
	abPerp := TripleProduct(ac, ab, ab)
	acPerp := TripleProduct(ab, ac, ac)

	if abPerp.Dot(ao) > 0 {
		simplex.Set(a, b)
		d, ok := lineDirection(a, b)
		*direction = d
		return false, ok
	}

	if acPerp.Dot(ao) > 0 {
		simplex.Set(a, c)
		d, ok := lineDirection(a, c)
		*direction = d
		return false, ok
	}

	return true, true
}
