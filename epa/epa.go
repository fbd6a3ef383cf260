// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK detects a collision to determine:
//   - Penetration depth (how far shapes overlap)
//   - Contact normal (direction to separate shapes)
//   - Contact point (where shapes touch)
//
// The algorithm expands a polygon (starting from GJK's final triangle) toward the boundary
// of the Minkowski difference, until the edge closest to the origin stops moving. That edge
// gives the Minimum Translation Vector (MTV) separating the shapes.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits polytope expansion.
	// If this limit is reached, EPA returns ErrNotConverged.
	MaxIterations = 32

	// ConvergenceTolerance defines when EPA has converged.
	// If the distance to a new support point improves by less than this threshold,
	// the closest edge lies on the boundary of the Minkowski difference.
	ConvergenceTolerance = 0.001

	// ContactPointInset pulls the contact point slightly less than the full depth into
	// the first shape, so that it lands inside the second one.
	ContactPointInset = 0.9999

	// minEdgeDistance is the slack allowed for an outward edge slightly behind the origin
	minEdgeDistance = 1e-9

	polytopeInitialCapacity = 8
)

var (
	ErrDegenerateSimplex = errors.New("degenerate simplex")
	ErrNotConverged      = errors.New("EPA failed to converge")
)

// EPA computes penetration depth and contact information for overlapping convex polygons.
//
// Algorithm overview:
//  1. Start with the triangle from GJK (containing the origin)
//  2. Find the edge closest to the origin
//  3. Get the support point along the edge normal
//  4. If converged (new point doesn't improve distance) → done
//  5. Otherwise, insert the support point into that edge and repeat
//
// Returns:
//   - Contact: normal, penetration depth and contact point
//   - error: ErrDegenerateSimplex or ErrNotConverged, the contact must then be ignored
//
// The contact normal points from body A toward body B.
func EPA(a, b *actor.Polygon, simplex *gjk.Simplex) (constraint.Contact, error) {
	if simplex.Count < 3 {
		return constraint.Contact{}, fmt.Errorf("%w: %d points", ErrDegenerateSimplex, simplex.Count)
	}

	polytope := polytopePool.Get().(*Polytope)
	defer polytopePool.Put(polytope)
	polytope.Reset(simplex)

	for iter := 0; iter < MaxIterations; iter++ {
		closest, ok := polytope.ClosestEdge()
		if !ok {
			return constraint.Contact{}, ErrDegenerateSimplex
		}

		support := gjk.MinkowskiSupport(a, b, closest.Normal)
		distance := support.Dot(closest.Normal)

		if distance-closest.Distance < ConvergenceTolerance {
			return constraint.Contact{
				BodyA:    a,
				BodyB:    b,
				Point:    ContactPoint(a, b, closest.Normal, closest.Distance),
				Normal:   closest.Normal,
				Distance: closest.Distance,
			}, nil
		}

		polytope.Insert(closest, support)
	}

	return constraint.Contact{}, fmt.Errorf("%w after %d iterations", ErrNotConverged, MaxIterations)
}

// ContactPoint estimates the contact point from the MTV: the deepest point of a along
// the normal, pulled back by the depth. When that point falls outside b, the deepest
// point of b along the opposite normal is used instead.
func ContactPoint(a, b *actor.Polygon, normal mgl64.Vec2, depth float64) mgl64.Vec2 {
	point := a.FindFurthestPoint(normal).Sub(normal.Mul(depth * ContactPointInset))
	if !b.IsPointInside(point) {
		point = b.FindFurthestPoint(normal.Mul(-1))
	}

	return point
}
