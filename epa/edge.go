package epa

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Edge is a polytope edge with its outward normal and its distance to the origin
type Edge struct {
	// Index of the first vertex of the edge in the polytope
	Index    int
	Normal   mgl64.Vec2
	Distance float64
}

func newEdge(index int, a, b mgl64.Vec2) (Edge, bool) {
	// outward normal of a counter-clockwise edge
	normal, ok := actor.SafeNormalize(actor.Perpendicular(b.Sub(a)))
	if !ok {
		return Edge{}, false
	}

	distance := normal.Dot(a)

	// The origin is inside the polytope, so an outward normal never sees it behind the edge.
	// A clearly negative distance means the normal points inward.
	if distance < -minEdgeDistance {
		normal = normal.Mul(-1)
		distance = -distance
	}
	distance = max(distance, 0)

	return Edge{Index: index, Normal: normal, Distance: distance}, true
}
