package epa

import (
	"slices"
	"sync"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Polytope is a convex polygon in Minkowski difference space, wound counter-clockwise
type Polytope struct {
	points []mgl64.Vec2
}

// polytopePool recycles polytope buffers between collision tests
var polytopePool = sync.Pool{
	New: func() interface{} {
		return &Polytope{
			points: make([]mgl64.Vec2, 0, polytopeInitialCapacity),
		}
	},
}

// Reset seeds the polytope with the simplex points, reordered counter-clockwise if needed
func (p *Polytope) Reset(simplex *gjk.Simplex) {
	p.points = append(p.points[:0], simplex.Slice()...)

	var signedArea float64
	for i, a := range p.points {
		signedArea += actor.Cross(a, p.points[(i+1)%len(p.points)])
	}
	if signedArea < 0 {
		slices.Reverse(p.points)
	}
}

// Points returns the polytope vertices in winding order
func (p *Polytope) Points() []mgl64.Vec2 {
	return p.points
}

// ClosestEdge returns the edge closest to the origin.
// ok is false when every edge is degenerate.
func (p *Polytope) ClosestEdge() (closest Edge, ok bool) {
	for i, a := range p.points {
		b := p.points[(i+1)%len(p.points)]

		edge, valid := newEdge(i, a, b)
		if !valid {
			continue
		}

		if !ok || edge.Distance < closest.Distance {
			closest = edge
			ok = true
		}
	}

	return closest, ok
}

// Insert adds a support point right after the first vertex of the given edge,
// which keeps the winding of the polygon.
func (p *Polytope) Insert(edge Edge, point mgl64.Vec2) {
	p.points = slices.Insert(p.points, edge.Index+1, point)
}
