package actor

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

const (
	// DefaultDensity is the density given to polygons created by the factories
	DefaultDensity = 0.1

	// staticInertiaFactor replaces the mass when computing the inertia tensor of a massless body
	staticInertiaFactor = 0.1
)

var ErrDegeneratePolygon = errors.New("degenerate polygon")

// Polygon is a convex rigid body.
// Points are expressed in local space, counter-clockwise, centred on the center of mass.
type Polygon struct {
	// Index is the stable position of the polygon in its world, -1 when detached
	Index int

	Transform Transform
	Points    []mgl64.Vec2

	// Density of 0 marks a static body: infinite mass, no rotation, never integrated
	Density         float64
	Speed           mgl64.Vec2
	AngularVelocity float64

	AABB AABB
	// IsColliding is set by the narrow phase when the polygon has a contact this step
	IsColliding bool

	signedArea   float64
	localInertia float64
	lines        []Line

	savedTransform Transform
	aabbValid      bool
}

// NewPolygon creates a dynamic polygon from a convex hull and builds it
func NewPolygon(points []mgl64.Vec2, density float64) (*Polygon, error) {
	p := &Polygon{
		Index:     -1,
		Transform: NewTransform(),
		Points:    slices.Clone(points),
		Density:   density,
	}

	if err := p.Build(); err != nil {
		return nil, err
	}

	return p, nil
}

// Build finalizes the geometry: area, winding, recentering on the center of mass,
// local inertia and boundary lines. It must be called again whenever Points change.
func (p *Polygon) Build() error {
	if len(p.Points) < 3 {
		return fmt.Errorf("%w: %d points, need at least 3", ErrDegeneratePolygon, len(p.Points))
	}

	p.computeArea()
	if math.Abs(p.signedArea) < Epsilon {
		return fmt.Errorf("%w: zero area", ErrDegeneratePolygon)
	}
	if p.signedArea < 0 {
		slices.Reverse(p.Points)
		p.signedArea = -p.signedArea
	}

	p.recenterOnCenterOfMass()
	p.computeLocalInertia()
	p.buildLines()

	p.aabbValid = false
	p.RefreshAABB()

	return nil
}

func (p *Polygon) computeArea() {
	p.signedArea = 0
	for i, a := range p.Points {
		b := p.Points[(i+1)%len(p.Points)]
		p.signedArea += Cross(a, b)
	}
	p.signedArea *= 0.5
}

func (p *Polygon) recenterOnCenterOfMass() {
	var centroid mgl64.Vec2
	for i, a := range p.Points {
		b := p.Points[(i+1)%len(p.Points)]
		centroid = centroid.Add(a.Add(b).Mul(Cross(a, b)))
	}
	centroid = centroid.Mul(1.0 / (6.0 * p.signedArea))

	for i := range p.Points {
		p.Points[i] = p.Points[i].Sub(centroid)
	}
	p.Transform.Position = p.Transform.Position.Add(p.Transform.Rotation.Mul2x1(centroid))
}

// computeLocalInertia stores the polar moment of inertia per unit mass about the centroid
func (p *Polygon) computeLocalInertia() {
	var sum float64
	for i, a := range p.Points {
		b := p.Points[(i+1)%len(p.Points)]
		sum += Cross(a, b) * (a.Dot(a) + a.Dot(b) + b.Dot(b))
	}
	p.localInertia = sum / (12.0 * p.signedArea)
}

func (p *Polygon) buildLines() {
	p.lines = p.lines[:0]
	for i, a := range p.Points {
		b := p.Points[(i+1)%len(p.Points)]
		normal, ok := SafeNormalize(Perpendicular(b.Sub(a)))
		if !ok {
			continue
		}
		p.lines = append(p.lines, Line{Point: a, Normal: normal})
	}
}

// Lines returns the local boundary edges with their outward normals
func (p *Polygon) Lines() []Line {
	return p.lines
}

// Area returns the unsigned area of the hull
func (p *Polygon) Area() float64 {
	return math.Abs(p.signedArea)
}

// IsStatic reports whether the polygon is immovable
func (p *Polygon) IsStatic() bool {
	return p.Density == 0
}

// Mass returns density times area
func (p *Polygon) Mass() float64 {
	return p.Density * p.Area()
}

// InertiaTensor returns the scalar rotational inertia. A massless body gets a small
// nominal value so that the result can always be inverted.
func (p *Polygon) InertiaTensor() float64 {
	mass := p.Mass()
	if mass == 0 {
		return p.localInertia * staticInertiaFactor
	}

	return p.localInertia * mass
}

// InverseMass returns 0 for static bodies, 1/density otherwise
func (p *Polygon) InverseMass() float64 {
	if p.IsStatic() {
		return 0
	}

	return 1.0 / p.Density
}

// InverseInertia returns 0 for static bodies, the inverse of InertiaTensor otherwise
func (p *Polygon) InverseInertia() float64 {
	if p.IsStatic() {
		return 0
	}

	inertia := p.InertiaTensor()
	if inertia < Epsilon {
		return 0
	}

	return 1.0 / inertia
}

// TransformPoint maps a local point to world space
func (p *Polygon) TransformPoint(point mgl64.Vec2) mgl64.Vec2 {
	return p.Transform.TransformPoint(point)
}

// InverseTransformPoint maps a world point to local space
func (p *Polygon) InverseTransformPoint(point mgl64.Vec2) mgl64.Vec2 {
	return p.Transform.InverseTransformPoint(point)
}

// WorldPoints returns the hull in world space
func (p *Polygon) WorldPoints() []mgl64.Vec2 {
	points := make([]mgl64.Vec2, len(p.Points))
	for i, point := range p.Points {
		points[i] = p.TransformPoint(point)
	}

	return points
}

// FindFurthestPoint is the support function: the world vertex furthest along direction.
// Ties keep the first vertex in hull order.
func (p *Polygon) FindFurthestPoint(direction mgl64.Vec2) mgl64.Vec2 {
	var furthest mgl64.Vec2
	maxDistance := math.Inf(-1)

	for _, vertex := range p.Points {
		vertex = p.TransformPoint(vertex)
		if distance := vertex.Dot(direction); distance > maxDistance {
			maxDistance = distance
			furthest = vertex
		}
	}

	return furthest
}

// IsPointInside checks whether a world point lies inside the hull or on its boundary
func (p *Polygon) IsPointInside(point mgl64.Vec2) bool {
	maxDistance := math.Inf(-1)
	for _, line := range p.lines {
		maxDistance = max(maxDistance, line.Transform(p.Transform).Distance(point))
	}

	return maxDistance <= 0
}

// HasMoved reports whether the pose changed since the last AABB refresh.
// Any single component change counts as a move.
func (p *Polygon) HasMoved() bool {
	return p.savedTransform.Position != p.Transform.Position ||
		p.savedTransform.Rotation != p.Transform.Rotation
}

// RefreshAABB rebuilds the bounding box from the rotated hull when the pose changed,
// and clears its transient collision flag.
func (p *Polygon) RefreshAABB() {
	p.AABB.IsColliding = false
	if p.aabbValid && !p.HasMoved() {
		return
	}

	rotated := make([]mgl64.Vec2, len(p.Points))
	for i, point := range p.Points {
		rotated[i] = p.Transform.Rotation.Mul2x1(point)
	}
	p.AABB.Build(rotated, p.Transform.Position)

	p.savedTransform = p.Transform
	p.aabbValid = true
}

// Integrate advances a dynamic body by dt: rotation, translation, then gravity on the speed
func (p *Polygon) Integrate(dt float64, gravity mgl64.Vec2) {
	if p.IsStatic() {
		return
	}

	p.Transform.Rotate(p.AngularVelocity * dt)
	p.Transform.Position = p.Transform.Position.Add(p.Speed.Mul(dt))
	p.Speed = p.Speed.Add(gravity.Mul(dt))
}

// Clone returns a deep copy of the polygon, detached from any world
func (p *Polygon) Clone() (*Polygon, error) {
	clone := &Polygon{}
	if err := copier.CopyWithOption(clone, p, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone polygon: %w", err)
	}

	clone.Index = -1
	clone.signedArea = p.signedArea
	clone.localInertia = p.localInertia
	clone.lines = slices.Clone(p.lines)
	clone.savedTransform = p.savedTransform
	clone.aabbValid = p.aabbValid

	return clone, nil
}
