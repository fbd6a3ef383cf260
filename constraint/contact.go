package constraint

import (
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var _ Constraint = (*Contact)(nil)

// Contact is a single contact point between two overlapping polygons.
// Normal points from BodyA into BodyB, Distance is the penetration depth.
type Contact struct {
	BodyA    *actor.Polygon
	BodyB    *actor.Polygon
	Point    mgl64.Vec2
	Normal   mgl64.Vec2
	Distance float64
}

// Solve applies the contact impulse, the position correction and the friction impulse.
// Each contact is solved once, independently of the others.
func (c *Contact) Solve(coefficients Coefficients) {
	bodyA := c.BodyA
	bodyB := c.BodyB

	invMassA := bodyA.InverseMass()
	invMassB := bodyB.InverseMass()
	invMassAB := invMassA + invMassB
	if invMassAB == 0 {
		// two static bodies
		return
	}

	// ========== 1. Contact point velocities ==========
	rA := c.Point.Sub(bodyA.Transform.Position)
	rB := c.Point.Sub(bodyB.Transform.Position)

	vA := bodyA.Speed.Add(actor.CrossScalar(bodyA.AngularVelocity, rA))
	vB := bodyB.Speed.Add(actor.CrossScalar(bodyB.AngularVelocity, rB))
	relativeSpeed := vB.Sub(vA)

	momentumA := bodyA.InverseInertia() * actor.Cross(rA, c.Normal)
	momentumB := bodyB.InverseInertia() * actor.Cross(rB, c.Normal)

	weightRotA := actor.CrossScalar(momentumA, rA).Dot(c.Normal)
	weightRotB := actor.CrossScalar(momentumB, rB).Dot(c.Normal)

	// ========== 2. Normal impulse, only when approaching ==========
	var impulse float64
	if approachSpeed := relativeSpeed.Dot(c.Normal.Mul(-1)); approachSpeed > 0 {
		impulse = -(coefficients.Elasticity + 1) * approachSpeed / (invMassAB + weightRotA + weightRotB)

		bodyA.Speed = bodyA.Speed.Add(c.Normal.Mul(impulse * invMassA))
		bodyB.Speed = bodyB.Speed.Sub(c.Normal.Mul(impulse * invMassB))

		bodyA.AngularVelocity += impulse * momentumA
		bodyB.AngularVelocity -= impulse * momentumB
	}

	// ========== 3. Position correction ==========
	correction := c.Distance * coefficients.Damping / invMassAB
	bodyA.Transform.Position = bodyA.Transform.Position.Sub(c.Normal.Mul(invMassA * correction))
	bodyB.Transform.Position = bodyB.Transform.Position.Add(c.Normal.Mul(invMassB * correction))

	// ========== 4. Friction ==========
	// The denominator only uses the linear inverse masses.
	if impulse == 0 {
		return
	}
	direction, ok := actor.SafeNormalize(relativeSpeed)
	if !ok {
		return
	}
	tangent, ok := actor.SafeNormalize(c.Normal.Add(direction))
	if !ok {
		return
	}

	limit := math.Abs(impulse) * coefficients.Friction
	friction := mgl64.Clamp(-relativeSpeed.Dot(tangent)/invMassAB, -limit, limit)

	bodyA.Speed = bodyA.Speed.Sub(tangent.Mul(friction * invMassA))
	bodyB.Speed = bodyB.Speed.Add(tangent.Mul(friction * invMassB))
}
