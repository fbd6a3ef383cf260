package feather2d

import (
	"fmt"
	"time"

	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// detectCollisions runs the broad phase then the narrow phase.
// The contacts are returned in pair order and stay valid until the next step.
func (w *World) detectCollisions() []constraint.Contact {
	start := time.Now()
	pairs := w.broadPhase.FindPairs(w.Bodies)
	broadPhaseDuration := time.Since(start)

	start = time.Now()
	contacts := w.narrowPhase(pairs)
	narrowPhaseDuration := time.Since(start)

	w.Logger.Debug("collision detection",
		"pairs", len(pairs),
		"contacts", len(contacts),
		"broadphase", broadPhaseDuration,
		"narrowphase", narrowPhaseDuration,
	)

	if w.debugEnabled() {
		w.Debug.DisplayText(fmt.Sprintf("Collision broadphase duration %.3f ms", milliseconds(broadPhaseDuration)))
		w.Debug.DisplayText(fmt.Sprintf("Collision narrowphase duration %.3f ms, collisions : %d",
			milliseconds(narrowPhaseDuration), len(contacts)))
	}

	return contacts
}

// narrowPhase confirms each candidate pair with GJK, and computes its contact with EPA.
// A pair whose EPA fails is skipped for this step, the next step tests it again from scratch.
func (w *World) narrowPhase(pairs []Pair) []constraint.Contact {
	debug := w.debugEnabled()
	if debug {
		// world axes
		w.Debug.DrawLine(mgl64.Vec2{-0.5, 0}, mgl64.Vec2{0.5, 0}, RED)
		w.Debug.DrawLine(mgl64.Vec2{0, -0.5}, mgl64.Vec2{0, 0.5}, GREEN)
	}

	clear(w.contacts)
	w.contacts = w.contacts[:0]

	for _, pair := range pairs {
		if !gjk.GJK(pair.BodyA, pair.BodyB, &w.simplex) {
			continue
		}

		contact, err := epa.EPA(pair.BodyA, pair.BodyB, &w.simplex)
		if err != nil {
			w.Logger.Debug("contact skipped",
				"bodyA", pair.BodyA.Index,
				"bodyB", pair.BodyB.Index,
				"error", err,
			)
			continue
		}

		pair.BodyA.IsColliding = true
		pair.BodyB.IsColliding = true
		w.contacts = append(w.contacts, contact)

		if debug {
			w.drawContact(contact)
		}
	}

	return w.contacts
}

func (w *World) drawContact(contact constraint.Contact) {
	position := contact.BodyA.Transform.Position

	w.Debug.DrawLine(contact.Point, contact.Point.Add(contact.Normal.Mul(contact.Distance)), GREEN)
	w.Debug.DrawLine(position, position.Add(contact.Normal), RED)
	w.Debug.DrawLine(position, contact.Point, YELLOW)
	w.Debug.DisplayTextWorld(fmt.Sprintf("distance : %f", contact.Distance), contact.Point)
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
