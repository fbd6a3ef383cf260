// Package feather2d is a 2D rigid body engine for convex polygons.
//
// A World owns its bodies and advances them step by step:
//  1. Broad phase: candidate pairs from overlapping AABBs
//  2. Narrow phase: GJK confirms the overlap, EPA computes the contact
//  3. Solver: one impulse pass over the contacts, with rotation and friction
//  4. Integration: rotation, translation, then gravity
//
// Everything runs on the calling goroutine. A World must not be mutated while it steps.
package feather2d

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/gjk"
)

type World struct {
	// List of all bodies in the world, Bodies[i].Index == i
	Bodies []*actor.Polygon
	Config Config
	// Logger receives the step timings and the skipped contacts at debug level
	Logger *slog.Logger
	// Debug is optional, it is only called when Config.Debug is set
	Debug DebugSink

	Events Events

	broadPhase BroadPhase
	simplex    gjk.Simplex
	contacts   []constraint.Contact
	active     bool
}

// NewWorld creates an active, empty world
func NewWorld(config Config) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	broadPhase, err := NewBroadPhase(config)
	if err != nil {
		return nil, err
	}

	return &World{
		Config:     config,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Events:     NewEvents(),
		broadPhase: broadPhase,
		active:     true,
	}, nil
}

// AddBody adds a body to the world and gives it its index
func (w *World) AddBody(body *actor.Polygon) {
	body.Index = len(w.Bodies)
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world. The bodies after it are shifted and re-indexed.
func (w *World) RemoveBody(body *actor.Polygon) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k == -1 {
		return
	}

	w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	for i := k; i < len(w.Bodies); i++ {
		w.Bodies[i].Index = i
	}
	body.Index = -1

	w.Events.forget(body)
}

func (w *World) Len() int {
	return len(w.Bodies)
}

func (w *World) Body(i int) *actor.Polygon {
	return w.Bodies[i]
}

func (w *World) ForEach(fn func(body *actor.Polygon)) {
	for _, body := range w.Bodies {
		fn(body)
	}
}

// Activate pauses or resumes the simulation
func (w *World) Activate(active bool) {
	w.active = active
}

func (w *World) IsActive() bool {
	return w.active
}

// Snapshot returns a deep copy of every body, keeping their index
func (w *World) Snapshot() ([]*actor.Polygon, error) {
	snapshot := make([]*actor.Polygon, len(w.Bodies))
	for i, body := range w.Bodies {
		clone, err := body.Clone()
		if err != nil {
			return nil, fmt.Errorf("snapshot body %d: %w", i, err)
		}
		clone.Index = body.Index
		snapshot[i] = clone
	}

	return snapshot, nil
}

// Update sets the activation flag, then steps
func (w *World) Update(dt float64, active bool) {
	w.Activate(active)
	w.Step(dt)
}

// Step advances the world by dt seconds, clamped to Config.MaxTimeStep.
// An inactive world is left untouched.
func (w *World) Step(dt float64) {
	dt = min(max(dt, 0), w.Config.MaxTimeStep)

	if !w.active {
		return
	}

	// Phase 1: Collision pair finding - broad phase then narrow phase
	contacts := w.detectCollisions()
	w.Events.recordContacts(contacts)

	// Phase 2: Solver, a single pass in contact order
	w.solve(contacts)

	// Phase 3: Integration
	w.integrate(dt)

	w.Events.flush()
}

func (w *World) solve(contacts []constraint.Contact) {
	for i := range contacts {
		contacts[i].Solve(w.Config.Coefficients)
	}
}

// integrate moves the dynamic bodies, static bodies are skipped
func (w *World) integrate(dt float64) {
	for _, body := range w.Bodies {
		body.Integrate(dt, w.Config.Gravity)
	}
}
