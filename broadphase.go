package feather2d

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/akmonengine/feather2d/actor"
)

// Pair - two bodies whose bounding boxes overlap, valid for one step
type Pair struct {
	BodyA *actor.Polygon
	BodyB *actor.Polygon
}

// BroadPhase returns the candidate pairs of a step.
// Implementations rebuild the AABBs of moved bodies, reset the transient collision flags,
// and flag the AABB of every body taking part in a pair.
type BroadPhase interface {
	FindPairs(bodies []*actor.Polygon) []Pair
}

// NewBroadPhase builds the broad phase selected by the config
func NewBroadPhase(config Config) (BroadPhase, error) {
	switch config.BroadPhase {
	case BROAD_PHASE_SAP, "":
		return &SweepAndPrune{}, nil
	case BROAD_PHASE_BRUTE:
		return BruteForce{}, nil
	case BROAD_PHASE_GRID:
		return NewSpatialGrid(config.Grid.CellSize, config.Grid.CellCount), nil
	default:
		return nil, fmt.Errorf("%w: unknown broad_phase %q", ErrInvalidConfig, config.BroadPhase)
	}
}

// prepareBodies refreshes the bounding boxes and clears the flags of the previous step
func prepareBodies(bodies []*actor.Polygon) {
	for _, body := range bodies {
		body.IsColliding = false
		body.RefreshAABB()
	}
}

// checkPair applies the shared AABB test, and flags both boxes on overlap.
// Two static bodies never make a pair: the solver could not move them anyway.
func checkPair(bodyA, bodyB *actor.Polygon) bool {
	if bodyA.IsStatic() && bodyB.IsStatic() {
		return false
	}
	if !bodyA.AABB.Overlaps(bodyB.AABB) {
		return false
	}

	bodyA.AABB.IsColliding = true
	bodyB.AABB.IsColliding = true

	return true
}

// SweepAndPrune sorts the bodies along X by the minimum of their AABB,
// then only tests the bodies whose X intervals overlap.
// The sort is stable: bodies sharing the same minimum keep their registry order.
type SweepAndPrune struct {
	sorted []*actor.Polygon
}

func (s *SweepAndPrune) FindPairs(bodies []*actor.Polygon) []Pair {
	prepareBodies(bodies)

	s.sorted = append(s.sorted[:0], bodies...)
	slices.SortStableFunc(s.sorted, func(a, b *actor.Polygon) int {
		return cmp.Compare(a.AABB.WorldMin().X(), b.AABB.WorldMin().X())
	})

	pairs := make([]Pair, 0, len(bodies))
	for i, bodyA := range s.sorted {
		maxX := bodyA.AABB.WorldMax().X()

		for _, bodyB := range s.sorted[i+1:] {
			// every following body starts further on X
			if maxX < bodyB.AABB.WorldMin().X() {
				break
			}

			if checkPair(bodyA, bodyB) {
				pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
			}
		}
	}

	// drop the references, the registry owns the bodies
	clear(s.sorted)

	return pairs
}

// BruteForce tests every pair, in registry order. Reference implementation for small worlds.
type BruteForce struct{}

func (BruteForce) FindPairs(bodies []*actor.Polygon) []Pair {
	prepareBodies(bodies)

	pairs := make([]Pair, 0, len(bodies))
	for i, bodyA := range bodies {
		for _, bodyB := range bodies[i+1:] {
			if checkPair(bodyA, bodyB) {
				pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
			}
		}
	}

	return pairs
}
