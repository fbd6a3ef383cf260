package actor

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Build
// =============================================================================

func TestAABBBuild(t *testing.T) {
	var aabb AABB
	aabb.Build([]mgl64.Vec2{{1, -2}, {-3, 4}, {0.5, 0.5}}, mgl64.Vec2{10, 20})

	assert.Equal(t, mgl64.Vec2{-3, -2}, aabb.Min)
	assert.Equal(t, mgl64.Vec2{1, 4}, aabb.Max)
	assert.Equal(t, mgl64.Vec2{10, 20}, aabb.Position)
	assert.Equal(t, mgl64.Vec2{7, 18}, aabb.WorldMin())
	assert.Equal(t, mgl64.Vec2{11, 24}, aabb.WorldMax())

	assert.Equal(t, [4]mgl64.Vec2{{-3, -2}, {1, -2}, {1, 4}, {-3, 4}}, aabb.Corners)
}

func TestAABBBuild_SinglePoint(t *testing.T) {
	var aabb AABB
	aabb.Build([]mgl64.Vec2{{2, 3}}, mgl64.Vec2{})

	assert.Equal(t, aabb.Min, aabb.Max)
	assert.LessOrEqual(t, aabb.Min.X(), aabb.Max.X())
	assert.LessOrEqual(t, aabb.Min.Y(), aabb.Max.Y())
}

func TestAABBBuild_Empty(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec2{5, 5}, Max: mgl64.Vec2{6, 6}}
	aabb.Build(nil, mgl64.Vec2{1, 1})

	assert.Equal(t, mgl64.Vec2{}, aabb.Min)
	assert.Equal(t, mgl64.Vec2{}, aabb.Max)
}

// =============================================================================
// Overlaps
// =============================================================================

func TestAABBOverlaps_Separated(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Separated on X axis (positive)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{2, 0}, Max: mgl64.Vec2{3, 1}},
		},
		{
			name:  "Separated on X axis (negative)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{-2, 0}, Max: mgl64.Vec2{-1, 1}},
		},
		{
			name:  "Separated on Y axis (positive)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, 2}, Max: mgl64.Vec2{1, 3}},
		},
		{
			name:  "Separated on Y axis (negative)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, -2}, Max: mgl64.Vec2{1, -1}},
		},
		{
			name:  "Separated by positions only",
			aabb1: AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}, Position: mgl64.Vec2{5, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should not overlap")
			}
			// Test symmetry
			if tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should not overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlaps_Overlapping(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Complete overlap (identical)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
		},
		{
			name:  "Partial overlap on X axis",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{2, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 0}, Max: mgl64.Vec2{3, 1}},
		},
		{
			name:  "Partial overlap on Y axis",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 2}},
			aabb2: AABB{Min: mgl64.Vec2{0, 1}, Max: mgl64.Vec2{1, 3}},
		},
		{
			name:  "Complete containment (aabb2 inside aabb1)",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{10, 10}},
			aabb2: AABB{Min: mgl64.Vec2{2, 2}, Max: mgl64.Vec2{3, 3}},
		},
		{
			name:  "Overlap through positions",
			aabb1: AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}, Position: mgl64.Vec2{0, 0}},
			aabb2: AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}, Position: mgl64.Vec2{1.5, 1.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.aabb1.Overlaps(tt.aabb2) {
				t.Errorf("AABBs should overlap")
			}
			// Test symmetry
			if !tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("AABBs should overlap (symmetry test)")
			}
		})
	}
}

func TestAABBOverlaps_EdgeTouching(t *testing.T) {
	tests := []struct {
		name  string
		aabb1 AABB
		aabb2 AABB
	}{
		{
			name:  "Edge touching on X axis",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 0}, Max: mgl64.Vec2{2, 1}},
		},
		{
			name:  "Edge touching on Y axis",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{0, 1}, Max: mgl64.Vec2{1, 2}},
		},
		{
			name:  "Corner touching",
			aabb1: AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}},
			aabb2: AABB{Min: mgl64.Vec2{1, 1}, Max: mgl64.Vec2{2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Touching edges are not a collision
			if tt.aabb1.Overlaps(tt.aabb2) || tt.aabb2.Overlaps(tt.aabb1) {
				t.Errorf("Touching AABBs should not overlap")
			}
		})
	}
}

func TestAABBOverlapsAt(t *testing.T) {
	a := AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}}
	b := AABB{Min: mgl64.Vec2{-1, -1}, Max: mgl64.Vec2{1, 1}, Position: mgl64.Vec2{100, 100}}

	assert.True(t, a.OverlapsAt(b, mgl64.Vec2{1, 0}), "offset overrides the stored position")
	assert.False(t, a.OverlapsAt(b, mgl64.Vec2{2, 0}))
}

func TestAABBOverlaps_SymmetryRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randomBox := func() AABB {
		var aabb AABB
		points := make([]mgl64.Vec2, 3)
		for i := range points {
			points[i] = mgl64.Vec2{rng.Float64()*4 - 2, rng.Float64()*4 - 2}
		}
		aabb.Build(points, mgl64.Vec2{rng.Float64()*6 - 3, rng.Float64()*6 - 3})
		return aabb
	}

	for iter := 0; iter < 1000; iter++ {
		a, b := randomBox(), randomBox()
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
		assert.Equal(t, a.OverlapsAt(b, b.Position), b.OverlapsAt(a, a.Position))
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{2, 2}, Position: mgl64.Vec2{1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec2
		expected bool
	}{
		{"Center point", mgl64.Vec2{2, 2}, true},
		{"Min corner", mgl64.Vec2{1, 1}, true},
		{"Max corner", mgl64.Vec2{3, 3}, true},
		{"Outside (X too large)", mgl64.Vec2{4, 2}, false},
		{"Outside (X too small)", mgl64.Vec2{0, 2}, false},
		{"Outside (Y too large)", mgl64.Vec2{2, 4}, false},
		{"Outside (Y too small)", mgl64.Vec2{2, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aabb.ContainsPoint(tt.point)
			if result != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, expected %v", tt.point, result, tt.expected)
			}
		})
	}
}
