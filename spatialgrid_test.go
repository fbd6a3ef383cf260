package feather2d

import (
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec2
		expected CellKey
	}{
		{"origin", mgl64.Vec2{0, 0}, CellKey{0, 0}},
		{"positive", mgl64.Vec2{1.5, 2.3}, CellKey{1, 2}},
		{"negative", mgl64.Vec2{-1.5, -2.3}, CellKey{-2, -3}},
		{"fractional", mgl64.Vec2{0.5, 0.5}, CellKey{0, 0}},
		{"large", mgl64.Vec2{100.7, -200.3}, CellKey{100, -201}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, grid.worldToCell(tt.position))
		})
	}
}

func TestHashCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16) // 16 cells, mask = 15

	tests := []struct {
		name     string
		key      CellKey
		expected int
	}{
		{"origin", CellKey{0, 0}, 0},
		{"simple", CellKey{1, 2}, 3},
		{"negative", CellKey{-1, -2}, 1},
		{"large", CellKey{100, 200}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := grid.hashCell(tt.key)
			assert.GreaterOrEqual(t, result, 0)
			assert.Less(t, result, len(grid.cells))
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHashCellDistribution(t *testing.T) {
	grid := NewSpatialGrid(1.0, 1024)

	cellCounts := make(map[int]int)
	for x := -100; x <= 100; x++ {
		for y := -100; y <= 100; y++ {
			cellCounts[grid.hashCell(CellKey{x, y})]++
		}
	}

	// 40401 keys over 1024 cells: nearly every cell is used
	assert.Greater(t, len(cellCounts), 900)
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, expected int }{
		{-1, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1024, 1024},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, nextPowerOfTwo(tt.in), "nextPowerOfTwo(%d)", tt.in)
	}
}

// createTestBox creates a dynamic box, with its AABB built
func createTestBox(t testing.TB, position mgl64.Vec2, width, height float64) *actor.Polygon {
	t.Helper()

	p, err := actor.NewRectangle(width, height)
	require.NoError(t, err)
	p.Transform.Position = position
	p.Density = 1
	p.RefreshAABB()

	return p
}

func TestInsertSingleBody(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	// spans cells x in [0, 1], y in [0, 0]
	body := createTestBox(t, mgl64.Vec2{1, 0.5}, 1.5, 0.5)

	grid.Insert(0, body)

	occupied := 0
	for _, cell := range grid.cells {
		occupied += len(cell.bodyIndices)
	}
	assert.Equal(t, 2, occupied)
	assert.Contains(t, grid.cells[grid.hashCell(CellKey{0, 0})].bodyIndices, 0)
	assert.Contains(t, grid.cells[grid.hashCell(CellKey{1, 0})].bodyIndices, 0)
}

func TestClear(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	grid.Insert(0, createTestBox(t, mgl64.Vec2{0, 0}, 1, 1))
	grid.Insert(1, createTestBox(t, mgl64.Vec2{3, 3}, 1, 1))

	grid.Clear()

	for _, cell := range grid.cells {
		assert.Empty(t, cell.bodyIndices)
	}
}

func TestSortCells(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)
	body := createTestBox(t, mgl64.Vec2{0.5, 0.5}, 0.5, 0.5)
	for _, index := range []int{5, 2, 9, 1} {
		grid.Insert(index, body)
	}

	grid.SortCells()

	assert.Equal(t, []int{1, 2, 5, 9}, grid.cells[grid.hashCell(CellKey{0, 0})].bodyIndices)
}

func TestSpatialGridFindPairs(t *testing.T) {
	t.Run("no collision", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 64)
		bodies := []*actor.Polygon{
			createTestBox(t, mgl64.Vec2{0, 0}, 1, 1),
			createTestBox(t, mgl64.Vec2{5, 0}, 1, 1),
		}

		assert.Empty(t, grid.FindPairs(bodies))
	})

	t.Run("overlapping bodies", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 64)
		bodies := []*actor.Polygon{
			createTestBox(t, mgl64.Vec2{0, 0}, 1, 1),
			createTestBox(t, mgl64.Vec2{0.8, 0.2}, 1, 1),
			createTestBox(t, mgl64.Vec2{10, 10}, 1, 1),
		}

		pairs := grid.FindPairs(bodies)

		require.Len(t, pairs, 1)
		assert.Same(t, bodies[0], pairs[0].BodyA)
		assert.Same(t, bodies[1], pairs[0].BodyB)
		assert.True(t, bodies[0].AABB.IsColliding)
		assert.True(t, bodies[1].AABB.IsColliding)
		assert.False(t, bodies[2].AABB.IsColliding)
	})

	t.Run("bodies sharing several cells make one pair", func(t *testing.T) {
		grid := NewSpatialGrid(0.25, 256)
		bodies := []*actor.Polygon{
			createTestBox(t, mgl64.Vec2{0, 0}, 2, 2),
			createTestBox(t, mgl64.Vec2{0.5, 0.5}, 2, 2),
		}

		assert.Len(t, grid.FindPairs(bodies), 1)
	})

	t.Run("static bodies", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 64)
		bodies := []*actor.Polygon{
			createTestBox(t, mgl64.Vec2{0, 0}, 1, 1),
			createTestBox(t, mgl64.Vec2{0.5, 0}, 1, 1),
		}
		bodies[0].Density = 0
		bodies[1].Density = 0

		assert.Empty(t, grid.FindPairs(bodies))
	})

	t.Run("large body spanning many cells", func(t *testing.T) {
		grid := NewSpatialGrid(1.0, 64)
		bodies := []*actor.Polygon{createTestBox(t, mgl64.Vec2{0, 0}, 20, 1)}
		for x := -9; x <= 9; x += 3 {
			bodies = append(bodies, createTestBox(t, mgl64.Vec2{float64(x), 0.7}, 0.5, 0.5))
		}

		assert.Len(t, grid.FindPairs(bodies), 7)
	})
}

func BenchmarkSpatialGridFindPairs(b *testing.B) {
	bodies := make([]*actor.Polygon, 0, 1000)
	for i := 0; i < 1000; i++ {
		bodies = append(bodies, createTestBox(b, mgl64.Vec2{float64(i%40) * 0.9, float64(i/40) * 0.9}, 1, 1))
	}
	grid := NewSpatialGrid(2.0, 4096)

	for i := 0; i < b.N; i++ {
		grid.FindPairs(bodies)
	}
}
