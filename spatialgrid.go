package feather2d

import (
	"math"
	"sort"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in the plane
type CellKey struct {
	X, Y int
}

// Cell - indices of the bodies overlapping a cell
type Cell struct {
	bodyIndices []int
}

// SpatialGrid - uniform grid hashed into a fixed number of cells, used as a broad phase
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int

	// seen[i] == stamp when body i was already tested against the current body
	seen  []int
	stamp int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - adds a body to every cell its AABB covers
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.Polygon) {
	minCell := sg.worldToCell(body.AABB.WorldMin())
	maxCell := sg.worldToCell(body.AABB.WorldMax())

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})

			sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs - rebuilds the grid, then tests each body against the bodies sharing one of its cells.
// Pairs are ordered by the registry index of their first body.
func (sg *SpatialGrid) FindPairs(bodies []*actor.Polygon) []Pair {
	prepareBodies(bodies)

	sg.Clear()
	for i, body := range bodies {
		sg.Insert(i, body)
	}
	sg.SortCells()

	if len(sg.seen) < len(bodies) {
		sg.seen = make([]int, len(bodies))
		sg.stamp = 0
	}

	pairs := make([]Pair, 0, len(bodies))

	for bodyIdx, bodyA := range bodies {
		sg.stamp++

		minCell := sg.worldToCell(bodyA.AABB.WorldMin())
		maxCell := sg.worldToCell(bodyA.AABB.WorldMax())

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					// (A,B) and (B,A) are the same pair, a body spanning several cells is tested once
					if otherIdx <= bodyIdx || sg.seen[otherIdx] == sg.stamp {
						continue
					}
					sg.seen[otherIdx] = sg.stamp

					bodyB := bodies[otherIdx]
					if checkPair(bodyA, bodyB) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
					}
				}
			}
		}
	}

	return pairs
}

// worldToCell - converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell - hashes a cell to an index in the array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
