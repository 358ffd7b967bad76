package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBestBoundaryMove_RejectsMoveThatViolatesDonorFloor rigs a
// partition {{0,1,2},{3}} on path 0-1-2-3 with floor=2, t=[1,1,1,1].
// Region {3} has only one member, so the move that would pull it (the
// only node) out of its own region to grow region 0 must be rejected:
// the floor check on the donor after removal must hold, and an emptied
// donor can never hold it.
func TestBestBoundaryMove_RejectsMoveThatViolatesDonorFloor(t *testing.T) {
	g := pathGraph(t, 4)
	floorVar := []float64{1, 1, 1, 1}
	p := &Partition{
		Regions:      [][]int{{0, 1, 2}, {3}},
		AreaToRegion: []int{0, 0, 0, 1},
	}
	z := AttributeMatrix{{0}, {0}, {10}, {10}}

	best := bestBoundaryMove(g, z, floorVar, 2, p, 0)
	assert.Equal(t, -1, best, "moving area 3 out of region {3} would empty its only donor below the floor")
}

func TestSwap_ConvergesAndNeverWorsens(t *testing.T) {
	g := pathGraph(t, 6)
	floorVar := []float64{1, 1, 1, 1, 1, 1}
	z := AttributeMatrix{{0}, {1}, {2}, {20}, {21}, {22}}

	// A deliberately suboptimal but feasible starting partition.
	p := &Partition{
		Regions:      [][]int{{0, 1, 2, 3}, {4, 5}},
		AreaToRegion: []int{0, 0, 0, 0, 1, 1},
	}
	before := ObjPartition(z, p)

	stats := swap(g, z, floorVar, 2, p)

	assertFeasiblePartition(t, g, floorVar, 2, p)
	after := ObjPartition(z, p)
	assert.LessOrEqual(t, after, before+1e-9)
	assert.GreaterOrEqual(t, stats.SwapIterations, 1)
}

func TestSwap_NoMovesOnAlreadyOptimalPartition(t *testing.T) {
	g, err := NewGraph([][]int{
		{1, 2}, {0, 2}, {0, 1},
		{4, 5}, {3, 5}, {3, 4},
	})
	require.NoError(t, err)
	floorVar := []float64{1, 1, 1, 1, 1, 1}
	z := AttributeMatrix{{0}, {0}, {0}, {10}, {10}, {10}}

	p := &Partition{
		Regions:      [][]int{{0, 1, 2}, {3, 4, 5}},
		AreaToRegion: []int{0, 0, 0, 1, 1, 1},
	}
	stats := swap(g, z, floorVar, 3, p)
	assert.Equal(t, 0, stats.TotalMoves)
	assert.Equal(t, 0.0, ObjPartition(z, p))
}
