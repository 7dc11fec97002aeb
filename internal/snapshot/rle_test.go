package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTestGrid(width, height, numColonies int) []int32 {
	grid := make([]int32, width*height)
	for idx := range grid {
		if idx%19 == 0 {
			grid[idx] = int32(idx%numColonies) + 1
		}
	}
	return grid
}

func TestRLERoundTrip300x160(t *testing.T) {
	grid := buildTestGrid(300, 160, 7)

	encoded := Encode(grid)
	decoded := Decode(encoded)

	require.Equal(t, grid, decoded)
}

func TestRLEEmptyGrid(t *testing.T) {
	var grid []int32
	encoded := Encode(grid)
	decoded := Decode(encoded)
	require.Equal(t, 0, len(decoded))
}

func TestRLEUniformGrid(t *testing.T) {
	grid := make([]int32, 500)
	for i := range grid {
		grid[i] = 3
	}
	encoded := Encode(grid)
	// A fully uniform grid should compress to the length prefix plus one run.
	require.Equal(t, 4, len(encoded))
	decoded := Decode(encoded)
	require.Equal(t, grid, decoded)
}
