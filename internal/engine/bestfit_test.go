package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestFit_ThreeSquaresOnePlate(t *testing.T) {
	layout, err := BestFit(defaultTestSettings(), squares(3, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, layout.PlateCount())
	assert.Equal(t, 3, layout.PieceCount())
}

func TestBestFit_PicksTightestShelf(t *testing.T) {
	// After the first two pieces, shelf 0 has 80 units left and shelf 1 has 30.
	// First-fit would use shelf 0; best-fit uses shelf 1 which leaves 0.
	layout, err := BestFit(defaultTestSettings(), pieces(
		[2]int{100, 30},
		[2]int{150, 200},
		[2]int{100, 250},
	))
	require.NoError(t, err)

	require.Equal(t, 1, layout.PlateCount())
	shelves := layout.Plates[0].Shelves
	require.Len(t, shelves, 2)
	require.Len(t, shelves[1].Pieces, 2)
	placed := shelves[1].Pieces[1]
	assert.Equal(t, 30, placed.Width)
	assert.Equal(t, 250, placed.X)
	assert.Equal(t, 150, placed.Y)
}

func TestBestFit_SortsByHeightThenWidth(t *testing.T) {
	layout, err := BestFit(defaultTestSettings(), pieces(
		[2]int{50, 40},
		[2]int{80, 60},
		[2]int{80, 90},
	))
	require.NoError(t, err)

	first := layout.Plates[0].Shelves[0].Pieces
	require.Len(t, first, 3)
	assert.Equal(t, [2]int{80, 90}, [2]int{first[0].Height, first[0].Width})
	assert.Equal(t, [2]int{80, 60}, [2]int{first[1].Height, first[1].Width})
	assert.Equal(t, [2]int{50, 40}, [2]int{first[2].Height, first[2].Width})
}

func TestBestFit_OpensNewPlate(t *testing.T) {
	layout, err := BestFit(defaultTestSettings(), squares(2, 200))
	require.NoError(t, err)
	assert.Equal(t, 2, layout.PlateCount())
}

func TestBestFit_ReusesEarlierPlate(t *testing.T) {
	// The 200x200 pieces force two plates; the small piece then fits as a new
	// shelf below either of them.
	layout, err := BestFit(defaultTestSettings(), pieces(
		[2]int{200, 200},
		[2]int{200, 200},
		[2]int{60, 280},
	))
	require.NoError(t, err)
	assert.Equal(t, 2, layout.PlateCount())
	assert.Equal(t, 2, layout.Plates[0].PieceCount())
}

func TestBestFit_DoesNotReorderInput(t *testing.T) {
	in := pieces([2]int{10, 10}, [2]int{50, 50}, [2]int{30, 30})
	_, err := BestFit(defaultTestSettings(), in)
	require.NoError(t, err)
	assert.Equal(t, 10, in[0].Height)
	assert.Equal(t, 50, in[1].Height)
	assert.Equal(t, 30, in[2].Height)
}

func TestBestFit_PlacementError(t *testing.T) {
	_, err := BestFit(defaultTestSettings(), pieces([2]int{10, 10}, [2]int{281, 10}))
	var pe *model.PlacementError
	assert.True(t, errors.As(err, &pe))
}

func TestSolveBestFit_Result(t *testing.T) {
	res, err := SolveBestFit(context.Background(), defaultTestSettings(), squares(3, 100))
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmBestFit, res.Algorithm)
	assert.Equal(t, 1, res.Units)
	assert.InDelta(t, 1008.0, res.Cost, 1e-9)
	require.NotNil(t, res.Layout)
}
