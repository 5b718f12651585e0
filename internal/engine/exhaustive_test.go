package engine

import (
	"context"
	"testing"
	"time"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveExhaustive_EvaluatesEveryPermutation(t *testing.T) {
	res, err := SolveExhaustive(context.Background(), defaultTestSettings(), pieces(
		[2]int{100, 100}, [2]int{50, 200}, [2]int{80, 120}, [2]int{40, 40},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(24), res.Effort)
	assert.False(t, res.TimedOut)
	require.NotNil(t, res.Layout)
	assert.Equal(t, 4, res.Layout.PieceCount())
}

func TestSolveExhaustive_ThreeSquares(t *testing.T) {
	res, err := SolveExhaustive(context.Background(), defaultTestSettings(), squares(3, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Units)
	assert.InDelta(t, 1008.0, res.Cost, 1e-9)
}

func TestSolveExhaustive_TimeoutReturnsPartialResult(t *testing.T) {
	s := defaultTestSettings()
	s.TimeLimit = 50 * time.Millisecond

	in := make([]model.Piece, 0, 15)
	for i := 0; i < 15; i++ {
		in = append(in, model.NewPiece("", 20+i*5, 30+i*3))
	}

	res, err := SolveExhaustive(context.Background(), s, in)
	require.NoError(t, err)

	const factorial15 = int64(1307674368000)
	assert.True(t, res.TimedOut)
	assert.Greater(t, res.Effort, int64(0))
	assert.Less(t, res.Effort, factorial15)
	require.NotNil(t, res.Layout)
	assert.Equal(t, 15, res.Layout.PieceCount())
}

func TestSolveExhaustive_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := SolveExhaustive(ctx, defaultTestSettings(), squares(3, 100))
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, int64(1), res.Effort)
	require.NotNil(t, res.Layout)
	assert.Equal(t, 1, res.Layout.PlateCount())
	assert.InDelta(t, 1008.0, res.Cost, 1e-9)
	assert.Equal(t, 1, res.Units)
}

func TestSolveExhaustive_Empty(t *testing.T) {
	res, err := SolveExhaustive(context.Background(), defaultTestSettings(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Cost)
	require.NotNil(t, res.Layout)
	assert.Equal(t, 0, res.Layout.PlateCount())
}

func TestNextPermutation(t *testing.T) {
	idx := []int{0, 1, 2}
	var seen [][]int
	for {
		seen = append(seen, append([]int{}, idx...))
		if !nextPermutation(idx) {
			break
		}
	}
	assert.Equal(t, [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}, seen)
}
