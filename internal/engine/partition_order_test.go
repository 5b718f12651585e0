package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sort"
	"testing"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolvePartitionOrder_EvaluatesEverySplit(t *testing.T) {
	in := pieces([2]int{100, 100}, [2]int{50, 200}, [2]int{80, 120}, [2]int{40, 40})
	res, err := SolvePartitionOrder(context.Background(), defaultTestSettings(), in)
	require.NoError(t, err)

	// Subsets of size 0, 1 and 2 of four pieces.
	assert.Equal(t, int64(1+4+6), res.Effort)
	assert.Equal(t, int64(0), res.Skipped)
	require.NotNil(t, res.Layout)
	assert.Equal(t, len(in), res.Layout.PieceCount())

	groups := append(append([]int{}, res.Group1...), res.Group2...)
	sort.Ints(groups)
	assert.Equal(t, []int{0, 1, 2, 3}, groups)
}

func TestSolvePartitionOrder_NeverBeatsOptimum(t *testing.T) {
	ctx := context.Background()
	in := mixedPieces()

	opt, err := SolveBranchAndBound(ctx, exactSettings(), in)
	require.NoError(t, err)
	res, err := SolvePartitionOrder(ctx, defaultTestSettings(), in)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Cost, opt.Cost-1e-9)
}

func TestSolvePartitionOrder_ThreeSquares(t *testing.T) {
	res, err := SolvePartitionOrder(context.Background(), defaultTestSettings(), squares(3, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Units)
}

func TestSolvePartitionOrder_SkipsUnpackableSplits(t *testing.T) {
	var buf bytes.Buffer
	ctx := contextWithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := SolvePartitionOrder(ctx, defaultTestSettings(), pieces([2]int{10, 10}, [2]int{300, 10}, [2]int{20, 20}))

	var pe *model.PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 300, pe.Piece.Height)
	assert.Contains(t, buf.String(), "skipping partition that cannot be packed")
}

func TestSolvePartitionOrder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := SolvePartitionOrder(ctx, defaultTestSettings(), squares(3, 100))
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, int64(1), res.Effort)
	require.NotNil(t, res.Layout)
	assert.Equal(t, 3, res.Layout.PieceCount())
	assert.Greater(t, res.Cost, 0.0)
}
