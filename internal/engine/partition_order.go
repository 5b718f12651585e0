package engine

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
)

// SolvePartitionOrder prices the cutting plan implied by every two-group split
// of the pieces by weight. Group 1 is each subset of size 0..n/2; the order
// evaluated is group 1 followed by group 2, each heaviest first. The first
// split is evaluated before the time limit is checked.
//
// A split whose order cannot be packed is skipped and counted in Skipped
// rather than aborting the search. If no split can be packed the last
// PlacementError is returned.
func SolvePartitionOrder(ctx context.Context, settings model.Settings, pieces []model.Piece) (model.Result, error) {
	res := model.Result{Algorithm: model.AlgorithmPartitionOrder}
	n := len(pieces)
	if n == 0 {
		res.Layout = &model.Layout{}
		return res, nil
	}

	logger := loggerFrom(ctx)
	cm := newCostModel(settings)
	dl := newDeadline(ctx, settings.TimeLimit)
	work := model.CopyPieces(pieces)
	weights := model.Weights(work)

	byWeight := func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool { return weights[idx[a]] > weights[idx[b]] })
	}

	best := math.Inf(1)
	var lastErr error
	order := make([]model.Piece, 0, n)
	idx := make([]int, 0, n)

	for k := 0; k <= n/2 && !res.TimedOut; k++ {
		var evalErr error
		forEachCombination(n, k, func(comb []int) bool {
			if res.Effort > 0 && dl.expired() {
				res.TimedOut = true
				return false
			}
			res.Effort++

			group1 := append([]int{}, comb...)
			group2 := complement(n, group1)
			idx = append(idx[:0], group1...)
			byWeight(idx)
			idx = append(idx, group2...)
			byWeight(idx[len(group1):])

			cost, layout, err := cm.evaluate(orderOf(work, idx, order))
			if err != nil {
				var pe *model.PlacementError
				if !errors.As(err, &pe) {
					evalErr = err
					return false
				}
				res.Skipped++
				lastErr = err
				logger.Warn("skipping partition that cannot be packed",
					"group1", group1, "error", err)
				return true
			}
			if cost < best {
				best = cost
				l := layout
				res.Layout = &l
				res.Group1 = group1
				res.Group2 = group2
			}
			return true
		})
		if evalErr != nil {
			return model.Result{}, evalErr
		}
	}

	if res.TimedOut {
		logger.Warn("search timed out", "algorithm", res.Algorithm, "partitions", res.Effort)
	}
	if res.Layout == nil {
		if lastErr != nil {
			return model.Result{}, lastErr
		}
		return res, nil
	}
	res.Cost = best
	res.Units = res.Layout.PlateCount()
	return res, nil
}
