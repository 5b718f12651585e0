package engine

import (
	"context"
	"math"

	"github.com/piwi3910/PlateCut/internal/model"
)

// SolveExhaustive evaluates every ordering of the pieces and keeps the first
// one with the strictly lowest cost. The input order is always evaluated; the
// time limit and ctx are checked before each later permutation, and when they
// trip the best layout so far is returned with TimedOut set and Effort holding
// the number of permutations evaluated.
func SolveExhaustive(ctx context.Context, settings model.Settings, pieces []model.Piece) (model.Result, error) {
	res := model.Result{Algorithm: model.AlgorithmBruteForce}
	if len(pieces) == 0 {
		res.Layout = &model.Layout{}
		return res, nil
	}
	if err := checkPieces(settings, pieces); err != nil {
		return model.Result{}, err
	}

	cm := newCostModel(settings)
	dl := newDeadline(ctx, settings.TimeLimit)
	work := model.CopyPieces(pieces)
	idx := identity(len(work))
	order := make([]model.Piece, 0, len(work))

	best := math.Inf(1)
	for {
		if res.Effort > 0 && dl.expired() {
			res.TimedOut = true
			loggerFrom(ctx).Warn("search timed out",
				"algorithm", res.Algorithm, "permutations", res.Effort)
			break
		}
		res.Effort++

		cost, layout, err := cm.evaluate(orderOf(work, idx, order))
		if err != nil {
			return model.Result{}, err
		}
		if cost < best {
			best = cost
			l := layout
			res.Layout = &l
		}

		if !nextPermutation(idx) {
			break
		}
	}

	if res.Layout != nil {
		res.Cost = best
		res.Units = res.Layout.PlateCount()
	}
	return res, nil
}
