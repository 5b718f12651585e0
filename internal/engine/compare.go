package engine

import (
	"context"

	"github.com/piwi3910/PlateCut/internal/model"
)

// Piece-count limits above which the factorial searches are left out of the
// default comparison.
const (
	maxBruteForcePieces     = 8
	maxPartitionOrderPieces = 16
)

// ComparisonResult holds the solver result and summary statistics for one algorithm.
type ComparisonResult struct {
	Algorithm    model.Algorithm
	Result       model.Result
	Err          error
	PlatesUsed   int
	WastePercent float64
}

// CompareAlgorithms runs each cutting algorithm on the same pieces, one after
// another, and returns the results in the given order. A failing algorithm is
// reported in its entry rather than aborting the comparison.
func CompareAlgorithms(ctx context.Context, algorithms []model.Algorithm, settings model.Settings, pieces []model.Piece, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(algorithms))

	for _, alg := range algorithms {
		cr := ComparisonResult{Algorithm: alg}
		s, err := NewSolver(alg, settings, opts...)
		if err == nil {
			cr.Result, err = s.Solve(ctx, pieces)
		}
		cr.Err = err
		if err == nil && cr.Result.Layout != nil {
			cr.PlatesUsed = cr.Result.Layout.PlateCount()
			cr.WastePercent = 100.0 - cr.Result.Layout.TotalEfficiency()
		}
		results = append(results, cr)
	}

	return results
}

// DefaultComparisonAlgorithms returns the cutting algorithms worth comparing
// for n pieces, leaving out the exhaustive ones when n is too large.
func DefaultComparisonAlgorithms(n int) []model.Algorithm {
	algs := []model.Algorithm{model.AlgorithmBestFit, model.AlgorithmGenetic, model.AlgorithmBranchAndBound}
	if n <= maxPartitionOrderPieces {
		algs = append(algs, model.AlgorithmPartitionOrder)
	}
	if n <= maxBruteForcePieces {
		algs = append(algs, model.AlgorithmBruteForce)
	}
	return algs
}

// Cheapest returns the successful entry with a layout and the lowest cost, or false.
func Cheapest(results []ComparisonResult) (ComparisonResult, bool) {
	var best ComparisonResult
	found := false
	for _, r := range results {
		if r.Err != nil || r.Result.Layout == nil {
			continue
		}
		if !found || r.Result.Cost < best.Result.Cost {
			best, found = r, true
		}
	}
	return best, found
}
