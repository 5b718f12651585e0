package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/PlateCut/internal/model"
)

// PartitionBruteForce enumerates every subset of size 0..n/2 as group 1 and
// keeps the first one with the smallest difference. Effort counts subsets.
func PartitionBruteForce(weights []float64) model.PartitionResult {
	n := len(weights)
	total := sum(weights)

	res := model.PartitionResult{Difference: math.Inf(1)}
	var best []int
	for k := 0; k <= n/2; k++ {
		forEachCombination(n, k, func(comb []int) bool {
			res.Effort++
			s := 0.0
			for _, i := range comb {
				s += weights[i]
			}
			if diff := math.Abs(total - 2*s); diff < res.Difference {
				res.Difference = diff
				best = append(best[:0], comb...)
			}
			return true
		})
	}

	res.Group1 = append([]int{}, best...)
	res.Group2 = complement(n, res.Group1)
	return res
}

// forEachCombination calls fn with every k-subset of 0..n-1 in lexicographic
// order. fn must not retain comb; returning false stops the enumeration.
func forEachCombination(n, k int, fn func(comb []int) bool) {
	if k < 0 || k > n {
		return
	}
	comb := identity(k)
	for {
		if !fn(comb) {
			return
		}
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
}

// partitionFrame is one node of the include/exclude tree. stage 0 means not
// yet entered, 1 means the include branch has been pushed, 2 the exclude branch.
type partitionFrame struct {
	i     int
	sum   float64
	stage uint8
}

// PartitionBranchAndBound runs a depth-first include/exclude search over the
// weights sorted in descending order. A node is pruned when the best difference
// reachable from its running sum, given the weight still unassigned, cannot
// beat the incumbent. Effort counts nodes entered.
func PartitionBranchAndBound(weights []float64) model.PartitionResult {
	n := len(weights)
	total := sum(weights)
	half := total / 2

	sorted := identity(n)
	sort.SliceStable(sorted, func(a, b int) bool { return weights[sorted[a]] > weights[sorted[b]] })
	w := make([]float64, n)
	for i, idx := range sorted {
		w[i] = weights[idx]
	}

	// rest[i] = w[i] + ... + w[n-1]
	rest := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		rest[i] = rest[i+1] + w[i]
	}

	res := model.PartitionResult{Difference: math.Inf(1)}
	inGroup := make([]bool, n)
	bestFlags := make([]bool, n)

	stack := []partitionFrame{{}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		switch top.stage {
		case 0:
			res.Effort++
			lo, hi := top.sum, top.sum+rest[top.i]
			lower := 0.0
			if half < lo || half > hi {
				lower = math.Min(math.Abs(total-2*lo), math.Abs(total-2*hi))
			}
			if lower >= res.Difference {
				stack = stack[:len(stack)-1]
				continue
			}
			if top.i == n {
				if diff := math.Abs(total - 2*top.sum); diff < res.Difference {
					res.Difference = diff
					copy(bestFlags, inGroup)
				}
				stack = stack[:len(stack)-1]
				continue
			}
			top.stage = 1
			inGroup[top.i] = true
			stack = append(stack, partitionFrame{i: top.i + 1, sum: top.sum + w[top.i]})
		case 1:
			top.stage = 2
			inGroup[top.i] = false
			stack = append(stack, partitionFrame{i: top.i + 1, sum: top.sum})
		default:
			stack = stack[:len(stack)-1]
		}
	}

	res.Group1 = []int{}
	for i, in := range bestFlags {
		if in {
			res.Group1 = append(res.Group1, sorted[i])
		}
	}
	res.Group2 = complement(n, res.Group1)
	return res
}

// PartitionGreedy assigns the weights, heaviest first, to whichever group is
// lighter at the time. Ties go to group 1. Effort counts assignments.
func PartitionGreedy(weights []float64) model.PartitionResult {
	sorted := identity(len(weights))
	sort.SliceStable(sorted, func(a, b int) bool { return weights[sorted[a]] > weights[sorted[b]] })

	res := model.PartitionResult{Group1: []int{}, Group2: []int{}}
	var sum1, sum2 float64
	for _, idx := range sorted {
		res.Effort++
		if sum1 <= sum2 {
			res.Group1 = append(res.Group1, idx)
			sum1 += weights[idx]
		} else {
			res.Group2 = append(res.Group2, idx)
			sum2 += weights[idx]
		}
	}
	res.Difference = math.Abs(sum1 - sum2)
	return res
}

// PartitionFunc is the common signature of the partition solvers.
type PartitionFunc func(weights []float64) model.PartitionResult

// partitionSolvers maps each partition algorithm to its implementation.
var partitionSolvers = map[model.Algorithm]PartitionFunc{
	model.AlgorithmPartitionBruteForce:     PartitionBruteForce,
	model.AlgorithmPartitionBranchAndBound: PartitionBranchAndBound,
	model.AlgorithmPartitionGreedy:         PartitionGreedy,
}

// PartitionComparison holds the outcome of running several partition solvers on the same weights.
type PartitionComparison struct {
	Algorithms []model.Algorithm
	Results    map[model.Algorithm]model.PartitionResult

	// Consistent is false when two exact solvers disagree on the difference.
	Consistent bool
	// HeuristicMatchesOptimal reports whether the greedy difference equals the
	// exact one. Only meaningful when both kinds were run.
	HeuristicMatchesOptimal bool
}

// ComparePartition runs the given partition solvers (all of them when none are
// given) and cross-checks their differences within a 1e-9 tolerance.
func ComparePartition(weights []float64, algorithms ...model.Algorithm) (PartitionComparison, error) {
	if len(algorithms) == 0 {
		algorithms = model.PartitionAlgorithms
	}

	cmp := PartitionComparison{
		Algorithms: algorithms,
		Results:    make(map[model.Algorithm]model.PartitionResult, len(algorithms)),
		Consistent: true,
	}
	for _, alg := range algorithms {
		solve, ok := partitionSolvers[alg]
		if !ok {
			return PartitionComparison{}, fmt.Errorf("%w: %q is not a partition algorithm", ErrUnknownAlgorithm, alg)
		}
		cmp.Results[alg] = solve(weights)
	}

	exact := math.NaN()
	for _, alg := range algorithms {
		if alg == model.AlgorithmPartitionGreedy {
			continue
		}
		d := cmp.Results[alg].Difference
		if math.IsNaN(exact) {
			exact = d
		} else if math.Abs(exact-d) > costEpsilon {
			cmp.Consistent = false
		}
	}

	if greedy, ok := cmp.Results[model.AlgorithmPartitionGreedy]; ok && !math.IsNaN(exact) {
		cmp.HeuristicMatchesOptimal = math.Abs(greedy.Difference-exact) < costEpsilon
	}
	return cmp, nil
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// complement returns the indices 0..n-1 not in group, ascending.
func complement(n int, group []int) []int {
	in := make([]bool, n)
	for _, i := range group {
		in[i] = true
	}
	out := []int{}
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}
