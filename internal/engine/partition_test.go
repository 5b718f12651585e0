package engine

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertIsPartition(t *testing.T, n int, pr model.PartitionResult) {
	t.Helper()
	all := append(append([]int{}, pr.Group1...), pr.Group2...)
	sort.Ints(all)
	require.Len(t, all, n)
	for i, v := range all {
		assert.Equal(t, i, v)
	}
}

// The weights sum to 150 and are all multiples of 10, so no split reaches 75/75.
func TestPartition_TenToFifty(t *testing.T) {
	weights := []float64{10, 20, 30, 40, 50}

	for name, solve := range map[string]PartitionFunc{
		"brute force":      PartitionBruteForce,
		"branch and bound": PartitionBranchAndBound,
	} {
		t.Run(name, func(t *testing.T) {
			pr := solve(weights)
			assert.Equal(t, 10.0, pr.Difference)
			assertIsPartition(t, len(weights), pr)
			s1, s2 := pr.Sums(weights)
			assert.Equal(t, 150.0, s1+s2)
			assert.Equal(t, pr.Difference, math.Abs(s1-s2))
		})
	}

	cmp, err := ComparePartition(weights)
	require.NoError(t, err)
	assert.True(t, cmp.Consistent)
	assert.True(t, cmp.HeuristicMatchesOptimal)
}

func TestPartition_EvenSplit(t *testing.T) {
	weights := []float64{10, 20, 30, 40, 60}
	for _, solve := range []PartitionFunc{PartitionBruteForce, PartitionBranchAndBound} {
		pr := solve(weights)
		assert.Equal(t, 0.0, pr.Difference)
		s1, s2 := pr.Sums(weights)
		assert.Equal(t, s1, s2)
	}
}

func TestPartitionBranchAndBound_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n <= 12; n++ {
		for sample := 0; sample < 5; sample++ {
			weights := make([]float64, n)
			for i := range weights {
				weights[i] = float64(rng.Intn(100) + 1)
			}

			bf := PartitionBruteForce(weights)
			bnb := PartitionBranchAndBound(weights)
			assert.InDelta(t, bf.Difference, bnb.Difference, 1e-9, "weights %v", weights)
			assertIsPartition(t, n, bnb)

			s1, s2 := bnb.Sums(weights)
			assert.InDelta(t, bnb.Difference, abs(s1-s2), 1e-9)
		}
	}
}

func TestPartitionBruteForce_Effort(t *testing.T) {
	// k=0: 1, k=1: 4, k=2: 6
	pr := PartitionBruteForce([]float64{1, 2, 3, 4})
	assert.Equal(t, int64(11), pr.Effort)
}

func TestPartitionBranchAndBound_FractionalWeights(t *testing.T) {
	weights := []float64{0.1, 0.2, 0.3}
	pr := PartitionBranchAndBound(weights)
	assert.InDelta(t, 0.0, pr.Difference, 1e-9)
}

func TestPartitionGreedy_TiesFavourGroupOne(t *testing.T) {
	pr := PartitionGreedy([]float64{5, 5})
	assert.Equal(t, []int{0}, pr.Group1)
	assert.Equal(t, []int{1}, pr.Group2)
	assert.Equal(t, 0.0, pr.Difference)
	assert.Equal(t, int64(2), pr.Effort)
}

func TestPartitionGreedy_CanMissOptimum(t *testing.T) {
	weights := []float64{3, 3, 2, 2, 2}
	pr := PartitionGreedy(weights)
	assert.Equal(t, 2.0, pr.Difference)
	assert.Equal(t, []int{0, 2, 4}, pr.Group1)
	assert.Equal(t, []int{1, 3}, pr.Group2)

	cmp, err := ComparePartition(weights)
	require.NoError(t, err)
	assert.True(t, cmp.Consistent)
	assert.False(t, cmp.HeuristicMatchesOptimal)
	assert.Equal(t, 0.0, cmp.Results[model.AlgorithmPartitionBranchAndBound].Difference)
}

func TestPartition_Empty(t *testing.T) {
	for _, solve := range []PartitionFunc{PartitionBruteForce, PartitionBranchAndBound, PartitionGreedy} {
		pr := solve(nil)
		assert.Equal(t, 0.0, pr.Difference)
		assert.Empty(t, pr.Group1)
		assert.Empty(t, pr.Group2)
	}
}

func TestComparePartition_Subset(t *testing.T) {
	cmp, err := ComparePartition([]float64{4, 5, 6, 7, 8}, model.AlgorithmPartitionBruteForce, model.AlgorithmPartitionGreedy)
	require.NoError(t, err)
	assert.Len(t, cmp.Results, 2)
	assert.True(t, cmp.Consistent)
	// 4+5+6 = 15 vs 7+8 = 15, greedy ends at 8+5+4 = 17 vs 7+6 = 13
	assert.False(t, cmp.HeuristicMatchesOptimal)
}

func TestComparePartition_UnknownAlgorithm(t *testing.T) {
	_, err := ComparePartition([]float64{1, 2}, model.AlgorithmBestFit)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestForEachCombination(t *testing.T) {
	var got [][]int
	forEachCombination(4, 2, func(c []int) bool {
		got = append(got, append([]int{}, c...))
		return true
	})
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
