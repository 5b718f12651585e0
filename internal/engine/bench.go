package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// BenchmarkInstance is one weight set fed to the partition benchmark.
type BenchmarkInstance struct {
	ID      string
	Weights []float64
}

// BenchmarkRow holds the metrics collected for one instance.
type BenchmarkRow struct {
	Instance BenchmarkInstance

	BruteForceDifference float64
	BruteForceTime       time.Duration
	BruteForceEffort     int64

	BranchAndBoundDifference float64
	BranchAndBoundTime       time.Duration
	BranchAndBoundEffort     int64

	GreedyDifference float64
	GreedyTime       time.Duration

	Consistent              bool
	HeuristicMatchesOptimal bool
}

// GenerateBenchmarkInstances builds samplesPerSize random instances of integer
// weights in [1, 100] for every size, followed by two adversarial instances
// where the greedy heuristic is known to do poorly.
func GenerateBenchmarkInstances(sizes []int, samplesPerSize int, seed int64) []BenchmarkInstance {
	rng := rand.New(rand.NewSource(seed))

	var instances []BenchmarkInstance
	for _, n := range sizes {
		for s := 0; s < samplesPerSize; s++ {
			w := make([]float64, n)
			for i := range w {
				w[i] = float64(rng.Intn(100) + 1)
			}
			instances = append(instances, BenchmarkInstance{ID: fmt.Sprintf("rand_%d_%d", n, s), Weights: w})
		}
	}

	instances = append(instances,
		BenchmarkInstance{ID: "adversarial_12_a", Weights: adversarial(50, 49, 1)},
		BenchmarkInstance{ID: "adversarial_12_b", Weights: adversarial(60, 40, 2)},
	)
	return instances
}

// adversarial returns two large weights followed by ten copies of small.
func adversarial(a, b, small float64) []float64 {
	w := []float64{a, b}
	for i := 0; i < 10; i++ {
		w = append(w, small)
	}
	return w
}

// PartitionBenchmark runs the three partition solvers on every instance.
func PartitionBenchmark(instances []BenchmarkInstance) []BenchmarkRow {
	rows := make([]BenchmarkRow, 0, len(instances))
	for _, inst := range instances {
		row := BenchmarkRow{Instance: inst}

		start := time.Now()
		bf := PartitionBruteForce(inst.Weights)
		row.BruteForceTime = time.Since(start)
		row.BruteForceDifference = bf.Difference
		row.BruteForceEffort = bf.Effort

		start = time.Now()
		bnb := PartitionBranchAndBound(inst.Weights)
		row.BranchAndBoundTime = time.Since(start)
		row.BranchAndBoundDifference = bnb.Difference
		row.BranchAndBoundEffort = bnb.Effort

		start = time.Now()
		greedy := PartitionGreedy(inst.Weights)
		row.GreedyTime = time.Since(start)
		row.GreedyDifference = greedy.Difference

		row.Consistent = absDiff(bf.Difference, bnb.Difference) < costEpsilon
		row.HeuristicMatchesOptimal = absDiff(bf.Difference, greedy.Difference) < costEpsilon
		rows = append(rows, row)
	}
	return rows
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

var benchmarkHeader = []string{
	"id", "n", "instance",
	"bf_best_diff", "bf_seconds", "bf_partitions",
	"bnb_best_diff", "bnb_seconds", "bnb_nodes",
	"greedy_best_diff", "greedy_seconds", "greedy_matches_optimal",
}

// WriteBenchmarkCSV writes the rows as CSV with a header line.
func WriteBenchmarkCSV(w io.Writer, rows []BenchmarkRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(benchmarkHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		weights := make([]string, len(r.Instance.Weights))
		for i, v := range r.Instance.Weights {
			weights[i] = formatFloat(v)
		}
		record := []string{
			r.Instance.ID,
			strconv.Itoa(len(r.Instance.Weights)),
			strings.Join(weights, ";"),
			formatFloat(r.BruteForceDifference),
			formatFloat(r.BruteForceTime.Seconds()),
			strconv.FormatInt(r.BruteForceEffort, 10),
			formatFloat(r.BranchAndBoundDifference),
			formatFloat(r.BranchAndBoundTime.Seconds()),
			strconv.FormatInt(r.BranchAndBoundEffort, 10),
			formatFloat(r.GreedyDifference),
			formatFloat(r.GreedyTime.Seconds()),
			strconv.FormatBool(r.HeuristicMatchesOptimal),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Instance.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
