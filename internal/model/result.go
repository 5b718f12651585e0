package model

import (
	"fmt"
	"time"
)

// PlacementError is returned when a piece cannot be placed even on an empty plate.
type PlacementError struct {
	Piece       Piece
	PlateHeight int
	PlateWidth  int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("piece %dx%d larger than usable plate area (%dx%d)",
		e.Piece.Height, e.Piece.Width, e.PlateHeight, e.PlateWidth)
}

// Result is the common shape returned by every solver.
// For the cutting problem Cost is the monetary cost and Units the plate count;
// for the partition problem Cost is the group difference and Units the item count.
type Result struct {
	RunID     string        `json:"run_id"`
	Algorithm Algorithm     `json:"algorithm"`
	Cost      float64       `json:"cost"`
	Units     int           `json:"units"`
	Layout    *Layout       `json:"layout,omitempty"`
	Group1    []int         `json:"group1,omitempty"`
	Group2    []int         `json:"group2,omitempty"`
	Effort    int64         `json:"effort"` // Permutations, partitions or nodes explored
	Pruned    int64         `json:"pruned,omitempty"`
	Skipped   int64         `json:"skipped,omitempty"` // Orderings skipped on placement errors
	TimedOut  bool          `json:"timed_out"`
	Elapsed   time.Duration `json:"elapsed"`
}

// PlateCount returns the number of plates in the layout, or 0.
func (r Result) PlateCount() int {
	if r.Layout == nil {
		return 0
	}
	return r.Layout.PlateCount()
}

// PartitionResult holds the outcome of a weight partition solver.
type PartitionResult struct {
	Difference float64 `json:"difference"`
	Group1     []int   `json:"group1"`
	Group2     []int   `json:"group2"`
	Effort     int64   `json:"effort"`
}

// Sums returns the group weight sums for the given weights.
func (pr PartitionResult) Sums(weights []float64) (float64, float64) {
	var s1, s2 float64
	for _, i := range pr.Group1 {
		s1 += weights[i]
	}
	for _, i := range pr.Group2 {
		s2 += weights[i]
	}
	return s1, s2
}
