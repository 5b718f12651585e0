package model

import (
	"fmt"
	"time"
)

// Algorithm represents the solver to use.
type Algorithm string

const (
	AlgorithmBruteForce     Algorithm = "brute-force"      // Every permutation of the pieces (tiny inputs only)
	AlgorithmBranchAndBound Algorithm = "branch-and-bound" // Exact search over orderings with pruning
	AlgorithmBestFit        Algorithm = "best-fit"         // Best-fit decreasing height shelf heuristic (fast)
	AlgorithmGenetic        Algorithm = "genetic"          // Genetic search over orderings
	AlgorithmPartitionOrder Algorithm = "partition-order"  // Cutting cost of every two-group weight split

	AlgorithmPartitionBruteForce     Algorithm = "partition-brute-force"
	AlgorithmPartitionBranchAndBound Algorithm = "partition-branch-and-bound"
	AlgorithmPartitionGreedy         Algorithm = "partition-greedy"
)

// CuttingAlgorithms lists the solvers for the plate cutting problem.
var CuttingAlgorithms = []Algorithm{
	AlgorithmBruteForce,
	AlgorithmBranchAndBound,
	AlgorithmBestFit,
	AlgorithmGenetic,
	AlgorithmPartitionOrder,
}

// PartitionAlgorithms lists the solvers for the two-group weight partition problem.
var PartitionAlgorithms = []Algorithm{
	AlgorithmPartitionBruteForce,
	AlgorithmPartitionBranchAndBound,
	AlgorithmPartitionGreedy,
}

// IsPartition reports whether the algorithm solves the weight partition problem.
func (a Algorithm) IsPartition() bool {
	for _, p := range PartitionAlgorithms {
		if a == p {
			return true
		}
	}
	return false
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	if a.IsPartition() {
		return true
	}
	for _, c := range CuttingAlgorithms {
		if a == c {
			return true
		}
	}
	return false
}

// ParseAlgorithm converts a user-supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown algorithm %q", s)
	}
	return a, nil
}

// Settings holds the plate, cost and search configuration.
type Settings struct {
	Algorithm Algorithm `json:"algorithm"`

	// Plate
	PlateHeight int `json:"plate_height"` // Usable plate height
	PlateWidth  int `json:"plate_width"`  // Usable plate width

	// Cost model
	PlateCost    float64 `json:"plate_cost"`    // Material cost per plate
	EnergyFactor float64 `json:"energy_factor"` // Energy units to currency

	// Search
	TimeLimit         time.Duration `json:"time_limit"`          // 0 = unlimited
	SeedWithHeuristic bool          `json:"seed_with_heuristic"` // Seed branch-and-bound with best-fit
	GeneticSeed       int64         `json:"genetic_seed"`

	// CNC output
	Machine MachineSettings `json:"machine"`
}

// MachineSettings configures G-code generation for a layout.
type MachineSettings struct {
	Units        string  `json:"units"`         // "mm" or "cm"; piece dimensions are in these units
	Scale        float64 `json:"scale"`         // Multiplier from layout units to machine units
	ToolDiameter float64 `json:"tool_diameter"` // End mill diameter
	FeedRate     float64 `json:"feed_rate"`     // Cutting feed rate per minute
	PlungeRate   float64 `json:"plunge_rate"`   // Plunge feed rate per minute
	SpindleSpeed int     `json:"spindle_speed"` // RPM
	SafeZ        float64 `json:"safe_z"`        // Safe retract height
	CutDepth     float64 `json:"cut_depth"`     // Total material thickness
	PassDepth    float64 `json:"pass_depth"`    // Depth per pass
	GCodeProfile string  `json:"gcode_profile"` // Name of the G-code profile to use
}

// PlateArea returns the usable plate area.
func (s Settings) PlateArea() int {
	return s.PlateHeight * s.PlateWidth
}

// Validate checks that the settings describe a usable plate and cost model.
func (s Settings) Validate() error {
	if s.PlateHeight <= 0 || s.PlateWidth <= 0 {
		return fmt.Errorf("plate dimensions must be positive, got %dx%d", s.PlateHeight, s.PlateWidth)
	}
	if s.PlateCost < 0 || s.EnergyFactor < 0 {
		return fmt.Errorf("plate cost and energy factor must not be negative")
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("time limit must not be negative")
	}
	return nil
}

func DefaultSettings() Settings {
	return Settings{
		Algorithm:         AlgorithmBranchAndBound,
		PlateHeight:       280,
		PlateWidth:        280,
		PlateCost:         1000.0,
		EnergyFactor:      0.01,
		TimeLimit:         0,
		SeedWithHeuristic: true,
		GeneticSeed:       42,
		Machine: MachineSettings{
			Units:        "mm",
			Scale:        10.0, // Layout units are cm
			ToolDiameter: 6.0,
			FeedRate:     1500.0,
			PlungeRate:   500.0,
			SpindleSpeed: 18000,
			SafeZ:        5.0,
			CutDepth:     18.0,
			PassDepth:    6.0,
			GCodeProfile: "Generic",
		},
	}
}
