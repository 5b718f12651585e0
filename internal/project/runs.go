package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/PlateCut/internal/model"
)

// RunFormatVersion is written into every saved run.
const RunFormatVersion = "1.0.0"

// RunRecord is a solver run saved to disk so that exports can be produced
// later without searching again.
type RunRecord struct {
	Version   string         `json:"version"`
	CreatedAt string         `json:"created_at"`
	Source    string         `json:"source,omitempty"` // Piece list the run was made from
	Settings  model.Settings `json:"settings"`
	Pieces    []model.Piece  `json:"pieces"`
	Result    model.Result   `json:"result"`
}

// NewRunRecord stamps a run with the current format version and time.
func NewRunRecord(source string, settings model.Settings, pieces []model.Piece, res model.Result) RunRecord {
	return RunRecord{
		Version:   RunFormatVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Source:    source,
		Settings:  settings,
		Pieces:    pieces,
		Result:    res,
	}
}

// SaveRun writes the run as indented JSON.
func SaveRun(path string, run RunRecord) error {
	if err := writeJSON(path, run); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// LoadRun reads a saved run. A run without a version or without a layout
// for a cutting algorithm is rejected.
func LoadRun(path string) (RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunRecord{}, fmt.Errorf("reading run: %w", err)
	}
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return RunRecord{}, fmt.Errorf("parsing run: %w", err)
	}
	if run.Version == "" {
		return RunRecord{}, errors.New("invalid run file: missing version field")
	}
	if !run.Result.Algorithm.IsPartition() && run.Result.Layout == nil {
		return RunRecord{}, errors.New("invalid run file: cutting result has no layout")
	}
	return run, nil
}
