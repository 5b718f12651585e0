package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PlateCut/internal/engine"
)

const comparisonSheet = "Comparison"

var comparisonHeader = []interface{}{
	"Algorithm", "Cost", "Plates", "Waste %", "Effort", "Pruned", "Skipped", "Timed Out", "Seconds", "Error",
}

// ExportComparisonXLSX writes one row per algorithm of a scenario comparison.
func ExportComparisonXLSX(path string, results []engine.ComparisonResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), comparisonSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(comparisonSheet, "A1", &comparisonHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	if err := f.SetRowStyle(comparisonSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range results {
		row := []interface{}{string(r.Algorithm)}
		if r.Err != nil {
			row = append(row, "", "", "", "", "", "", "", "", r.Err.Error())
		} else {
			row = append(row,
				r.Result.Cost,
				r.PlatesUsed,
				r.WastePercent,
				r.Result.Effort,
				r.Result.Pruned,
				r.Result.Skipped,
				r.Result.TimedOut,
				r.Result.Elapsed.Seconds(),
				"",
			)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(comparisonSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(comparisonSheet, "A", "A", 22); err != nil {
		return err
	}
	return f.SaveAs(path)
}
