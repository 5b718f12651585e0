// Package importer reads piece lists: the line-oriented text format, CSV and
// Excel sheets with automatic column detection, and DXF drawings.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/PlateCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a spreadsheet or drawing import.
type ImportResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Height   int
	Width    int
	Quantity int
	Weight   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "piece", "part", "description", "desc", "item", "id"},
	"height":   {"height", "h", "altura", "y"},
	"width":    {"width", "w", "largura", "length", "len", "x"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"weight":   {"weight", "wt", "mass", "peso"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries comma,
// semicolon, tab and pipe; the one giving the most consistent multi-column
// rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against known aliases. When no header is
// recognised the positional mapping Label, Height, Width, Quantity, Weight
// is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Height: -1, Width: -1, Quantity: -1, Weight: -1}
	slots := map[string]*int{
		"label":    &mapping.Label,
		"height":   &mapping.Height,
		"width":    &mapping.Width,
		"quantity": &mapping.Quantity,
		"weight":   &mapping.Weight,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Height: 1, Width: 2, Quantity: 3, Weight: 4}, false
	}
	return mapping, true
}

// getCell returns the trimmed cell value, or "" when idx is out of range.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseWhole parses a positive dimension. Fractional values are rounded and
// reported through the returned warning.
func parseWhole(name, s, rowLabel string) (int, string, string) {
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name), ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s), ""
	}
	rounded := math.Round(v)
	if rounded <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, name), ""
	}
	var warning string
	if rounded != v {
		warning = fmt.Sprintf("%s: %s %s rounded to %d", rowLabel, name, s, int(rounded))
	}
	return int(rounded), "", warning
}

// parseRow expands a row into quantity pieces using the given column mapping.
// Returns the pieces, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) ([]model.Piece, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("P%d", pieceCount+1)
	}

	height, errMsg, warn := parseWhole("height", getCell(row, mapping.Height), rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	if warn != "" {
		warnings = append(warnings, warn)
	}
	width, errMsg, warn := parseWhole("width", getCell(row, mapping.Width), rowLabel)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	if warn != "" {
		warnings = append(warnings, warn)
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		v, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if v <= 0 {
			return nil, fmt.Sprintf("%s: quantity must be positive", rowLabel), nil
		}
		qty = v
	}

	var (
		weight    float64
		hasWeight bool
	)
	if weightStr := getCell(row, mapping.Weight); weightStr != "" {
		v, err := strconv.ParseFloat(weightStr, 64)
		if err != nil || v < 0 {
			return nil, fmt.Sprintf("%s: Invalid weight '%s'", rowLabel, weightStr), nil
		}
		weight, hasWeight = v, true
	}

	pieces := make([]model.Piece, 0, qty)
	for i := 0; i < qty; i++ {
		l := label
		if qty > 1 {
			l = fmt.Sprintf("%s #%d", label, i+1)
		}
		if hasWeight {
			pieces = append(pieces, model.NewWeightedPiece(l, height, width, weight))
		} else {
			pieces = append(pieces, model.NewPiece(l, height, width))
		}
	}
	return pieces, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports pieces from a CSV file, detecting the delimiter and
// mapping columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("File is empty")
	}
	return records, nil
}

// ImportExcel imports pieces from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognised header still has a non-numeric height cell.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pieces, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Pieces))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Pieces = append(result.Pieces, pieces...)
	}

	return result
}
