package importer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/PlateCut/internal/model"
)

// LineError reports a malformed line in a piece list file.
type LineError struct {
	Line   int
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// LoadPieces reads a piece list file. Warnings are logged and returned.
func LoadPieces(path string) ([]model.Piece, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening piece list: %w", err)
	}
	defer f.Close()

	pieces, warnings, err := ParsePieces(f)
	if err != nil {
		return nil, warnings, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, w := range warnings {
		slog.Warn(w, "file", path)
	}
	return pieces, warnings, nil
}

// ParsePieces reads the line-oriented piece list format. Blank lines are
// ignored. The first line holds the expected piece count; each following line
// is one of:
//
//	weight
//	height width
//	height width weight
//
// A weight-only line becomes a 1 x round(weight) piece carrying the weight.
// A count that does not match the pieces read is reported as a warning.
func ParsePieces(r io.Reader) ([]model.Piece, []string, error) {
	scanner := bufio.NewScanner(r)

	var (
		pieces   []model.Piece
		warnings []string
		expected = -1
		lineNum  int
	)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if expected < 0 {
			n, err := strconv.Atoi(fields[0])
			if err != nil || n < 0 || len(fields) > 1 {
				return nil, warnings, &LineError{Line: lineNum, Reason: fmt.Sprintf("invalid piece count %q", scanner.Text())}
			}
			expected = n
			continue
		}

		if len(fields) > 3 {
			warnings = append(warnings, fmt.Sprintf("line %d: ignoring %d extra fields", lineNum, len(fields)-3))
			fields = fields[:3]
		}
		p, err := parsePieceLine(fields, len(pieces)+1)
		if err != nil {
			return nil, warnings, &LineError{Line: lineNum, Reason: err.Error()}
		}
		pieces = append(pieces, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("scanning piece list: %w", err)
	}

	if expected >= 0 && expected != len(pieces) {
		warnings = append(warnings, fmt.Sprintf("header declares %d pieces but %d were read", expected, len(pieces)))
	}
	return pieces, warnings, nil
}

func parsePieceLine(fields []string, index int) (model.Piece, error) {
	label := fmt.Sprintf("P%d", index)

	if len(fields) == 1 {
		weight, err := parseWeight(fields[0])
		if err != nil {
			return model.Piece{}, err
		}
		width := int(math.Round(weight))
		if width <= 0 {
			return model.Piece{}, fmt.Errorf("weight %s gives a piece with no width", fields[0])
		}
		return model.NewWeightedPiece(label, 1, width, weight), nil
	}

	h, err := parseDimension("height", fields[0])
	if err != nil {
		return model.Piece{}, err
	}
	w, err := parseDimension("width", fields[1])
	if err != nil {
		return model.Piece{}, err
	}
	if len(fields) == 2 {
		return model.NewPiece(label, h, w), nil
	}

	weight, err := parseWeight(fields[2])
	if err != nil {
		return model.Piece{}, err
	}
	return model.NewWeightedPiece(label, h, w, weight), nil
}

func parseDimension(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", name, v)
	}
	return v, nil
}

func parseWeight(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("weight must not be negative, got %s", s)
	}
	return v, nil
}
