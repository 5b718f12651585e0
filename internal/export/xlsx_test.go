package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
)

func TestExportComparisonXLSX(t *testing.T) {
	settings := model.DefaultSettings()
	pieces := []model.Piece{
		model.NewPiece("A", 100, 100),
		model.NewPiece("B", 100, 100),
		model.NewPiece("C", 100, 100),
	}
	results := engine.CompareAlgorithms(context.Background(),
		[]model.Algorithm{model.AlgorithmBestFit, model.AlgorithmBranchAndBound}, settings, pieces)
	results = append(results, engine.ComparisonResult{Algorithm: "broken", Err: errors.New("boom")})

	path := filepath.Join(t.TempDir(), "compare.xlsx")
	require.NoError(t, ExportComparisonXLSX(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(comparisonSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Algorithm", rows[0][0])
	assert.Equal(t, "best-fit", rows[1][0])
	assert.Equal(t, "1008", rows[1][1])
	assert.Equal(t, "1", rows[1][2])
	assert.Equal(t, "branch-and-bound", rows[2][0])
	assert.Equal(t, "broken", rows[3][0])
	assert.Equal(t, "boom", rows[3][len(rows[3])-1])
}
