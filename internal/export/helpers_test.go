package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
)

// solvedResult packs five pieces onto two 280x280 plates with best-fit.
func solvedResult(t *testing.T) (model.Result, model.Settings) {
	t.Helper()
	settings := model.DefaultSettings()
	pieces := []model.Piece{
		model.NewPiece("Base", 200, 200),
		model.NewPiece("Lid", 200, 200),
		model.NewPiece("Rib A", 60, 120),
		model.NewPiece("Rib B", 60, 120),
		model.NewWeightedPiece("Tab", 30, 40, 2.5),
	}
	res, err := engine.SolveBestFit(context.Background(), settings, pieces)
	require.NoError(t, err)
	require.Equal(t, 2, res.Layout.PlateCount())
	return res, settings
}
