package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateCut/internal/model"
)

func TestExportPDF(t *testing.T) {
	res, settings := solvedResult(t)
	path := filepath.Join(t.TempDir(), "layout.pdf")

	require.NoError(t, ExportPDF(path, res, settings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportPDF_TimedOutResult(t *testing.T) {
	res, settings := solvedResult(t)
	res.TimedOut = true
	path := filepath.Join(t.TempDir(), "partial.pdf")

	assert.NoError(t, ExportPDF(path, res, settings))
}

func TestExportPDF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	assert.ErrorIs(t, ExportPDF(path, model.Result{}, model.DefaultSettings()), ErrEmptyLayout)
	assert.ErrorIs(t, ExportPDF(path, model.Result{Layout: &model.Layout{}}, model.DefaultSettings()), ErrEmptyLayout)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLabelFontSize(t *testing.T) {
	assert.Equal(t, 8.0, labelFontSize(50, 45))
	assert.Equal(t, 7.0, labelFontSize(100, 25))
	assert.Equal(t, 6.0, labelFontSize(10, 100))
}
