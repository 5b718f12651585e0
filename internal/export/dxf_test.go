package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateCut/internal/model"
)

func TestExportDXF(t *testing.T) {
	res, _ := solvedResult(t)
	path := filepath.Join(t.TempDir(), "layout.dxf")

	require.NoError(t, ExportDXF(path, *res.Layout))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	for _, layer := range []string{LayerPlates, LayerShelves, LayerPieces, LayerLabels} {
		assert.Contains(t, content, layer)
	}
	assert.Contains(t, content, "Rib A")
	assert.True(t, strings.Contains(content, "LINE"))
}

func TestExportDXF_EmptyLayout(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "empty.dxf"), model.Layout{})
	assert.ErrorIs(t, err, ErrEmptyLayout)
}
