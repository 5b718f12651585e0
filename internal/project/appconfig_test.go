package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PlateCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultAlgorithm = "genetic"
	cfg.DefaultPlateCost = 750
	cfg.DefaultTimeLimit = 3 * time.Second
	cfg.RecentFiles = []string{"/tmp/a.txt"}

	require.NoError(t, SaveAppConfig(path, cfg))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestLoadAppConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_plate_cost": 20}`), 0644))

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.DefaultPlateCost)
	assert.Equal(t, 280, cfg.DefaultPlateWidth)
	assert.NotNil(t, cfg.RecentFiles)
}

func TestLoadAppConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestDefaultConfigPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(DefaultConfigPath(), filepath.Join(".platecut", "config.json")))
}

func TestRememberFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	piecePath := filepath.Join(dir, "pieces.txt")

	require.NoError(t, RememberFile(configPath, piecePath))
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err), "no config file is created")

	require.NoError(t, SaveAppConfig(configPath, model.DefaultAppConfig()))
	require.NoError(t, RememberFile(configPath, piecePath))

	cfg, err := LoadAppConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{piecePath}, cfg.RecentFiles)
}
