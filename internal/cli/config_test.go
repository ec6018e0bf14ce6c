package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regulint/trueup/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfigFromFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
extraction:
  row_tolerance: 4.5
bands:
  overrides:
    ROE-01:
      green: 5.0
      yellow: 20.0
concurrency:
  extraction_workers: 2
`)
	cfg, err := configFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4.5, cfg.Extraction.RowTolerance)
	assert.Equal(t, 6.0, cfg.Extraction.ColumnTolerance, "unset keys keep their defaults")
	assert.Equal(t, 2, cfg.Concurrency.ExtractionWorkers)

	band := cfg.Bands.For("ROE-01")
	assert.Equal(t, 5.0, band.Green)
	assert.Equal(t, 20.0, band.Yellow)
	assert.Equal(t, model.DefaultBands(), cfg.Bands.For("DEP-GEN-01"),
		"heuristics without an override keep the default band")
}

func TestConfigFromFileEmptyPath(t *testing.T) {
	cfg, err := configFromFile("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestConfigFromFileBadYAML(t *testing.T) {
	_, err := configFromFile(writeConfig(t, "extraction: ["))
	assert.ErrorContains(t, err, "parse config")
}
