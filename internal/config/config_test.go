package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Stats.Alpha)
	assert.Equal(t, 0.05, cfg.Stats.CategoricalThreshold)
	assert.Equal(t, 5000, cfg.Stats.ShapiroMaxN)
	assert.Equal(t, "matrix.xlsx", cfg.Output.HeatmapFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALPHA", "0.01")
	t.Setenv("CATEGORICAL_THRESHOLD", "0.1")
	t.Setenv("SHAPIRO_MAX_N", "200")
	t.Setenv("HEATMAP_FILE", "out.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Stats.Alpha)
	assert.Equal(t, 0.1, cfg.Stats.CategoricalThreshold)
	assert.Equal(t, 200, cfg.Stats.ShapiroMaxN)
	assert.Equal(t, "out.xlsx", cfg.Output.HeatmapFile)
}

func TestLoad_InvalidAlpha(t *testing.T) {
	t.Setenv("ALPHA", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALPHA")
}

func TestLoad_InvalidShapiroMaxN(t *testing.T) {
	t.Setenv("SHAPIRO_MAX_N", "1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHAPIRO_MAX_N")
}

func TestLoad_UnparseableValueFallsBack(t *testing.T) {
	t.Setenv("ALPHA", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Stats.Alpha)
}
