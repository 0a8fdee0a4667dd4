package config

import (
	"os"
	"strconv"

	"statcheck/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Stats  StatsConfig
	Paths  PathConfig
	Output OutputConfig
}

// StatsConfig holds hypothesis-test defaults
type StatsConfig struct {
	Alpha                float64 // significance level for all tests
	CategoricalThreshold float64 // max unique/count ratio for categorical columns
	ShapiroMaxN          int     // warn above this sample size
}

// PathConfig holds file system paths
type PathConfig struct {
	DataFile string
}

// OutputConfig holds result-presentation settings
type OutputConfig struct {
	HeatmapFile string
	ReportFile  string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Stats: StatsConfig{
			Alpha:                getEnvFloatOrDefault("ALPHA", 0.05),
			CategoricalThreshold: getEnvFloatOrDefault("CATEGORICAL_THRESHOLD", 0.05),
			ShapiroMaxN:          getEnvIntOrDefault("SHAPIRO_MAX_N", 5000),
		},
		Paths: PathConfig{
			DataFile: getEnvOrDefault("DATA_FILE", ""),
		},
		Output: OutputConfig{
			HeatmapFile: getEnvOrDefault("HEATMAP_FILE", "matrix.xlsx"),
			ReportFile:  getEnvOrDefault("REPORT_FILE", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Stats.Alpha <= 0 || config.Stats.Alpha >= 1 {
		return errors.ConfigInvalid("ALPHA must be in (0, 1)")
	}
	if config.Stats.CategoricalThreshold <= 0 || config.Stats.CategoricalThreshold > 1 {
		return errors.ConfigInvalid("CATEGORICAL_THRESHOLD must be in (0, 1]")
	}
	if config.Stats.ShapiroMaxN < 3 {
		return errors.ConfigInvalid("SHAPIRO_MAX_N must be at least 3")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
