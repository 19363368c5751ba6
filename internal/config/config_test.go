package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/plategraph/internal/tectonics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 120
height: 60
seed: 7
trials: 8
workers: 2
log_level: debug
crust:
  continental_level: 0.6
tectonics:
  plate_count: 20
  microplates_per_pole: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 8, cfg.Trials)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.6, cfg.Crust.ContinentalLevel)
	assert.Equal(t, 20, cfg.Tectonics.PlateCount)
	assert.Equal(t, 2, cfg.Tectonics.MicroplatesPerPole)

	// Untouched nested fields keep their defaults.
	def := tectonics.DefaultConfig()
	assert.Equal(t, def.CapFraction, cfg.Tectonics.CapFraction)
	assert.Equal(t, def.SeedAttempts, cfg.Tectonics.SeedAttempts)
	assert.Equal(t, Default().Crust.MaxAge, cfg.Crust.MaxAge)
	assert.Equal(t, Default().DatabasePath, cfg.DatabasePath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tiny mesh", "width: 2\n"},
		{"zero trials", "trials: 0\n"},
		{"zero workers", "workers: 0\n"},
		{"unknown level", "log_level: loud\n"},
		{"port range", "api_port: 70000\n"},
		{"api without db", "api_port: 8080\ndatabase_path: \"\"\n"},
		{"malformed", "width: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
