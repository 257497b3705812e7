package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("STATIC_DIR", "")
	t.Setenv("SEED_DEMO", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, "web", cfg.StaticDir)
	assert.False(t, cfg.SeedDemo)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SWEEP_INTERVAL", "5s")
	t.Setenv("STATIC_DIR", "/srv/static")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.SweepInterval)
	assert.Equal(t, "/srv/static", cfg.StaticDir)
	assert.True(t, cfg.SeedDemo)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric port", key: "PORT", value: "not-a-port"},
		{name: "malformed interval", key: "SWEEP_INTERVAL", value: "soon"},
		{name: "negative interval", key: "SWEEP_INTERVAL", value: "-10s"},
		{name: "zero interval", key: "SWEEP_INTERVAL", value: "0s"},
		{name: "malformed seed flag", key: "SEED_DEMO", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
