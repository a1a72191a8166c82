package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "data/budget.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 36, cfg.KnownMonthsLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("PORT", "9090")
	t.Setenv("KNOWN_MONTHS_LIMIT", "12")
	t.Setenv("CORS_ORIGINS", "http://a.local,http://b.local")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12, cfg.KnownMonthsLimit)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSOrigins)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("KNOWN_MONTHS_LIMIT", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 36, cfg.KnownMonthsLimit)
}
