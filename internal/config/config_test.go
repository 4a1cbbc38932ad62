package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanklomk/zoo-school-carpool/internal/config"
)

// TestLoad_withoutDatabase verifies that only the app settings are
// required and that an unset DB_HOST selects the in-memory store path.
func TestLoad_withoutDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_HOST", "")

	cfg := config.Load()

	require.Equal(t, "test", cfg.Env)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.DBHost)
}

// TestLoad_withDatabase verifies that the full database configuration
// is read when DB_HOST is present.
func TestLoad_withDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "carpool")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_NAME", "carpool")

	cfg := config.Load()

	require.Equal(t, "localhost", cfg.DBHost)
	require.Equal(t, "3306", cfg.DBPort)
	require.Equal(t, "carpool", cfg.DBUser)
	require.Equal(t, "carpool", cfg.DBName)
	require.Empty(t, cfg.DBPass)
}
