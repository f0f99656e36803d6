package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "skill-swap")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_TTL", "")
	t.Setenv("DB_SSL_MODE", "")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("WS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "skill-swap", cfg.App.AppName)
	assert.Empty(t, cfg.App.MigrationsDir, "empty means the embedded migrations")
	assert.Empty(t, cfg.App.WSAllowedOrigins)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiresIn)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_NAME", "")
	t.Setenv("JWT_ACCESS_SECRET", " ")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "soon")
	t.Setenv("REDIS_DB", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidEnv))
	assert.Contains(t, err.Error(), "JWT_ACCESS_EXPIRES_IN")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")

	_, err := LoadDatabase()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_NAME, DB_USER")

	t.Setenv("DB_NAME", "skillswap")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_SSL_MODE", "")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "skillswap", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoad_WSAllowedOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WS_ALLOWED_ORIGINS", " https://app.example.com, ,http://localhost:5173 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.App.WSAllowedOrigins)
}
