package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/contadores")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 16*1024*1024, cfg.MaxBodyBytes)
	assert.Equal(t, time.Minute, cfg.ListingCacheTTL)
	assert.Equal(t, "/uploads", cfg.UploadURLPrefix)
	assert.False(t, cfg.SecureCookies)
	assert.False(t, cfg.GoogleEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/contadores")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_BODY_MB", "2")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("UPLOAD_URL_PREFIX", "/static/uploads/")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 2*1024*1024, cfg.MaxBodyBytes)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "/static/uploads", cfg.UploadURLPrefix)
	assert.True(t, cfg.SecureCookies)
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/contadores")
	t.Setenv("JWT_SECRET", "")

	require.PanicsWithValue(t, "missing env: JWT_SECRET", func() { Load() })
}
