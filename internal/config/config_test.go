package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret-Session-key-for-tests-0123456789"

func TestParse_Defaults(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", testSecret)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.UseRedis())
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.Zero(t, cfg.SnapshotTTL)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
}

func TestParse_DatabaseDSN(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", testSecret)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "school")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t,
		"host=db.internal port=5432 user=postgres password=postgres dbname=school sslmode=require",
		cfg.Database.DSN())
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_ShortSecret(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", "short")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestParse_Timezone(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", testSecret)
	t.Setenv("EDUSYNC_TIMEZONE", "Europe/Berlin")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestParse_InvalidTimezone(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", testSecret)
	t.Setenv("EDUSYNC_TIMEZONE", "Mars/Olympus")

	_, err := Parse()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "EDUSYNC_TIMEZONE"))
}

func TestParse_Redis(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", testSecret)
	t.Setenv("EDUSYNC_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EDUSYNC_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.UseRedis())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestParse_PortOutOfRange(t *testing.T) {
	t.Setenv("EDUSYNC_SESSION_SECRET", testSecret)
	t.Setenv("PORT", "70000")

	_, err := Parse()
	assert.Error(t, err)
}
