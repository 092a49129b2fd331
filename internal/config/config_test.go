package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SHARE_HTTP_ADDR", "REDIS_ADDR", "SESSION_TTL", "KAFKA_BROKER",
		"KAFKA_TOPIC_SHARED", "KAFKA_TOPIC_ALERTS", "CORS_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.KafkaBroker)
	assert.Equal(t, "listing.shared", cfg.TopicShared)
	assert.Equal(t, "community.alert", cfg.TopicAlerts)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHARE_HTTP_ADDR", ":9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://localhost:8081, https://app.example ,")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:8081", "https://app.example"}, cfg.CORSOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_ADDR=localhost:6379\nKAFKA_BROKER=localhost:9092\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("REDIS_ADDR")
		_ = os.Unsetenv("KAFKA_BROKER")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "localhost:9092", cfg.KafkaBroker)
}

func TestLoad_InvalidTTL(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("SESSION_TTL", "soon")
	_, err := Load(missing)
	assert.Error(t, err)

	t.Setenv("SESSION_TTL", "-1h")
	_, err = Load(missing)
	assert.Error(t, err)
}
