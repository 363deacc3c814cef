package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, time.Hour, cfg.Session.DefaultTTL)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
redis:
  host: redis.internal
  port: 6380
  tls: true
storage:
  data_dir: /var/lib/iddqd
http:
  addr: ":9090"
session:
  secret: s3cret
  default_ttl: 30m
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr())
	assert.True(t, cfg.Redis.TLS)
	assert.Equal(t, "/var/lib/iddqd", cfg.Storage.DataDir)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Session.DefaultTTL)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
redis:
  host: from-file
storage:
  data_dir: /from-file
`), 0o600))

	t.Setenv("REDIS_HOST", "from-env")
	t.Setenv("REDIS_PORT", "7000")
	t.Setenv("DATA_DIR", "/from-env")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env:7000", cfg.Redis.Addr())
	assert.Equal(t, "/from-env", cfg.Storage.DataDir)
	assert.Equal(t, 2*time.Hour, cfg.Session.DefaultTTL)
}

func TestLoadConfig_RejectsEmptyDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  data_dir: ""
`), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis: [not a map"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
