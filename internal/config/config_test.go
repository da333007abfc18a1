package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmcluster"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kmcluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
k: 3
seed: 42
max_passes: 50
empty_policy: fallback-constant
timeout: 30s
log:
  level: debug
  format: json
output:
  format: json-indent
  centroids: true
  metrics_file: ./metrics/kmcluster.prom
s3:
  region: eu-central-1
minio:
  endpoint: localhost:9000
  access_key: key
  secret_key: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.K)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	require.NotNil(t, cfg.MaxPasses)
	assert.Equal(t, 50, *cfg.MaxPasses)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Output.Centroids)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "metrics", "kmcluster.prom"), cfg.Output.MetricsFile)

	policy, err := cfg.ClusterPolicy()
	require.NoError(t, err)
	assert.Equal(t, kmcluster.EmptyFallbackConstant, policy)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	src := cfg.SourceConfig()
	assert.Equal(t, "eu-central-1", src.S3Region)
	assert.Equal(t, "localhost:9000", src.MinIO.Endpoint)
	assert.Equal(t, "secret", src.MinIO.SecretKey)

	logger, err := cfg.NewLogger(io.Discard)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MINIO_ROOT_USER", "env-user")
	t.Setenv("MINIO_ROOT_PASSWORD", "env-pass")

	cfg, err := Load(writeConfig(t, "k: 2\n"))
	require.NoError(t, err)

	assert.Nil(t, cfg.Seed)
	assert.Nil(t, cfg.MaxPasses)
	assert.Equal(t, "reseed-farthest", cfg.EmptyPolicy)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.Output.MetricsFile)
	assert.Equal(t, "env-user", cfg.MinIO.AccessKey)
	assert.Equal(t, "env-pass", cfg.MinIO.SecretKey)

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(writeConfig(t, "k: [1, 2\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"NegativeK", "k: -1\n", "invalid k"},
		{"NegativePasses", "max_passes: -5\n", "invalid max_passes"},
		{"Policy", "empty_policy: drop\n", "invalid empty_policy"},
		{"LogLevel", "log:\n  level: loud\n", "invalid log level"},
		{"LogFormat", "log:\n  format: xml\n", "invalid log format"},
		{"OutputFormat", "output:\n  format: yaml\n", "invalid output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.K)
}
