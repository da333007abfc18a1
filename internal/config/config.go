// Package config provides configuration loading for the kmcluster command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/kmcluster"
	"github.com/hupe1980/kmcluster/blobstore/minio"
	"github.com/hupe1980/kmcluster/loader"
)

// Config holds all configuration for a clustering run.
type Config struct {
	K           int           `yaml:"k"`
	Seed        *int64        `yaml:"seed"`
	MaxPasses   *int          `yaml:"max_passes"`
	EmptyPolicy string        `yaml:"empty_policy"`
	Timeout     time.Duration `yaml:"timeout"`
	Log         LogConfig     `yaml:"log"`
	Output      OutputConfig  `yaml:"output"`
	S3          S3Config      `yaml:"s3"`
	MinIO       MinIOConfig   `yaml:"minio"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format      string `yaml:"format"`
	Centroids   bool   `yaml:"centroids"`
	MetricsFile string `yaml:"metrics_file"`
}

// S3Config holds settings for s3:// inputs.
type S3Config struct {
	Region string `yaml:"region"`
}

// MinIOConfig holds settings for minio:// inputs.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Output.MetricsFile != "" {
		cfg.Output.MetricsFile = expandPath(cfg.Output.MetricsFile, filepath.Dir(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandPath resolves paths starting with "./" against configDir.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("invalid k %d: %w", c.K, kmcluster.ErrInvalidK)
	}
	if c.MaxPasses != nil && *c.MaxPasses < 0 {
		return fmt.Errorf("invalid max_passes %d", *c.MaxPasses)
	}
	if _, err := c.ClusterPolicy(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json", "json-indent":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}

// ClusterPolicy maps EmptyPolicy to its engine value.
func (c *Config) ClusterPolicy() (kmcluster.EmptyClusterPolicy, error) {
	switch c.EmptyPolicy {
	case kmcluster.EmptyReseedFarthest.String():
		return kmcluster.EmptyReseedFarthest, nil
	case kmcluster.EmptyFallbackConstant.String():
		return kmcluster.EmptyFallbackConstant, nil
	default:
		return 0, fmt.Errorf("invalid empty_policy %q", c.EmptyPolicy)
	}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// NewLogger builds the logger described by Log, writing to w.
func (c *Config) NewLogger(w io.Writer) (*kmcluster.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return kmcluster.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return kmcluster.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// EngineOptions translates the config into engine options.
func (c *Config) EngineOptions() ([]kmcluster.Option, error) {
	policy, err := c.ClusterPolicy()
	if err != nil {
		return nil, err
	}

	opts := []kmcluster.Option{kmcluster.WithEmptyClusterPolicy(policy)}
	if c.Seed != nil {
		opts = append(opts, kmcluster.WithSeed(*c.Seed))
	}
	if c.MaxPasses != nil {
		opts = append(opts, kmcluster.WithMaxPasses(*c.MaxPasses))
	}
	return opts, nil
}

// SourceConfig returns the settings the loader needs for remote inputs.
func (c *Config) SourceConfig() loader.SourceConfig {
	return loader.SourceConfig{
		S3Region: c.S3.Region,
		MinIO: minio.Config{
			Endpoint:  c.MinIO.Endpoint,
			AccessKey: c.MinIO.AccessKey,
			SecretKey: c.MinIO.SecretKey,
			Region:    c.MinIO.Region,
			Secure:    c.MinIO.Secure,
		},
	}
}
