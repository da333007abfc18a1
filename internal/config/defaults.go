package config

import (
	"os"
	"time"

	"github.com/hupe1980/kmcluster"
)

// DefaultTimeout bounds a whole run, loading included.
const DefaultTimeout = 5 * time.Minute

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.EmptyPolicy == "" {
		cfg.EmptyPolicy = kmcluster.EmptyReseedFarthest.String()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	// Credentials fall back to the variables the MinIO server itself uses.
	if cfg.MinIO.AccessKey == "" {
		cfg.MinIO.AccessKey = os.Getenv("MINIO_ROOT_USER")
	}
	if cfg.MinIO.SecretKey == "" {
		cfg.MinIO.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	}
}
