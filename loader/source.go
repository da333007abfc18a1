package loader

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/kmcluster/blobstore"
	"github.com/hupe1980/kmcluster/blobstore/minio"
	"github.com/hupe1980/kmcluster/blobstore/s3"
)

// SourceConfig carries the backend settings Source needs for remote URIs.
type SourceConfig struct {
	S3Region string
	MinIO    minio.Config
}

// Source resolves uri into a store and the blob name within it.
//
// Supported forms:
//
//	s3://bucket/key
//	minio://bucket/key
//	file:///path/to/file
//	path/to/file
//
// A key or path naming a directory yields a name ending in "/" (or an empty
// name), which Resolve expands to the files below it.
func Source(ctx context.Context, uri string, cfg SourceConfig) (blobstore.BlobStore, string, error) {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return localSource(uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("parse source %q: %w", uri, err)
	}

	switch scheme {
	case "file":
		return localSource(u.Path)
	case "s3":
		store, err := s3.New(ctx, u.Host, s3.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, "", err
		}
		return store, strings.TrimPrefix(u.Path, "/"), nil
	case "minio":
		if cfg.MinIO.Endpoint == "" {
			return nil, "", fmt.Errorf("source %q: minio endpoint not configured", uri)
		}
		store, err := minio.New(cfg.MinIO, u.Host, "")
		if err != nil {
			return nil, "", err
		}
		return store, strings.TrimPrefix(u.Path, "/"), nil
	default:
		return nil, "", fmt.Errorf("source %q: unsupported scheme %q", uri, scheme)
	}
}

func localSource(p string) (blobstore.BlobStore, string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, "", err
	}
	if info.IsDir() {
		return blobstore.NewLocalStore(p), "", nil
	}
	return blobstore.NewLocalStore(filepath.Dir(p)), filepath.Base(p), nil
}
