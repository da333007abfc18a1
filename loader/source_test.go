package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmcluster/blobstore"
	"github.com/hupe1980/kmcluster/blobstore/minio"
)

func TestSourceLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 0\n1 1\n"), 0o600))

	for _, uri := range []string{path, "file://" + path} {
		store, name, err := Source(ctx, uri, SourceConfig{})
		require.NoError(t, err, uri)
		require.IsType(t, &blobstore.LocalStore{}, store)
		assert.Equal(t, "points.txt", name)

		points, err := Load(ctx, store, name)
		require.NoError(t, err)
		assert.Len(t, points, 2)
	}

	store, name, err := Source(ctx, dir, SourceConfig{})
	require.NoError(t, err)
	assert.Empty(t, name)

	names, err := Resolve(ctx, store, name)
	require.NoError(t, err)
	assert.Equal(t, []string{"points.txt"}, names)

	_, _, err = Source(ctx, filepath.Join(dir, "missing.txt"), SourceConfig{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSourceMinIO(t *testing.T) {
	ctx := context.Background()

	_, _, err := Source(ctx, "minio://bucket/data/points.csv", SourceConfig{})
	assert.Error(t, err)

	store, name, err := Source(ctx, "minio://bucket/data/points.csv", SourceConfig{
		MinIO: minio.Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"},
	})
	require.NoError(t, err)
	require.IsType(t, &minio.Store{}, store)
	assert.Equal(t, "data/points.csv", name)
}

func TestSourceUnsupportedScheme(t *testing.T) {
	_, _, err := Source(context.Background(), "ftp://host/points.csv", SourceConfig{})
	assert.ErrorContains(t, err, "unsupported scheme")
}
