package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	require.Equal(t, tmpDir, store.Root())

	ctx := context.Background()

	// 1. Open an existing file
	blobName := "points-001.csv"
	data := []byte("a,1,2\nb,3,4\nthis is the tail")
	writeFile(t, tmpDir, blobName, data)

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	// 2. ReadRange
	rangeReader, err := blob.ReadRange(ctx, 12, 4)
	require.NoError(t, err)
	defer rangeReader.Close()

	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.Equal(t, "this", string(rangeContent))

	// 3. List, including nested directories
	writeFile(t, tmpDir, "nested/points-002.txt", []byte("1 2"))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"nested/points-002.txt", blobName}, names)

	names, err = store.List(ctx, "nested/")
	require.NoError(t, err)
	require.Equal(t, []string{"nested/points-002.txt"}, names)

	// 4. Missing blobs and directories
	_, err = store.Open(ctx, "missing.csv")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(ctx, "nested")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_ReadRange_Boundaries(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blobName := "boundary.bin"
	data := []byte("0123456789")
	writeFile(t, tmpDir, blobName, data)

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	// Case 1: Read full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.True(t, bytes.Equal(data, content))

	// Case 2: Read past end
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Case 3: Offset past EOF
	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)
}

func TestOpenReader(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	writeFile(t, tmpDir, "full.txt", []byte("1 2 3 4"))
	writeFile(t, tmpDir, "empty.txt", nil)

	rc, err := OpenReader(ctx, store, "full.txt")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "1 2 3 4", string(content))
	require.NoError(t, rc.Close())

	rc, err = OpenReader(ctx, store, "empty.txt")
	require.NoError(t, err)
	content, err = io.ReadAll(rc)
	require.NoError(t, err)
	require.Empty(t, content)
	require.NoError(t, rc.Close())

	_, err = OpenReader(ctx, store, "nope.txt")
	require.ErrorIs(t, err, ErrNotFound)
}
