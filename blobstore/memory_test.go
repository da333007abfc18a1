package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("A,1,2\nB,1,2\n")
	store.Put("b.csv", data)
	store.Put("a.csv", []byte("C,9,9\n"))
	store.Put("other/c.txt", []byte("0 0"))

	// stored copies are independent of the caller's slice
	data[0] = 'X'

	rc, err := OpenReader(ctx, store, "b.csv")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "A,1,2\nB,1,2\n", string(content))
	require.NoError(t, rc.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv", "other/c.txt"}, names)

	names, err = store.List(ctx, "other/")
	require.NoError(t, err)
	assert.Equal(t, []string{"other/c.txt"}, names)

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBlobReadRange(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Put("r", []byte("0123456789"))

	blob, err := store.Open(ctx, "r")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 7, 100)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "789", string(content))

	_, err = blob.ReadRange(ctx, 10, 1)
	assert.ErrorIs(t, err, io.EOF)
}
