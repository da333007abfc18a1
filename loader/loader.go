package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kmcluster"
	"github.com/hupe1980/kmcluster/blobstore"
)

// DefaultConcurrency bounds the number of blobs LoadAll reads at once.
const DefaultConcurrency = 4

// Load opens name from store and parses it according to its extension.
func Load(ctx context.Context, store blobstore.BlobStore, name string) ([]kmcluster.Point, error) {
	format, comp, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	rc, err := blobstore.OpenReader(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	dr, err := decompress(rc, comp)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer func() { _ = dr.Close() }()

	points, err := Parse(dr, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Name = name
			return nil, pe
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return points, nil
}

// LoadAll loads every name concurrently and concatenates the points in the
// order the names were given. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, store blobstore.BlobStore, names []string) ([]kmcluster.Point, error) {
	results := make([][]kmcluster.Point, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)

	for i, name := range names {
		g.Go(func() error {
			points, err := Load(gctx, store, name)
			if err != nil {
				return err
			}
			results[i] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]kmcluster.Point, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// Resolve expands name into the blob names to load. A name that is empty
// or ends in "/" is treated as a directory and expands to every blob below
// it with a recognized format; any other name is returned as is.
func Resolve(ctx context.Context, store blobstore.BlobStore, name string) ([]string, error) {
	if name != "" && !strings.HasSuffix(name, "/") {
		return []string{name}, nil
	}

	listed, err := store.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", name, err)
	}

	var names []string
	for _, n := range listed {
		if _, _, err := DetectFormat(n); err == nil {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no point files below %q", ErrUnknownFormat, name)
	}
	return names, nil
}
