package loader

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnknownFormat is returned for file names whose extension names no
// supported point format.
var ErrUnknownFormat = errors.New("unknown point file format")

// Format identifies the textual layout of a point file.
type Format int

const (
	// FormatFlat holds unlabeled 2-D points as whitespace-separated reals.
	FormatFlat Format = iota
	// FormatCSV holds one labeled point per line.
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatFlat:
		return "flat"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// Compression identifies the compression wrapped around a point file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionGzip:
		return "gzip"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

var compressionSuffixes = map[string]Compression{
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".gz":   CompressionGzip,
	".lz4":  CompressionLZ4,
}

// DetectFormat derives format and compression from the file name.
// Matching is case-insensitive.
func DetectFormat(name string) (Format, Compression, error) {
	base := strings.ToLower(path.Base(name))

	comp := CompressionNone
	if c, ok := compressionSuffixes[path.Ext(base)]; ok {
		comp = c
		base = strings.TrimSuffix(base, path.Ext(base))
	}

	switch path.Ext(base) {
	case ".txt":
		return FormatFlat, comp, nil
	case ".csv":
		return FormatCSV, comp, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// decompress wraps r according to c. Closing the result releases decoder
// state but does not close r.
func decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}
