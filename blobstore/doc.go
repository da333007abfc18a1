// Package blobstore provides read access to the point files fed into the
// clustering engine.
//
// BlobStore is the interface for locating and opening input blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem rooted at a directory
//   - MemoryStore: in-memory blobs, mainly for tests
//   - s3.Store: Amazon S3 with ranged downloads
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    List(ctx, prefix) ([]string, error)
//	}
//
//	type Blob interface {
//	    io.Closer
//	    Size() int64
//	    ReadRange(ctx, off, len) (io.ReadCloser, error)
//	}
package blobstore
