// Package loader reads point files into kmcluster points.
//
// Two formats are recognized by file extension:
//
//   - .txt: whitespace-separated real numbers, read as consecutive
//     unlabeled 2-D points (x y x y ...)
//   - .csv: one labeled point per line, "label,x1,x2,...,xn"
//
// Either may carry a .zst, .gz or .lz4 suffix and is then decompressed
// while reading. Files are opened through a blobstore.BlobStore, so the
// same code loads from local disk, S3 or MinIO:
//
//	store, name, err := loader.Source(ctx, "s3://bucket/survey.csv.zst", loader.SourceConfig{})
//	points, err := loader.Load(ctx, store, name)
package loader
