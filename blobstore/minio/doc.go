// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO itself and other S3-compatible servers such as Ceph,
// SeaweedFS and Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "my-bucket", "datasets/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	points, err := loader.Load(ctx, store, "survey.csv")
package minio
