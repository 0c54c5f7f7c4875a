// Package storage provides the object storage client used to publish the
// serving root to an S3 compatible bucket.
//
// It wraps the MinIO Go client behind the small Client interface so the
// publish feature can be tested against the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: make sure the target bucket is there.
//   - ListObjects: list what is already published under the prefix.
//   - PutObject: upload a file with its content type.
//   - RemoveObject: prune an object that no longer exists locally.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
