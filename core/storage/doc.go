// Package storage provides the object storage client used to archive run summaries.
//
// It wraps the MinIO Go client behind a small interface so the archive can be tested
// with the mock in core/storage/mocks. Both AWS S3 and self-hosted MinIO work.
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket creates the archive bucket on first use.
//   - PutObject: uploads one JSON summary per run.
//   - ListObjects: lists archived summaries under the configured prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
