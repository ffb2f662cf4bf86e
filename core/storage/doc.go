// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the product mapping document can live in an
// AWS S3 or self-hosted MinIO bucket instead of on local disk.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - PutObject: Uploads content (with size and options).
//   - Upload: Helper that checks the bucket and uploads a byte slice.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.Upload(ctx, client, "stock-sync", "product_mapping.json", data, "application/json")
package storage
