// Package blobstore stores encoded vectors by name.
//
// Lazy operands are usually blob names: a resolver fetches the blob, decodes
// the frame and hands the vector to the operation being evaluated.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and small working sets
//   - LocalStore: local filesystem with atomic writes
//   - s3.Store: Amazon S3, multipart uploads through the transfer manager
//   - minio.Store: MinIO and other S3-compatible services
//   - postgres.Store: a bytea column in PostgreSQL
//
// Implementations must be safe for concurrent use.
package blobstore
