// Package minio stores encoded vectors in MinIO or any S3-compatible service
// reachable through minio-go.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	store := blobminio.NewStore(client, "postings", "tenant-a/")
package minio
