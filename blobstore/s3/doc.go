// Package s3 stores encoded vectors in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", func(o *s3.Options) {
//	    o.Prefix = "postings/"
//	    o.Region = "us-east-1"
//	})
//
//	r := resolver.NewBlobResolver(store)
//
// # Features
//
//   - Multipart uploads through the S3 transfer manager for large vectors
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
