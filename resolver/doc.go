// Package resolver provides operation.Resolver implementations that load
// encoded vectors from a blobstore.
//
// A lazy step's token is a blob name. BlobResolver fetches and decodes the
// blob; CachingResolver keeps recently resolved vectors in an LRU so that
// repeated terms across queries are fetched once.
//
//	store := blobstore.NewLocalStore("/var/lib/postings")
//	cached := resolver.NewCachingResolver(resolver.BlobResolver(store), 1024)
//	op := operation.New(func(o *operation.Options) { o.Resolver = cached.Resolve })
//	_ = op.AddData("terms/go", operation.OpAnd)
package resolver
