// Package plwah provides compressed bitmaps and boolean query evaluation
// built on Position List Word-Aligned Hybrid (PLWAH) encoding.
//
// A bitset.Bitset stores a sparse set of uint32 positions as 32-bit words:
// 31-bit literals for dense regions, and fill words that encode a run of
// empty words together with the single bit that follows it. A vector.Vector
// packs many bitsets into one buffer, each tagged with an offset, the way a
// posting list stores one bitmap per block. An operation.Operation combines
// vectors with AND, OR, XOR and AND-NOT and evaluates the tree into a new
// vector.
//
// # Quick Start
//
//	eng := plwah.New()
//
//	a := eng.NewVector()
//	_ = a.Push(bitset.FromBits([]uint32{1, 2, 3}), 0)
//	b := eng.NewVector()
//	_ = b.Push(bitset.FromBits([]uint32{2, 3, 4}), 0)
//
//	op := eng.NewOperation()
//	_ = op.Add(a, operation.OpOr)
//	_ = op.Add(b, operation.OpAnd)
//	result, _ := eng.Exec(ctx, op) // {2, 3} at offset 0
//
// # Lazy Operands
//
// Steps added with AddData carry a token instead of a vector. The engine's
// resolver loads them on demand, skipping any that an empty intersection
// makes irrelevant:
//
//	store := blobstore.NewLocalStore("./postings")
//	eng := plwah.New(plwah.WithResolver(resolver.BlobResolver(store)))
//	op := eng.NewOperation()
//	_ = op.AddData("terms/go", operation.OpOr)
//	_ = op.AddData("terms/rust", operation.OpAnd)
//
// Blob stores exist for the local filesystem, memory, S3, MinIO and
// PostgreSQL. Stored vectors are framed and compressed by package codec.
//
// # Memory
//
// Every buffer growth can be charged to a resource.Controller. When the
// budget is exhausted the controller's out-of-memory hook runs; the default
// hook aborts the evaluation, which Engine.Exec reports as ErrOutOfMemory.
package plwah
