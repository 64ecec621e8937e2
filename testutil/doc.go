// Package testutil provides testing utilities for plwah.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible position sets, sparse or clustered, and builds
// roaring bitmaps to serve as a reference implementation.
//
//	rng := testutil.NewRNG(seed)
//	bits := rng.Bits(200, 1<<20)          // 200 positions below 2^20
//	runs := rng.ClusteredBits(8, 64, 1<<20) // 8 dense runs of 64
//	oracle := testutil.Oracle(bits)
package testutil
