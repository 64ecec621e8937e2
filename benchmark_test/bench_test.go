package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/plwah/bitset"
	"github.com/hupe1980/plwah/estimate"
	"github.com/hupe1980/plwah/operation"
	"github.com/hupe1980/plwah/testutil"
	"github.com/hupe1980/plwah/vector"
)

// ============================================================================
// DISTRIBUTIONS
// ============================================================================
//
// sparse    - uniform positions, mostly fill words
// clustered - dense runs, mostly literal words

type distribution struct {
	name string
	gen  func(rng *testutil.RNG) []uint32
}

var distributions = []distribution{
	{"sparse", func(rng *testutil.RNG) []uint32 { return rng.SortedBits(10_000, 1<<24) }},
	{"clustered", func(rng *testutil.RNG) []uint32 { return rng.ClusteredBits(100, 300, 1<<24) }},
}

func BenchmarkFromBits(b *testing.B) {
	for _, d := range distributions {
		bits := d.gen(testutil.NewRNG(1))
		b.Run(d.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = bitset.FromBits(bits)
			}
		})
	}
}

func BenchmarkSet(b *testing.B) {
	for _, d := range distributions {
		bits := d.gen(testutil.NewRNG(2))
		b.Run(d.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				bs := bitset.New()
				for _, bit := range bits {
					bs.Set(bit)
				}
			}
		})
	}
}

// BenchmarkBinaryOps compares compressed operations with roaring.
func BenchmarkBinaryOps(b *testing.B) {
	for _, d := range distributions {
		rng := testutil.NewRNG(3)
		left, right := d.gen(rng), d.gen(rng)
		pa, pb := bitset.FromBits(left), bitset.FromBits(right)
		ra, rb := testutil.Oracle(left), testutil.Oracle(right)

		b.Run(d.name+"/plwah/and", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = bitset.And(pa, pb)
			}
		})
		b.Run(d.name+"/roaring/and", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = roaring.And(ra, rb)
			}
		})
		b.Run(d.name+"/plwah/or", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = bitset.Or(pa, pb)
			}
		})
		b.Run(d.name+"/roaring/or", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = roaring.Or(ra, rb)
			}
		})
	}
}

func BenchmarkCount(b *testing.B) {
	bs := bitset.FromBits(testutil.NewRNG(4).ClusteredBits(100, 300, 1<<24))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = bs.Count()
	}
}

func postings(rng *testutil.RNG, records int, density int) *vector.Vector {
	v := vector.New()
	for offset := 0; offset < records; offset++ {
		if err := v.Push(bitset.FromBits(rng.SortedBits(density, 1<<16)), uint32(offset)); err != nil {
			panic(err)
		}
	}
	return v
}

// BenchmarkExec measures a conjunctive query whose operands differ in size,
// with and without estimate-driven ordering.
func BenchmarkExec(b *testing.B) {
	ctx := context.Background()
	rng := testutil.NewRNG(5)
	large := postings(rng, 64, 4000)
	medium := postings(rng, 64, 400)
	small := postings(rng, 64, 4)

	estimators := []struct {
		name string
		est  estimate.Estimator
	}{
		{"popcount", estimate.Popcount{}},
		{"words", estimate.Words{}},
	}
	for _, e := range estimators {
		b.Run(e.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				op := operation.New(func(o *operation.Options) { o.Estimator = e.est })
				_ = op.Add(large, operation.OpOr)
				_ = op.Add(medium, operation.OpAnd)
				_ = op.Add(small, operation.OpAnd)
				if _, err := op.Exec(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkVectorMerge(b *testing.B) {
	for _, records := range []int{16, 256} {
		v := postings(testutil.NewRNG(6), records, 200)
		b.Run(fmt.Sprintf("records=%d", records), func(b *testing.B) {
			b.SetBytes(int64(v.Len()))
			for i := 0; i < b.N; i++ {
				_ = v.Merge()
			}
		})
	}
}
