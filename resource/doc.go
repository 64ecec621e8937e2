// Package resource governs the memory, concurrency and IO budgets of bitmap
// buffers and operand resolution.
//
//   - Memory: every Bitset and Vector growth path reserves its new capacity
//     through Grow. When the budget is exhausted the out-of-memory hook runs.
//     The default hook panics with *OutOfMemoryError, which keeps allocation
//     failure fatal inside the core; RecoverOutOfMemory turns it into an
//     error at an API boundary.
//   - Concurrency: bounds the number of operands resolved in parallel.
//   - IO: token bucket applied to operand fetches from blob storage.
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 100 << 20,
//	    OnOutOfMemory: func(err *resource.OutOfMemoryError) {
//	        log.Fatal(err)
//	    },
//	})
//
//	b := bitset.New(bitset.WithController(rc))
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
