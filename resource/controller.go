package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrOutOfMemory is returned (or carried by a panic) when a reservation would
// exceed the configured memory budget.
var ErrOutOfMemory = errors.New("out of memory")

// OutOfMemoryError describes a failed reservation.
type OutOfMemoryError struct {
	Requested int64
	Used      int64
	Limit     int64
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("out of memory: requested %d bytes, %d of %d in use", e.Requested, e.Used, e.Limit)
}

func (e *OutOfMemoryError) Unwrap() error { return ErrOutOfMemory }

// OutOfMemoryHook is invoked when Grow cannot reserve memory.
// It is expected not to return; if it does, the reservation is recorded anyway.
type OutOfMemoryHook func(err *OutOfMemoryError)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for bitmap and vector buffers.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxBackgroundWorkers bounds concurrent operand resolution.
	// If 0, defaults to 1.
	MaxBackgroundWorkers int64

	// IOLimitBytesPerSec is the maximum throughput for operand fetches.
	// If 0, unlimited.
	IOLimitBytesPerSec int64

	// OnOutOfMemory replaces the default hook, which panics with *OutOfMemoryError.
	OnOutOfMemory OutOfMemoryHook
}

// Controller manages memory, concurrency and IO budgets.
//
// A nil *Controller is valid and imposes no limits.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64
	// overdraft counts bytes granted past the limit by a returning hook.
	overdraft atomic.Int64

	// Concurrency
	bgSem *semaphore.Weighted

	// IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		cfg:   cfg,
		bgSem: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Grow reserves bytes for a buffer that is about to grow.
// On failure the out-of-memory hook runs; the default hook panics.
func (c *Controller) Grow(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.TryAcquireMemory(bytes) {
		return
	}

	oom := &OutOfMemoryError{
		Requested: bytes,
		Used:      c.memUsed.Load(),
		Limit:     c.cfg.MemoryLimitBytes,
	}
	if c.cfg.OnOutOfMemory == nil {
		panic(oom)
	}
	c.cfg.OnOutOfMemory(oom)
	// A hook that returns lets the allocation proceed over budget.
	c.overdraft.Add(bytes)
	c.memUsed.Add(bytes)
}

// Shrink returns bytes previously reserved with Grow.
func (c *Controller) Shrink(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	rest := bytes
	for {
		od := c.overdraft.Load()
		take := min(od, rest)
		if take <= 0 || c.overdraft.CompareAndSwap(od, od-take) {
			if take > 0 {
				rest -= take
			}
			break
		}
	}
	if c.memSem != nil && rest > 0 {
		c.memSem.Release(rest)
	}
	c.memUsed.Add(-bytes)
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// Workers returns the configured number of background workers.
func (c *Controller) Workers() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxBackgroundWorkers)
}

// AcquireBackground attempts to reserve a background worker slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireBackground(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.bgSem.Acquire(ctx, 1)
}

// ReleaseBackground releases a background worker slot.
func (c *Controller) ReleaseBackground() {
	if c == nil {
		return
	}
	c.bgSem.Release(1)
}

// TryAcquireBackground attempts to reserve a background worker slot without blocking.
func (c *Controller) TryAcquireBackground() bool {
	if c == nil {
		return true
	}
	return c.bgSem.TryAcquire(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	// WaitN rejects requests above the burst size; split them.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}

// RecoverOutOfMemory converts a panic raised by the default out-of-memory hook
// into an error stored in *errp. Other panics are re-raised.
//
//	defer resource.RecoverOutOfMemory(&err)
func RecoverOutOfMemory(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if oom, ok := r.(*OutOfMemoryError); ok {
		*errp = oom
		return
	}
	panic(r)
}
