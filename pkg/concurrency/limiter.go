// Package concurrency provides a semaphore-backed limiter for bounding how
// much work callers feed into a thread pool's unbounded queue.
package concurrency

import "context"

// Limiter represents a concurrency control mechanism that manages access to
// a limited pool of slots. Callers acquire a slot before submitting work and
// release it when the work completes, which bounds the amount of outstanding
// work without the submitter having to know anything about the consumer.
//
// A common composition with the thread pool:
//
//	lim := concurrency.NewLimiter(16)
//	pool := threadpool.New(4)
//	defer pool.Close()
//
//	for _, job := range jobs {
//	    if err := lim.Acquire(ctx); err != nil {
//	        break
//	    }
//	    job := job
//	    pool.Invoke(func() {
//	        defer lim.Release()
//	        process(job)
//	    })
//	}
type Limiter interface {

	// Acquire blocks until a slot becomes available, the given context is
	// done, or the limiter is closed.
	//
	// Returns:
	//   - nil: a slot was granted; pair this call with Release.
	//   - ErrLimiterClosed: the limiter was closed before or while waiting.
	//   - the context's error: the caller gave up first.
	Acquire(ctx context.Context) error

	// TryAcquire grabs a slot without blocking. It reports false when no
	// slot is free or the limiter has been closed.
	TryAcquire() bool

	// Release returns a previously acquired slot, waking one blocked
	// Acquire call if any.
	//
	// Returns:
	//   - nil: the slot was returned.
	//   - ErrReleaseExceedsMaxLimit: more releases than acquisitions.
	//   - ErrLimiterClosed: the limiter has been closed.
	Release() error

	// Close shuts the limiter down. Blocked Acquire calls unblock with
	// ErrLimiterClosed and all later operations are rejected. A second
	// Close reports ErrLimiterClosed.
	Close() error

	// TotalSlots returns the capacity the limiter was created with.
	TotalSlots() uint32

	// AvailableSlots returns the number of slots currently free.
	AvailableSlots() uint32

	// OccupiedSlots returns the number of slots currently held, i.e.
	// TotalSlots minus AvailableSlots.
	OccupiedSlots() uint32
}
