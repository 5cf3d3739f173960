package concurrency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Sentinel errors for the limiter contract. The public pkg/concurrency
// package re-exports these.
var (
	ErrLimiterClosed          = errors.New("Limiter has been closed")
	ErrReleaseExceedsMaxLimit = errors.New("release exceeds limit size")
)

// Limiter bounds concurrency with a weighted semaphore. It is meant to sit
// in front of the thread pool's unbounded queue: callers acquire a slot
// before Invoke and release it from inside the task, which caps how much
// work can be outstanding at once without changing the pool contract.
type Limiter struct {

	// sem holds the slots. One unit of weight is one slot.
	sem *semaphore.Weighted

	// size is the total slot count, fixed at construction.
	size uint32

	// occupied tracks acquired-but-not-released slots for the accessor
	// methods; semaphore.Weighted exposes no counts of its own.
	occupied *atomic.Int64

	// closed is flipped once by Close and consulted on every operation.
	closed *atomic.Bool

	// closeCtx is cancelled by Close so that blocked Acquire calls
	// unblock promptly instead of waiting for a slot that will never be
	// granted.
	closeCtx context.Context
	closeFn  context.CancelFunc

	// closeMutex serializes Close against itself.
	closeMutex *sync.Mutex
}

//region Implementation

// Acquire blocks until a slot is available, the caller's context is done,
// or the limiter is closed. It returns nil exactly when a slot was granted;
// every such call must be paired with a Release.
func (l *Limiter) Acquire(ctx context.Context) error {

	if l.isClosed() {
		return ErrLimiterClosed
	}

	// Derive a context that falls when either the caller gives up or the
	// limiter closes, so Close can unblock waiters it will never serve.
	acquireCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(l.closeCtx, cancel)
	defer stop()

	if err := l.sem.Acquire(acquireCtx, 1); err != nil {
		if l.isClosed() {
			return ErrLimiterClosed
		}
		return err
	}

	if l.isClosed() {
		l.sem.Release(1)
		return ErrLimiterClosed
	}

	l.occupied.Add(1)
	return nil
}

// TryAcquire grabs a slot without blocking. It reports false when no slot is
// free or the limiter is closed.
func (l *Limiter) TryAcquire() bool {

	if l.isClosed() {
		return false
	}

	if !l.sem.TryAcquire(1) {
		return false
	}

	l.occupied.Add(1)
	return true
}

// Release returns a previously acquired slot. Releasing more slots than were
// acquired is a caller bug and is reported rather than silently absorbed.
func (l *Limiter) Release() error {

	if l.isClosed() {
		return ErrLimiterClosed
	}

	for {
		cur := l.occupied.Load()
		if cur == 0 {
			return ErrReleaseExceedsMaxLimit
		}
		if l.occupied.CompareAndSwap(cur, cur-1) {
			break
		}
	}

	l.sem.Release(1)
	return nil
}

// Close shuts the limiter down: pending Acquire calls unblock with
// ErrLimiterClosed and all later operations are rejected. A second Close
// reports ErrLimiterClosed.
func (l *Limiter) Close() error {
	l.closeMutex.Lock()
	defer l.closeMutex.Unlock()

	if l.isClosed() {
		return ErrLimiterClosed
	}

	l.closed.Store(true)
	l.closeFn()
	return nil
}

// TotalSlots returns the fixed capacity of the limiter.
func (l *Limiter) TotalSlots() uint32 {
	return l.size
}

// OccupiedSlots returns the number of slots currently held.
func (l *Limiter) OccupiedSlots() uint32 {
	return uint32(l.occupied.Load())
}

// AvailableSlots returns the number of slots currently free.
func (l *Limiter) AvailableSlots() uint32 {
	return l.size - l.OccupiedSlots()
}

//endregion

//region Helpers

// isClosed reports whether Close has run.
func (l *Limiter) isClosed() bool {
	return l.closed.Load()
}

//endregion

//region Constructor

// NewLimiter initializes a Limiter with the given slot capacity.
//
// Panics:
//   - If size is 0; a limiter that can never grant a slot is a
//     construction bug, not a runtime condition.
func NewLimiter(size uint32) *Limiter {

	if size == 0 {
		panic(errors.New("cannot create a Limiter with 0 slots"))
	}

	closeCtx, closeFn := context.WithCancel(context.Background())

	return &Limiter{
		sem:        semaphore.NewWeighted(int64(size)),
		size:       size,
		occupied:   &atomic.Int64{},
		closed:     &atomic.Bool{},
		closeCtx:   closeCtx,
		closeFn:    closeFn,
		closeMutex: &sync.Mutex{},
	}
}

//endregion
