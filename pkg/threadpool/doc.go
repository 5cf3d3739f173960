// Package threadpool provides a fixed-or-resizable pool of worker goroutines
// that execute queued tasks asynchronously.
//
// The pool is an in-process concurrency primitive: tasks are fire-and-forget
// closures, the queue is unbounded and strictly FIFO, and progress is
// observed through monotonic counters (started, finished, killed, detached)
// rather than per-task results. Lifecycle controls grow or shrink the worker
// set, drain or discard pending work, and block callers until some or all
// submitted work has completed.
//
// # Basic usage
//
//	pool := threadpool.New(4)
//	defer pool.Close()
//
//	for i := 0; i < 8; i++ {
//	    pool.Invoke(func() {
//	        // do work
//	    })
//	}
//
//	if pool.WaitTillAll(true) {
//	    // every submitted task genuinely finished
//	}
//
// # Stopping
//
// Stop rejects future submissions and discards the backlog; tasks already
// executing run to completion. StopForced additionally joins every worker.
// Detach instead hands the workers their independence: they keep draining
// the queue, but Close no longer waits for them.
//
// # Failure isolation
//
// A task that panics does not kill its worker. The panic is recovered at the
// execution boundary, optionally reported through WithRecover, and the task
// counts as finished. The pool never retries.
package threadpool
