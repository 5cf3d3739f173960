package threadpool

// ThreadPool manages a fixed-or-resizable set of worker goroutines that
// execute queued tasks asynchronously. Tasks are dequeued in strict FIFO
// submission order and handed to exactly one worker each; completion order
// across workers is unspecified.
//
// Every operation is non-failing by design: submitting against a stopped
// pool is a silent no-op, not an error. Callers that need to distinguish
// acceptance from rejection check Valid first. A task's own failure (panic)
// is outside the pool's contract — the worker loop survives it and the task
// still counts as finished.
//
// Progress is exposed through four monotonically increasing counters:
//
//   - started: tasks accepted into the queue.
//   - finished: tasks that ran to completion.
//   - killed: queued-but-never-started tasks discarded by Stop,
//     StopForced, ResetThreadNum or KillAllPending, plus one per worker
//     joined during Close.
//   - detached: workers released from the pool's ownership by Detach.
//
// finished+killed never exceeds started while the pool is live; every
// accepted task eventually becomes exactly one of finished or killed.
type ThreadPool interface {

	// Invoke appends a task to the tail of the queue and wakes a worker.
	// It is fire-and-forget: no return value, no way to observe the
	// individual task's outcome other than through the counters. If the
	// pool has been stopped the submission is dropped and started is not
	// incremented; the stop check and the enqueue are one atomic decision
	// under the pool's lock.
	Invoke(task Task)

	// IsNoPending reports whether the queue is currently empty.
	IsNoPending() bool

	// PendingTaskNum returns the number of tasks waiting in the queue.
	PendingTaskNum() int

	// KillAllPending discards all currently queued tasks, counting each
	// as killed. The stop flag and the workers are untouched; tasks
	// already executing continue.
	KillAllPending()

	// WaitTill blocks until finished+killed >= n or, unless ignoreStop is
	// set, until the stop flag rises — whichever happens first. It
	// returns true iff at least n tasks genuinely finished, so a caller
	// can tell "my tasks completed" apart from "the pool was stopped
	// before they could".
	WaitTill(n uint64, ignoreStop bool) bool

	// WaitTillAll is WaitTill(started+detached, ignoreStop): it waits for
	// everything ever submitted, including work handed to detached
	// workers.
	WaitTillAll(ignoreStop bool) bool

	// WaitTillNoPending blocks until the queue is empty. Tasks may still
	// be executing when it returns.
	WaitTillNoPending()

	// Detach releases every worker goroutine from the pool's ownership,
	// counting each as detached, and raises the stop flag. Queued tasks
	// are not discarded: the detached workers keep draining them
	// independently of the pool's lifetime, and Close will no longer wait
	// for them.
	Detach()

	// Stop raises the stop flag and discards all pending tasks, counting
	// each as killed. Executions already underway are not interrupted,
	// and no new submissions are accepted afterwards. Workers exit once
	// they observe the empty queue; Stop does not wait for them.
	Stop()

	// StopForced performs Stop and then shrinks the pool to zero workers,
	// joining every one. It returns only when no worker goroutine is left
	// running.
	StopForced()

	// ResetThreadNum grows or shrinks the pool to exactly n workers.
	// Growing appends fresh workers and leaves the queue alone. Shrinking
	// discards all queued tasks (counted as killed) and retires only the
	// excess workers; the kept workers are never disturbed and the pool
	// remains valid throughout.
	ResetThreadNum(n uint16)

	// Valid reports whether the pool currently accepts work, i.e. the
	// stop flag is not set.
	Valid() bool

	// ThreadNum returns the configured worker count.
	ThreadNum() uint16

	// StartedNum returns the started counter.
	StartedNum() uint64

	// FinishedNum returns the finished counter.
	FinishedNum() uint64

	// KilledNum returns the killed counter.
	KilledNum() uint64

	// DetachedNum returns the detached counter.
	DetachedNum() uint64

	// Close stops the pool and joins every non-detached worker, counting
	// each joined worker as killed. Queued tasks are drained (executed)
	// by the workers on the way out. No worker goroutine outlives Close
	// unless Detach transferred ownership first. Close is idempotent and
	// should be deferred right after construction.
	Close()
}
