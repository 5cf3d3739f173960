package threadpool

import (
	"sync"

	"github.com/pgvanniekerk/threadpool/internal/logging"
)

// worker is the pool-side handle for a single worker goroutine. The retire
// flag is guarded by the pool mutex; done is closed by the worker loop on
// exit and is the only thing a join ever waits on.
type worker struct {

	// retire tells this specific worker to exit the next time it holds the
	// pool lock. It is how a shrink removes excess workers without touching
	// the pool-wide stop flag, so the workers that stay are never disturbed.
	retire bool

	// done is closed when the worker loop returns. Joining a worker means
	// receiving from this channel.
	done chan struct{}
}

// ThreadPool is the mutex/condition-variable implementation behind the public
// pkg/threadpool API. One mutex guards the queue, the stop flag and the four
// counters; two condition variables multiplex over that state:
//
//   - taskAvail: a task was enqueued, a task was dequeued, or the stop flag
//     rose. Workers and WaitTillNoPending callers wait here.
//   - taskDone: a task finished, tasks were killed, or the stop flag rose.
//     WaitTill callers wait here.
//
// Task execution always happens with the mutex released, so a long-running
// task never stalls submission, counter reads, or the other workers.
type ThreadPool struct {

	// mu guards every field below it.
	mu *sync.Mutex

	// taskAvail signals that the queue or the stop flag changed.
	taskAvail *sync.Cond

	// taskDone signals that finished or killed advanced, or that the stop
	// flag rose.
	taskDone *sync.Cond

	// queue holds pending tasks in FIFO submission order.
	queue []func()

	// workers holds the live worker handles. Its length is the configured
	// thread count.
	workers []*worker

	// stop, once set, rejects new submissions. Workers keep draining the
	// queue while it is non-empty and exit when it runs dry.
	stop bool

	// detached records that the worker goroutines no longer belong to this
	// pool; Close must not join them.
	detached bool

	// closed makes Close idempotent.
	closed bool

	started     uint64
	finished    uint64
	killed      uint64
	numDetached uint64

	// log receives lifecycle events. Never nil; defaults to a no-op logger.
	log logging.Logger

	// recoverFn, when non-nil, receives the panic value of a failing task.
	recoverFn func(any)
}

// run is the worker loop. Every worker goroutine executes it against the
// shared queue until it is retired or the pool stops with an empty queue.
func (p *ThreadPool) run(w *worker) {
	defer close(w.done)

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stop && !w.retire {
			p.taskAvail.Wait()
		}

		// A retired worker leaves immediately; the kept workers own
		// whatever is still queued. On stop the queue is drained first.
		if w.retire || (p.stop && len(p.queue) == 0) {
			p.mu.Unlock()
			return
		}

		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]

		// Re-signal after every dequeue so WaitTillNoPending callers
		// re-check their predicate promptly.
		p.taskAvail.Broadcast()
		p.mu.Unlock()

		p.execute(task)

		p.mu.Lock()
		p.finished++
		p.taskDone.Broadcast()
		p.mu.Unlock()
	}
}

// execute runs a single task behind a recover boundary. A panicking task is
// the task's own problem: the worker loop survives, the task still counts as
// finished, and the panic value is handed to the recover hook if one was
// configured.
func (p *ThreadPool) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("task panicked: %v", r)
			if p.recoverFn != nil {
				p.recoverFn(r)
			}
		}
	}()
	task()
}

// Invoke appends a task to the tail of the queue and wakes a worker. The
// stop check and the enqueue form a single critical section: a submission
// racing with Stop is either fully accepted (and counted as started) or
// fully rejected, never half of each.
func (p *ThreadPool) Invoke(task func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop {
		return
	}

	p.queue = append(p.queue, task)
	p.started++

	// Broadcast rather than signal: workers and WaitTillNoPending callers
	// share this condition, and a single wake could land on a waiter that
	// cannot consume the task.
	p.taskAvail.Broadcast()
}

// IsNoPending reports whether the queue is currently empty.
func (p *ThreadPool) IsNoPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) == 0
}

// PendingTaskNum returns the current queue length.
func (p *ThreadPool) PendingTaskNum() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// KillAllPending discards every queued task, counting each as killed. The
// stop flag and the workers are untouched; in-flight executions continue.
func (p *ThreadPool) KillAllPending() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.discardQueueLocked()
}

// discardQueueLocked empties the queue, adds the discarded tasks to the
// killed counter and wakes both waiter classes: killed advanced (WaitTill
// predicates) and the queue became empty (WaitTillNoPending predicates).
// Callers must hold p.mu.
func (p *ThreadPool) discardQueueLocked() {
	if len(p.queue) == 0 {
		return
	}
	p.killed += uint64(len(p.queue))
	p.queue = nil
	p.taskAvail.Broadcast()
	p.taskDone.Broadcast()
}

// WaitTill blocks until finished+killed reaches n or, unless ignoreStop is
// set, until the stop flag rises. It returns whether at least n tasks
// genuinely finished, letting the caller tell "my work completed" apart from
// "the pool stopped underneath me".
func (p *ThreadPool) WaitTill(n uint64, ignoreStop bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.finished+p.killed < n && (ignoreStop || !p.stop) {
		p.taskDone.Wait()
	}
	return p.finished >= n
}

// WaitTillAll waits for everything ever submitted, including work handed to
// detached workers.
func (p *ThreadPool) WaitTillAll(ignoreStop bool) bool {
	p.mu.Lock()
	target := p.started + p.numDetached
	p.mu.Unlock()
	return p.WaitTill(target, ignoreStop)
}

// WaitTillNoPending blocks until the queue is empty. Tasks may still be
// executing when it returns; it only promises that everything has been
// handed to a worker.
func (p *ThreadPool) WaitTillNoPending() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) > 0 {
		p.taskAvail.Wait()
	}
}

// Detach releases every worker goroutine from the pool's ownership. The stop
// flag rises so no new work is accepted, but the queue is deliberately not
// discarded: detached workers keep draining it independently of the pool
// object's lifetime, which is why the queue and mutex are shared state the
// garbage collector keeps alive for them.
func (p *ThreadPool) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detached {
		return
	}

	p.stop = true
	p.detached = true
	p.numDetached += uint64(len(p.workers))
	p.taskAvail.Broadcast()
	p.taskDone.Broadcast()
	p.log.Info("pool detached with %d workers, %d tasks still queued", len(p.workers), len(p.queue))
}

// Stop rejects all future submissions and discards every queued task,
// counting each as killed. Executions already underway are not interrupted.
// Stop does not join the workers; they exit on their own once they observe
// the empty queue.
func (p *ThreadPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stop = true
	p.discardQueueLocked()

	// The flag itself is a wake condition for both waiter classes even
	// when the queue was already empty.
	p.taskAvail.Broadcast()
	p.taskDone.Broadcast()
	p.log.Info("pool stopped, %d tasks killed so far", p.killed)
}

// StopForced performs Stop and then shrinks the pool to zero workers,
// joining every one of them. Unlike Stop it only returns once no worker
// goroutine is left running.
func (p *ThreadPool) StopForced() {
	p.Stop()
	p.ResetThreadNum(0)
	p.log.Info("pool force-stopped")
}

// ResetThreadNum grows or shrinks the pool to exactly n workers.
//
// Growing appends fresh workers; existing workers and the queue are
// untouched. Shrinking discards the queue (each task counted as killed),
// retires only the workers beyond index n via their per-worker flag, and
// joins them. The kept workers never observe a stop condition, so the pool
// stays valid and keeps executing new submissions throughout.
func (p *ThreadPool) ResetThreadNum(n uint16) {
	p.mu.Lock()

	cur := len(p.workers)
	switch {
	case int(n) < cur:
		p.discardQueueLocked()

		// Copy the excess handles out: the workers slice is truncated
		// and may be re-grown while the joins below are still pending.
		excess := make([]*worker, cur-int(n))
		copy(excess, p.workers[int(n):])
		for _, w := range excess {
			w.retire = true
		}
		p.workers = p.workers[:int(n)]
		p.taskAvail.Broadcast()
		p.mu.Unlock()

		for _, w := range excess {
			<-w.done
		}
		p.log.Info("pool shrunk from %d to %d workers", cur, n)

	case int(n) > cur:
		for i := cur; i < int(n); i++ {
			p.spawnLocked()
		}
		p.mu.Unlock()
		p.log.Info("pool grown from %d to %d workers", cur, n)

	default:
		p.mu.Unlock()
	}
}

// spawnLocked appends one worker handle and starts its goroutine. Callers
// must hold p.mu.
func (p *ThreadPool) spawnLocked() {
	w := &worker{done: make(chan struct{})}
	p.workers = append(p.workers, w)
	go p.run(w)
}

// Close is the destruction path: it raises the stop flag, wakes every
// worker and joins each one that has not been detached, counting each joined
// worker as killed. After Close no worker goroutine outlives the pool unless
// Detach transferred ownership first. Close is idempotent.
func (p *ThreadPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.stop = true
	p.taskAvail.Broadcast()
	p.taskDone.Broadcast()

	var join []*worker
	if !p.detached {
		join = make([]*worker, len(p.workers))
		copy(join, p.workers)
	}
	p.mu.Unlock()

	for _, w := range join {
		<-w.done
	}

	p.mu.Lock()
	p.killed += uint64(len(join))
	p.taskDone.Broadcast()
	p.mu.Unlock()
	p.log.Info("pool closed, joined %d workers", len(join))
}

// Valid reports whether the pool currently accepts work.
func (p *ThreadPool) Valid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.stop
}

// ThreadNum returns the configured worker count.
func (p *ThreadPool) ThreadNum() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return uint16(len(p.workers))
}

// StartedNum returns the number of tasks accepted into the queue.
func (p *ThreadPool) StartedNum() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// FinishedNum returns the number of tasks that ran to completion.
func (p *ThreadPool) FinishedNum() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

// KilledNum returns the number of tasks discarded before they ever ran,
// plus one per worker joined during Close.
func (p *ThreadPool) KilledNum() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

// DetachedNum returns the number of workers released by Detach.
func (p *ThreadPool) DetachedNum() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numDetached
}
