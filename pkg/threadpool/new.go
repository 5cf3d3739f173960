package threadpool

import (
	"github.com/pgvanniekerk/threadpool/internal/logging"
	"github.com/pgvanniekerk/threadpool/internal/threadpool"
	"github.com/zbh255/bilog"
)

// options collects the optional construction parameters.
type options struct {
	log       logging.Logger
	recoverFn func(any)
}

// Option customizes pool construction.
type Option func(*options)

// WithLogger makes the pool log its lifecycle events (construction, resize,
// stop, detach, close) and recovered task panics to the given bilog.Logger.
// Without this option the pool is silent.
//
//	logger := bilog.NewLogger(os.Stdout, bilog.PANIC, bilog.WithTimes())
//	pool := threadpool.New(4, threadpool.WithLogger(logger))
func WithLogger(l bilog.Logger) Option {
	return func(o *options) {
		o.log = logging.NewBilog(l)
	}
}

// WithRecover installs a hook that receives the panic value of every failing
// task. The worker loop survives task panics either way; the hook only adds
// observability. It runs on the worker goroutine and must not block for
// long.
func WithRecover(fn func(any)) Option {
	return func(o *options) {
		o.recoverFn = fn
	}
}

// New creates a ThreadPool with the given number of workers, all bound to
// the shared worker loop for their entire lifetime. A pool with zero workers
// is legal: it queues work until ResetThreadNum gives it threads.
//
// The caller owns the pool's lifecycle and should defer Close, which joins
// every worker not previously released by Detach.
//
// Usage:
//
//	pool := threadpool.New(4)
//	defer pool.Close()
//
//	for _, job := range jobs {
//	    pool.Invoke(threadpool.Bind(process, job))
//	}
//	pool.WaitTillAll(true)
func New(threads uint16, opts ...Option) ThreadPool {

	o := &options{
		log: logging.Nop{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return threadpool.New(threads, o.log, o.recoverFn)
}
