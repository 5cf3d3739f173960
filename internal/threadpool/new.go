package threadpool

import (
	"sync"

	"github.com/pgvanniekerk/threadpool/internal/logging"
)

// New creates a ThreadPool with the given number of workers and starts their
// goroutines immediately. The stop flag starts lowered, so the pool accepts
// work from the moment it is returned.
//
// A nil log is replaced with the no-op logger so the worker loop never has to
// nil-check it. recoverFn may be nil; task panics are then swallowed after
// being logged.
func New(threads uint16, log logging.Logger, recoverFn func(any)) *ThreadPool {

	if log == nil {
		log = logging.Nop{}
	}

	mu := &sync.Mutex{}

	pool := &ThreadPool{
		mu:        mu,
		taskAvail: sync.NewCond(mu),
		taskDone:  sync.NewCond(mu),
		log:       log,
		recoverFn: recoverFn,
	}

	pool.mu.Lock()
	for i := uint16(0); i < threads; i++ {
		pool.spawnLocked()
	}
	pool.mu.Unlock()

	log.Info("pool created with %d workers", threads)
	return pool
}
