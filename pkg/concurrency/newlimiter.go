package concurrency

import "github.com/pgvanniekerk/threadpool/internal/concurrency"

// NewLimiter creates and returns a new Limiter instance with the specified
// slot capacity (the maximum number of concurrently held slots). It panics
// when size is 0.
func NewLimiter(size uint32) Limiter {
	return concurrency.NewLimiter(size)
}
