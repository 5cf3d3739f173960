package concurrency

import "github.com/pgvanniekerk/threadpool/internal/concurrency"

var ErrLimiterClosed = concurrency.ErrLimiterClosed
var ErrReleaseExceedsMaxLimit = concurrency.ErrReleaseExceedsMaxLimit
