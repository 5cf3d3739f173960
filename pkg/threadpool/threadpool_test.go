package threadpool

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pgvanniekerk/threadpool/pkg/concurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zbh255/bilog"
)

// TestEightTasksFourWorkers is the basic accounting scenario: every
// submitted task finishes, nothing is killed.
func TestEightTasksFourWorkers(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var count atomic.Int32
	for i := 0; i < 8; i++ {
		pool.Invoke(func() { count.Add(1) })
	}

	require.True(t, pool.WaitTillAll(true))
	assert.EqualValues(t, 8, count.Load())
	assert.EqualValues(t, 8, pool.StartedNum())
	assert.EqualValues(t, 8, pool.FinishedNum())
	assert.Zero(t, pool.KilledNum())
}

// TestStopSplitsFinishedAndKilled verifies that an immediate Stop kills the
// backlog while the in-flight tasks complete, and that the books still
// balance.
func TestStopSplitsFinishedAndKilled(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	for i := 0; i < 5; i++ {
		pool.Invoke(func() { time.Sleep(30 * time.Millisecond) })
	}
	pool.Stop()

	pool.WaitTill(5, true)
	assert.EqualValues(t, 5, pool.FinishedNum()+pool.KilledNum())
	assert.GreaterOrEqual(t, pool.KilledNum(), uint64(1),
		"not every task can have been dequeued before Stop")

	started := pool.StartedNum()
	pool.Invoke(func() {})
	assert.Equal(t, started, pool.StartedNum(),
		"Invoke after Stop must not count as started")
}

// TestBind verifies that the binding helpers capture their arguments at
// submission time.
func TestBind(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	results := make(chan int, 2)

	record := func(v int) { results <- v }
	sum := func(a, b int) { results <- a + b }

	v := 7
	pool.Invoke(Bind(record, v))
	v = 0 // must not affect the already-bound task

	pool.Invoke(Bind2(sum, 2, 3))

	require.True(t, pool.WaitTillAll(true))
	assert.Equal(t, 7, <-results)
	assert.Equal(t, 5, <-results)
}

// TestWithRecover checks that the hook observes a task panic while the pool
// keeps running.
func TestWithRecover(t *testing.T) {
	panics := make(chan any, 1)
	pool := New(1, WithRecover(func(r any) { panics <- r }))
	defer pool.Close()

	pool.Invoke(func() { panic("kaboom") })

	require.True(t, pool.WaitTillAll(true))
	select {
	case r := <-panics:
		assert.Equal(t, "kaboom", r)
	default:
		t.Fatal("recover hook never ran")
	}
	assert.True(t, pool.Valid())
}

// TestWithLogger exercises the full lifecycle with a real bilog logger
// attached; the pool must behave identically with logging enabled.
func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := bilog.NewLogger(&buf, bilog.PANIC,
		bilog.WithLowBuffer(0), bilog.WithTopBuffer(0))

	pool := New(2, WithLogger(logger))

	var count atomic.Int32
	for i := 0; i < 4; i++ {
		pool.Invoke(func() { count.Add(1) })
	}
	require.True(t, pool.WaitTillAll(true))

	pool.ResetThreadNum(1)
	pool.Stop()
	pool.Close()

	assert.EqualValues(t, 4, count.Load())
}

// TestLimiterComposition bounds submissions with the concurrency limiter:
// slots are released from inside the tasks, so outstanding work never
// exceeds the limiter's capacity and all slots are free again at the end.
func TestLimiterComposition(t *testing.T) {
	lim := concurrency.NewLimiter(2)
	pool := New(2)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var outstanding, peak atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, lim.Acquire(ctx))
		if cur := outstanding.Add(1); cur > peak.Load() {
			peak.Store(cur)
		}
		pool.Invoke(func() {
			defer func() {
				outstanding.Add(-1)
				_ = lim.Release()
			}()
			time.Sleep(time.Millisecond)
		})
	}

	require.True(t, pool.WaitTillAll(true))
	assert.EqualValues(t, 10, pool.FinishedNum())
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.EqualValues(t, 2, lim.AvailableSlots())
	require.NoError(t, lim.Close())
}
