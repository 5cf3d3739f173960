package threadpool

// Task is a deferred, zero-argument unit of work. Ownership of anything the
// closure captures transfers fully into the task at submission time; the
// pool treats it as opaque and never inspects or retries it.
type Task = func()

// Bind closes a one-argument function over its argument, producing a Task
// that carries the value with it. The argument is captured by value at bind
// time, not when the task eventually runs.
//
// Usage:
//
//	pool.Invoke(threadpool.Bind(processOrder, order))
func Bind[A any](fn func(A), arg A) Task {
	return func() {
		fn(arg)
	}
}

// Bind2 is Bind for two-argument functions.
func Bind2[A, B any](fn func(A, B), a A, b B) Task {
	return func() {
		fn(a, b)
	}
}
