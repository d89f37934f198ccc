// Package dispatch provides a serial executor for callbacks that must run
// outside of a lock but in the order they were queued.
package dispatch

import "sync"

// Queue runs submitted functions one at a time in FIFO order.
// The goroutine that finds the queue idle becomes the drainer and runs every
// function queued until the queue is empty again. Functions submitted while
// a drain is in progress, including from inside a running function, are
// appended and run by the active drainer, so Do never blocks on itself.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	running bool
}

// Do queues fn and drains the queue if no other goroutine is doing so.
// When Do returns, fn has either run or been handed to the active drainer.
func (q *Queue) Do(fn func()) {
	q.Push(fn)
	q.Drain()
}

// Push appends functions without running them.
// Callers that must keep the order of their own critical sections push while
// holding their lock and call Drain after releasing it.
func (q *Queue) Push(fns ...func()) {
	if len(fns) == 0 {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fns...)
	q.mu.Unlock()
}

// Drain runs pending functions unless another goroutine is already draining.
func (q *Queue) Drain() {
	q.mu.Lock()
	if q.running || len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.run(fn)
	}
}

// run executes fn. A panicking fn releases the queue; the functions still
// pending run with the next call to Drain.
func (q *Queue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.mu.Lock()
			q.running = false
			q.mu.Unlock()
			panic(r)
		}
	}()
	fn()
}
