//go:build wasm

package internal

import "syscall/js"

// microtaskQueue defers its drain to the browser's own microtask queue via
// queueMicrotask, the same primitive the JS engine uses to run Promise
// continuations. That guarantees the drain fires only after the
// currently-running JS-invoked callback returns control to the event
// loop, i.e. after the whole synchronous burst of writes that scheduled
// it, and before the next callback the event loop dispatches. js/wasm has
// no real OS threads (see runtime_wasm.go), so there is never a second
// goroutine that could run this concurrently with the one producing work.
type microtaskQueue struct {
	tasks   []func()
	futures []*Future
	armed   bool
}

func newMicrotaskQueue() *microtaskQueue {
	return &microtaskQueue{}
}

// Schedule appends fn to the FIFO and returns a Future that resolves once
// fn has run. The first Schedule call since the queue last drained arms a
// single queueMicrotask callback to drain it.
func (q *microtaskQueue) Schedule(fn func()) *Future {
	fut := newFuture()
	fut.queue = q

	q.tasks = append(q.tasks, fn)
	q.futures = append(q.futures, fut)

	if !q.armed {
		q.armed = true
		js.Global().Call("queueMicrotask", js.FuncOf(func(this js.Value, args []js.Value) any {
			q.drain()
			return nil
		}))
	}

	return fut
}

// drain runs every task queued so far, in FIFO order, including ones a
// running task enqueues in turn, until the queue is empty. Idempotent:
// Future.Wait may call it directly ahead of the queued queueMicrotask
// callback, which then finds nothing left to do.
func (q *microtaskQueue) drain() {
	q.armed = false
	for len(q.tasks) > 0 {
		fn := q.tasks[0]
		fut := q.futures[0]
		q.tasks = q.tasks[1:]
		q.futures = q.futures[1:]

		fn()
		fut.resolve()
	}
}
