// Package schedule provides a queue of one-shot deferred callbacks.
//
// A Queue plays the role of an idle-callback source: work posted while the
// event loop is handling an event runs later, after the loop has laid out
// and drawn the result. Every posted Task can be cancelled until it runs.
package schedule

import "sync"

// Task is a callback waiting in a Queue.
type Task struct {
	fn        func()
	done      bool
	cancelled bool
	q         *Queue
}

// Cancel prevents the task from running. It returns true if the task was
// still pending.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	t.q.mu.Lock()
	defer t.q.mu.Unlock()

	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Pending reports whether the task has neither run nor been cancelled.
func (t *Task) Pending() bool {
	if t == nil {
		return false
	}
	t.q.mu.Lock()
	defer t.q.mu.Unlock()
	return !t.done && !t.cancelled
}

// Queue holds deferred tasks in posting order. It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	tasks  []*Task
	notify func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// SetNotify registers a function called whenever a task is posted, so that
// a blocked event loop can be woken up to run it.
func (q *Queue) SetNotify(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notify = fn
}

// Post schedules fn to run on the next RunPending call.
func (q *Queue) Post(fn func()) *Task {
	t := &Task{fn: fn, q: q}

	q.mu.Lock()
	q.tasks = append(q.tasks, t)
	notify := q.notify
	q.mu.Unlock()

	if notify != nil {
		notify()
	}
	return t
}

// RunPending runs every task posted before the call, in order, skipping
// cancelled ones. Tasks posted by a running task wait for the next call.
// It returns the number of tasks run.
func (q *Queue) RunPending() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	ran := 0
	for _, t := range tasks {
		q.mu.Lock()
		skip := t.cancelled
		t.done = true
		q.mu.Unlock()

		if skip || t.fn == nil {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Len returns the number of queued tasks, cancelled ones included.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
