// ABOUTME: Tracking and cooperative cancellation of asynchronous cooks
// ABOUTME: Each task gates its callbacks behind a mutex so cancellation can fence them

package cooker

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// task is one asynchronous cook.
type task struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	// deliverMu is held while a callback runs.
	deliverMu sync.Mutex
}

// deliver runs fn unless the task was cancelled. It reports whether fn ran.
func (t *task) deliver(fn func()) bool {
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()
	if t.ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// fence cancels the task and waits for a running callback to return.
func (t *task) fence() {
	t.cancel()
	t.deliverMu.Lock()
	t.deliverMu.Unlock() //nolint:staticcheck // empty critical section waits out delivery
}

type taskSet struct {
	mu    sync.Mutex
	tasks map[string]*task
}

func newTaskSet() *taskSet {
	return &taskSet{tasks: make(map[string]*task)}
}

func (s *taskSet) add() *task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{id: uuid.New().String(), ctx: ctx, cancel: cancel}

	s.mu.Lock()
	s.tasks[t.id] = t
	s.mu.Unlock()

	tasksInProgress.Inc()
	return t
}

// remove forgets a finished task. It is a no-op for tasks already cleared by
// cancelAll.
func (s *taskSet) remove(t *task) {
	s.mu.Lock()
	_, ok := s.tasks[t.id]
	delete(s.tasks, t.id)
	s.mu.Unlock()

	t.cancel()
	if ok {
		tasksInProgress.Dec()
	}
}

// cancelAll fences every task and empties the set. It returns the number of
// tasks cancelled.
func (s *taskSet) cancelAll() int {
	s.mu.Lock()
	pending := make([]*task, 0, len(s.tasks))
	for id, t := range s.tasks {
		pending = append(pending, t)
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	for _, t := range pending {
		t.fence()
		tasksInProgress.Dec()
		tasksCancelled.Inc()
	}
	return len(pending)
}

func (s *taskSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// CancelTranslationTasks stops every asynchronous cook. When it returns no
// further callbacks fire for those cooks and AreTasksInProgress is false.
// Population already running on a node finishes and is discarded.
func (e *Engine) CancelTranslationTasks() {
	if n := e.tasks.cancelAll(); n > 0 {
		e.logger.Info("Cancelled translation tasks", map[string]interface{}{
			"tasks": n,
		})
	}
}

// AreTasksInProgress reports whether any asynchronous cook is still running.
func (e *Engine) AreTasksInProgress() bool {
	return e.tasks.len() > 0
}
