// Package fx schedules short-lived presentation effects: explosion sprites,
// floating score text, hit flashes. Tasks run on the frame goroutine when
// their due time passes and never touch match state.
package fx

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// taskPool recycles tasks to avoid per-effect allocations.
var taskPool = sync.Pool{
	New: func() any {
		return &task{}
	},
}

type task struct {
	id  uint64
	due time.Duration
	fn  func()
}

func (t *task) release() {
	t.fn = nil
	taskPool.Put(t)
}

// Scheduler holds pending effect tasks ordered by due time.
type Scheduler struct {
	last  uint64
	tasks []*task // Sorted by (due, id)
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once now+delay has been reached and returns the task ID.
func (s *Scheduler) After(now, delay time.Duration, fn func()) uint64 {
	s.last++
	t := taskPool.Get().(*task)
	t.id = s.last
	t.due = now + delay
	t.fn = fn

	i, _ := slices.BinarySearchFunc(s.tasks, t, func(a, b *task) int {
		if a.due != b.due {
			return cmp.Compare(a.due, b.due)
		}
		return cmp.Compare(a.id, b.id)
	})
	s.tasks = slices.Insert(s.tasks, i, t)
	return t.id
}

// Cancel drops a pending task. Returns false if it already ran or never existed.
func (s *Scheduler) Cancel(id uint64) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = slices.Delete(s.tasks, i, i+1)
			t.release()
			return true
		}
	}
	return false
}

// CancelAll drops every pending task without running it.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.release()
	}
	clear(s.tasks)
	s.tasks = s.tasks[:0]
}

// Run executes every task due at or before now, in due order, and returns how
// many ran. Tasks scheduled by a running task wait for the next call.
func (s *Scheduler) Run(now time.Duration) int {
	n := 0
	for n < len(s.tasks) && s.tasks[n].due <= now {
		n++
	}
	if n == 0 {
		return 0
	}

	due := slices.Clone(s.tasks[:n])
	s.tasks = slices.Delete(s.tasks, 0, n)
	for _, t := range due {
		t.fn()
		t.release()
	}
	return n
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
