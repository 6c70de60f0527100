package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry owns every delayed action in the bot: timed unlocks, list
// view expiries, giveaway ends, AFK choice timeouts. Each task is a
// one-shot timer that can be cancelled by ID, so a command that
// supersedes an earlier one (a second .lock 10m on the same channel,
// say) can drop the stale revert instead of racing it.
type Registry struct {
	mu    sync.Mutex
	next  int64
	tasks map[int64]*task
	log   *zap.Logger
}

type task struct {
	name  string
	timer *time.Timer
}

func New(log *zap.Logger) *Registry {
	return &Registry{
		tasks: make(map[int64]*task),
		log:   log,
	}
}

// After schedules fn to run once after d. The returned ID cancels it.
// fn runs on the timer goroutine; panics are recovered and logged so
// one bad callback cannot take the process down.
func (r *Registry) After(name string, d time.Duration, fn func()) int64 {
	r.mu.Lock()
	r.next++
	id := r.next
	r.mu.Unlock()

	t := &task{name: name}
	t.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		_, live := r.tasks[id]
		delete(r.tasks, id)
		r.mu.Unlock()
		if !live {
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("scheduled task panicked",
					zap.String("task", name), zap.Any("panic", rec))
			}
		}()
		fn()
	})

	r.mu.Lock()
	r.tasks[id] = t
	r.mu.Unlock()
	return id
}

// Cancel stops a pending task. Cancelling an already-fired or unknown
// ID is a no-op and returns false.
func (r *Registry) Cancel(id int64) bool {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if ok {
		delete(r.tasks, id)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	t.timer.Stop()
	return true
}

// Len reports how many tasks are pending.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Shutdown stops all pending timers without running them.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tasks {
		t.timer.Stop()
		delete(r.tasks, id)
	}
}
