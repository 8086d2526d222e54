package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/winhop/parameter"
	"github.com/lixenwraith/winhop/status"
)

// Task is a cooperative sequence driven by Scheduler ticks
// Each Step runs until the next suspension point and reports when to resume
type Task interface {
	// Step advances the task; done=true finishes it, otherwise it resumes at wake
	Step(now time.Time) (wake time.Time, done bool)
}

// Canceller is implemented by tasks that want to observe cancellation
type Canceller interface {
	// Cancelled is called once when the task is dropped at a suspension point
	Cancelled(now time.Time)
}

// TaskFunc adapts a function to Task
type TaskFunc func(now time.Time) (time.Time, bool)

func (f TaskFunc) Step(now time.Time) (time.Time, bool) {
	return f(now)
}

// After returns a one-shot task that runs fn once d has elapsed
func After(d time.Duration, fn func(now time.Time)) Task {
	armed := false
	return TaskFunc(func(now time.Time) (time.Time, bool) {
		if !armed {
			armed = true
			return now.Add(d), false
		}
		fn(now)
		return time.Time{}, true
	})
}

type scheduledTask struct {
	ctx  context.Context
	task Task
	wake time.Time
}

// Scheduler runs cooperative tasks on the game loop goroutine
//
// Model:
//   - Go runs the first step immediately, like starting a coroutine
//   - Tick resumes every task whose wake time has passed, in submission order
//   - Cancellation is cooperative: a cancelled context is only observed when the
//     task would resume, a step already running always completes
//   - Not safe for concurrent use; the game loop owns it
type Scheduler struct {
	clock TimeProvider
	tasks []*scheduledTask

	statTasks *atomic.Int64
}

// NewScheduler creates a scheduler reading time from clock
func NewScheduler(clock TimeProvider, reg *status.Registry) *Scheduler {
	return &Scheduler{
		clock:     clock,
		statTasks: reg.Ints.Get(parameter.StatSchedulerTasks),
	}
}

// Go starts task under ctx, returns false if ctx is already done or the task
// finished within its first step
func (s *Scheduler) Go(ctx context.Context, task Task) bool {
	if ctx.Err() != nil {
		return false
	}
	wake, done := task.Step(s.clock.Now())
	if done {
		return false
	}
	s.tasks = append(s.tasks, &scheduledTask{ctx: ctx, task: task, wake: wake})
	s.statTasks.Store(int64(len(s.tasks)))
	return true
}

// Tick resumes due tasks
// Tasks started during the tick are kept and first resumed on a later tick
func (s *Scheduler) Tick(now time.Time) {
	due := s.tasks
	s.tasks = nil

	kept := make([]*scheduledTask, 0, len(due))
	for _, st := range due {
		if now.Before(st.wake) {
			kept = append(kept, st)
			continue
		}
		if st.ctx.Err() != nil {
			if c, ok := st.task.(Canceller); ok {
				c.Cancelled(now)
			}
			continue
		}
		wake, done := st.task.Step(now)
		if done {
			continue
		}
		st.wake = wake
		kept = append(kept, st)
	}

	s.tasks = append(kept, s.tasks...)
	s.statTasks.Store(int64(len(s.tasks)))
}

// Len returns the number of suspended tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Now returns the scheduler clock time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}
