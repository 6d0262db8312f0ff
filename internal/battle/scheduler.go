package battle

import (
	"sync"
	"time"
)

// Scheduler runs deferred work. Schedule returns a function that cancels
// the task if it has not started yet.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler runs tasks on their own goroutine after the delay.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// ImmediateScheduler runs tasks synchronously, ignoring the delay.
type ImmediateScheduler struct{}

func (ImmediateScheduler) Schedule(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}

// ManualScheduler queues tasks until RunPending is called.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	fn        func()
	cancelled bool
}

func (m *ManualScheduler) Schedule(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{fn: fn}
	m.tasks = append(m.tasks, t)
	return func() {
		m.mu.Lock()
		t.cancelled = true
		m.mu.Unlock()
	}
}

// Pending reports how many queued tasks are still live.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// RunPending drains the queue, running every task that was not cancelled.
// It returns the number of tasks run.
func (m *ManualScheduler) RunPending() int {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()

	ran := 0
	for _, t := range tasks {
		m.mu.Lock()
		skip := t.cancelled
		m.mu.Unlock()
		if skip {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// RunStale runs every queued task including cancelled ones. It stands in
// for a timer that fired after cancellation was requested.
func (m *ManualScheduler) RunStale() {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()
	for _, t := range tasks {
		t.fn()
	}
}
