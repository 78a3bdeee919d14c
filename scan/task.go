// Package scan drives a compiled pattern across a segmented address space
// under a cancellable, bounded task and aggregates the matching addresses.
package scan

import (
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a scan task.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Task is a cancellable unit of scan work. Each user-initiated scan request
// gets its own task; a task runs once and is never resumed.
//
// Cancellation is cooperative: Cancel may be called from any goroutine at any
// time, but it takes effect only at the scan driver's checkpoints (before
// each segment read and after each segment's results).
type Task struct {
	label     string
	started   time.Time
	cancelled atomic.Bool
	state     atomic.Int32
}

// NewTask creates a task in the Created state.
func NewTask(label string) *Task {
	return &Task{label: label}
}

// Label returns the human-readable task label.
func (t *Task) Label() string {
	return t.label
}

// Started returns the wall-clock start time, zero until the task runs.
func (t *Task) Started() time.Time {
	return t.started
}

// Cancel requests cooperative cancellation. Safe to call from any goroutine
// and more than once.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

// State returns the current lifecycle state.
func (t *Task) State() State {
	return State(t.state.Load())
}

func (t *Task) start() {
	t.started = time.Now()
	t.state.Store(int32(StateRunning))
}

func (t *Task) finish(s State) {
	t.state.Store(int32(s))
}
