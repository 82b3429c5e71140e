// Package upload tracks uploads that are in flight.
//
// Every upload gets a UUID from Begin before any bytes are sent, and the same
// UUID is used to finish or fail it. The server-assigned record id is only
// attached afterwards, so a pending entry and its result can never end up
// under different keys.
package upload

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/uploader/internal/client/models"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Task is a snapshot of one tracked upload.
type Task struct {
	ID        string
	Filename  string
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
	Record    *models.FileRecord
	Err       error
}

type Tracker struct {
	mu    sync.Mutex
	tasks map[string]*Task
	order []string
	now   func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]*Task), now: time.Now}
}

// Begin registers an upload of filename and returns its tracking id.
func (t *Tracker) Begin(filename string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.NewString()
	t.tasks[id] = &Task{ID: id, Filename: filename, Status: StatusPending, StartedAt: t.now()}
	t.order = append(t.order, id)
	return id
}

// Finish marks the upload done and attaches the server record. Unknown ids
// are ignored.
func (t *Tracker) Finish(id string, rec models.FileRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	if !ok {
		return
	}
	task.Status = StatusDone
	task.EndedAt = t.now()
	task.Record = &rec
}

// Fail marks the upload failed.
func (t *Tracker) Fail(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	if !ok {
		return
	}
	task.Status = StatusFailed
	task.EndedAt = t.now()
	task.Err = err
}

// Get returns a snapshot of the task with the given id.
func (t *Tracker) Get(id string) (Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Pending lists uploads still in flight, oldest first.
func (t *Tracker) Pending() []Task {
	return t.list(func(task *Task) bool { return task.Status == StatusPending })
}

// All lists every tracked upload, oldest first.
func (t *Tracker) All() []Task {
	return t.list(func(*Task) bool { return true })
}

// Drain removes finished and failed uploads and returns them, oldest first.
// Each completed upload is returned by exactly one call.
func (t *Tracker) Drain() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Task
	t.order = slices.DeleteFunc(t.order, func(id string) bool {
		task := t.tasks[id]
		if task.Status == StatusPending {
			return false
		}
		out = append(out, *task)
		delete(t.tasks, id)
		return true
	})
	return out
}

func (t *Tracker) list(keep func(*Task) bool) []Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Task, 0, len(t.order))
	for _, id := range t.order {
		if task := t.tasks[id]; keep(task) {
			out = append(out, *task)
		}
	}
	return out
}
