package domain

import (
	"context"
	"time"
)

// TaskRepository manages task persistence. Every mutating call persists
// synchronously before returning; a persistence failure leaves the prior
// durable state intact and is surfaced to the caller.
type TaskRepository interface {
	// Create assigns the next ID and persists a new open task.
	Create(ownerID, title string, dueAt *time.Time, category string, priority Priority) (*Task, error)

	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int) (*Task, error)

	// List retrieves tasks matching the filter, ordered by due instant
	// (undated tasks last, stable by ID).
	List(filter TaskFilter) ([]*Task, error)

	// MarkDone transitions a task to done. Marking an already-done task
	// succeeds without re-persisting. Returns ErrTaskNotFound if absent.
	MarkDone(id int) (*Task, error)

	// SetDueAt moves the due instant and resets both reminder flags.
	SetDueAt(id int, due time.Time) (*Task, error)

	// MarkReminded sets one reminder flag, but only while the task is
	// still open and its due instant equals due. Returns false without
	// persisting when the task was completed, rescheduled, or removed
	// since the caller observed it.
	MarkReminded(id int, kind ReminderKind, due time.Time) (bool, error)

	// Delete removes a task by ID. Returns ErrTaskNotFound if absent.
	Delete(id int) error

	// Snapshot returns a read-only listing of every task, used by the
	// reminder and digest scans.
	Snapshot() ([]*Task, error)
}

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	DueFrom  *time.Time // Inclusive lower bound on DueAt (undated tasks excluded)
	DueUntil *time.Time // Inclusive upper bound on DueAt (undated tasks excluded)
	OwnerID  string     // Required; all listings are owner-scoped
	Status   Status     // Empty = any status
}

// TaskDraft is a candidate task produced by the extractor or a manual
// command, before the store assigns an ID.
type TaskDraft struct {
	DueAt    *time.Time
	Title    string
	Category string
	Priority Priority
}

// Extractor turns free text into task drafts. A failed or unparseable
// extraction yields an empty slice, never an error.
type Extractor interface {
	Extract(text string, nowLocal time.Time) []TaskDraft
}

// Transcriber converts a voice note reference into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) (string, error)
}

// Notifier delivers a message to an owner's channel. Sends are
// best-effort; a failure is logged by the caller and never rolled back.
type Notifier interface {
	Send(ctx context.Context, ownerID, text string) error
}

// Logger provides leveled logging scoped by task ID and category.
type Logger interface {
	Debug(taskID int, category, msg string)
	Info(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
