// Package domain contains core business entities and interfaces.
package domain

import (
	"slices"
	"time"
)

// Task represents a single reminder-bearing task owned by one user.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created       time.Time  `json:"created"`            // Creation time
	DueAt         *time.Time `json:"dueAt"`              // Due instant (nil = no due date, never fires reminders)
	OwnerID       string     `json:"ownerID"`            // Owning user; every query is scoped by this
	Title         string     `json:"title"`              // Title (required)
	Category      string     `json:"category,omitempty"` // Free-text label (e.g. "call", "payment")
	Priority      Priority   `json:"priority"`           // Controls whether an early reminder is sent
	Status        Status     `json:"status"`             // Current status
	ID            int        `json:"id"`                 // Task ID, monotonically assigned
	DueReminded   bool       `json:"dueReminded"`        // Due-time reminder already fired
	EarlyReminded bool       `json:"earlyReminded"`      // Early reminder already fired (high priority only)
}

// IsOpen returns true if the task still participates in reminder scans.
func (t *Task) IsOpen() bool {
	return t.Status == StatusOpen
}

// HasDue returns true if the task has a due instant.
func (t *Task) HasDue() bool {
	return t.DueAt != nil
}

// Reschedule moves the due instant and re-arms both reminder flags.
// The flags only ever reset together with a due change.
func (t *Task) Reschedule(due time.Time) {
	d := due
	t.DueAt = &d
	t.DueReminded = false
	t.EarlyReminded = false
}

// SortTasks orders tasks ascending by due instant. Tasks without a due
// instant sort after all dated tasks, stable among themselves by ID.
func SortTasks(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		switch {
		case a.DueAt == nil && b.DueAt == nil:
			return a.ID - b.ID
		case a.DueAt == nil:
			return 1
		case b.DueAt == nil:
			return -1
		case a.DueAt.Before(*b.DueAt):
			return -1
		case b.DueAt.Before(*a.DueAt):
			return 1
		default:
			return a.ID - b.ID
		}
	})
}
