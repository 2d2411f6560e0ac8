package domain

// Status represents the lifecycle state of a task.
// The only transition is open -> done; done tasks are never resurrected.
type Status string

const (
	StatusOpen Status = "open" // Active, eligible for reminders
	StatusDone Status = "done" // Completed, permanently excluded from reminder scans
)

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusDone
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Priority represents the urgency of a task. High-priority tasks
// additionally receive an early reminder before the due instant.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityHigh
}
