package domain

import "time"

// Reminder windows in seconds relative to the due instant. Both windows
// are half-open so adjacent scans at the same cadence cannot double-fire.
const (
	DueWindowLo = 0
	DueWindowHi = 60

	EarlyWindowLo = 1740 // 29 minutes before due
	EarlyWindowHi = 1800 // 30 minutes before due
)

// ReminderKind selects which of a task's two reminder flags an
// operation touches.
type ReminderKind int

const (
	ReminderDue ReminderKind = iota
	ReminderEarly
)

// LocalDayBounds returns the inclusive start and end instants of the
// local calendar day containing t in the given location.
func LocalDayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// WithinWindow reports whether due-now lies in the half-open interval
// [lo, hi) seconds.
func WithinWindow(due, now time.Time, lo, hi int) bool {
	delta := due.Sub(now).Seconds()
	return delta >= float64(lo) && delta < float64(hi)
}

// SameLocalDay reports whether t falls within the local calendar day
// containing ref.
func SameLocalDay(t, ref time.Time, loc *time.Location) bool {
	start, end := LocalDayBounds(ref, loc)
	return !t.Before(start) && !t.After(end)
}
