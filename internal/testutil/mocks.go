// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskRepository is an in-memory test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     map[int]*domain.Task
	CreateErr error
	MarkErr   error
	GetErr    error
	NowTime   time.Time
	NextIDN   int
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:   make(map[int]*domain.Task),
		NextIDN: 1,
	}
}

// Create assigns the next ID and stores a new open task.
func (m *MockTaskRepository) Create(ownerID, title string, dueAt *time.Time, category string, priority domain.Priority) (*domain.Task, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	task := &domain.Task{
		ID:       m.NextIDN,
		OwnerID:  ownerID,
		Title:    title,
		Category: category,
		Priority: priority,
		Status:   domain.StatusOpen,
		Created:  m.NowTime,
	}
	if dueAt != nil {
		d := *dueAt
		task.DueAt = &d
	}
	m.NextIDN++
	m.Tasks[task.ID] = task
	return task, nil
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id int) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return cloneTask(task), nil
}

// List filters and sorts like the real stores.
func (m *MockTaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, t := range m.Tasks {
		if t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.DueFrom != nil || filter.DueUntil != nil {
			if t.DueAt == nil {
				continue
			}
			if filter.DueFrom != nil && t.DueAt.Before(*filter.DueFrom) {
				continue
			}
			if filter.DueUntil != nil && t.DueAt.After(*filter.DueUntil) {
				continue
			}
		}
		tasks = append(tasks, cloneTask(t))
	}
	domain.SortTasks(tasks)
	return tasks, nil
}

// MarkDone transitions a task to done.
func (m *MockTaskRepository) MarkDone(id int) (*domain.Task, error) {
	task, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.Status = domain.StatusDone
	return cloneTask(task), nil
}

// SetDueAt moves the due instant and resets both reminder flags.
func (m *MockTaskRepository) SetDueAt(id int, due time.Time) (*domain.Task, error) {
	task, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.Reschedule(due)
	return cloneTask(task), nil
}

// MarkReminded sets one reminder flag under the same guards as the real
// stores: the task must still be open with an unchanged due instant.
func (m *MockTaskRepository) MarkReminded(id int, kind domain.ReminderKind, due time.Time) (bool, error) {
	if m.MarkErr != nil {
		return false, m.MarkErr
	}
	task, ok := m.Tasks[id]
	if !ok || task.Status != domain.StatusOpen || task.DueAt == nil || !task.DueAt.Equal(due) {
		return false, nil
	}
	switch kind {
	case domain.ReminderEarly:
		task.EarlyReminded = true
	default:
		task.DueReminded = true
	}
	return true, nil
}

// Delete removes a task by ID.
func (m *MockTaskRepository) Delete(id int) error {
	if _, ok := m.Tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// Snapshot returns clones of every task, like the real stores do.
func (m *MockTaskRepository) Snapshot() ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, cloneTask(t))
	}
	domain.SortTasks(tasks)
	return tasks, nil
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.DueAt != nil {
		d := *t.DueAt
		c.DueAt = &d
	}
	return &c
}

// Ensure MockTaskRepository implements TaskRepository.
var _ domain.TaskRepository = (*MockTaskRepository)(nil)

// SentMessage records one notifier delivery.
type SentMessage struct {
	OwnerID string
	Text    string
}

// MockNotifier records sends and optionally fails them.
type MockNotifier struct {
	Sent    []SentMessage
	SendErr error
}

// Send records the message.
func (m *MockNotifier) Send(_ context.Context, ownerID, text string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, SentMessage{OwnerID: ownerID, Text: text})
	return nil
}

// Ensure MockNotifier implements Notifier.
var _ domain.Notifier = (*MockNotifier)(nil)

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// Ensure NopLogger implements Logger.
var _ domain.Logger = NopLogger{}
