// Package jsonstore provides a JSON file-based implementation of TaskRepository.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

// storeData represents the JSON file structure: the ordered task list and
// the next-id counter, rewritten as one record on every mutation.
type storeData struct {
	Tasks []*domain.Task `json:"tasks"`
	Meta  meta           `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextID int `json:"nextID"`
}

// Store implements domain.TaskRepository using a single JSON file.
// The collection is loaded once at Open and held in memory; every
// mutating call rewrites the file via a temp-file-then-rename swap so a
// failed write never corrupts the prior durable state.
type Store struct {
	clock    domain.Clock
	logger   domain.Logger
	lockFile *os.File
	path     string
	lockPath string
	tasks    []*domain.Task
	nextID   int
	mu       sync.Mutex
	loaded   bool
	diverged bool
}

// New creates a new Store for the given file path.
// The file does not need to exist; Open initializes an empty store.
func New(path string, clock domain.Clock, logger domain.Logger) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
		clock:    clock,
		logger:   logger,
	}
}

// Open acquires the store lock and loads existing state. A missing or
// unreadable file initializes an empty store with counter 1 (non-fatal,
// logged).
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquireLock(); err != nil {
		return err
	}

	s.tasks = nil
	s.nextID = 1
	s.loaded = true

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logInfo(0, "store", "no store file, starting empty")
			return nil
		}
		s.logWarn(0, "store", fmt.Sprintf("store file unreadable, starting empty: %v", err))
		return nil
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		s.logWarn(0, "store", fmt.Sprintf("store file corrupt, starting empty: %v", err))
		return nil
	}

	s.tasks = data.Tasks
	s.nextID = data.Meta.NextID
	if s.nextID < 1 {
		s.nextID = 1
	}
	// Never hand out an ID at or below the highest existing one, even if
	// the counter in the file lagged behind.
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return nil
}

// Close releases the store lock.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockFile == nil {
		return nil
	}
	_ = syscall.Flock(int(s.lockFile.Fd()), syscall.LOCK_UN)
	err := s.lockFile.Close()
	s.lockFile = nil
	return err
}

// Create assigns the next ID and persists a new open task. On a persist
// failure the task is not considered created and the ID is not consumed.
func (s *Store) Create(ownerID, title string, dueAt *time.Time, category string, priority domain.Priority) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}

	task := &domain.Task{
		ID:       s.nextID,
		OwnerID:  ownerID,
		Title:    title,
		Category: category,
		Priority: priority,
		Status:   domain.StatusOpen,
		Created:  s.clock.Now(),
	}
	if dueAt != nil {
		d := *dueAt
		task.DueAt = &d
	}

	s.tasks = append(s.tasks, task)
	s.nextID++
	if err := s.persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		s.nextID--
		return nil, err
	}
	return clone(task), nil
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}
	if t := s.find(id); t != nil {
		return clone(t), nil
	}
	return nil, nil
}

// List retrieves tasks matching the filter, ordered by due instant.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}

	var tasks []*domain.Task
	for _, t := range s.tasks {
		if t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.DueFrom != nil || filter.DueUntil != nil {
			// Date-bounded listings never match undated tasks.
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
		tasks = append(tasks, clone(t))
	}

	domain.SortTasks(tasks)
	return tasks, nil
}

// MarkDone transitions a task to done. Marking an already-done task
// succeeds without re-persisting.
func (s *Store) MarkDone(id int) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}

	t := s.find(id)
	if t == nil {
		return nil, domain.ErrTaskNotFound
	}
	if t.Status == domain.StatusDone {
		return clone(t), nil
	}

	t.Status = domain.StatusDone
	if err := s.persist(); err != nil {
		t.Status = domain.StatusOpen
		return nil, err
	}
	return clone(t), nil
}

// SetDueAt moves the due instant and resets both reminder flags.
func (s *Store) SetDueAt(id int, due time.Time) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}

	t := s.find(id)
	if t == nil {
		return nil, domain.ErrTaskNotFound
	}

	prev := *t
	t.Reschedule(due)
	if err := s.persist(); err != nil {
		*t = prev
		return nil, err
	}
	return clone(t), nil
}

// MarkReminded sets one reminder flag under the store mutex. The task
// is re-read here rather than written back from the caller's copy, so a
// mutation that landed after the caller's snapshot (a snooze, a
// completion, a delete) is never overwritten by stale state.
func (s *Store) MarkReminded(id int, kind domain.ReminderKind, due time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return false, domain.ErrStoreNotLoaded
	}

	t := s.find(id)
	if t == nil || t.Status != domain.StatusOpen || t.DueAt == nil || !t.DueAt.Equal(due) {
		return false, nil
	}

	prev := *t
	switch kind {
	case domain.ReminderEarly:
		t.EarlyReminded = true
	default:
		t.DueReminded = true
	}
	if err := s.persist(); err != nil {
		*t = prev
		return false, err
	}
	return true, nil
}

// Delete removes a task by ID. Deleted IDs are never reused; the counter
// only moves forward.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.ErrStoreNotLoaded
	}

	for i, t := range s.tasks {
		if t.ID == id {
			removed := s.tasks[i]
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if err := s.persist(); err != nil {
				s.tasks = append(s.tasks[:i], append([]*domain.Task{removed}, s.tasks[i:]...)...)
				return err
			}
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

// Snapshot returns a read-only listing of every task.
func (s *Store) Snapshot() ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}

	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, clone(t))
	}
	return tasks, nil
}

func (s *Store) find(id int) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) persist() error {
	data := storeData{
		Tasks: s.tasks,
		Meta:  meta{NextID: s.nextID},
	}
	content, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		s.markDiverged(err)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		s.markDiverged(err)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// markDiverged records that a persist attempt failed, so the in-memory
// collection may no longer match the file on disk.
func (s *Store) markDiverged(err error) {
	if !s.diverged {
		s.diverged = true
		s.logWarn(0, "store", fmt.Sprintf("persist failed, in-memory state may diverge from disk: %v", err))
	}
}

func (s *Store) acquireLock() error {
	if s.lockFile != nil {
		return nil
	}
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = lock.Close()
		return fmt.Errorf("acquire store lock (another process running?): %w", err)
	}
	s.lockFile = lock
	return nil
}

func (s *Store) logInfo(taskID int, category, msg string) {
	if s.logger != nil {
		s.logger.Info(taskID, category, msg)
	}
}

func (s *Store) logWarn(taskID int, category, msg string) {
	if s.logger != nil {
		s.logger.Warn(taskID, category, msg)
	}
}

func clone(t *domain.Task) *domain.Task {
	c := *t
	if t.DueAt != nil {
		d := *t.DueAt
		c.DueAt = &d
	}
	return &c
}

// Ensure Store implements TaskRepository.
var _ domain.TaskRepository = (*Store)(nil)
