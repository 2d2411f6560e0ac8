// Package sqlstore provides a MySQL-backed implementation of TaskRepository.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/mkondo/taskping/internal/domain"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS tasks (
  id             INT          NOT NULL,
  owner_id       VARCHAR(128) NOT NULL,
  title          TEXT         NOT NULL,
  category       VARCHAR(128) NOT NULL DEFAULT '',
  priority       VARCHAR(16)  NOT NULL,
  status         VARCHAR(16)  NOT NULL,
  due_at         DATETIME(6)  NULL,
  created_at     DATETIME(6)  NOT NULL,
  due_reminded   TINYINT(1)   NOT NULL DEFAULT 0,
  early_reminded TINYINT(1)   NOT NULL DEFAULT 0,
  PRIMARY KEY (id),
  KEY idx_tasks_owner (owner_id)
)`, `
CREATE TABLE IF NOT EXISTS task_meta (
  id      TINYINT NOT NULL,
  next_id INT     NOT NULL,
  PRIMARY KEY (id)
)`, `
INSERT IGNORE INTO task_meta (id, next_id) VALUES (1, 1)`,
}

// Store implements domain.TaskRepository on MySQL via sqlx. IDs come from
// an explicit counter row so they stay monotonic and are never reused,
// matching the JSON backend.
type Store struct {
	db    *sqlx.DB
	clock domain.Clock
}

type taskRow struct {
	ID            int          `db:"id"`
	OwnerID       string       `db:"owner_id"`
	Title         string       `db:"title"`
	Category      string       `db:"category"`
	Priority      string       `db:"priority"`
	Status        string       `db:"status"`
	DueAt         sql.NullTime `db:"due_at"`
	CreatedAt     time.Time    `db:"created_at"`
	DueReminded   bool         `db:"due_reminded"`
	EarlyReminded bool         `db:"early_reminded"`
}

// Connect opens the MySQL connection and ensures the schema exists.
func Connect(dsn string, clock domain.Clock) (*Store, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	s := &Store{db: db, clock: clock}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
	}
	return nil
}

// Create assigns the next ID and inserts a new open task. Counter bump
// and insert run in one transaction, so a failed insert does not consume
// an ID.
func (s *Store) Create(ownerID, title string, dueAt *time.Time, category string, priority domain.Priority) (*domain.Task, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int
	if err := tx.Get(&id, `SELECT next_id FROM task_meta WHERE id = 1 FOR UPDATE`); err != nil {
		return nil, fmt.Errorf("read id counter: %w", err)
	}
	if _, err := tx.Exec(`UPDATE task_meta SET next_id = ? WHERE id = 1`, id+1); err != nil {
		return nil, fmt.Errorf("bump id counter: %w", err)
	}

	task := &domain.Task{
		ID:       id,
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

	_, err = tx.Exec(
		`INSERT INTO tasks (id, owner_id, title, category, priority, status, due_at, created_at, due_reminded, early_reminded)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0)`,
		task.ID, task.OwnerID, task.Title, task.Category, string(task.Priority), string(task.Status),
		nullTime(task.DueAt), task.Created,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return task, nil
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int) (*domain.Task, error) {
	var row taskRow
	err := s.db.Get(&row, `SELECT * FROM tasks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}
	return rowToTask(row), nil
}

// List retrieves tasks matching the filter, ordered by due instant.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	query := `SELECT * FROM tasks WHERE owner_id = ?`
	args := []any{filter.OwnerID}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.DueFrom != nil {
		query += ` AND due_at IS NOT NULL AND due_at >= ?`
		args = append(args, *filter.DueFrom)
	}
	if filter.DueUntil != nil {
		query += ` AND due_at IS NOT NULL AND due_at <= ?`
		args = append(args, *filter.DueUntil)
	}

	var rows []taskRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, rowToTask(row))
	}
	domain.SortTasks(tasks)
	return tasks, nil
}

// MarkDone transitions a task to done. Marking an already-done task
// succeeds without issuing an update.
func (s *Store) MarkDone(id int) (*domain.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	if task.Status == domain.StatusDone {
		return task, nil
	}

	if _, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(domain.StatusDone), id); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	task.Status = domain.StatusDone
	return task, nil
}

// SetDueAt moves the due instant and resets both reminder flags.
func (s *Store) SetDueAt(id int, due time.Time) (*domain.Task, error) {
	res, err := s.db.Exec(
		`UPDATE tasks SET due_at = ?, due_reminded = 0, early_reminded = 0 WHERE id = ?`,
		due, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update due: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update, so
		// confirm existence before reporting not-found.
		task, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, domain.ErrTaskNotFound
		}
		return task, nil
	}
	return s.Get(id)
}

// MarkReminded sets one reminder flag. The WHERE clause re-checks
// status and due instant, so a concurrent snooze, completion, or delete
// makes the update a no-op instead of clobbering the newer row.
func (s *Store) MarkReminded(id int, kind domain.ReminderKind, due time.Time) (bool, error) {
	column := "due_reminded"
	if kind == domain.ReminderEarly {
		column = "early_reminded"
	}
	res, err := s.db.Exec(
		`UPDATE tasks SET `+column+` = 1 WHERE id = ? AND status = ? AND due_at = ?`,
		id, string(domain.StatusOpen), due,
	)
	if err != nil {
		return false, fmt.Errorf("mark reminded: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes a task by ID.
func (s *Store) Delete(id int) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Snapshot returns every task across all owners.
func (s *Store) Snapshot() ([]*domain.Task, error) {
	var rows []taskRow
	if err := s.db.Select(&rows, `SELECT * FROM tasks ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	tasks := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, rowToTask(row))
	}
	return tasks, nil
}

func rowToTask(row taskRow) *domain.Task {
	task := &domain.Task{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Title:         row.Title,
		Category:      row.Category,
		Priority:      domain.Priority(row.Priority),
		Status:        domain.Status(row.Status),
		Created:       row.CreatedAt,
		DueReminded:   row.DueReminded,
		EarlyReminded: row.EarlyReminded,
	}
	if row.DueAt.Valid {
		d := row.DueAt.Time
		task.DueAt = &d
	}
	return task
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Ensure Store implements TaskRepository.
var _ domain.TaskRepository = (*Store)(nil)
