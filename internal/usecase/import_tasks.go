package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mkondo/taskping/internal/domain"
)

// ImportTasksInput contains the parameters for bulk task creation.
type ImportTasksInput struct {
	OwnerID string // Owner for entries that do not name one
	Path    string // YAML file path
	DryRun  bool   // Parse and report without creating
}

// ImportTasksOutput contains the created (or previewed) tasks.
type ImportTasksOutput struct {
	Drafts  []domain.TaskDraft // Parsed drafts (always populated)
	Tasks   []*domain.Task     // Created tasks (empty on dry run)
	Created int
}

// importEntry is one YAML list element.
type importEntry struct {
	Due      *time.Time `yaml:"due"`
	Owner    string     `yaml:"owner"`
	Title    string     `yaml:"title"`
	Category string     `yaml:"category"`
	Priority string     `yaml:"priority"`
}

// ImportTasks is the use case for creating tasks from a YAML file.
type ImportTasks struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(tasks domain.TaskRepository, logger domain.Logger) *ImportTasks {
	return &ImportTasks{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute parses the file and creates one task per entry. The whole file
// is validated before anything is created, so a malformed entry fails the
// import without partial writes.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var entries []importEntry
	if err := yaml.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	out := &ImportTasksOutput{}
	owners := make([]string, 0, len(entries))
	for i, e := range entries {
		if e.Title == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, domain.ErrEmptyTitle)
		}
		owner := e.Owner
		if owner == "" {
			owner = in.OwnerID
		}
		if owner == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, domain.ErrEmptyOwner)
		}
		priority := domain.Priority(e.Priority)
		if priority == "" {
			priority = domain.PriorityNormal
		}
		if !priority.IsValid() {
			return nil, fmt.Errorf("entry %d: %w: %q", i+1, domain.ErrInvalidPriority, e.Priority)
		}
		out.Drafts = append(out.Drafts, domain.TaskDraft{
			Title:    e.Title,
			DueAt:    e.Due,
			Category: e.Category,
			Priority: priority,
		})
		owners = append(owners, owner)
	}

	if in.DryRun {
		return out, nil
	}

	for i, draft := range out.Drafts {
		task, err := uc.tasks.Create(owners[i], draft.Title, draft.DueAt, draft.Category, draft.Priority)
		if err != nil {
			return nil, fmt.Errorf("create task %d of %d: %w", i+1, len(out.Drafts), err)
		}
		if uc.logger != nil {
			uc.logger.Info(task.ID, "task", fmt.Sprintf("imported: %q", task.Title))
		}
		out.Tasks = append(out.Tasks, task)
		out.Created++
	}
	return out, nil
}
