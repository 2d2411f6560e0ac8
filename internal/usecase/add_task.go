package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

// AddTaskInput contains the parameters for creating tasks.
// Either Text (run through the extractor) or Title (manual fields) must
// be set; Title wins when both are present.
// Fields are ordered to minimize memory padding.
type AddTaskInput struct {
	DueAt    *time.Time      // Manual due instant (optional)
	OwnerID  string          // Owning user (required)
	Text     string          // Free text for the extractor
	Title    string          // Manual title (bypasses the extractor)
	Category string          // Manual category (optional)
	Priority domain.Priority // Manual priority (defaults to normal)
}

// AddTaskOutput contains the created tasks. Extraction may produce more
// than one task from a single text.
type AddTaskOutput struct {
	Tasks []*domain.Task
}

// AddTask is the use case for creating tasks from a command or free text.
type AddTask struct {
	tasks     domain.TaskRepository
	extractor domain.Extractor
	clock     domain.Clock
	loc       *time.Location
	logger    domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(tasks domain.TaskRepository, extractor domain.Extractor, clock domain.Clock, loc *time.Location, logger domain.Logger) *AddTask {
	return &AddTask{
		tasks:     tasks,
		extractor: extractor,
		clock:     clock,
		loc:       loc,
		logger:    logger,
	}
}

// Execute creates one task per draft. Returns ErrNothingExtracted when
// the extractor could not produce any draft from the text.
func (uc *AddTask) Execute(_ context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrEmptyOwner
	}

	drafts, err := uc.drafts(in)
	if err != nil {
		return nil, err
	}

	out := &AddTaskOutput{}
	for _, draft := range drafts {
		task, err := uc.tasks.Create(in.OwnerID, draft.Title, draft.DueAt, draft.Category, draft.Priority)
		if err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
		if uc.logger != nil {
			uc.logger.Info(task.ID, "task", fmt.Sprintf("created: %q", task.Title))
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out, nil
}

func (uc *AddTask) drafts(in AddTaskInput) ([]domain.TaskDraft, error) {
	if in.Title != "" {
		priority := in.Priority
		if priority == "" {
			priority = domain.PriorityNormal
		}
		if !priority.IsValid() {
			return nil, domain.ErrInvalidPriority
		}
		return []domain.TaskDraft{{
			Title:    in.Title,
			DueAt:    in.DueAt,
			Category: in.Category,
			Priority: priority,
		}}, nil
	}

	if in.Text == "" {
		return nil, domain.ErrEmptyTitle
	}
	nowLocal := uc.clock.Now().In(uc.loc)
	drafts := uc.extractor.Extract(in.Text, nowLocal)
	if len(drafts) == 0 {
		return nil, domain.ErrNothingExtracted
	}
	return drafts, nil
}
