package usecase

import (
	"context"
	"fmt"

	"github.com/mkondo/taskping/internal/domain"
)

// NextTaskInput contains the parameters for fetching the next task.
type NextTaskInput struct {
	OwnerID string
}

// NextTaskOutput contains the soonest-due open task, or nil when the
// owner has no open tasks.
type NextTaskOutput struct {
	Task *domain.Task
}

// NextTask is the use case for showing the next upcoming task.
type NextTask struct {
	tasks domain.TaskRepository
}

// NewNextTask creates a new NextTask use case.
func NewNextTask(tasks domain.TaskRepository) *NextTask {
	return &NextTask{tasks: tasks}
}

// Execute returns the first open task in due order. Undated tasks sort
// last, so a dated task always wins when one exists.
func (uc *NextTask) Execute(_ context.Context, in NextTaskInput) (*NextTaskOutput, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrEmptyOwner
	}

	tasks, err := uc.tasks.List(domain.TaskFilter{OwnerID: in.OwnerID, Status: domain.StatusOpen})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		return &NextTaskOutput{}, nil
	}
	return &NextTaskOutput{Task: tasks[0]}, nil
}
