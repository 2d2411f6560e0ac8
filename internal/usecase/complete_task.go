package usecase

import (
	"context"
	"fmt"

	"github.com/mkondo/taskping/internal/domain"
)

// CompleteTaskInput contains the parameters for marking a task done.
type CompleteTaskInput struct {
	OwnerID string // When set, the task must belong to this owner; a foreign ID reads as not found.
	TaskID  int
}

// CompleteTaskOutput contains the completed task.
type CompleteTaskOutput struct {
	Task *domain.Task
}

// CompleteTask is the use case for the open -> done transition. Completing
// an already-done task succeeds and changes nothing; only a missing ID
// is an error.
type CompleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute marks the task done.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	if err := checkOwner(uc.tasks, in.TaskID, in.OwnerID); err != nil {
		return nil, err
	}
	task, err := uc.tasks.MarkDone(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("mark done: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", "completed")
	}
	return &CompleteTaskOutput{Task: task}, nil
}
