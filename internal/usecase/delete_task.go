package usecase

import (
	"context"
	"fmt"

	"github.com/mkondo/taskping/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	OwnerID string // When set, the task must belong to this owner; a foreign ID reads as not found.
	TaskID  int
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct{}

// DeleteTask is the use case for removing a task entirely. Deletion is
// distinct from completion: the record disappears and its ID is never
// reused.
type DeleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute deletes the task with the given ID.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if err := checkOwner(uc.tasks, in.TaskID, in.OwnerID); err != nil {
		return nil, err
	}
	if err := uc.tasks.Delete(in.TaskID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(in.TaskID, "task", "deleted")
	}
	return &DeleteTaskOutput{}, nil
}
