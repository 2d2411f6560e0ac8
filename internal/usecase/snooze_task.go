package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

// SnoozeTaskInput contains the parameters for snoozing a task.
type SnoozeTaskInput struct {
	OwnerID    string // When set, the task must belong to this owner; a foreign ID reads as not found.
	TaskID     int
	DeltaHours int
}

// SnoozeTaskOutput contains the rescheduled task.
type SnoozeTaskOutput struct {
	Task *domain.Task
}

// SnoozeTask is the use case for shifting a task's due instant forward.
// The due change re-arms both reminder flags.
type SnoozeTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewSnoozeTask creates a new SnoozeTask use case.
func NewSnoozeTask(tasks domain.TaskRepository, logger domain.Logger) *SnoozeTask {
	return &SnoozeTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute moves the due instant by DeltaHours. A task without a due
// instant cannot be snoozed and is left untouched (ErrNoDueDate).
func (uc *SnoozeTask) Execute(_ context.Context, in SnoozeTaskInput) (*SnoozeTaskOutput, error) {
	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	if in.OwnerID != "" && task.OwnerID != in.OwnerID {
		return nil, domain.ErrTaskNotFound
	}
	if task.DueAt == nil {
		return nil, domain.ErrNoDueDate
	}

	newDue := task.DueAt.Add(time.Duration(in.DeltaHours) * time.Hour)
	updated, err := uc.tasks.SetDueAt(in.TaskID, newDue)
	if err != nil {
		return nil, fmt.Errorf("set due: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(updated.ID, "task", fmt.Sprintf("snoozed by %dh to %s", in.DeltaHours, newDue.Format(time.RFC3339)))
	}
	return &SnoozeTaskOutput{Task: updated}, nil
}
