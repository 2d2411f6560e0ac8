package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mkondo/taskping/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	OwnerID   string        // Required; listings are owner-scoped
	Status    domain.Status // Empty = any status
	TodayOnly bool          // Restrict to tasks due within the current local day
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
	clock domain.Clock
	loc   *time.Location
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, clock domain.Clock, loc *time.Location) *ListTasks {
	return &ListTasks{
		tasks: tasks,
		clock: clock,
		loc:   loc,
	}
}

// Execute lists tasks matching the given input criteria. The today
// restriction uses the local-day bounds at call time; undated tasks never
// match it.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrEmptyOwner
	}
	if in.Status != "" && !in.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	filter := domain.TaskFilter{
		OwnerID: in.OwnerID,
		Status:  in.Status,
	}
	if in.TodayOnly {
		start, end := domain.LocalDayBounds(uc.clock.Now(), uc.loc)
		filter.DueFrom = &start
		filter.DueUntil = &end
	}

	tasks, err := uc.tasks.List(filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}
