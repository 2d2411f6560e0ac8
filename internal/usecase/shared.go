// Package usecase contains application use cases.
package usecase

import (
	"fmt"

	"github.com/mkondo/taskping/internal/domain"
)

// getTask fetches a task and normalizes "absent" to ErrTaskNotFound.
func getTask(tasks domain.TaskRepository, id int) (*domain.Task, error) {
	task, err := tasks.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// checkOwner enforces owner scoping on mutation operations. An empty
// ownerID is the trusted local surface and skips the check; a scoped
// caller never learns whether a foreign ID exists, it just reads as not
// found.
func checkOwner(tasks domain.TaskRepository, id int, ownerID string) error {
	if ownerID == "" {
		return nil
	}
	task, err := getTask(tasks, id)
	if err != nil {
		return err
	}
	if task.OwnerID != ownerID {
		return domain.ErrTaskNotFound
	}
	return nil
}
