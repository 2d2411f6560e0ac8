package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortTasks_DatedBeforeUndated(t *testing.T) {
	at := func(h int) *time.Time {
		d := time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC)
		return &d
	}

	tasks := []*Task{
		{ID: 1},
		{ID: 2, DueAt: at(18)},
		{ID: 3},
		{ID: 4, DueAt: at(9)},
	}

	SortTasks(tasks)

	require.Len(t, tasks, 4)
	assert.Equal(t, 4, tasks[0].ID)
	assert.Equal(t, 2, tasks[1].ID)
	// Undated tasks come last, stable by ID.
	assert.Equal(t, 1, tasks[2].ID)
	assert.Equal(t, 3, tasks[3].ID)
}

func TestSortTasks_EqualDueOrderedByID(t *testing.T) {
	d := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []*Task{
		{ID: 7, DueAt: &d},
		{ID: 2, DueAt: &d},
	}

	SortTasks(tasks)

	assert.Equal(t, 2, tasks[0].ID)
	assert.Equal(t, 7, tasks[1].ID)
}

func TestReschedule_ResetsBothFlags(t *testing.T) {
	old := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	task := &Task{
		ID:            1,
		DueAt:         &old,
		DueReminded:   true,
		EarlyReminded: true,
	}

	due := old.Add(2 * time.Hour)
	task.Reschedule(due)

	require.NotNil(t, task.DueAt)
	assert.True(t, task.DueAt.Equal(due))
	assert.False(t, task.DueReminded)
	assert.False(t, task.EarlyReminded)
}
