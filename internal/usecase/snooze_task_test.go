package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/internal/testutil"
)

func TestSnoozeTask_Execute_ShiftsDueAndResetsFlags(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	due := time.Date(2025, 11, 6, 19, 0, 0, 0, loc)

	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "alice", Title: "call mom", Status: domain.StatusOpen, DueAt: &due, DueReminded: true, EarlyReminded: true}

	uc := NewSnoozeTask(repo, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), SnoozeTaskInput{TaskID: 1, DeltaHours: 2})
	require.NoError(t, err)
	assert.True(t, out.Task.DueAt.Equal(time.Date(2025, 11, 6, 21, 0, 0, 0, loc)))
	assert.False(t, out.Task.DueReminded)
	assert.False(t, out.Task.EarlyReminded)
}

func TestSnoozeTask_Execute_OwnerMismatchReadsAsNotFound(t *testing.T) {
	due := time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC)
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "bob", Title: "bob's errand", Status: domain.StatusOpen, DueAt: &due}

	uc := NewSnoozeTask(repo, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), SnoozeTaskInput{OwnerID: "alice", TaskID: 1, DeltaHours: 2})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.True(t, repo.Tasks[1].DueAt.Equal(due))
}

func TestSnoozeTask_Execute_NoDueDate(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "alice", Title: "someday", Status: domain.StatusOpen}

	uc := NewSnoozeTask(repo, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), SnoozeTaskInput{TaskID: 1, DeltaHours: 2})
	assert.ErrorIs(t, err, domain.ErrNoDueDate)
	assert.Nil(t, repo.Tasks[1].DueAt)
}

func TestSnoozeTask_Execute_TaskNotFound(t *testing.T) {
	repo := testutil.NewMockTaskRepository()

	uc := NewSnoozeTask(repo, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), SnoozeTaskInput{TaskID: 99, DeltaHours: 2})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSnoozeTask_Execute_NegativeDelta(t *testing.T) {
	due := time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC)
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "alice", Title: "call mom", Status: domain.StatusOpen, DueAt: &due}

	uc := NewSnoozeTask(repo, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), SnoozeTaskInput{TaskID: 1, DeltaHours: -3})
	require.NoError(t, err)
	assert.True(t, out.Task.DueAt.Equal(due.Add(-3*time.Hour)))
}
