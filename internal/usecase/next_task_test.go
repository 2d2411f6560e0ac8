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

func TestNextTask_Execute_SoonestDueWins(t *testing.T) {
	soon := time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)
	later := time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC)

	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "alice", Title: "later", Status: domain.StatusOpen, DueAt: &later}
	repo.Tasks[2] = &domain.Task{ID: 2, OwnerID: "alice", Title: "soon", Status: domain.StatusOpen, DueAt: &soon}
	repo.Tasks[3] = &domain.Task{ID: 3, OwnerID: "alice", Title: "undated", Status: domain.StatusOpen}

	uc := NewNextTask(repo)

	out, err := uc.Execute(context.Background(), NextTaskInput{OwnerID: "alice"})
	require.NoError(t, err)
	require.NotNil(t, out.Task)
	assert.Equal(t, "soon", out.Task.Title)
}

func TestNextTask_Execute_UndatedWhenNothingDated(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[5] = &domain.Task{ID: 5, OwnerID: "alice", Title: "second", Status: domain.StatusOpen}
	repo.Tasks[2] = &domain.Task{ID: 2, OwnerID: "alice", Title: "first", Status: domain.StatusOpen}

	uc := NewNextTask(repo)

	out, err := uc.Execute(context.Background(), NextTaskInput{OwnerID: "alice"})
	require.NoError(t, err)
	require.NotNil(t, out.Task)
	assert.Equal(t, "first", out.Task.Title)
}

func TestNextTask_Execute_NoOpenTasks(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "alice", Title: "finished", Status: domain.StatusDone}

	uc := NewNextTask(repo)

	out, err := uc.Execute(context.Background(), NextTaskInput{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Nil(t, out.Task)
}
