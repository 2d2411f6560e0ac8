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

// stubExtractor returns a fixed set of drafts.
type stubExtractor struct {
	drafts  []domain.TaskDraft
	gotText string
	gotNow  time.Time
}

func (s *stubExtractor) Extract(text string, now time.Time) []domain.TaskDraft {
	s.gotText = text
	s.gotNow = now
	return s.drafts
}

func TestAddTask_Execute_FromText(t *testing.T) {
	due := time.Date(2025, 11, 7, 19, 0, 0, 0, time.UTC)
	extractor := &stubExtractor{drafts: []domain.TaskDraft{
		{Title: "call mom", DueAt: &due, Priority: domain.PriorityNormal},
		{Title: "buy milk", Priority: domain.PriorityNormal, Category: "shopping"},
	}}
	repo := testutil.NewMockTaskRepository()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 11, 6, 10, 0, 0, 0, time.UTC)}

	uc := NewAddTask(repo, extractor, clock, time.UTC, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), AddTaskInput{OwnerID: "alice", Text: "call mom tomorrow evening, buy milk"})
	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)
	assert.Equal(t, 1, out.Tasks[0].ID)
	assert.Equal(t, 2, out.Tasks[1].ID)
	assert.Equal(t, "call mom", out.Tasks[0].Title)
	assert.Equal(t, domain.StatusOpen, out.Tasks[0].Status)
	assert.Equal(t, "alice", out.Tasks[1].OwnerID)
	assert.Equal(t, "call mom tomorrow evening, buy milk", extractor.gotText)
	assert.Equal(t, clock.NowTime, extractor.gotNow)
}

func TestAddTask_Execute_ManualFieldsBypassExtractor(t *testing.T) {
	due := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	extractor := &stubExtractor{}
	repo := testutil.NewMockTaskRepository()

	uc := NewAddTask(repo, extractor, &testutil.MockClock{}, time.UTC, testutil.NopLogger{})

	out, err := uc.Execute(context.Background(), AddTaskInput{
		OwnerID:  "alice",
		Title:    "dentist",
		DueAt:    &due,
		Category: "health",
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "dentist", out.Tasks[0].Title)
	assert.Equal(t, domain.PriorityHigh, out.Tasks[0].Priority)
	assert.Empty(t, extractor.gotText)
}

func TestAddTask_Execute_NothingExtracted(t *testing.T) {
	uc := NewAddTask(testutil.NewMockTaskRepository(), &stubExtractor{}, &testutil.MockClock{}, time.UTC, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), AddTaskInput{OwnerID: "alice", Text: "mmmh"})
	assert.ErrorIs(t, err, domain.ErrNothingExtracted)
}

func TestAddTask_Execute_Validation(t *testing.T) {
	uc := NewAddTask(testutil.NewMockTaskRepository(), &stubExtractor{}, &testutil.MockClock{}, time.UTC, testutil.NopLogger{})

	_, err := uc.Execute(context.Background(), AddTaskInput{Text: "call mom"})
	assert.ErrorIs(t, err, domain.ErrEmptyOwner)

	_, err = uc.Execute(context.Background(), AddTaskInput{OwnerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = uc.Execute(context.Background(), AddTaskInput{OwnerID: "alice", Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}
