package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkondo/taskping/internal/app"
	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/internal/infra/logging"
	"github.com/mkondo/taskping/internal/testutil"
)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(repo *testutil.MockTaskRepository) *app.Container {
	cfg := domain.NewDefaultConfig()
	cfg.Timezone = "UTC"
	clock := &testutil.MockClock{NowTime: time.Date(2025, 11, 6, 10, 0, 0, 0, time.UTC)}
	return app.NewWithDeps(cfg, repo, clock, logging.NewNop())
}

func execute(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(c, "test")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestAddCommand_FreeText(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	c := newTestContainer(repo)

	out, err := execute(t, c, "add", "call", "mom", "tomorrow", "evening")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task #1: call mom")

	task := repo.Tasks[1]
	require.NotNil(t, task)
	assert.Equal(t, "local", task.OwnerID)
	require.NotNil(t, task.DueAt)
	assert.Equal(t, time.Date(2025, 11, 7, 19, 0, 0, 0, time.UTC), task.DueAt.UTC())
}

func TestAddCommand_ExplicitFlags(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	c := newTestContainer(repo)

	out, err := execute(t, c, "add", "--title", "Quarterly report", "--due", "2026-09-15T17:00:00Z", "--priority", "high", "--category", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task #1: Quarterly report")

	task := repo.Tasks[1]
	require.NotNil(t, task)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, "work", task.Category)
}

func TestAddCommand_BadDueFormat(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskRepository())

	_, err := execute(t, c, "add", "--title", "x", "--due", "next tuesday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFC3339")
}

func TestAddCommand_OwnerFlag(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	c := newTestContainer(repo)

	_, err := execute(t, c, "--owner", "alice", "add", "--title", "hers")
	require.NoError(t, err)
	assert.Equal(t, "alice", repo.Tasks[1].OwnerID)
}

func TestListCommand(t *testing.T) {
	due := time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC)
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "local", Title: "call mom", Status: domain.StatusOpen, DueAt: &due}
	repo.Tasks[2] = &domain.Task{ID: 2, OwnerID: "local", Title: "archived", Status: domain.StatusDone}
	c := newTestContainer(repo)

	out, err := execute(t, c, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "call mom")
	assert.Contains(t, out, "2025-11-06 19:00")
	assert.NotContains(t, out, "archived")

	out, err = execute(t, c, "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "archived")
}

func TestTodayCommand(t *testing.T) {
	today := time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "local", Title: "tonight", Status: domain.StatusOpen, DueAt: &today}
	repo.Tasks[2] = &domain.Task{ID: 2, OwnerID: "local", Title: "later", Status: domain.StatusOpen, DueAt: &tomorrow}
	c := newTestContainer(repo)

	out, err := execute(t, c, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "tonight")
	assert.NotContains(t, out, "later")
}

func TestNextCommand_Empty(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskRepository())

	out, err := execute(t, c, "next")
	require.NoError(t, err)
	assert.Contains(t, out, "No open tasks.")
}

func TestDoneCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "local", Title: "call mom", Status: domain.StatusOpen}
	c := newTestContainer(repo)

	out, err := execute(t, c, "done", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Done: #1 call mom")
	assert.Equal(t, domain.StatusDone, repo.Tasks[1].Status)
}

func TestDoneCommand_InvalidID(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskRepository())

	_, err := execute(t, c, "done", "zero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task id")
}

func TestSnoozeCommand(t *testing.T) {
	due := time.Date(2025, 11, 6, 19, 0, 0, 0, time.UTC)
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "local", Title: "call mom", Status: domain.StatusOpen, DueAt: &due, DueReminded: true}
	c := newTestContainer(repo)

	_, err := execute(t, c, "snooze", "1", "2")
	require.NoError(t, err)
	assert.True(t, repo.Tasks[1].DueAt.Equal(due.Add(2*time.Hour)))
	assert.False(t, repo.Tasks[1].DueReminded)
}

func TestTokenCommand(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskRepository())

	_, err := execute(t, c, "token", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")

	c.Config.Channel.JWTSecret = "test-secret"
	out, err := execute(t, c, "token", "alice")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)
}

func TestDeleteCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, OwnerID: "local", Title: "call mom", Status: domain.StatusOpen}
	c := newTestContainer(repo)

	out, err := execute(t, c, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task #1")
	assert.Empty(t, repo.Tasks)
}
