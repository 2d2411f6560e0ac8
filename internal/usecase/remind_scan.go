package usecase

import (
	"context"
	"fmt"

	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/pkg/messages"
)

// RemindScanOutput reports what one scan pass fired.
type RemindScanOutput struct {
	DueSent   int
	EarlySent int
}

// RemindScan is the use case for one reminder scan pass. The scheduler
// runs it on a fixed cadence; callers must not run two passes over the
// same store concurrently.
//
// For every open task with a due instant it fires the due-time reminder
// in the [0,60)s window and, for high priority tasks, the early reminder
// in the [1740,1800)s window. Each reminder fires at most once per task:
// the guard flag is persisted before the send is attempted, so a send
// failure (logged, not retried) still counts as fired, and a crash after
// persist cannot duplicate the send on restart.
type RemindScan struct {
	tasks    domain.TaskRepository
	notifier domain.Notifier
	clock    domain.Clock
	catalog  *messages.Catalog
	logger   domain.Logger
}

// NewRemindScan creates a new RemindScan use case.
func NewRemindScan(tasks domain.TaskRepository, notifier domain.Notifier, clock domain.Clock, catalog *messages.Catalog, logger domain.Logger) *RemindScan {
	return &RemindScan{
		tasks:    tasks,
		notifier: notifier,
		clock:    clock,
		catalog:  catalog,
		logger:   logger,
	}
}

// Execute runs one scan pass over the whole store.
func (uc *RemindScan) Execute(ctx context.Context) (*RemindScanOutput, error) {
	snapshot, err := uc.tasks.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	now := uc.clock.Now()
	out := &RemindScanOutput{}
	for _, task := range snapshot {
		if !task.IsOpen() || !task.HasDue() {
			continue
		}

		// Both conditions are independent axes; the same tick may fire
		// the due reminder for one task and the early one for another.
		if !task.DueReminded && domain.WithinWindow(*task.DueAt, now, domain.DueWindowLo, domain.DueWindowHi) {
			if uc.fire(ctx, task, uc.catalog.DueReminder(task.Title), domain.ReminderDue) {
				out.DueSent++
			}
		}
		if task.Priority == domain.PriorityHigh && !task.EarlyReminded &&
			domain.WithinWindow(*task.DueAt, now, domain.EarlyWindowLo, domain.EarlyWindowHi) {
			if uc.fire(ctx, task, uc.catalog.EarlyReminder(task.Title), domain.ReminderEarly) {
				out.EarlySent++
			}
		}
	}
	return out, nil
}

// fire persists the guard flag, then attempts the send. The flag flip
// is a conditional store-side transition keyed on the snapshot's due
// instant: a task that was snoozed, completed, or deleted after the
// snapshot stays untouched and the reminder is not sent. If the persist
// fails the send is skipped entirely and retried on a later tick while
// the window still holds.
func (uc *RemindScan) fire(ctx context.Context, task *domain.Task, text string, kind domain.ReminderKind) bool {
	set, err := uc.tasks.MarkReminded(task.ID, kind, *task.DueAt)
	if err != nil {
		uc.logger.Error(task.ID, "remind", fmt.Sprintf("persist reminder flag: %v", err))
		return false
	}
	if !set {
		uc.logger.Debug(task.ID, "remind", "task changed since snapshot, reminder skipped")
		return false
	}

	if err := uc.notifier.Send(ctx, task.OwnerID, text); err != nil {
		// Fire-and-forget: the reminder counts as fired once attempted.
		uc.logger.Warn(task.ID, "remind", fmt.Sprintf("send failed: %v", err))
		return true
	}
	uc.logger.Info(task.ID, "remind", "reminder sent")
	return true
}
