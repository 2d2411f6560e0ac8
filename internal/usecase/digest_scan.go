package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/pkg/messages"
)

// DigestScanOutput reports how many owners received a digest.
type DigestScanOutput struct {
	Sent int
}

// DigestScan is the use case for the daily digest pass. For every owner
// with at least one open task due in the current local day it sends a
// single message listing those tasks in due order. It never touches
// reminder flags; digest and per-task reminders are independent channels.
type DigestScan struct {
	tasks    domain.TaskRepository
	notifier domain.Notifier
	clock    domain.Clock
	loc      *time.Location
	catalog  *messages.Catalog
	logger   domain.Logger
}

// NewDigestScan creates a new DigestScan use case.
func NewDigestScan(tasks domain.TaskRepository, notifier domain.Notifier, clock domain.Clock, loc *time.Location, catalog *messages.Catalog, logger domain.Logger) *DigestScan {
	return &DigestScan{
		tasks:    tasks,
		notifier: notifier,
		clock:    clock,
		loc:      loc,
		catalog:  catalog,
		logger:   logger,
	}
}

// Execute runs one digest pass over the whole store.
func (uc *DigestScan) Execute(ctx context.Context) (*DigestScanOutput, error) {
	snapshot, err := uc.tasks.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	now := uc.clock.Now()

	// Owners are enumerated across every task regardless of status; only
	// open tasks due today make it into the digest body.
	byOwner := make(map[string][]*domain.Task)
	for _, task := range snapshot {
		if _, ok := byOwner[task.OwnerID]; !ok {
			byOwner[task.OwnerID] = nil
		}
		if !task.IsOpen() || !task.HasDue() {
			continue
		}
		if !domain.SameLocalDay(*task.DueAt, now, uc.loc) {
			continue
		}
		byOwner[task.OwnerID] = append(byOwner[task.OwnerID], task)
	}

	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	out := &DigestScanOutput{}
	for _, owner := range owners {
		due := byOwner[owner]
		if len(due) == 0 {
			continue
		}
		domain.SortTasks(due)

		if err := uc.notifier.Send(ctx, owner, uc.format(due)); err != nil {
			uc.logger.Warn(0, "digest", fmt.Sprintf("send to %s failed: %v", owner, err))
			continue
		}
		out.Sent++
	}
	uc.logger.Info(0, "digest", fmt.Sprintf("digest pass done, %d owner(s) notified", out.Sent))
	return out, nil
}

func (uc *DigestScan) format(tasks []*domain.Task) string {
	var b strings.Builder
	b.WriteString(uc.catalog.DigestHeader(len(tasks)))
	for _, t := range tasks {
		b.WriteString("\n- ")
		b.WriteString(t.DueAt.In(uc.loc).Format("15:04"))
		b.WriteString(" ")
		b.WriteString(t.Title)
		if t.Category != "" {
			b.WriteString(" [" + t.Category + "]")
		}
		if t.Priority == domain.PriorityHigh {
			b.WriteString(" (!)")
		}
	}
	return b.String()
}
