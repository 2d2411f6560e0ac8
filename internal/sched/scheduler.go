// Package sched drives the periodic reminder and digest passes.
package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/internal/usecase"
)

// Scheduler runs the reminder scan on a fixed cadence and the digest scan
// once per local day at the configured wall-clock time. All passes run on
// a single goroutine, so a tick can never overlap a still-running one; a
// slow pass just publishes late.
type Scheduler struct {
	remind        *usecase.RemindScan
	digest        *usecase.DigestScan
	clock         domain.Clock
	loc           *time.Location
	logger        domain.Logger
	lastDigestDay string
	cadence       time.Duration
	digestHour    int
	digestMinute  int
}

// New creates a Scheduler.
func New(remind *usecase.RemindScan, digest *usecase.DigestScan, clock domain.Clock, loc *time.Location, cadence time.Duration, digestHour, digestMinute int, logger domain.Logger) *Scheduler {
	return &Scheduler{
		remind:       remind,
		digest:       digest,
		clock:        clock,
		loc:          loc,
		cadence:      cadence,
		digestHour:   digestHour,
		digestMinute: digestMinute,
		logger:       logger,
	}
}

// Run blocks until the context is cancelled, executing one tick per
// cadence interval.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info(0, "sched", fmt.Sprintf("scheduler running, cadence %s, digest at %02d:%02d", s.cadence, s.digestHour, s.digestMinute))

	ticker := time.NewTicker(s.cadence)
	defer ticker.Stop()

	// First pass immediately so reminders still inside their window after
	// a restart fire without waiting a full interval.
	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.Canceled {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick executes one scheduler pass: the reminder scan, then the digest
// scan if the local day's digest time has been reached and today's digest
// has not run yet. Exposed so tests can drive the scheduler with a
// simulated clock instead of waiting on the ticker.
func (s *Scheduler) Tick(ctx context.Context) {
	if _, err := s.remind.Execute(ctx); err != nil {
		s.logger.Error(0, "sched", fmt.Sprintf("reminder scan: %v", err))
	}

	if s.digestDue() {
		if _, err := s.digest.Execute(ctx); err != nil {
			s.logger.Error(0, "sched", fmt.Sprintf("digest scan: %v", err))
			return
		}
		s.lastDigestDay = s.clock.Now().In(s.loc).Format(time.DateOnly)
	}
}

// digestDue reports whether the current local time is at or past today's
// digest time and the digest has not fired today. A pass missed at the
// exact minute (downtime, slow tick) still fires on the next tick of the
// same day.
func (s *Scheduler) digestDue() bool {
	now := s.clock.Now().In(s.loc)
	day := now.Format(time.DateOnly)
	if day == s.lastDigestDay {
		return false
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), s.digestHour, s.digestMinute, 0, 0, s.loc)
	return !now.Before(target)
}
