// Package reminder emails users about their upcoming interviews on a cron schedule.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anoodleReza/application-tracker/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Source lists interviews starting in [from, to) together with their owners.
type Source interface {
	ListUpcomingInterviews(ctx context.Context, from, to time.Time) ([]models.InterviewReminder, error)
}

// Notifier delivers a single reminder.
type Notifier interface {
	SendInterviewReminder(r models.InterviewReminder) error
}

// Scheduler runs reminder sweeps on a cron schedule.
type Scheduler struct {
	source    Source
	notifier  Notifier
	lookahead time.Duration
	clock     clockwork.Clock
	log       *logrus.Logger

	cron *cron.Cron
	mu   sync.Mutex // serializes sweeps
}

// NewScheduler creates a scheduler that reminds about interviews starting
// within lookahead of each run.
func NewScheduler(source Source, notifier Notifier, lookahead time.Duration, clock clockwork.Clock, log *logrus.Logger) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		source:    source,
		notifier:  notifier,
		lookahead: lookahead,
		clock:     clock,
		log:       log,
	}
}

// Start registers the sweep under the standard five-field cron spec and starts
// the cron runner in its own goroutine.
func (s *Scheduler) Start(ctx context.Context, spec string) error {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.WithError(err).Error("Interview reminder run failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule reminders %q: %w", spec, err)
	}
	s.cron = c
	c.Start()
	s.log.WithFields(logrus.Fields{
		"schedule":  spec,
		"lookahead": s.lookahead.String(),
	}).Info("Interview reminders scheduled")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RunOnce sends a reminder for every interview in the lookahead window and
// returns how many were delivered. A failed delivery is logged and skipped.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.clock.Now()
	to := from.Add(s.lookahead)
	upcoming, err := s.source.ListUpcomingInterviews(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to collect upcoming interviews: %w", err)
	}

	sent := 0
	for _, r := range upcoming {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.notifier.SendInterviewReminder(r); err != nil {
			s.log.WithFields(logrus.Fields{
				"interview_id": r.InterviewID,
				"error":        err,
			}).Warn("Failed to send interview reminder")
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{
		"due":  len(upcoming),
		"sent": sent,
	}).Info("Interview reminder run finished")
	return sent, nil
}
