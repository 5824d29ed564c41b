// Package reminder periodically tells users that reviews are waiting.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultInterval is how often due counts are checked.
const DefaultInterval = time.Hour

// DueCounter reports how many items a user has due.
type DueCounter interface {
	CountDue(ctx context.Context, userID string) (int, error)
}

// Notifier delivers a due reminder.
type Notifier interface {
	NotifyDue(ctx context.Context, userID string, dueCount int) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, userID string, dueCount int) error

func (f NotifierFunc) NotifyDue(ctx context.Context, userID string, dueCount int) error {
	return f(ctx, userID, dueCount)
}

// Config configures a Scheduler.
type Config struct {
	Users    []string
	Interval time.Duration
	Logger   *zap.Logger
}

// Scheduler runs the reminder check on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	counter   DueCounter
	notifier  Notifier
	users     []string
	interval  time.Duration
	log       *zap.Logger
}

// New creates a reminder scheduler. It does nothing until Start.
func New(counter DueCounter, notifier Notifier, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		counter:   counter,
		notifier:  notifier,
		users:     cfg.Users,
		interval:  cfg.Interval,
		log:       cfg.Logger,
	}
}

// Start schedules the check and runs it in the background. The first run
// happens immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.Check(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduled job.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Check counts due items for every configured user and notifies those with
// at least one. It returns the number of users notified. Per-user failures
// are logged and do not stop the run.
func (s *Scheduler) Check(ctx context.Context) int {
	notified := 0
	for _, userID := range s.users {
		count, err := s.counter.CountDue(ctx, userID)
		if err != nil {
			s.log.Warn("count due items", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		if count == 0 {
			continue
		}
		if err := s.notifier.NotifyDue(ctx, userID, count); err != nil {
			s.log.Warn("send reminder", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		notified++
		s.log.Info("reminder sent", zap.String("user_id", userID), zap.Int("due_count", count))
	}
	return notified
}
