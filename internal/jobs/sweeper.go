// Package jobs runs periodic maintenance on a cron schedule.
package jobs

//go:generate mockgen -source=sweeper.go -destination=mock_sweeper_test.go -package=jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sbilibin2017/bankcore/internal/logger"
)

// DefaultSweepSchedule runs the idle-session sweep once a minute.
const DefaultSweepSchedule = "@every 1m"

// IdleSessionSweeper clears sessions idle past the timeout.
type IdleSessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Scheduler owns the cron runner and the registered jobs.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler() *Scheduler {
	l := cronLogger{}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)), cron.WithLogger(l)),
		timeout: 30 * time.Second,
	}
}

// AddSessionSweep schedules sweeper on a cron schedule.
func (s *Scheduler) AddSessionSweep(schedule string, sweeper IdleSessionSweeper) error {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.SweepSessions(sweeper) }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}
	logger.Log.Infow("scheduled session sweep", "schedule", schedule)
	return nil
}

// SweepSessions runs one sweep.
func (s *Scheduler) SweepSessions(sweeper IdleSessionSweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := sweeper.SweepExpired(ctx)
	if err != nil {
		logger.Log.Errorw("session sweep failed", "error", err)
		return
	}
	if n > 0 {
		logger.Log.Infow("expired idle sessions", "count", n)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and returns a context done when running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger routes cron's own logging to the global zap logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Errorw(msg, append(keysAndValues, "error", err)...)
}
