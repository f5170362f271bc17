package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper deactivates expired goals.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Scheduler runs the expiration sweep on a cron schedule. A run that is still
// in progress when the next one is due causes that next run to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
}

func New(sweeper Sweeper, schedule string, timeout time.Duration) (*Scheduler, error) {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{
		cron:    c,
		sweeper: sweeper,
		timeout: timeout,
	}

	_, err := c.AddFunc(schedule, s.runSweep)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	slog.Info("sweep scheduler started", "timeout", s.timeout)
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("sweep scheduler stop timed out")
	}
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	count, err := s.sweeper.Sweep(ctx)
	if err != nil {
		slog.Error("scheduled sweep failed", "error", err)
		return
	}
	slog.Debug("scheduled sweep finished", "deactivated", count)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
