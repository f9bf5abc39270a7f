package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler executes pipeline runs on a fixed interval. The first run fires
// immediately on Start; Stop waits for an in-flight run to finish, whether it
// was the immediate one or a scheduled one.
type Scheduler struct {
	runner          *Runner
	cron            *cron.Cron
	intervalMinutes int
	wg              sync.WaitGroup
}

func NewScheduler(runner *Runner, intervalMinutes int) *Scheduler {
	return &Scheduler{
		runner:          runner,
		cron:            cron.New(),
		intervalMinutes: intervalMinutes,
	}
}

func (s *Scheduler) Start() error {
	if s.intervalMinutes <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %d", s.intervalMinutes)
	}

	schedule := fmt.Sprintf("@every %dm", s.intervalMinutes)
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return fmt.Errorf("failed to schedule pipeline runs: %w", err)
	}

	slog.Info("Scheduler started", "intervalMinutes", s.intervalMinutes)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runOnce()
	}()

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) runOnce() {
	if _, err := s.runner.Run(context.Background()); err != nil {
		slog.Error("Pipeline run failed", "error", err)
	}
}
