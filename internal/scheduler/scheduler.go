package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	logging "temperature-heatmap/internal/infra/log"
)

// Job is one scheduled run. Its context is cancelled when the scheduler
// stops or the run exceeds its timeout.
type Job func(ctx context.Context) error

// Scheduler periodically re-renders the heatmap.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	timeout   time.Duration
	job       Job

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler. A non-positive timeout lets a run take up to
// one interval.
func New(interval, timeout time.Duration, job Job) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if timeout <= 0 {
		timeout = interval
	}
	return &Scheduler{
		scheduler: s,
		interval:  interval,
		timeout:   timeout,
		job:       job,
	}
}

// Start schedules the job and starts the underlying scheduler. The first run
// happens immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	if _, err := s.scheduler.Every(s.interval).Do(s.run); err != nil {
		s.cancel()
		return err
	}

	s.scheduler.StartAsync()
	logging.LogInfo("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) run() {
	if s.ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.job(ctx); err != nil {
		logging.LogError("Scheduled render failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return
	}
	logging.LogDebug("Scheduled render completed", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
}

// Stop cancels a running job and stops future runs.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
