// internal/schedule/scheduler.go
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/logging"
)

// TaskFunc is the signature of a scheduled task.
type TaskFunc func(ctx context.Context) error

// Scheduler drives recurring in-process tasks via robfig/cron, used by
// `actorpop schedule` to run recalc_actor_popularity on an interval without
// an external cron daemon.
type Scheduler struct {
	cron    *cron.Cron
	logger  logging.EngineLogger
	tasks   map[string]cron.EntryID
	mu      sync.RWMutex
	running bool
}

// NewScheduler constructs a Scheduler.
func NewScheduler(logger logging.EngineLogger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		tasks:  make(map[string]cron.EntryID),
	}
}

// Start begins dispatching scheduled tasks.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler started", zap.Int("tasks", len(s.tasks)))
}

// Stop waits (up to ctx's deadline) for in-flight task runs to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("scheduler stopped gracefully")
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out waiting for running tasks")
	}
	s.running = false
}

// AddIntervalTask schedules task to run every interval, starting after the
// first interval elapses. Re-registering a name replaces its schedule.
func (s *Scheduler) AddIntervalTask(name string, interval time.Duration, timeout time.Duration, task TaskFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.tasks[name]; ok {
		s.cron.Remove(entryID)
		delete(s.tasks, name)
	}

	entryID, err := s.cron.AddFunc("@every "+interval.String(), func() {
		s.runTask(name, timeout, task)
	})
	if err != nil {
		return err
	}

	s.tasks[name] = entryID
	s.logger.Info("registered interval task", zap.String("name", name), zap.Duration("interval", interval))
	return nil
}

// runTask runs task under a bounded context and logs the outcome; a
// scheduled run never panics the process on failure, it logs and waits for
// the next tick.
func (s *Scheduler) runTask(name string, timeout time.Duration, task TaskFunc) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := task(ctx); err != nil {
		s.logger.Error("scheduled task failed", err,
			zap.String("name", name),
			zap.Duration("elapsed", time.Since(start)),
		)
		return
	}

	s.logger.Info("scheduled task completed",
		zap.String("name", name),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// IsRunning reports whether the scheduler has been started.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
