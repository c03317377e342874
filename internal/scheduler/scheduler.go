// Package scheduler provides cron-based jobs for the serve loop.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/tabguard/internal/logging"
)

// DefaultTick evaluates the watcher at the start of every minute.
const DefaultTick = "0 * * * * *"

// Scheduler manages scheduled tasks using cron.
type Scheduler struct {
	cron      *cron.Cron
	mu        sync.Mutex
	lastCheck time.Time
	watcher   *Watcher
	started   bool
}

// NewScheduler creates a new scheduler. Specs carry a seconds field.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
	}
}

// SetWatcher sets the protection-state watcher.
func (s *Scheduler) SetWatcher(w *Watcher) {
	s.watcher = w
}

// Start evaluates the watcher once, then schedules it on tick and starts
// the cron runner. An empty tick uses DefaultTick.
func (s *Scheduler) Start(ctx context.Context, tick string) error {
	if tick == "" {
		tick = DefaultTick
	}

	s.mu.Lock()
	s.lastCheck = time.Now()
	s.mu.Unlock()

	if s.watcher != nil {
		s.runWatcher(ctx)
		if _, err := s.cron.AddFunc(tick, func() { s.runWatcher(ctx) }); err != nil {
			return fmt.Errorf("failed to add watcher job %q: %w", tick, err)
		}
	}

	s.cron.Start()
	s.started = true
	logging.DebugLog("scheduler started", "tick", tick)
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	if s.cron != nil && s.started {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.started = false
	}
	logging.DebugLog("scheduler stopped")
}

// runWatcher evaluates the watcher and logs failures.
func (s *Scheduler) runWatcher(ctx context.Context) {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	logging.DebugLog("watcher tick", "elapsed", elapsed.Round(time.Second).String())
	if _, _, err := s.watcher.Check(ctx); err != nil {
		logging.Warn("protection check failed", logging.KeyError, err)
	}
}

// ValidateSpec reports whether spec parses as a seconds-field cron spec.
func ValidateSpec(spec string) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	_, err := parser.Parse(spec)
	return err
}
