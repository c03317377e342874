package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/schedule"
)

// SettingsSource provides the current settings.
type SettingsSource interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// Watcher tracks whether protection is currently active and reports
// transitions. Protection is active when blocking is enabled and the
// current moment is inside working hours.
type Watcher struct {
	source   SettingsSource
	now      func() time.Time
	onChange func(protected bool)

	mu        sync.Mutex
	known     bool
	protected bool
	checkedAt time.Time
}

// NewWatcher creates a watcher. A nil now uses time.Now.
func NewWatcher(source SettingsSource, now func() time.Time) *Watcher {
	if now == nil {
		now = time.Now
	}
	return &Watcher{source: source, now: now}
}

// OnChange registers fn to run after each transition. It is not called for
// the first evaluation.
func (w *Watcher) OnChange(fn func(protected bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Protected evaluates s at now.
func Protected(s *model.Settings, now time.Time) bool {
	return s.Enabled && schedule.InWorkingHours(s.WorkingHours, now)
}

// Check evaluates the current state. changed is true when the state differs
// from the previous evaluation.
func (w *Watcher) Check(ctx context.Context) (protected, changed bool, err error) {
	s, err := w.source.Get(ctx)
	if err != nil {
		return false, false, err
	}
	now := w.now()
	protected = Protected(s, now)

	w.mu.Lock()
	changed = w.known && w.protected != protected
	first := !w.known
	w.known = true
	w.protected = protected
	w.checkedAt = now
	onChange := w.onChange
	w.mu.Unlock()

	switch {
	case first:
		logging.Info("protection state", logging.KeyStatus, stateName(protected))
	case changed:
		logging.Info("protection changed", logging.KeyStatus, stateName(protected))
		if onChange != nil {
			onChange(protected)
		}
	}
	return protected, changed, nil
}

// State returns the last evaluated state and when it was taken. ok is false
// before the first evaluation.
func (w *Watcher) State() (protected bool, at time.Time, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.protected, w.checkedAt, w.known
}

func stateName(protected bool) string {
	if protected {
		return "active"
	}
	return "paused"
}
