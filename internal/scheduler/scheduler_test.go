package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tabguard/internal/model"
)

type fakeSource struct {
	mu  sync.Mutex
	s   *model.Settings
	err error
}

func (f *fakeSource) Get(ctx context.Context) (*model.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.s.Clone(), nil
}

func (f *fakeSource) set(fn func(s *model.Settings)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.s)
}

// Wednesday, 2024-01-03.
func wed(hour, minute int) time.Time {
	return time.Date(2024, time.January, 3, hour, minute, 0, 0, time.UTC)
}

func officeSettings() *model.Settings {
	s := model.DefaultSettings()
	s.WorkingHours.Enabled = true
	return s
}

// =============================================================================
// Scheduler Tests
// =============================================================================

func TestNewScheduler(t *testing.T) {
	scheduler := NewScheduler()
	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
}

func TestSchedulerStartStop(t *testing.T) {
	scheduler := NewScheduler()

	err := scheduler.Start(context.Background(), "")
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()
}

func TestSchedulerStartEvaluatesWatcherImmediately(t *testing.T) {
	src := &fakeSource{s: officeSettings()}
	w := NewWatcher(src, func() time.Time { return wed(10, 0) })

	scheduler := NewScheduler()
	scheduler.SetWatcher(w)
	require.NoError(t, scheduler.Start(context.Background(), DefaultTick))
	defer scheduler.Stop()

	protected, _, ok := w.State()
	assert.True(t, ok)
	assert.True(t, protected)
	assert.Len(t, scheduler.cron.Entries(), 1)
}

func TestSchedulerStartInvalidTick(t *testing.T) {
	scheduler := NewScheduler()
	scheduler.SetWatcher(NewWatcher(&fakeSource{s: model.DefaultSettings()}, nil))

	err := scheduler.Start(context.Background(), "not a spec")
	assert.Error(t, err)
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec(DefaultTick))
	assert.NoError(t, ValidateSpec("*/10 * * * * *"))
	assert.NoError(t, ValidateSpec("@every 30s"))
	assert.Error(t, ValidateSpec("* * * * *"))
	assert.Error(t, ValidateSpec("garbage"))
}

// =============================================================================
// Watcher Tests
// =============================================================================

func TestProtected(t *testing.T) {
	s := officeSettings()
	assert.True(t, Protected(s, wed(9, 0)))
	assert.True(t, Protected(s, wed(17, 0)))
	assert.False(t, Protected(s, wed(17, 1)))

	s.Enabled = false
	assert.False(t, Protected(s, wed(10, 0)))

	always := model.DefaultSettings()
	assert.True(t, Protected(always, wed(23, 0)))
}

func TestWatcherTransitions(t *testing.T) {
	src := &fakeSource{s: officeSettings()}
	now := wed(16, 59)
	w := NewWatcher(src, func() time.Time { return now })

	var changes []bool
	w.OnChange(func(p bool) { changes = append(changes, p) })

	_, ok := stateOK(w)
	assert.False(t, ok)

	protected, changed, err := w.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, protected)
	assert.False(t, changed, "first evaluation is not a change")

	now = wed(17, 1)
	protected, changed, err = w.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, protected)
	assert.True(t, changed)

	_, changed, err = w.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)

	now = wed(10, 0)
	src.set(func(s *model.Settings) { s.Enabled = false })
	_, changed, err = w.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, changed, "disabled during hours stays paused")

	assert.Equal(t, []bool{false}, changes)
}

func TestWatcherSourceError(t *testing.T) {
	w := NewWatcher(&fakeSource{err: errors.New("store closed")}, nil)

	_, _, err := w.Check(context.Background())
	assert.Error(t, err)

	_, ok := stateOK(w)
	assert.False(t, ok)
}

func stateOK(w *Watcher) (bool, bool) {
	p, _, ok := w.State()
	return p, ok
}
