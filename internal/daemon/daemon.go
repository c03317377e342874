// Package daemon runs the long-lived serve loop: it reads navigation events
// from the host, answers with tab commands and keeps the protection watcher
// running alongside.
package daemon

import (
	"context"
	"io"

	"github.com/manav03panchal/tabguard/internal/config"
	"github.com/manav03panchal/tabguard/internal/domain"
	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/redirect"
	"github.com/manav03panchal/tabguard/internal/scheduler"
)

// Store is the settings store the serve loop runs against.
type Store interface {
	redirect.SettingsSource
	redirect.Installer
}

// Daemon wires the redirector, the watcher and the protocol together.
type Daemon struct {
	store    Store
	cfg      *config.RuntimeConfig
	version  string
	clock    redirect.Clock
	metrics  *Metrics
	health   *HealthChecker
	watcher  *scheduler.Watcher
	redirect *redirect.Redirector
	out      *Writer
}

// NewDaemon creates a daemon. A nil cfg uses config.Global.
func NewDaemon(store Store, cfg *config.RuntimeConfig, version string) *Daemon {
	if cfg == nil {
		cfg = config.Global
	}
	return &Daemon{
		store:   store,
		cfg:     cfg,
		version: version,
		clock:   redirect.SystemClock,
		metrics: NewMetrics(),
		health:  NewHealthChecker(version),
	}
}

// Metrics returns the daemon's counters.
func (d *Daemon) Metrics() *Metrics {
	return d.metrics
}

// Run serves events from in until in is exhausted or ctx is done. Commands
// are written to out. Handler failures are logged and counted; only a read
// failure on in ends Run with an error.
func (d *Daemon) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	mode, err := d.preflight()
	if err != nil {
		return err
	}

	d.out = NewWriter(out)
	d.redirect = redirect.New(redirect.Options{
		Settings:  d.store,
		Installer: d.store,
		Tabs:      d.out,
		Clock:     d.clock,
		Cooldown:  d.cfg.Redirect.Cooldown,
		MatchMode: mode,
	})
	defer d.redirect.Close()

	d.health.SetPendingFunc(d.redirect.PendingCount)
	d.health.AddCheck("store", func() error {
		_, err := d.store.Get(context.Background())
		return err
	})

	d.watcher = scheduler.NewWatcher(d.store, d.clock.Now)
	d.watcher.OnChange(func(protected bool) {
		if err := d.out.Write(d.statusReport(protected, true)); err != nil {
			logging.Warn("status push failed", logging.KeyError, err)
		}
	})
	sched := scheduler.NewScheduler()
	sched.SetWatcher(d.watcher)
	if err := sched.Start(ctx, d.cfg.Watcher.Tick); err != nil {
		return tgerrors.NewInternalError("daemon.run", "cannot start watcher", err)
	}
	defer sched.Stop()

	logging.Info("serve started", "version", d.version, "match_mode", string(mode),
		"cooldown", d.cfg.Redirect.Cooldown.String())

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		readErr <- Scan(in, func(line []byte) {
			select {
			case lines <- line:
			case <-ctx.Done():
			}
		})
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			d.logStopped(ctx.Err().Error())
			return nil
		case line, ok := <-lines:
			if !ok {
				d.logStopped("input closed")
				return <-readErr
			}
			d.handleLine(ctx, line)
		}
	}
}

func (d *Daemon) logStopped(reason string) {
	logging.Info("serve stopped", logging.KeyReason, reason,
		"events", d.metrics.EventsTotal(),
		"redirects", d.metrics.RedirectsTotal(),
		"suppressed", d.metrics.SuppressedTotal(),
		"errors", d.metrics.ErrorsTotal())
}

// preflight checks the runtime configuration before anything is written.
func (d *Daemon) preflight() (domain.MatchMode, error) {
	if err := d.cfg.Validate(); err != nil {
		return "", tgerrors.NewUserError(err.Error(),
			"Set "+config.EnvRedirectCooldown+" to a non-negative duration such as 2s.")
	}
	mode, err := domain.ParseMatchMode(d.cfg.Redirect.MatchMode)
	if err != nil {
		return "", tgerrors.NewUserErrorWithField("match mode", d.cfg.Redirect.MatchMode, err.Error(),
			"Set "+config.EnvMatchMode+" to substring or suffix.")
	}
	if err := scheduler.ValidateSpec(d.cfg.Watcher.Tick); err != nil {
		return "", tgerrors.NewUserErrorWithField("tick", d.cfg.Watcher.Tick, err.Error(),
			"Set "+config.EnvTick+" to a cron spec with seconds, e.g. '0 * * * * *'.")
	}
	return mode, nil
}

// handleLine handles one event line. Failures are logged with their
// category and never stop the loop.
func (d *Daemon) handleLine(ctx context.Context, line []byte) {
	d.metrics.RecordEvent()
	ctx = logging.NewRequestContext(ctx)
	log := logging.FromContext(ctx)

	if err := d.handle(ctx, line); err != nil {
		category := tgerrors.Classify(err)
		d.metrics.RecordError(category.String(), err)
		log.Warn("event failed", logging.KeyCategory, category.String(), logging.KeyError, err)
	}
}

func (d *Daemon) handle(ctx context.Context, line []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = tgerrors.FromPanic("daemon.handle", rec)
		}
	}()

	ev, err := DecodeEvent(line)
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("event", "type", string(ev.Type), logging.KeyTabID, int(ev.Tab()))

	switch ev.Type {
	case EventNavigation:
		decision, err := d.redirect.HandleNavigation(ctx, redirect.Navigation{
			TabID:   ev.Tab(),
			FrameID: ev.FrameID,
			URL:     ev.URL,
		})
		d.metrics.RecordDecision(decision)
		return err
	case EventTabClosed:
		d.redirect.TabClosed(ev.Tab())
		return nil
	case EventCommand:
		return d.redirect.HandleCommand(ctx, ev.Command, ev.Tab())
	case EventInstalled:
		return d.redirect.HandleInstall(ctx, ev.Reason)
	case EventStatus:
		return d.writeStatus(ctx)
	}
	return nil
}

// writeStatus re-evaluates protection and answers a status event. When the
// evaluation is itself a transition, the pushed report is the answer.
func (d *Daemon) writeStatus(ctx context.Context) error {
	protected, changed, err := d.watcher.Check(ctx)
	if err != nil {
		return err
	}
	if changed {
		return nil
	}
	return d.out.Write(d.statusReport(protected, false))
}

func (d *Daemon) statusReport(protected, changed bool) StatusReport {
	return StatusReport{
		Action:    ActionStatus,
		Protected: protected,
		Changed:   changed,
		Health:    d.health.Check(),
		Metrics:   d.metrics.Snapshot(),
	}
}
