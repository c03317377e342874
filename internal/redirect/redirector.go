package redirect

import (
	"context"
	"sync"
	"time"

	"github.com/manav03panchal/tabguard/internal/domain"
	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/model"
)

// DefaultCooldown is how long a redirected tab ignores further navigations.
const DefaultCooldown = 2000 * time.Millisecond

// CommandEmergencyRedirect sends the active tab to the default redirect URL.
const CommandEmergencyRedirect = "emergency_redirect"

// InstallReasonInstall is the install reason for a first-time install.
const InstallReasonInstall = "install"

// SettingsSource provides the current settings.
type SettingsSource interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// Installer stores default settings on first install.
type Installer interface {
	Install(ctx context.Context) (bool, error)
}

// TabController performs tab actions on behalf of the redirector.
type TabController interface {
	Navigate(ctx context.Context, tab TabID, url string) error
	Open(ctx context.Context, url string) error
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock supplies the current time and cooldown timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Options configures a Redirector.
type Options struct {
	Settings  SettingsSource
	Installer Installer // optional; HandleInstall is a no-op without it
	Tabs      TabController
	Clock     Clock
	Cooldown  time.Duration
	MatchMode domain.MatchMode
}

// pendingTab is the in-flight marker for one tab.
type pendingTab struct {
	timer Timer
}

// Redirector sends blocked navigations to the redirect URL. It is safe for
// concurrent use.
type Redirector struct {
	settings  SettingsSource
	installer Installer
	tabs      TabController
	clock     Clock
	cooldown  time.Duration
	mode      domain.MatchMode

	mu      sync.Mutex
	pending map[TabID]*pendingTab
	closed  bool
}

// New creates a Redirector. Zero Clock, Cooldown and MatchMode take defaults.
func New(opts Options) *Redirector {
	r := &Redirector{
		settings:  opts.Settings,
		installer: opts.Installer,
		tabs:      opts.Tabs,
		clock:     opts.Clock,
		cooldown:  opts.Cooldown,
		mode:      opts.MatchMode,
		pending:   make(map[TabID]*pendingTab),
	}
	if r.clock == nil {
		r.clock = SystemClock
	}
	if r.cooldown <= 0 {
		r.cooldown = DefaultCooldown
	}
	if r.mode == "" {
		r.mode = domain.MatchSubstring
	}
	return r
}

// HandleNavigation decides on nav and, when it is blocked, redirects the tab
// and marks it pending for the cooldown.
func (r *Redirector) HandleNavigation(ctx context.Context, nav Navigation) (d Decision, err error) {
	defer recoverInto(&err, "redirect.navigation")
	log := logging.FromContext(ctx).With(logging.KeyTabID, int(nav.TabID))

	if r.isClosed() {
		return Decision{TabID: nav.TabID}, tgerrors.ErrRedirectorClosed
	}
	if nav.FrameID != 0 {
		return Decision{TabID: nav.TabID, Reason: ReasonSubframe}, nil
	}

	s, err := r.settings.Get(ctx)
	if err != nil {
		return Decision{TabID: nav.TabID}, err
	}

	d = Decide(nav, s, r.clock.Now(), r.IsPending(nav.TabID), r.mode)
	if !d.Redirected {
		log.Debug("navigation allowed", logging.KeyReason, string(d.Reason), logging.KeyURL, logging.MaskURL(nav.URL))
		return d, nil
	}

	if !r.markPending(nav.TabID) {
		d.Redirected = false
		d.Reason = ReasonPending
		d.Target = ""
		return d, nil
	}

	if err := r.tabs.Navigate(ctx, nav.TabID, d.Target); err != nil {
		return d, tgerrors.NewInternalError("redirect.navigate", "tab controller rejected navigation", err)
	}
	log.Info("redirected", logging.KeyDomain, d.Match, logging.KeyURL, logging.MaskURL(nav.URL))
	return d, nil
}

// HandleCommand runs a keyboard command against the active tab.
func (r *Redirector) HandleCommand(ctx context.Context, command string, active TabID) (err error) {
	defer recoverInto(&err, "redirect.command")

	if r.isClosed() {
		return tgerrors.ErrRedirectorClosed
	}
	if command != CommandEmergencyRedirect {
		return &tgerrors.UserError{
			Message: "unknown command: " + command,
			Field:   "command",
			Value:   command,
			Cause:   tgerrors.ErrUnknownCommand,
		}
	}
	if active == NoTab {
		return nil
	}
	if err := r.tabs.Navigate(ctx, active, model.DefaultRedirectURL); err != nil {
		return tgerrors.NewInternalError("redirect.command", "tab controller rejected navigation", err)
	}
	logging.FromContext(ctx).Info("emergency redirect", logging.KeyTabID, int(active))
	return nil
}

// HandleInstall stores the default settings and opens the welcome site on a
// first-time install. Other reasons are ignored.
func (r *Redirector) HandleInstall(ctx context.Context, reason string) (err error) {
	defer recoverInto(&err, "redirect.install")

	if reason != InstallReasonInstall || r.installer == nil {
		return nil
	}
	if _, err := r.installer.Install(ctx); err != nil {
		return err
	}
	if err := r.tabs.Open(ctx, model.DefaultSiteURL); err != nil {
		return tgerrors.NewInternalError("redirect.install", "tab controller rejected open", err)
	}
	return nil
}

// TabClosed cancels the pending marker for tab.
func (r *Redirector) TabClosed(tab TabID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pending[tab]; ok {
		p.timer.Stop()
		delete(r.pending, tab)
	}
}

// IsPending reports whether tab has a redirect in flight.
func (r *Redirector) IsPending(tab TabID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[tab]
	return ok
}

// PendingCount returns the number of tabs with a redirect in flight.
func (r *Redirector) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Close stops every pending timer. Further events return ErrRedirectorClosed.
func (r *Redirector) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tab, p := range r.pending {
		p.timer.Stop()
		delete(r.pending, tab)
	}
	r.closed = true
}

func (r *Redirector) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// markPending marks tab pending unless it already is.
func (r *Redirector) markPending(tab TabID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[tab]; ok || r.closed {
		return false
	}
	p := &pendingTab{}
	p.timer = r.clock.AfterFunc(r.cooldown, func() { r.expire(tab, p) })
	r.pending[tab] = p
	return true
}

// expire removes the marker if it is still the one that scheduled the timer.
func (r *Redirector) expire(tab TabID, p *pendingTab) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending[tab] == p {
		delete(r.pending, tab)
	}
}

func recoverInto(err *error, op string) {
	if rec := recover(); rec != nil {
		*err = tgerrors.FromPanic(op, rec)
	}
}
