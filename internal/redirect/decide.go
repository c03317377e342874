// Package redirect decides whether a navigation is sent away from a blocked
// site and drives the tab controller that performs the redirect.
package redirect

import (
	"strings"
	"time"

	"github.com/manav03panchal/tabguard/internal/domain"
	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/schedule"
)

// TabID identifies a browser tab.
type TabID int

// NoTab is used when a command arrives without an active tab.
const NoTab TabID = -1

// Reason explains the outcome of a decision.
type Reason string

const (
	ReasonRedirected     Reason = "redirected"
	ReasonSubframe       Reason = "subframe"
	ReasonDisabled       Reason = "disabled"
	ReasonPending        Reason = "pending"
	ReasonOutsideHours   Reason = "outside_working_hours"
	ReasonInternalPage   Reason = "internal_page"
	ReasonRedirectTarget Reason = "redirect_target"
	ReasonUnparseable    Reason = "unparseable_url"
	ReasonNotListed      Reason = "not_listed"
	ReasonBlocked        Reason = "blocked"
)

// Navigation is a top-level or subframe navigation observed by the host.
type Navigation struct {
	TabID   TabID
	FrameID int
	URL     string
}

// Verdict is the URL-only part of a decision.
type Verdict struct {
	Block  bool
	Reason Reason
	Match  string // block-list entry that matched
}

// Decision is the full outcome for one navigation.
type Decision struct {
	TabID      TabID
	Redirected bool
	Reason     Reason
	Match      string
	Target     string
}

// Target returns the URL blocked navigations are sent to.
func Target(s *model.Settings) string {
	if strings.TrimSpace(s.RedirectURL) == "" {
		return model.DefaultRedirectURL
	}
	return s.RedirectURL
}

// Evaluate checks rawURL against the block-list.
func Evaluate(rawURL string, s *model.Settings, mode domain.MatchMode) Verdict {
	if domain.IsInternalURL(rawURL) {
		return Verdict{Reason: ReasonInternalPage}
	}
	host, err := domain.Host(rawURL)
	if err != nil {
		return Verdict{Reason: ReasonUnparseable}
	}
	if target, err := domain.Host(Target(s)); err == nil && host == target {
		return Verdict{Reason: ReasonRedirectTarget}
	}
	entry, ok := domain.Match(host, s.BlockedDomains, mode)
	if !ok {
		return Verdict{Reason: ReasonNotListed}
	}
	return Verdict{Block: true, Reason: ReasonBlocked, Match: entry}
}

// ShouldBlock reports whether rawURL is on the block-list using substring
// matching.
func ShouldBlock(rawURL string, s *model.Settings) bool {
	return Evaluate(rawURL, s, domain.MatchSubstring).Block
}

// Decide runs the full skip chain for nav without side effects. pending says
// whether the tab already has a redirect in flight.
func Decide(nav Navigation, s *model.Settings, now time.Time, pending bool, mode domain.MatchMode) Decision {
	d := Decision{TabID: nav.TabID}
	switch {
	case nav.FrameID != 0:
		d.Reason = ReasonSubframe
		return d
	case !s.Enabled:
		d.Reason = ReasonDisabled
		return d
	case pending:
		d.Reason = ReasonPending
		return d
	case !schedule.InWorkingHours(s.WorkingHours, now):
		d.Reason = ReasonOutsideHours
		return d
	}

	v := Evaluate(nav.URL, s, mode)
	d.Reason = v.Reason
	d.Match = v.Match
	if v.Block {
		d.Redirected = true
		d.Reason = ReasonRedirected
		d.Target = Target(s)
	}
	return d
}
