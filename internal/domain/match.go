package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// InternalPrefixes mark browser-internal pages that are never redirected.
var InternalPrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"moz-extension://",
	"edge://",
	"about:",
}

// MatchMode selects how a block-list entry is compared with a hostname.
type MatchMode string

const (
	// MatchSubstring blocks any hostname containing the entry. "fb.com"
	// therefore also matches "myfb.com.example".
	MatchSubstring MatchMode = "substring"
	// MatchSuffix blocks the entry itself and its subdomains only.
	MatchSuffix MatchMode = "suffix"
)

// ParseMatchMode parses a mode name; empty selects MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchSuffix:
		return MatchSuffix, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want substring or suffix)", s)
	}
}

// IsInternalURL reports whether rawURL points at a browser-internal page.
func IsInternalURL(rawURL string) bool {
	return lo.SomeBy(InternalPrefixes, func(p string) bool {
		return strings.HasPrefix(rawURL, p)
	})
}

// Host extracts the hostname of rawURL, lowercased and without a leading www.
func Host(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return strings.TrimPrefix(strings.ToLower(host), "www."), nil
}

// Match returns the first block-list entry that matches host.
func Match(host string, blocked []string, mode MatchMode) (string, bool) {
	host = strings.ToLower(host)
	return lo.Find(blocked, func(entry string) bool {
		entry = strings.ToLower(entry)
		if entry == "" {
			return false
		}
		if mode == MatchSuffix {
			return host == entry || strings.HasSuffix(host, "."+entry)
		}
		return strings.Contains(host, entry)
	})
}
