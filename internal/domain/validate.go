// Package domain normalizes, validates and matches block-list domains.
package domain

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

const (
	// MinLength is the shortest domain accepted on the block-list.
	MinLength = 3
	// MaxLength is the longest domain accepted (RFC 1035 limit).
	MaxLength = 253
)

// formatRegex accepts dot-separated labels ending in an alphabetic TLD.
var formatRegex = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)*\.[a-z]{2,}$`)

// Reason identifies which rule rejected a candidate.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonAlreadyBlocked Reason = "already_blocked"
	ReasonSpace          Reason = "space"
	ReasonHyphenEdge     Reason = "hyphen_edge"
	ReasonDoubleDot      Reason = "double_dot"
	ReasonTooShort       Reason = "too_short"
	ReasonTooLong        Reason = "too_long"
	ReasonMissingTLD     Reason = "missing_tld"
	ReasonDotEdge        Reason = "dot_edge"
	ReasonFormat         Reason = "format"
	ReasonShortTLD       Reason = "short_tld"
)

// Result is the outcome of Validate. A rejected domain is a normal value,
// not an error.
type Result struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
	Domain  string `json:"domain"`
}

func reject(clean string, reason Reason, message string) Result {
	return Result{Reason: reason, Message: message, Domain: clean}
}

// Clean removes one leading http:// or https://, one leading www. and one
// trailing slash, then lowercases. The prefixes are matched case-sensitively,
// so "HTTPS://x.com" keeps its scheme and fails the format rule.
func Clean(s string) string {
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		s = rest
	} else {
		s = strings.TrimPrefix(s, "http://")
	}
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return strings.ToLower(s)
}

// IsValidFormat reports whether s matches the domain grammar.
func IsValidFormat(s string) bool {
	return formatRegex.MatchString(s)
}

// Validate normalizes candidate and checks it against the rules below, in
// order. The first failing rule decides the result.
func Validate(candidate string, blocked []string) Result {
	clean := Clean(candidate)

	if lo.ContainsBy(blocked, func(d string) bool { return strings.ToLower(d) == clean }) {
		return reject(clean, ReasonAlreadyBlocked, "Domain already blocked")
	}

	if strings.Contains(clean, " ") {
		return reject(clean, ReasonSpace, "Domain names cannot contain spaces")
	}

	if strings.HasPrefix(clean, "-") || strings.HasSuffix(clean, "-") {
		return reject(clean, ReasonHyphenEdge, "Domain names cannot start or end with hyphens")
	}

	if strings.Contains(clean, "..") {
		return reject(clean, ReasonDoubleDot, "Domain names cannot contain consecutive dots")
	}

	// Bytes, not runes: anything non-ASCII fails the format rule anyway.
	n := len(clean)
	if n < MinLength {
		return reject(clean, ReasonTooShort, "Domain name too short (minimum 3 characters)")
	}
	if n > MaxLength {
		return reject(clean, ReasonTooLong, "Domain name too long (maximum 253 characters)")
	}

	if !IsValidFormat(clean) {
		switch {
		case !strings.Contains(clean, "."):
			return reject(clean, ReasonMissingTLD, "Domain must include a top-level domain (e.g., .com, .org)")
		case strings.HasPrefix(clean, ".") || strings.HasSuffix(clean, "."):
			return reject(clean, ReasonDotEdge, "Domain cannot start or end with a dot")
		default:
			return reject(clean, ReasonFormat, "Invalid domain format. Use format like 'example.com'")
		}
	}

	if len(TLD(clean)) < 2 {
		return reject(clean, ReasonShortTLD, "Top-level domain must be at least 2 characters")
	}

	return Result{
		Valid:   true,
		Message: "✓ Ready to block " + clean,
		Domain:  clean,
	}
}

// TLD returns the label after the final dot, or s itself when it has none.
func TLD(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}
