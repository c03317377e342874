package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tabguard/internal/config"
	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/output"
)

// Wednesday, 2024-01-03 10:00.
var wednesday = time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC)

// setup points the CLI at a fresh on-disk store and a fixed clock.
func setup(t *testing.T) {
	t.Helper()

	prevConfig := *config.Global
	prevNow := now
	config.Global.Reset()
	config.Global.Storage.Path = filepath.Join(t.TempDir(), "db")
	now = func() time.Time { return wednesday }

	t.Cleanup(func() {
		*config.Global = prevConfig
		now = prevNow
	})
}

// resetFlags restores every flag to its default between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)

	err := Execute()
	return out.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, strings.NewReader(""), args...)
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "tabguard %s", strings.Join(args, " "))
	return out
}

func mustRunJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out := mustRun(t, append([]string{"--format", "json"}, args...)...)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

// =============================================================================
// Root & Version Tests
// =============================================================================

func TestVersion(t *testing.T) {
	setup(t)
	out := mustRun(t, "version")
	assert.Contains(t, out, "tabguard dev")
	assert.Contains(t, out, "commit:")
}

func TestRootShowsStatus(t *testing.T) {
	setup(t)
	out := mustRun(t)
	assert.Contains(t, out, "Protection: active")
}

func TestInvalidGlobalFlags(t *testing.T) {
	setup(t)

	_, err := run(t, "--format", "yaml", "status")
	assert.True(t, tgerrors.IsUserError(err))

	_, err = run(t, "--color", "sometimes", "status")
	assert.True(t, tgerrors.IsUserError(err))
}

func TestPrintError(t *testing.T) {
	err := &tgerrors.UserError{
		Message:    "Unknown weekday",
		Suggestion: "Use mon-sun.",
	}

	t.Run("cli", func(t *testing.T) {
		flagFormat = "cli"
		var buf bytes.Buffer
		PrintError(&buf, err)
		assert.Equal(t, "Error: Unknown weekday\n\nTry: Use mon-sun.\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		flagFormat = "json"
		defer func() { flagFormat = "cli" }()

		var buf bytes.Buffer
		PrintError(&buf, err)

		var resp output.ErrorResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "user", resp.Category)
		assert.Equal(t, "Use mon-sun.", resp.Suggestion)
	})
}

// =============================================================================
// Status Tests
// =============================================================================

func TestStatus(t *testing.T) {
	setup(t)

	out := mustRun(t, "status")
	assert.Contains(t, out, "Protection: active")
	assert.Contains(t, out, "Protection runs 24/7")
	assert.Contains(t, out, "Blocking 5 domains, redirecting to https://calendar.google.com")
}

func TestStatusJSON(t *testing.T) {
	setup(t)

	var resp output.StatusResponse
	mustRunJSON(t, &resp, "status")
	assert.Equal(t, "active", resp.Status)
	assert.True(t, resp.Protected)
	assert.Equal(t, "2024-01-03T10:00:00Z", resp.At)
	assert.Equal(t, model.DefaultBlockedDomains, resp.BlockedDomains)
}

func TestStatusAt(t *testing.T) {
	setup(t)
	mustRun(t, "hours", "on")

	var resp output.StatusResponse
	mustRunJSON(t, &resp, "status", "--at", "2024-01-06 10:00")
	assert.Equal(t, "paused", resp.Status)
	assert.False(t, resp.Protected)

	_, err := run(t, "status", "--at", "zzzz qqqq")
	assert.ErrorIs(t, err, tgerrors.ErrInvalidTimestamp)
}

// =============================================================================
// Enable / Disable Tests
// =============================================================================

func TestEnableDisable(t *testing.T) {
	setup(t)
	mustRun(t, "hours", "on")

	out := mustRun(t, "disable")
	assert.Contains(t, out, "Blocking disabled")
	assert.Contains(t, out, "Protection: disabled")

	var resp output.SettingsResponse
	mustRunJSON(t, &resp, "enable")
	assert.True(t, resp.Settings.Enabled)
	assert.False(t, resp.Settings.WorkingHours.Enabled, "disable turns working hours off")
}

// =============================================================================
// Domains Tests
// =============================================================================

func TestDomainsAddRemove(t *testing.T) {
	setup(t)

	out := mustRun(t, "domains", "add", "https://www.News.com/")
	assert.Contains(t, out, "Blocked news.com")

	var list output.DomainsResponse
	mustRunJSON(t, &list, "domains", "list")
	assert.Equal(t, 6, list.Count)
	assert.Contains(t, list.Domains, "news.com")

	_, err := run(t, "domains", "add", "news.com")
	assert.ErrorIs(t, err, tgerrors.ErrDomainRejected)
	assert.Contains(t, err.Error(), "Domain already blocked")

	var change output.DomainChangeResponse
	mustRunJSON(t, &change, "domains", "remove", "www.news.com")
	assert.Equal(t, "removed", change.Status)
	assert.Equal(t, "news.com", change.Domain)

	_, err = run(t, "domains", "remove", "news.com")
	assert.ErrorIs(t, err, tgerrors.ErrDomainNotBlocked)
}

func TestDomainsAddRejected(t *testing.T) {
	setup(t)

	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"space", "bad domain.com", "cannot contain spaces"},
		{"missing_tld", "localhost", "top-level domain"},
		{"too_short", "a.", "too short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "domains", "add", tt.input)
			require.Error(t, err)
			assert.Equal(t, tgerrors.CategoryUser, tgerrors.Classify(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	var list output.DomainsResponse
	mustRunJSON(t, &list, "domains")
	assert.Equal(t, 5, list.Count, "rejected domains are not stored")
}

func TestDomainsValidate(t *testing.T) {
	setup(t)

	out := mustRun(t, "domains", "validate", "example.org")
	assert.Contains(t, out, "Ready to block example.org")

	var r struct {
		Valid  bool   `json:"valid"`
		Reason string `json:"reason"`
	}
	mustRunJSON(t, &r, "domains", "validate", "youtube.com")
	assert.False(t, r.Valid)
	assert.Equal(t, "already_blocked", r.Reason)
}

// =============================================================================
// Hours Tests
// =============================================================================

func TestHoursSet(t *testing.T) {
	setup(t)

	var resp output.SettingsResponse
	mustRunJSON(t, &resp, "hours", "set", "--start", "8am", "--end", "5:30pm")
	assert.Equal(t, "08:00", resp.Settings.WorkingHours.Start)
	assert.Equal(t, "17:30", resp.Settings.WorkingHours.End)

	mustRunJSON(t, &resp, "hours", "set", "--end", "12:00")
	assert.Equal(t, "08:00", resp.Settings.WorkingHours.Start)
	assert.Equal(t, "12:00", resp.Settings.WorkingHours.End)

	_, err := run(t, "hours", "set", "--start", "not a time")
	assert.ErrorIs(t, err, tgerrors.ErrInvalidClock)

	_, err = run(t, "hours", "set")
	assert.Error(t, err)
}

func TestHoursInvertedWindowWarns(t *testing.T) {
	setup(t)

	out := mustRun(t, "hours", "set", "--start", "18:00", "--end", "09:00")
	assert.Contains(t, out, "Start is after end")
}

func TestHoursOnOff(t *testing.T) {
	setup(t)

	var resp output.SettingsResponse
	mustRunJSON(t, &resp, "hours", "on")
	assert.True(t, resp.Settings.WorkingHours.Enabled)

	mustRunJSON(t, &resp, "hours", "off")
	assert.False(t, resp.Settings.WorkingHours.Enabled)

	out := mustRun(t, "hours")
	assert.Contains(t, out, "Days:  weekdays")
	assert.Contains(t, out, "Hours: 9:00 AM - 5:00 PM")
}

func TestHoursDays(t *testing.T) {
	setup(t)

	var resp output.SettingsResponse
	mustRunJSON(t, &resp, "hours", "days", "mon,wed")
	assert.Equal(t, []int{1, 3}, resp.Settings.WorkingHours.Weekdays)

	mustRunJSON(t, &resp, "hours", "days", "toggle", "fri")
	assert.Equal(t, []int{1, 3, 5}, resp.Settings.WorkingHours.Weekdays)

	mustRunJSON(t, &resp, "hours", "days", "toggle", "1")
	assert.Equal(t, []int{3, 5}, resp.Settings.WorkingHours.Weekdays)

	mustRunJSON(t, &resp, "hours", "days", "weekend")
	assert.Equal(t, []int{0, 6}, resp.Settings.WorkingHours.Weekdays)

	_, err := run(t, "hours", "days", "funday")
	assert.ErrorIs(t, err, tgerrors.ErrInvalidWeekday)

	out := mustRun(t, "hours", "days", "monday", "tuesday", "thursday")
	assert.Contains(t, out, "Days:  Monday, Tuesday and Thursday")
}

// =============================================================================
// Week Tests
// =============================================================================

func TestWeek(t *testing.T) {
	setup(t)

	var resp output.WeekResponse
	mustRunJSON(t, &resp, "week")
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "Mon", resp.Days[0].Day)
	assert.Equal(t, "2024-01-01", resp.Days[0].Date)
	assert.True(t, resp.Days[0].Past)
	assert.True(t, resp.Days[2].Today)
	assert.False(t, resp.Days[6].Protected)

	out := mustRun(t, "week")
	assert.Contains(t, out, "today")
}

// =============================================================================
// Check Tests
// =============================================================================

func TestCheck(t *testing.T) {
	setup(t)

	var d output.DecisionResponse
	mustRunJSON(t, &d, "check", "https://m.youtube.com/watch?v=abc")
	assert.True(t, d.Redirected)
	assert.Equal(t, "redirected", d.Reason)
	assert.Equal(t, "youtube.com", d.Match)
	assert.Equal(t, model.DefaultRedirectURL, d.Target)

	out := mustRun(t, "check", "https://example.org")
	assert.Contains(t, out, "allowed https://example.org")
	assert.Contains(t, out, "not on the block-list")
}

func TestCheckReasons(t *testing.T) {
	setup(t)
	mustRun(t, "hours", "on")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"subframe", []string{"https://youtube.com", "--frame", "2"}, "subframe"},
		{"outside_hours", []string{"https://youtube.com", "--at", "2024-01-06 10:00"}, "outside_working_hours"},
		{"internal_page", []string{"chrome://settings"}, "internal_page"},
		{"redirect_target", []string{"https://calendar.google.com/r"}, "redirect_target"},
		{"blocked", []string{"https://reddit.com/r/golang"}, "redirected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d output.DecisionResponse
			mustRunJSON(t, &d, append([]string{"check"}, tt.args...)...)
			assert.Equal(t, tt.want, d.Reason)
		})
	}
}

func TestCheckSuffixMode(t *testing.T) {
	setup(t)
	config.Global.Redirect.MatchMode = "suffix"

	mustRun(t, "domains", "add", "x.com")

	var d output.DecisionResponse
	mustRunJSON(t, &d, "check", "https://box.com")
	assert.False(t, d.Redirected)

	mustRunJSON(t, &d, "check", "https://api.x.com")
	assert.True(t, d.Redirected)
}

func TestEnvFileFlag(t *testing.T) {
	setup(t)
	unsetEnv(t, config.EnvMatchMode)

	dir := t.TempDir()
	writeEnv := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("applies_settings", func(t *testing.T) {
		path := writeEnv("suffix.env", config.EnvMatchMode+"=suffix\n")

		var d output.DecisionResponse
		mustRunJSON(t, &d, "--env-file", path, "check", "https://notyoutube.com.evil")
		assert.False(t, d.Redirected)
		assert.Equal(t, "suffix", config.Global.Redirect.MatchMode)
	})

	t.Run("typo_in_match_mode_is_reported", func(t *testing.T) {
		unsetEnv(t, config.EnvMatchMode)
		path := writeEnv("typo.env", config.EnvMatchMode+"=sufix\n")

		_, err := run(t, "--env-file", path, "check", "https://youtube.com")
		require.Error(t, err)
		assert.True(t, tgerrors.IsUserError(err))
		assert.Contains(t, err.Error(), "sufix")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := run(t, "--env-file", filepath.Join(dir, "missing.env"), "status")
		assert.True(t, tgerrors.IsUserError(err))
	})
}

// unsetEnv removes key for the rest of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// =============================================================================
// Reset Tests
// =============================================================================

func TestReset(t *testing.T) {
	setup(t)
	mustRun(t, "domains", "remove", "reddit.com")
	mustRun(t, "disable")

	out := mustRun(t, "reset")
	assert.Contains(t, out, "Settings restored to defaults")

	var resp output.StatusResponse
	mustRunJSON(t, &resp, "status")
	assert.True(t, resp.Enabled)
	assert.Equal(t, model.DefaultBlockedDomains, resp.BlockedDomains)
}

// =============================================================================
// Serve Tests
// =============================================================================

func TestServe(t *testing.T) {
	setup(t)

	in := strings.NewReader(strings.Join([]string{
		`{"type":"navigation","tabId":7,"frameId":0,"url":"https://www.youtube.com/"}`,
		`{"type":"navigation","tabId":8,"frameId":0,"url":"https://example.org/"}`,
		`{"type":"command","command":"emergency_redirect","tabId":8}`,
	}, "\n") + "\n")

	out, err := runWithInput(t, in, "serve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"action":"navigate","tabId":7,"url":"https://calendar.google.com"}`, lines[0])
	assert.JSONEq(t, `{"action":"navigate","tabId":8,"url":"https://calendar.google.com"}`, lines[1])
}
