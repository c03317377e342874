package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/redirect"
)

// MaxLineBytes bounds a single event line.
const MaxLineBytes = 1 << 20

// EventType names an inbound event.
type EventType string

const (
	EventNavigation EventType = "navigation"
	EventTabClosed  EventType = "tab_closed"
	EventCommand    EventType = "command"
	EventInstalled  EventType = "installed"
	EventStatus     EventType = "status"
)

// Event is one line read from the host.
type Event struct {
	Type    EventType `json:"type"`
	TabID   *int      `json:"tabId,omitempty"`
	FrameID int       `json:"frameId,omitempty"`
	URL     string    `json:"url,omitempty"`
	Command string    `json:"command,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

// Action names an outbound command.
type Action string

const (
	ActionNavigate Action = "navigate"
	ActionOpen     Action = "open"
	ActionStatus   Action = "status"
)

// Command is one line written to the host.
type Command struct {
	Action Action `json:"action"`
	TabID  *int   `json:"tabId,omitempty"`
	URL    string `json:"url,omitempty"`
}

// StatusReport answers a status event. It is also pushed unprompted, with
// Changed set, whenever protection switches on or off.
type StatusReport struct {
	Action    Action          `json:"action"`
	Protected bool            `json:"protected"`
	Changed   bool            `json:"changed,omitempty"`
	Health    *HealthStatus   `json:"health"`
	Metrics   MetricsSnapshot `json:"metrics"`
}

// DecodeEvent parses and checks one event line.
func DecodeEvent(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, &tgerrors.UserError{
			Message:    "malformed event",
			Suggestion: `Send one JSON object per line, e.g. {"type":"navigation","tabId":1,"frameId":0,"url":"https://example.com"}`,
			Cause:      err,
		}
	}

	switch ev.Type {
	case EventNavigation:
		if ev.TabID == nil {
			return Event{}, missingField(ev.Type, "tabId")
		}
		if ev.URL == "" {
			return Event{}, missingField(ev.Type, "url")
		}
	case EventTabClosed:
		if ev.TabID == nil {
			return Event{}, missingField(ev.Type, "tabId")
		}
	case EventCommand:
		if ev.Command == "" {
			return Event{}, missingField(ev.Type, "command")
		}
	case EventInstalled, EventStatus:
	default:
		return Event{}, tgerrors.NewUserErrorWithField("type", string(ev.Type), "unknown event type",
			"Event types are navigation, tab_closed, command, installed and status.")
	}
	return ev, nil
}

// Tab returns the event's tab, or redirect.NoTab when absent.
func (e Event) Tab() redirect.TabID {
	if e.TabID == nil {
		return redirect.NoTab
	}
	return redirect.TabID(*e.TabID)
}

func missingField(t EventType, field string) error {
	return &tgerrors.UserError{
		Message: fmt.Sprintf("%s event is missing %s", t, field),
		Field:   field,
	}
}

// Scan feeds each non-empty line of r to fn until r is exhausted.
func Scan(r io.Reader, fn func(line []byte)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		fn(append([]byte(nil), line...))
	}
	return scanner.Err()
}

// Writer writes newline-delimited JSON commands. It implements
// redirect.TabController and is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes v as one line.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(v)
}

// Navigate tells the host to load url in tab.
func (w *Writer) Navigate(ctx context.Context, tab redirect.TabID, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := int(tab)
	return w.Write(Command{Action: ActionNavigate, TabID: &id, URL: url})
}

// Open tells the host to open url in a new tab.
func (w *Writer) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.Write(Command{Action: ActionOpen, URL: url})
}
