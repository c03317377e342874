package tui

import (
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/output"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// Store is the settings store the dashboard reads and edits.
type Store interface {
	Get() (*model.Settings, error)
	Update(fn func(s *model.Settings) error) (*model.Settings, error)
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	settings *model.Settings
	status   output.StatusView
	now      time.Time

	store Store
	clock func() time.Time

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	// Configuration
	refreshInterval time.Duration
	maxDomains      int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Store           Store
	Now             func() time.Time
	RefreshInterval time.Duration
	MaxDomains      int
	// Width is the initial width before the first resize event.
	Width int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.MaxDomains == 0 {
		config.MaxDomains = 8
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &DashboardModel{
		store:           config.Store,
		clock:           config.Now,
		width:           config.Width,
		refreshInterval: config.RefreshInterval,
		maxDomains:      config.MaxDomains,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Time(msg).After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.evaluate()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "e":
		m.apply("toggle_enabled", func(s *model.Settings) error {
			s.SetEnabled(!s.Enabled)
			return nil
		})
		if m.settings != nil && m.err == nil {
			m.setMessage(fmt.Sprintf("Blocking %s", onOff(m.settings.Enabled)), 2*time.Second)
		}
		return m, nil

	case "h":
		m.apply("toggle_hours", func(s *model.Settings) error {
			s.SetWorkingHoursEnabled(!s.WorkingHours.Enabled)
			return nil
		})
		if m.settings != nil && m.err == nil {
			m.setMessage(fmt.Sprintf("Working hours %s", onOff(m.settings.WorkingHours.Enabled)), 2*time.Second)
		}
		return m, nil

	case "0", "1", "2", "3", "4", "5", "6":
		day, _ := strconv.Atoi(key)
		m.apply("toggle_weekday", func(s *model.Settings) error {
			return s.ToggleWeekday(day)
		})
		return m, nil

	case "r":
		// Refresh data
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Error message
	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	// Status message
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.settings != nil {
		sections = append(sections,
			NewStatusComponent(m.status, m.width).View(),
			NewScheduleComponent(m.settings, m.now, m.width).View(),
			NewDomainsComponent(m.settings.BlockedDomains, m.width, m.maxDomains).View(),
		)
	}

	// Help bar
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("tabguard")
	timeStr := StyleSubtitle.Render(m.now.Format("Mon Jan 2, 15:04:05"))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData reads the settings from the store.
func (m *DashboardModel) loadData() {
	s, err := m.store.Get()
	if err != nil {
		m.err = err
		return
	}
	m.settings = s
	m.err = nil
	m.evaluate()
}

// evaluate recomputes the status at the current time.
func (m *DashboardModel) evaluate() {
	m.now = m.clock()
	if m.settings != nil {
		m.status = output.NewStatusView(m.settings, m.now)
	}
}

// apply runs fn through the store and shows the result.
func (m *DashboardModel) apply(op string, fn func(s *model.Settings) error) {
	s, err := m.store.Update(fn)
	if err != nil {
		logging.Warn("watch update failed", logging.KeyOperation, op, logging.KeyError, err)
		m.err = err
		return
	}
	logging.LogOperation(op)
	m.settings = s
	m.err = nil
	m.evaluate()
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.clock().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// TerminalWidth returns the width of stdout, or 0 when it is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	if config.Width == 0 {
		config.Width = TerminalWidth()
	}
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
