package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/terminal"
	"github.com/zeroapi/zeroapi/internal/urls"
)

// Route identifies a screen.
type Route string

const (
	RouteLanding Route = urls.Home
	RouteLogin   Route = urls.Login
)

// ParseRoute maps a path to a known route. Unknown paths fall back to the
// landing page.
func ParseRoute(path string) Route {
	switch Route(path) {
	case RouteLogin:
		return RouteLogin
	default:
		return RouteLanding
	}
}

// navigateMsg asks AppModel to switch screens.
type navigateMsg struct {
	route Route
}

// Navigate returns a command that switches the active screen.
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}

// Options configures the screens.
type Options struct {
	Machine        *terminal.Machine
	CursorBlink    time.Duration
	CopiedFeedback time.Duration
	Language       landing.Language
	// Clipboard receives the snippet when the user copies it.
	Clipboard func(string) error
}

// DefaultOptions returns options matching the default configuration.
func DefaultOptions() Options {
	return Options{
		Machine:        terminal.NewMachine(terminal.DefaultTiming()),
		CursorBlink:    600 * time.Millisecond,
		CopiedFeedback: 2 * time.Second,
		Language:       landing.JavaScript,
		Clipboard:      clipboard.WriteAll,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Machine == nil {
		o.Machine = d.Machine
	}
	if o.CursorBlink <= 0 {
		o.CursorBlink = d.CursorBlink
	}
	if o.CopiedFeedback <= 0 {
		o.CopiedFeedback = d.CopiedFeedback
	}
	if o.Language == "" {
		o.Language = d.Language
	}
	if o.Clipboard == nil {
		o.Clipboard = d.Clipboard
	}
	return o
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	Route Route

	Landing  LandingModel
	Terminal TerminalModel

	Width  int
	Height int

	opts Options
}

// NewAppModel creates a new application model starting at the given route
func NewAppModel(start Route, opts Options) AppModel {
	opts = opts.withDefaults()
	m := AppModel{
		Route:   ParseRoute(string(start)),
		Landing: NewLandingModel(opts),
		opts:    opts,
	}
	if m.Route == RouteLogin {
		m.Terminal = NewTerminalModel(opts)
	}
	return m
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.initCurrent()
}

func (m AppModel) initCurrent() tea.Cmd {
	switch m.Route {
	case RouteLogin:
		return m.Terminal.Init()
	default:
		return m.Landing.Init()
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case navigateMsg:
		return m.navigate(msg.route)
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.Route {
	case RouteLogin:
		m.Terminal, cmd = m.Terminal.Update(msg)
	default:
		m.Landing, cmd = m.Landing.Update(msg)
	}

	return m, cmd
}

// navigate switches screens. The terminal always starts a fresh session;
// the landing page keeps its tab selection.
func (m AppModel) navigate(route Route) (tea.Model, tea.Cmd) {
	route = ParseRoute(string(route))
	if route == m.Route {
		return m, nil
	}
	logging.Debug("navigate",
		zap.String("from", string(m.Route)),
		zap.String("to", string(route)))

	m.Route = route
	size := tea.WindowSizeMsg{Width: m.Width, Height: m.Height}

	switch route {
	case RouteLogin:
		m.Terminal = NewTerminalModel(m.opts)
		m.Terminal, _ = m.Terminal.Update(size)
	default:
		m.Landing, _ = m.Landing.Update(size)
	}

	return m, m.initCurrent()
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.Route {
	case RouteLogin:
		return m.Terminal.View()
	default:
		return m.Landing.View()
	}
}
