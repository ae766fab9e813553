package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/terminal"
)

// Hint lines shown under the input.
const (
	WelcomeHint = "Hint: Try typing 'login' or 'signup' to get started"
	CancelHint  = "Press Ctrl+C to cancel"
)

// logSession names the TUI session in transition logs.
const logSession = "tui"

// terminalKeyMap defines key bindings for the authentication terminal
type terminalKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Reveal key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k terminalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Reveal, k.Clear, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k terminalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.Reveal},
		{k.Clear, k.Back, k.Quit},
	}
}

func newTerminalKeyMap() terminalKeyMap {
	return terminalKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "show/hide"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "home"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "quit"),
		),
	}
}

// flushMsg runs the next pending transcript operation. Ticks from an older
// epoch are stale and ignored.
type flushMsg struct {
	epoch int
}

// blinkMsg toggles the cursor.
type blinkMsg struct{}

// TerminalModel is the authentication terminal screen.
type TerminalModel struct {
	Machine *terminal.Machine
	State   terminal.State

	Width  int
	Height int

	// CursorOn is the current blink phase.
	CursorOn bool

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     terminalKeyMap
	blink    time.Duration

	// ticking is set while a flushMsg for tickEpoch is in flight.
	ticking   bool
	tickEpoch int

	// focusMode and focusStep remember where focus was last asserted.
	focusMode terminal.Mode
	focusStep int
}

// NewTerminalModel creates a terminal showing the welcome lines.
func NewTerminalModel(opts Options) TerminalModel {
	opts = opts.withDefaults()

	input := textinput.New()
	input.Prompt = ""
	input.EchoCharacter = '*'
	input.CharLimit = 256
	input.Focus()

	m := TerminalModel{
		Machine:   opts.Machine,
		State:     opts.Machine.Start(),
		CursorOn:  true,
		input:     input,
		viewport:  viewport.New(80, 20),
		help:      help.New(),
		keys:      newTerminalKeyMap(),
		blink:     opts.CursorBlink,
		focusMode: terminal.ModeWelcome,
	}
	m.syncViewport()
	return m
}

// Init starts the cursor blink.
func (m TerminalModel) Init() tea.Cmd {
	return m.blinkCmd()
}

func (m TerminalModel) blinkCmd() tea.Cmd {
	return tea.Tick(m.blink, func(_ time.Time) tea.Msg {
		return blinkMsg{}
	})
}

// Update handles input for the terminal.
func (m TerminalModel) Update(msg tea.Msg) (TerminalModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case blinkMsg:
		m.CursorOn = !m.CursorOn
		return m, m.blinkCmd()

	case flushMsg:
		if msg.epoch != m.State.Epoch {
			logging.Debug("Ignoring stale flush tick")
			cmd := m.schedule()
			return m, cmd
		}
		m.ticking = false
		m.apply(m.Machine.Advance(m.State))
		cmd := m.settle()
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.State.Mode == terminal.ModeWelcome {
				return m, Navigate(RouteLanding)
			}
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			m.input.Reset()
			m.apply(m.Machine.Apply(m.State, terminal.Cancel{}))
			cmd := m.settle()
			return m, cmd

		case key.Matches(msg, m.keys.Reveal):
			if m.RevealAvailable() {
				m.apply(m.Machine.Apply(m.State, terminal.ToggleReveal{}))
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.input.Reset()
			m.apply(m.Machine.Apply(m.State, terminal.Clear{}))
			cmd := m.settle()
			return m, cmd

		case key.Matches(msg, m.keys.Submit):
			line := m.input.Value()
			m.input.Reset()
			m.apply(m.Machine.Apply(m.State, terminal.Submit{Line: line}))
			cmd := m.settle()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// apply installs a new state and logs what happened.
func (m *TerminalModel) apply(s terminal.State) {
	m.State = s
	logging.LogTransition(logSession, s.Last)
	m.syncEcho()
	m.syncViewport()
}

// settle runs after every state change: it re-asserts focus and keeps the
// pending queue ticking.
func (m *TerminalModel) settle() tea.Cmd {
	return tea.Batch(m.refocus(), m.schedule())
}

// schedule starts a flush tick for the head of the pending queue unless
// one is already in flight for the current epoch.
func (m *TerminalModel) schedule() tea.Cmd {
	delay, ok := m.Machine.Due(m.State)
	if !ok {
		m.ticking = false
		return nil
	}
	if m.ticking && m.tickEpoch == m.State.Epoch {
		return nil
	}

	m.ticking = true
	m.tickEpoch = m.State.Epoch
	epoch := m.State.Epoch
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return flushMsg{epoch: epoch}
	})
}

// refocus re-asserts input focus whenever the mode or step changed.
func (m *TerminalModel) refocus() tea.Cmd {
	if m.State.Mode == m.focusMode && m.State.Step == m.focusStep && m.input.Focused() {
		return nil
	}
	m.focusMode = m.State.Mode
	m.focusStep = m.State.Step
	m.CursorOn = true
	return m.input.Focus()
}

func (m *TerminalModel) syncEcho() {
	if m.Machine.Masked(m.State) {
		m.input.EchoMode = textinput.EchoPassword
	} else {
		m.input.EchoMode = textinput.EchoNormal
	}
}

func (m *TerminalModel) syncViewport() {
	lines := make([]string, 0, len(m.State.Transcript))
	for _, e := range m.State.Transcript {
		lines = append(lines, RenderEntry(e))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *TerminalModel) resize() {
	width := m.Width - 8 // container border plus window border and padding
	if width < 20 {
		width = 20
	}
	// title bar, input line, hint line and window border
	height := m.Height - chromeHeight - 5
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.help.Width = width
	m.syncViewport()
}

// Input returns the text currently typed on the live line.
func (m TerminalModel) Input() string {
	return m.input.Value()
}

// SetInput replaces the text on the live line.
func (m *TerminalModel) SetInput(s string) {
	m.input.SetValue(s)
}

// RevealAvailable reports whether the reveal toggle is offered: a secret
// field is active and something has been typed.
func (m TerminalModel) RevealAvailable() bool {
	field, ok := m.Machine.CurrentField(m.State)
	return ok && field.Kind == terminal.KindSecret && m.input.Value() != ""
}

// Hint returns the line shown under the input, if any.
func (m TerminalModel) Hint() string {
	switch {
	case m.State.Mode != terminal.ModeWelcome:
		return CancelHint
	case len(m.State.Transcript) == len(terminal.WelcomeLines):
		return WelcomeHint
	default:
		return ""
	}
}

// InputLine renders the prompt, the (possibly masked) value and the cursor.
func (m TerminalModel) InputLine() string {
	var prompt string
	if _, ok := m.Machine.CurrentField(m.State); ok {
		prompt = FlowPromptStyle.Render("→ " + m.Machine.Prompt(m.State))
	} else {
		prompt = CommandPromptStyle.Render(m.Machine.Prompt(m.State))
	}

	value := m.input.Value()
	if m.Machine.Masked(m.State) {
		value = terminal.Mask(value)
	}

	cursor := " "
	if m.CursorOn {
		cursor = "_"
	}

	line := prompt + " " + InputStyle.Render(value) + CursorStyle.Render(cursor)
	if m.RevealAvailable() {
		label := "[show]"
		if m.State.Reveal {
			label = "[hide]"
		}
		line += "  " + RevealStyle.Render(label)
	}
	return line
}

// View renders the terminal window inside the application container.
func (m TerminalModel) View() string {
	title := WindowTitleStyle.Render("● ● ●  " + WindowTitle)

	body := []string{title, "", m.viewport.View(), m.InputLine()}
	if hint := m.Hint(); hint != "" {
		style := HintStyle
		if hint == CancelHint {
			style = CancelHintStyle
		}
		body = append(body, "", style.Render(hint))
	}

	window := WindowStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
	return RenderApplicationContainer(window, m.help.View(m.keys), m.Width, m.Height)
}
