package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/terminal"
)

// landingKeyMap defines key bindings for the landing page
type landingKeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Copy    key.Binding
	Menu    key.Binding
	Login   key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k landingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Copy, k.Menu, k.Login, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k landingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Copy},
		{k.Menu, k.Login, k.Quit},
	}
}

func newLandingKeyMap() landingKeyMap {
	return landingKeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "language"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "previous language"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "login"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// copiedResetMsg clears the copy confirmation. seq identifies the copy
// that scheduled it so an older reset cannot cut a newer one short.
type copiedResetMsg struct {
	seq int
}

// copyFailedMsg reports a clipboard error.
type copyFailedMsg struct {
	err error
}

// LandingModel is the landing page: navbar and banner with the SDK editor.
type LandingModel struct {
	Page   landing.Page
	Width  int
	Height int

	// CopyError is the last clipboard failure, shown in place of the
	// confirmation.
	CopyError error

	styles   landing.Styles
	viewport viewport.Model
	help     help.Model
	keys     landingKeyMap

	copySeq int
	opts    Options
}

// NewLandingModel creates the landing page.
func NewLandingModel(opts Options) LandingModel {
	opts = opts.withDefaults()
	return LandingModel{
		Page: landing.Page{
			Width:    landing.CollapseWidth,
			Language: opts.Language,
		},
		styles:    landing.NewStyles(lipgloss.DefaultRenderer()),
		viewport:  viewport.New(landing.CollapseWidth, 20),
		help:      help.New(),
		keys:      newLandingKeyMap(),
		opts:      opts,
	}
}

// Init implements tea.Model
func (m LandingModel) Init() tea.Cmd {
	return nil
}

// Update handles input for the landing page.
func (m LandingModel) Update(msg tea.Msg) (LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case copiedResetMsg:
		if msg.seq == m.copySeq {
			m.Page.Copied = false
		}
		return m, nil

	case copyFailedMsg:
		m.Page.Copied = false
		m.CopyError = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Login):
			return m, Navigate(RouteLogin)
		case key.Matches(msg, m.keys.NextTab):
			m.Page.Language = m.Page.Language.Next()
			m.Page.Copied = false
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.Page.Language = m.Page.Language.Prev()
			m.Page.Copied = false
			return m, nil
		case key.Matches(msg, m.keys.Menu):
			m.Page.MenuOpen = !m.Page.MenuOpen
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m.copySnippet()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// copySnippet places the active snippet on the clipboard and shows the
// confirmation until the reset tick arrives.
func (m LandingModel) copySnippet() (LandingModel, tea.Cmd) {
	snippet := landing.Snippet(m.Page.Language)
	if err := m.opts.Clipboard(snippet); err != nil {
		logging.Warn("Failed to copy snippet", zap.Error(err))
		return m, func() tea.Msg { return copyFailedMsg{err: err} }
	}

	m.copySeq++
	m.Page.Copied = true
	m.CopyError = nil
	seq := m.copySeq
	return m, tea.Tick(m.opts.CopiedFeedback, func(_ time.Time) tea.Msg {
		return copiedResetMsg{seq: seq}
	})
}

func (m *LandingModel) resize() {
	contentWidth := m.Width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.Page.Width = contentWidth
	m.viewport.Width = contentWidth

	height := m.Height - chromeHeight
	if height < 5 {
		height = 5
	}
	m.viewport.Height = height
	m.help.Width = contentWidth
}

// View renders the landing page
func (m LandingModel) View() string {
	content := landing.Render(m.styles, m.Page)
	if m.CopyError != nil {
		content += "\n" + categoryStyles[terminal.CategoryError].Render("copy failed: "+m.CopyError.Error())
	}
	if m.Width > 0 && m.Height > 0 {
		m.viewport.SetContent(content)
		content = m.viewport.View()
	}
	return RenderApplicationContainer(content, m.help.View(m.keys), m.Width, m.Height)
}
