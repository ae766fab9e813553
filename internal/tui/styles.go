package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zeroapi/zeroapi/internal/terminal"
	"github.com/zeroapi/zeroapi/internal/urls"
	"github.com/zeroapi/zeroapi/internal/version"
)

// Application branding constants
const (
	AppName     = "ZEROAPI"
	WindowTitle = "terminal@zeroAPI"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Color palette
var (
	PrimaryColor = lipgloss.Color("#0168FA") // Blue
	BorderColor  = lipgloss.Color("#0168FA")
	TextColor    = lipgloss.Color("#F9FAFB") // White
	SubtleColor  = lipgloss.Color("#6B7280") // Gray

	// Transcript colors
	GreenColor  = lipgloss.Color("#4ADE80")
	RedColor    = lipgloss.Color("#F87171")
	BlueColor   = lipgloss.Color("#60A5FA")
	PurpleColor = lipgloss.Color("#C084FC")
	GreyColor   = lipgloss.Color("#9CA3AF")
	YellowColor = lipgloss.Color("#FACC15")
)

var (
	// Window chrome around the terminal
	WindowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	WindowTitleStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	InputStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	FlowPromptStyle = lipgloss.NewStyle().
			Foreground(PurpleColor)

	CommandPromptStyle = lipgloss.NewStyle().
				Foreground(GreenColor)

	CursorStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(YellowColor)

	CancelHintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	RevealStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

var categoryStyles = map[terminal.Category]lipgloss.Style{
	terminal.CategoryCommand: lipgloss.NewStyle().Foreground(GreenColor),
	terminal.CategorySuccess: lipgloss.NewStyle().Foreground(GreenColor),
	terminal.CategoryError:   lipgloss.NewStyle().Foreground(RedColor),
	terminal.CategoryInput:   lipgloss.NewStyle().Foreground(BlueColor),
	terminal.CategoryPrompt:  lipgloss.NewStyle().Foreground(PurpleColor),
	terminal.CategoryInfo:    lipgloss.NewStyle().Foreground(GreyColor),
}

// RenderEntry renders a transcript line in its category color.
func RenderEntry(e terminal.Entry) string {
	style, ok := categoryStyles[e.Category]
	if !ok {
		style = categoryStyles[terminal.CategoryInfo]
	}
	return style.Render(e.Text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(urls.GitHub)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return HelpStyle.Render(helpText)
}

// RenderApplicationContainer wraps a screen with the application header and
// a help footer, filling the terminal. Before the first tea.WindowSizeMsg
// (width or height of zero) the content is returned with the footer only.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth <= 4 || terminalHeight <= 2 {
		return lipgloss.JoinVertical(lipgloss.Left, content, BuildFooterContent(footerText))
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// chromeHeight is the number of lines the container adds around content:
// outer border, header with its rule and footer with its rule.
const chromeHeight = 2 + 2 + 2
