package landing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CollapseWidth is the width below which the navigation links fold behind
// a menu toggle.
const CollapseWidth = 80

// Palette, matching the web brand colors.
var (
	PrimaryColor = lipgloss.Color("#0168FA")
	AccentColor  = lipgloss.Color("#3B82F6")
	MutedColor   = lipgloss.Color("#6B7280")
	TextColor    = lipgloss.Color("#F9FAFB")
	StatusColor  = lipgloss.Color("#C084FC")
	SuccessColor = lipgloss.Color("#16A34A")
)

// Styles holds every style used by the page, bound to one renderer.
type Styles struct {
	Logo       lipgloss.Style
	Badge      lipgloss.Style
	NavLink    lipgloss.Style
	NavAction  lipgloss.Style
	NavButton  lipgloss.Style
	NavBar     lipgloss.Style
	Headline   lipgloss.Style
	Subtitle   lipgloss.Style
	Editor     lipgloss.Style
	TabActive  lipgloss.Style
	TabIdle    lipgloss.Style
	LineNumber lipgloss.Style
	Keyword    lipgloss.Style
	Comment    lipgloss.Style
	String     lipgloss.Style
	Call       lipgloss.Style
	Plain      lipgloss.Style
	Muted      lipgloss.Style
	Status     lipgloss.Style
	Copied     lipgloss.Style
	CTA        lipgloss.Style
}

// NewStyles builds the page styles for a renderer. Pass
// lipgloss.DefaultRenderer() inside a terminal program.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Logo:       r.NewStyle().Foreground(PrimaryColor).Bold(true),
		Badge:      r.NewStyle().Foreground(TextColor).Background(PrimaryColor).Padding(0, 1),
		NavLink:    r.NewStyle().Foreground(MutedColor),
		NavAction:  r.NewStyle().Foreground(TextColor),
		NavButton:  r.NewStyle().Foreground(TextColor).Background(PrimaryColor).Padding(0, 1),
		NavBar:     r.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(MutedColor),
		Headline:   r.NewStyle().Foreground(TextColor).Bold(true),
		Subtitle:   r.NewStyle().Foreground(MutedColor),
		Editor:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(AccentColor).Padding(0, 1),
		TabActive:  r.NewStyle().Foreground(TextColor).Background(PrimaryColor).Bold(true).Padding(0, 1),
		TabIdle:    r.NewStyle().Foreground(MutedColor).Padding(0, 1),
		LineNumber: r.NewStyle().Foreground(MutedColor).Width(3).Align(lipgloss.Right).MarginRight(1),
		Keyword:    r.NewStyle().Foreground(AccentColor).Bold(true),
		Comment:    r.NewStyle().Foreground(MutedColor).Italic(true),
		String:     r.NewStyle().Foreground(AccentColor),
		Call:       r.NewStyle().Foreground(AccentColor),
		Plain:      r.NewStyle().Foreground(AccentColor),
		Muted:      r.NewStyle().Foreground(MutedColor),
		Status:     r.NewStyle().Foreground(StatusColor),
		Copied:     r.NewStyle().Foreground(SuccessColor),
		CTA:        r.NewStyle().Foreground(TextColor).Background(PrimaryColor).Bold(true).Padding(0, 3),
	}
}

// Page is the view state of the landing page.
type Page struct {
	Width    int
	Language Language
	MenuOpen bool
	Copied   bool
}

// Render draws the navigation bar followed by the banner.
func Render(st Styles, p Page) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderNavbar(st, p.Width, p.MenuOpen),
		"",
		RenderBanner(st, p),
	)
}

// RenderNavbar draws the navigation bar. Below CollapseWidth the section
// links are hidden behind a menu toggle and listed vertically when open.
func RenderNavbar(st Styles, width int, menuOpen bool) string {
	logo := st.Logo.Render(Brand) + " " + st.Badge.Render(Badge)

	if width < CollapseWidth {
		toggle := st.NavAction.Render("≡ menu")
		if menuOpen {
			toggle = st.NavAction.Render("✕ close")
		}
		bar := st.NavBar.Width(max(width, 1)).Render(spread(logo, toggle, width))
		if !menuOpen {
			return bar
		}
		var lines []string
		for _, l := range NavLinks {
			lines = append(lines, "  "+st.NavAction.Render(l.Label))
		}
		lines = append(lines,
			"  "+st.NavAction.Render(LoginLink.Label),
			"  "+st.NavButton.Render(GetStartedLink.Label),
		)
		return lipgloss.JoinVertical(lipgloss.Left, bar, strings.Join(lines, "\n"))
	}

	links := make([]string, len(NavLinks))
	for i, l := range NavLinks {
		links[i] = st.NavLink.Render(l.Label)
	}
	center := strings.Join(links, "   ")
	actions := st.NavAction.Render(LoginLink.Label) + "  " + st.NavButton.Render(GetStartedLink.Label)

	left := logo + "    " + center
	return st.NavBar.Width(width).Render(spread(left, actions, width))
}

// RenderBanner draws the headline, the code editor and the call to action.
func RenderBanner(st Styles, p Page) string {
	width := p.Width
	if width < 40 {
		width = 40
	}
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	editor := RenderEditor(st, p.Language, p.Copied, min(width, 90))

	return lipgloss.JoinVertical(lipgloss.Left,
		center(st.Headline.Render(Headline)),
		center(st.Subtitle.Render(Subtitle)),
		"",
		center(editor),
		"",
		center(st.CTA.Render(CallToAction)),
	)
}

// RenderEditor draws the simulated code editor for one language.
func RenderEditor(st Styles, lang Language, copied bool, width int) string {
	inner := width - 4 // border and padding

	var tabs []string
	for _, l := range Languages() {
		if l == lang {
			tabs = append(tabs, st.TabActive.Render(l.Label()))
		} else {
			tabs = append(tabs, st.TabIdle.Render(l.Label()))
		}
	}
	header := spread(strings.Join(tabs, " "), st.Muted.Render("★ "+Stars), inner)

	copyHint := st.Muted.Render("⧉ copy")
	if copied {
		copyHint = st.Copied.Render("✓ copied")
	}

	lines := strings.Split(Snippet(lang), "\n")
	code := make([]string, 0, len(lines)+1)
	code = append(code, lipgloss.PlaceHorizontal(inner, lipgloss.Right, copyHint))
	for i, line := range lines {
		code = append(code, st.LineNumber.Render(fmt.Sprintf("%d", i+1))+highlight(st, line))
	}

	footer := spread(st.Muted.Render(SDKVersion), st.Status.Render("● "+StatusLabel), inner)
	rule := st.Muted.Render(strings.Repeat("─", max(inner, 1)))

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		rule,
		strings.Join(code, "\n"),
		rule,
		footer,
	)
	return st.Editor.Width(width - 2).Render(body)
}

func highlight(st Styles, line string) string {
	switch Classify(line) {
	case ClassKeyword:
		return st.Keyword.Render(line)
	case ClassComment:
		return st.Comment.Render(line)
	case ClassString:
		return st.String.Render(line)
	case ClassCall:
		return st.Call.Render(line)
	default:
		return st.Plain.Render(line)
	}
}

// spread places left and right at the two ends of a line of width cells.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
