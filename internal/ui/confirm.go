package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm displays a warning box and prompts the user to type answer to
// proceed. Returns true only when the typed line matches exactly.
func (p *Printer) Confirm(in io.Reader, title string, warnings []string, answer string) bool {
	p.PrintWarning(title, warnings)
	p.Newline()

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	p.Print(promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", answer)))

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		p.Newline()
		return false
	}

	if strings.TrimSpace(input) == answer {
		p.Newline()
		return true
	}

	p.Newline()
	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	p.Println(cancelStyle.Render("  Operation cancelled."))
	return false
}

// ConfirmOverwrite asks before replacing an existing file.
func (p *Printer) ConfirmOverwrite(in io.Reader, path string) bool {
	return p.Confirm(in,
		"FILE EXISTS",
		[]string{
			path + " already exists",
			"Its current contents will be replaced with defaults",
		},
		"yes",
	)
}
