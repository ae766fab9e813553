package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way commands should output styled content.
type Printer struct {
	out     io.Writer
	width   int
	profile termenv.Profile
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:     w,
		width:   GetTerminalWidth(),
		profile: termenv.NewOutput(w).Profile,
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Styled reports whether the writer supports colors.
func (p *Printer) Styled() bool {
	return p.profile != termenv.Ascii
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintLogo prints the ZeroAPI wordmark
func (p *Printer) PrintLogo() {
	p.Newline()
	p.Print(RenderLogo(p.profile))
	p.Newline()
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params []Param) {
	p.Println(RenderHeader(title, command, params, p.width))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details []Param) {
	p.Println(RenderSuccessBox(title, details, p.width))
}

// PrintWarning prints a warning box
func (p *Printer) PrintWarning(title string, warnings []string) {
	p.Println(RenderWarningBox(title, warnings, p.width))
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(RenderErrorBox(title, err, troubleshooting, p.width))
}

// PrintMarkdown renders and prints a markdown document
func (p *Printer) PrintMarkdown(markdown string) error {
	out, err := RenderMarkdown(markdown, p.width, p.Styled())
	if err != nil {
		return err
	}
	p.Print(out)
	return nil
}
