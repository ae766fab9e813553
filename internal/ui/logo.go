package ui

import (
	"strings"

	"github.com/muesli/termenv"
)

var logoLines = []string{
	" _____                   _    ____ ___ ",
	"|__  /___ _ __ ___      / \\  |  _ \\_ _|",
	"  / // _ \\ '__/ _ \\    / _ \\ | |_) | | ",
	" / /|  __/ | | (_) |  / ___ \\|  __/| | ",
	"/____\\___|_|  \\___/  /_/   \\_\\_|  |___|",
}

// Blue to violet, one stop per line.
var logoColors = []string{"#0168FA", "#2563EB", "#3B82F6", "#6366F1", "#8B5CF6"}

// RenderLogo renders the ZeroAPI wordmark using the given color profile.
// termenv.Ascii yields plain text.
func RenderLogo(p termenv.Profile) string {
	var b strings.Builder
	for i, line := range logoLines {
		b.WriteString(termenv.String(line).Foreground(p.Color(logoColors[i])).String())
		b.WriteString("\n")
	}
	return b.String()
}
