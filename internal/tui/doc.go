// Package tui implements the interactive zeroapi screens with Bubble Tea.
//
// # Routes
//
// AppModel routes between two screens:
//
//   - "/"      LandingModel: navbar, banner and SDK code editor
//   - "/login" TerminalModel: the authentication terminal
//
// Unknown routes fall back to "/". Screens request navigation by returning
// a Navigate command; AppModel swaps the active screen and runs its Init.
//
// # Terminal Timing
//
// TerminalModel never sleeps. The terminal.Machine queues cosmetic delays
// as pending operations, and the model drives them with tea.Tick. Every
// tick carries the state's epoch; when a cancel or clear discards the
// queue the epoch changes and ticks already in flight are ignored.
//
// # Layout
//
// Every screen wraps its content with RenderApplicationContainer, which
// adds the header with the application name and version and a footer with
// the context-sensitive key help.
package tui
