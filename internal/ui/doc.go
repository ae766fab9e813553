// Package ui provides terminal output components for the zeroapi CLI.
//
// These components follow a "print once and exit" pattern. The interactive
// screens live in the tui package; everything here renders a string and
// writes it out.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Success/Error/Warning boxes: styled outcome summaries
//   - Markdown: glamour-rendered documents such as SDK snippets
//   - Logo: the ZeroAPI wordmark
//   - Confirm: a typed confirmation before overwriting files
//
// Printer writes all of them to an io.Writer so commands can be tested
// against a buffer.
//
// # Logging Integration
//
// Logging is controlled via the ZEROAPI_LOG_LEVEL environment variable.
// When unset or empty, zap logging is silent so the curated output here is
// displayed cleanly.
package ui
