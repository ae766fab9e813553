// Package logging provides structured logging for the ZeroAPI terminal.
//
// This package wraps a zap logger with convenience functions for the
// logging patterns used by the terminal UI and the session server.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Every state transition, WebSocket frames (lengths only)
//   - Info: Sessions opened/closed, flows finished, server lifecycle
//   - Warn: Malformed client messages, dropped connections
//   - Error: Listener and configuration failures
//
// # Silent By Default
//
// The terminal UI owns the screen, so logging is disabled unless a level
// is given explicitly or ZEROAPI_LOG_LEVEL is set. When the UI is running,
// pass a file path so log lines never interleave with the rendered view:
//
//	if err := logging.Initialize("debug", "/tmp/zeroapi.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Secrets
//
// Collected field values are never passed to the logger. Transition logs
// carry the field key only, and WebSocket logs carry payload lengths.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
