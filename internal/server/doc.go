// Package server serves the zeroapi terminal over HTTP and WebSocket.
//
// # Routes
//
//	GET /         plain-text landing page (?lang=python, ?width=100)
//	GET /login    WebSocket authentication terminal
//	GET /healthz  JSON health status
//	GET /metrics  Prometheus metrics
//
// # WebSocket Protocol
//
// Every connection owns one terminal session. Messages are JSON objects
// with a "type" field.
//
// Client to server:
//
//	{"type":"submit","line":"login"}
//	{"type":"cancel"}
//	{"type":"reveal"}
//	{"type":"clear"}
//
// Server to client:
//
//	{"type":"entry","category":"info","text":"..."}
//	{"type":"clear"}
//	{"type":"state","mode":"login","prompt":"Enter your email:","secret":false,"reveal":false}
//
// On connect the server sends the welcome entries and the initial state.
// Afterwards it sends each transcript line once, in order, as it appears.
// "clear" tells the client to drop its transcript; the entries that follow
// rebuild it. A "state" message is sent whenever the prompt, mode, secrecy
// or reveal flag changes. Malformed client messages are logged and ignored.
//
// # Session Model
//
// A session is driven by a single goroutine that selects over inbound
// messages and one timer for the pending transcript queue. No state is
// shared between sessions except the metrics.
//
// # Usage Example
//
//	srv := server.New(&server.Config{Port: 8080}, machine)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
package server
