// Package terminal implements the ZeroAPI authentication terminal as a
// pure state machine.
//
// A session is an explicit State value. Every keystroke-level event
// (submitting a line, cancelling, toggling the password reveal, clearing)
// is applied with Machine.Apply, which returns a new State and never
// mutates its input. Nothing here touches the network or disk.
//
// # Modes
//
// A session is always in one of three modes:
//   - welcome: lines are interpreted as commands (login, signup, clear, help)
//   - login: the two login fields are collected one per submitted line
//   - signup: the four signup fields are collected one per submitted line
//
// # Transcript and pending operations
//
// The transcript is an append-only list of categorized entries. Some
// entries are not shown immediately: prompts and results appear after a
// short, purely cosmetic delay. Instead of timers, the state carries a
// queue of pending operations. A scheduler (the Bubble Tea program, or the
// WebSocket session on the server) waits Pending[0].Delay and then calls
// Machine.Advance. Tests call Machine.Flush to drain the queue at once.
//
// Any reset that discards the queue bumps State.Epoch. A scheduler tags each
// tick with the epoch it was scheduled for and drops ticks whose epoch no
// longer matches.
//
// # Usage
//
//	m := terminal.NewMachine(terminal.DefaultTiming())
//	s := m.Start()
//	s = m.Apply(s, terminal.Submit{Line: "login"})
//	s = m.Flush(s)
//	fmt.Println(m.Prompt(s)) // "Enter your email:"
package terminal
