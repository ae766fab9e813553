package terminal

import (
	"strings"
	"time"
)

// DefaultIdentity is the user@host shown in front of echoed commands.
const DefaultIdentity = "user@zeroAPI"

// Timing holds the cosmetic delays between an event and the transcript
// lines it produces.
type Timing struct {
	FirstPrompt time.Duration // after "login"/"signup", before the first prompt
	NextPrompt  time.Duration // after a collected value, before the next prompt
	Result      time.Duration // after the last value, before the result lines
	Clear       time.Duration // after "clear", before the transcript is wiped
	Welcome     time.Duration // after a wipe, before the welcome lines
}

// DefaultTiming returns the delays used by the interactive terminal.
func DefaultTiming() Timing {
	return Timing{
		FirstPrompt: 500 * time.Millisecond,
		NextPrompt:  300 * time.Millisecond,
		Result:      500 * time.Millisecond,
		Clear:       500 * time.Millisecond,
		Welcome:     100 * time.Millisecond,
	}
}

// OpKind is the kind of a pending transcript operation.
type OpKind int

const (
	OpAppend  OpKind = iota // append Entry
	OpClear                 // wipe the transcript and reset the flow
	OpWelcome               // append the welcome lines
)

// Pending is a transcript operation waiting for its delay to elapse.
// Delay is measured from the moment the previous operation ran.
type Pending struct {
	Delay time.Duration
	Op    OpKind
	Entry Entry
}

// State is a complete terminal session. Treat it as a value: Machine
// methods return modified copies and never mutate their argument.
type State struct {
	Mode       Mode
	Step       int
	Fields     map[string]string
	Transcript []Entry
	Pending    []Pending

	// Epoch is bumped whenever pending operations are discarded.
	Epoch int
	// Wipes counts how many times the transcript has been cleared.
	Wipes int
	// Reveal shows the live secret input in clear. It never affects the
	// transcript, which always masks secret values.
	Reveal bool

	// Last describes what the most recent Apply or Advance did.
	Last Outcome
}

// Event is an input to Machine.Apply.
type Event interface {
	isEvent()
}

// Submit is a line entered by the user.
type Submit struct {
	Line string
}

// Cancel aborts the active flow (Ctrl+C).
type Cancel struct{}

// ToggleReveal flips the visibility of the live secret input.
type ToggleReveal struct{}

// Clear wipes the transcript immediately, from any mode.
type Clear struct{}

func (Submit) isEvent()       {}
func (Cancel) isEvent()       {}
func (ToggleReveal) isEvent() {}
func (Clear) isEvent()        {}

// Machine applies events to states. It only holds configuration, so a
// single Machine can drive any number of sessions.
type Machine struct {
	Timing   Timing
	Identity string
}

// NewMachine creates a machine with the given timing and the default
// identity.
func NewMachine(timing Timing) *Machine {
	return &Machine{
		Timing:   timing,
		Identity: DefaultIdentity,
	}
}

// CommandPrompt is the shell prompt shown in welcome mode.
func (m *Machine) CommandPrompt() string {
	return m.Identity + ":~$"
}

// Start returns a fresh session in welcome mode.
func (m *Machine) Start() State {
	return State{
		Mode:       ModeWelcome,
		Transcript: welcomeEntries(),
	}
}

// Apply returns the state that results from ev.
func (m *Machine) Apply(s State, ev Event) State {
	s = s.clone()
	s.Last = Outcome{}

	switch ev := ev.(type) {
	case Submit:
		if strings.TrimSpace(ev.Line) == "" {
			return s
		}
		if s.Mode == ModeWelcome {
			return m.command(s, ev.Line)
		}
		return m.collect(s, ev.Line)

	case Cancel:
		if s.Mode == ModeWelcome {
			return s
		}
		mode := s.Mode
		s.dropPending()
		s.Transcript = append(s.Transcript, info("^C"), info("Operation cancelled"))
		s.resetFlow()
		s.Last = Outcome{Kind: OutcomeCancelled, Mode: mode}

	case ToggleReveal:
		if s.Mode != ModeWelcome {
			s.Reveal = !s.Reveal
		}

	case Clear:
		s.dropPending()
		s.wipe()
		s.Pending = append(s.Pending, Pending{Delay: m.Timing.Welcome, Op: OpWelcome})
		s.Last = Outcome{Kind: OutcomeCleared}
	}

	return s
}

// command interprets a line typed in welcome mode.
func (m *Machine) command(s State, line string) State {
	action := Interpret(line)
	s.Transcript = append(s.Transcript, Entry{
		Category: CategoryCommand,
		Text:     m.CommandPrompt() + " " + line,
	})
	s.Last = Outcome{Kind: OutcomeCommand, Action: action}

	switch action {
	case ActionClear:
		s.Pending = append(s.Pending, Pending{Delay: m.Timing.Clear, Op: OpClear})

	case ActionHelp:
		for _, line := range HelpLines {
			s.Transcript = append(s.Transcript, info(line))
		}

	case ActionLogin, ActionSignup:
		mode := ModeLogin
		if action == ActionSignup {
			mode = ModeSignup
		}
		s.Mode = mode
		s.Step = 0
		s.Fields = make(map[string]string)
		s.Reveal = false
		s.Transcript = append(s.Transcript,
			info("Starting "+flowTitle(mode)+" process..."),
			info("Press Ctrl+C to cancel at any time"),
		)
		s.schedule(m.Timing.FirstPrompt, prompt(Fields(mode)[0]))
		s.Last.Mode = mode

	default:
		s.Transcript = append(s.Transcript,
			failure("Command not found: "+line),
			info("Type 'help' for available commands"),
		)
	}

	return s
}

// collect stores a value for the current field of the active flow.
func (m *Machine) collect(s State, value string) State {
	fields := Fields(s.Mode)
	field := fields[s.Step]

	s.Transcript = append(s.Transcript, Entry{
		Category: CategoryInput,
		Text:     field.Prompt + " " + field.Display(value),
	})
	s.Fields[field.Key] = value

	if s.Step < len(fields)-1 {
		s.Step++
		s.schedule(m.Timing.NextPrompt, prompt(fields[s.Step]))
		s.Last = Outcome{Kind: OutcomeCollected, Mode: s.Mode, Key: field.Key}
		return s
	}

	return m.complete(s)
}

// complete evaluates the finished flow. The password confirmation is
// compared against the password collected earlier in this same flow.
func (m *Machine) complete(s State) State {
	mode := s.Mode
	collected := s.Fields
	s.resetFlow()

	if mode == ModeSignup && collected[KeyConfirmPassword] != collected[KeyPassword] {
		s.schedule(m.Timing.Result, failure("Passwords do not match. Please try again."))
		s.schedule(0, info("Type 'signup' to restart or 'clear' to start over"))
		s.Last = Outcome{Kind: OutcomeMismatch, Mode: mode}
		return s
	}

	who := collected[KeyName]
	if who == "" {
		who = collected[KeyEmail]
	}

	title, greeting := "Login", "Welcome back, "
	if mode == ModeSignup {
		title, greeting = "Account creation", "Welcome to zeroAPI, "
	}

	s.schedule(m.Timing.Result, Entry{Category: CategorySuccess, Text: title + " successful!"})
	s.schedule(0, info(greeting+who+"!"))
	s.Last = Outcome{Kind: OutcomeSucceeded, Mode: mode}
	return s
}

// Due reports the delay before the next pending operation should run.
func (m *Machine) Due(s State) (time.Duration, bool) {
	if len(s.Pending) == 0 {
		return 0, false
	}
	return s.Pending[0].Delay, true
}

// Advance runs the next pending operation, together with any operations
// queued right behind it with a zero delay.
func (m *Machine) Advance(s State) State {
	if len(s.Pending) == 0 {
		return s
	}
	s = s.clone()
	s.Last = Outcome{}

	for first := true; len(s.Pending) > 0 && (first || s.Pending[0].Delay == 0); first = false {
		p := s.Pending[0]
		s.Pending = s.Pending[1:]

		switch p.Op {
		case OpAppend:
			s.Transcript = append(s.Transcript, p.Entry)
		case OpClear:
			// Anything queued behind the wipe belongs to the old screen.
			s.dropPending()
			s.wipe()
			s.Pending = append(s.Pending, Pending{Delay: m.Timing.Welcome, Op: OpWelcome})
		case OpWelcome:
			s.Transcript = append(s.Transcript, welcomeEntries()...)
		}
	}

	if len(s.Pending) == 0 {
		s.Pending = nil
	}
	return s
}

// Flush runs every pending operation without waiting.
func (m *Machine) Flush(s State) State {
	for len(s.Pending) > 0 {
		s = m.Advance(s)
	}
	return s
}

// CurrentField returns the field awaiting input, if a flow is active.
func (m *Machine) CurrentField(s State) (Field, bool) {
	fields := Fields(s.Mode)
	if s.Step < 0 || s.Step >= len(fields) {
		return Field{}, false
	}
	return fields[s.Step], true
}

// Prompt returns the text shown in front of the live input line.
func (m *Machine) Prompt(s State) string {
	if field, ok := m.CurrentField(s); ok {
		return field.Prompt
	}
	return m.CommandPrompt()
}

// Masked reports whether the live input should be hidden.
func (m *Machine) Masked(s State) bool {
	field, ok := m.CurrentField(s)
	return ok && field.Kind == KindSecret && !s.Reveal
}

func prompt(f Field) Entry {
	return Entry{Category: CategoryPrompt, Text: f.Prompt}
}

func (s *State) schedule(delay time.Duration, e Entry) {
	s.Pending = append(s.Pending, Pending{Delay: delay, Op: OpAppend, Entry: e})
}

func (s *State) dropPending() {
	s.Pending = nil
	s.Epoch++
}

func (s *State) resetFlow() {
	s.Mode = ModeWelcome
	s.Step = 0
	s.Fields = nil
	s.Reveal = false
}

func (s *State) wipe() {
	s.Transcript = nil
	s.Wipes++
	s.resetFlow()
}

func (s State) clone() State {
	if s.Fields != nil {
		fields := make(map[string]string, len(s.Fields))
		for k, v := range s.Fields {
			fields[k] = v
		}
		s.Fields = fields
	}
	s.Transcript = append([]Entry(nil), s.Transcript...)
	s.Pending = append([]Pending(nil), s.Pending...)
	return s
}
