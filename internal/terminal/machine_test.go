package terminal

import (
	"strings"
	"testing"
	"time"
)

// submitAll submits each line and drains the pending queue after it.
func submitAll(m *Machine, s State, lines ...string) State {
	for _, line := range lines {
		s = m.Flush(m.Apply(s, Submit{Line: line}))
	}
	return s
}

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func lastEntries(s State, n int) []Entry {
	if len(s.Transcript) < n {
		return s.Transcript
	}
	return s.Transcript[len(s.Transcript)-n:]
}

func assertWelcomeOnly(t *testing.T, s State) {
	t.Helper()
	if s.Mode != ModeWelcome {
		t.Errorf("Mode = %q, want welcome", s.Mode)
	}
	if len(s.Transcript) != len(WelcomeLines) {
		t.Fatalf("transcript has %d lines, want %d: %q", len(s.Transcript), len(WelcomeLines), texts(s.Transcript))
	}
	for i, line := range WelcomeLines {
		if s.Transcript[i].Text != line || s.Transcript[i].Category != CategoryInfo {
			t.Errorf("transcript[%d] = %+v, want info %q", i, s.Transcript[i], line)
		}
	}
}

func TestStart(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := m.Start()

	assertWelcomeOnly(t, s)
	if len(s.Pending) != 0 {
		t.Errorf("fresh session has %d pending operations", len(s.Pending))
	}
	if m.Prompt(s) != "user@zeroAPI:~$" {
		t.Errorf("Prompt() = %q", m.Prompt(s))
	}
}

func TestCommandEcho(t *testing.T) {
	m := NewMachine(DefaultTiming())

	for _, line := range []string{"help", "  LOGIN ", "signup", "clear", "whoami"} {
		t.Run(line, func(t *testing.T) {
			s := m.Apply(m.Start(), Submit{Line: line})
			echo := s.Transcript[len(WelcomeLines)]
			if echo.Category != CategoryCommand {
				t.Errorf("echo category = %q, want command", echo.Category)
			}
			if echo.Text != "user@zeroAPI:~$ "+line {
				t.Errorf("echo text = %q", echo.Text)
			}
			if s.Last.Kind != OutcomeCommand || s.Last.Action != Interpret(line) {
				t.Errorf("Last = %+v", s.Last)
			}
		})
	}
}

func TestHelpCommand(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := m.Apply(m.Start(), Submit{Line: "help"})

	got := texts(lastEntries(s, len(HelpLines)))
	for i, line := range HelpLines {
		if got[i] != line {
			t.Errorf("help line %d = %q, want %q", i, got[i], line)
		}
	}
	if s.Mode != ModeWelcome {
		t.Errorf("Mode = %q after help", s.Mode)
	}
}

func TestUnknownCommand(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := m.Apply(m.Start(), Submit{Line: "Deploy now"})

	tail := lastEntries(s, 2)
	if tail[0].Category != CategoryError || tail[0].Text != "Command not found: Deploy now" {
		t.Errorf("error entry = %+v", tail[0])
	}
	if tail[1].Text != "Type 'help' for available commands" {
		t.Errorf("hint entry = %+v", tail[1])
	}
	if s.Mode != ModeWelcome {
		t.Errorf("Mode = %q", s.Mode)
	}
}

func TestBlankInputIgnored(t *testing.T) {
	m := NewMachine(DefaultTiming())

	for _, mode := range []string{"", "login", "signup"} {
		s := m.Start()
		if mode != "" {
			s = submitAll(m, s, mode)
		}
		before := len(s.Transcript)
		s = m.Apply(s, Submit{Line: "   \t"})
		if len(s.Transcript) != before {
			t.Errorf("%q: blank input changed transcript", mode)
		}
		if len(s.Pending) != 0 {
			t.Errorf("%q: blank input queued operations", mode)
		}
	}
}

func TestLoginFlow(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := m.Apply(m.Start(), Submit{Line: "login"})

	if s.Mode != ModeLogin || s.Step != 0 {
		t.Fatalf("after login: mode=%q step=%d", s.Mode, s.Step)
	}
	tail := texts(lastEntries(s, 2))
	if tail[0] != "Starting login process..." || tail[1] != "Press Ctrl+C to cancel at any time" {
		t.Errorf("start lines = %q", tail)
	}
	if d, ok := m.Due(s); !ok || d != 500*time.Millisecond {
		t.Errorf("Due() = %v, %v; want 500ms", d, ok)
	}

	s = m.Flush(s)
	if last := lastEntries(s, 1)[0]; last.Category != CategoryPrompt || last.Text != "Enter your email:" {
		t.Errorf("first prompt = %+v", last)
	}

	s = m.Apply(s, Submit{Line: "ada@example.com"})
	if got := lastEntries(s, 1)[0]; got.Category != CategoryInput || got.Text != "Enter your email: ada@example.com" {
		t.Errorf("input echo = %+v", got)
	}
	if s.Step != 1 || s.Fields[KeyEmail] != "ada@example.com" {
		t.Errorf("step=%d fields=%v", s.Step, s.Fields)
	}
	if d, _ := m.Due(s); d != 300*time.Millisecond {
		t.Errorf("next prompt delay = %v, want 300ms", d)
	}
	s = m.Flush(s)
	if !m.Masked(s) {
		t.Error("password input should be masked")
	}

	s = m.Apply(s, Submit{Line: "hunter2"})
	if s.Mode != ModeWelcome || len(s.Fields) != 0 {
		t.Errorf("after last field: mode=%q fields=%v", s.Mode, s.Fields)
	}
	if s.Last.Kind != OutcomeSucceeded || s.Last.Mode != ModeLogin {
		t.Errorf("Last = %+v", s.Last)
	}
	if got := lastEntries(s, 1)[0].Text; got != "Enter your password: *******" {
		t.Errorf("masked echo = %q", got)
	}

	s = m.Advance(s)
	if len(s.Pending) != 0 {
		t.Errorf("Advance left %d pending operations", len(s.Pending))
	}
	tail = texts(lastEntries(s, 2))
	if tail[0] != "Login successful!" || tail[1] != "Welcome back, ada@example.com!" {
		t.Errorf("result lines = %q", tail)
	}
	if lastEntries(s, 2)[0].Category != CategorySuccess {
		t.Error("result should be a success entry")
	}
}

func TestSignupFlow(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantKind OutcomeKind
		wantTail []string
	}{
		{
			name:     "matching passwords",
			password: "abc",
			confirm:  "abc",
			wantKind: OutcomeSucceeded,
			wantTail: []string{"Account creation successful!", "Welcome to zeroAPI, Ada!"},
		},
		{
			name:     "mismatched passwords",
			password: "abc",
			confirm:  "xyz",
			wantKind: OutcomeMismatch,
			wantTail: []string{"Passwords do not match. Please try again.", "Type 'signup' to restart or 'clear' to start over"},
		},
	}

	m := NewMachine(DefaultTiming())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := submitAll(m, m.Start(), "signup", "Ada", "ada@example.com", tt.password)
			if s.Mode != ModeSignup || s.Step != 3 {
				t.Fatalf("before confirmation: mode=%q step=%d", s.Mode, s.Step)
			}

			s = m.Apply(s, Submit{Line: tt.confirm})
			if s.Last.Kind != tt.wantKind {
				t.Errorf("Last.Kind = %v, want %v", s.Last.Kind, tt.wantKind)
			}
			if s.Mode != ModeWelcome || s.Step != 0 || len(s.Fields) != 0 {
				t.Errorf("not reset: mode=%q step=%d fields=%v", s.Mode, s.Step, s.Fields)
			}

			s = m.Flush(s)
			got := texts(lastEntries(s, 2))
			for i := range tt.wantTail {
				if got[i] != tt.wantTail[i] {
					t.Errorf("tail[%d] = %q, want %q", i, got[i], tt.wantTail[i])
				}
			}
		})
	}
}

func TestSignupRestartAfterMismatch(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := submitAll(m, m.Start(), "signup", "Ada", "ada@example.com", "abc", "xyz")
	s = submitAll(m, s, "signup", "Bob", "bob@example.com", "pw", "pw")

	if got := lastEntries(s, 1)[0].Text; got != "Welcome to zeroAPI, Bob!" {
		t.Errorf("greeting = %q", got)
	}
}

func TestClearFromAnyState(t *testing.T) {
	m := NewMachine(DefaultTiming())

	setups := map[string][]string{
		"fresh":             nil,
		"after help":        {"help"},
		"after unknown":     {"nope"},
		"after login":       {"login", "ada@example.com", "pw"},
		"after mismatch":    {"signup", "Ada", "a@b.c", "abc", "xyz"},
		"after two clears":  {"clear", "clear"},
		"mid-login (typed)": {"login"},
	}

	for name, lines := range setups {
		t.Run(name+"/command", func(t *testing.T) {
			s := submitAll(m, m.Start(), lines...)
			if s.Mode != ModeWelcome {
				s = m.Apply(s, Cancel{})
			}
			s = m.Flush(m.Apply(s, Submit{Line: "clear"}))
			assertWelcomeOnly(t, s)
		})

		t.Run(name+"/event", func(t *testing.T) {
			s := submitAll(m, m.Start(), lines...)
			s = m.Flush(m.Apply(s, Clear{}))
			assertWelcomeOnly(t, s)
			if len(s.Fields) != 0 {
				t.Errorf("fields survived clear: %v", s.Fields)
			}
		})
	}
}

func TestClearCommandIsDelayed(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := m.Apply(m.Start(), Submit{Line: "clear"})

	if len(s.Transcript) != len(WelcomeLines)+1 {
		t.Fatalf("clear should only echo before its delay, got %q", texts(s.Transcript))
	}
	if d, _ := m.Due(s); d != 500*time.Millisecond {
		t.Errorf("clear delay = %v", d)
	}

	s = m.Advance(s)
	if len(s.Transcript) != 0 || s.Wipes != 1 {
		t.Errorf("after wipe: %d lines, %d wipes", len(s.Transcript), s.Wipes)
	}
	if d, _ := m.Due(s); d != 100*time.Millisecond {
		t.Errorf("welcome delay = %v", d)
	}

	s = m.Advance(s)
	assertWelcomeOnly(t, s)
}

func TestClearSupersedesCommandsTypedDuringDelay(t *testing.T) {
	m := NewMachine(DefaultTiming())

	for _, next := range []string{"login", "signup", "help", "nope"} {
		t.Run(next, func(t *testing.T) {
			s := m.Apply(m.Start(), Submit{Line: "clear"})
			s = m.Apply(s, Submit{Line: next})
			epoch := s.Epoch

			s = m.Advance(s)
			if s.Epoch != epoch+1 {
				t.Errorf("wipe should bump Epoch to %d, got %d", epoch+1, s.Epoch)
			}
			if len(s.Pending) != 1 || s.Pending[0].Op != OpWelcome {
				t.Errorf("after wipe pending = %+v, want only the welcome lines", s.Pending)
			}

			s = m.Flush(s)
			assertWelcomeOnly(t, s)
			if m.Prompt(s) != "user@zeroAPI:~$" {
				t.Errorf("Prompt() = %q", m.Prompt(s))
			}
		})
	}
}

// Finishing or cancelling a flow only resets the flow; the history stays
// on screen until an explicit clear.
func TestFlowEndKeepsHistory(t *testing.T) {
	m := NewMachine(DefaultTiming())

	tests := []struct {
		name   string
		lines  []string
		cancel bool
		last   string
	}{
		{"login success", []string{"login", "ada@example.com", "pw"}, false, "Welcome back, ada@example.com!"},
		{"signup mismatch", []string{"signup", "Ada", "a@b.c", "abc", "xyz"}, false, "Type 'signup' to restart or 'clear' to start over"},
		{"cancel", []string{"login", "ada@example.com"}, true, "Operation cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := submitAll(m, m.Start(), tt.lines...)
			if tt.cancel {
				s = m.Flush(m.Apply(s, Cancel{}))
			}

			if s.Mode != ModeWelcome {
				t.Fatalf("Mode = %q, want welcome", s.Mode)
			}
			if s.Wipes != 0 {
				t.Errorf("Wipes = %d, transcript should not be wiped", s.Wipes)
			}
			got := texts(s.Transcript)
			if len(got) <= len(WelcomeLines) {
				t.Fatalf("transcript collapsed to %q", got)
			}
			for i, line := range WelcomeLines {
				if got[i] != line {
					t.Errorf("transcript[%d] = %q, want %q", i, got[i], line)
				}
			}
			if got[len(WelcomeLines)] != "user@zeroAPI:~$ "+tt.lines[0] {
				t.Errorf("command echo lost: %q", got[len(WelcomeLines)])
			}
			if got[len(got)-1] != tt.last {
				t.Errorf("last line = %q, want %q", got[len(got)-1], tt.last)
			}
		})
	}
}

func TestCancelMidFlow(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := submitAll(m, m.Start(), "signup")
	s = m.Apply(s, Submit{Line: "Ada"})
	epoch := s.Epoch

	if len(s.Pending) == 0 {
		t.Fatal("expected the next prompt to be pending")
	}

	s = m.Apply(s, Cancel{})
	if s.Mode != ModeWelcome || s.Step != 0 || len(s.Fields) != 0 {
		t.Errorf("cancel did not reset: mode=%q step=%d fields=%v", s.Mode, s.Step, s.Fields)
	}
	if s.Epoch != epoch+1 {
		t.Errorf("Epoch = %d, want %d", s.Epoch, epoch+1)
	}
	if len(s.Pending) != 0 {
		t.Errorf("cancel kept %d pending operations", len(s.Pending))
	}
	tail := texts(lastEntries(s, 2))
	if tail[0] != "^C" || tail[1] != "Operation cancelled" {
		t.Errorf("cancel lines = %q", tail)
	}
	if s.Last.Kind != OutcomeCancelled || s.Last.Mode != ModeSignup {
		t.Errorf("Last = %+v", s.Last)
	}

	flushed := m.Flush(s)
	if len(flushed.Transcript) != len(s.Transcript) {
		t.Errorf("superseded prompt still appeared: %q", texts(flushed.Transcript))
	}
}

func TestCancelInWelcomeIsNoop(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := m.Apply(m.Start(), Cancel{})

	assertWelcomeOnly(t, s)
	if s.Epoch != 0 {
		t.Errorf("Epoch = %d", s.Epoch)
	}
}

func TestSecretValuesNeverInTranscript(t *testing.T) {
	const password = "correct-horse-battery"
	m := NewMachine(DefaultTiming())

	s := submitAll(m, m.Start(), "signup", "Ada", "ada@example.com", password, password)
	s = submitAll(m, s, "login", "ada@example.com", password)

	masked := 0
	for _, e := range s.Transcript {
		if strings.Contains(e.Text, password) {
			t.Errorf("plaintext secret in transcript: %+v", e)
		}
		if strings.HasSuffix(e.Text, " "+Mask(password)) {
			masked++
		}
	}
	if masked != 3 {
		t.Errorf("found %d masked echoes, want 3", masked)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := submitAll(m, m.Start(), "signup", "Ada")
	before := len(s.Transcript)
	fields := len(s.Fields)

	_ = m.Apply(s, Submit{Line: "ada@example.com"})
	_ = m.Apply(s, Cancel{})
	_ = m.Advance(m.Apply(s, Clear{}))

	if len(s.Transcript) != before || len(s.Fields) != fields || s.Mode != ModeSignup {
		t.Errorf("input state changed: %d lines, fields=%v, mode=%q", len(s.Transcript), s.Fields, s.Mode)
	}
}

func TestFieldsStayWithinFlow(t *testing.T) {
	m := NewMachine(DefaultTiming())
	s := submitAll(m, m.Start(), "signup")

	for _, value := range []string{"Ada", "ada@example.com", "pw"} {
		s = submitAll(m, s, value)
		if s.Step < 0 || s.Step >= len(Fields(s.Mode)) {
			t.Fatalf("Step %d out of range for %q", s.Step, s.Mode)
		}
		allowed := map[string]bool{}
		for _, f := range Fields(s.Mode) {
			allowed[f.Key] = true
		}
		for key := range s.Fields {
			if !allowed[key] {
				t.Errorf("unexpected key %q", key)
			}
		}
	}
	if len(s.Fields) != 3 {
		t.Errorf("collected %d fields, want 3", len(s.Fields))
	}
}

func TestToggleReveal(t *testing.T) {
	m := NewMachine(DefaultTiming())

	s := m.Apply(m.Start(), ToggleReveal{})
	if s.Reveal {
		t.Error("reveal toggled in welcome mode")
	}

	s = submitAll(m, s, "login", "ada@example.com")
	if !m.Masked(s) {
		t.Fatal("password input should start masked")
	}
	s = m.Apply(s, ToggleReveal{})
	if m.Masked(s) {
		t.Error("reveal did not unmask the live input")
	}

	s = m.Apply(s, Submit{Line: "secret"})
	if s.Reveal {
		t.Error("reveal survived the end of the flow")
	}
	if got := lastEntries(s, 1)[0].Text; got != "Enter your password: ******" {
		t.Errorf("transcript not masked while revealed: %q", got)
	}
}

func TestZeroTimingFlushesInOneAdvance(t *testing.T) {
	m := NewMachine(Timing{})
	s := m.Apply(m.Start(), Submit{Line: "login"})

	s = m.Advance(s)
	if len(s.Pending) != 0 {
		t.Errorf("pending = %d", len(s.Pending))
	}
	if m.Prompt(s) != "Enter your email:" {
		t.Errorf("Prompt() = %q", m.Prompt(s))
	}
}

func TestCustomIdentity(t *testing.T) {
	m := NewMachine(DefaultTiming())
	m.Identity = "guest@zeroAPI"

	s := m.Apply(m.Start(), Submit{Line: "help"})
	if got := s.Transcript[len(WelcomeLines)].Text; got != "guest@zeroAPI:~$ help" {
		t.Errorf("echo = %q", got)
	}
}
