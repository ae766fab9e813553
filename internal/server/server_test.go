package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/terminal"
)

// wireMessage is the union of all server messages.
type wireMessage struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Mode     string `json:"mode"`
	Prompt   string `json:"prompt"`
	Secret   bool   `json:"secret"`
	Reveal   bool   `json:"reveal"`
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(&Config{}, terminal.NewMachine(terminal.Timing{}))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.cancelSession()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/login"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil reads messages until match returns true and returns all of them.
func readUntil(t *testing.T, conn *websocket.Conn, match func(wireMessage) bool) []wireMessage {
	t.Helper()
	var msgs []wireMessage
	for {
		msg := read(t, conn)
		msgs = append(msgs, msg)
		if match(msg) {
			return msgs
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

func submit(t *testing.T, conn *websocket.Conn, line string) {
	t.Helper()
	send(t, conn, ClientMessage{Type: TypeSubmit, Line: line})
}

func entryText(text string) func(wireMessage) bool {
	return func(m wireMessage) bool {
		return m.Type == TypeEntry && m.Text == text
	}
}

func readWelcome(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	for _, line := range terminal.WelcomeLines {
		msg := read(t, conn)
		require.Equal(t, TypeEntry, msg.Type)
		require.Equal(t, line, msg.Text)
	}
	state := read(t, conn)
	require.Equal(t, TypeState, state.Type)
	assert.Equal(t, "welcome", state.Mode)
	assert.Equal(t, "user@zeroAPI:~$", state.Prompt)
}

func TestParseClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		want    terminal.Event
	}{
		{"submit", `{"type":"submit","line":"login"}`, false, terminal.Submit{Line: "login"}},
		{"cancel", `{"type":"cancel"}`, false, terminal.Cancel{}},
		{"reveal", `{"type":"reveal"}`, false, terminal.ToggleReveal{}},
		{"clear", `{"type":"clear"}`, false, terminal.Clear{}},
		{"unknown type", `{"type":"delete"}`, true, nil},
		{"missing type", `{"line":"x"}`, true, nil},
		{"not json", `login`, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseClientMessage([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ev, err := msg.Event()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestSessionLoginFlow(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "login")
	msgs := readUntil(t, conn, entryText("Enter your email:"))
	assert.Equal(t, "user@zeroAPI:~$ login", msgs[0].Text)
	assert.Equal(t, string(terminal.CategoryCommand), msgs[0].Category)

	var state wireMessage
	for _, m := range msgs {
		if m.Type == TypeState {
			state = m
		}
	}
	assert.Equal(t, "login", state.Mode)
	assert.Equal(t, "Enter your email:", state.Prompt)
	assert.False(t, state.Secret)

	submit(t, conn, "ada@example.com")
	msgs = readUntil(t, conn, entryText("Enter your password:"))
	assert.Contains(t, msgs, wireMessage{Type: TypeState, Mode: "login", Prompt: "Enter your password:", Secret: true})

	submit(t, conn, "hunter2")
	msgs = readUntil(t, conn, func(m wireMessage) bool {
		return m.Type == TypeEntry && strings.Contains(m.Text, "ada@example.com")
	})
	for _, m := range msgs {
		assert.NotContains(t, m.Text, "hunter2", "secret leaked to the client")
	}
	assert.Contains(t, msgs, wireMessage{Type: TypeEntry, Category: "input", Text: "Enter your password: *******"})
	assert.Contains(t, msgs, wireMessage{Type: TypeEntry, Category: "success", Text: "Login successful!"})

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.CommandsTotal.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.FlowsTotal.WithLabelValues("login", "succeeded")))
	assert.Equal(t, 1, srv.ActiveSessions())
}

func TestSessionSignupMismatch(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "signup")
	readUntil(t, conn, entryText("Enter your name:"))
	submit(t, conn, "Ada")
	readUntil(t, conn, entryText("Enter your email:"))
	submit(t, conn, "ada@example.com")
	readUntil(t, conn, entryText("Enter your password:"))
	submit(t, conn, "abc")
	readUntil(t, conn, entryText("Confirm your password:"))
	submit(t, conn, "xyz")

	msgs := readUntil(t, conn, entryText("Type 'signup' to restart or 'clear' to start over"))
	assert.Contains(t, msgs, wireMessage{Type: TypeEntry, Category: "error", Text: "Passwords do not match. Please try again."})
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.FlowsTotal.WithLabelValues("signup", "mismatch")))
}

func TestSessionCancel(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "signup")
	readUntil(t, conn, entryText("Enter your name:"))

	send(t, conn, ClientMessage{Type: TypeCancel})
	msgs := readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeState })
	assert.Contains(t, msgs, wireMessage{Type: TypeEntry, Category: "info", Text: "^C"})
	assert.Contains(t, msgs, wireMessage{Type: TypeEntry, Category: "info", Text: "Operation cancelled"})
	assert.Equal(t, "welcome", msgs[len(msgs)-1].Mode)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.FlowsTotal.WithLabelValues("signup", "cancelled")))
}

func TestSessionClearCommand(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "help")
	submit(t, conn, "clear")

	msgs := readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeClear })
	assert.Equal(t, "user@zeroAPI:~$ clear", msgs[len(msgs)-2].Text)

	for _, line := range terminal.WelcomeLines {
		msg := read(t, conn)
		assert.Equal(t, TypeEntry, msg.Type)
		assert.Equal(t, line, msg.Text)
	}
}

func TestSessionClearMessageMidFlow(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "login")
	readUntil(t, conn, entryText("Enter your email:"))

	send(t, conn, ClientMessage{Type: TypeClear})
	msg := read(t, conn)
	assert.Equal(t, TypeClear, msg.Type)

	msgs := readUntil(t, conn, entryText(terminal.WelcomeLines[len(terminal.WelcomeLines)-1]))
	var entries int
	for _, m := range msgs {
		if m.Type == TypeEntry {
			entries++
		}
		if m.Type == TypeState {
			assert.Equal(t, "welcome", m.Mode)
		}
	}
	assert.Equal(t, len(terminal.WelcomeLines), entries)
}

// A session whose writes fail must not leave its reader blocked on a
// message nobody will receive.
func TestSessionReaderReleasedAfterWriteFailure(t *testing.T) {
	machine := terminal.NewMachine(terminal.Timing{})
	metrics := NewMetrics(prometheus.NewRegistry())

	clientSent := make(chan struct{})
	released := make(chan bool, 1)
	runErr := make(chan error, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			runErr <- err
			return
		}
		defer conn.Close()

		<-clientSent
		// Reads keep working, every write fails.
		halfCloser, ok := conn.UnderlyingConn().(interface{ CloseWrite() error })
		if !ok {
			runErr <- io.ErrUnexpectedEOF
			return
		}
		if err := halfCloser.CloseWrite(); err != nil {
			runErr <- err
			return
		}

		sess := newSession("write-failure", conn, machine, metrics)
		runErr <- sess.run(context.Background())

		select {
		case <-sess.readDone:
			released <- true
		case <-time.After(2 * time.Second):
			released <- false
		}
	}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/login"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	submit(t, conn, "login")
	close(clientSent)

	select {
	case err := <-runErr:
		require.Error(t, err, "run should fail when the first write fails")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the write failure")
	}

	select {
	case ok := <-released:
		assert.True(t, ok, "reader goroutine still blocked after run returned")
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not report the reader state")
	}
}

func TestSessionRevealToggle(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "login")
	readUntil(t, conn, entryText("Enter your email:"))
	submit(t, conn, "ada@example.com")
	readUntil(t, conn, entryText("Enter your password:"))

	send(t, conn, ClientMessage{Type: TypeReveal})
	msg := read(t, conn)
	assert.Equal(t, wireMessage{Type: TypeState, Mode: "login", Prompt: "Enter your password:", Secret: true, Reveal: true}, msg)
}

func TestSessionIgnoresMalformedMessages(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, conn, map[string]string{"type": "explode"})
	submit(t, conn, "HELP")

	msgs := readUntil(t, conn, entryText(terminal.HelpLines[len(terminal.HelpLines)-1]))
	assert.Equal(t, "user@zeroAPI:~$ HELP", msgs[0].Text)
	assert.Equal(t, 2.0, testutil.ToFloat64(srv.metrics.RejectedTotal))
}

func TestSessionUnknownCommand(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readWelcome(t, conn)

	submit(t, conn, "rm -rf /")
	msgs := readUntil(t, conn, entryText("Type 'help' for available commands"))
	assert.Contains(t, msgs, wireMessage{Type: TypeEntry, Category: "error", Text: "Command not found: rm -rf /"})
}

func TestLandingPage(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	page := string(body)
	assert.NotContains(t, page, "\x1b[", "plain text must not carry escape sequences")
	for _, want := range []string{landing.Brand, landing.Headline, landing.CallToAction, "Features", "Login"} {
		assert.Contains(t, page, want)
	}
}

func TestLandingPageQuery(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/?lang=python")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	firstLine := strings.SplitN(landing.Snippet(landing.Python), "\n", 2)[0]
	assert.Contains(t, string(body), firstLine)

	for _, q := range []string{"?lang=cobol", "?width=abc", "?width=10"} {
		resp, err := http.Get(ts.URL + "/" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	var health healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Sessions)
	assert.NotEmpty(t, health.Build.Version)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `zeroapi_http_requests_total{code="200",route="/healthz"} 1`)
}

func TestServeShutdown(t *testing.T) {
	srv := New(&Config{}, terminal.NewMachine(terminal.Timing{}))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	url := "ws://" + listener.Addr().String() + "/login"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	readWelcome(t, conn)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "want going-away close, got %v", err)
	assert.Equal(t, 0, srv.ActiveSessions())
}

func TestConfigAddr(t *testing.T) {
	assert.Equal(t, ":8080", (&Config{Port: 8080}).Addr())
	assert.Equal(t, "127.0.0.1:9000", (&Config{Host: "127.0.0.1", Port: 9000}).Addr())
}
