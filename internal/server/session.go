package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/terminal"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// session is one terminal driven over one WebSocket connection.
type session struct {
	id      string
	conn    *websocket.Conn
	machine *terminal.Machine
	metrics *Metrics

	state terminal.State

	// sent is how many transcript entries the client holds; wipes is the
	// state's wipe counter when they were sent.
	sent      int
	wipes     int
	lastState StateMessage
	stateSent bool

	timer      *time.Timer
	timerEpoch int

	// readDone is closed when readLoop returns.
	readDone chan struct{}
}

func newSession(id string, conn *websocket.Conn, machine *terminal.Machine, metrics *Metrics) *session {
	return &session{
		id:       id,
		conn:     conn,
		machine:  machine,
		metrics:  metrics,
		state:    machine.Start(),
		readDone: make(chan struct{}),
	}
}

// run drives the session until the client leaves or ctx ends. The reader
// goroutine is released when run returns; it exits once the connection
// is closed.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	inbound := make(chan ClientMessage)
	readErr := make(chan error, 1)
	go s.readLoop(ctx, inbound, readErr)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	defer s.stopTimer()

	if err := s.sync(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.close(websocket.CloseGoingAway, "server shutting down")
			return nil

		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)

		case msg := <-inbound:
			ev, err := msg.Event()
			if err != nil {
				continue
			}
			s.transition(s.machine.Apply(s.state, ev))
			if err := s.sync(); err != nil {
				return err
			}

		case <-s.timerC():
			s.timer = nil
			s.transition(s.machine.Advance(s.state))
			if err := s.sync(); err != nil {
				return err
			}

		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

// readLoop decodes client frames. Malformed messages are logged, counted
// and dropped.
func (s *session) readLoop(ctx context.Context, inbound chan<- ClientMessage, readErr chan<- error) {
	defer close(s.readDone)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}

		msg, err := ParseClientMessage(data)
		if err != nil {
			logging.Warn("Ignoring malformed message",
				zap.String("session", s.id),
				zap.Int("length", len(data)),
				zap.Error(err),
			)
			s.metrics.RejectedTotal.Inc()
			continue
		}
		logging.LogWebSocketMessage(s.id, "received", msg.Type, len(data))
		s.metrics.MessagesTotal.WithLabelValues("received", msg.Type).Inc()

		select {
		case inbound <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// transition installs a new state, records it and keeps the pending queue
// timer in step with the state's epoch.
func (s *session) transition(next terminal.State) {
	s.state = next
	logging.LogTransition(s.id, next.Last)
	s.metrics.Observe(next.Last)

	if s.timer != nil && s.timerEpoch != s.state.Epoch {
		s.stopTimer()
	}
	if s.timer == nil {
		if delay, ok := s.machine.Due(s.state); ok {
			s.timer = time.NewTimer(delay)
			s.timerEpoch = s.state.Epoch
		}
	}
}

func (s *session) timerC() <-chan time.Time {
	if s.timer == nil {
		return nil
	}
	return s.timer.C
}

func (s *session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// sync sends whatever the client has not seen yet: a clear after a wipe,
// new transcript entries and a changed input state.
func (s *session) sync() error {
	if s.state.Wipes != s.wipes {
		if err := s.send(TypeClear, ClearMessage{Type: TypeClear}); err != nil {
			return err
		}
		s.wipes = s.state.Wipes
		s.sent = 0
	}

	for ; s.sent < len(s.state.Transcript); s.sent++ {
		if err := s.send(TypeEntry, newEntryMessage(s.state.Transcript[s.sent])); err != nil {
			return err
		}
	}

	st := newStateMessage(s.machine, s.state)
	if !s.stateSent || st != s.lastState {
		if err := s.send(TypeState, st); err != nil {
			return err
		}
		s.lastState = st
		s.stateSent = true
	}
	return nil
}

func (s *session) send(kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", kind, err)
	}

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send %s message: %w", kind, err)
	}

	logging.LogWebSocketMessage(s.id, "sent", kind, len(data))
	s.metrics.MessagesTotal.WithLabelValues("sent", kind).Inc()
	return nil
}

func (s *session) close(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		logging.Debug("Failed to send close frame", zap.String("session", s.id), zap.Error(err))
	}
}
