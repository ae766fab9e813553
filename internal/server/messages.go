package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zeroapi/zeroapi/internal/terminal"
)

// Message types
const (
	TypeSubmit = "submit"
	TypeCancel = "cancel"
	TypeReveal = "reveal"
	TypeClear  = "clear"
	TypeEntry  = "entry"
	TypeState  = "state"
)

// ErrUnknownMessage is returned for a client message with an unknown type.
var ErrUnknownMessage = errors.New("unknown message type")

// ClientMessage is a message received from the browser or CLI client.
type ClientMessage struct {
	Type string `json:"type"`
	Line string `json:"line,omitempty"`
}

// Event converts the message to a terminal event.
func (m ClientMessage) Event() (terminal.Event, error) {
	switch m.Type {
	case TypeSubmit:
		return terminal.Submit{Line: m.Line}, nil
	case TypeCancel:
		return terminal.Cancel{}, nil
	case TypeReveal:
		return terminal.ToggleReveal{}, nil
	case TypeClear:
		return terminal.Clear{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}

// ParseClientMessage decodes a client frame.
func ParseClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("invalid message: %w", err)
	}
	if _, err := msg.Event(); err != nil {
		return ClientMessage{}, err
	}
	return msg, nil
}

// EntryMessage carries one transcript line.
type EntryMessage struct {
	Type     string            `json:"type"`
	Category terminal.Category `json:"category"`
	Text     string            `json:"text"`
}

// ClearMessage tells the client to drop its transcript.
type ClearMessage struct {
	Type string `json:"type"`
}

// StateMessage describes the live input line.
type StateMessage struct {
	Type   string        `json:"type"`
	Mode   terminal.Mode `json:"mode"`
	Prompt string        `json:"prompt"`
	Secret bool          `json:"secret"`
	Reveal bool          `json:"reveal"`
}

func newEntryMessage(e terminal.Entry) EntryMessage {
	return EntryMessage{Type: TypeEntry, Category: e.Category, Text: e.Text}
}

func newStateMessage(m *terminal.Machine, s terminal.State) StateMessage {
	field, ok := m.CurrentField(s)
	return StateMessage{
		Type:   TypeState,
		Mode:   s.Mode,
		Prompt: m.Prompt(s),
		Secret: ok && field.Kind == terminal.KindSecret,
		Reveal: s.Reveal,
	}
}
