package terminal

import (
	"strings"
	"unicode/utf8"
)

// Mode is the current interpretation mode of a session.
type Mode string

const (
	ModeWelcome Mode = "welcome"
	ModeLogin   Mode = "login"
	ModeSignup  Mode = "signup"
)

// Kind describes what sort of value a field collects.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindSecret
)

// String returns the HTML-style input type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmail:
		return "email"
	case KindSecret:
		return "password"
	default:
		return "text"
	}
}

// Field describes one step of a flow.
type Field struct {
	Prompt string
	Key    string
	Kind   Kind
}

// Field keys shared by the login and signup flows.
const (
	KeyName            = "name"
	KeyEmail           = "email"
	KeyPassword        = "password"
	KeyConfirmPassword = "confirmPassword"
)

var loginFields = []Field{
	{Prompt: "Enter your email:", Key: KeyEmail, Kind: KindEmail},
	{Prompt: "Enter your password:", Key: KeyPassword, Kind: KindSecret},
}

var signupFields = []Field{
	{Prompt: "Enter your name:", Key: KeyName, Kind: KindText},
	{Prompt: "Enter your email:", Key: KeyEmail, Kind: KindEmail},
	{Prompt: "Enter your password:", Key: KeyPassword, Kind: KindSecret},
	{Prompt: "Confirm your password:", Key: KeyConfirmPassword, Kind: KindSecret},
}

// Fields returns the ordered field descriptors for a flow mode, or nil for
// welcome. The returned slice must not be modified.
func Fields(mode Mode) []Field {
	switch mode {
	case ModeLogin:
		return loginFields
	case ModeSignup:
		return signupFields
	default:
		return nil
	}
}

// Mask hides a secret value behind one '*' per rune.
func Mask(value string) string {
	return strings.Repeat("*", utf8.RuneCountInString(value))
}

// Display returns how a collected value is echoed into the transcript.
func (f Field) Display(value string) string {
	if f.Kind == KindSecret {
		return Mask(value)
	}
	return value
}

// flowTitle is the noun used in the "Starting ... process" line.
func flowTitle(mode Mode) string {
	return string(mode)
}
