package terminal

import "strings"

// Action is the outcome of interpreting a command line in welcome mode.
type Action int

const (
	ActionUnknown Action = iota
	ActionLogin
	ActionSignup
	ActionClear
	ActionHelp
)

// String returns the command keyword for the action.
func (a Action) String() string {
	switch a {
	case ActionLogin:
		return "login"
	case ActionSignup:
		return "signup"
	case ActionClear:
		return "clear"
	case ActionHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Interpret maps a command line to an action. Matching is exact after
// trimming surrounding whitespace and folding case.
func Interpret(line string) Action {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "login":
		return ActionLogin
	case "signup":
		return ActionSignup
	case "clear":
		return ActionClear
	case "help":
		return ActionHelp
	default:
		return ActionUnknown
	}
}
