package terminal

// OutcomeKind classifies what a transition did. Callers use it for
// logging and metrics; it never carries collected values.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeCommand
	OutcomeCollected
	OutcomeSucceeded
	OutcomeMismatch
	OutcomeCancelled
	OutcomeCleared
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCommand:
		return "command"
	case OutcomeCollected:
		return "collected"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeCleared:
		return "cleared"
	default:
		return "none"
	}
}

// Outcome describes the last transition.
type Outcome struct {
	Kind   OutcomeKind
	Action Action // set for OutcomeCommand
	Mode   Mode   // flow involved, if any
	Key    string // field key for OutcomeCollected
}

// Finished reports whether the outcome ended a flow.
func (o Outcome) Finished() bool {
	switch o.Kind {
	case OutcomeSucceeded, OutcomeMismatch, OutcomeCancelled:
		return true
	}
	return false
}
