package terminal

// Category tags a transcript entry for display.
type Category string

const (
	CategoryCommand Category = "command"
	CategoryInfo    Category = "info"
	CategoryError   Category = "error"
	CategorySuccess Category = "success"
	CategoryInput   Category = "input"
	CategoryPrompt  Category = "prompt"
)

// Entry is one line of the transcript. Entries are never edited after
// they have been appended.
type Entry struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

func info(text string) Entry    { return Entry{Category: CategoryInfo, Text: text} }
func failure(text string) Entry { return Entry{Category: CategoryError, Text: text} }

// WelcomeLines is the fixed banner shown at session start and after a clear.
var WelcomeLines = []string{
	"Welcome to zeroAPI authentication terminal",
	"Type 'login' to sign in or 'signup' to create an account",
	"Type 'clear' to clear the terminal",
	"Type 'help' for available commands",
	"Press Ctrl+C to cancel current operation",
}

// HelpLines is the output of the help command.
var HelpLines = []string{
	"Available commands:",
	"  login    - Start login process",
	"  signup   - Start signup process",
	"  clear    - Clear terminal",
	"  help     - Show this help message",
	"  Ctrl+C   - Cancel current operation",
}

func welcomeEntries() []Entry {
	entries := make([]Entry, len(WelcomeLines))
	for i, line := range WelcomeLines {
		entries[i] = info(line)
	}
	return entries
}
