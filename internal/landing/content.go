package landing

import (
	"fmt"
	"strings"

	"github.com/zeroapi/zeroapi/internal/urls"
)

// Link is a navigation entry.
type Link struct {
	Label  string
	Target string
}

// NavLinks are the section links of the navigation bar.
var NavLinks = []Link{
	{Label: "Features", Target: urls.Features},
	{Label: "Use Cases", Target: urls.UseCases},
	{Label: "AI Agents", Target: urls.Agents},
	{Label: "Pricing", Target: urls.Pricing},
	{Label: "Docs", Target: urls.Docs},
}

// Action links shown on the right of the navigation bar.
var (
	LoginLink      = Link{Label: "Login", Target: urls.Login}
	GetStartedLink = Link{Label: "Get Started", Target: urls.GetStarted}
)

// Banner copy.
const (
	Brand        = "ZeroAPI"
	Badge        = "beta"
	Headline     = "If it's code, show how it works"
	Subtitle     = "Show why ZeroAPI is better — with real working examples."
	Stars        = "1,234"
	SDKVersion   = "ZeroAPI SDK v0.0.1"
	StatusLabel  = "Under Development"
	CallToAction = "Get Started Free"
)

// Language identifies an SDK snippet.
type Language string

const (
	JavaScript Language = "javascript"
	Python     Language = "python"
)

// Languages returns the editor tabs in display order.
func Languages() []Language {
	return []Language{JavaScript, Python}
}

// Label is the tab caption.
func (l Language) Label() string {
	switch l {
	case Python:
		return "Python"
	default:
		return "JavaScript"
	}
}

// Next returns the tab to the right, wrapping around.
func (l Language) Next() Language {
	langs := Languages()
	for i, lang := range langs {
		if lang == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}

// Prev returns the tab to the left, wrapping around.
func (l Language) Prev() Language {
	langs := Languages()
	for i, lang := range langs {
		if lang == l {
			return langs[(i+len(langs)-1)%len(langs)]
		}
	}
	return langs[0]
}

// ParseLanguage accepts a language name case-insensitively. The empty
// string selects JavaScript.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "javascript", "js":
		return JavaScript, nil
	case "python", "py":
		return Python, nil
	default:
		return "", fmt.Errorf("unknown language %q (expected javascript or python)", s)
	}
}

// Snippet returns the SDK example for a language.
func Snippet(l Language) string {
	if l == Python {
		return pythonSnippet
	}
	return javascriptSnippet
}

const javascriptSnippet = `import { initializeSDK } from "zeroapi-sdk";

const app = initializeSDK({
  apiKey: "sk_live_abc123",
  environment: "production"
});

// Generate AI response with streaming
const response = await app.generateAIResponse({
  model: "gpt-4",
  messages: [
    { role: "user", content: "Hello, world!" }
  ],
  stream: true
});

console.log(response.data);`

const pythonSnippet = `from zeroapi import initialize_sdk
import asyncio

# Initialize the SDK
app = initialize_sdk(
    api_key="sk_live_abc123",
    environment="production"
)

# Generate AI response with streaming
async def main():
    response = await app.generate_ai_response(
        model="gpt-4",
        messages=[
            {"role": "user", "content": "Hello, world!"}
        ],
        stream=True
    )
    
    print(response.data)

asyncio.run(main())`

// LineClass is the highlighting class of one snippet line.
type LineClass int

const (
	ClassPlain LineClass = iota
	ClassKeyword
	ClassComment
	ClassString
	ClassCall
)

// Classify picks the highlight for a whole line. The checks run in order,
// so an import line containing a quote is still a keyword line.
func Classify(line string) LineClass {
	switch {
	case strings.Contains(line, "import") || strings.Contains(line, "from"):
		return ClassKeyword
	case strings.Contains(line, "const") || strings.Contains(line, "def") || strings.Contains(line, "async"):
		return ClassKeyword
	case strings.Contains(line, "//") || strings.Contains(line, "#"):
		return ClassComment
	case strings.Contains(line, `"`):
		return ClassString
	case strings.Contains(line, "await") || strings.Contains(line, "console") || strings.Contains(line, "print"):
		return ClassCall
	default:
		return ClassPlain
	}
}
