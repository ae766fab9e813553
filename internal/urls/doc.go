// Package urls provides centralized constants for the links shown on the
// ZeroAPI landing page and in CLI output.
//
// Section anchors mirror the landing page navigation. They are relative
// fragments so the same values work in the terminal UI and in the
// plain-text page served over HTTP.
//
// Usage:
//
//	import "github.com/zeroapi/zeroapi/internal/urls"
//
//	fmt.Printf("Source: %s\n", urls.GitHub)
package urls
