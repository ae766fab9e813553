// Package landing renders the ZeroAPI landing page: the navigation bar and
// the hero banner with its simulated code editor.
//
// Rendering is pure. Every function takes a Styles value built from a
// lipgloss renderer, so the same page can be drawn in color inside the
// terminal UI and as plain ASCII text for HTTP clients:
//
//	r := lipgloss.NewRenderer(w)
//	r.SetColorProfile(termenv.Ascii)
//	fmt.Fprint(w, landing.Render(landing.NewStyles(r), landing.Page{Width: 100}))
//
// The SDK snippets shown in the editor are static display text.
package landing
