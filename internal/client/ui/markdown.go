package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

// MarkdownRenderer turns bot replies into terminal output. Replies are
// untrusted: HTML is stripped before the markdown is rendered.
type MarkdownRenderer struct {
	policy *bluemonday.Policy
	term   *glamour.TermRenderer
}

// NewMarkdownRenderer builds a renderer using the named glamour style
// ("dark", "light", "notty", ...) wrapping at width columns.
func NewMarkdownRenderer(style string, width int) (*MarkdownRenderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{policy: bluemonday.StrictPolicy(), term: term}, nil
}

// Sanitize removes all HTML from text.
func (m *MarkdownRenderer) Sanitize(text string) string {
	return strings.TrimSpace(m.policy.Sanitize(text))
}

// Render sanitizes and renders text. If rendering fails the sanitized
// markdown source is returned as is.
func (m *MarkdownRenderer) Render(text string) string {
	clean := m.Sanitize(text)
	out, err := m.term.Render(clean)
	if err != nil {
		return clean
	}
	return strings.TrimRight(out, "\n")
}
