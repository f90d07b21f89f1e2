package ui

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TerminalNotifier prints notifications as styled one-line banners.
type TerminalNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Kind]lipgloss.Style
	body   lipgloss.Style
}

func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().Bold(true).Padding(0, 1)
	return &TerminalNotifier{
		w: w,
		styles: map[Kind]lipgloss.Style{
			KindSuccess: badge.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2E7D32")),
			KindError:   badge.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#C62828")),
			KindInfo:    badge.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1565C0")),
		},
		body: r.NewStyle().Faint(true),
	}
}

func (t *TerminalNotifier) Notify(_ context.Context, n Notification) {
	style, ok := t.styles[n.Kind]
	if !ok {
		style = t.styles[KindInfo]
	}

	line := style.Render(n.Title)
	if n.Body != "" {
		line += " " + t.body.Render(n.Body)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, line)
}
