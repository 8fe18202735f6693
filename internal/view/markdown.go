package view

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps glamour.TermRenderer for the help and debug overlays,
// re-creating the renderer when the overlay width changes.
type MarkdownRenderer struct {
	renderer     *glamour.TermRenderer
	CurrentWidth int

	style string
}

// NewMarkdownRenderer creates a renderer for the given glamour style ("dark", "light", "notty" or a JSON style path).
func NewMarkdownRenderer(glamourStyle string) (*MarkdownRenderer, error) {
	md := MarkdownRenderer{
		style:        glamourStyle,
		CurrentWidth: 80,
	}
	if err := md.createNewRenderer(); err != nil {
		return nil, err
	}
	return &md, nil
}

// createNewRenderer creates or re-creates the glamour.TermRenderer, using the CurrentWidth and style fields.
func (md *MarkdownRenderer) createNewRenderer() error {
	renderer, err := glamour.NewTermRenderer(
		// glamour.WithAutoStyle() hangs on an ENOTTY while the TUI owns the terminal
		glamour.WithStylePath(md.style),
		glamour.WithEmoji(),
		glamour.WithWordWrap(md.CurrentWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	md.renderer = renderer
	return nil
}

// Render renders markdown for a given width. On failure the source is returned unchanged.
func (md *MarkdownRenderer) Render(markdown string, width int) string {
	if width != md.CurrentWidth && width > 0 {
		prev := md.CurrentWidth
		md.CurrentWidth = width
		if err := md.createNewRenderer(); err != nil {
			md.CurrentWidth = prev
			return markdown
		}
	}

	rendered, err := md.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
