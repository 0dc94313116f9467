package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth wraps rendered documents for a standard terminal.
const DefaultWidth = 80

// NewRenderer returns a function that renders markdown using glamour.
// Styled output detects a light or dark background; plain output uses the
// notty style, which keeps the layout without escape sequences.
func NewRenderer(styled bool, width int) (func(string) (string, error), error) {
	style := glamour.WithStandardStyle("notty")
	if styled {
		style = glamour.WithAutoStyle()
	}
	if width <= 0 {
		width = DefaultWidth
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
