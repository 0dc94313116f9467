package cli

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/aretw0/unshell/internal/presentation/tui"
)

//go:embed docs/scripting.md
var scriptingGuide string

// PrintDocs renders the scripting guide to w.
func PrintDocs(w io.Writer, styled bool, width int) error {
	render, err := tui.NewRenderer(styled, width)
	if err != nil {
		return err
	}
	out, err := render(scriptingGuide)
	if err != nil {
		return fmt.Errorf("failed to render guide: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
