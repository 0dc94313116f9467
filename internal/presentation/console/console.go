package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects whether marks are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Console prints the progress lines of a run:
//
//	• <command>
//	➜ <stdout>
//	<command>: <stderr>
//
// Only the leading marks are styled; the text is written untouched.
// It is safe for concurrent use, lines of a batch never interleave.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	profile termenv.Profile
}

// New creates a console writing to w.
func New(w io.Writer, mode ColorMode) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{out: w, profile: resolveProfile(w, mode)}
}

func resolveProfile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI
	case ColorNever:
		return termenv.Ascii
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return termenv.Ascii
	}
	return termenv.ANSI
}

func (c *Console) mark(s, color string) string {
	return c.profile.String(s).Foreground(c.profile.Color(color)).String()
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// Command announces a command about to run.
func (c *Console) Command(line string) {
	c.println(c.mark("•", "8") + " " + line)
}

// Output reports the stdout of a successful command.
func (c *Console) Output(stdout string) {
	c.println(c.mark("➜", "2") + " " + stdout)
}

// Failure reports a command that failed with stderr output.
func (c *Console) Failure(msg string) {
	c.println(msg)
}

// Cross returns the red failure mark.
func (c *Console) Cross() string {
	return c.mark("✘", "1")
}

// Errorf prints "✘ unshell: <message>".
func (c *Console) Errorf(format string, args ...any) {
	c.println(c.Cross() + " unshell: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Styled reports whether marks are written with ANSI colors.
func (c *Console) Styled() bool {
	return c.profile != termenv.Ascii
}
