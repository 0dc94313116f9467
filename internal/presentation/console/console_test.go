package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_PlainLines(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, ColorNever)

	c.Command("echo hello")
	c.Output("hello\n")
	c.Failure("ls nope: No such file or directory\n")
	c.Errorf("something went wrong")

	assert.Equal(t,
		"• echo hello\n"+
			"➜ hello\n\n"+
			"ls nope: No such file or directory\n\n"+
			"✘ unshell: something went wrong\n",
		buf.String())
}

func TestConsole_AutoIsPlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, ColorAuto)

	c.Command("echo OK")
	assert.Equal(t, "• echo OK\n", buf.String())
}

func TestConsole_Colors(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, ColorAlways)

	c.Errorf("Invalid SCRIPT_PATH")

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "✘")
	assert.Contains(t, out, " unshell: Invalid SCRIPT_PATH\n")
}
