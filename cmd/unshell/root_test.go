package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/unshell/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_PrintsHelp(t *testing.T) {
	want := cli.HelpText + "\n"

	cases := map[string][]string{
		"no command":         {},
		"help":               {"help"},
		"unknown command":    {"deploy", "now"},
		"run without script": {"run"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `^unshell version \S+\n$`, out)
}

func TestRun_InvalidScriptPath(t *testing.T) {
	out, err := execute(t, "run", "--color", "never", "script.txt", "--flag-for-script")
	require.ErrorIs(t, err, cli.ErrInvalidScriptPath)
	assert.Equal(t, "✘ unshell: Invalid SCRIPT_PATH\n", out)
}
