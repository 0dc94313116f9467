package cli

import (
	"fmt"
	"io"
)

// HelpText is the usage message printed by help and by every unknown command.
const HelpText = `
Execute script through unshell runtime

Usage:
unshell COMMAND [SCRIPT_PATH] [ARGS...]

Commands:
help      Print this help message
run       run a script through unshell runtime
`

// PrintHelp writes the usage message followed by a newline.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, HelpText+"\n")
}
