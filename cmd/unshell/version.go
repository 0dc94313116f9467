package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/unshell"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of unshell",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "unshell version %s\n", strings.TrimSpace(unshell.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
