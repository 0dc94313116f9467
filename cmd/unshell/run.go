package main

import (
	"github.com/aretw0/unshell/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT_PATH [ARGS...]",
	Short: "run a script through unshell runtime",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			cli.PrintHelp(cmd.OutOrStdout())
			return nil
		}
		configPath, _ := cmd.Flags().GetString("config")

		return cli.Run(cmd.Context(), cli.RunOptions{
			ScriptPath: args[0],
			Args:       args[1:],
			ConfigPath: configPath,
			Configure:  configureFromFlags(cmd),
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
		})
	},
}

func init() {
	// Everything after the script path belongs to the script.
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}
