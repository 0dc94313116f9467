package main

import (
	"os"

	"github.com/aretw0/unshell/internal/cli"
	"github.com/aretw0/unshell/internal/presentation/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print the scripting guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := cli.LoadConfig(cli.RunOptions{ConfigPath: configPath, Configure: configureFromFlags(cmd)})
		if err != nil {
			return err
		}
		out := console.New(cmd.OutOrStdout(), console.ColorMode(cfg.Color))

		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
		return cli.PrintDocs(cmd.OutOrStdout(), out.Styled(), width)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
