package main

import (
	"context"
	"os"

	"github.com/aretw0/unshell/internal/cli"
	"github.com/aretw0/unshell/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "unshell COMMAND [SCRIPT_PATH] [ARGS...]",
	Short:         "Execute script through unshell runtime",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cli.PrintHelp(cmd.OutOrStdout())
	},
}

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Print this help message",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cli.PrintHelp(cmd.OutOrStdout())
	},
}

// Execute runs the root command until SIGINT or SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		cli.PrintHelp(cmd.OutOrStdout())
	})
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to the configuration file (default ./"+config.DefaultFile+")")
	flags.String("shell", "", "Shell used to run commands, e.g. \"bash -o pipefail -c\"")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("color", "", "Color mode: auto, always or never")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address during the run")
	flags.Duration("timeout", 0, "Abort the run after this duration")
}

// configureFromFlags applies the flags set on the command line over cfg.
func configureFromFlags(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		values := map[string]*string{
			"shell":        &cfg.Shell,
			"log-level":    &cfg.LogLevel,
			"log-format":   &cfg.LogFormat,
			"color":        &cfg.Color,
			"metrics-addr": &cfg.MetricsAddr,
		}
		for name, dst := range values {
			if flags.Changed(name) {
				*dst, _ = flags.GetString(name)
			}
		}
		if flags.Changed("timeout") {
			cfg.Timeout, _ = flags.GetDuration("timeout")
		}
	}
}
