package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dice-group/tentris-license-aggregator/internal/infra/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var logFile string
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "licbom",
		Short:        "licbom builds a bill of licenses for a dependency graph",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := logger.Setup(logger.Config{
				Debug:  debug,
				File:   logFile,
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			cleanup = c
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging with source locations")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file instead of stderr")

	cmd.AddCommand(
		collectCmd(),
		classifyCmd(),
		minimizeCmd(),
		corpusCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
