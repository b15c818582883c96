package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/chaosmap/internal/logging"
)

var (
	logLevel  string
	logFormat string
	dataDir   string
)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "chaosmap",
		Short:         "chaos classification of radiative-transfer maps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chaosmap", "run archive directory")

	rootCmd.AddCommand(
		newSampleCmd(),
		newSweepCmd(),
		newOrbitCmd(),
		newTrajectoryCmd(),
		newSeparationCmd(),
		newProfileCmd(),
		newSummaryCmd(),
		newRunsCmd(),
		newPresetsCmd(),
		newInitConfigCmd(),
		newBatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger honors --log-level when it was given and falls back to level.
func newLogger(cmd *cobra.Command, level string) (*zap.Logger, error) {
	if cmd.Flags().Changed("log-level") || level == "" {
		level = logLevel
	}
	return logging.New(logging.Config{Level: level, Format: logFormat})
}
