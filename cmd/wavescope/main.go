// Command wavescope analyzes WAV files: amplitude and decibel levels,
// spectral peaks, harmonic structure and PNG charts. It works from the
// command line or through a browser dashboard (wavescope serve); run it
// without arguments for an interactive file picker.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/internal/logging"
)

var (
	configPath string
	verbose    bool
	jsonLogs   bool
)

var rootCmd = &cobra.Command{
	Use:   "wavescope",
	Short: "WAV analysis toolkit: levels, spectra, harmonics and charts",
	Long: `wavescope loads WAV files and computes amplitude statistics, decibel
levels, spectral shape and harmonic peaks, optionally after a zero-phase
Butterworth filter pass. Results come out as text reports, CSV exports
and PNG charts, from the command line or through the built-in browser
dashboard (wavescope serve).

Run without arguments to pick a file and an analysis interactively.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

// setup loads the configuration and wires logging and error reporting
// before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Path = configPath
	if _, err := config.Reload(); err != nil {
		return err
	}

	cfg := config.Get()
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if err := logging.Setup(cfg.Logging.Directory, level, jsonLogs || cfg.Logging.JsonLogs, cfg.Logging.Colors); err != nil {
		return err
	}

	if cfg.Sentry.Enabled() {
		logrus.Debug("Setting up Sentry for error reporting...")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.Dsn,
			Environment: cfg.Sentry.Environment,
			Debug:       cfg.Sentry.Debug,
		})
		if err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to wavescope.yaml (default: $WAVESCOPE_CONFIG, then ./wavescope.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Log as JSON")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(speedCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	err := rootCmd.Execute()
	sentry.Flush(2 * time.Second)

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
