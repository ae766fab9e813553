// Zeroapi is the ZeroAPI landing page and authentication terminal.
//
// It renders the landing page and the interactive login/signup terminal
// in the console, and can serve both over HTTP and WebSocket.
//
// Usage:
//
//	zeroapi [command] [flags]
//
// Running without arguments opens the landing page.
// See 'zeroapi --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeroapi/zeroapi/internal/config"
	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
	logFile    string
	startRoute string
)

// cfg is the effective configuration, loaded before any command runs.
var cfg *config.Config

// annotationTUI marks commands that take over the terminal.
const annotationTUI = "tui"

var rootCmd = &cobra.Command{
	Use:   "zeroapi",
	Short: "ZeroAPI landing page and authentication terminal",
	Long: `ZeroAPI in your terminal.

Opens the landing page with its SDK code editor. Press 'l' to open the
authentication terminal, where 'login' and 'signup' walk you through a
short prompt sequence.

If no command is specified, the landing page opens automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Annotations:       map[string]string{annotationTUI: "true"},
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(startRoute)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config dir, or $ZEROAPI_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); default is $ZEROAPI_LOG_LEVEL or silent")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stdout")
	rootCmd.Flags().StringVar(&startRoute, "route", "/", "Screen to open: / or /login")

	rootCmd.AddCommand(versionCmd)
}

// setup loads .env, initializes logging and loads the configuration.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	path := logFile
	if path == "" && cmd.Annotations[annotationTUI] == "true" {
		// stdout belongs to the TUI
		path = defaultTUILogFile()
	}
	if err := logging.Initialize(logLevel, path); err != nil {
		return err
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "zeroapi %s\n", version.Get())
	},
}
