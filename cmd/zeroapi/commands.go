package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zeroapi/zeroapi/internal/config"
	"github.com/zeroapi/zeroapi/internal/discovery"
	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/server"
	"github.com/zeroapi/zeroapi/internal/tui"
	"github.com/zeroapi/zeroapi/internal/ui"
)

// Command flags
var (
	serveHost   string
	servePort   int
	serveMDNS   bool
	snippetLang string
	snippetRaw  bool
	scanTimeout int
	forceInit   bool
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snippetCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func defaultTUILogFile() string {
	return filepath.Join(os.TempDir(), "zeroapi.log")
}

// loginCmd opens the authentication terminal
var loginCmd = &cobra.Command{
	Use:         "login",
	Short:       "Open the authentication terminal",
	Annotations: map[string]string{annotationTUI: "true"},
	Long: `Open the interactive authentication terminal.

Type 'login' or 'signup' to start a flow, 'help' for the command list and
'clear' to reset the screen. Ctrl+C cancels a flow, Ctrl+R shows or hides
a password while typing it, Ctrl+D quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(string(tui.RouteLogin))
	},
}

func runTUI(route string) error {
	lang, err := landing.ParseLanguage(cfg.Landing.Language)
	if err != nil {
		return err
	}

	opts := tui.DefaultOptions()
	opts.Machine = cfg.Machine()
	opts.CursorBlink = cfg.CursorBlink()
	opts.CopiedFeedback = cfg.CopiedFeedback()
	opts.Language = lang

	model := tui.NewAppModel(tui.ParseRoute(route), opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// serveCmd starts the HTTP/WebSocket server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page and terminal over HTTP",
	Long: `Start the ZeroAPI HTTP server.

GET /        plain-text landing page (?lang=python, ?width=100)
GET /login   WebSocket authentication terminal
GET /healthz health status
GET /metrics Prometheus metrics

With --mdns the server advertises itself on the local network so
'zeroapi scan' can find it.`,
	Example: `  # Serve on the configured port (default 8080)
  zeroapi serve

  # Loopback only, with debug logging
  zeroapi serve --host 127.0.0.1 --port 9000 --log-level debug

  # Advertise on the local network
  zeroapi serve --mdns`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Listen port")
	serveCmd.Flags().BoolVar(&serveMDNS, "mdns", false, "Advertise the server via mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mdns") {
		cfg.Server.MDNS = serveMDNS
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lang, err := landing.ParseLanguage(cfg.Landing.Language)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("ZeroAPI Server", "zeroapi serve", []ui.Param{
		{Key: "Address", Value: cfg.Addr()},
		{Key: "Terminal", Value: "ws://" + displayAddr(cfg) + "/login"},
		{Key: "mDNS", Value: fmt.Sprintf("%v", cfg.Server.MDNS)},
	})

	srv := server.New(&server.Config{
		Host:     cfg.Server.Host,
		Port:     cfg.Server.Port,
		MDNS:     cfg.Server.MDNS,
		Language: lang,
	}, cfg.Machine())

	if err := srv.Start(); err != nil {
		p.PrintError("Server stopped", err, []string{
			"Check that the port is free or choose another with --port",
			"Ports below 1024 need elevated privileges",
		})
		return err
	}
	return nil
}

func displayAddr(c *config.Config) string {
	host := c.Server.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, c.Server.Port)
}

// snippetCmd prints the SDK example
var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Print the SDK example from the landing page",
	Example: `  # JavaScript (default)
  zeroapi snippet

  # Python, without formatting, to paste into a file
  zeroapi snippet --lang python --raw > example.py`,
	RunE: runSnippet,
}

func init() {
	snippetCmd.Flags().StringVar(&snippetLang, "lang", "", "Language: javascript or python (default from config)")
	snippetCmd.Flags().BoolVar(&snippetRaw, "raw", false, "Print the code only, without formatting")
}

func runSnippet(cmd *cobra.Command, args []string) error {
	name := snippetLang
	if name == "" {
		name = cfg.Landing.Language
	}
	lang, err := landing.ParseLanguage(name)
	if err != nil {
		return err
	}

	code := landing.Snippet(lang)
	out := cmd.OutOrStdout()
	if snippetRaw {
		_, err := fmt.Fprint(out, code)
		return err
	}

	doc := fmt.Sprintf("# %s\n\n```%s\n%s```\n", lang.Label()+" example", lang, code)
	return ui.NewPrinter(out).PrintMarkdown(doc)
}

// scanCmd finds zeroapi servers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find zeroapi servers on the local network",
	Long: `Browse mDNS for servers started with 'zeroapi serve --mdns'.`,
	Example: `  # Scan for 5 seconds (default)
  zeroapi scan

  # Longer scan for busy networks
  zeroapi scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for zeroapi servers (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	instances, err := scanner.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Fprintln(out, "No servers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start a server with 'zeroapi serve --mdns'")
		fmt.Fprintln(out, "  - Ensure both machines share a network segment")
		fmt.Fprintln(out, "  - Allow UDP port 5353 through the firewall")
		fmt.Fprintln(out, "  - Try increasing --timeout")
		return nil
	}

	fmt.Fprintf(out, "Found %d server(s):\n\n", len(instances))
	for i, inst := range instances {
		fmt.Fprintf(out, "%d. %s\n", i+1, inst.Name)
		fmt.Fprintf(out, "   Landing:  %s\n", inst.BaseURL())
		fmt.Fprintf(out, "   Terminal: %s\n", inst.LoginURL())
		if v := inst.Version(); v != "" {
			fmt.Fprintf(out, "   Version:  %s\n", v)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// configCmd groups configuration file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if config.Exists(path) && !forceInit {
		if !p.ConfirmOverwrite(cmd.InOrStdin(), path) {
			return nil
		}
	}

	defaults := config.Default()
	if err := defaults.Save(path); err != nil {
		return err
	}
	p.PrintSuccess("Configuration written", ui.Params(map[string]string{
		"Path":     path,
		"Port":     strconv.Itoa(defaults.Server.Port),
		"Language": defaults.Landing.Language,
		"Identity": defaults.Terminal.Identity,
	}))
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the file and environment
overrides have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
