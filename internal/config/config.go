package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/terminal"
)

const (
	appName    = "zeroapi"
	configFile = "config.yaml"

	// CurrentVersion is the only configuration file version understood.
	CurrentVersion = 1
)

// Environment variable names.
const (
	EnvConfigPath = "ZEROAPI_CONFIG"
	EnvHost       = "ZEROAPI_HOST"
	EnvPort       = "ZEROAPI_PORT"
)

// ErrUnsupportedVersion is returned for configuration files written by a
// newer or older format.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// Config is the entire user configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Terminal TerminalConfig `yaml:"terminal"`
	Server   ServerConfig   `yaml:"server"`
	Landing  LandingConfig  `yaml:"landing"`
}

// TerminalConfig controls the authentication terminal. Delays are in
// milliseconds.
type TerminalConfig struct {
	Identity         string `yaml:"identity"`
	CursorBlinkMs    int    `yaml:"cursor_blink_ms"`
	FirstPromptMs    int    `yaml:"first_prompt_delay_ms"`
	NextPromptMs     int    `yaml:"next_prompt_delay_ms"`
	ResultMs         int    `yaml:"result_delay_ms"`
	ClearMs          int    `yaml:"clear_delay_ms"`
	WelcomeMs        int    `yaml:"welcome_delay_ms"`
	CopiedFeedbackMs int    `yaml:"copied_feedback_ms"`
}

// ServerConfig controls `zeroapi serve`.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	MDNS bool   `yaml:"mdns"`
}

// LandingConfig controls the landing page.
type LandingConfig struct {
	Language string `yaml:"language"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	t := terminal.DefaultTiming()
	return &Config{
		Version: CurrentVersion,
		Terminal: TerminalConfig{
			Identity:         terminal.DefaultIdentity,
			CursorBlinkMs:    600,
			FirstPromptMs:    int(t.FirstPrompt / time.Millisecond),
			NextPromptMs:     int(t.NextPrompt / time.Millisecond),
			ResultMs:         int(t.Result / time.Millisecond),
			ClearMs:          int(t.Clear / time.Millisecond),
			WelcomeMs:        int(t.Welcome / time.Millisecond),
			CopiedFeedbackMs: 2000,
		},
		Server: ServerConfig{
			Host: "",
			Port: 8080,
		},
		Landing: LandingConfig{
			Language: string(landing.JavaScript),
		},
	}
}

// Timing converts the configured delays for the terminal state machine.
func (c *Config) Timing() terminal.Timing {
	return terminal.Timing{
		FirstPrompt: ms(c.Terminal.FirstPromptMs),
		NextPrompt:  ms(c.Terminal.NextPromptMs),
		Result:      ms(c.Terminal.ResultMs),
		Clear:       ms(c.Terminal.ClearMs),
		Welcome:     ms(c.Terminal.WelcomeMs),
	}
}

// CursorBlink is the cursor toggle interval.
func (c *Config) CursorBlink() time.Duration {
	return ms(c.Terminal.CursorBlinkMs)
}

// CopiedFeedback is how long the editor shows its copy confirmation.
func (c *Config) CopiedFeedback() time.Duration {
	return ms(c.Terminal.CopiedFeedbackMs)
}

// Machine builds a terminal state machine from the configuration.
func (c *Config) Machine() *terminal.Machine {
	m := terminal.NewMachine(c.Timing())
	if c.Terminal.Identity != "" {
		m.Identity = c.Terminal.Identity
	}
	return m
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 0 and 65535, got %d", c.Server.Port)
	}
	for name, v := range map[string]int{
		"cursor_blink_ms":       c.Terminal.CursorBlinkMs,
		"first_prompt_delay_ms": c.Terminal.FirstPromptMs,
		"next_prompt_delay_ms":  c.Terminal.NextPromptMs,
		"result_delay_ms":       c.Terminal.ResultMs,
		"clear_delay_ms":        c.Terminal.ClearMs,
		"welcome_delay_ms":      c.Terminal.WelcomeMs,
		"copied_feedback_ms":    c.Terminal.CopiedFeedbackMs,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if _, err := landing.ParseLanguage(c.Landing.Language); err != nil {
		return fmt.Errorf("landing: %w", err)
	}
	return nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/zeroapi or $HOME/.config/zeroapi
//   - macOS: $HOME/.config/zeroapi (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\zeroapi
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file, honoring
// ZEROAPI_CONFIG.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadEnv loads a .env file from the working directory into the process
// environment. Variables that are already set win. A missing file is fine.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads the configuration at path (or the default location when path
// is empty), applies environment overrides and validates the result. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if cfg.Version != CurrentVersion {
			return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, cfg.Version, CurrentVersion)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if host, ok := os.LookupEnv(EnvHost); ok {
		c.Server.Host = host
	}
	if port := os.Getenv(EnvPort); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, port, err)
		}
		c.Server.Port = n
	}
	return nil
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# ZeroAPI Terminal Configuration
# Delays are in milliseconds. Nothing typed into the terminal is stored here.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Exists reports whether a configuration file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
