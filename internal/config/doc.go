// Package config provides user configuration for the ZeroAPI terminal.
//
// Configuration is a small versioned YAML file holding terminal timing,
// the prompt identity, server settings and the landing page defaults. The
// file follows OS-specific conventions for its location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/zeroapi/config.yaml or $HOME/.config/zeroapi/config.yaml
//   - macOS: $HOME/.config/zeroapi/config.yaml
//   - Windows: %LOCALAPPDATA%\zeroapi\config.yaml
//
// ZEROAPI_CONFIG overrides the location. A missing file is not an error:
// Load returns the defaults.
//
// # Environment
//
// LoadEnv reads a .env file from the working directory (if present) into
// the process environment. Environment variables then override file values:
//
//	ZEROAPI_CONFIG     path of the configuration file
//	ZEROAPI_HOST       server listen host
//	ZEROAPI_PORT       server listen port
//	ZEROAPI_LOG_LEVEL  log level (read by the logging package)
//
// # Security
//
// Nothing typed into the terminal is ever written here. The file only
// holds presentation and server settings.
package config
