// Package config handles loading and parsing Larder's configuration file.
//
// # Overview
//
// This package reads Larder's TOML configuration to discover the WholeFood
// Labs API endpoint and the client log location. Only the fields the client
// actually consumes are parsed.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/larder/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/larder/config.toml
//   - API base URL: https://api.wholefoodlabs.com
//   - Log directory: ~/.local/share/larder
//   - Client log: <log_dir>/larder.log
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "https://api.wholefoodlabs.com"
//	log_dir = "~/.local/share/larder"
//
// Both fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows Larder to work out-of-the-box without configuration.
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. Larder should work
// immediately against the hosted API without requiring any configuration file
// to exist.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
