// Package config loads, normalizes, and validates the TOML configuration
// for the retune CLI.
package config
