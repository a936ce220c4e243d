// Package config loads, normalizes, and validates Slate configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the daemon and CLI need: data/log directories, the API bind address, the
// production defaults used for the lazily created project, the target script
// line for alignment, and pipeline tuning such as progress-record retention.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
