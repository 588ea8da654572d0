// Package config loads, normalizes, and validates karaokesync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the KARAOKESYNC_DISPLAY_MODE and
// KARAOKESYNC_HIGHLIGHT_STYLE environment overrides. Enum values are
// canonicalized to lowercase snake_case before validation.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical enum values, and clear validation errors.
package config
