// Package config loads, normalizes, and validates cutter configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies CUTTER_* environment overrides.
// The Config type centralizes every knob the CLI and pipeline need, so the
// output folder, WhisperX options and ffmpeg settings are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
