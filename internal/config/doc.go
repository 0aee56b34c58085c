// Package config loads, normalizes, and validates tagmark configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and rejects label maps that would collide
// with the control keystrokes. The Config type centralizes every knob the CLI
// needs so downstream code receives sanitized paths and clear validation
// errors.
package config
