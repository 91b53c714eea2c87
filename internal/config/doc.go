// Package config loads, normalizes, and validates mkvbatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MKVBATCH_MKVPROPEDIT. The Config type centralizes the external tool
// locations, scanning backend, validation strictness, custom language options,
// and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical names, and clear validation errors.
package config
