// Package services defines shared utilities consumed by the batch engine,
// its scanning and execution adapters, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp batch session IDs and the file currently being
//     processed for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures with errors.Is instead of string matching.
//
// Use these helpers when wiring new components so error reporting stays
// uniform across the engine and the tool adapters.
package services
