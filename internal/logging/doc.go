// Package logging assembles structured slog loggers and formatting helpers used
// across mkvbatch components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine and CLI code can tag
// log lines with the batch session and the file being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
