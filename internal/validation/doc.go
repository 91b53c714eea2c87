// Package validation checks a batch for cross-file consistency.
//
// Run never mutates the batch and never fails: every finding is a Result
// tagged with the severity configured for its check. Whether an Error result
// blocks writing is the caller's decision; Blocking is provided for that.
//
// Severities are resolved from a strictness preset plus per-check overrides
// by ResolveSeverities. Keys are a check name ("language") or a kind-qualified
// check name ("audio.language"); the qualified key wins.
package validation
