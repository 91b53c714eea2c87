// Package rules derives initial slot values from scanned metadata.
//
// FileRules run per file in a fixed order: position first, because every
// later rule locates a per-file slot by the scanned ordinal the position rule
// writes. AggregateRules compute cross-file majority flags on the global
// slots and must only run once every file has been initialized. All rules are
// idempotent.
package rules
