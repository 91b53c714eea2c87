// Package language provides the language options a track can be assigned and
// the resolution of scanned language strings onto them.
//
// Every option carries its ISO 639-2 bibliographic and terminologic codes,
// ISO 639-1 and 639-3 codes, an English display name, and optionally a custom
// code. Resolution tests a scanned string against those fields in a fixed
// priority order and never returns an empty option: unmatched input resolves
// to Undetermined.
package language
