// Package ffprobe provides a typed wrapper around ffprobe JSON output and
// converts it into scan.File values.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: codec, disposition and tags of a single stream
//
// Primary entry points:
//   - Inspector.Inspect: executes ffprobe and returns a scan.File
//   - Result.File: converts an already decoded report
//
// ffprobe has no container-level track, so File synthesizes a General track
// carrying the format title.
package ffprobe
