// Package preflight provides readiness checks run before a batch touches
// any file.
//
// These checks run in two contexts:
//   - "mkvbatch check" reports every tool dependency and its version.
//   - "mkvbatch apply" refuses to start when mkvpropedit is missing or when
//     any target file cannot be written in place.
//
// The scanning backend that is not selected in config is reported as optional.
package preflight
