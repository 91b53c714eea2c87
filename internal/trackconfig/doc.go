// Package trackconfig holds the editable state of a batch: one slot per
// editable track, per-file slot lists sized to each file's scan, and a global
// slot list per kind that acts as the shared editing surface.
//
// Slot Index mirrors the scanned StreamKindID and is the join key between
// scan data, global slots and per-file slots. Edits made through Batch set
// the property's modify flag and propagate to every per-file slot at the same
// index; observers registered with Subscribe are told about every change.
//
// The package is not safe for concurrent mutation.
package trackconfig
