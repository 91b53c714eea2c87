// Package scan models the metadata a media inspector reports for a Matroska
// file and runs inspections for many files at once.
//
// A File is identified by Key, its cleaned absolute path, lower-cased on
// platforms whose filesystems are case-insensitive by default. Tracks keep
// their inspector order; StreamKindID is the stable 0-based ordinal of a track
// within its type and is the join key used by the editing engine.
package scan
