// Package mediainfo inspects media files with the mediainfo CLI and converts
// its JSON report into scan.File values.
//
// Inspection runs `mediainfo --Full --Output=JSON`. Track objects are decoded
// loosely because MediaInfo mixes string fields with nested "extra" objects.
package mediainfo
