package scan

import (
	"path/filepath"
	"runtime"
	"strings"
)

// TrackType is the kind of stream reported by an inspector.
type TrackType int

const (
	General TrackType = iota
	Video
	Audio
	Text
	Other
	Image
	Menu
)

var trackTypeNames = map[TrackType]string{
	General: "General",
	Video:   "Video",
	Audio:   "Audio",
	Text:    "Text",
	Other:   "Other",
	Image:   "Image",
	Menu:    "Menu",
}

// trackTypeAliases maps lower-cased inspector spellings onto track types.
// MediaInfo reports "@type" values; ffprobe reports codec_type values.
var trackTypeAliases = map[string]TrackType{
	"general":    General,
	"video":      Video,
	"audio":      Audio,
	"text":       Text,
	"subtitle":   Text,
	"other":      Other,
	"data":       Other,
	"attachment": Other,
	"image":      Image,
	"menu":       Menu,
}

var editableTypes = map[TrackType]bool{
	Video: true,
	Audio: true,
	Text:  true,
}

func (t TrackType) String() string {
	if name, ok := trackTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Editable reports whether tracks of this type carry editable properties.
func (t TrackType) Editable() bool {
	return editableTypes[t]
}

// ParseTrackType maps an inspector type string onto a TrackType. Unknown
// values are reported as Other.
func ParseTrackType(value string) TrackType {
	if t, ok := trackTypeAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return t
	}
	return Other
}

// Track is one scanned stream. It is never mutated after inspection.
type Track struct {
	Type          TrackType
	StreamKindID  int
	Position      string
	Language      string
	Format        string
	Title         string
	ChannelLayout string
	Default       bool
	Forced        bool
}

// File is the scan result for one path.
type File struct {
	Path   string
	Tracks []Track
}

// Key returns the identity of the file used for deduplication and for
// correlating per-file state.
func (f *File) Key() string {
	if f == nil {
		return ""
	}
	return Key(f.Path)
}

// TracksOf returns the tracks of the given type in scan order.
func (f *File) TracksOf(t TrackType) []Track {
	if f == nil {
		return nil
	}
	var out []Track
	for _, track := range f.Tracks {
		if track.Type == t {
			out = append(out, track)
		}
	}
	return out
}

// Count returns the number of tracks of the given type.
func (f *File) Count(t TrackType) int {
	if f == nil {
		return 0
	}
	n := 0
	for _, track := range f.Tracks {
		if track.Type == t {
			n++
		}
	}
	return n
}

// General returns the container-level track when the inspector reported one.
func (f *File) General() (Track, bool) {
	if f == nil {
		return Track{}, false
	}
	for _, track := range f.Tracks {
		if track.Type == General {
			return track, true
		}
	}
	return Track{}, false
}

var caseInsensitivePaths = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// Key normalizes path into a file identity.
func Key(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)
	if caseInsensitivePaths {
		path = strings.ToLower(path)
	}
	return path
}

// AssignStreamKindIDs numbers tracks 0-based within each type in scan order.
// Inspectors that do not report ordinals themselves call it after decoding.
func AssignStreamKindIDs(tracks []Track) {
	next := make(map[TrackType]int)
	for i := range tracks {
		tracks[i].StreamKindID = next[tracks[i].Type]
		next[tracks[i].Type]++
	}
}
