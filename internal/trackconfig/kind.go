package trackconfig

import (
	"fmt"
	"strings"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
)

// Kind is an editable track kind.
type Kind int

const (
	Video Kind = iota
	Audio
	Subtitle
)

// Kinds lists every editable kind in output order.
var Kinds = []Kind{Video, Audio, Subtitle}

var kindNames = map[Kind]string{
	Video:    "Video",
	Audio:    "Audio",
	Subtitle: "Subtitle",
}

var kindScanTypes = map[Kind]scan.TrackType{
	Video:    scan.Video,
	Audio:    scan.Audio,
	Subtitle: scan.Text,
}

var kindPrefixes = map[Kind]string{
	Video:    "v",
	Audio:    "a",
	Subtitle: "s",
}

var scanTypeKinds = map[scan.TrackType]Kind{
	scan.Video: Video,
	scan.Audio: Audio,
	scan.Text:  Subtitle,
}

var kindAliases = map[string]Kind{
	"video":     Video,
	"v":         Video,
	"audio":     Audio,
	"a":         Audio,
	"subtitle":  Subtitle,
	"subtitles": Subtitle,
	"text":      Subtitle,
	"s":         Subtitle,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the editable kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ScanType returns the scanned track type backing k.
func (k Kind) ScanType() scan.TrackType {
	return kindScanTypes[k]
}

// Prefix returns the single-letter mkvpropedit selector prefix for k.
func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// KindOf maps a scanned track type onto its editable kind.
func KindOf(t scan.TrackType) (Kind, bool) {
	k, ok := scanTypeKinds[t]
	return k, ok
}

// ParseKind accepts kind names and selector prefixes, case-insensitively.
func ParseKind(value string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return k, nil
	}
	return 0, services.Wrap(services.ErrInvalidArgument, "trackconfig", "parse kind", fmt.Sprintf("unknown track kind %q", value), nil)
}

// MarshalText encodes k by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}
