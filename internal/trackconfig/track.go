package trackconfig

import (
	"strconv"

	"mkvbatch/internal/language"
	"mkvbatch/internal/scan"
)

// Property names an editable property, as reported to observers.
type Property string

const (
	PropertyLanguage Property = "language"
	PropertyName     Property = "name"
	PropertyDefault  Property = "default"
	PropertyForced   Property = "forced"
	PropertyEnabled  Property = "enabled"
	PropertyTitle    Property = "title"
	PropertyTracks   Property = "tracks"
)

// Resolver maps a scanned language string onto a language option.
type Resolver interface {
	Resolve(code string) language.Option
}

var defaultResolver Resolver = language.DefaultTable()

// Track is one editable slot. Each Modify flag gates whether the matching
// value is emitted as a change.
type Track struct {
	Kind     Kind
	Index    int
	Name     string
	Language language.Option
	Default  bool
	Forced   bool
	Enabled  bool

	ModifyLanguage bool
	ModifyName     bool
	ModifyDefault  bool
	ModifyForced   bool
	ModifyEnabled  bool
}

// NewTrack builds a slot from a scanned record. The language is resolved
// through resolver, or the built-in table when resolver is nil; modify flags
// start cleared.
func NewTrack(rec scan.Track, kind Kind, index int, resolver Resolver) *Track {
	if resolver == nil {
		resolver = defaultResolver
	}
	return &Track{
		Kind:     kind,
		Index:    index,
		Name:     rec.Title,
		Language: resolver.Resolve(rec.Language),
		Default:  rec.Default,
		Forced:   rec.Forced,
		Enabled:  true,
	}
}

func newEmptyTrack(kind Kind, index int) *Track {
	return &Track{
		Kind:     kind,
		Index:    index,
		Language: language.Undetermined,
		Enabled:  true,
	}
}

// Pending reports whether any modify flag is set.
func (t *Track) Pending() bool {
	if t == nil {
		return false
	}
	return t.ModifyLanguage || t.ModifyName || t.ModifyDefault || t.ModifyForced || t.ModifyEnabled
}

// copyAsserted writes each property t asserts onto dst and returns the
// properties it wrote.
func (t *Track) copyAsserted(dst *Track) []Property {
	var copied []Property
	if t.ModifyLanguage {
		dst.Language, dst.ModifyLanguage = t.Language, true
		copied = append(copied, PropertyLanguage)
	}
	if t.ModifyName {
		dst.Name, dst.ModifyName = t.Name, true
		copied = append(copied, PropertyName)
	}
	if t.ModifyDefault {
		dst.Default, dst.ModifyDefault = t.Default, true
		copied = append(copied, PropertyDefault)
	}
	if t.ModifyForced {
		dst.Forced, dst.ModifyForced = t.Forced, true
		copied = append(copied, PropertyForced)
	}
	if t.ModifyEnabled {
		dst.Enabled, dst.ModifyEnabled = t.Enabled, true
		copied = append(copied, PropertyEnabled)
	}
	return copied
}

// Selector returns the mkvpropedit track selector, e.g. "a2" for the second
// audio track.
func (t *Track) Selector() string {
	return t.Kind.Prefix() + strconv.Itoa(t.Index+1)
}
