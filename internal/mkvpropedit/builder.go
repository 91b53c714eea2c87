package mkvpropedit

import (
	"fmt"
	"sort"
	"strings"

	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
)

// ErrMissingInput is returned by Build when no input file was set.
var ErrMissingInput = fmt.Errorf("%w: mkvpropedit: input file not set", services.ErrInvalidArgument)

var kindOrder = map[trackconfig.Kind]int{
	trackconfig.Video:    0,
	trackconfig.Audio:    1,
	trackconfig.Subtitle: 2,
}

// Builder accumulates the edits of one file.
type Builder struct {
	input    string
	title    string
	setTitle bool
	tracks   []*trackconfig.Track
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ForFile prepares a builder for one per-file configuration, including the
// batch title when it is marked for writing.
func ForFile(cfg *trackconfig.FileConfig, batch *trackconfig.Batch) *Builder {
	b := NewBuilder()
	if cfg == nil {
		return b
	}
	b.SetInput(cfg.Path)
	if batch != nil && batch.ModifyTitle {
		b.SetTitle(batch.Title)
	}
	for _, kind := range trackconfig.Kinds {
		for _, track := range cfg.TrackList(kind) {
			b.AddTrack(track)
		}
	}
	return b
}

// SetInput sets the file the arguments apply to.
func (b *Builder) SetInput(path string) *Builder {
	b.input = path
	return b
}

// SetTitle schedules a segment title change.
func (b *Builder) SetTitle(title string) *Builder {
	b.title = title
	b.setTitle = true
	return b
}

// AddTrack registers a slot. Slots without pending changes are ignored.
func (b *Builder) AddTrack(track *trackconfig.Track) *Builder {
	if track.Pending() {
		b.tracks = append(b.tracks, track)
	}
	return b
}

// IsEmpty reports whether there is nothing to write.
func (b *Builder) IsEmpty() bool {
	return !b.setTitle && len(b.tracks) == 0
}

// Build returns the argument array. The same builder state always yields
// the same array.
func (b *Builder) Build() ([]string, error) {
	if strings.TrimSpace(b.input) == "" {
		return nil, ErrMissingInput
	}
	args := []string{Quote(b.input)}
	if b.setTitle {
		args = append(args, "--edit", "info", "--set", "title="+Quote(b.title))
	}

	tracks := append([]*trackconfig.Track(nil), b.tracks...)
	sort.SliceStable(tracks, func(i, j int) bool {
		if tracks[i].Kind != tracks[j].Kind {
			return kindOrder[tracks[i].Kind] < kindOrder[tracks[j].Kind]
		}
		return tracks[i].Index < tracks[j].Index
	})
	for _, track := range tracks {
		args = append(args, "--edit", "track:"+track.Selector())
		if track.ModifyLanguage {
			args = append(args, "--set", "language="+Quote(track.Language.Code()))
		}
		if track.ModifyName {
			args = append(args, "--set", "name="+Quote(track.Name))
		}
		if track.ModifyDefault {
			args = append(args, "--set", "flag-default="+flag(track.Default))
		}
		if track.ModifyForced {
			args = append(args, "--set", "flag-forced="+flag(track.Forced))
		}
		if track.ModifyEnabled {
			args = append(args, "--set", "flag-enabled="+flag(track.Enabled))
		}
	}
	return args, nil
}

// Quote wraps value in double quotes, escaping embedded quotes.
func Quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

func flag(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

// Argv strips the preview quoting from args so they can be handed to the
// process directly.
func Argv(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, unquote(arg))
	}
	return out
}

func unquote(arg string) string {
	if isQuoted(arg) {
		return unescape(arg)
	}
	if key, value, found := strings.Cut(arg, "="); found && isQuoted(value) {
		return key + "=" + unescape(value)
	}
	return arg
}

func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

func unescape(s string) string {
	return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
}
