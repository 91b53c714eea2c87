package rules

import (
	"fmt"
	"strconv"
	"strings"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
)

// PositionRule copies each scanned ordinal into the per-file slot paired
// with it by scan order. Every paired record must carry a numeric position.
type PositionRule struct{}

func (PositionRule) Name() string { return "position" }

func (r PositionRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	cfg, err := fileConfig(r.Name(), file, batch)
	if err != nil {
		return err
	}
	for _, kind := range trackconfig.Kinds {
		slots := cfg.TrackList(kind)
		records := file.TracksOf(kind.ScanType())
		n := min(len(slots), len(records))
		for i := 0; i < n; i++ {
			position := strings.TrimSpace(records[i].Position)
			if _, err := strconv.Atoi(position); err != nil {
				return services.Wrap(services.ErrInvariant, "rules", r.Name(),
					fmt.Sprintf("file %q %s track %d: position %q is missing or not numeric", file.Path, kind, i, records[i].Position), nil)
			}
			slots[i].Index = records[i].StreamKindID
		}
	}
	return nil
}

// TitleRule copies the container title into the batch title.
type TitleRule struct{}

func (TitleRule) Name() string { return "title" }

func (TitleRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	if err := guard(file, batch); err != nil {
		return err
	}
	if general, ok := file.General(); ok {
		batch.Title = general.Title
	}
	return nil
}

var audioLayoutLabels = map[string]string{
	"c":                     "Mono",
	"m":                     "Mono",
	"mono":                  "Mono",
	"l r":                   "Stereo",
	"stereo":                "Stereo",
	"l r lfe":               "2.1",
	"2.1":                   "2.1",
	"l r c":                 "3.0",
	"3.0":                   "3.0",
	"l r c lfe":             "3.1",
	"3.1":                   "3.1",
	"l r ls rs":             "4.0",
	"quad":                  "4.0",
	"4.0":                   "4.0",
	"l r c ls rs":           "5.0",
	"5.0":                   "5.0",
	"5.0(side)":             "5.0",
	"l r c lfe ls rs":       "5.1",
	"l r c lfe lb rb":       "5.1",
	"5.1":                   "5.1",
	"5.1(side)":             "5.1",
	"l r c lfe ls rs cs":    "6.1",
	"l r c lfe lb rb cb":    "6.1",
	"6.1":                   "6.1",
	"l r c lfe ls rs lb rb": "7.1",
	"l r c lfe lb rb ls rs": "7.1",
	"7.1":                   "7.1",
	"7.1(wide)":             "7.1",
	"7.1(wide-side)":        "7.1",
}

// AudioNamingRule names audio slots "<channel label> <format>".
type AudioNamingRule struct{}

func (AudioNamingRule) Name() string { return "audio naming" }

func (r AudioNamingRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	cfg, err := fileConfig(r.Name(), file, batch)
	if err != nil {
		return err
	}
	eachRecord(file, cfg, trackconfig.Audio, func(rec scan.Track, slot *trackconfig.Track) {
		slot.Name = AudioName(rec.ChannelLayout, rec.Format)
	})
	return nil
}

// AudioName maps a channel layout to its label and joins it with format.
// Unknown layouts pass through unchanged.
func AudioName(layout, format string) string {
	layout = strings.TrimSpace(layout)
	format = strings.TrimSpace(format)
	if layout == "" {
		return format
	}
	label, ok := audioLayoutLabels[strings.ToLower(layout)]
	if !ok {
		label = layout
	}
	return strings.TrimSpace(label + " " + format)
}

var subtitleFormatLabels = map[string]string{
	"ssa":               "SSA / ASS",
	"ass":               "SSA / ASS",
	"srt":               "SubRip",
	"utf-8":             "SubRip",
	"subrip":            "SubRip",
	"webvtt":            "WebVTT",
	"pgs":               "PGS",
	"hdmv_pgs_subtitle": "PGS",
	"vobsub":            "VobSub",
	"dvd_subtitle":      "VobSub",
}

// SubtitleNamingRule names subtitle slots after their format. Unknown
// formats leave the slot untouched.
type SubtitleNamingRule struct{}

func (SubtitleNamingRule) Name() string { return "subtitle naming" }

func (r SubtitleNamingRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	cfg, err := fileConfig(r.Name(), file, batch)
	if err != nil {
		return err
	}
	eachRecord(file, cfg, trackconfig.Subtitle, func(rec scan.Track, slot *trackconfig.Track) {
		if label, ok := SubtitleLabel(rec.Format); ok {
			slot.Name = label
		}
	})
	return nil
}

// SubtitleLabel returns the display label of a subtitle format.
func SubtitleLabel(format string) (string, bool) {
	label, ok := subtitleFormatLabels[strings.ToLower(strings.TrimSpace(format))]
	return label, ok
}

// VideoNamingRule copies the scanned title into video slots.
type VideoNamingRule struct{}

func (VideoNamingRule) Name() string { return "video naming" }

func (r VideoNamingRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	cfg, err := fileConfig(r.Name(), file, batch)
	if err != nil {
		return err
	}
	eachRecord(file, cfg, trackconfig.Video, func(rec scan.Track, slot *trackconfig.Track) {
		slot.Name = rec.Title
	})
	return nil
}

// LanguageRule resolves scanned language strings onto slot languages.
type LanguageRule struct{}

func (LanguageRule) Name() string { return "language" }

func (r LanguageRule) Apply(file *scan.File, batch *trackconfig.Batch) error {
	cfg, err := fileConfig(r.Name(), file, batch)
	if err != nil {
		return err
	}
	resolver := batch.Resolver()
	for _, kind := range trackconfig.Kinds {
		eachRecord(file, cfg, kind, func(rec scan.Track, slot *trackconfig.Track) {
			if strings.TrimSpace(rec.Language) != "" {
				slot.Language = resolver.Resolve(rec.Language)
			}
		})
	}
	return nil
}
