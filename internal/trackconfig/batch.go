package trackconfig

import (
	"fmt"
	"log/slog"

	"mkvbatch/internal/language"
	"mkvbatch/internal/logging"
	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
)

// Observer is told about every change made through a Batch. Entity is the
// changed *Track, or the *Batch itself for title and list-length changes.
type Observer interface {
	ConfigurationChanged(entity any, property Property)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(entity any, property Property)

// ConfigurationChanged calls fn.
func (fn ObserverFunc) ConfigurationChanged(entity any, property Property) {
	fn(entity, property)
}

// Batch is the editing aggregate of one session: the deduplicated file set,
// one global slot list per kind, the per-file configurations and the segment
// title.
type Batch struct {
	Title       string
	ModifyTitle bool

	files     []*scan.File
	configs   map[string]*FileConfig
	lists     map[Kind][]*Track
	resolver  Resolver
	observers []Observer
	logger    *slog.Logger
}

// NewBatch constructs an empty batch. resolver may be nil to use the
// built-in language table.
func NewBatch(resolver Resolver, logger *slog.Logger) *Batch {
	if resolver == nil {
		resolver = defaultResolver
	}
	return &Batch{
		configs:  make(map[string]*FileConfig),
		lists:    make(map[Kind][]*Track, len(Kinds)),
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "trackconfig"),
	}
}

// Resolver returns the language resolver slots are built with.
func (b *Batch) Resolver() Resolver {
	return b.resolver
}

// Subscribe registers an observer.
func (b *Batch) Subscribe(o Observer) {
	if o != nil {
		b.observers = append(b.observers, o)
	}
}

func (b *Batch) notify(entity any, property Property) {
	for _, o := range b.observers {
		o.ConfigurationChanged(entity, property)
	}
}

// AddFile registers a scanned file and builds its per-file configuration.
// A file whose key is already present is ignored and false is returned.
func (b *Batch) AddFile(file *scan.File) (*FileConfig, bool) {
	if file == nil {
		return nil, false
	}
	key := file.Key()
	if existing, ok := b.configs[key]; ok {
		return existing, false
	}
	cfg := NewFileConfig(file, b.resolver)
	b.files = append(b.files, file)
	b.configs[key] = cfg
	b.logger.Debug("file added",
		logging.String(logging.FieldFile, file.Path),
		logging.Int("video", len(cfg.TrackList(Video))),
		logging.Int("audio", len(cfg.TrackList(Audio))),
		logging.Int("subtitle", len(cfg.TrackList(Subtitle))),
	)
	return cfg, true
}

// Files returns the scanned files in insertion order.
func (b *Batch) Files() []*scan.File {
	return append([]*scan.File(nil), b.files...)
}

// FileConfig returns the per-file configuration for a file key.
func (b *Batch) FileConfig(key string) *FileConfig {
	return b.configs[key]
}

// FileConfigs returns the per-file configurations in file insertion order.
func (b *Batch) FileConfigs() []*FileConfig {
	out := make([]*FileConfig, 0, len(b.files))
	for _, file := range b.files {
		out = append(out, b.configs[file.Key()])
	}
	return out
}

// TrackList returns the global slots of kind.
func (b *Batch) TrackList(kind Kind) []*Track {
	return b.lists[kind]
}

// SetTrackList replaces the global slots of kind.
func (b *Batch) SetTrackList(kind Kind, tracks []*Track) {
	b.lists[kind] = tracks
}

// Track returns the global slot at index, or nil.
func (b *Batch) Track(kind Kind, index int) *Track {
	list := b.lists[kind]
	if index < 0 || index >= len(list) {
		return nil
	}
	return list[index]
}

// EnsureTrackCount sizes the global lists from reference.
func (b *Batch) EnsureTrackCount(reference *scan.File, kinds ...Kind) {
	for _, kind := range EnsureTrackCount(b, reference, kinds...) {
		b.logger.Debug("global track list resized",
			logging.String("kind", kind.String()),
			logging.Int("count", len(b.lists[kind])),
		)
		b.notify(b, PropertyTracks)
	}
}

// EnsureMaxTrackCount sizes each global list from the file holding the most
// tracks of that kind. Ties go to the earliest file.
func (b *Batch) EnsureMaxTrackCount() {
	for _, kind := range Kinds {
		b.EnsureTrackCount(b.MaxTrackFile(kind), kind)
	}
}

// MaxTrackFile returns the earliest file with the highest count of kind, or
// nil for an empty batch.
func (b *Batch) MaxTrackFile(kind Kind) *scan.File {
	var best *scan.File
	bestCount := -1
	for _, file := range b.files {
		if n := file.Count(kind.ScanType()); n > bestCount {
			best, bestCount = file, n
		}
	}
	return best
}

// SetTitle sets the segment title and marks it for writing.
func (b *Batch) SetTitle(title string) {
	b.Title = title
	b.ModifyTitle = true
	b.notify(b, PropertyTitle)
}

// SetLanguage assigns a language to the global slot and every per-file slot
// at the same index.
func (b *Batch) SetLanguage(kind Kind, index int, option language.Option) error {
	if option == (language.Option{}) {
		option = language.Undetermined
	}
	return b.edit(kind, index, PropertyLanguage, func(t *Track) {
		t.Language = option
		t.ModifyLanguage = true
	})
}

// SetName assigns a track name at index across the batch.
func (b *Batch) SetName(kind Kind, index int, name string) error {
	return b.edit(kind, index, PropertyName, func(t *Track) {
		t.Name = name
		t.ModifyName = true
	})
}

// SetDefault assigns the default flag at index across the batch.
func (b *Batch) SetDefault(kind Kind, index int, value bool) error {
	return b.edit(kind, index, PropertyDefault, func(t *Track) {
		t.Default = value
		t.ModifyDefault = true
	})
}

// SetForced assigns the forced flag at index across the batch.
func (b *Batch) SetForced(kind Kind, index int, value bool) error {
	return b.edit(kind, index, PropertyForced, func(t *Track) {
		t.Forced = value
		t.ModifyForced = true
	})
}

// SetEnabled assigns the enabled flag at index across the batch.
func (b *Batch) SetEnabled(kind Kind, index int, value bool) error {
	return b.edit(kind, index, PropertyEnabled, func(t *Track) {
		t.Enabled = value
		t.ModifyEnabled = true
	})
}

func (b *Batch) edit(kind Kind, index int, property Property, apply func(*Track)) error {
	global := b.Track(kind, index)
	if global == nil {
		return services.Wrap(services.ErrNotFound, "trackconfig", "edit "+string(property),
			fmt.Sprintf("no global %s slot at index %d", kind, index), nil)
	}
	apply(global)
	b.notify(global, property)

	propagated := 0
	for _, cfg := range b.FileConfigs() {
		if slot := cfg.Track(kind, index); slot != nil {
			apply(slot)
			b.notify(slot, property)
			propagated++
		}
	}
	b.logger.Debug("global edit propagated",
		logging.String("kind", kind.String()),
		logging.Int("index", index),
		logging.String("property", string(property)),
		logging.Int("files", propagated),
	)
	return nil
}

// ApplyPending copies every asserted global property onto cfg's slots at the
// same index. Files loaded after an edit receive it this way; properties the
// global slot has not asserted keep their derived per-file values.
func (b *Batch) ApplyPending(cfg *FileConfig) int {
	if cfg == nil {
		return 0
	}
	copied := 0
	for _, kind := range Kinds {
		for _, global := range b.TrackList(kind) {
			if global == nil || !global.Pending() {
				continue
			}
			slot := cfg.Track(kind, global.Index)
			if slot == nil {
				continue
			}
			for _, property := range global.copyAsserted(slot) {
				b.notify(slot, property)
				copied++
			}
		}
	}
	if copied > 0 {
		b.logger.Debug("pending edits applied to file", logging.Int("properties", copied))
	}
	return copied
}
