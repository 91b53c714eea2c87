package trackconfig

import "mkvbatch/internal/scan"

// FileConfig holds the slots of one scanned file. Each list has exactly as
// many entries as the file has tracks of that kind.
type FileConfig struct {
	Path  string
	Key   string
	lists map[Kind][]*Track
}

// NewFileConfig builds per-file slots from a scan using the factory.
func NewFileConfig(file *scan.File, resolver Resolver) *FileConfig {
	cfg := &FileConfig{lists: make(map[Kind][]*Track, len(Kinds))}
	if file == nil {
		return cfg
	}
	cfg.Path = file.Path
	cfg.Key = file.Key()
	for _, kind := range Kinds {
		records := file.TracksOf(kind.ScanType())
		tracks := make([]*Track, 0, len(records))
		for i, rec := range records {
			tracks = append(tracks, NewTrack(rec, kind, i, resolver))
		}
		cfg.lists[kind] = tracks
	}
	return cfg
}

// TrackList returns the slots of kind in scan order.
func (f *FileConfig) TrackList(kind Kind) []*Track {
	if f == nil {
		return nil
	}
	return f.lists[kind]
}

// SetTrackList replaces the slots of kind.
func (f *FileConfig) SetTrackList(kind Kind, tracks []*Track) {
	if f.lists == nil {
		f.lists = make(map[Kind][]*Track, len(Kinds))
	}
	f.lists[kind] = tracks
}

// Track returns the slot of kind whose Index equals index.
func (f *FileConfig) Track(kind Kind, index int) *Track {
	for _, track := range f.TrackList(kind) {
		if track.Index == index {
			return track
		}
	}
	return nil
}

// Pending reports whether any slot has a modify flag set.
func (f *FileConfig) Pending() bool {
	for _, kind := range Kinds {
		for _, track := range f.TrackList(kind) {
			if track.Pending() {
				return true
			}
		}
	}
	return false
}
