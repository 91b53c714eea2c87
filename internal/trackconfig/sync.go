package trackconfig

import "mkvbatch/internal/scan"

// TrackLists exposes one slot list per kind. Both Batch (global lists) and
// FileConfig (per-file lists) implement it.
type TrackLists interface {
	TrackList(kind Kind) []*Track
	SetTrackList(kind Kind, tracks []*Track)
}

// EnsureTrackCount resizes target's list for each requested kind to the
// number of tracks of that kind in reference. Missing slots are appended with
// sequential indexes and an undetermined language; surplus slots are dropped
// from the end. A nil target, a nil reference, a reference without a track
// list, or an empty kinds list leaves target untouched without reading it.
// Kinds are processed independently and invalid kinds are skipped.
//
// It reports the kinds whose list changed length.
func EnsureTrackCount(target TrackLists, reference *scan.File, kinds ...Kind) []Kind {
	if target == nil || reference == nil || reference.Tracks == nil || len(kinds) == 0 {
		return nil
	}
	var changed []Kind
	for _, kind := range kinds {
		if !kind.Valid() {
			continue
		}
		if resizeList(target, kind, reference.Count(kind.ScanType())) {
			changed = append(changed, kind)
		}
	}
	return changed
}

func resizeList(target TrackLists, kind Kind, want int) bool {
	current := target.TrackList(kind)
	switch {
	case len(current) == want:
		return false
	case len(current) < want:
		grown := make([]*Track, len(current), want)
		copy(grown, current)
		for i := len(current); i < want; i++ {
			grown = append(grown, newEmptyTrack(kind, i))
		}
		target.SetTrackList(kind, grown)
	default:
		target.SetTrackList(kind, append([]*Track{}, current[:want]...))
	}
	return true
}
