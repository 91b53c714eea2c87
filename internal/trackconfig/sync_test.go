package trackconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkvbatch/internal/language"
	"mkvbatch/internal/scan"
)

type countingLists struct {
	lists map[Kind][]*Track
	reads int
	sets  int
}

func newCountingLists() *countingLists {
	return &countingLists{lists: make(map[Kind][]*Track)}
}

func (c *countingLists) TrackList(kind Kind) []*Track {
	c.reads++
	return c.lists[kind]
}

func (c *countingLists) SetTrackList(kind Kind, tracks []*Track) {
	c.sets++
	c.lists[kind] = tracks
}

func slots(kind Kind, n int) []*Track {
	out := make([]*Track, n)
	for i := range out {
		out[i] = newEmptyTrack(kind, i)
	}
	return out
}

func referenceWith(audio, video, subs int) *scan.File {
	file := &scan.File{Path: "ref.mkv", Tracks: []scan.Track{{Type: scan.General}}}
	for i := 0; i < video; i++ {
		file.Tracks = append(file.Tracks, scan.Track{Type: scan.Video, StreamKindID: i})
	}
	for i := 0; i < audio; i++ {
		file.Tracks = append(file.Tracks, scan.Track{Type: scan.Audio, StreamKindID: i})
	}
	for i := 0; i < subs; i++ {
		file.Tracks = append(file.Tracks, scan.Track{Type: scan.Text, StreamKindID: i})
	}
	return file
}

func TestEnsureTrackCountNoReferenceNeverTouchesLists(t *testing.T) {
	cases := map[string]*scan.File{
		"nil reference":  nil,
		"nil track list": {Path: "broken.mkv"},
	}
	for name, reference := range cases {
		t.Run(name, func(t *testing.T) {
			lists := newCountingLists()
			changed := EnsureTrackCount(lists, reference, Video, Audio, Subtitle)
			assert.Empty(t, changed)
			assert.Zero(t, lists.reads)
			assert.Zero(t, lists.sets)
		})
	}
}

func TestEnsureTrackCountWithoutKindsIsNoop(t *testing.T) {
	lists := newCountingLists()
	EnsureTrackCount(lists, referenceWith(2, 1, 0))
	EnsureTrackCount(lists, referenceWith(2, 1, 0), []Kind{}...)
	assert.Zero(t, lists.reads)
	assert.Zero(t, lists.sets)
}

func TestEnsureTrackCountMatchesReferenceForAllLengths(t *testing.T) {
	for reference := 0; reference <= 4; reference++ {
		for existing := 0; existing <= 4; existing++ {
			lists := newCountingLists()
			lists.lists[Audio] = slots(Audio, existing)
			original := append([]*Track(nil), lists.lists[Audio]...)

			EnsureTrackCount(lists, referenceWith(reference, 0, 0), Audio)

			got := lists.lists[Audio]
			require.Len(t, got, reference, "r=%d c=%d", reference, existing)
			for i, track := range got {
				assert.Equal(t, i, track.Index)
				assert.Equal(t, Audio, track.Kind)
				if i < existing {
					assert.Same(t, original[i], track, "existing slots are kept")
				} else {
					assert.Equal(t, language.Undetermined, track.Language)
					assert.True(t, track.Enabled)
				}
			}
			if reference == existing {
				assert.Zero(t, lists.sets, "equal lengths must not mutate")
			}
		}
	}
}

func TestEnsureTrackCountProcessesKindsIndependently(t *testing.T) {
	lists := newCountingLists()
	lists.lists[Video] = slots(Video, 2)
	lists.lists[Subtitle] = slots(Subtitle, 3)

	changed := EnsureTrackCount(lists, referenceWith(1, 1, 0), Kind(42), Video, Subtitle)

	assert.Equal(t, []Kind{Video, Subtitle}, changed)
	assert.Len(t, lists.lists[Video], 1)
	assert.Empty(t, lists.lists[Subtitle])
	assert.Nil(t, lists.lists[Audio], "unrequested kind is untouched")
}
