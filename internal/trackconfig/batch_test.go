package trackconfig

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkvbatch/internal/language"
	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
)

func subtitleFile(path string, count int) *scan.File {
	file := &scan.File{Path: path, Tracks: []scan.Track{{Type: scan.General}, {Type: scan.Video, Position: "0"}}}
	for i := 0; i < count; i++ {
		file.Tracks = append(file.Tracks, scan.Track{
			Type:         scan.Text,
			StreamKindID: i,
			Position:     fmt.Sprint(i + 1),
			Language:     "eng",
			Title:        fmt.Sprintf("Sub %d", i),
		})
	}
	return file
}

type recorder struct {
	events []Property
	tracks int
}

func (r *recorder) ConfigurationChanged(entity any, property Property) {
	r.events = append(r.events, property)
	if _, ok := entity.(*Track); ok {
		r.tracks++
	}
}

func TestNewTrackFromScannedRecord(t *testing.T) {
	rec := scan.Track{Type: scan.Audio, StreamKindID: 1, Title: "Commentary", Language: "GER", Default: true, Forced: true}
	track := NewTrack(rec, Audio, 1, nil)

	assert.Equal(t, 1, track.Index)
	assert.Equal(t, "Commentary", track.Name)
	assert.Equal(t, "ger", track.Language.Code())
	assert.True(t, track.Default)
	assert.True(t, track.Forced)
	assert.True(t, track.Enabled)
	assert.False(t, track.Pending())
	assert.Equal(t, "a2", track.Selector())

	unknown := NewTrack(scan.Track{Language: "zz"}, Video, 0, nil)
	assert.Equal(t, language.Undetermined, unknown.Language)
}

func TestAddFileDeduplicatesByKey(t *testing.T) {
	batch := NewBatch(nil, nil)
	_, added := batch.AddFile(subtitleFile("/media/a.mkv", 1))
	require.True(t, added)
	_, added = batch.AddFile(subtitleFile("/media/x/../a.mkv", 3))
	assert.False(t, added)
	_, added = batch.AddFile(nil)
	assert.False(t, added)

	require.Len(t, batch.Files(), 1)
	cfg := batch.FileConfig(scan.Key("/media/a.mkv"))
	require.NotNil(t, cfg)
	assert.Len(t, cfg.TrackList(Subtitle), 1)
	assert.Len(t, cfg.TrackList(Video), 1)
}

func TestEnsureMaxTrackCountAndPropagation(t *testing.T) {
	batch := NewBatch(nil, nil)
	obs := &recorder{}
	batch.Subscribe(obs)
	first, _ := batch.AddFile(subtitleFile("/media/one.mkv", 1))
	second, _ := batch.AddFile(subtitleFile("/media/two.mkv", 17))

	batch.EnsureMaxTrackCount()
	require.Len(t, batch.TrackList(Subtitle), 17)
	require.Len(t, batch.TrackList(Video), 1)
	assert.Len(t, first.TrackList(Subtitle), 1)
	assert.Len(t, second.TrackList(Subtitle), 17)

	require.NoError(t, batch.SetName(Subtitle, 16, "Signs"))
	assert.Equal(t, "Signs", batch.Track(Subtitle, 16).Name)
	assert.True(t, batch.Track(Subtitle, 16).ModifyName)
	assert.True(t, second.Track(Subtitle, 16).ModifyName)
	assert.Equal(t, "Signs", second.Track(Subtitle, 16).Name)
	assert.False(t, first.Pending())
	assert.True(t, second.Pending())
	assert.Equal(t, 2, obs.tracks)
	assert.Contains(t, obs.events, PropertyTracks)
}

func TestEditPropagatesToEveryFileWithSlot(t *testing.T) {
	batch := NewBatch(nil, nil)
	a, _ := batch.AddFile(subtitleFile("/media/a.mkv", 2))
	b, _ := batch.AddFile(subtitleFile("/media/b.mkv", 2))
	batch.EnsureMaxTrackCount()

	german := language.Resolve("ger")
	require.NoError(t, batch.SetLanguage(Subtitle, 1, german))
	require.NoError(t, batch.SetDefault(Subtitle, 0, true))
	require.NoError(t, batch.SetForced(Subtitle, 0, true))
	require.NoError(t, batch.SetEnabled(Video, 0, false))

	for _, cfg := range []*FileConfig{a, b} {
		assert.Equal(t, german, cfg.Track(Subtitle, 1).Language)
		assert.True(t, cfg.Track(Subtitle, 1).ModifyLanguage)
		assert.True(t, cfg.Track(Subtitle, 0).Default)
		assert.True(t, cfg.Track(Subtitle, 0).ModifyForced)
		assert.False(t, cfg.Track(Video, 0).Enabled)
		assert.True(t, cfg.Track(Video, 0).ModifyEnabled)
	}

	require.NoError(t, batch.SetLanguage(Subtitle, 0, language.Option{}))
	assert.Equal(t, language.Undetermined, a.Track(Subtitle, 0).Language)
}

func TestEditOutOfRange(t *testing.T) {
	batch := NewBatch(nil, nil)
	batch.AddFile(subtitleFile("/media/a.mkv", 1))
	batch.EnsureMaxTrackCount()

	err := batch.SetName(Subtitle, 5, "x")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, batch.SetName(Audio, 0, "x"), services.ErrNotFound)
}

func TestApplyPendingCopiesAssertedPropertiesOnly(t *testing.T) {
	batch := NewBatch(nil, nil)
	batch.AddFile(subtitleFile("/media/a.mkv", 2))
	batch.EnsureMaxTrackCount()
	require.NoError(t, batch.SetName(Subtitle, 0, "Full"))
	require.NoError(t, batch.SetForced(Subtitle, 1, true))

	obs := &recorder{}
	batch.Subscribe(obs)
	late, _ := batch.AddFile(subtitleFile("/media/late.mkv", 1))
	assert.Equal(t, 1, batch.ApplyPending(late))

	slot := late.Track(Subtitle, 0)
	assert.Equal(t, "Full", slot.Name)
	assert.True(t, slot.ModifyName)
	assert.False(t, slot.ModifyForced, "index 1 has no slot in this file")
	assert.False(t, slot.ModifyLanguage)
	assert.Equal(t, "eng", slot.Language.Code())
	assert.Equal(t, []Property{PropertyName}, obs.events)
	assert.Zero(t, batch.ApplyPending(nil))
}

func TestSetTitleNotifies(t *testing.T) {
	batch := NewBatch(nil, nil)
	var got []Property
	batch.Subscribe(ObserverFunc(func(entity any, property Property) {
		assert.Same(t, batch, entity)
		got = append(got, property)
	}))
	batch.SetTitle("Season 1")
	assert.Equal(t, "Season 1", batch.Title)
	assert.True(t, batch.ModifyTitle)
	assert.Equal(t, []Property{PropertyTitle}, got)
}

func TestExplicitReferenceGovernsGlobalCount(t *testing.T) {
	batch := NewBatch(nil, nil)
	small := subtitleFile("/media/small.mkv", 2)
	batch.AddFile(small)
	batch.AddFile(subtitleFile("/media/big.mkv", 5))

	batch.EnsureTrackCount(small, Kinds...)
	assert.Len(t, batch.TrackList(Subtitle), 2)
	assert.Same(t, batch.Files()[1], batch.MaxTrackFile(Subtitle))
}

func TestParseKind(t *testing.T) {
	for input, want := range map[string]Kind{"a": Audio, "Video": Video, "s": Subtitle, "text": Subtitle} {
		got, err := ParseKind(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("menu")
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	kind, ok := KindOf(scan.Text)
	assert.True(t, ok)
	assert.Equal(t, Subtitle, kind)
	_, ok = KindOf(scan.General)
	assert.False(t, ok)
	assert.Equal(t, "s", Subtitle.Prefix())
}
