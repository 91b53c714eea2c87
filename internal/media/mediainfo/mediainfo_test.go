package mediainfo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
)

const sampleReport = `{
  "creatingLibrary": {"name": "MediaLib", "version": "24.01"},
  "media": {
    "@ref": "/media/show/e01.mkv",
    "track": [
      {"@type": "General", "Title": "Pilot", "StreamKindID": "0", "extra": {"ENCODER": "x"}},
      {"@type": "Video", "StreamKindID": "0", "StreamOrder": "0", "Format": "AVC", "Title": "Main", "Default": "Yes", "Forced": "No"},
      {"@type": "Audio", "@typeorder": "1", "StreamKindID": "0", "StreamOrder": "1", "Format": "AC-3", "ChannelLayout": "L R C LFE Ls Rs", "Language": "en", "Default": "Yes", "Forced": "No"},
      {"@type": "Audio", "@typeorder": "2", "StreamKindID": "1", "StreamOrder": "2", "Format": "AAC", "ChannelLayout": "L R", "Language": "de", "Default": "No", "Forced": "No"},
      {"@type": "Text", "StreamKindID": "0", "StreamOrder": "3", "Format": "UTF-8", "Language": "en", "Default": "No", "Forced": "Yes"},
      {"@type": "Menu", "StreamKindID": "0"}
    ]
  }
}`

func TestParseReport(t *testing.T) {
	file, err := Parse([]byte(sampleReport))
	require.NoError(t, err)
	assert.Equal(t, "/media/show/e01.mkv", file.Path)
	require.Len(t, file.Tracks, 6)

	general, ok := file.General()
	require.True(t, ok)
	assert.Equal(t, "Pilot", general.Title)

	audio := file.TracksOf(scan.Audio)
	require.Len(t, audio, 2)
	assert.Equal(t, 1, audio[1].StreamKindID)
	assert.Equal(t, "2", audio[1].Position)
	assert.Equal(t, "L R", audio[1].ChannelLayout)
	assert.Equal(t, "de", audio[1].Language)
	assert.True(t, audio[0].Default)

	text := file.TracksOf(scan.Text)
	require.Len(t, text, 1)
	assert.True(t, text[0].Forced)
	assert.Equal(t, "UTF-8", text[0].Format)
	assert.Equal(t, 1, file.Count(scan.Menu))
}

func TestParseAssignsOrdinalsWhenMissing(t *testing.T) {
	report := `{"media": {"track": [
		{"@type": "General"},
		{"@type": "Audio", "StreamOrder": "0"},
		{"@type": "Audio", "StreamOrder": "1"}
	]}}`
	file, err := Parse([]byte(report))
	require.NoError(t, err)
	audio := file.TracksOf(scan.Audio)
	require.Len(t, audio, 2)
	assert.Equal(t, 0, audio[0].StreamKindID)
	assert.Equal(t, 1, audio[1].StreamKindID)
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.ErrorIs(t, err, services.ErrExternalTool)
}

func TestInspectUsesRunner(t *testing.T) {
	inspector := NewInspector("")
	var gotName string
	var gotArgs []string
	inspector.WithCommandRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte(sampleReport), nil
	})

	file, err := inspector.Inspect(context.Background(), "/tmp/other.mkv")
	require.NoError(t, err)
	assert.Equal(t, "mediainfo", gotName)
	assert.Equal(t, []string{"--Full", "--Output=JSON", "/tmp/other.mkv"}, gotArgs)
	assert.Equal(t, "/tmp/other.mkv", file.Path)
}

func TestInspectWrapsRunnerFailure(t *testing.T) {
	inspector := NewInspector("/opt/mediainfo")
	inspector.WithCommandRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})
	_, err := inspector.Inspect(context.Background(), "a.mkv")
	assert.ErrorIs(t, err, services.ErrExternalTool)

	_, err = inspector.Inspect(context.Background(), " ")
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
}
