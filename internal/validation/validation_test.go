package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
)

type trackSpec struct {
	typ      scan.TrackType
	language string
	format   string
	def      bool
}

func file(path string, specs ...trackSpec) *scan.File {
	f := &scan.File{Path: path, Tracks: []scan.Track{{Type: scan.General}}}
	for _, s := range specs {
		f.Tracks = append(f.Tracks, scan.Track{
			Type:         s.typ,
			StreamKindID: f.Count(s.typ),
			Position:     fmt.Sprint(len(f.Tracks)),
			Language:     s.language,
			Format:       s.format,
			Default:      s.def,
		})
	}
	return f
}

func batchOf(files ...*scan.File) *trackconfig.Batch {
	batch := trackconfig.NewBatch(nil, nil)
	for _, f := range files {
		batch.AddFile(f)
	}
	batch.EnsureMaxTrackCount()
	return batch
}

func mustResolve(t *testing.T, preset string, overrides map[string]string) Severities {
	t.Helper()
	severities, err := ResolveSeverities(preset, overrides)
	require.NoError(t, err)
	return severities
}

func TestTrackCountReportsEveryFile(t *testing.T) {
	batch := batchOf(
		file("A", trackSpec{typ: scan.Audio}, trackSpec{typ: scan.Audio}, trackSpec{typ: scan.Video}),
		file("B", trackSpec{typ: scan.Audio}, trackSpec{typ: scan.Video}),
	)
	results := TrackCountRule{}.Validate(batch, mustResolve(t, PresetLenient, nil))

	require.Len(t, results, 1)
	assert.Equal(t, Error, results[0].Severity)
	assert.Equal(t, trackconfig.Audio, results[0].Kind)
	assert.Equal(t, -1, results[0].Index)
	assert.Contains(t, results[0].Message, "Audio")
	assert.Contains(t, results[0].Message, "'A': 2, 'B': 1")
}

func TestTrackCountIsAlwaysErrorUnlessOff(t *testing.T) {
	batch := batchOf(file("A", trackSpec{typ: scan.Text}), file("B"))

	results := TrackCountRule{}.Validate(batch, mustResolve(t, PresetStrict, map[string]string{"track_count": "info"}))
	require.Len(t, results, 1)
	assert.Equal(t, Error, results[0].Severity)

	results = TrackCountRule{}.Validate(batch, mustResolve(t, PresetStrict, map[string]string{"track_count": "off"}))
	assert.Empty(t, results)

	results = TrackCountRule{}.Validate(batch, mustResolve(t, PresetStrict, map[string]string{"subtitle.track_count": "off"}))
	assert.Empty(t, results)
}

func TestSingleFileProducesNoResults(t *testing.T) {
	batch := batchOf(file("A", trackSpec{typ: scan.Audio, language: "eng"}))
	assert.Empty(t, Run(batch, mustResolve(t, PresetStrict, nil)))
	assert.Nil(t, Run(nil, nil))
}

func TestConsistencyChecks(t *testing.T) {
	batch := batchOf(
		file("A", trackSpec{typ: scan.Audio, language: "eng", format: "AAC", def: true}, trackSpec{typ: scan.Audio, language: "ger", format: "AC-3"}),
		file("B", trackSpec{typ: scan.Audio, language: "fre", format: "AAC", def: false}, trackSpec{typ: scan.Audio, language: "ger", format: "DTS"}),
	)
	results := Run(batch, mustResolve(t, PresetStrict, nil))

	require.Len(t, results, 3)
	assert.Equal(t, CheckLanguage, results[0].Check)
	assert.Equal(t, Error, results[0].Severity)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, "Audio track 1 language differs: 'A': eng, 'B': fre", results[0].Message)

	assert.Equal(t, CheckDefaultFlag, results[1].Check)
	assert.Equal(t, Warning, results[1].Severity)

	assert.Equal(t, CheckFormat, results[2].Check)
	assert.Equal(t, 1, results[2].Index)
	assert.Contains(t, results[2].Message, "'A': AC-3, 'B': DTS")
	assert.True(t, Blocking(results))
	assert.Equal(t, 1, Count(results, Error))
}

func TestOffSuppressesCheck(t *testing.T) {
	batch := batchOf(
		file("A", trackSpec{typ: scan.Audio, language: "eng"}),
		file("B", trackSpec{typ: scan.Audio, language: "fre"}),
	)
	results := Run(batch, mustResolve(t, PresetStrict, map[string]string{"audio.language": "off"}))
	assert.Empty(t, results)

	results = Run(batch, mustResolve(t, PresetCustom, map[string]string{"language": "info"}))
	require.Len(t, results, 1)
	assert.Equal(t, Info, results[0].Severity)
	assert.False(t, Blocking(results))
}

func TestValidationDoesNotMutate(t *testing.T) {
	batch := batchOf(
		file("A", trackSpec{typ: scan.Audio, language: "eng", def: true}),
		file("B", trackSpec{typ: scan.Audio, language: "fre"}, trackSpec{typ: scan.Text}),
	)
	before := fmt.Sprintf("%+v %+v", *batch.Track(trackconfig.Audio, 0), batch.TrackList(trackconfig.Subtitle))
	first := Run(batch, mustResolve(t, PresetStrict, nil))
	second := Run(batch, mustResolve(t, PresetStrict, nil))
	assert.Equal(t, first, second)
	assert.Equal(t, before, fmt.Sprintf("%+v %+v", *batch.Track(trackconfig.Audio, 0), batch.TrackList(trackconfig.Subtitle)))
}

func TestResolveSeverities(t *testing.T) {
	severities := mustResolve(t, "LENIENT", map[string]string{"Subtitle.Language": "error"})
	assert.Equal(t, Warning, severities.For(CheckLanguage, trackconfig.Audio))
	assert.Equal(t, Error, severities.For(CheckLanguage, trackconfig.Subtitle))
	assert.Equal(t, Off, severities.For(CheckFormat, trackconfig.Video))

	_, err := ResolveSeverities("paranoid", nil)
	assert.ErrorIs(t, err, services.ErrConfiguration)
	_, err = ResolveSeverities(PresetStrict, map[string]string{"bogus": "error"})
	assert.ErrorIs(t, err, services.ErrConfiguration)
	_, err = ResolveSeverities(PresetStrict, map[string]string{"menu.language": "error"})
	assert.ErrorIs(t, err, services.ErrConfiguration)
	_, err = ResolveSeverities(PresetStrict, map[string]string{"language": "loud"})
	assert.ErrorIs(t, err, services.ErrConfiguration)

	assert.Equal(t, []string{"custom", "lenient", "strict"}, Presets())
}

func TestSeverityText(t *testing.T) {
	for _, severity := range []Severity{Off, Info, Warning, Error} {
		parsed, err := ParseSeverity(severity.String())
		require.NoError(t, err)
		assert.Equal(t, severity, parsed)
	}
	text, err := Warning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(text))
}
