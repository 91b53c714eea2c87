package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	langpkg "mkvbatch/internal/language"
	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int               `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecType     string            `json:"codec_type"`
	ChannelLayout string            `json:"channel_layout"`
	Channels      int               `json:"channels"`
	Disposition   Disposition       `json:"disposition"`
	Tags          map[string]string `json:"tags"`
}

// Disposition carries the flag subset the editor cares about.
type Disposition struct {
	Default int `json:"default"`
	Forced  int `json:"forced"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Inspector runs ffprobe against individual files.
type Inspector struct {
	binary string
	run    commandRunner
}

// NewInspector constructs an inspector using the given binary, or "ffprobe"
// when empty.
func NewInspector(binary string) *Inspector {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &Inspector{binary: binary, run: defaultCommandRunner}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (i *Inspector) WithCommandRunner(r commandRunner) {
	if i != nil && r != nil {
		i.run = r
	}
}

// Inspect executes ffprobe against the provided path and converts the JSON response.
func (i *Inspector) Inspect(ctx context.Context, path string) (*scan.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "ffprobe", "inspect", "empty path", nil)
	}
	output, err := i.run(ctx, i.binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", path, err)
	}
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ffprobe", "parse", "decode json", err)
	}
	file := result.File()
	file.Path = path
	return file, nil
}

// File converts the report into a scanned file. Stream indexes become the
// position strings and ordinals are assigned per type in stream order.
func (r Result) File() *scan.File {
	file := &scan.File{Path: r.Format.Filename}
	file.Tracks = append(file.Tracks, scan.Track{
		Type:  scan.General,
		Title: tag(r.Format.Tags, "title"),
	})
	for _, stream := range r.Streams {
		file.Tracks = append(file.Tracks, scan.Track{
			Type:          scan.ParseTrackType(stream.CodecType),
			Position:      strconv.Itoa(stream.Index),
			Language:      langpkg.ExtractFromTags(stream.Tags),
			Format:        stream.CodecName,
			Title:         tag(stream.Tags, "title"),
			ChannelLayout: stream.ChannelLayout,
			Default:       stream.Disposition.Default == 1,
			Forced:        stream.Disposition.Forced == 1,
		})
	}
	scan.AssignStreamKindIDs(file.Tracks)
	return file
}

// StreamCount returns the number of streams of the given codec type.
func (r Result) StreamCount(codecType string) int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			count++
		}
	}
	return count
}

func tag(tags map[string]string, key string) string {
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}
