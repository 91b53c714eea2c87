package mediainfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/services"
)

const defaultBinary = "mediainfo"

// Output mirrors the top level of a MediaInfo JSON report.
type Output struct {
	Media struct {
		Ref   string           `json:"@ref"`
		Track []map[string]any `json:"track"`
	} `json:"media"`
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Inspector runs mediainfo against individual files.
type Inspector struct {
	binary string
	run    commandRunner
}

// NewInspector constructs an inspector using the given binary, or
// "mediainfo" when empty.
func NewInspector(binary string) *Inspector {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = defaultBinary
	}
	return &Inspector{binary: binary, run: defaultCommandRunner}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (i *Inspector) WithCommandRunner(r commandRunner) {
	if i != nil && r != nil {
		i.run = r
	}
}

// Inspect executes mediainfo for path and decodes the report.
func (i *Inspector) Inspect(ctx context.Context, path string) (*scan.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "mediainfo", "inspect", "empty path", nil)
	}
	output, err := i.run(ctx, i.binary, "--Full", "--Output=JSON", path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "mediainfo", "inspect", path, err)
	}
	file, err := Parse(output)
	if err != nil {
		return nil, err
	}
	file.Path = path
	return file, nil
}

// Parse converts a MediaInfo JSON report into a scanned file. When the report
// lacks StreamKindID on any track, ordinals are assigned in report order.
func Parse(data []byte) (*scan.File, error) {
	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "mediainfo", "parse", "decode json", err)
	}
	file := &scan.File{Path: out.Media.Ref}
	haveIDs := true
	for _, raw := range out.Media.Track {
		track, ok := convertTrack(raw)
		if !ok {
			haveIDs = false
		}
		file.Tracks = append(file.Tracks, track)
	}
	if !haveIDs {
		scan.AssignStreamKindIDs(file.Tracks)
	}
	return file, nil
}

func convertTrack(raw map[string]any) (scan.Track, bool) {
	track := scan.Track{
		Type:          scan.ParseTrackType(field(raw, "@type")),
		Position:      field(raw, "StreamOrder"),
		Language:      field(raw, "Language"),
		Format:        field(raw, "Format"),
		Title:         field(raw, "Title"),
		ChannelLayout: field(raw, "ChannelLayout"),
		Default:       yes(field(raw, "Default")),
		Forced:        yes(field(raw, "Forced")),
	}
	if track.Type == scan.General && track.Title == "" {
		track.Title = field(raw, "Movie")
	}
	id, err := strconv.Atoi(field(raw, "StreamKindID"))
	if err != nil {
		return track, false
	}
	track.StreamKindID = id
	return track, true
}

func field(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func yes(value string) bool {
	return strings.EqualFold(value, "yes") || value == "1"
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return output, nil
}
