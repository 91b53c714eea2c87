package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvbatch/internal/scan"
)

type cliTestEnv struct {
	dir        string
	configPath string
	argsPath   string
	fixtures   map[string]*scan.File
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("MKVBATCH_MKVPROPEDIT", "")
	t.Setenv("MKVBATCH_MEDIAINFO", "")

	env := &cliTestEnv{
		dir:      dir,
		argsPath: filepath.Join(dir, "mkvpropedit.args"),
		fixtures: map[string]*scan.File{},
	}

	mkvpropedit := writeStub(t, dir, "mkvpropedit", fmt.Sprintf(`if [ "$1" = "--version" ]; then
  echo "mkvpropedit v80.0 ('Roundabout') 64-bit"
  exit 0
fi
printf '%%s\n' "$@" >> "%s"
exit 0
`, env.argsPath))
	mediainfo := writeStub(t, dir, "mediainfo", "echo \"MediaInfo Command line,\"\necho \"MediaInfoLib - v24.01\"\n")
	ffprobe := writeStub(t, dir, "ffprobe", "echo \"ffprobe version 6.1\"\n")

	env.configPath = filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[tools]
mkvpropedit = %q
mediainfo = %q
ffprobe = %q

[logging]
level = "error"

[session]
lock_path = %q
`, mkvpropedit, mediainfo, ffprobe, filepath.Join(dir, "state", "session.lock"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, "bin", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// addFile creates an episode on disk and registers the tracks the fake
// inspector reports for it.
func (e *cliTestEnv) addFile(t *testing.T, name string, subtitles int) string {
	t.Helper()
	path := filepath.Join(e.dir, "media", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir media: %v", err)
	}
	if err := os.WriteFile(path, []byte("matroska"), 0o644); err != nil {
		t.Fatalf("write media file: %v", err)
	}

	file := &scan.File{Path: path, Tracks: []scan.Track{
		{Type: scan.General, Title: "Show"},
		{Type: scan.Video, Position: "0", Format: "AVC", Default: true},
		{Type: scan.Audio, Position: "1", Format: "AAC", ChannelLayout: "L R", Language: "eng", Default: true},
	}}
	for i := range subtitles {
		file.Tracks = append(file.Tracks, scan.Track{
			Type:     scan.Text,
			Position: fmt.Sprint(i + 2),
			Format:   "ASS",
			Language: "eng",
		})
	}
	scan.AssignStreamKindIDs(file.Tracks)
	e.fixtures[name] = file
	return path
}

func (e *cliTestEnv) inspector() scan.Inspector {
	return scan.InspectorFunc(func(ctx context.Context, path string) (*scan.File, error) {
		fixture, ok := e.fixtures[filepath.Base(path)]
		if !ok {
			return nil, fmt.Errorf("no fixture for %s", path)
		}
		file := *fixture
		file.Path = path
		return &file, nil
	})
}

func (e *cliTestEnv) recordedArgs(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.argsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read recorded args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := buildRootCommand(env.inspector())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}
