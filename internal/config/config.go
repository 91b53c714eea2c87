package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools locates the external programs mkvbatch drives.
type Tools struct {
	MKVPropEdit string `toml:"mkvpropedit"`
	MediaInfo   string `toml:"mediainfo"`
	FFprobe     string `toml:"ffprobe"`
}

// Scan controls how media files are inspected before a batch session.
type Scan struct {
	Backend     string `toml:"backend"`
	Concurrency int    `toml:"concurrency"`
}

// Validation selects the strictness preset for cross-file consistency checks.
// Severities overrides individual checks ("language" or "audio.language")
// with one of off, info, warning, error.
type Validation struct {
	Strictness string            `toml:"strictness"`
	Severities map[string]string `toml:"severities"`
}

// CustomLanguage declares an extra language option offered next to the
// ISO 639 table, for example an IETF tag the table does not carry.
type CustomLanguage struct {
	Name string `toml:"name"`
	Code string `toml:"code"`
}

// Languages contains additional language options.
type Languages struct {
	Custom []CustomLanguage `toml:"custom"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Session contains batch session settings.
type Session struct {
	LockPath string `toml:"lock_path"`
}

// Config encapsulates all configuration values for mkvbatch.
//
// Configuration sections:
//   - Tools: mkvpropedit, mediainfo, and ffprobe binaries
//   - Scan: scanning backend and parallelism
//   - Validation: strictness preset and per-check severity overrides
//   - Languages: custom language options
//   - Logging: log format, level, and optional log directory
//   - Session: lock file preventing concurrent batch edits
type Config struct {
	Tools      Tools      `toml:"tools"`
	Scan       Scan       `toml:"scan"`
	Validation Validation `toml:"validation"`
	Languages  Languages  `toml:"languages"`
	Logging    Logging    `toml:"logging"`
	Session    Session    `toml:"session"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mkvbatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
