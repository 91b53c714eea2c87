package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	c.normalizeScan()
	c.normalizeValidation()
	c.normalizeLanguages()
	c.normalizeLogging()
	return c.normalizePaths()
}

func (c *Config) normalizeTools() {
	if value, ok := os.LookupEnv(envMKVPropEditBinary); ok && strings.TrimSpace(value) != "" {
		c.Tools.MKVPropEdit = value
	}
	if value, ok := os.LookupEnv(envMediaInfoBinary); ok && strings.TrimSpace(value) != "" {
		c.Tools.MediaInfo = value
	}
	c.Tools.MKVPropEdit = orDefault(c.Tools.MKVPropEdit, defaultMKVPropEdit)
	c.Tools.MediaInfo = orDefault(c.Tools.MediaInfo, defaultMediaInfo)
	c.Tools.FFprobe = orDefault(c.Tools.FFprobe, defaultFFprobe)
}

func (c *Config) normalizeScan() {
	c.Scan.Backend = strings.ToLower(orDefault(c.Scan.Backend, defaultScanBackend))
	if c.Scan.Concurrency == 0 {
		c.Scan.Concurrency = defaultConcurrency
	}
}

func (c *Config) normalizeValidation() {
	c.Validation.Strictness = strings.ToLower(orDefault(c.Validation.Strictness, defaultStrictness))
	if len(c.Validation.Severities) == 0 {
		return
	}
	normalized := make(map[string]string, len(c.Validation.Severities))
	for key, value := range c.Validation.Severities {
		normalized[strings.ToLower(strings.TrimSpace(key))] = strings.ToLower(strings.TrimSpace(value))
	}
	c.Validation.Severities = normalized
}

func (c *Config) normalizeLanguages() {
	for i := range c.Languages.Custom {
		c.Languages.Custom[i].Name = strings.TrimSpace(c.Languages.Custom[i].Name)
		c.Languages.Custom[i].Code = strings.TrimSpace(c.Languages.Custom[i].Code)
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(orDefault(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(orDefault(c.Logging.Level, defaultLogLevel))
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Session.LockPath = orDefault(c.Session.LockPath, defaultLockPath)
	if c.Session.LockPath, err = expandPath(c.Session.LockPath); err != nil {
		return fmt.Errorf("session.lock_path: %w", err)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
