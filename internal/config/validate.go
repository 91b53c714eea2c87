package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// validator checks one configuration section.
type validator struct {
	section string
	check   func(*Config) error
}

// validators is the registry Validate walks, in order.
var validators = []validator{
	{section: "tools", check: validateTools},
	{section: "scan", check: validateScan},
	{section: "validation", check: validateValidation},
	{section: "languages", check: validateLanguages},
	{section: "logging", check: validateLogging},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	for _, v := range validators {
		if err := v.check(c); err != nil {
			return err
		}
	}
	return nil
}

func validateTools(c *Config) error {
	if strings.TrimSpace(c.Tools.MKVPropEdit) == "" {
		return errors.New("tools.mkvpropedit must be set")
	}
	return nil
}

func validateScan(c *Config) error {
	switch c.Scan.Backend {
	case BackendMediaInfo:
		if strings.TrimSpace(c.Tools.MediaInfo) == "" {
			return errors.New("tools.mediainfo must be set when scan.backend is mediainfo")
		}
	case BackendFFprobe:
		if strings.TrimSpace(c.Tools.FFprobe) == "" {
			return errors.New("tools.ffprobe must be set when scan.backend is ffprobe")
		}
	default:
		return fmt.Errorf("scan.backend: unsupported value %q (use %s or %s)", c.Scan.Backend, BackendMediaInfo, BackendFFprobe)
	}
	if c.Scan.Concurrency <= 0 {
		return errors.New("scan.concurrency must be positive")
	}
	return nil
}

var severityNames = map[string]struct{}{
	"off":     {},
	"info":    {},
	"warning": {},
	"error":   {},
}

func validateValidation(c *Config) error {
	switch c.Validation.Strictness {
	case StrictnessStrict, StrictnessLenient, StrictnessCustom:
	default:
		return fmt.Errorf("validation.strictness: unsupported value %q (use strict, lenient, or custom)", c.Validation.Strictness)
	}
	keys := make([]string, 0, len(c.Validation.Severities))
	for key := range c.Validation.Severities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key == "" {
			return errors.New("validation.severities: empty check name")
		}
		if _, ok := severityNames[c.Validation.Severities[key]]; !ok {
			return fmt.Errorf("validation.severities.%s: unsupported value %q (use off, info, warning, or error)", key, c.Validation.Severities[key])
		}
	}
	return nil
}

func validateLanguages(c *Config) error {
	seen := make(map[string]struct{}, len(c.Languages.Custom))
	for i, lang := range c.Languages.Custom {
		if lang.Code == "" {
			return fmt.Errorf("languages.custom[%d].code must be set", i)
		}
		if lang.Name == "" {
			return fmt.Errorf("languages.custom[%d].name must be set", i)
		}
		key := strings.ToLower(lang.Code)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("languages.custom[%d].code %q is declared twice", i, lang.Code)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validateLogging(c *Config) error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
