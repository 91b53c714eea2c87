package validation

import (
	"fmt"
	"sort"
	"strings"

	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
)

// Severity ranks a validation finding.
type Severity int

const (
	Off Severity = iota
	Info
	Warning
	Error
)

var severityNames = map[Severity]string{
	Off:     "off",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// MarshalText encodes s by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(value string) (Severity, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for severity, name := range severityNames {
		if name == value {
			return severity, nil
		}
	}
	return Off, services.Wrap(services.ErrConfiguration, "validation", "parse severity", fmt.Sprintf("unknown severity %q", value), nil)
}

// Check names a validation check.
type Check string

const (
	CheckTrackCount  Check = "track_count"
	CheckLanguage    Check = "language"
	CheckDefaultFlag Check = "default_flag"
	CheckForcedFlag  Check = "forced_flag"
	CheckFormat      Check = "format"
)

// Checks lists every check in run order.
var Checks = []Check{CheckTrackCount, CheckLanguage, CheckDefaultFlag, CheckForcedFlag, CheckFormat}

// Severities maps check keys to severities. Missing keys are Off.
type Severities map[string]Severity

// For returns the severity of check for kind.
func (s Severities) For(check Check, kind trackconfig.Kind) Severity {
	if severity, ok := s[qualifiedKey(check, kind)]; ok {
		return severity
	}
	return s[string(check)]
}

func qualifiedKey(check Check, kind trackconfig.Kind) string {
	return strings.ToLower(kind.String()) + "." + string(check)
}

// Preset names.
const (
	PresetStrict  = "strict"
	PresetLenient = "lenient"
	PresetCustom  = "custom"
)

var presets = map[string]Severities{
	PresetStrict: {
		string(CheckTrackCount):  Error,
		string(CheckLanguage):    Error,
		string(CheckDefaultFlag): Warning,
		string(CheckForcedFlag):  Warning,
		string(CheckFormat):      Warning,
	},
	PresetLenient: {
		string(CheckTrackCount):  Error,
		string(CheckLanguage):    Warning,
		string(CheckDefaultFlag): Info,
		string(CheckForcedFlag):  Info,
		string(CheckFormat):      Off,
	},
	PresetCustom: {
		string(CheckTrackCount): Error,
	},
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveSeverities starts from preset and applies overrides on top. Override
// keys must name a known check, optionally prefixed by a kind.
func ResolveSeverities(preset string, overrides map[string]string) (Severities, error) {
	base, ok := presets[strings.ToLower(strings.TrimSpace(preset))]
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "validation", "resolve severities", fmt.Sprintf("unknown strictness preset %q", preset), nil)
	}
	resolved := make(Severities, len(base)+len(overrides))
	for key, severity := range base {
		resolved[key] = severity
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		normalized, err := normalizeKey(key)
		if err != nil {
			return nil, err
		}
		severity, err := ParseSeverity(overrides[key])
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "validation", "resolve severities", "override "+key, err)
		}
		resolved[normalized] = severity
	}
	return resolved, nil
}

func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	check := key
	if prefix, rest, found := strings.Cut(key, "."); found {
		kind, err := trackconfig.ParseKind(prefix)
		if err != nil {
			return "", services.Wrap(services.ErrConfiguration, "validation", "resolve severities", fmt.Sprintf("unknown kind in severity key %q", key), nil)
		}
		check = rest
		key = qualifiedKey(Check(rest), kind)
	}
	for _, known := range Checks {
		if string(known) == check {
			return key, nil
		}
	}
	return "", services.Wrap(services.ErrConfiguration, "validation", "resolve severities", fmt.Sprintf("unknown check in severity key %q", key), nil)
}
