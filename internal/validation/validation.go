package validation

import (
	"fmt"
	"strings"

	"mkvbatch/internal/scan"
	"mkvbatch/internal/trackconfig"
)

// Result is one validation finding. Index is -1 for findings that concern a
// whole kind rather than one slot position.
type Result struct {
	Severity Severity         `json:"severity"`
	Check    Check            `json:"check"`
	Kind     trackconfig.Kind `json:"kind"`
	Index    int              `json:"index"`
	Message  string           `json:"message"`
}

func (r Result) String() string {
	return fmt.Sprintf("[%s] %s", r.Severity, r.Message)
}

// Rule is one consistency check.
type Rule interface {
	Check() Check
	Validate(batch *trackconfig.Batch, severities Severities) []Result
}

// Rules returns the checks in run order.
func Rules() []Rule {
	return []Rule{
		TrackCountRule{},
		LanguageRule{},
		DefaultFlagRule{},
		ForcedFlagRule{},
		FormatRule{},
	}
}

// Run validates batch with every rule and returns the findings in rule,
// kind and index order.
func Run(batch *trackconfig.Batch, severities Severities) []Result {
	if batch == nil {
		return nil
	}
	var results []Result
	for _, rule := range Rules() {
		results = append(results, rule.Validate(batch, severities)...)
	}
	return results
}

// Blocking reports whether any result is an Error.
func Blocking(results []Result) bool {
	for _, r := range results {
		if r.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the number of results at severity.
func Count(results []Result, severity Severity) int {
	n := 0
	for _, r := range results {
		if r.Severity == severity {
			n++
		}
	}
	return n
}

// TrackCountRule reports kinds whose track count differs between files. It
// always reports at Error unless its severity is Off, and lists every file.
type TrackCountRule struct{}

func (TrackCountRule) Check() Check { return CheckTrackCount }

func (r TrackCountRule) Validate(batch *trackconfig.Batch, severities Severities) []Result {
	configs := batch.FileConfigs()
	if len(configs) < 2 {
		return nil
	}
	var results []Result
	for _, kind := range trackconfig.Kinds {
		if severities.For(r.Check(), kind) == Off {
			continue
		}
		distinct := make(map[int]struct{})
		parts := make([]string, 0, len(configs))
		for _, cfg := range configs {
			count := len(cfg.TrackList(kind))
			distinct[count] = struct{}{}
			parts = append(parts, fmt.Sprintf("'%s': %d", cfg.Path, count))
		}
		if len(distinct) < 2 {
			continue
		}
		results = append(results, Result{
			Severity: Error,
			Check:    r.Check(),
			Kind:     kind,
			Index:    -1,
			Message:  fmt.Sprintf("%s track counts differ: %s", kind, strings.Join(parts, ", ")),
		})
	}
	return results
}

// slotValue extracts the compared attribute of the slot at (kind, index) of
// one file. ok is false when the file has no such slot.
type slotValue func(file *scan.File, cfg *trackconfig.FileConfig, kind trackconfig.Kind, index int) (value string, ok bool)

// compare reports every (kind, index) position at which files disagree on
// the value produced by get.
func compare(batch *trackconfig.Batch, severities Severities, check Check, attribute string, get slotValue) []Result {
	files := batch.Files()
	if len(files) < 2 {
		return nil
	}
	var results []Result
	for _, kind := range trackconfig.Kinds {
		severity := severities.For(check, kind)
		if severity == Off {
			continue
		}
		width := 0
		for _, file := range files {
			width = max(width, len(batch.FileConfig(file.Key()).TrackList(kind)))
		}
		for index := 0; index < width; index++ {
			var parts []string
			distinct := make(map[string]struct{})
			for _, file := range files {
				value, ok := get(file, batch.FileConfig(file.Key()), kind, index)
				if !ok {
					continue
				}
				distinct[value] = struct{}{}
				parts = append(parts, fmt.Sprintf("'%s': %s", file.Path, value))
			}
			if len(distinct) < 2 {
				continue
			}
			results = append(results, Result{
				Severity: severity,
				Check:    check,
				Kind:     kind,
				Index:    index,
				Message:  fmt.Sprintf("%s track %d %s differs: %s", kind, index+1, attribute, strings.Join(parts, ", ")),
			})
		}
	}
	return results
}

func slotAttribute(fn func(*trackconfig.Track) string) slotValue {
	return func(_ *scan.File, cfg *trackconfig.FileConfig, kind trackconfig.Kind, index int) (string, bool) {
		slot := cfg.Track(kind, index)
		if slot == nil {
			return "", false
		}
		return fn(slot), true
	}
}

// LanguageRule compares slot languages across files.
type LanguageRule struct{}

func (LanguageRule) Check() Check { return CheckLanguage }

func (r LanguageRule) Validate(batch *trackconfig.Batch, severities Severities) []Result {
	return compare(batch, severities, r.Check(), "language", slotAttribute(func(t *trackconfig.Track) string {
		return t.Language.Code()
	}))
}

// DefaultFlagRule compares default flags across files.
type DefaultFlagRule struct{}

func (DefaultFlagRule) Check() Check { return CheckDefaultFlag }

func (r DefaultFlagRule) Validate(batch *trackconfig.Batch, severities Severities) []Result {
	return compare(batch, severities, r.Check(), "default flag", slotAttribute(func(t *trackconfig.Track) string {
		return fmt.Sprint(t.Default)
	}))
}

// ForcedFlagRule compares forced flags across files.
type ForcedFlagRule struct{}

func (ForcedFlagRule) Check() Check { return CheckForcedFlag }

func (r ForcedFlagRule) Validate(batch *trackconfig.Batch, severities Severities) []Result {
	return compare(batch, severities, r.Check(), "forced flag", slotAttribute(func(t *trackconfig.Track) string {
		return fmt.Sprint(t.Forced)
	}))
}

// FormatRule compares scanned codec formats across files.
type FormatRule struct{}

func (FormatRule) Check() Check { return CheckFormat }

func (r FormatRule) Validate(batch *trackconfig.Batch, severities Severities) []Result {
	return compare(batch, severities, r.Check(), "format", func(file *scan.File, _ *trackconfig.FileConfig, kind trackconfig.Kind, index int) (string, bool) {
		for _, rec := range file.TracksOf(kind.ScanType()) {
			if rec.StreamKindID == index {
				return rec.Format, true
			}
		}
		return "", false
	})
}
