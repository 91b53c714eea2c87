package language

import "strings"

// field extracts one comparable code from an option.
type field func(Option) string

// resolutionOrder is the strict priority in which option fields are tested.
// The first field that matches any option wins, even when a later field
// would match a different option.
var resolutionOrder = []field{
	func(o Option) string { return o.ISO6392B },
	func(o Option) string { return o.ISO6392T },
	func(o Option) string { return o.ISO6391 },
	func(o Option) string { return o.ISO6393 },
	func(o Option) string { return o.Name },
	func(o Option) string { return o.Custom },
}

// Table is an ordered set of language options.
type Table struct {
	options []Option
}

// NewTable returns a table over the given options in order.
func NewTable(options ...Option) *Table {
	return &Table{options: append([]Option(nil), options...)}
}

// DefaultTable returns the ISO 639 options followed by any custom options.
func DefaultTable(custom ...Option) *Table {
	return NewTable(append(Builtin(), custom...)...)
}

// Options returns a copy of the table's options.
func (t *Table) Options() []Option {
	if t == nil {
		return nil
	}
	return append([]Option(nil), t.options...)
}

// Resolve maps a scanned language string onto an option, comparing
// case-insensitively. Unmatched or empty input yields Undetermined.
func (t *Table) Resolve(code string) Option {
	code = strings.TrimSpace(code)
	if t == nil || code == "" {
		return Undetermined
	}
	for _, get := range resolutionOrder {
		for _, opt := range t.options {
			candidate := get(opt)
			if candidate != "" && strings.EqualFold(candidate, code) {
				return opt
			}
		}
	}
	return Undetermined
}

var defaultTable = DefaultTable()

// Resolve maps code against the built-in table.
func Resolve(code string) Option {
	return defaultTable.Resolve(code)
}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}
