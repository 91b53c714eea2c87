package session

import (
	"fmt"
	"strconv"
	"strings"

	"mkvbatch/internal/services"
	"mkvbatch/internal/trackconfig"
)

// Edit is one requested change. Index is the 0-based slot index; Kind and
// Index are ignored for title edits.
type Edit struct {
	Kind     trackconfig.Kind
	Index    int
	Property trackconfig.Property
	Value    string
}

var editableProperties = map[string]trackconfig.Property{
	"language": trackconfig.PropertyLanguage,
	"lang":     trackconfig.PropertyLanguage,
	"name":     trackconfig.PropertyName,
	"default":  trackconfig.PropertyDefault,
	"forced":   trackconfig.PropertyForced,
	"enabled":  trackconfig.PropertyEnabled,
}

// ParseEdit parses "KIND:TRACK:PROPERTY=VALUE", where TRACK is the 1-based
// track number within the kind, e.g. "s:17:name=Signs".
func ParseEdit(spec string) (Edit, error) {
	selector, value, found := strings.Cut(spec, "=")
	if !found {
		return Edit{}, invalidEdit(spec, "missing '='")
	}
	parts := strings.Split(selector, ":")
	if len(parts) != 3 {
		return Edit{}, invalidEdit(spec, "expected KIND:TRACK:PROPERTY")
	}
	kind, err := trackconfig.ParseKind(parts[0])
	if err != nil {
		return Edit{}, invalidEdit(spec, err.Error())
	}
	number, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || number < 1 {
		return Edit{}, invalidEdit(spec, "track number must be a positive integer")
	}
	property, ok := editableProperties[strings.ToLower(strings.TrimSpace(parts[2]))]
	if !ok {
		return Edit{}, invalidEdit(spec, fmt.Sprintf("unknown property %q", parts[2]))
	}
	return Edit{Kind: kind, Index: number - 1, Property: property, Value: value}, nil
}

func invalidEdit(spec, reason string) error {
	return services.Wrap(services.ErrInvalidArgument, "session", "parse edit", fmt.Sprintf("%q: %s", spec, reason), nil)
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, services.Wrap(services.ErrInvalidArgument, "session", "edit", fmt.Sprintf("invalid boolean %q", value), nil)
}

func isUndeterminedCode(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "und" || value == "undetermined"
}
