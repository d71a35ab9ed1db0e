package legacy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"rmi-forms/internal/registry"
)

var (
	ErrUnrecognized = errors.New("cannot infer templateType/versionId from legacy report")
	ErrTypeMismatch = errors.New("legacy report templateType mismatch between type and name/version")
)

var versionMarkerRe = regexp.MustCompile(`(?i)RMI_(CMRT|EMRT|CRT|AMRT)_([0-9.]+)`)

func matchMarker(s string) (registry.TemplateType, string, bool) {
	m := versionMarkerRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return registry.TemplateType(strings.ToLower(m[1])), m[2], true
}

// Detect identifies which template family and version a legacy document
// belongs to, from its explicit type field and/or the RMI_<TYPE>_<ver>
// marker embedded in its name or version fields.
func Detect(doc map[string]any) (registry.TemplateType, string, error) {
	var fromType registry.TemplateType
	if t := registry.TemplateType(strings.ToLower(str(doc["type"]))); registry.IsValidTemplateType(t) {
		fromType = t
	}

	inferredType, inferredVersion, ok := matchMarker(str(doc["name"]))
	if !ok {
		inferredType, inferredVersion, ok = matchMarker(str(doc["version"]))
	}
	if !ok && fromType == "" {
		return "", "", ErrUnrecognized
	}

	templateType := fromType
	if templateType == "" {
		templateType = inferredType
	} else if ok && inferredType != templateType {
		return "", "", ErrTypeMismatch
	}
	if inferredVersion == "" {
		return "", "", ErrUnrecognized
	}

	if _, err := registry.GetVersionDef(templateType, inferredVersion); err != nil {
		return "", "", fmt.Errorf("unsupported template/version: %s@%s (%v)", templateType, inferredVersion, err)
	}
	return templateType, inferredVersion, nil
}
