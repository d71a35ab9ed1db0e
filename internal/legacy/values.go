package legacy

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// str returns v when it is a string, else "".
func str(v any) string {
	s, _ := v.(string)
	return s
}

// toAnyString renders strings and numbers as text; everything else reads
// as empty.
func toAnyString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// firstNonEmpty returns the first non-empty candidate.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// coerceID turns an externally supplied row id into a string, falling
// back to a synthetic positional id.
func coerceID(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) != "" {
			return t
		}
	case json.Number:
		return t.String()
	}
	return fallback
}

// normalizeLegacyYesNoUnknown folds the many historical encodings of a
// yes/no/unknown answer into the canonical words. Unrecognized values
// pass through.
func normalizeLegacyYesNoUnknown(v any) string {
	raw := toAnyString(v)
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "yes", "y", "true":
		return "Yes"
	case "0", "no", "n", "false":
		return "No"
	case "unknown", "unk":
		return "Unknown"
	default:
		return raw
	}
}

// toLegacyYesNoUnknown writes the canonical words back in the legacy
// encoding.
func toLegacyYesNoUnknown(v string) any {
	switch v {
	case "Yes":
		return "1"
	case "No":
		return "0"
	case "Unknown":
		return "Unknown"
	default:
		return v
	}
}

// epochMsToDateString converts an epoch-milliseconds value (number or
// numeric string) to a UTC ISO date. Anything non-numeric reads as "".
func epochMsToDateString(v any) string {
	var ms float64
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return ""
		}
		ms = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return ""
		}
		ms = f
	default:
		return ""
	}
	return time.UnixMilli(int64(ms)).UTC().Format("2006-01-02")
}

var crtFullPercent = "100"

// normalizeLegacyAnswer cleans one range-question answer. CRT's Q4 wrote
// "100 %" in some exports where the option value is "1".
func normalizeLegacyAnswer(v any, isCRTQ4 bool) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if isCRTQ4 {
		trimmed := strings.TrimSpace(strings.TrimSuffix(s, "%"))
		if strings.HasSuffix(s, "%") && trimmed == crtFullPercent {
			return "1"
		}
	}
	return s
}
