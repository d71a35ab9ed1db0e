// Package transform holds small value conversions shared by the adapter,
// the rules engine and the CLI: date formats, the smelter lookup
// sentinels and email validation.
package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ToDisplayDate converts an ISO date (YYYY-MM-DD) to DD-MMM-YYYY. Inputs
// that are not ISO dates pass through unchanged.
func ToDisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%02d-%s-%d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// ToIsoDate converts a DD-MMM-YYYY date back to ISO form. Month matching
// is case-insensitive and single-digit days are padded. Inputs that do
// not match pass through unchanged.
func ToIsoDate(display string) string {
	parts := strings.Split(strings.TrimSpace(display), "-")
	if len(parts) != 3 {
		return display
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return display
	}
	month := 0
	for i, name := range monthNames {
		if strings.EqualFold(name, parts[1]) {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return display
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return display
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func isIsoDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// significantDigits counts the digits of an integer literal, ignoring a
// leading sign and leading zeros.
func significantDigits(s string) int {
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimLeft(s, "0")
	return len(s)
}

func epochToIso(n int64, seconds bool) string {
	if seconds {
		n *= 1000
	}
	return time.UnixMilli(n).UTC().Format("2006-01-02")
}

// NormalizeAuthorizationDate coerces the many historical encodings of the
// authorization date to an ISO date string. Epoch values are recognized
// by digit count: 11 to 13 digits read as milliseconds, 9 or 10 digits
// as seconds. Anything unrecognized passes through as text.
func NormalizeAuthorizationDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case json.Number:
		return normalizeNumericDate(v.String())
	case float64:
		return normalizeNumericDate(strconv.FormatInt(int64(v), 10))
	case int64:
		return normalizeNumericDate(strconv.FormatInt(v, 10))
	case int:
		return normalizeNumericDate(strconv.Itoa(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" || isIsoDate(s) {
			return s
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return s
		}
		switch d := significantDigits(s); {
		case d >= 11 && d <= 13:
			n, _ := strconv.ParseInt(s, 10, 64)
			return epochToIso(n, false)
		case d == 9 || d == 10:
			n, _ := strconv.ParseInt(s, 10, 64)
			return epochToIso(n, true)
		default:
			return s
		}
	default:
		return fmt.Sprintf("%v", value)
	}
}

func normalizeNumericDate(literal string) string {
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(literal, 64)
		if ferr != nil {
			return literal
		}
		n = int64(f)
		literal = strconv.FormatInt(n, 10)
	}
	switch d := significantDigits(literal); {
	case d >= 11 && d <= 13:
		return epochToIso(n, false)
	case d == 9 || d == 10:
		return epochToIso(n, true)
	default:
		return literal
	}
}

// Canonical smelter lookup sentinels.
const (
	SmelterNotListed        = "Smelter not listed"
	SmelterNotYetIdentified = "Smelter not yet identified"
)

func matchesSentinel(value, sentinel string) bool {
	return strings.EqualFold(strings.TrimSpace(value), sentinel)
}

// IsSmelterNotListed reports whether a lookup value is the "not listed"
// sentinel, ignoring case and surrounding whitespace.
func IsSmelterNotListed(value string) bool {
	return matchesSentinel(value, SmelterNotListed)
}

// IsSmelterNotIdentified reports whether a lookup value is the "not yet
// identified" sentinel.
func IsSmelterNotIdentified(value string) bool {
	return matchesSentinel(value, SmelterNotYetIdentified)
}

// NormalizeSmelterLookup maps sentinel spellings to their canonical form
// and leaves real smelter names untouched.
func NormalizeSmelterLookup(value string) string {
	switch {
	case IsSmelterNotListed(value):
		return SmelterNotListed
	case IsSmelterNotIdentified(value):
		return SmelterNotYetIdentified
	default:
		return value
	}
}

// IsValidEmail accepts anything containing an "@" plus the historical
// "not available" placeholder.
func IsValidEmail(value string) bool {
	if strings.Contains(value, "@") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), "not available")
}
