package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLegacyYesNoUnknown(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"1", "Yes"},
		{"yes", "Yes"},
		{" Y ", "Yes"},
		{"true", "Yes"},
		{"0", "No"},
		{"No", "No"},
		{"false", "No"},
		{"unknown", "Unknown"},
		{"UNK", "Unknown"},
		{json.Number("1"), "Yes"},
		{json.Number("0"), "No"},
		{nil, ""},
		{"maybe", "maybe"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeLegacyYesNoUnknown(tc.in), "input %v", tc.in)
	}
}

func TestToLegacyYesNoUnknown(t *testing.T) {
	assert.Equal(t, "1", toLegacyYesNoUnknown("Yes"))
	assert.Equal(t, "0", toLegacyYesNoUnknown("No"))
	assert.Equal(t, "Unknown", toLegacyYesNoUnknown("Unknown"))
	assert.Equal(t, "maybe", toLegacyYesNoUnknown("maybe"))
}

func TestCoerceID(t *testing.T) {
	assert.Equal(t, "row-7", coerceID("row-7", "fallback"))
	assert.Equal(t, "42", coerceID(json.Number("42"), "fallback"))
	assert.Equal(t, "fallback", coerceID("  ", "fallback"))
	assert.Equal(t, "fallback", coerceID(nil, "fallback"))
	assert.Equal(t, "fallback", coerceID(true, "fallback"))
}

func TestEpochMsToDateString(t *testing.T) {
	assert.Equal(t, "2023-05-17", epochMsToDateString(json.Number("1684281600000")))
	assert.Equal(t, "2023-05-17", epochMsToDateString("1684281600000"))
	assert.Equal(t, "1970-01-01", epochMsToDateString(json.Number("0")))
	assert.Equal(t, "", epochMsToDateString("yesterday"))
	assert.Equal(t, "", epochMsToDateString(nil))
}

func TestNormalizeLegacyAnswer(t *testing.T) {
	assert.Equal(t, "1", normalizeLegacyAnswer("100 %", true))
	assert.Equal(t, "1", normalizeLegacyAnswer("100%", true))
	assert.Equal(t, "100 %", normalizeLegacyAnswer("100 %", false))
	assert.Equal(t, "Greater than 90%", normalizeLegacyAnswer("Greater than 90%", true))
	assert.Equal(t, "Yes", normalizeLegacyAnswer(" Yes ", false))
	assert.Equal(t, "", normalizeLegacyAnswer(json.Number("3"), false))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "rareearthelements", normalizeLabel("Rare Earth Elements"))
	assert.Equal(t, "sodaash", normalizeLabel("Soda-Ash"))
	assert.Equal(t, "cobalt", normalizeLabel("  COBALT "))
}

func TestPreferredMineralLabel(t *testing.T) {
	assert.Equal(t, "Rare Earth Elements", preferredMineralLabel("rareEarthElements"))
	assert.Equal(t, "Soda Ash", preferredMineralLabel("sodaAsh"))
	assert.Equal(t, "Cobalt", preferredMineralLabel("cobalt"))
	assert.Equal(t, "Natural Graphite", preferredMineralLabel("naturalGraphite"))
	assert.Equal(t, "Rare Earth Elements", preferredMineralLabel("rare-earth_elements"))
}
