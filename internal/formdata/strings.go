package formdata

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
)

// HumanizeKey turns a dash- or underscore-separated key into a spaced,
// capitalized label, e.g. "rare-earth_elements" becomes "Rare Earth
// Elements".
func HumanizeKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, p := range parts {
		runes := []rune(p)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

var rowCounter atomic.Uint64

// NewRowID returns a process-unique row id with the given prefix.
func NewRowID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), rowCounter.Add(1))
}
