// Package legacy converts between the internal report snapshot and the
// historical wire JSON produced by the previous generation of the
// system. Import captures a roundtrip context recording everything about
// the original document the internal model does not represent (unknown
// keys, field aliases, null-vs-missing distinctions, row ordering) so
// that export can reproduce the document exactly when nothing was
// edited, and patch it minimally when something was.
package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeReport parses legacy JSON into a generic document. Numbers are
// kept as json.Number so their original literals survive a roundtrip.
func DecodeReport(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("legacy report is not a JSON object: %w", err)
	}
	return doc, nil
}

// EncodeReport serializes a legacy document. Map keys sort, which keeps
// the output deterministic.
func EncodeReport(doc map[string]any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func deepClone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = deepClone(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = deepClone(vv)
		}
		return s
	default:
		return v
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
