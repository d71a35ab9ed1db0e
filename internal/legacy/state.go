package legacy

import (
	"encoding/json"

	"github.com/google/uuid"

	"rmi-forms/internal/registry"
)

// FieldState records how one legacy field was originally encoded, so an
// empty internal value can be written back as the same shape (missing,
// null or empty string).
type FieldState struct {
	Exists    bool
	WasNull   bool
	WasString bool
	WasNumber bool
}

func stateOf(obj map[string]any, key string) FieldState {
	v, ok := obj[key]
	st := FieldState{Exists: ok}
	if !ok {
		return st
	}
	switch v.(type) {
	case nil:
		st.WasNull = true
	case string:
		st.WasString = true
	case json.Number:
		st.WasNumber = true
	}
	return st
}

// answerRemarkState pairs the states of a row's answer and remark fields.
type answerRemarkState struct {
	Answer FieldState
	Remark FieldState
}

// effectiveDateState captures the original authorization date encoding:
// its raw value, its JSON type and the ISO date derived from it.
type effectiveDateState struct {
	OriginalValue any
	OriginalType  string // "missing", "null", "string", "number", "other"
	Derived       string
}

// RoundtripContext is the adapter-private companion of a snapshot
// imported from legacy JSON. It is immutable once built and only valid
// for the template/version it was captured from.
type RoundtripContext struct {
	// ID identifies the import session the context belongs to.
	ID           string
	TemplateType registry.TemplateType
	VersionID    string

	original map[string]any
	plan     *templatePlan

	companyFieldStates map[string]FieldState
	effectiveDate      effectiveDateState

	// rangeIndex maps "questionKey|mineralKey" to the legacy row index.
	rangeIndex  map[string]int
	rangeStates map[int]answerRemarkState

	// companyQuestionIndex maps "questionKey|mineralKey" (mineral empty
	// for shared questions) to the legacy row index.
	companyQuestionIndex  map[string]int
	companyQuestionStates map[int]answerRemarkState

	// mineralLabelByKey remembers the exact label text the document used
	// for each mineral key; labelToKey is its inverse over normalized
	// labels, extended with custom/free-text labels discovered on import.
	mineralLabelByKey map[string]string
	labelToKey        map[string]string

	smelterIndexByID    map[string]int
	smelterStates       map[int]map[string]FieldState
	smelterNameFallback map[int]string

	mineIndexByID map[string]int
	mineStates    map[int]map[string]FieldState

	productIndexByID map[string]int
	productStates    map[int]map[string]FieldState
	// productKeys records, per imported row, which legacy key (canonical
	// or alias) carried each internal field.
	productKeys map[int]map[string]string

	reasonIndexByID map[string]int
	reasonStates    map[int]map[string]FieldState
}

func newContext(p *templatePlan, original map[string]any) *RoundtripContext {
	return &RoundtripContext{
		ID:                    uuid.NewString(),
		TemplateType:          p.templateType,
		VersionID:             p.versionID,
		original:              deepClone(original).(map[string]any),
		plan:                  p,
		companyFieldStates:    map[string]FieldState{},
		rangeIndex:            map[string]int{},
		rangeStates:           map[int]answerRemarkState{},
		companyQuestionIndex:  map[string]int{},
		companyQuestionStates: map[int]answerRemarkState{},
		mineralLabelByKey:     map[string]string{},
		labelToKey:            map[string]string{},
		smelterIndexByID:      map[string]int{},
		smelterStates:         map[int]map[string]FieldState{},
		smelterNameFallback:   map[int]string{},
		mineIndexByID:         map[string]int{},
		mineStates:            map[int]map[string]FieldState{},
		productIndexByID:      map[string]int{},
		productStates:         map[int]map[string]FieldState{},
		productKeys:           map[int]map[string]string{},
		reasonIndexByID:       map[string]int{},
		reasonStates:          map[int]map[string]FieldState{},
	}
}

// writeNullable decides what to write for an internal value, honoring
// the field's original encoding when the value is empty. The second
// return reports whether the key should be present at all.
func writeNullable(st FieldState, next string) (any, bool) {
	if next != "" {
		return next, true
	}
	if !st.Exists {
		return nil, false
	}
	if st.WasNull {
		return nil, true
	}
	return "", true
}

// writeLegacyField applies writeNullable to one field of a legacy row,
// deriving the state from the row itself when none was recorded.
func writeLegacyField(item map[string]any, key string, states map[string]FieldState, next string) {
	st, ok := states[key]
	if !ok {
		st = stateOf(item, key)
	}
	if value, present := writeNullable(st, next); present {
		item[key] = value
	} else {
		delete(item, key)
	}
}
