// Package schema defines the versioned report snapshot and its JSON
// codec.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
)

// CurrentSchemaVersion is the only snapshot schema this build reads and
// writes.
const CurrentSchemaVersion = 1

var (
	ErrSchemaVersion = errors.New("unsupported snapshot schema version")
	ErrBadSnapshot   = errors.New("invalid snapshot")
)

// Snapshot is the portable serialization of one report: the template
// coordinates plus the complete form data.
type Snapshot struct {
	SchemaVersion int                   `json:"schemaVersion"`
	TemplateType  registry.TemplateType `json:"templateType"`
	VersionID     string                `json:"versionId"`
	Locale        string                `json:"locale,omitempty"`
	Data          formdata.FormData     `json:"data"`
}

// NewSnapshot builds a snapshot around existing form data.
func NewSnapshot(templateType registry.TemplateType, versionID string, data formdata.FormData) *Snapshot {
	return &Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		TemplateType:  templateType,
		VersionID:     versionID,
		Data:          data,
	}
}

// ParseSnapshot decodes and validates snapshot JSON. It fails on the
// first structural problem: wrong schema version, unknown template or
// version, an unsupported locale, or form data whose shape does not
// decode.
func ParseSnapshot(raw []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if s.SchemaVersion != CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, s.SchemaVersion)
	}
	if _, err := registry.GetVersionDef(s.TemplateType, s.VersionID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	switch s.Locale {
	case "", "en-US", "zh-CN":
	default:
		return nil, fmt.Errorf("%w: unsupported locale %q", ErrBadSnapshot, s.Locale)
	}
	normalize(&s.Data)
	return &s, nil
}

// normalize replaces absent collections with empty ones so snapshots
// always serialize with the same shape regardless of input sparseness.
func normalize(d *formdata.FormData) {
	if d.CompanyInfo == nil {
		d.CompanyInfo = map[string]string{}
	}
	if d.SelectedMinerals == nil {
		d.SelectedMinerals = []string{}
	}
	if d.CustomMinerals == nil {
		d.CustomMinerals = []string{}
	}
	if d.Questions == nil {
		d.Questions = map[string]formdata.Answer{}
	}
	if d.QuestionComments == nil {
		d.QuestionComments = map[string]formdata.Answer{}
	}
	if d.CompanyQuestions == nil {
		d.CompanyQuestions = map[string]formdata.Answer{}
	}
	if d.MineralsScope == nil {
		d.MineralsScope = []formdata.MineralsScopeRow{}
	}
	if d.SmelterList == nil {
		d.SmelterList = []formdata.SmelterRow{}
	}
	if d.MineList == nil {
		d.MineList = []formdata.MineRow{}
	}
	if d.ProductList == nil {
		d.ProductList = []formdata.ProductRow{}
	}
}

// StringifySnapshot produces canonical, deterministic JSON: fixed struct
// field order and sorted map keys, no insignificant whitespace. Suitable
// for content-addressed diffing.
func StringifySnapshot(s *Snapshot) ([]byte, error) {
	clone := *s
	normalize(&clone.Data)
	return json.Marshal(&clone)
}

// StringifySnapshotIndent is StringifySnapshot with indentation for
// human-facing output. Key ordering is identical.
func StringifySnapshotIndent(s *Snapshot) ([]byte, error) {
	clone := *s
	normalize(&clone.Data)
	return json.MarshalIndent(&clone, "", "  ")
}
