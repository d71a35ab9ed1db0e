package legacy

import (
	"fmt"
	"strings"

	"rmi-forms/internal/registry"
	"rmi-forms/internal/schema"
)

// legacyQuestionnaireType mirrors the numeric type discriminator of the
// legacy store.
var legacyQuestionnaireType = map[registry.TemplateType]int64{
	registry.TemplateCMRT: 1,
	registry.TemplateEMRT: 2,
	registry.TemplateAMRT: 3,
}

// looseSkeleton builds a minimal legacy document for the given template,
// shaped like a freshly created report so ToExternal can patch it.
func looseSkeleton(templateType registry.TemplateType, versionID string) map[string]any {
	if templateType == registry.TemplateCRT {
		return map[string]any{
			"type":                "crt",
			"version":             fmt.Sprintf("RMI_CRT_%s", versionID),
			"cmtCompany":          map[string]any{},
			"cmtRangeQuestions":   []any{},
			"cmtCompanyQuestions": []any{},
			"cmtSmelters":         []any{},
			"minList":             []any{},
			"cmtParts":            []any{},
		}
	}
	doc := map[string]any{
		"name":                fmt.Sprintf("RMI_%s_%s", strings.ToUpper(string(templateType)), versionID),
		"questionnaireType":   legacyQuestionnaireType[templateType],
		"cmtCompany":          map[string]any{},
		"cmtRangeQuestions":   []any{},
		"cmtCompanyQuestions": []any{},
		"cmtSmelters":         []any{},
		"minList":             []any{},
		"cmtParts":            []any{},
	}
	if templateType == registry.TemplateAMRT {
		doc["amrtReasonList"] = []any{}
	}
	return doc
}

// ToExternalLoose exports a snapshot that has no import context, by
// synthesizing an empty legacy document of the right template and
// patching the snapshot onto it.
func ToExternalLoose(snap *schema.Snapshot) (map[string]any, error) {
	skeleton := looseSkeleton(snap.TemplateType, snap.VersionID)
	_, ctx, err := ToInternal(skeleton)
	if err != nil {
		return nil, fmt.Errorf("build loose context: %w", err)
	}
	return ToExternal(snap, ctx)
}
