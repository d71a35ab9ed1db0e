package registry

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTemplate = errors.New("unknown template type")
	ErrUnknownVersion  = errors.New("unknown template version")
)

type family struct {
	definition TemplateDefinition
	versions   map[string]*TemplateVersionDef
}

var families = map[TemplateType]family{
	TemplateCMRT: {definition: cmrtDefinition(), versions: cmrtVersionDefs()},
	TemplateEMRT: {definition: emrtDefinition(), versions: emrtVersionDefs()},
	TemplateCRT:  {definition: crtDefinition(), versions: crtVersionDefs()},
	TemplateAMRT: {definition: amrtDefinition(), versions: amrtVersionDefs()},
}

// templateOrder fixes the order types are reported in.
var templateOrder = []TemplateType{TemplateCMRT, TemplateEMRT, TemplateCRT, TemplateAMRT}

func init() {
	// An inconsistent catalog is a programming error, not an input error.
	for _, t := range templateOrder {
		f, ok := families[t]
		if !ok {
			panic(fmt.Sprintf("registry: missing family %q", t))
		}
		if len(f.definition.Versions) != len(f.versions) {
			panic(fmt.Sprintf("registry: %q lists %d versions but defines %d", t, len(f.definition.Versions), len(f.versions)))
		}
		for _, v := range f.definition.Versions {
			def, ok := f.versions[v.ID]
			if !ok {
				panic(fmt.Sprintf("registry: %q lists version %q without a definition", t, v.ID))
			}
			if def.TemplateType != t || def.Version.ID != v.ID {
				panic(fmt.Sprintf("registry: %q version %q is mislabeled", t, v.ID))
			}
		}
		if _, ok := f.versions[f.definition.DefaultVersion]; !ok {
			panic(fmt.Sprintf("registry: %q default version %q is not defined", t, f.definition.DefaultVersion))
		}
	}
}

// TemplateTypes returns the supported template families in display order.
func TemplateTypes() []TemplateType {
	out := make([]TemplateType, len(templateOrder))
	copy(out, templateOrder)
	return out
}

// IsValidTemplateType reports whether t names a supported family.
func IsValidTemplateType(t TemplateType) bool {
	_, ok := families[t]
	return ok
}

// GetTemplateDefinition returns the family definition for t.
func GetTemplateDefinition(t TemplateType) (TemplateDefinition, error) {
	f, ok := families[t]
	if !ok {
		return TemplateDefinition{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	return f.definition, nil
}

// GetAllTemplateDefinitions returns every family definition in display
// order.
func GetAllTemplateDefinitions() []TemplateDefinition {
	out := make([]TemplateDefinition, 0, len(templateOrder))
	for _, t := range templateOrder {
		out = append(out, families[t].definition)
	}
	return out
}

// GetVersions returns the selectable versions of t.
func GetVersions(t TemplateType) ([]TemplateVersion, error) {
	f, ok := families[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	out := make([]TemplateVersion, len(f.definition.Versions))
	copy(out, f.definition.Versions)
	return out, nil
}

// GetDefaultVersion returns the default version id of t.
func GetDefaultVersion(t TemplateType) (string, error) {
	f, ok := families[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	return f.definition.DefaultVersion, nil
}

// IsValidVersion reports whether versionID is a known version of t.
func IsValidVersion(t TemplateType, versionID string) bool {
	f, ok := families[t]
	if !ok {
		return false
	}
	_, ok = f.versions[versionID]
	return ok
}

// GetVersionDef returns the full configuration of one template version.
// Callers must treat the result as read only.
func GetVersionDef(t TemplateType, versionID string) (*TemplateVersionDef, error) {
	f, ok := families[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	def, ok := f.versions[versionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s@%s", ErrUnknownVersion, t, versionID)
	}
	return def, nil
}
