package rules

import (
	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
)

// FormState is the slice of form data the rules engine reads: the
// declaration scope, the question answers and the mineral selection.
type FormState struct {
	ScopeType        string
	QuestionAnswers  map[string]formdata.Answer
	SelectedMinerals []string
	CustomMinerals   []string
}

// ActiveMineralKeys resolves the active scope of the state.
func (s FormState) ActiveMineralKeys(def *registry.TemplateVersionDef) []string {
	return formdata.ActiveMineralKeys(def, s.SelectedMinerals, s.CustomMinerals)
}

// IsCompanyFieldRequired decides whether a company info field is required
// under the current declaration scope. Conditional fields (the scope
// description) are required only for scope C.
func IsCompanyFieldRequired(field registry.FieldDef, scopeType string) bool {
	switch field.Required {
	case registry.AlwaysRequired:
		return true
	case registry.ConditionallyRequired:
		return scopeType == "C"
	default:
		return false
	}
}

// IsQuestionRequired decides whether one (question, mineral) cell is
// required. Q1 is always required for active minerals; Q2 follows its
// gate except on AMRT where the scope question is optional; later
// questions follow the later-questions gate.
func IsQuestionRequired(def *registry.TemplateVersionDef, gating map[string]GatingResult, questionKey, mineralKey string, active map[string]bool) bool {
	if !active[mineralKey] {
		return false
	}
	g := gating[mineralKey]
	switch questionKey {
	case "q1":
		return true
	case "q2":
		if def.TemplateType == registry.TemplateAMRT {
			return false
		}
		return g.Q2Enabled
	default:
		return g.LaterQuestionsEnabled
	}
}

// CompanyQuestionsRequired reports whether any active mineral opens the
// company questions section.
func CompanyQuestionsRequired(gating map[string]GatingResult, activeKeys []string) bool {
	for _, key := range activeKeys {
		if gating[key].CompanyQuestionsEnabled {
			return true
		}
	}
	return false
}

// RequiredSmelterMinerals returns the active minerals whose gating makes
// the smelter list required, in active-scope order.
func RequiredSmelterMinerals(gating map[string]GatingResult, activeKeys []string) []string {
	out := []string{}
	for _, key := range activeKeys {
		if gating[key].SmelterListRequired {
			out = append(out, key)
		}
	}
	return out
}

// ProductListRequired reports whether the product list is mandatory,
// which is the case only for declaration scope B.
func ProductListRequired(scopeType string) bool {
	return scopeType == "B"
}
