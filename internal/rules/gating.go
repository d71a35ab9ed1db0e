// Package rules implements the gating, requiredness, document status,
// checker and summary logic that runs over a form's current data.
package rules

import (
	"fmt"
	"strings"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
)

// GatingResult holds the per-mineral gating decisions.
type GatingResult struct {
	Q2Enabled               bool
	LaterQuestionsEnabled   bool
	CompanyQuestionsEnabled bool
	SmelterListRequired     bool
}

func answered(value string) bool {
	return strings.TrimSpace(value) != ""
}

func inSet(value string, set []string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// EvalCondition evaluates one gating condition for one mineral. Missing
// answers never satisfy a predicate: gating stays closed until the
// answers it reads are present.
func EvalCondition(cond *registry.GatingCondition, answers map[string]formdata.Answer, mineralKey string) bool {
	if cond == nil {
		return true
	}
	q1 := answers["q1"].Get(mineralKey)
	q2 := answers["q2"].Get(mineralKey)
	switch cond.Kind {
	case registry.GateAlways:
		return true
	case registry.GateQ1Yes:
		return q1 == "Yes"
	case registry.GateQ1Q2Yes:
		return q1 == "Yes" && q2 == "Yes"
	case registry.GateQ1NotNo:
		return answered(q1) && q1 != "No"
	case registry.GateQ1Q2NotNo:
		return answered(q1) && q1 != "No" && answered(q2) && q2 != "No"
	case registry.GateQ1NotNegatives:
		return answered(q1) && !inSet(q1, cond.Q1Negatives)
	case registry.GateQ1Q2NotNegatives:
		return answered(q1) && !inSet(q1, cond.Q1Negatives) &&
			answered(q2) && !inSet(q2, cond.Q2Negatives)
	default:
		panic(fmt.Sprintf("rules: unhandled gating kind %d", cond.Kind))
	}
}

// CalculateGating evaluates every configured gating condition for one
// mineral.
func CalculateGating(def *registry.TemplateVersionDef, answers map[string]formdata.Answer, mineralKey string) GatingResult {
	return GatingResult{
		Q2Enabled:               EvalCondition(def.Gating.Q2, answers, mineralKey),
		LaterQuestionsEnabled:   EvalCondition(def.Gating.LaterQuestions, answers, mineralKey),
		CompanyQuestionsEnabled: EvalCondition(def.Gating.CompanyQuestions, answers, mineralKey),
		SmelterListRequired:     EvalCondition(def.Gating.SmelterList, answers, mineralKey),
	}
}

// CalculateAllGating evaluates gating for each given mineral key. A nil
// key list falls back to the full catalog.
func CalculateAllGating(def *registry.TemplateVersionDef, answers map[string]formdata.Answer, mineralKeys []string) map[string]GatingResult {
	if mineralKeys == nil {
		for _, m := range def.MineralScope.Minerals {
			mineralKeys = append(mineralKeys, m.Key)
		}
	}
	out := make(map[string]GatingResult, len(mineralKeys))
	for _, key := range mineralKeys {
		out[key] = CalculateGating(def, answers, key)
	}
	return out
}
