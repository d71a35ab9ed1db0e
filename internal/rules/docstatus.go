package rules

import (
	"rmi-forms/internal/registry"
)

// DocStatusType tags one section-level requirement outcome.
type DocStatusType string

const (
	ProductListRequiredStatus    DocStatusType = "productListRequired"
	ProductListNotRequiredStatus DocStatusType = "productListNotRequired"
	ProductListUnknownStatus     DocStatusType = "productListUnknown"

	SmelterListRequiredStatus    DocStatusType = "smelterListRequired"
	SmelterListNotRequiredStatus DocStatusType = "smelterListNotRequired"
	SmelterListPendingStatus     DocStatusType = "smelterListPending"
	SmelterListUnknownStatus     DocStatusType = "smelterListUnknown"

	MineListAvailableStatus    DocStatusType = "mineListAvailable"
	MineListNotAvailableStatus DocStatusType = "mineListNotAvailable"
)

// DocStatusItem is one section's requirement state. Metals and Questions
// are only set for smelter list outcomes.
type DocStatusItem struct {
	Type      DocStatusType
	Metals    []string
	Questions string
}

// DocStatusData summarizes which list sections the respondent still owes.
type DocStatusData struct {
	ProductList DocStatusItem
	SmelterList DocStatusItem
	MineList    DocStatusItem
}

// gatingNeeds reports which of Q1/Q2 a condition reads.
func gatingNeeds(cond *registry.GatingCondition) (q1, q2 bool) {
	if cond == nil {
		return false, false
	}
	switch cond.Kind {
	case registry.GateQ1Yes, registry.GateQ1NotNo, registry.GateQ1NotNegatives:
		return true, false
	case registry.GateQ1Q2Yes:
		return true, true
	case registry.GateQ1Q2NotNo, registry.GateQ1Q2NotNegatives:
		return true, true
	default:
		return false, false
	}
}

// gatingQuestionsLabel names the questions a smelter gate reads, for the
// pending message.
func gatingQuestionsLabel(cond *registry.GatingCondition) string {
	q1, q2 := gatingNeeds(cond)
	if q1 && !q2 {
		return "Q1"
	}
	return "Q1/Q2"
}

// missingGatingMetals returns the active minerals whose gating answers
// are still blank, so no gating decision can be made for them yet.
func missingGatingMetals(def *registry.TemplateVersionDef, state FormState, activeKeys []string) []string {
	needsQ1, needsQ2 := gatingNeeds(def.Gating.SmelterList)
	if !needsQ1 && !needsQ2 {
		return nil
	}
	missing := []string{}
	for _, key := range activeKeys {
		if needsQ1 && !answered(state.QuestionAnswers["q1"].Get(key)) {
			missing = append(missing, key)
			continue
		}
		if needsQ2 && !answered(state.QuestionAnswers["q2"].Get(key)) {
			missing = append(missing, key)
		}
	}
	return missing
}

// GetDocStatusData derives the requirement state of the product, smelter
// and mine lists from the declaration scope and gating answers. Minerals
// outside the active scope are ignored entirely.
func GetDocStatusData(def *registry.TemplateVersionDef, state FormState) DocStatusData {
	var out DocStatusData

	switch {
	case ProductListRequired(state.ScopeType):
		out.ProductList = DocStatusItem{Type: ProductListRequiredStatus}
	case state.ScopeType == "":
		out.ProductList = DocStatusItem{Type: ProductListUnknownStatus}
	default:
		out.ProductList = DocStatusItem{Type: ProductListNotRequiredStatus}
	}

	activeKeys := state.ActiveMineralKeys(def)
	switch missing := missingGatingMetals(def, state, activeKeys); {
	case len(activeKeys) == 0:
		out.SmelterList = DocStatusItem{Type: SmelterListUnknownStatus}
	case len(missing) == len(activeKeys) && len(missing) > 0:
		// Nothing is answered yet: the list is pending, not waived.
		out.SmelterList = DocStatusItem{
			Type:      SmelterListPendingStatus,
			Metals:    append([]string{}, activeKeys...),
			Questions: gatingQuestionsLabel(def.Gating.SmelterList),
		}
	default:
		gating := CalculateAllGating(def, state.QuestionAnswers, activeKeys)
		enabled := RequiredSmelterMinerals(gating, activeKeys)
		if len(enabled) > 0 {
			out.SmelterList = DocStatusItem{Type: SmelterListRequiredStatus, Metals: enabled}
		} else {
			out.SmelterList = DocStatusItem{Type: SmelterListNotRequiredStatus}
		}
	}

	if def.MineList.Available {
		out.MineList = DocStatusItem{Type: MineListAvailableStatus}
	} else {
		out.MineList = DocStatusItem{Type: MineListNotAvailableStatus}
	}
	return out
}
