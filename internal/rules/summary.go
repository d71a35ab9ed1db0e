package rules

import (
	"math"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/transform"
)

// Translate resolves a message key with optional interpolation values.
type Translate func(key string, values map[string]string) string

// IdentityTranslate returns keys untranslated. Useful for tests and
// machine-readable output.
func IdentityTranslate(key string, _ map[string]string) string {
	return key
}

// SectionSummary is the progress of one checker section.
type SectionSummary struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
}

// CheckerSections breaks progress down by form section.
type CheckerSections struct {
	CompanyInfo      SectionSummary `json:"companyInfo" yaml:"companyInfo"`
	QuestionMatrix   SectionSummary `json:"questionMatrix" yaml:"questionMatrix"`
	CompanyQuestions SectionSummary `json:"companyQuestions" yaml:"companyQuestions"`
	SmelterList      SectionSummary `json:"smelterList" yaml:"smelterList"`
	ProductList      SectionSummary `json:"productList" yaml:"productList"`
}

// CheckerSummary is the aggregate completion picture of a form.
type CheckerSummary struct {
	Completion        int             `json:"completion" yaml:"completion"`
	TotalRequired     int             `json:"totalRequired" yaml:"totalRequired"`
	CompletedRequired int             `json:"completedRequired" yaml:"completedRequired"`
	Sections          CheckerSections `json:"sections" yaml:"sections"`
}

// PassedItem is a satisfied check surfaced for progress display.
type PassedItem struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Location string `json:"location" yaml:"location"`
}

// CheckerResult bundles the summary with the raw errors it was computed
// from.
type CheckerResult struct {
	Summary     CheckerSummary `json:"summary" yaml:"summary"`
	Errors      []CheckerError `json:"errors" yaml:"errors"`
	PassedItems []PassedItem   `json:"passedItems" yaml:"passedItems"`
}

type sectionCounter struct {
	total     int
	completed int
}

func (s *sectionCounter) count(done bool) {
	s.total++
	if done {
		s.completed++
	}
}

func (s *sectionCounter) summary() SectionSummary {
	return SectionSummary{Total: s.total, Completed: s.completed}
}

// BuildCheckerSummary computes per-section requiredness totals under the
// current gating state, alongside the checker's error list. A field only
// counts toward a total while it is actually required.
func BuildCheckerSummary(def *registry.TemplateVersionDef, state FormState, data formdata.FormData, t Translate) CheckerResult {
	activeKeys := state.ActiveMineralKeys(def)
	active := make(map[string]bool, len(activeKeys))
	for _, key := range activeKeys {
		active[key] = true
	}
	gating := CalculateAllGating(def, state.QuestionAnswers, activeKeys)

	var companyInfo, questionMatrix, companyQuestions, smelterList, productList sectionCounter
	passed := []PassedItem{}
	// Ungrouped requirements (currently only the mineral selection) count
	// toward the grand total without belonging to a section.
	extraTotal, extraCompleted := 0, 0

	for _, f := range def.CompanyInfoFields {
		if IsCompanyFieldRequired(f, state.ScopeType) {
			companyInfo.count(!blank(data.CompanyInfo[f.Key]))
		}
	}

	scopedTemplate := def.TemplateType == registry.TemplateEMRT || def.TemplateType == registry.TemplateAMRT
	if scopedTemplate && def.MineralScope.Mode == registry.ScopeDynamicDropdown {
		extraTotal++
		if len(activeKeys) > 0 {
			extraCompleted++
		}
	}

	fallbackKey := ""
	if len(activeKeys) > 0 {
		fallbackKey = activeKeys[0]
	} else if len(def.MineralScope.Minerals) > 0 {
		fallbackKey = def.MineralScope.Minerals[0].Key
	}
	for _, q := range def.Questions {
		if q.PerMineral {
			for _, key := range activeKeys {
				if IsQuestionRequired(def, gating, q.Key, key, active) {
					questionMatrix.count(!blank(formdata.GetAnswerValue(data.Questions, q.Key, key, true)))
				}
			}
			continue
		}
		if IsQuestionRequired(def, gating, q.Key, fallbackKey, map[string]bool{fallbackKey: true}) {
			questionMatrix.count(!blank(formdata.GetAnswerValue(data.Questions, q.Key, "", false)))
		}
	}

	if CompanyQuestionsRequired(gating, activeKeys) {
		for _, q := range def.CompanyQuestions {
			commentTriggered := func(answer string) bool {
				return q.HasCommentField && len(q.CommentRequiredWhen) > 0 && inSet(answer, q.CommentRequiredWhen)
			}
			if q.PerMineral {
				for _, key := range activeKeys {
					if !gating[key].CompanyQuestionsEnabled {
						continue
					}
					answer := formdata.GetAnswerValue(data.CompanyQuestions, q.Key, key, true)
					companyQuestions.count(!blank(answer))
					if commentTriggered(answer) {
						comment := formdata.GetAnswerValue(data.CompanyQuestions, formdata.CommentKey(q.Key), key, true)
						companyQuestions.count(!blank(comment))
					}
				}
				continue
			}
			answer := formdata.GetAnswerValue(data.CompanyQuestions, q.Key, "", false)
			companyQuestions.count(!blank(answer))
			if commentTriggered(answer) {
				comment := formdata.GetAnswerValue(data.CompanyQuestions, formdata.CommentKey(q.Key), "", false)
				companyQuestions.count(!blank(comment))
			}
		}
	}

	required := RequiredSmelterMinerals(gating, activeKeys)
	requiredSet := make(map[string]bool, len(required))
	for _, key := range required {
		requiredSet[key] = true
	}
	if len(required) > 0 {
		present := make(map[string]bool, len(data.SmelterList))
		for _, row := range data.SmelterList {
			present[row.Metal] = true
		}
		for _, key := range required {
			smelterList.count(present[key])
		}
		lookupRuleApplies := def.SmelterList.HasLookup && scopedTemplate
		for _, row := range data.SmelterList {
			if lookupRuleApplies && !blank(row.Metal) && requiredSet[row.Metal] {
				smelterList.count(!blank(row.SmelterLookup))
			}
			if def.SmelterList.HasLookup && def.SmelterList.NotListedRequireNameCountry &&
				transform.IsSmelterNotListed(row.SmelterLookup) {
				smelterList.count(!blank(row.SmelterName))
				smelterList.count(!blank(row.SmelterCountry))
			}
		}
	}

	if ProductListRequired(state.ScopeType) {
		productList.count(len(data.ProductList) > 0)
		for _, row := range data.ProductList {
			productList.count(!blank(row.ProductNumber))
		}
	}

	sections := CheckerSections{
		CompanyInfo:      companyInfo.summary(),
		QuestionMatrix:   questionMatrix.summary(),
		CompanyQuestions: companyQuestions.summary(),
		SmelterList:      smelterList.summary(),
		ProductList:      productList.summary(),
	}
	for _, sec := range []struct {
		name string
		s    SectionSummary
	}{
		{"companyInfo", sections.CompanyInfo},
		{"questionMatrix", sections.QuestionMatrix},
		{"companyQuestions", sections.CompanyQuestions},
		{"smelterList", sections.SmelterList},
		{"productList", sections.ProductList},
	} {
		if sec.s.Total > 0 && sec.s.Completed == sec.s.Total {
			passed = append(passed, PassedItem{
				Key:      "section." + sec.name,
				Label:    t("checker.sectionComplete", map[string]string{"section": sec.name}),
				Location: sec.name,
			})
		}
	}
	for _, f := range def.CompanyInfoFields {
		if f.Type != registry.FieldEmail {
			continue
		}
		value := data.CompanyInfo[f.Key]
		if !blank(value) && transform.IsValidEmail(value) {
			passed = append(passed, PassedItem{
				Key:      "email." + f.Key,
				Label:    t("checker.validEmail", nil),
				Location: "companyInfo." + f.Key,
			})
		}
	}

	total := extraTotal + sections.CompanyInfo.Total + sections.QuestionMatrix.Total +
		sections.CompanyQuestions.Total + sections.SmelterList.Total + sections.ProductList.Total
	completed := extraCompleted + sections.CompanyInfo.Completed + sections.QuestionMatrix.Completed +
		sections.CompanyQuestions.Completed + sections.SmelterList.Completed + sections.ProductList.Completed
	completion := 100
	if total > 0 {
		completion = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return CheckerResult{
		Summary: CheckerSummary{
			Completion:        completion,
			TotalRequired:     total,
			CompletedRequired: completed,
			Sections:          sections,
		},
		Errors:      RunChecker(def, state, data),
		PassedItems: passed,
	}
}
