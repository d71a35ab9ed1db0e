package formdata

import "rmi-forms/internal/registry"

// CommentKey returns the company-question map key holding the comment for
// questionKey.
func CommentKey(questionKey string) string {
	return questionKey + "_comment"
}

// CreateEmptyFormData builds the blank form for a template version. Every
// field and question is seeded so later writes never have to create keys,
// and so two blank forms of the same version are structurally identical.
func CreateEmptyFormData(def *registry.TemplateVersionDef) FormData {
	companyInfo := make(map[string]string, len(def.CompanyInfoFields))
	for _, f := range def.CompanyInfoFields {
		companyInfo[f.Key] = ""
	}

	selected := []string{}
	if def.MineralScope.Mode == registry.ScopeFixed {
		for _, m := range def.MineralScope.Minerals {
			selected = append(selected, m.Key)
		}
	}

	custom := []string{}
	if def.MineralScope.Mode == registry.ScopeFreeText {
		for i, m := range def.MineralScope.Minerals {
			label := ""
			if i < len(def.MineralScope.DefaultCustomMinerals) {
				label = def.MineralScope.DefaultCustomMinerals[i]
			}
			if label == "" {
				label = HumanizeKey(m.Key)
			}
			custom = append(custom, label)
		}
	}

	scopeKeys := ActiveMineralKeys(def, selected, custom)
	shape := func(perMineral bool) Answer {
		if !perMineral {
			return Scalar("")
		}
		a := PerMineralAnswer()
		for _, key := range scopeKeys {
			a.ByMineral[key] = ""
		}
		return a
	}

	questions := make(map[string]Answer, len(def.Questions))
	comments := make(map[string]Answer, len(def.Questions))
	for _, q := range def.Questions {
		questions[q.Key] = shape(q.PerMineral)
		comments[q.Key] = shape(q.PerMineral)
	}

	companyQuestions := make(map[string]Answer, 2*len(def.CompanyQuestions))
	for _, q := range def.CompanyQuestions {
		companyQuestions[q.Key] = shape(q.PerMineral)
		if q.HasCommentField {
			companyQuestions[CommentKey(q.Key)] = shape(q.PerMineral)
		}
	}

	return FormData{
		CompanyInfo:      companyInfo,
		SelectedMinerals: selected,
		CustomMinerals:   custom,
		Questions:        questions,
		QuestionComments: comments,
		CompanyQuestions: companyQuestions,
		MineralsScope:    []MineralsScopeRow{},
		SmelterList:      []SmelterRow{},
		MineList:         []MineRow{},
		ProductList:      []ProductRow{},
	}
}
