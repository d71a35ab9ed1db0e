package registry

func crtMinerals() []MineralDef {
	return []MineralDef{mineral("cobalt", "minerals.cobalt")}
}

type crtOverride struct {
	id        string
	q2Options []QuestionOption
}

func buildCRTVersionDef(o crtOverride) *TemplateVersionDef {
	commentRequired := func(key string, values ...string) CompanyQuestionDef {
		return CompanyQuestionDef{
			Key:                 key,
			LabelKey:            "companyQuestions.crt." + key,
			Options:             yesNoOptions(),
			HasCommentField:     true,
			CommentRequiredWhen: values,
		}
	}
	gate := func() *GatingCondition { return gateQ1NotNegatives("No", "Unknown") }
	return &TemplateVersionDef{
		TemplateType: TemplateCRT,
		Version:      TemplateVersion{ID: o.id, Label: o.id},
		Pages:        standardPages(false),
		MineralScope: MineralScopeConfig{
			Mode:     ScopeFixed,
			Minerals: crtMinerals(),
		},
		CompanyInfoFields: sharedCompanyInfoFields(),
		Questions: []QuestionDef{
			{Key: "q1", LabelKey: "questions.crt.q1", Options: yesNoUnknownOptions()},
			{Key: "q2", LabelKey: "questions.crt.q2", Options: o.q2Options},
			{Key: "q3", LabelKey: "questions.crt.q3", Options: yesNoUnknownOptions()},
			{Key: "q4", LabelKey: "questions.crt.q4", Options: opts("1", "Greater than 90%", "Greater than 75%", "Greater than 50%", "50% or less", "None")},
			{Key: "q5", LabelKey: "questions.crt.q5", Options: yesNoUnknownOptions()},
			{Key: "q6", LabelKey: "questions.crt.q6", Options: yesNoUnknownOptions()},
		},
		CompanyQuestions: []CompanyQuestionDef{
			commentRequired("a", "Yes"),
			commentRequired("b"),
			commentRequired("c"),
			commentRequired("d"),
			commentRequired("e"),
			commentRequired("f"),
			{
				Key:      "g",
				LabelKey: "companyQuestions.crt.g",
				Options: opts(
					"Yes, CRT",
					"Yes, Using Other Format (Describe)",
					"No",
				),
				HasCommentField:     true,
				CommentRequiredWhen: []string{"Yes, Using Other Format (Describe)"},
			},
			commentRequired("h"),
			commentRequired("i"),
		},
		Gating: GatingConfig{
			Q2:               gate(),
			LaterQuestions:   gate(),
			CompanyQuestions: gate(),
			SmelterList:      gate(),
		},
		SmelterList: SmelterListConfig{
			Source:                         MetalDropdownSource{Kind: MetalsFixed, Metals: crtMinerals()},
			HasIDColumn:                    true,
			HasLookup:                      true,
			NotListedRequireNameCountry:    true,
			NotYetIdentifiedCountryDefault: "Unknown",
		},
		MineList: MineListConfig{Available: false},
		ProductList: ProductListConfig{
			ProductNumberLabelKey: "tables.manufacturerProductNumber",
			ProductNameLabelKey:   "tables.manufacturerProductName",
			CommentLabelKey:       "tables.comments",
		},
		DateConfig: DateConfig{MinDate: "2006-12-31", MaxDate: "2026-03-31"},
	}
}

func crtDefinition() TemplateDefinition {
	return TemplateDefinition{
		Type:        TemplateCRT,
		Name:        "CRT",
		FullNameKey: "templates.crt.fullName",
		Versions: []TemplateVersion{
			{ID: "2.2", Label: "2.2"},
			{ID: "2.21", Label: "2.21"},
		},
		DefaultVersion: "2.21",
	}
}

func crtVersionDefs() map[string]*TemplateVersionDef {
	overrides := []crtOverride{
		{id: "2.2", q2Options: yesNoUnknownOptions()},
		{id: "2.21", q2Options: append(yesNoUnknownOptions(), opt("DRC or adjoining countries only"))},
	}
	defs := make(map[string]*TemplateVersionDef, len(overrides))
	for _, o := range overrides {
		defs[o.id] = buildCRTVersionDef(o)
	}
	return defs
}
