package registry

func emrtV1Minerals() []MineralDef {
	return []MineralDef{
		mineral("cobalt", "minerals.cobalt"),
		mineral("mica", "minerals.mica"),
	}
}

func emrtV2Minerals() []MineralDef {
	return []MineralDef{
		mineral("cobalt", "minerals.cobalt"),
		mineral("copper", "minerals.copper"),
		mineral("graphite", "minerals.graphite"),
		mineral("lithium", "minerals.lithium"),
		mineral("mica", "minerals.mica"),
		mineral("nickel", "minerals.nickel"),
	}
}

// emrtOverride carries the per-version deltas applied on top of the EMRT
// base definition. The 1.x and 2.x generations differ in mineral scope,
// negative answer sets, option wording and table sourcing.
type emrtOverride struct {
	id                 string
	minerals           []MineralDef
	scopeMode          MineralScopeMode
	q1Extra            string
	q1Negatives        []string
	q3OptionsByMineral map[string][]QuestionOption
	q5Options          []QuestionOption
	cOptions           []QuestionOption
	companyLabelPrefix string
	smelterSource      MetalDropdownSource
	mineList           MineListConfig
}

func buildEMRTVersionDef(o emrtOverride) *TemplateVersionDef {
	q1Options := append(yesNoUnknownOptions(), opt(o.q1Extra))
	companyLabel := func(key string) string {
		return o.companyLabelPrefix + "." + key
	}
	return &TemplateVersionDef{
		TemplateType: TemplateEMRT,
		Version:      TemplateVersion{ID: o.id, Label: o.id},
		Pages:        standardPages(o.mineList.Available),
		MineralScope: MineralScopeConfig{
			Mode:     o.scopeMode,
			Minerals: o.minerals,
		},
		CompanyInfoFields: sharedCompanyInfoFields(),
		Questions: []QuestionDef{
			{Key: "q1", LabelKey: "questions.emrt.q1", Options: q1Options, PerMineral: true},
			{Key: "q2", LabelKey: "questions.emrt.q2", Options: yesNoUnknownOptions(), PerMineral: true},
			{Key: "q3", LabelKey: "questions.emrt.q3", Options: yesNoUnknownOptions(), OptionsByMineral: o.q3OptionsByMineral, PerMineral: true},
			{Key: "q4", LabelKey: "questions.emrt.q4", Options: yesNoUnknownOptions(), PerMineral: true},
			{Key: "q5", LabelKey: "questions.emrt.q5", Options: o.q5Options, PerMineral: true},
			{Key: "q6", LabelKey: "questions.emrt.q6", Options: yesNoOptions(), PerMineral: true},
			{Key: "q7", LabelKey: "questions.emrt.q7", Options: yesNoOptions(), PerMineral: true},
		},
		CompanyQuestions: []CompanyQuestionDef{
			{Key: "a", LabelKey: companyLabel("a"), Options: yesNoOptions(), HasCommentField: true},
			{Key: "b", LabelKey: companyLabel("b"), Options: yesNoOptions(), HasCommentField: true, CommentRequiredWhen: []string{"Yes"}},
			{Key: "c", LabelKey: companyLabel("c"), Options: o.cOptions, PerMineral: true, HasCommentField: true},
			{Key: "d", LabelKey: companyLabel("d"), Options: yesNoOptions(), HasCommentField: true},
			{
				Key:      "e",
				LabelKey: companyLabel("e"),
				Options: opts(
					"Yes, in conformance with IPC1755 (e.g. EMRT)",
					"Yes, Using Other Format (Describe)",
					"No",
				),
				HasCommentField:     true,
				CommentLabelKey:     "companyQuestions.emrt.e_comment",
				CommentRequiredWhen: []string{"Yes, Using Other Format (Describe)"},
			},
			{Key: "f", LabelKey: companyLabel("f"), Options: yesNoOptions(), HasCommentField: true},
			{Key: "g", LabelKey: companyLabel("g"), Options: yesNoOptions(), HasCommentField: true},
		},
		Gating: GatingConfig{
			Q2:               gateQ1NotNegatives(o.q1Negatives...),
			LaterQuestions:   gateQ1Q2NotNegatives(o.q1Negatives, []string{"No", "Unknown"}),
			CompanyQuestions: gateQ1Q2NotNegatives(o.q1Negatives, []string{"No", "Unknown"}),
			SmelterList:      gateQ1Q2NotNegatives(o.q1Negatives, []string{"No", "Unknown"}),
		},
		SmelterList: SmelterListConfig{
			Source:                         o.smelterSource,
			HasIDColumn:                    true,
			HasLookup:                      true,
			NotListedRequireNameCountry:    true,
			NotYetIdentifiedCountryDefault: "",
		},
		MineList: o.mineList,
		ProductList: ProductListConfig{
			ProductNumberLabelKey: "tables.respondentProductNumber",
			ProductNameLabelKey:   "tables.respondentProductName",
			CommentLabelKey:       "tables.comments",
		},
		DateConfig: DateConfig{MinDate: "2006-12-31", MaxDate: "2026-03-31"},
	}
}

func emrtV1Override(id, companyLabelPrefix string) emrtOverride {
	return emrtOverride{
		id:          id,
		minerals:    emrtV1Minerals(),
		scopeMode:   ScopeFixed,
		q1Extra:     "Not applicable for this declaration",
		q1Negatives: []string{"No", "Unknown", "Not applicable for this declaration"},
		q3OptionsByMineral: map[string][]QuestionOption{
			"cobalt": append(yesNoUnknownOptions(), opt("DRC only")),
			"mica":   append(yesNoUnknownOptions(), opt("India and/or Madagascar only")),
		},
		q5Options:          opts("1", "Greater than 90%", "Greater than 75%", "Greater than 50%", "50% or less", "None"),
		cOptions:           yesNoOptions(),
		companyLabelPrefix: companyLabelPrefix,
		smelterSource:      MetalDropdownSource{Kind: MetalsFixed, Metals: emrtV1Minerals()},
		mineList:           MineListConfig{Available: false},
	}
}

func emrtV2Override(id string, smelterNameMode SmelterNameMode) emrtOverride {
	return emrtOverride{
		id:          id,
		minerals:    emrtV2Minerals(),
		scopeMode:   ScopeDynamicDropdown,
		q1Extra:     "Not declaring",
		q1Negatives: []string{"No", "Unknown", "Not declaring"},
		q5Options: opts(
			"100%", "Greater than 90%", "Greater than 75%", "Greater than 50%",
			"50% or less", "None", "Did not survey",
		),
		cOptions:           opts("Yes", "Yes, when more processors are validated", "No"),
		companyLabelPrefix: "companyQuestions.emrt",
		smelterSource:      MetalDropdownSource{Kind: MetalsQ2Yes},
		mineList: MineListConfig{
			Available:       true,
			Source:          &MetalDropdownSource{Kind: MetalsQ2Yes},
			SmelterNameMode: smelterNameMode,
		},
	}
}

func emrtDefinition() TemplateDefinition {
	return TemplateDefinition{
		Type:        TemplateEMRT,
		Name:        "EMRT",
		FullNameKey: "templates.emrt.fullName",
		Versions: []TemplateVersion{
			{ID: "1.1", Label: "1.1"},
			{ID: "1.11", Label: "1.11"},
			{ID: "1.2", Label: "1.2"},
			{ID: "1.3", Label: "1.3"},
			{ID: "2.0", Label: "2.0"},
			{ID: "2.1", Label: "2.1"},
		},
		DefaultVersion: "2.1",
	}
}

func emrtVersionDefs() map[string]*TemplateVersionDef {
	overrides := []emrtOverride{
		emrtV1Override("1.1", "companyQuestions.emrt"),
		emrtV1Override("1.11", "companyQuestions.emrtV11"),
		emrtV1Override("1.2", "companyQuestions.emrt"),
		emrtV1Override("1.3", "companyQuestions.emrt"),
		emrtV2Override("2.0", SmelterNameManual),
		emrtV2Override("2.1", SmelterNameDropdown),
	}
	defs := make(map[string]*TemplateVersionDef, len(overrides))
	for _, o := range overrides {
		defs[o.id] = buildEMRTVersionDef(o)
	}
	return defs
}
