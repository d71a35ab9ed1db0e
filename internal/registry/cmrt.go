package registry

func cmrtMinerals() []MineralDef {
	return []MineralDef{
		mineral("tantalum", "minerals.tantalum"),
		mineral("tin", "minerals.tin"),
		mineral("gold", "minerals.gold"),
		mineral("tungsten", "minerals.tungsten"),
	}
}

func cmrtQ6OptionsLegacy() []QuestionOption {
	return opts("1", "Greater than 90%", "Greater than 75%", "Greater than 50%", "50% or less", "None")
}

func cmrtQ6Options() []QuestionOption {
	return opts("100%", "Greater than 90%", "Greater than 75%", "Greater than 50%", "50% or less", "None")
}

// cmrtOverride carries the per-version deltas applied on top of the CMRT
// base definition.
type cmrtOverride struct {
	id                             string
	q6Options                      []QuestionOption
	productNumberLabelKey          string
	productNameLabelKey            string
	notListedRequireNameCountry    bool
	notYetIdentifiedCountryByMetal map[string]string
	maxDate                        string
}

func buildCMRTVersionDef(o cmrtOverride) *TemplateVersionDef {
	commentRequired := func(key string, values ...string) CompanyQuestionDef {
		return CompanyQuestionDef{
			Key:                 key,
			LabelKey:            "companyQuestions.cmrt." + key,
			Options:             yesNoOptions(),
			HasCommentField:     true,
			CommentRequiredWhen: values,
		}
	}
	return &TemplateVersionDef{
		TemplateType: TemplateCMRT,
		Version:      TemplateVersion{ID: o.id, Label: o.id},
		Pages:        standardPages(false),
		MineralScope: MineralScopeConfig{
			Mode:     ScopeFixed,
			Minerals: cmrtMinerals(),
		},
		CompanyInfoFields: sharedCompanyInfoFields(),
		Questions: []QuestionDef{
			{Key: "q1", LabelKey: "questions.cmrt.q1", Options: yesNoOptions(), PerMineral: true},
			{Key: "q2", LabelKey: "questions.cmrt.q2", Options: yesNoOptions(), PerMineral: true},
			{Key: "q3", LabelKey: "questions.cmrt.q3", Options: yesNoUnknownOptions(), PerMineral: true},
			{Key: "q4", LabelKey: "questions.cmrt.q4", Options: yesNoUnknownOptions(), PerMineral: true},
			{Key: "q5", LabelKey: "questions.cmrt.q5", Options: yesNoUnknownOptions(), PerMineral: true},
			{Key: "q6", LabelKey: "questions.cmrt.q6", Options: o.q6Options, PerMineral: true},
			{Key: "q7", LabelKey: "questions.cmrt.q7", Options: yesNoOptions(), PerMineral: true},
			{Key: "q8", LabelKey: "questions.cmrt.q8", Options: yesNoOptions(), PerMineral: true},
		},
		CompanyQuestions: []CompanyQuestionDef{
			commentRequired("a"),
			commentRequired("b", "Yes"),
			commentRequired("c"),
			commentRequired("d"),
			{
				Key:      "e",
				LabelKey: "companyQuestions.cmrt.e",
				Options: opts(
					"Yes, in conformance with IPC1755 (e.g., CMRT)",
					"Yes, using other format (describe)",
					"No",
				),
				HasCommentField: true,
			},
			commentRequired("f"),
			commentRequired("g"),
			{
				Key:      "h",
				LabelKey: "companyQuestions.cmrt.h",
				Options: opts(
					"Yes, with the SEC",
					"Yes, with the EU",
					"Yes, with the SEC and the EU",
					"No",
				),
				HasCommentField: true,
			},
		},
		Gating: GatingConfig{
			Q2:               gateQ1NotNo(),
			LaterQuestions:   gateQ1Q2NotNo(),
			CompanyQuestions: gateQ1Q2NotNo(),
			SmelterList:      gateQ1Q2NotNo(),
		},
		SmelterList: SmelterListConfig{
			Source:                         MetalDropdownSource{Kind: MetalsFixed, Metals: cmrtMinerals()},
			HasIDColumn:                    true,
			HasLookup:                      true,
			NotListedRequireNameCountry:    o.notListedRequireNameCountry,
			NotYetIdentifiedCountryDefault: "Unknown",
			NotYetIdentifiedCountryByMetal: o.notYetIdentifiedCountryByMetal,
		},
		MineList: MineListConfig{Available: false},
		ProductList: ProductListConfig{
			ProductNumberLabelKey: o.productNumberLabelKey,
			ProductNameLabelKey:   o.productNameLabelKey,
			CommentLabelKey:       "tables.comments",
		},
		DateConfig: DateConfig{MinDate: "2006-12-31", MaxDate: o.maxDate},
	}
}

func cmrtDefinition() TemplateDefinition {
	return TemplateDefinition{
		Type:        TemplateCMRT,
		Name:        "CMRT",
		FullNameKey: "templates.cmrt.fullName",
		Versions: []TemplateVersion{
			{ID: "6.01", Label: "6.01"},
			{ID: "6.1", Label: "6.1"},
			{ID: "6.22", Label: "6.22"},
			{ID: "6.31", Label: "6.31"},
			{ID: "6.4", Label: "6.4"},
			{ID: "6.5", Label: "6.5"},
		},
		DefaultVersion: "6.5",
	}
}

func cmrtVersionDefs() map[string]*TemplateVersionDef {
	overrides := []cmrtOverride{
		{
			id:                          "6.01",
			q6Options:                   cmrtQ6OptionsLegacy(),
			productNumberLabelKey:       "tables.manufacturerProductNumber",
			productNameLabelKey:         "tables.manufacturerProductName",
			notListedRequireNameCountry: true,
			maxDate:                     "2026-03-31",
		},
		{
			id:                          "6.1",
			q6Options:                   cmrtQ6OptionsLegacy(),
			productNumberLabelKey:       "tables.manufacturerProductNumber",
			productNameLabelKey:         "tables.manufacturerProductName",
			notListedRequireNameCountry: true,
			maxDate:                     "2026-03-31",
		},
		{
			id:                    "6.22",
			q6Options:             cmrtQ6OptionsLegacy(),
			productNumberLabelKey: "tables.manufacturerProductNumber",
			productNameLabelKey:   "tables.manufacturerProductName",
			maxDate:               "2026-03-31",
		},
		{
			id:                    "6.31",
			q6Options:             cmrtQ6Options(),
			productNumberLabelKey: "tables.manufacturerProductNumber",
			productNameLabelKey:   "tables.manufacturerProductName",
		},
		{
			id:                    "6.4",
			q6Options:             cmrtQ6Options(),
			productNumberLabelKey: "tables.manufacturerProductNumber",
			productNameLabelKey:   "tables.manufacturerProductName",
		},
		{
			id:                             "6.5",
			q6Options:                      cmrtQ6Options(),
			productNumberLabelKey:          "tables.respondentProductNumber",
			productNameLabelKey:            "tables.respondentProductName",
			notYetIdentifiedCountryByMetal: map[string]string{"tungsten": ""},
		},
	}
	defs := make(map[string]*TemplateVersionDef, len(overrides))
	for _, o := range overrides {
		defs[o.id] = buildCMRTVersionDef(o)
	}
	return defs
}
