package registry

func amrtFreeTextMinerals(keys []string) []MineralDef {
	out := make([]MineralDef, 0, len(keys))
	for _, k := range keys {
		out = append(out, mineral(k, "minerals."+k))
	}
	return out
}

func amrtV13Minerals() []MineralDef {
	keys := []string{
		"aluminum", "iridium", "lime", "manganese", "palladium", "platinum",
		"rareEarthElements", "rhodium", "ruthenium", "silver", "sodaAsh",
		"zinc", "other",
	}
	return amrtFreeTextMinerals(keys)
}

type amrtOverride struct {
	id                  string
	scope               MineralScopeConfig
	hasIDColumn         bool
	hasLookup           bool
	hasCombinedColumn   bool
	recycledScrap       RecycledScrapOptions
	notYetIdentified    string
	smelterNameMode     SmelterNameMode
	hasRequesterColumns bool
}

func buildAMRTVersionDef(o amrtOverride) *TemplateVersionDef {
	return &TemplateVersionDef{
		TemplateType: TemplateAMRT,
		Version:      TemplateVersion{ID: o.id, Label: o.id},
		Pages:        standardPages(true),
		MineralScope: o.scope,
		CompanyInfoFields: func() []FieldDef {
			fields := sharedCompanyInfoFields()
			for i := range fields {
				if fields[i].Key == "address" {
					fields[i].Required = AlwaysRequired
				}
			}
			return fields
		}(),
		Questions: []QuestionDef{
			{
				Key:        "q1",
				LabelKey:   "questions.amrt.q1",
				Options:    append(yesNoUnknownOptions(), opt("Not declaring")),
				PerMineral: true,
			},
			{
				Key:      "q2",
				LabelKey: "questions.amrt.q2",
				Options: opts(
					"1", "Greater than 90%", "Greater than 75%", "Greater than 50%",
					"50% or less", "None", "Unknown", "Did not survey",
				),
				PerMineral: true,
			},
		},
		CompanyQuestions: nil,
		Gating: GatingConfig{
			Q2:               gateQ1NotNegatives("No", "Unknown", "Not declaring"),
			LaterQuestions:   gateAlways(),
			CompanyQuestions: gateAlways(),
			SmelterList:      gateQ1Yes(),
		},
		SmelterList: SmelterListConfig{
			Source:                         MetalDropdownSource{Kind: MetalsActive},
			HasIDColumn:                    o.hasIDColumn,
			HasLookup:                      o.hasLookup,
			HasCombinedColumn:              o.hasCombinedColumn,
			RecycledScrapOptions:           o.recycledScrap,
			NotListedRequireNameCountry:    true,
			NotYetIdentifiedCountryDefault: o.notYetIdentified,
		},
		MineList: MineListConfig{
			Available:       true,
			Source:          &MetalDropdownSource{Kind: MetalsActive},
			SmelterNameMode: o.smelterNameMode,
		},
		ProductList: ProductListConfig{
			HasRequesterColumns:   o.hasRequesterColumns,
			ProductNumberLabelKey: "tables.respondentProductNumber",
			ProductNameLabelKey:   "tables.respondentProductName",
			CommentLabelKey:       "tables.comments",
		},
		DateConfig: DateConfig{MinDate: "2006-12-31", MaxDate: "2026-03-31"},
	}
}

func amrtDefinition() TemplateDefinition {
	return TemplateDefinition{
		Type:        TemplateAMRT,
		Name:        "AMRT",
		FullNameKey: "templates.amrt.fullName",
		Versions: []TemplateVersion{
			{ID: "1.1", Label: "1.1"},
			{ID: "1.2", Label: "1.2"},
			{ID: "1.3", Label: "1.3"},
		},
		DefaultVersion: "1.3",
	}
}

func amrtVersionDefs() map[string]*TemplateVersionDef {
	overrides := []amrtOverride{
		{
			id: "1.1",
			scope: MineralScopeConfig{
				Mode: ScopeFreeText,
				Minerals: amrtFreeTextMinerals([]string{
					"aluminum", "copper", "lithium", "nickel", "silver", "chromium", "zinc",
				}),
				MaxCount: 10,
				DefaultCustomMinerals: []string{
					"Aluminium", "Copper", "Lithium", "Nickel", "Silver", "Chromium", "Zinc",
				},
			},
			recycledScrap:    RecycledYesNoUnknown,
			notYetIdentified: "Unknown",
			smelterNameMode:  SmelterNameManual,
		},
		{
			id: "1.2",
			scope: MineralScopeConfig{
				Mode: ScopeFreeText,
				Minerals: amrtFreeTextMinerals([]string{
					"aluminum", "chromium", "copper", "lithium", "nickel", "silver", "zinc",
				}),
				MaxCount: 10,
				DefaultCustomMinerals: []string{
					"铝", "铬", "铜", "锂", "镍", "银", "锌",
				},
			},
			recycledScrap:    RecycledYesNoUnknown,
			notYetIdentified: "Unknown",
			smelterNameMode:  SmelterNameManual,
		},
		{
			id: "1.3",
			scope: MineralScopeConfig{
				Mode:           ScopeDynamicDropdown,
				Minerals:       amrtV13Minerals(),
				MaxCount:       10,
				OtherSlotCount: 12,
			},
			hasIDColumn:         true,
			hasLookup:           true,
			hasCombinedColumn:   true,
			recycledScrap:       RecycledYesNo,
			notYetIdentified:    "",
			smelterNameMode:     SmelterNameDropdown,
			hasRequesterColumns: true,
		},
	}
	defs := make(map[string]*TemplateVersionDef, len(overrides))
	for _, o := range overrides {
		defs[o.id] = buildAMRTVersionDef(o)
	}
	return defs
}
