package registry

import "strings"

// optionKey derives a stable label key from an option value.
func optionKey(value string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return "options." + strings.TrimSuffix(b.String(), "-")
}

func opt(value string) QuestionOption {
	return QuestionOption{Value: value, LabelKey: optionKey(value)}
}

func opts(values ...string) []QuestionOption {
	out := make([]QuestionOption, 0, len(values))
	for _, v := range values {
		out = append(out, opt(v))
	}
	return out
}

func yesNoOptions() []QuestionOption {
	return opts("Yes", "No")
}

func yesNoUnknownOptions() []QuestionOption {
	return opts("Yes", "No", "Unknown")
}

func mineral(key, labelKey string) MineralDef {
	return MineralDef{Key: key, LabelKey: labelKey}
}

// standardPages returns the page layout shared by every template family.
// The mine list page exists everywhere but is only available when the
// version ships a mine table.
func standardPages(mineListAvailable bool) []PageDef {
	return []PageDef{
		{Key: "declaration", LabelKey: "pages.declaration", Available: true},
		{Key: "smelterList", LabelKey: "pages.smelterList", Available: true},
		{Key: "mineList", LabelKey: "pages.mineList", Available: mineListAvailable},
		{Key: "productList", LabelKey: "pages.productList", Available: true},
		{Key: "checker", LabelKey: "pages.checker", Available: true},
	}
}

// sharedCompanyInfoFields is the company info block used by CMRT, EMRT and
// CRT. AMRT uses the same block with the address made mandatory.
func sharedCompanyInfoFields() []FieldDef {
	return []FieldDef{
		{Key: "companyName", LabelKey: "fields.companyName", Type: FieldText, Required: AlwaysRequired},
		{Key: "declarationScope", LabelKey: "fields.reportingScope", Type: FieldSelect, Required: AlwaysRequired},
		{Key: "scopeDescription", LabelKey: "fields.scopeDescription", Type: FieldTextarea, Required: ConditionallyRequired},
		{Key: "companyId", LabelKey: "fields.companyId", Type: FieldText, Required: NotRequired},
		{Key: "companyAuthId", LabelKey: "fields.companyAuthId", Type: FieldText, Required: NotRequired},
		{Key: "address", LabelKey: "fields.address", Type: FieldText, Required: NotRequired},
		{Key: "contactName", LabelKey: "fields.contactName", Type: FieldText, Required: AlwaysRequired},
		{Key: "contactEmail", LabelKey: "fields.contactEmail", Type: FieldEmail, Required: AlwaysRequired},
		{Key: "contactPhone", LabelKey: "fields.contactPhone", Type: FieldText, Required: AlwaysRequired},
		{Key: "authorizerName", LabelKey: "fields.authorizerName", Type: FieldText, Required: AlwaysRequired},
		{Key: "authorizerTitle", LabelKey: "fields.authorizerTitle", Type: FieldText, Required: NotRequired},
		{Key: "authorizerEmail", LabelKey: "fields.authorizerEmail", Type: FieldEmail, Required: AlwaysRequired},
		{Key: "authorizerPhone", LabelKey: "fields.authorizerPhone", Type: FieldText, Required: NotRequired},
		{Key: "authorizationDate", LabelKey: "fields.authorizationDate", Type: FieldDate, Required: AlwaysRequired},
	}
}

func gateAlways() *GatingCondition          { return &GatingCondition{Kind: GateAlways} }
func gateQ1Yes() *GatingCondition           { return &GatingCondition{Kind: GateQ1Yes} }
func gateQ1NotNo() *GatingCondition         { return &GatingCondition{Kind: GateQ1NotNo} }
func gateQ1Q2NotNo() *GatingCondition       { return &GatingCondition{Kind: GateQ1Q2NotNo} }
func gateQ1NotNegatives(negatives ...string) *GatingCondition {
	return &GatingCondition{Kind: GateQ1NotNegatives, Q1Negatives: negatives}
}
func gateQ1Q2NotNegatives(q1Negatives, q2Negatives []string) *GatingCondition {
	return &GatingCondition{Kind: GateQ1Q2NotNegatives, Q1Negatives: q1Negatives, Q2Negatives: q2Negatives}
}
