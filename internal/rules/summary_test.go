package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
)

// The smelter list section counts nothing while its gate is closed, and
// exactly the owed rows once a mineral opens it: one count for the
// mineral's presence, one per row for the lookup column.
func TestSummarySmelterSectionGatingAsymmetry(t *testing.T) {
	def := mustDef(t, registry.TemplateEMRT, "2.1")

	closed := formdata.CreateEmptyFormData(def)
	closed.SelectedMinerals = []string{"cobalt", "mica"}
	closed.Questions["q1"] = perMineral(map[string]string{"cobalt": "No", "mica": "No"})

	result := BuildCheckerSummary(def, stateFor(closed), closed, IdentityTranslate)
	assert.Equal(t, SectionSummary{Total: 0, Completed: 0}, result.Summary.Sections.SmelterList)

	open := formdata.CreateEmptyFormData(def)
	open.SelectedMinerals = []string{"cobalt", "mica"}
	open.Questions["q1"] = perMineral(map[string]string{"cobalt": "Yes", "mica": "No"})
	open.Questions["q2"] = perMineral(map[string]string{"cobalt": "Yes"})
	open.SmelterList = []formdata.SmelterRow{
		{ID: "s-1", Metal: "cobalt"},
	}

	result = BuildCheckerSummary(def, stateFor(open), open, IdentityTranslate)
	assert.Equal(t, SectionSummary{Total: 2, Completed: 1}, result.Summary.Sections.SmelterList)
}

func TestSummaryCompanyInfoCounts(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := formdata.CreateEmptyFormData(def)
	data.CompanyInfo["companyName"] = "Example Components Ltd"

	result := BuildCheckerSummary(def, stateFor(data), data, IdentityTranslate)
	sec := result.Summary.Sections.CompanyInfo
	// Eight always-required fields, one of them filled.
	assert.Equal(t, SectionSummary{Total: 8, Completed: 1}, sec)

	data.CompanyInfo["declarationScope"] = "C"
	result = BuildCheckerSummary(def, stateFor(data), data, IdentityTranslate)
	// Scope C adds the scope description.
	assert.Equal(t, 9, result.Summary.Sections.CompanyInfo.Total)
}

func TestSummaryMineralSelectionCountsOnScopedTemplates(t *testing.T) {
	def := mustDef(t, registry.TemplateEMRT, "2.1")
	empty := formdata.CreateEmptyFormData(def)

	none := BuildCheckerSummary(def, stateFor(empty), empty, IdentityTranslate)

	selected := formdata.CreateEmptyFormData(def)
	selected.SelectedMinerals = []string{"cobalt"}
	some := BuildCheckerSummary(def, stateFor(selected), selected, IdentityTranslate)

	// Selecting a mineral completes the selection requirement but also
	// brings its Q1 into scope.
	assert.Equal(t, none.Summary.CompletedRequired+1, some.Summary.CompletedRequired)
	assert.Greater(t, some.Summary.Sections.QuestionMatrix.Total, none.Summary.Sections.QuestionMatrix.Total)
}

func TestSummaryCompletionPercentage(t *testing.T) {
	def := mustDef(t, registry.TemplateCRT, "2.21")
	data := formdata.CreateEmptyFormData(def)

	result := BuildCheckerSummary(def, stateFor(data), data, IdentityTranslate)
	require.Greater(t, result.Summary.TotalRequired, 0)
	assert.Equal(t, 0, result.Summary.Completion)
	assert.Len(t, result.Errors, len(RunChecker(def, stateFor(data), data)))
}

func TestSummaryPassedItems(t *testing.T) {
	def := mustDef(t, registry.TemplateCRT, "2.21")
	data := formdata.CreateEmptyFormData(def)
	data.CompanyInfo["contactEmail"] = "contact@example.com"

	result := BuildCheckerSummary(def, stateFor(data), data, IdentityTranslate)

	var emails []PassedItem
	for _, item := range result.PassedItems {
		if item.Key == "email.contactEmail" {
			emails = append(emails, item)
		}
	}
	require.Len(t, emails, 1)
	assert.Equal(t, "checker.validEmail", emails[0].Label)
	assert.Equal(t, "companyInfo.contactEmail", emails[0].Location)
}

func TestSummarySectionCompletePassedItem(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := formdata.CreateEmptyFormData(def)
	for _, f := range def.CompanyInfoFields {
		data.CompanyInfo[f.Key] = "filled"
	}
	data.CompanyInfo["contactEmail"] = "a@b.com"
	data.CompanyInfo["authorizerEmail"] = "c@d.com"
	data.CompanyInfo["declarationScope"] = "A"

	result := BuildCheckerSummary(def, stateFor(data), data, IdentityTranslate)
	found := false
	for _, item := range result.PassedItems {
		if item.Location == "companyInfo" {
			found = true
			assert.Equal(t, "checker.sectionComplete", item.Label)
		}
	}
	assert.True(t, found, "companyInfo section should report complete")
}
