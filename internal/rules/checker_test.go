package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
	"rmi-forms/internal/transform"
)

func stateFor(data formdata.FormData) FormState {
	return FormState{
		ScopeType:        data.CompanyInfo["declarationScope"],
		QuestionAnswers:  data.Questions,
		SelectedMinerals: data.SelectedMinerals,
		CustomMinerals:   data.CustomMinerals,
	}
}

func findError(errs []CheckerError, fieldPath string) *CheckerError {
	for i := range errs {
		if errs[i].FieldPath == fieldPath {
			return &errs[i]
		}
	}
	return nil
}

func TestCheckerEmptyForm(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := formdata.CreateEmptyFormData(def)
	errs := RunChecker(def, stateFor(data), data)
	require.NotEmpty(t, errs)

	companyName := findError(errs, "companyInfo.companyName")
	require.NotNil(t, companyName)
	assert.Equal(t, MsgRequiredField, companyName.MessageKey)
	assert.Equal(t, "fields.companyName", companyName.FieldLabelKey)
	assert.Equal(t, "error", companyName.Severity)
	assert.True(t, strings.HasPrefix(companyName.Code, "R"), "code %s", companyName.Code)

	// Q1 is owed for every catalog mineral on a fixed-scope template.
	for _, key := range []string{"tantalum", "tin", "gold", "tungsten"} {
		e := findError(errs, "questions.q1."+key)
		require.NotNil(t, e, "missing q1 error for %s", key)
		assert.True(t, strings.HasPrefix(e.Code, "E"))
	}

	// Gated sections stay silent while their gates are closed.
	assert.Nil(t, findError(errs, "questions.q3.tin"))
	assert.Nil(t, findError(errs, "companyQuestions.a"))
	assert.Nil(t, findError(errs, "smelterList.tin"))

	// Optional scope description only matters for scope C.
	assert.Nil(t, findError(errs, "companyInfo.scopeDescription"))

	// Codes are unique.
	seen := map[string]bool{}
	for _, e := range errs {
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
	}
}

func TestCheckerScopeCRequiresDescription(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := formdata.CreateEmptyFormData(def)
	data.CompanyInfo["declarationScope"] = "C"
	errs := RunChecker(def, stateFor(data), data)
	assert.NotNil(t, findError(errs, "companyInfo.scopeDescription"))
}

func TestCheckerScopeBRequiresProducts(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := formdata.CreateEmptyFormData(def)
	data.CompanyInfo["declarationScope"] = "B"

	errs := RunChecker(def, stateFor(data), data)
	e := findError(errs, "productList")
	require.NotNil(t, e)
	assert.Equal(t, MsgRequiredProductList, e.MessageKey)

	data.ProductList = []formdata.ProductRow{
		{ID: "p-1", ProductNumber: "X-100"},
		{ID: "p-2"},
	}
	errs = RunChecker(def, stateFor(data), data)
	assert.Nil(t, findError(errs, "productList"))
	assert.Nil(t, findError(errs, "productList.0.productNumber"))
	assert.NotNil(t, findError(errs, "productList.1.productNumber"))
}

func TestCheckerCompanyQuestionComment(t *testing.T) {
	def := mustDef(t, registry.TemplateCRT, "2.21")
	data := formdata.CreateEmptyFormData(def)
	// Open the company questions gate.
	data.Questions["q1"] = formdata.Scalar("Yes")
	data.CompanyQuestions["a"] = formdata.Scalar("Yes")

	errs := RunChecker(def, stateFor(data), data)
	e := findError(errs, "companyQuestions.a_comment")
	require.NotNil(t, e)
	assert.Equal(t, MsgRequiredCompanyQuestionComment, e.MessageKey)

	data.CompanyQuestions["a_comment"] = formdata.Scalar("engaged a third-party audit")
	errs = RunChecker(def, stateFor(data), data)
	assert.Nil(t, findError(errs, "companyQuestions.a_comment"))

	// A "No" answer does not trigger the comment.
	data.CompanyQuestions["a"] = formdata.Scalar("No")
	data.CompanyQuestions["a_comment"] = formdata.Scalar("")
	errs = RunChecker(def, stateFor(data), data)
	assert.Nil(t, findError(errs, "companyQuestions.a_comment"))
}

func TestCheckerSmelterListMissingMetal(t *testing.T) {
	def := mustDef(t, registry.TemplateEMRT, "2.1")
	data := formdata.CreateEmptyFormData(def)
	data.SelectedMinerals = []string{"cobalt", "mica"}
	data.Questions["q1"] = perMineral(map[string]string{"cobalt": "Yes", "mica": "No"})
	data.Questions["q2"] = perMineral(map[string]string{"cobalt": "Yes"})

	errs := RunChecker(def, stateFor(data), data)
	e := findError(errs, "smelterList.cobalt")
	require.NotNil(t, e)
	assert.Equal(t, MsgRequiredSmelterList, e.MessageKey)
	assert.Equal(t, "minerals.cobalt", e.FieldLabelKey)
	assert.Nil(t, findError(errs, "smelterList.mica"))
}

func TestCheckerSmelterLookupOnlyForRequiredMetals(t *testing.T) {
	def := mustDef(t, registry.TemplateEMRT, "2.1")
	data := formdata.CreateEmptyFormData(def)
	data.SelectedMinerals = []string{"cobalt", "mica"}
	data.Questions["q1"] = perMineral(map[string]string{"cobalt": "Yes", "mica": "No"})
	data.Questions["q2"] = perMineral(map[string]string{"cobalt": "Yes", "mica": "No"})
	data.SmelterList = []formdata.SmelterRow{
		{ID: "s-1", Metal: "cobalt"},
		{ID: "s-2", Metal: "mica"},
	}

	errs := RunChecker(def, stateFor(data), data)
	require.NotNil(t, findError(errs, "smelterList.0.smelterLookup"))
	// Mica's gate is closed, so its row owes no lookup.
	assert.Nil(t, findError(errs, "smelterList.1.smelterLookup"))
}

func TestCheckerNotListedRequiresNameAndCountry(t *testing.T) {
	def := mustDef(t, registry.TemplateEMRT, "2.1")
	data := formdata.CreateEmptyFormData(def)
	data.SelectedMinerals = []string{"cobalt"}
	data.Questions["q1"] = perMineral(map[string]string{"cobalt": "Yes"})
	data.Questions["q2"] = perMineral(map[string]string{"cobalt": "Yes"})
	data.SmelterList = []formdata.SmelterRow{
		{ID: "s-1", Metal: "cobalt", SmelterLookup: transform.SmelterNotListed},
	}

	errs := RunChecker(def, stateFor(data), data)
	assert.NotNil(t, findError(errs, "smelterList.0.smelterName"))
	assert.NotNil(t, findError(errs, "smelterList.0.smelterCountry"))

	data.SmelterList[0].SmelterName = "ACME Cobalt Refinery"
	data.SmelterList[0].SmelterCountry = "Finland"
	errs = RunChecker(def, stateFor(data), data)
	assert.Nil(t, findError(errs, "smelterList.0.smelterName"))
	assert.Nil(t, findError(errs, "smelterList.0.smelterCountry"))
}

func TestCheckerCustomMineralUsesTypedLabel(t *testing.T) {
	def := mustDef(t, registry.TemplateAMRT, "1.3")
	data := formdata.CreateEmptyFormData(def)
	data.SelectedMinerals = []string{"other"}
	data.CustomMinerals = []string{"Cerium"}
	data.Questions["q1"] = perMineral(map[string]string{"other-0": "Yes"})

	errs := RunChecker(def, stateFor(data), data)
	e := findError(errs, "smelterList.other-0")
	require.NotNil(t, e)
	assert.Equal(t, map[string]string{"field": "Cerium"}, e.MessageValues)
	assert.Empty(t, e.FieldLabelKey)
}

func TestCheckerMineralsScopeReason(t *testing.T) {
	def := mustDef(t, registry.TemplateAMRT, "1.3")
	data := formdata.CreateEmptyFormData(def)
	data.MineralsScope = []formdata.MineralsScopeRow{
		{ID: "r-1", Mineral: "zinc"},
		{ID: "r-2", Mineral: "", Reason: ""},
		{ID: "r-3", Mineral: "silver", Reason: "customer request"},
	}

	errs := RunChecker(def, stateFor(data), data)
	e := findError(errs, "mineralsScope.0.reason")
	require.NotNil(t, e)
	assert.True(t, strings.HasPrefix(e.Code, "A"))
	assert.Nil(t, findError(errs, "mineralsScope.1.reason"))
	assert.Nil(t, findError(errs, "mineralsScope.2.reason"))
}

func TestCheckerEmailFormat(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := formdata.CreateEmptyFormData(def)
	data.CompanyInfo["contactEmail"] = "not-an-email"
	data.CompanyInfo["authorizerEmail"] = "auditor@example.com"

	errs := RunChecker(def, stateFor(data), data)
	e := findError(errs, "companyInfo.contactEmail")
	require.NotNil(t, e)
	assert.Equal(t, MsgInvalidEmail, e.MessageKey)
	for _, err := range errs {
		if err.FieldPath == "companyInfo.authorizerEmail" {
			assert.NotEqual(t, MsgInvalidEmail, err.MessageKey)
		}
	}
}
