package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
)

func mustDef(t *testing.T, tt registry.TemplateType, version string) *registry.TemplateVersionDef {
	t.Helper()
	def, err := registry.GetVersionDef(tt, version)
	require.NoError(t, err)
	return def
}

func perMineral(values map[string]string) formdata.Answer {
	a := formdata.PerMineralAnswer()
	for k, v := range values {
		a = a.Set(k, v)
	}
	return a
}

func TestEvalConditionStaysClosedOnBlankAnswers(t *testing.T) {
	answers := map[string]formdata.Answer{
		"q1": perMineral(map[string]string{}),
		"q2": perMineral(map[string]string{}),
	}
	conds := []*registry.GatingCondition{
		{Kind: registry.GateQ1Yes},
		{Kind: registry.GateQ1NotNo},
		{Kind: registry.GateQ1Q2NotNo},
		{Kind: registry.GateQ1NotNegatives, Q1Negatives: []string{"No"}},
		{Kind: registry.GateQ1Q2NotNegatives, Q1Negatives: []string{"No"}, Q2Negatives: []string{"No"}},
	}
	for _, cond := range conds {
		assert.False(t, EvalCondition(cond, answers, "tin"), "kind %v", cond.Kind)
	}

	// Nil conditions and GateAlways are open regardless of answers.
	assert.True(t, EvalCondition(nil, answers, "tin"))
	assert.True(t, EvalCondition(&registry.GatingCondition{Kind: registry.GateAlways}, answers, "tin"))
}

func TestEvalConditionNotNoRequiresAnswer(t *testing.T) {
	cond := &registry.GatingCondition{Kind: registry.GateQ1NotNo}

	for answer, want := range map[string]bool{
		"Yes":     true,
		"Unknown": true,
		"No":      false,
		"":        false,
		"  ":      false,
	} {
		answers := map[string]formdata.Answer{
			"q1": perMineral(map[string]string{"gold": answer}),
		}
		assert.Equal(t, want, EvalCondition(cond, answers, "gold"), "answer %q", answer)
	}
}

func TestEvalConditionNotNegatives(t *testing.T) {
	cond := &registry.GatingCondition{
		Kind:        registry.GateQ1Q2NotNegatives,
		Q1Negatives: []string{"No", "Unknown", "Not declaring"},
		Q2Negatives: []string{"No", "Unknown"},
	}
	eval := func(q1, q2 string) bool {
		answers := map[string]formdata.Answer{
			"q1": perMineral(map[string]string{"cobalt": q1}),
			"q2": perMineral(map[string]string{"cobalt": q2}),
		}
		return EvalCondition(cond, answers, "cobalt")
	}

	assert.True(t, eval("Yes", "Yes"))
	assert.False(t, eval("Not declaring", "Yes"))
	assert.False(t, eval("Yes", "Unknown"))
	assert.False(t, eval("Yes", ""))
	assert.False(t, eval("", "Yes"))
}

func TestCalculateGatingCMRT(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	answers := map[string]formdata.Answer{
		"q1": perMineral(map[string]string{"tantalum": "Yes", "tin": "No"}),
		"q2": perMineral(map[string]string{"tantalum": "Yes"}),
	}

	tantalum := CalculateGating(def, answers, "tantalum")
	assert.True(t, tantalum.Q2Enabled)
	assert.True(t, tantalum.LaterQuestionsEnabled)
	assert.True(t, tantalum.CompanyQuestionsEnabled)
	assert.True(t, tantalum.SmelterListRequired)

	tin := CalculateGating(def, answers, "tin")
	assert.False(t, tin.Q2Enabled)
	assert.False(t, tin.SmelterListRequired)

	// Untouched mineral: everything gated stays closed.
	gold := CalculateGating(def, answers, "gold")
	assert.False(t, gold.Q2Enabled)
	assert.False(t, gold.LaterQuestionsEnabled)
}

func TestCalculateGatingAMRT(t *testing.T) {
	def := mustDef(t, registry.TemplateAMRT, "1.3")
	answers := map[string]formdata.Answer{
		"q1": perMineral(map[string]string{"zinc": "Yes", "silver": "Not declaring"}),
	}

	zinc := CalculateGating(def, answers, "zinc")
	assert.True(t, zinc.Q2Enabled)
	assert.True(t, zinc.SmelterListRequired)
	// Later questions and company questions are always open on AMRT.
	assert.True(t, zinc.LaterQuestionsEnabled)
	assert.True(t, zinc.CompanyQuestionsEnabled)

	silver := CalculateGating(def, answers, "silver")
	assert.False(t, silver.Q2Enabled)
	assert.False(t, silver.SmelterListRequired)
	assert.True(t, silver.LaterQuestionsEnabled)
}

func TestCalculateAllGatingDefaultsToCatalog(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	gating := CalculateAllGating(def, map[string]formdata.Answer{}, nil)
	assert.Len(t, gating, 4)
	assert.Contains(t, gating, "tungsten")
}
