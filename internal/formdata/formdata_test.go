package formdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmi-forms/internal/registry"
)

func mustDef(t *testing.T, tt registry.TemplateType, version string) *registry.TemplateVersionDef {
	t.Helper()
	def, err := registry.GetVersionDef(tt, version)
	require.NoError(t, err)
	return def
}

func TestCreateEmptyFormDataFixedScope(t *testing.T) {
	def := mustDef(t, registry.TemplateCMRT, "6.5")
	data := CreateEmptyFormData(def)

	assert.Equal(t, []string{"tantalum", "tin", "gold", "tungsten"}, data.SelectedMinerals)
	assert.Empty(t, data.CustomMinerals)

	for _, f := range def.CompanyInfoFields {
		v, ok := data.CompanyInfo[f.Key]
		assert.True(t, ok, "missing company field %s", f.Key)
		assert.Empty(t, v)
	}

	q1 := data.Questions["q1"]
	require.True(t, q1.PerMineral)
	assert.Len(t, q1.ByMineral, 4)
	assert.Contains(t, q1.ByMineral, "tungsten")

	// Comment slots exist only for questions that carry a comment field.
	assert.Contains(t, data.CompanyQuestions, "a")
	assert.Contains(t, data.CompanyQuestions, CommentKey("a"))

	assert.NotNil(t, data.SmelterList)
	assert.Empty(t, data.SmelterList)
}

func TestCreateEmptyFormDataFreeTextScope(t *testing.T) {
	def := mustDef(t, registry.TemplateAMRT, "1.1")
	data := CreateEmptyFormData(def)

	assert.Empty(t, data.SelectedMinerals)
	require.Len(t, data.CustomMinerals, len(def.MineralScope.Minerals))
	for i, label := range data.CustomMinerals {
		want := ""
		if i < len(def.MineralScope.DefaultCustomMinerals) {
			want = def.MineralScope.DefaultCustomMinerals[i]
		}
		if want == "" {
			want = HumanizeKey(def.MineralScope.Minerals[i].Key)
		}
		assert.Equal(t, want, label, "slot %d", i)
	}
}

func TestCreateEmptyFormDataIsDeterministic(t *testing.T) {
	def := mustDef(t, registry.TemplateEMRT, "2.1")
	a := CreateEmptyFormData(def)
	b := CreateEmptyFormData(def)
	require.Equal(t, a, b)

	// Dynamic-dropdown scopes start with nothing selected.
	assert.Empty(t, a.SelectedMinerals)
	assert.Empty(t, ActiveMineralKeys(def, a.SelectedMinerals, a.CustomMinerals))
}

func TestActiveMineralKeysDynamicDropdown(t *testing.T) {
	def := mustDef(t, registry.TemplateAMRT, "1.3")

	keys := ActiveMineralKeys(def, []string{"silver", "zinc"}, nil)
	assert.Equal(t, []string{"silver", "zinc"}, keys)

	// Selecting "other" activates filled free-form slots as synthetic keys.
	keys = ActiveMineralKeys(def, []string{"zinc", "other"}, []string{"Cerium", "", "Yttrium"})
	assert.Equal(t, []string{"zinc", "other-0", "other-2"}, keys)

	labels := CustomMineralLabels(def, []string{"other"}, []string{"Cerium"})
	assert.Equal(t, map[string]string{"other-0": "Cerium"}, labels)

	// Without "other" selected the custom slots stay inactive.
	keys = ActiveMineralKeys(def, []string{"zinc"}, []string{"Cerium"})
	assert.Equal(t, []string{"zinc"}, keys)
}

func TestActiveMineralKeysFreeText(t *testing.T) {
	def := mustDef(t, registry.TemplateAMRT, "1.2")
	custom := make([]string, len(def.MineralScope.Minerals))
	custom[0] = "Aluminum"
	custom[2] = "Copper"

	keys := ActiveMineralKeys(def, nil, custom)
	assert.Equal(t, []string{
		def.MineralScope.Minerals[0].Key,
		def.MineralScope.Minerals[2].Key,
	}, keys)
}

func TestOtherMineralKey(t *testing.T) {
	assert.Equal(t, "other-3", OtherMineralKey(3))

	i, ok := ParseOtherMineralKey("other-7")
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = ParseOtherMineralKey("tin")
	assert.False(t, ok)
	_, ok = ParseOtherMineralKey("other-x")
	assert.False(t, ok)
}

func TestAnswerJSONShapes(t *testing.T) {
	scalar := Scalar("Yes")
	raw, err := json.Marshal(scalar)
	require.NoError(t, err)
	assert.Equal(t, `"Yes"`, string(raw))

	per := PerMineralAnswer().Set("tin", "No")
	raw, err = json.Marshal(per)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tin":"No"}`, string(raw))

	var back Answer
	require.NoError(t, json.Unmarshal([]byte(`{"gold":"Yes"}`), &back))
	assert.True(t, back.PerMineral)
	assert.Equal(t, "Yes", back.Get("gold"))

	require.NoError(t, json.Unmarshal([]byte(`"Unknown"`), &back))
	assert.False(t, back.PerMineral)
	assert.Equal(t, "Unknown", back.Get("anything"))

	assert.Error(t, json.Unmarshal([]byte(`42`), &back))
}

func TestGetAnswerValueShapeMismatch(t *testing.T) {
	answers := map[string]Answer{
		"q1": PerMineralAnswer().Set("tin", "Yes"),
		"q2": Scalar("No"),
	}
	assert.Equal(t, "Yes", GetAnswerValue(answers, "q1", "tin", true))
	assert.Equal(t, "", GetAnswerValue(answers, "q1", "tin", false))
	assert.Equal(t, "No", GetAnswerValue(answers, "q2", "", false))
	assert.Equal(t, "", GetAnswerValue(answers, "q2", "tin", true))
	assert.Equal(t, "", GetAnswerValue(answers, "missing", "", false))
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Rare Earth Elements", HumanizeKey("rare-earth_elements"))
	assert.Equal(t, "Tin", HumanizeKey("tin"))
}

func TestNewRowIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewRowID("smelter")
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
