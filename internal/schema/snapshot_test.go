package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmi-forms/internal/formdata"
	"rmi-forms/internal/registry"
)

func newTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	def, err := registry.GetVersionDef(registry.TemplateCMRT, "6.5")
	require.NoError(t, err)
	return NewSnapshot(registry.TemplateCMRT, "6.5", formdata.CreateEmptyFormData(def))
}

func TestSnapshotRoundtrip(t *testing.T) {
	snap := newTestSnapshot(t)
	snap.Locale = "en-US"
	snap.Data.CompanyInfo["companyName"] = "Example Components Ltd"
	snap.Data.Questions["q1"] = snap.Data.Questions["q1"].Set("tin", "Yes")

	raw, err := StringifySnapshot(snap)
	require.NoError(t, err)

	back, err := ParseSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, snap, back)
}

func TestStringifyIsDeterministic(t *testing.T) {
	snap := newTestSnapshot(t)
	a, err := StringifySnapshot(snap)
	require.NoError(t, err)
	b, err := StringifySnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	indented, err := StringifySnapshotIndent(snap)
	require.NoError(t, err)
	assert.NotEqual(t, a, indented)

	// Indentation never changes content.
	flat, err := ParseSnapshot(a)
	require.NoError(t, err)
	pretty, err := ParseSnapshot(indented)
	require.NoError(t, err)
	assert.Equal(t, flat, pretty)
}

func TestParseSnapshotRejections(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr error
	}{
		"not json": {
			raw:     "{",
			wantErr: ErrBadSnapshot,
		},
		"wrong schema version": {
			raw:     `{"schemaVersion":2,"templateType":"cmrt","versionId":"6.5","data":{}}`,
			wantErr: ErrSchemaVersion,
		},
		"unknown template": {
			raw:     `{"schemaVersion":1,"templateType":"xmrt","versionId":"6.5","data":{}}`,
			wantErr: ErrBadSnapshot,
		},
		"unknown version": {
			raw:     `{"schemaVersion":1,"templateType":"cmrt","versionId":"0.1","data":{}}`,
			wantErr: ErrBadSnapshot,
		},
		"bad locale": {
			raw:     `{"schemaVersion":1,"templateType":"cmrt","versionId":"6.5","locale":"fr-FR","data":{}}`,
			wantErr: ErrBadSnapshot,
		},
		"bad answer shape": {
			raw:     `{"schemaVersion":1,"templateType":"cmrt","versionId":"6.5","data":{"questions":{"q1":42}}}`,
			wantErr: ErrBadSnapshot,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(c.raw))
			assert.ErrorIs(t, err, c.wantErr)
		})
	}
}

func TestParseSnapshotNormalizesSparseData(t *testing.T) {
	raw := `{"schemaVersion":1,"templateType":"crt","versionId":"2.21","data":{}}`
	snap, err := ParseSnapshot([]byte(raw))
	require.NoError(t, err)

	assert.NotNil(t, snap.Data.CompanyInfo)
	assert.NotNil(t, snap.Data.SelectedMinerals)
	assert.NotNil(t, snap.Data.Questions)
	assert.NotNil(t, snap.Data.SmelterList)
	assert.NotNil(t, snap.Data.ProductList)
	assert.NotNil(t, snap.Data.MineralsScope)
}
