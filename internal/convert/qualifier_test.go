package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agetab/internal/model"
)

func TestConvert_QualifiersFollowTheirLine(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - Name
      - {name: Name, qualifiers: [Unit]}
    rows:
      - id: S1
        cells: [[a, b], [mg, kg]]
`, testConfig())

	names := attrsNamed(object(t, res.Module, "S1"), "Name")
	require.Len(t, names, 2)

	for i, want := range []string{"mg", "kg"} {
		units := attrsNamed(names[i], "Unit")
		require.Len(t, units, 1)
		assert.Equal(t, want, units[0].Text())
	}
}

func TestConvert_QualifierOnRelation(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - partOf
      - {name: partOf, qualifiers: [Unit]}
    rows:
      - id: S1
        cells: [S2, w]
      - id: S2
`, testConfig())

	rels := relationsNamed(object(t, res.Module, "S1"), "partOf")
	require.Len(t, rels, 1)

	units := attrsNamed(rels[0], "Unit")
	require.Len(t, units, 1)
	assert.Equal(t, "w", units[0].Text())

	inv := rels[0].InverseRelation()
	require.NotNil(t, inv)
	assert.Empty(t, inv.Attributes(), "synthesized inverses carry no qualifiers")
}

func TestConvert_QualifierOfQualifier(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - Name
      - {name: Name, qualifiers: [Unit]}
      - {name: Name, qualifiers: [Unit, Notes]}
    rows:
      - id: S1
        cells: [a, mg, [note one, "", note two]]
`, testConfig())

	names := attrsNamed(object(t, res.Module, "S1"), "Name")
	require.Len(t, names, 1)

	units := attrsNamed(names[0], "Unit")
	require.Len(t, units, 1)

	notes := attrsNamed(units[0], "Notes")
	require.Len(t, notes, 1, "TEXT qualifiers continue on the following lines")
	assert.Equal(t, "note one\n\nnote two", notes[0].Text())
}

func TestConvert_ObjectAndFileQualifiers(t *testing.T) {
	s := testSchema(t)

	res, err := convertWith(t, s, `
blocks:
  - class: Sample
    columns:
      - Name
      - {name: Name, qualifiers: [UsedProtocol]}
      - {name: Name, qualifiers: [Data]}
    rows:
      - id: S1
        cells: [a, P1, "g:raw.dat"]
      - id: S2
        cells: [b, "c:P9", scan.tif]
  - class: Protocol
    rows:
      - id: P1
`, testConfig())
	require.NoError(t, err)

	a := attrsNamed(object(t, res.Module, "S1"), "Name")[0]
	require.Len(t, attrsNamed(a, "UsedProtocol"), 1)
	assert.Equal(t, "P1", attrsNamed(a, "UsedProtocol")[0].TargetObject().ID)

	file := attrsNamed(a, "Data")[0]
	assert.Equal(t, model.DataTypeFile, file.DataType())
	assert.Equal(t, "raw.dat", file.Text())
	assert.Equal(t, model.ScopeGlobal, file.Scope())

	b := attrsNamed(object(t, res.Module, "S2"), "Name")[0]

	id, scope, ok := attrsNamed(b, "UsedProtocol")[0].External()
	assert.True(t, ok)
	assert.Equal(t, "P9", id)
	assert.Equal(t, model.ScopeCluster, scope)
	assert.Equal(t, model.ScopeCluster, attrsNamed(b, "Data")[0].Scope(), "files default to cluster scope")
}

func TestConvert_QualifierErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns string
		cells   string
		code    string
	}{
		{
			name:    "qualifier without host value",
			columns: `[Name, {name: Name, qualifiers: [Unit]}]`,
			cells:   `["", mg]`,
			code:    CodeNoHostValue,
		},
		{
			name:    "qualified qualifier reference",
			columns: `[Name, {name: Name, qualifiers: [{name: Unit, qualifiers: [Notes]}]}]`,
			cells:   `[a, mg]`,
			code:    CodeQualifiedQualifier,
		},
		{
			name:    "unknown qualifier class",
			columns: `[Name, {name: Name, qualifiers: [Unitt]}]`,
			cells:   `[a, mg]`,
			code:    CodeUnknownClass,
		},
		{
			name:    "custom qualifier without permission",
			columns: `[Name, {name: Name, qualifiers: ["{Scale}"]}]`,
			cells:   `[a, log]`,
			code:    CodePermissionDenied,
		},
		{
			name:    "unresolved object qualifier",
			columns: `[Name, {name: Name, qualifiers: [UsedProtocol]}]`,
			cells:   `[a, P7]`,
			code:    CodeUnresolvedTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convertYAML(t, `
blocks:
  - class: Sample
    columns: `+tt.columns+`
    rows:
      - id: S1
        cells: `+tt.cells+`
`, testConfig())

			var f *Failure
			require.True(t, errors.As(err, &f))
			require.Len(t, f.Diagnostics.Errors, 1)
			assert.Equal(t, tt.code, f.Diagnostics.Errors[0].Code)
		})
	}
}

func TestConvert_QualifierOfInvalidHostIsSilent(t *testing.T) {
	_, err := convertYAML(t, `
blocks:
  - class: Sample
    columns:
      - Nmae
      - {name: Nmae, qualifiers: [Unit]}
    rows:
      - id: S1
        cells: [a, mg]
`, testConfig())

	var f *Failure
	require.True(t, errors.As(err, &f))
	require.Len(t, f.Diagnostics.Errors, 1, "only the host column reports")
	assert.Equal(t, CodeUnknownClass, f.Diagnostics.Errors[0].Code)
}
