package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agetab/internal/model"
)

func TestConvert_EmbeddedChainCreatesObjectPerLine(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - {name: UsedProtocol, embedded: {name: Name}}
      - {name: UsedProtocol, embedded: {name: Count}}
    rows:
      - id: S1
        cells: [[alpha, beta], ["1", "2"]]
`, testConfig())

	m := res.Module
	require.Len(t, m.Objects(), 1, "embedded objects are not emitted")

	refs := attrsNamed(object(t, m, "S1"), "UsedProtocol")
	require.Len(t, refs, 2)

	for i, want := range []struct {
		id    string
		name  string
		count int64
	}{
		{"__emb_Protocol1", "alpha", 1},
		{"__emb_Protocol2", "beta", 2},
	} {
		emb := refs[i].TargetObject()
		require.NotNil(t, emb)
		assert.True(t, emb.Embedded)
		assert.False(t, m.IsEmitted(emb))
		assert.Equal(t, want.id, emb.ID)
		assert.Equal(t, "Protocol", emb.Class.Class.Name)
		assert.Equal(t, want.name, attrsNamed(emb, "Name")[0].Text())
		assert.Equal(t, want.count, attrsNamed(emb, "Count")[0].Int())
	}
}

func TestConvert_EmbeddedCounterSpansTheConversion(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - {name: UsedProtocol, embedded: {name: Name}}
    rows:
      - id: S1
        cells: [a]
      - id: S2
        cells: [b]
`, testConfig())

	s2 := attrsNamed(object(t, res.Module, "S2"), "UsedProtocol")
	require.Len(t, s2, 1)
	assert.Equal(t, "__emb_Protocol2", s2[0].TargetObject().ID)
}

func TestConvert_EmbeddedValuesJoinTypeInference(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - Amount
      - {name: UsedProtocol, embedded: {name: Amount}}
    rows:
      - id: S1
        cells: ["3", "4"]
`, testConfig())

	s1 := object(t, res.Module, "S1")
	amount := attrsNamed(s1, "Amount")
	require.Len(t, amount, 1)
	assert.Equal(t, model.DataTypeInteger, amount[0].DataType())

	emb := attrsNamed(s1, "UsedProtocol")[0].TargetObject()
	embAmount := attrsNamed(emb, "Amount")
	require.Len(t, embAmount, 1)
	assert.Equal(t, model.DataTypeInteger, embAmount[0].DataType())
	assert.Equal(t, int64(4), embAmount[0].Int())
}

func TestConvert_EmbeddedChainThroughQualifier(t *testing.T) {
	res := mustConvert(t, `
blocks:
  - class: Sample
    columns:
      - {name: Name, qualifiers: [UsedProtocol], embedded: {name: Name}}
    rows:
      - id: S1
        cells: [wash]
`, testConfig())

	names := attrsNamed(object(t, res.Module, "S1"), "Name")
	require.Len(t, names, 1)

	quals := attrsNamed(names[0], "UsedProtocol")
	require.Len(t, quals, 1)

	emb := quals[0].TargetObject()
	require.NotNil(t, emb)
	assert.Equal(t, "wash", attrsNamed(emb, "Name")[0].Text())
}

func TestConvert_InvalidChain(t *testing.T) {
	_, err := convertYAML(t, `
blocks:
  - class: Sample
    columns:
      - {name: Name, embedded: {name: Count}}
    rows:
      - id: S1
        cells: [x]
`, testConfig())

	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, CodeInvalidChain, se.Code)
}
