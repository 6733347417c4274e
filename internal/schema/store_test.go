package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agetab/internal/model"
)

func buildTestSchema() *Schema {
	s := New()
	entity := s.AddClass(&model.Class{Name: "Entity", Abstract: true})
	sample := s.AddClass(&model.Class{Name: "Sample", Parent: entity})
	s.AddClass(&model.Class{Name: "Samples"})
	s.AddAttributeClass(&model.AttributeClass{Name: "Name", DataType: model.DataTypeString})
	s.AddRelationClass(&model.RelationClass{Name: "partOf", Range: []*model.Class{sample}})

	return s
}

func TestSchema_CustomClass(t *testing.T) {
	s := buildTestSchema()
	parent := s.DefinedClass("Sample")

	assert.Nil(t, s.CustomClass("Tube"))

	c := s.GetOrCreateCustomClass("Tube", parent)
	require.NotNil(t, c)
	assert.True(t, c.Custom)
	assert.Same(t, parent, c.Parent)
	assert.Equal(t, "{Tube}", c.String())

	again := s.GetOrCreateCustomClass("Tube", nil)
	assert.Same(t, c, again)
	assert.Same(t, parent, again.Parent, "existing class keeps its parent")
	assert.Nil(t, s.DefinedClass("Tube"), "custom classes do not shadow defined ones")
}

func TestSchema_CustomAttributeClassScopedToHost(t *testing.T) {
	s := buildTestSchema()
	sample := s.DefinedClass("Sample")
	other := s.GetOrCreateCustomClass("Tube", nil)

	a1 := s.GetOrCreateCustomAttributeClass("Volume", model.DataTypeGuess, sample, nil)
	a2 := s.GetOrCreateCustomAttributeClass("Volume", model.DataTypeInteger, other, nil)

	assert.NotSame(t, a1, a2)
	assert.Same(t, a1, s.CustomAttributeClass("Volume", sample))
	assert.Same(t, a2, s.CustomAttributeClass("Volume", other))
	assert.Equal(t, model.DataTypeInteger, a2.DataType)

	again := s.GetOrCreateCustomAttributeClass("Volume", model.DataTypeReal, sample, nil)
	assert.Same(t, a1, again)
	assert.Equal(t, model.DataTypeGuess, again.DataType, "existing definitions are not retyped")
}

func TestSchema_CustomRelationAccumulatesRangeAndDomain(t *testing.T) {
	s := buildTestSchema()
	sample := s.DefinedClass("Sample")
	tube := s.GetOrCreateCustomClass("Tube", nil)

	r := s.GetOrCreateCustomRelationClass("storedIn", tube, sample, nil)
	assert.Equal(t, []*model.Class{tube}, r.Range)
	assert.Equal(t, []*model.Class{sample}, r.Domain)

	again := s.GetOrCreateCustomRelationClass("storedIn", sample, sample, nil)
	assert.Same(t, r, again)
	assert.Equal(t, []*model.Class{tube, sample}, r.Range)
	assert.Equal(t, []*model.Class{sample}, r.Domain)

	assert.Same(t, r, s.CustomRelationClass("storedIn"))
	assert.Nil(t, s.DefinedRelationClass("storedIn"))
}

func TestSchema_DefinedProperty(t *testing.T) {
	s := buildTestSchema()

	p := s.DefinedProperty("Name")
	require.NotNil(t, p)
	assert.IsType(t, &model.AttributeClass{}, p)

	p = s.DefinedProperty("partOf")
	require.NotNil(t, p)
	assert.IsType(t, &model.RelationClass{}, p)

	assert.Nil(t, s.DefinedProperty("missing"))
}

func TestSchema_Suggestions(t *testing.T) {
	s := buildTestSchema()

	assert.Equal(t, []string{"Sample", "Samples"}, s.SuggestClasses("Sampl"))
	assert.Equal(t, []string{"partOf"}, s.SuggestProperties("partof"))
	assert.Empty(t, s.SuggestClasses("Zzzzzz"))
}
