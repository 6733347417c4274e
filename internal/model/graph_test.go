package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRef() *ClassRef {
	return &ClassRef{Class: &Class{Name: "Sample"}}
}

func TestModule_ObjectsAndEmit(t *testing.T) {
	m := NewModule()

	a := m.NewObject(sampleRef(), "A")
	b := m.NewObject(sampleRef(), "")
	proto := m.NewObject(sampleRef(), "*")
	proto.Prototype = true

	assert.Equal(t, ObjectRef(0), a.Ref())
	assert.Same(t, b, m.Object(b.Ref()))
	assert.Nil(t, m.Object(NoObject))
	assert.Nil(t, m.Object(42))

	m.Emit(b)
	m.Emit(a)
	m.Emit(b)

	assert.Equal(t, []*Object{b, a}, m.Objects(), "emission order, no duplicates")
	assert.Len(t, m.AllObjects(), 3)
	assert.True(t, m.IsEmitted(a))
	assert.False(t, m.IsEmitted(proto))
	assert.True(t, b.HasGeneratedID())
	assert.Same(t, m, a.Module())
}

func TestObject_Relations(t *testing.T) {
	m := NewModule()
	a := m.NewObject(sampleRef(), "A")
	b := m.NewObject(sampleRef(), "B")

	partOf := &RelationClassRef{Class: &RelationClass{Name: "partOf"}}
	near := &RelationClassRef{Class: &RelationClass{Name: "near"}}

	r1 := a.CreateRelation(partOf, b.Ref())
	r2 := a.CreateExternalRelation(partOf, "Z", ScopeGlobal)
	r3 := a.CreateRelation(near, b.Ref())

	assert.Equal(t, []*Relation{r1, r2, r3}, a.Relations())
	assert.Equal(t, []*Relation{r1, r2}, a.RelationsByClass(partOf.Class))
	assert.Same(t, a, r1.HostObject())
	assert.Same(t, b, r1.TargetObject())
	assert.False(t, r1.IsExternal())
	assert.True(t, r2.IsExternal())
	assert.Nil(t, r2.TargetObject())
	assert.Same(t, r1, m.Relation(r1.Ref()))
	assert.Nil(t, m.Relation(NoRelation))

	a.RemoveRelation(r3)
	assert.Equal(t, []*Relation{r1, r2}, a.Relations())

	assert.Equal(t, 2, a.RemoveRelationsByClass(partOf.Class))
	assert.Empty(t, a.Relations())
}

func TestObject_InheritedRelations(t *testing.T) {
	m := NewModule()
	proto := m.NewObject(sampleRef(), "*")
	a := m.NewObject(sampleRef(), "A")
	b := m.NewObject(sampleRef(), "B")

	partOf := &RelationClassRef{Class: &RelationClass{Name: "partOf"}}
	unit := &AttributeClassRef{Class: &AttributeClass{Name: "Unit", DataType: DataTypeString}}

	src := proto.CreateRelation(partOf, b.Ref())
	require.NoError(t, src.CreateAttribute(unit).UpdateValue("mg"))

	clone := a.CloneRelation(src)
	clone.FromPrototype = true

	assert.Same(t, a, clone.HostObject())
	assert.Same(t, b, clone.TargetObject())
	require.NotNil(t, clone.Attribute(unit.Class))
	assert.Equal(t, "mg", clone.Attribute(unit.Class).Text())
	assert.NotSame(t, src.Attribute(unit.Class), clone.Attribute(unit.Class))

	own := a.CreateRelation(partOf, b.Ref())

	a.RemoveInheritedRelations(partOf.Class)
	assert.Equal(t, []*Relation{own}, a.Relations())
}

func TestRelation_Inverse(t *testing.T) {
	m := NewModule()
	a := m.NewObject(sampleRef(), "A")
	b := m.NewObject(sampleRef(), "B")

	r := a.CreateRelation(&RelationClassRef{Class: &RelationClass{Name: "partOf"}}, b.Ref())
	inv := b.CreateRelation(&RelationClassRef{Class: &RelationClass{Name: "hasPart"}}, a.Ref())

	assert.Nil(t, r.InverseRelation())

	r.SetInverse(inv)
	assert.Same(t, inv, r.InverseRelation())
}

func TestModule_InferredType(t *testing.T) {
	m := NewModule()
	cls := &AttributeClass{Name: "Amount"}

	_, ok := m.InferredType(cls)
	assert.False(t, ok)

	m.SetInferredType(cls, DataTypeInteger)

	typ, ok := m.InferredType(cls)
	assert.True(t, ok)
	assert.Equal(t, DataTypeInteger, typ)
}

func TestObject_SortValues(t *testing.T) {
	m := NewModule()
	a := m.NewObject(sampleRef(), "A")
	b := m.NewObject(sampleRef(), "B")

	name := &AttributeClassRef{Class: &AttributeClass{Name: "Name", DataType: DataTypeString}, Order: 1}
	count := &AttributeClassRef{Class: &AttributeClass{Name: "Count", DataType: DataTypeInteger}, Order: 2}
	unit := &AttributeClassRef{Class: &AttributeClass{Name: "Unit", DataType: DataTypeString}, Order: 4}
	note := &AttributeClassRef{Class: &AttributeClass{Name: "Note", DataType: DataTypeString}, Order: 3}
	partOf := &RelationClassRef{Class: &RelationClass{Name: "partOf"}, Order: 3}
	near := &RelationClassRef{Class: &RelationClass{Name: "near"}, Order: 5}

	first := a.CreateAttribute(name)
	total := a.CreateAttribute(count)
	second := a.CreateAttribute(name)

	q1 := first.CreateAttribute(unit)
	q2 := first.CreateAttribute(note)

	r1 := a.CreateRelation(near, b.Ref())
	r2 := a.CreateRelation(partOf, b.Ref())
	r3 := a.CreateRelation(near, a.Ref())

	a.SortValues()

	assert.Equal(t, []*Attribute{first, second, total}, a.Attributes(), "column order, lines kept in order")
	assert.Equal(t, []*Attribute{q2, q1}, first.Attributes(), "qualifiers are sorted too")
	assert.Equal(t, []*Relation{r2, r1, r3}, a.Relations())
}
