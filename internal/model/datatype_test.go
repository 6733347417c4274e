package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDataType(t *testing.T) {
	for _, name := range []string{"GUESS", "boolean", "Integer", "REAL", "string", "text", "object", " file "} {
		_, err := ParseDataType(name)
		assert.NoError(t, err, name)
	}

	dt, err := ParseDataType("integer")
	require.NoError(t, err)
	assert.Equal(t, DataTypeInteger, dt)
	assert.Equal(t, "INTEGER", dt.String())

	_, err = ParseDataType("NUMBER")
	assert.Error(t, err)
}

func TestDataType_UnmarshalYAML(t *testing.T) {
	var v struct {
		Type DataType `yaml:"type"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("type: text"), &v))
	assert.Equal(t, DataTypeText, v.Type)
	assert.True(t, v.Type.IsMultiline())
	assert.False(t, DataTypeString.IsMultiline())

	assert.Error(t, yaml.Unmarshal([]byte("type: blob"), &v))
}

func TestResolveScope(t *testing.T) {
	s, err := ParseResolveScope("cascade_module")
	require.NoError(t, err)
	assert.Equal(t, ScopeCascadeModule, s)
	assert.True(t, s.IsModuleLocal())
	assert.True(t, ScopeModule.IsModuleLocal())
	assert.False(t, ScopeCluster.IsModuleLocal())
	assert.Equal(t, "GLOBAL", ScopeGlobal.String())

	_, err = ParseResolveScope("planet")
	assert.Error(t, err)
}

func TestClassHierarchy(t *testing.T) {
	entity := &Class{Name: "Entity"}
	sample := &Class{Name: "Sample", Parent: entity}
	custom := &Class{Name: "Tube", Custom: true, Parent: sample}

	assert.True(t, custom.IsClassOrSubclass(entity))
	assert.False(t, entity.IsClassOrSubclass(sample))
	assert.Equal(t, "{Tube}", custom.String())

	rel := &RelationClass{Name: "partOf", Domain: []*Class{sample}, Range: []*Class{entity}}
	assert.True(t, rel.InDomain(custom))
	assert.False(t, rel.InDomain(entity))
	assert.True(t, rel.InRange(sample))
	assert.True(t, (&RelationClass{}).InRange(entity), "an empty range admits every class")
}
