package convert

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agetab/internal/authz"
	"agetab/internal/diagnostic"
	"agetab/internal/document"
	"agetab/internal/logging"
)

func newTestLog() *diagnostic.Log {
	return diagnostic.NewLog("test", logging.Discard())
}

func TestClassResolver_Defined(t *testing.T) {
	s := testSchema(t)
	r := newClassResolver(s, authz.Static{}, false)

	var diags diagnostic.Diagnostics

	cls, err := r.resolve(&document.ClassReference{Name: "Sample"}, newTestLog(), &diags)
	require.NoError(t, err)
	assert.Same(t, s.DefinedClass("Sample"), cls)

	again, err := r.resolve(&document.ClassReference{Name: "Sample", Row: 9}, newTestLog(), &diags)
	require.NoError(t, err)
	assert.Same(t, cls, again)
	assert.Empty(t, diags.Warnings)
}

func TestClassResolver_Custom(t *testing.T) {
	s := testSchema(t)
	r := newClassResolver(s, authz.AllowAll, false)

	var diags diagnostic.Diagnostics

	cls, err := r.resolve(&document.ClassReference{Name: "Tube", Custom: true, Parent: "Sample"}, newTestLog(), &diags)
	require.NoError(t, err)
	assert.True(t, cls.Custom)
	assert.Same(t, s.DefinedClass("Sample"), cls.Parent)
	assert.Same(t, cls, s.CustomClass("Tube"))

	_, err = r.resolve(&document.ClassReference{Name: "Rack", Custom: true, Parent: "Sampl"}, newTestLog(), &diags)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodeUnknownParent, se.Code)
	assert.Contains(t, se.Suggestions, "Sample")
}

func TestClassResolver_ImplicitCustom(t *testing.T) {
	s := testSchema(t)
	r := newClassResolver(s, authz.AllowAll, true)
	log := newTestLog()

	var diags diagnostic.Diagnostics

	cls, err := r.resolve(&document.ClassReference{Name: "Widget", Row: 4}, log, &diags)
	require.NoError(t, err)
	assert.True(t, cls.Custom)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "4:0", diags.Warnings[0].Position)
	assert.Equal(t, slog.LevelWarn, log.Level())
}

func TestClassResolver_ImplicitCustomNeedsPermission(t *testing.T) {
	r := newClassResolver(testSchema(t), authz.Static{}, true)

	var diags diagnostic.Diagnostics

	_, err := r.resolve(&document.ClassReference{Name: "Widget"}, newTestLog(), &diags)

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodePermissionDenied, se.Code)
}
