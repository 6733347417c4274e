package convert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"agetab/internal/diagnostic"
)

func TestErrorCode(t *testing.T) {
	se := schemaErrorf(CodeUnknownClass, 1, 2, "defined property %q not found", "Nmae")
	se.Suggestions = []string{"Name"}

	code, sugg := errorCode(fmt.Errorf("wrapped: %w", se))
	assert.Equal(t, CodeUnknownClass, code)
	assert.Equal(t, []string{"Name"}, sugg)

	code, sugg = errorCode(conversionErrorf(CodeInvalidValue, 3, 4, "bad"))
	assert.Equal(t, CodeInvalidValue, code)
	assert.Nil(t, sugg)

	code, _ = errorCode(errors.New("plain"))
	assert.Equal(t, "conversion_failed", code)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `row 1, col 2: defined property "X" not found`,
		schemaErrorf(CodeUnknownClass, 1, 2, "defined property %q not found", "X").Error())
	assert.Equal(t, "row 3, col 4: bad", conversionErrorf(CodeInvalidValue, 3, 4, "bad").Error())
}

func TestFailure_Unwrap(t *testing.T) {
	var diags diagnostic.Diagnostics

	se := schemaErrorf(CodeOrphanQualifier, 1, 3, "a qualifier must follow a qualified property")
	ce := conversionErrorf(CodeUnresolvedTarget, 2, 1, "unresolved relation target %q", "S2")

	diags.AddCause(CodeOrphanQualifier, "Sample", "", se)
	diags.AddCause(CodeUnresolvedTarget, "Sample", "", ce)

	var err error = &Failure{Diagnostics: diags}

	var gotSE *SchemaError
	assert.True(t, errors.As(err, &gotSE))
	assert.Same(t, se, gotSE)

	var gotCE *ConversionError
	assert.True(t, errors.As(err, &gotCE))
	assert.Same(t, ce, gotCE)

	assert.Contains(t, err.Error(), "2 error(s)")
}
