package convert

import (
	"errors"
	"fmt"

	"agetab/internal/diagnostic"
)

// Schema error codes.
const (
	CodeUnknownClass       = "unknown_class"
	CodeAbstractClass      = "abstract_class"
	CodePermissionDenied   = "permission_denied"
	CodeTypeMismatch       = "type_mismatch"
	CodeTargetMismatch     = "target_mismatch"
	CodeMissingTargetClass = "missing_target_class"
	CodeDomainViolation    = "domain_violation"
	CodeQualifiedQualifier = "qualified_qualifier"
	CodeOrphanQualifier    = "orphan_qualifier"
	CodeUnknownParent      = "unknown_parent"
	CodeInvalidTypeName    = "invalid_type_name"
	CodeInvalidChain       = "invalid_chain"
)

// Conversion error codes.
const (
	CodeInvalidValue           = "invalid_value"
	CodeAmbiguousReference     = "ambiguous_reference"
	CodeUnresolvedTarget       = "unresolved_target"
	CodeNonEmptyHeaderlessCell = "non_empty_headerless_cell"
	CodeNoHostValue            = "no_host_value"
)

// Warning codes.
const (
	CodeImplicitCustomClass  = "implicit_custom_class"
	CodeQualifiedClassHeader = "qualified_class_header"
)

// SchemaError is a problem with a column header. The column is skipped.
type SchemaError struct {
	Code        string
	Message     string
	Row         int
	Col         int
	Suggestions []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("row %d, col %d: %s", e.Row, e.Col, e.Message)
}

// ConversionError is a problem with a single cell value.
type ConversionError struct {
	Code    string
	Message string
	Row     int
	Col     int
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("row %d, col %d: %s", e.Row, e.Col, e.Message)
}

// Failure is returned when any error was recorded during a conversion. It
// carries the complete diagnostics; errors.As reaches every SchemaError and
// ConversionError through Unwrap.
type Failure struct {
	Diagnostics diagnostic.Diagnostics
}

func (f *Failure) Error() string {
	return fmt.Sprintf("conversion failed with %d error(s): %v",
		len(f.Diagnostics.Errors), f.Diagnostics.Error())
}

// Unwrap returns the typed errors behind the diagnostics.
func (f *Failure) Unwrap() []error {
	return f.Diagnostics.Causes()
}

// errorCode returns the code of a SchemaError or ConversionError.
func errorCode(err error) (code string, suggestions []string) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se.Code, se.Suggestions
	}

	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Code, nil
	}

	return "conversion_failed", nil
}

func schemaErrorf(code string, row, col int, format string, args ...any) *SchemaError {
	return &SchemaError{Code: code, Message: fmt.Sprintf(format, args...), Row: row, Col: col}
}

func conversionErrorf(code string, row, col int, format string, args ...any) *ConversionError {
	return &ConversionError{Code: code, Message: fmt.Sprintf(format, args...), Row: row, Col: col}
}

func position(row, col int) string {
	return fmt.Sprintf("%d:%d", row, col)
}
