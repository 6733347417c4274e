package model

import (
	"fmt"
	"strings"

	"agetab/internal/common"
)

// DataType is the value type of an attribute class.
type DataType int

const (
	DataTypeGuess   DataType = iota // resolved after the conversion pass
	DataTypeBoolean                 // true / false
	DataTypeInteger                 // base-10 integer
	DataTypeReal                    // floating point
	DataTypeString                  // single-line text
	DataTypeText                    // multiline text
	DataTypeObject                  // reference to another object
	DataTypeFile                    // reference to an attached file
)

var dataTypeNames = map[DataType]string{
	DataTypeGuess:   "GUESS",
	DataTypeBoolean: "BOOLEAN",
	DataTypeInteger: "INTEGER",
	DataTypeReal:    "REAL",
	DataTypeString:  "STRING",
	DataTypeText:    "TEXT",
	DataTypeObject:  "OBJECT",
	DataTypeFile:    "FILE",
}

// String returns the canonical upper-case type name.
func (t DataType) String() string {
	if n, ok := dataTypeNames[t]; ok {
		return n
	}

	return common.UnknownStr
}

// IsMultiline reports whether values of this type continue across lines.
func (t DataType) IsMultiline() bool {
	return t == DataTypeText
}

// ParseDataType parses a type name case-insensitively.
func ParseDataType(s string) (DataType, error) {
	for t, n := range dataTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return t, nil
		}
	}

	return DataTypeGuess, fmt.Errorf("unknown data type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

// ResolveScope is the breadth used to resolve a textual object reference.
type ResolveScope int

const (
	ScopeModule ResolveScope = iota
	ScopeCluster
	ScopeGlobal
	ScopeCascadeModule
	ScopeCascadeCluster
)

var scopeNames = map[ResolveScope]string{
	ScopeModule:         "MODULE",
	ScopeCluster:        "CLUSTER",
	ScopeGlobal:         "GLOBAL",
	ScopeCascadeModule:  "CASCADE_MODULE",
	ScopeCascadeCluster: "CASCADE_CLUSTER",
}

// String returns the canonical scope name.
func (s ResolveScope) String() string {
	if n, ok := scopeNames[s]; ok {
		return n
	}

	return common.UnknownStr
}

// IsModuleLocal reports whether references in this scope are looked up in
// the module being converted.
func (s ResolveScope) IsModuleLocal() bool {
	return s == ScopeModule || s == ScopeCascadeModule
}

// ParseResolveScope parses a scope name case-insensitively.
func ParseResolveScope(s string) (ResolveScope, error) {
	for sc, n := range scopeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return sc, nil
		}
	}

	return ScopeModule, fmt.Errorf("unknown resolve scope %q", s)
}
