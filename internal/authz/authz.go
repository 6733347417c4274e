package authz

import (
	"fmt"
	"strings"

	"agetab/internal/common"
)

// Action is a schema-extension operation gated by permission.
type Action int

const (
	DefineCustomClass Action = iota
	DefineCustomAttributeClass
	DefineCustomRelationClass
	DefineCustomQualifierClass
)

var actionNames = map[Action]string{
	DefineCustomClass:          "custom-class",
	DefineCustomAttributeClass: "custom-attribute",
	DefineCustomRelationClass:  "custom-relation",
	DefineCustomQualifierClass: "custom-qualifier",
}

// String returns the action's command-line name.
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}

	return common.UnknownStr
}

// ParseAction parses a command-line action name.
func ParseAction(s string) (Action, error) {
	for a, n := range actionNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return a, nil
		}
	}

	return 0, fmt.Errorf("unknown permission action %q", s)
}

//go:generate go tool stringer -type=Permit -linecomment -output=permit_string.go

// Permit is the oracle's answer.
type Permit int

const (
	Deny  Permit = iota // deny
	Allow               // allow
)

// Oracle decides whether an action is permitted.
type Oracle interface {
	Permission(a Action) Permit
}

// Static grants exactly the actions it holds.
type Static map[Action]bool

// NewStatic builds a Static oracle from action names. The name "all" grants
// every action.
func NewStatic(names ...string) (Static, error) {
	s := Static{}

	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(n), "all") {
			for a := range actionNames {
				s[a] = true
			}

			continue
		}

		a, err := ParseAction(n)
		if err != nil {
			return nil, err
		}

		s[a] = true
	}

	return s, nil
}

// Permission implements Oracle.
func (s Static) Permission(a Action) Permit {
	if s[a] {
		return Allow
	}

	return Deny
}

type allowAll struct{}

func (allowAll) Permission(Action) Permit { return Allow }

// AllowAll permits every action.
var AllowAll Oracle = allowAll{}
