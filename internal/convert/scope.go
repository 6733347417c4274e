package convert

import (
	"strings"

	"agetab/internal/document"
	"agetab/internal/model"
	"agetab/internal/profile"
)

// splitScope strips the first matching scope prefix from text. Text with no
// known prefix resolves in def.
func splitScope(text string, prefixes []profile.Prefix, def model.ResolveScope) (string, model.ResolveScope) {
	for _, p := range prefixes {
		if strings.HasPrefix(text, p.Text) {
			return strings.TrimSpace(text[len(p.Text):]), p.Scope
		}
	}

	return text, def
}

// resolveInModule looks id up among the objects of classes when scope is
// module-local. A nil object with a nil error means the reference stays
// external. A miss in MODULE scope is an error, a miss in CASCADE_MODULE
// scope falls through to an external reference.
func resolveInModule(
	reg *objectRegistry,
	classes []*model.Class,
	id string,
	scope model.ResolveScope,
	v *document.Value,
	what string,
) (*model.Object, error) {
	if !scope.IsModuleLocal() {
		return nil, nil
	}

	var target *model.Object

	found := 0

	for _, c := range classes {
		if o := reg.find(c, id); o != nil {
			target = o
			found++
		}
	}

	if found > 1 {
		return nil, conversionErrorf(CodeAmbiguousReference, v.Row, v.Col,
			"ambiguous reference %q: matches objects of %d classes", id, found)
	}

	if target == nil && scope == model.ScopeModule {
		return nil, conversionErrorf(CodeUnresolvedTarget, v.Row, v.Col, "unresolved %s target %q", what, id)
	}

	return target, nil
}
