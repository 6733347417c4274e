package convert

import (
	"agetab/internal/authz"
	"agetab/internal/document"
	"agetab/internal/model"
	"agetab/internal/profile"
)

// converterFactory builds the column converters of a block.
type converterFactory struct {
	store    Store
	perms    authz.Oracle
	reg      *objectRegistry
	module   *model.Module
	embedded *int
}

// build returns one converter per column of blk. A column whose header
// cannot be resolved gets an invalid converter and its error is passed to
// report; the remaining columns are still built.
func (f *converterFactory) build(
	blk *document.Block,
	cls *model.Class,
	def profile.Definition,
	report func(error),
) []columnConverter {
	convs := make([]columnConverter, 0, len(blk.Columns))

	for _, hdr := range blk.Columns {
		cnv, err := f.column(hdr, cls, def, convs)
		if err != nil {
			report(err)
		}

		if cnv == nil {
			cnv = &invalidConverter{baseConverter{ref: hdr}}
		}

		convs = append(convs, cnv)
	}

	return convs
}

func (f *converterFactory) column(
	hdr *document.ClassReference,
	cls *model.Class,
	def profile.Definition,
	built []columnConverter,
) (columnConverter, error) {
	switch {
	case hdr == nil:
		return &emptyConverter{}, nil
	case hdr.Embedded != nil:
		return f.chain(hdr, cls)
	case len(hdr.Qualifiers) > 0:
		return f.qualifier(hdr, cls, def, built)
	case hdr.Custom && hdr.Range != nil:
		return f.customRelation(hdr, cls, def)
	case hdr.Custom:
		ac, err := f.customAttributeClass(hdr, cls)
		if err != nil {
			return nil, err
		}

		return f.attribute(hdr, ac, def)
	default:
		return f.definedProperty(hdr, cls, def)
	}
}

// attribute builds the converter matching the data type of ac.
func (f *converterFactory) attribute(
	hdr *document.ClassReference,
	ac *model.AttributeClass,
	def profile.Definition,
) (columnConverter, error) {
	switch ac.DataType {
	case model.DataTypeObject:
		if ac.TargetClass == nil {
			return nil, schemaErrorf(CodeMissingTargetClass, hdr.Row, hdr.Col,
				"no target class defined for OBJECT attribute class %q", ac.Name)
		}

		return newObjectAttributeConverter(hdr, ac, f.reg, def), nil
	case model.DataTypeFile:
		return newFileAttributeConverter(hdr, ac, def), nil
	default:
		return newAttributeConverter(hdr, ac), nil
	}
}

func (f *converterFactory) definedProperty(
	hdr *document.ClassReference,
	cls *model.Class,
	def profile.Definition,
) (columnConverter, error) {
	prop := f.store.DefinedProperty(hdr.Name)
	if prop == nil {
		err := schemaErrorf(CodeUnknownClass, hdr.Row, hdr.Col, "defined property %q not found", hdr.Name)
		err.Suggestions = f.store.SuggestProperties(hdr.Name)

		return nil, err
	}

	if prop.IsAbstract() {
		return nil, schemaErrorf(CodeAbstractClass, hdr.Row, hdr.Col, "abstract class instantiation %q", hdr.Name)
	}

	switch p := prop.(type) {
	case *model.AttributeClass:
		return f.attribute(hdr, p, def)
	case *model.RelationClass:
		if !p.InDomain(cls) {
			return nil, schemaErrorf(CodeDomainViolation, hdr.Row, hdr.Col,
				"class %q is not in the domain of relation class %q", cls, p)
		}

		return newRelationConverter(hdr, p, f.reg.candidates(p.Range), f.reg, def), nil
	default:
		return nil, schemaErrorf(CodeUnknownClass, hdr.Row, hdr.Col, "unsupported property %q", hdr.Name)
	}
}

func (f *converterFactory) customRelation(
	hdr *document.ClassReference,
	cls *model.Class,
	def profile.Definition,
) (columnConverter, error) {
	if f.perms.Permission(authz.DefineCustomRelationClass) != authz.Allow {
		return nil, schemaErrorf(CodePermissionDenied, hdr.Row, hdr.Col,
			"custom relation class (%s) is not allowed within this context", hdr.Name)
	}

	rangeClass := f.classByReference(hdr.Range)
	if rangeClass == nil {
		err := schemaErrorf(CodeUnknownClass, hdr.Row, hdr.Col, "invalid range class: %q", hdr.Range.Name)
		err.Suggestions = f.store.SuggestClasses(hdr.Range.Name)

		return nil, err
	}

	var parent *model.RelationClass

	if hdr.Parent != "" {
		parent = f.store.DefinedRelationClass(hdr.Parent)
		if parent == nil {
			err := schemaErrorf(CodeUnknownParent, hdr.Row, hdr.Col,
				"defined relation class %q (used as superclass) is not found", hdr.Parent)
			err.Suggestions = f.store.SuggestProperties(hdr.Parent)

			return nil, err
		}
	}

	rc := f.store.GetOrCreateCustomRelationClass(hdr.Name, rangeClass, cls, parent)
	cands := f.reg.candidates([]*model.Class{rangeClass})

	return newRelationConverter(hdr, rc, cands, f.reg, def), nil
}

// classByReference resolves a target or range class token.
func (f *converterFactory) classByReference(ref *document.ClassReference) *model.Class {
	if ref.Custom {
		return f.store.CustomClass(ref.Name)
	}

	return f.store.DefinedClass(ref.Name)
}

// customAttributeClass resolves or creates the custom attribute class hdr
// names on host.
func (f *converterFactory) customAttributeClass(
	hdr *document.ClassReference,
	host *model.Class,
) (*model.AttributeClass, error) {
	if f.perms.Permission(authz.DefineCustomAttributeClass) != authz.Allow {
		return nil, schemaErrorf(CodePermissionDenied, hdr.Row, hdr.Col,
			"custom attribute class (%s) is not allowed within this context", hdr.Name)
	}

	existing := f.store.CustomAttributeClass(hdr.Name, host)
	dt := model.DataTypeGuess

	if typeName, ok := hdr.Flag(document.TypeFlag); ok {
		t, err := model.ParseDataType(typeName)
		if err != nil {
			return nil, schemaErrorf(CodeInvalidTypeName, hdr.Row, hdr.Col, "invalid type name: %s", typeName)
		}

		dt = t
	} else if existing != nil {
		dt = existing.DataType
	}

	if existing != nil {
		if existing.DataType != dt {
			return nil, schemaErrorf(CodeTypeMismatch, hdr.Row, hdr.Col,
				"data type (%s) mismatches with the previous definition: %s", dt, existing.DataType)
		}

		if dt == model.DataTypeObject {
			if existing.TargetClass == nil {
				return nil, schemaErrorf(CodeMissingTargetClass, hdr.Row, hdr.Col,
					"reference to OBJECT attribute class with no target class")
			}

			if t := hdr.Target; t != nil && (t.Name != existing.TargetClass.Name || t.Custom != existing.TargetClass.Custom) {
				return nil, schemaErrorf(CodeTargetMismatch, hdr.Row, hdr.Col,
					"target class %s mismatches with previous definition: %s", t, existing.TargetClass)
			}
		}
	}

	var parent *model.AttributeClass

	if hdr.Parent != "" {
		parent = f.store.DefinedAttributeClass(hdr.Parent)
		if parent == nil {
			err := schemaErrorf(CodeUnknownParent, hdr.Row, hdr.Col,
				"defined attribute class %q (used as superclass) is not found", hdr.Parent)
			err.Suggestions = f.store.SuggestProperties(hdr.Parent)

			return nil, err
		}
	}

	var target *model.Class

	if hdr.Target != nil {
		if dt == model.DataTypeGuess {
			dt = model.DataTypeObject
		}

		if dt != model.DataTypeObject {
			return nil, schemaErrorf(CodeTypeMismatch, hdr.Row, hdr.Col,
				"target class given for %s attribute class %q", dt, hdr.Name)
		}

		target = f.classByReference(hdr.Target)
		if target == nil {
			err := schemaErrorf(CodeUnknownClass, hdr.Row, hdr.Col, "target class %s not found", hdr.Target)
			err.Suggestions = f.store.SuggestClasses(hdr.Target.Name)

			return nil, err
		}
	} else if existing != nil {
		target = existing.TargetClass
	}

	if dt == model.DataTypeObject && target == nil {
		return nil, schemaErrorf(CodeMissingTargetClass, hdr.Row, hdr.Col,
			"target class must be defined for object attribute class: %s", hdr)
	}

	ac := f.store.GetOrCreateCustomAttributeClass(hdr.Name, dt, host, parent)
	if target != nil {
		ac.TargetClass = target
	}

	return ac, nil
}

// anyAttributeClass resolves a qualifier or chain level: custom classes
// through customAttributeClass, defined ones by name.
func (f *converterFactory) anyAttributeClass(
	ref *document.ClassReference,
	host *model.Class,
	pos *document.ClassReference,
) (*model.AttributeClass, error) {
	if ref.Custom {
		return f.customAttributeClass(ref, host)
	}

	ac := f.store.DefinedAttributeClass(ref.Name)
	if ac == nil {
		err := schemaErrorf(CodeUnknownClass, pos.Row, pos.Col, "unknown attribute class: %q", ref.Name)
		err.Suggestions = f.store.SuggestProperties(ref.Name)

		return nil, err
	}

	if ac.Abstract {
		return nil, schemaErrorf(CodeAbstractClass, pos.Row, pos.Col, "abstract class instantiation %q", ref.Name)
	}

	return ac, nil
}

func (f *converterFactory) qualifier(
	hdr *document.ClassReference,
	cls *model.Class,
	def profile.Definition,
	built []columnConverter,
) (columnConverter, error) {
	qualif := hdr.Qualifiers[len(hdr.Qualifiers)-1]

	if len(qualif.Qualifiers) > 0 {
		return nil, schemaErrorf(CodeQualifiedQualifier, hdr.Row, hdr.Col,
			"a qualifier reference must not be qualified itself, use attr[qual1][qual2]")
	}

	var host columnConverter

	for i := len(built) - 1; i >= 0; i-- {
		if cr := built[i].classReference(); cr != nil && hdr.IsQualifierFor(cr) {
			host = built[i]
			break
		}
	}

	if host == nil {
		return nil, schemaErrorf(CodeOrphanQualifier, hdr.Row, hdr.Col, "a qualifier must follow a qualified property")
	}

	// The host column already reported its own error.
	if _, ok := host.(*invalidConverter); ok {
		return nil, nil
	}

	if qualif.Custom && f.perms.Permission(authz.DefineCustomQualifierClass) != authz.Allow {
		return nil, schemaErrorf(CodePermissionDenied, hdr.Row, hdr.Col,
			"custom qualifier (%s) is not allowed within this context", qualif.Name)
	}

	qc, err := f.anyAttributeClass(qualif, cls, hdr)
	if err != nil {
		return nil, err
	}

	if qc.DataType == model.DataTypeObject && qc.TargetClass == nil {
		return nil, schemaErrorf(CodeMissingTargetClass, hdr.Row, hdr.Col,
			"no target class defined for OBJECT attribute class %q", qc.Name)
	}

	return newQualifierConverter(hdr, qc, host, f.reg, def), nil
}

// chain builds an embedded object chain converter from the nested header.
// The last element of every level but the deepest must be an OBJECT
// attribute: the next level lives in the object it references.
func (f *converterFactory) chain(hdr *document.ClassReference, cls *model.Class) (columnConverter, error) {
	var elems []chainElement

	for lvl := hdr; lvl != nil; lvl = lvl.Embedded {
		ac, err := f.anyAttributeClass(lvl, cls, hdr)
		if err != nil {
			return nil, err
		}

		elems = append(elems, chainElement{cls: &model.AttributeClassRef{Class: ac, Order: hdr.Col, Original: hdr.Original}})

		for _, q := range lvl.Qualifiers {
			qc, err := f.anyAttributeClass(q, cls, hdr)
			if err != nil {
				return nil, err
			}

			elems = append(elems, chainElement{
				qualifier: true,
				cls:       &model.AttributeClassRef{Class: qc, Order: hdr.Col, Original: hdr.Original},
			})
		}

		if via := elems[len(elems)-1].cls.Class; lvl.Embedded != nil &&
			(via.DataType != model.DataTypeObject || via.TargetClass == nil) {
			return nil, schemaErrorf(CodeInvalidChain, hdr.Row, hdr.Col,
				"attribute class %q must be an OBJECT attribute with a target class to embed %q",
				via.Name, lvl.Embedded.Name)
		}
	}

	return &chainConverter{
		baseConverter: baseConverter{ref: hdr},
		chain:         elems,
		module:        f.module,
		embedded:      f.embedded,
	}, nil
}
