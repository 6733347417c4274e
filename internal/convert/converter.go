package convert

import (
	"agetab/internal/document"
	"agetab/internal/model"
	"agetab/internal/profile"
)

// columnConverter turns the values of one column into attributes or
// relations of the current object.
type columnConverter interface {
	classReference() *document.ClassReference
	// property is the attribute or relation class produced, nil for
	// placeholder columns.
	property() model.Property
	// resetObject binds the converter to obj and drops what an earlier
	// conversion of the same object produced.
	resetObject(obj *model.Object)
	resetLine(ln int)
	// convert consumes the value of the current line; v is nil when the
	// column has no more lines.
	convert(v *document.Value) error
	// lastConverted is the attribute or relation a qualifier attaches to.
	lastConverted() model.Attributed
}

type baseConverter struct {
	ref  *document.ClassReference
	host *model.Object
	last model.Attributed
}

func (b *baseConverter) classReference() *document.ClassReference { return b.ref }

func (b *baseConverter) resetLine(int) {}

func (b *baseConverter) lastConverted() model.Attributed { return b.last }

func attributeClassRef(cls *model.AttributeClass, hdr *document.ClassReference) *model.AttributeClassRef {
	return &model.AttributeClassRef{Class: cls, Order: hdr.Col, Original: hdr.Original}
}

// attributeConverter produces scalar attributes. TEXT values continue on
// following lines of the same cell.
type attributeConverter struct {
	baseConverter
	cls *model.AttributeClassRef
}

func newAttributeConverter(hdr *document.ClassReference, cls *model.AttributeClass) *attributeConverter {
	return &attributeConverter{baseConverter: baseConverter{ref: hdr}, cls: attributeClassRef(cls, hdr)}
}

func (c *attributeConverter) property() model.Property { return c.cls.Class }

func (c *attributeConverter) resetObject(obj *model.Object) {
	c.host = obj
	c.last = nil
	obj.RemoveAttributesByClass(c.cls.Class)
}

func (c *attributeConverter) convert(v *document.Value) error {
	multiline := c.cls.Class.DataType.IsMultiline()

	if v == nil {
		return nil
	}

	if v.Trimmed() == "" {
		if a, ok := c.last.(*model.Attribute); ok && multiline {
			_ = a.UpdateValue("")
		}

		return nil
	}

	c.host.RemoveInheritedAttributes(c.cls.Class)

	var attr *model.Attribute
	if multiline {
		attr = c.host.Attribute(c.cls.Class)
	}

	created := attr == nil
	if created {
		attr = c.host.CreateAttribute(c.cls)
	}

	if err := attr.UpdateValue(v.Text); err != nil {
		if created {
			c.host.RemoveAttribute(attr)
		}

		return conversionErrorf(CodeInvalidValue, v.Row, v.Col,
			"invalid value (%s) for attribute: %s", v.Text, c.cls.Class.Name)
	}

	c.last = attr

	return nil
}

// objectAttributeConverter produces attributes referencing objects of the
// attribute class's target class.
type objectAttributeConverter struct {
	baseConverter
	cls *model.AttributeClassRef
	reg *objectRegistry
	def profile.Definition
}

func newObjectAttributeConverter(
	hdr *document.ClassReference,
	cls *model.AttributeClass,
	reg *objectRegistry,
	def profile.Definition,
) *objectAttributeConverter {
	return &objectAttributeConverter{
		baseConverter: baseConverter{ref: hdr},
		cls:           attributeClassRef(cls, hdr),
		reg:           reg,
		def:           def,
	}
}

func (c *objectAttributeConverter) property() model.Property { return c.cls.Class }

func (c *objectAttributeConverter) resetObject(obj *model.Object) {
	c.host = obj
	c.last = nil
	obj.RemoveAttributesByClass(c.cls.Class)
}

func (c *objectAttributeConverter) convert(v *document.Value) error {
	if v == nil {
		return nil
	}

	scopeDef := c.def.ObjectAttributeScope

	id, scope := splitScope(v.Trimmed(), c.def.Prefixes(scopeDef), scopeDef)
	if id == "" {
		return nil
	}

	target, err := resolveInModule(c.reg, []*model.Class{c.cls.Class.TargetClass}, id, scope, v, "object attribute")
	if err != nil {
		return err
	}

	c.host.RemoveInheritedAttributes(c.cls.Class)

	if target == nil {
		c.last = c.host.CreateExternalObjectAttribute(c.cls, id, scope)
		return nil
	}

	attr := c.host.CreateAttribute(c.cls)
	attr.SetTarget(target.Ref())
	c.last = attr

	return nil
}

// fileAttributeConverter produces file references.
type fileAttributeConverter struct {
	baseConverter
	cls *model.AttributeClassRef
	def profile.Definition
}

func newFileAttributeConverter(
	hdr *document.ClassReference,
	cls *model.AttributeClass,
	def profile.Definition,
) *fileAttributeConverter {
	return &fileAttributeConverter{baseConverter: baseConverter{ref: hdr}, cls: attributeClassRef(cls, hdr), def: def}
}

func (c *fileAttributeConverter) property() model.Property { return c.cls.Class }

func (c *fileAttributeConverter) resetObject(obj *model.Object) {
	c.host = obj
	c.last = nil
	obj.RemoveAttributesByClass(c.cls.Class)
}

func (c *fileAttributeConverter) convert(v *document.Value) error {
	if v == nil {
		return nil
	}

	id, scope := splitScope(v.Trimmed(), c.def.FilePrefixes(), c.def.FileAttributeScope)
	if id == "" {
		return nil
	}

	c.host.RemoveInheritedAttributes(c.cls.Class)

	attr := c.host.CreateAttribute(c.cls)
	attr.SetFile(id, scope)
	c.last = attr

	return nil
}

// relationConverter produces relations of a defined or custom relation
// class. Targets are looked up among the objects of the candidate classes.
type relationConverter struct {
	baseConverter
	cls        *model.RelationClassRef
	candidates []*model.Class
	reg        *objectRegistry
	def        profile.Definition
}

func newRelationConverter(
	hdr *document.ClassReference,
	cls *model.RelationClass,
	candidates []*model.Class,
	reg *objectRegistry,
	def profile.Definition,
) *relationConverter {
	return &relationConverter{
		baseConverter: baseConverter{ref: hdr},
		cls:           &model.RelationClassRef{Class: cls, Order: hdr.Col, Original: hdr.Original},
		candidates:    candidates,
		reg:           reg,
		def:           def,
	}
}

func (c *relationConverter) property() model.Property { return c.cls.Class }

func (c *relationConverter) resetObject(obj *model.Object) {
	c.host = obj
	c.last = nil
	obj.RemoveRelationsByClass(c.cls.Class)
}

func (c *relationConverter) convert(v *document.Value) error {
	if v == nil {
		return nil
	}

	scopeDef := c.def.RelationScope

	id, scope := splitScope(v.Trimmed(), c.def.Prefixes(scopeDef), scopeDef)
	if id == "" {
		return nil
	}

	target, err := resolveInModule(c.reg, c.candidates, id, scope, v, "relation")
	if err != nil {
		return err
	}

	c.host.RemoveInheritedRelations(c.cls.Class)

	if target == nil {
		c.last = c.host.CreateExternalRelation(c.cls, id, scope)
	} else {
		c.last = c.host.CreateRelation(c.cls, target.Ref())
	}

	return nil
}

// emptyConverter serves a column without a header. Its cells must be blank.
type emptyConverter struct {
	baseConverter
}

func (c *emptyConverter) property() model.Property { return nil }

func (c *emptyConverter) resetObject(*model.Object) {}

func (c *emptyConverter) convert(v *document.Value) error {
	if v == nil || v.Trimmed() == "" {
		return nil
	}

	return conversionErrorf(CodeNonEmptyHeaderlessCell, v.Row, v.Col,
		"cells in the column with no header must be empty")
}

// invalidConverter stands in for a column whose header failed to resolve.
// It keeps the column position and ignores every value.
type invalidConverter struct {
	baseConverter
}

func (c *invalidConverter) property() model.Property { return nil }

func (c *invalidConverter) resetObject(*model.Object) {}

func (c *invalidConverter) convert(*document.Value) error { return nil }
