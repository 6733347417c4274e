package convert

import (
	"agetab/internal/document"
	"agetab/internal/model"
	"agetab/internal/profile"
)

type qualifierKind int

const (
	scalarQualifier qualifierKind = iota
	objectQualifier
	fileQualifier
)

// qualifierConverter attaches qualifier attributes to the value most
// recently produced by its host converter.
type qualifierConverter struct {
	baseConverter
	kind     qualifierKind
	cls      *model.AttributeClassRef
	hostConv columnConverter
	// context is the host value the last qualifier was attached to.
	context model.Attributed
	reg     *objectRegistry
	def     profile.Definition
}

func newQualifierConverter(
	hdr *document.ClassReference,
	cls *model.AttributeClass,
	hostConv columnConverter,
	reg *objectRegistry,
	def profile.Definition,
) *qualifierConverter {
	kind := scalarQualifier

	switch cls.DataType {
	case model.DataTypeObject:
		kind = objectQualifier
	case model.DataTypeFile:
		kind = fileQualifier
	}

	return &qualifierConverter{
		baseConverter: baseConverter{ref: hdr},
		kind:          kind,
		cls:           attributeClassRef(cls, hdr),
		hostConv:      hostConv,
		reg:           reg,
		def:           def,
	}
}

func (c *qualifierConverter) property() model.Property { return c.cls.Class }

// lastConverted returns the last qualifier only while the host still points
// at the value it qualifies.
func (c *qualifierConverter) lastConverted() model.Attributed {
	if c.context != nil && c.context == c.hostConv.lastConverted() {
		return c.last
	}

	return nil
}

// resetObject drops this qualifier from the relations of the top-level host
// class. Attribute hosts drop their qualifiers with themselves.
func (c *qualifierConverter) resetObject(obj *model.Object) {
	c.host = obj
	c.last = nil
	c.context = nil

	chain := []*model.AttributeClass{c.cls.Class}

	top := c.hostConv
	for {
		q, ok := top.(*qualifierConverter)
		if !ok {
			break
		}

		chain = append(chain, q.cls.Class)
		top = q.hostConv
	}

	rc, ok := top.property().(*model.RelationClass)
	if !ok {
		return
	}

	for _, r := range obj.RelationsByClass(rc) {
		removeQualifiers(r, chain, len(chain)-1)
	}
}

// removeQualifiers walks chain from the outermost level down to level 0 and
// removes the level-0 attributes.
func removeQualifiers(host model.Attributed, chain []*model.AttributeClass, lvl int) {
	for _, a := range append([]*model.Attribute(nil), host.AttributesByClass(chain[lvl])...) {
		if lvl == 0 {
			host.RemoveAttribute(a)
		} else {
			removeQualifiers(a, chain, lvl-1)
		}
	}
}

func (c *qualifierConverter) convert(v *document.Value) error {
	switch c.kind {
	case objectQualifier:
		return c.convertObject(v)
	case fileQualifier:
		return c.convertFile(v)
	default:
		return c.convertScalar(v)
	}
}

func (c *qualifierConverter) hostValue(v *document.Value) (model.Attributed, error) {
	prop := c.hostConv.lastConverted()
	if prop == nil {
		return nil, conversionErrorf(CodeNoHostValue, v.Row, v.Col, "there is no main value for qualification")
	}

	return prop, nil
}

func (c *qualifierConverter) convertScalar(v *document.Value) error {
	multiline := c.cls.Class.DataType.IsMultiline()

	if v == nil {
		return nil
	}

	if v.Trimmed() == "" {
		if a, ok := c.lastConverted().(*model.Attribute); ok && multiline {
			_ = a.UpdateValue("")
		}

		return nil
	}

	prop, err := c.hostValue(v)
	if err != nil {
		return err
	}

	var attr *model.Attribute
	if multiline {
		attr, _ = c.lastConverted().(*model.Attribute)
	}

	created := attr == nil
	if created {
		attr = prop.CreateAttribute(c.cls)
	}

	if err := attr.UpdateValue(v.Text); err != nil {
		if created {
			prop.RemoveAttribute(attr)
		}

		return conversionErrorf(CodeInvalidValue, v.Row, v.Col,
			"invalid value (%s) for attribute: %s", v.Text, c.cls.Class.Name)
	}

	c.context = prop
	c.last = attr

	return nil
}

func (c *qualifierConverter) convertObject(v *document.Value) error {
	if v == nil {
		return nil
	}

	scopeDef := c.def.ObjectAttributeScope

	id, scope := splitScope(v.Trimmed(), c.def.Prefixes(scopeDef), scopeDef)
	if id == "" {
		return nil
	}

	prop, err := c.hostValue(v)
	if err != nil {
		return err
	}

	target, err := resolveInModule(c.reg, []*model.Class{c.cls.Class.TargetClass}, id, scope, v, "object qualifier")
	if err != nil {
		return err
	}

	var attr *model.Attribute
	if target == nil {
		attr = prop.CreateExternalObjectAttribute(c.cls, id, scope)
	} else {
		attr = prop.CreateAttribute(c.cls)
		attr.SetTarget(target.Ref())
	}

	c.context = prop
	c.last = attr

	return nil
}

func (c *qualifierConverter) convertFile(v *document.Value) error {
	if v == nil {
		return nil
	}

	id, scope := splitScope(v.Trimmed(), c.def.FilePrefixes(), c.def.FileAttributeScope)
	if id == "" {
		return nil
	}

	prop, err := c.hostValue(v)
	if err != nil {
		return err
	}

	attr := prop.CreateAttribute(c.cls)
	attr.SetFile(id, scope)

	c.context = prop
	c.last = attr

	return nil
}
