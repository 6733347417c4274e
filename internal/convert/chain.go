package convert

import (
	"fmt"

	"agetab/internal/document"
	"agetab/internal/model"
)

type chainElement struct {
	qualifier bool
	cls       *model.AttributeClassRef
}

// chainConverter writes a value through a path of attributes, creating
// embedded objects for the intermediate object attributes as needed. The
// first level is the line-th attribute of its class on the host object, so
// consecutive lines fill consecutive embedded objects.
type chainConverter struct {
	baseConverter
	chain  []chainElement
	module *model.Module
	// embedded counts embedded objects across the whole conversion.
	embedded *int
	line     int
}

func (c *chainConverter) property() model.Property {
	return c.chain[len(c.chain)-1].cls.Class
}

func (c *chainConverter) resetObject(obj *model.Object) {
	c.host = obj
	c.last = nil
	obj.RemoveAttributesByClass(c.chain[0].cls.Class)
}

func (c *chainConverter) resetLine(ln int) {
	c.line = ln
}

func (c *chainConverter) convert(v *document.Value) error {
	if v == nil || v.Trimmed() == "" {
		return nil
	}

	c.host.RemoveInheritedAttributes(c.chain[0].cls.Class)

	var (
		pathAttr *model.Attribute
		attrHost model.Attributed
	)

	for _, ce := range c.chain {
		switch {
		case pathAttr == nil:
			attrHost = c.host
		case ce.qualifier:
			attrHost = pathAttr
		default:
			attrHost = nil
			if t := pathAttr.TargetObject(); t != nil {
				attrHost = t
			}
		}

		if attrHost == nil {
			attrHost = c.embed(pathAttr, v)
		}

		if attrHost == model.Attributed(c.host) {
			pathAttr = nil
			if existing := c.host.AttributesByClass(ce.cls.Class); len(existing) > c.line {
				pathAttr = existing[c.line]
			}
		} else {
			pathAttr = attrHost.Attribute(ce.cls.Class)
		}

		if pathAttr == nil {
			pathAttr = attrHost.CreateAttribute(ce.cls)
		}
	}

	last := c.chain[len(c.chain)-1].cls
	if pathAttr.Class != last {
		pathAttr = attrHost.CreateAttribute(last)
	}

	if err := pathAttr.UpdateValue(v.Text); err != nil {
		return conversionErrorf(CodeInvalidValue, v.Row, v.Col,
			"invalid value (%s) for attribute: %s", v.Text, pathAttr.Class.Class.Name)
	}

	c.last = pathAttr

	return nil
}

// embed creates the embedded object an object attribute points to.
func (c *chainConverter) embed(objAttr *model.Attribute, v *document.Value) *model.Object {
	target := objAttr.Class.Class.TargetClass
	ref := &model.ClassRef{Class: target, Order: c.ref.Col, Original: c.ref.Original}

	id := fmt.Sprintf("__emb_%s%d", target.Name, *c.embedded)
	*c.embedded++

	emb := c.module.NewObject(ref, id)
	emb.Order = v.Row
	emb.Embedded = true
	objAttr.SetTarget(emb.Ref())

	return emb
}
