package model

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a textual value does not fit the data
// type of its attribute class.
var ErrInvalidFormat = errors.New("invalid value format")

// Attributed is anything that carries attributes: objects, relations, and
// attributes themselves (qualifiers).
type Attributed interface {
	Attributes() []*Attribute
	AttributesByClass(cls *AttributeClass) []*Attribute
	Attribute(cls *AttributeClass) *Attribute
	CreateAttribute(ref *AttributeClassRef) *Attribute
	CreateExternalObjectAttribute(ref *AttributeClassRef, id string, scope ResolveScope) *Attribute
	AddAttribute(a *Attribute)
	RemoveAttribute(a *Attribute)
	ReplaceAttribute(old, repl *Attribute)
	RemoveAttributesByClass(cls *AttributeClass) int
}

// attributeSet implements Attributed. master is the object that ultimately
// owns the attributes.
type attributeSet struct {
	module *Module
	master ObjectRef
	attrs  []*Attribute
}

// Attributes returns the attributes in declaration order.
func (s *attributeSet) Attributes() []*Attribute {
	return s.attrs
}

// AttributesByClass returns the attributes of exactly the given class.
func (s *attributeSet) AttributesByClass(cls *AttributeClass) []*Attribute {
	var out []*Attribute

	for _, a := range s.attrs {
		if a.Class.Class == cls {
			out = append(out, a)
		}
	}

	return out
}

// Attribute returns the first attribute of the given class, or nil.
func (s *attributeSet) Attribute(cls *AttributeClass) *Attribute {
	for _, a := range s.attrs {
		if a.Class.Class == cls {
			return a
		}
	}

	return nil
}

// CreateAttribute creates an empty attribute and appends it to the set.
func (s *attributeSet) CreateAttribute(ref *AttributeClassRef) *Attribute {
	a := newAttribute(s.module, s.master, ref)
	s.attrs = append(s.attrs, a)

	return a
}

// CreateExternalObjectAttribute creates an object attribute whose target is
// resolved outside the module.
func (s *attributeSet) CreateExternalObjectAttribute(ref *AttributeClassRef, id string, scope ResolveScope) *Attribute {
	a := s.CreateAttribute(ref)
	a.kind = DataTypeObject
	a.external = id
	a.scope = scope
	a.set = true

	return a
}

// AddAttribute appends an existing attribute.
func (s *attributeSet) AddAttribute(a *Attribute) {
	s.attrs = append(s.attrs, a)
}

// RemoveAttribute removes a by identity.
func (s *attributeSet) RemoveAttribute(a *Attribute) {
	for i, cur := range s.attrs {
		if cur == a {
			s.attrs = append(s.attrs[:i], s.attrs[i+1:]...)
			return
		}
	}
}

// ReplaceAttribute puts repl in the slot held by old.
func (s *attributeSet) ReplaceAttribute(old, repl *Attribute) {
	for i, cur := range s.attrs {
		if cur == old {
			s.attrs[i] = repl
			return
		}
	}
}

// RemoveAttributesByClass removes every attribute of cls and returns how many
// were removed.
func (s *attributeSet) RemoveAttributesByClass(cls *AttributeClass) int {
	kept := s.attrs[:0]
	n := 0

	for _, a := range s.attrs {
		if a.Class.Class == cls {
			n++
			continue
		}

		kept = append(kept, a)
	}

	s.attrs = kept

	return n
}

// RemoveInheritedAttributes drops the prototype-inherited attributes of cls.
func (s *attributeSet) RemoveInheritedAttributes(cls *AttributeClass) {
	kept := s.attrs[:0]

	for _, a := range s.attrs {
		if a.Class.Class == cls && a.FromPrototype {
			continue
		}

		kept = append(kept, a)
	}

	s.attrs = kept
}

// SortAttributes orders the attributes by column, keeping line order within
// a column, and sorts the qualifiers of each attribute the same way.
func (s *attributeSet) SortAttributes() {
	slices.SortStableFunc(s.attrs, func(a, b *Attribute) int {
		return cmp.Compare(a.Class.Order, b.Class.Order)
	})

	for _, a := range s.attrs {
		a.SortAttributes()
	}
}

// Attribute is a single attribute value. Its kind is the concrete DataType
// of the value, which is DataTypeGuess until type inference runs.
type Attribute struct {
	attributeSet

	Class *AttributeClassRef
	// FromPrototype marks attributes copied from a prototype object.
	FromPrototype bool

	kind     DataType
	set      bool
	text     string
	boolVal  bool
	intVal   int64
	realVal  float64
	target   ObjectRef
	external string
	scope    ResolveScope
}

func newAttribute(m *Module, master ObjectRef, ref *AttributeClassRef) *Attribute {
	return &Attribute{
		attributeSet: attributeSet{module: m, master: master},
		Class:        ref,
		kind:         ref.Class.DataType,
		target:       NoObject,
	}
}

// DataType returns the concrete type of this value.
func (a *Attribute) DataType() DataType {
	return a.kind
}

// IsSet reports whether a value was assigned.
func (a *Attribute) IsSet() bool {
	return a.set
}

// Text returns the textual value (GUESS, STRING, TEXT, FILE) or a rendering
// of typed values.
func (a *Attribute) Text() string {
	switch a.kind {
	case DataTypeBoolean:
		return strconv.FormatBool(a.boolVal)
	case DataTypeInteger:
		return strconv.FormatInt(a.intVal, 10)
	case DataTypeReal:
		return strconv.FormatFloat(a.realVal, 'g', -1, 64)
	case DataTypeObject:
		if t := a.TargetObject(); t != nil {
			return t.ID
		}

		return a.external
	default:
		return a.text
	}
}

// Bool returns the boolean value.
func (a *Attribute) Bool() bool { return a.boolVal }

// Int returns the integer value.
func (a *Attribute) Int() int64 { return a.intVal }

// Real returns the floating point value.
func (a *Attribute) Real() float64 { return a.realVal }

// Value returns the value as bool, int64, float64, *Object or string.
func (a *Attribute) Value() any {
	switch a.kind {
	case DataTypeBoolean:
		return a.boolVal
	case DataTypeInteger:
		return a.intVal
	case DataTypeReal:
		return a.realVal
	case DataTypeObject:
		if t := a.TargetObject(); t != nil {
			return t
		}

		return a.external
	default:
		return a.text
	}
}

// Target returns the handle of the referenced object, or NoObject.
func (a *Attribute) Target() ObjectRef {
	return a.target
}

// TargetObject returns the referenced object, or nil if the attribute is not
// an object attribute or its target is external.
func (a *Attribute) TargetObject() *Object {
	if a.target == NoObject || a.module == nil {
		return nil
	}

	return a.module.Object(a.target)
}

// External returns the unresolved reference and its scope. ok is false when
// the attribute holds no external reference.
func (a *Attribute) External() (id string, scope ResolveScope, ok bool) {
	if a.external == "" {
		return "", a.scope, false
	}

	return a.external, a.scope, true
}

// Scope returns the resolve scope of object and file references.
func (a *Attribute) Scope() ResolveScope {
	return a.scope
}

// MasterObject returns the object that ultimately owns this attribute.
func (a *Attribute) MasterObject() *Object {
	return a.module.Object(a.master)
}

// SetTarget points an object attribute at an object of the module.
func (a *Attribute) SetTarget(ref ObjectRef) {
	a.kind = DataTypeObject
	a.target = ref
	a.external = ""
	a.set = true
}

// SetFile stores a file reference with its resolve scope.
func (a *Attribute) SetFile(id string, scope ResolveScope) {
	a.kind = DataTypeFile
	a.text = id
	a.scope = scope
	a.set = true
}

// SetText stores a final single-line string value.
func (a *Attribute) SetText(v string) {
	a.kind = DataTypeString
	a.text = v
	a.set = true
}

// SetBool stores a boolean value.
func (a *Attribute) SetBool(v bool) {
	a.kind = DataTypeBoolean
	a.boolVal = v
	a.set = true
}

// SetInt stores an integer value.
func (a *Attribute) SetInt(v int64) {
	a.kind = DataTypeInteger
	a.intVal = v
	a.set = true
}

// SetReal stores a floating point value.
func (a *Attribute) SetReal(v float64) {
	a.kind = DataTypeReal
	a.realVal = v
	a.set = true
}

// UpdateValue parses text according to the attribute's type. Multiline (TEXT)
// values append a new line on every update after the first.
func (a *Attribute) UpdateValue(text string) error {
	switch a.kind {
	case DataTypeGuess, DataTypeString:
		a.text = text
	case DataTypeText:
		if a.set {
			a.text += "\n" + text
		} else {
			a.text = text
		}
	case DataTypeFile:
		a.text = text
	case DataTypeBoolean:
		v := strings.TrimSpace(text)
		switch {
		case strings.EqualFold(v, "true"):
			a.boolVal = true
		case strings.EqualFold(v, "false"):
			a.boolVal = false
		default:
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidFormat, text)
		}
	case DataTypeInteger:
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidFormat, text)
		}

		a.intVal = v
	case DataTypeReal:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a real number", ErrInvalidFormat, text)
		}

		a.realVal = v
	default:
		return fmt.Errorf("%w: %s values cannot be set from text", ErrInvalidFormat, a.kind)
	}

	a.set = true

	return nil
}

// Clone deep-copies the attribute and its qualifiers for a new master object.
func (a *Attribute) Clone(master ObjectRef) *Attribute {
	c := *a
	c.master = master
	c.attrs = make([]*Attribute, 0, len(a.attrs))

	for _, q := range a.attrs {
		c.attrs = append(c.attrs, q.Clone(master))
	}

	return &c
}

// Retyped returns a copy of a carrying the same class reference, order and
// qualifiers, whose value is reset so a typed value can be stored.
func (a *Attribute) Retyped() *Attribute {
	c := *a
	c.text = ""
	c.set = false

	return &c
}
