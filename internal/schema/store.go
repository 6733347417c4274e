package schema

import (
	"sort"

	"agetab/internal/match"
	"agetab/internal/model"
)

type customAttrKey struct {
	name string
	host *model.Class
}

// Schema holds defined and custom classes. Returned pointers are stable and
// usable as map keys for the lifetime of the Schema.
type Schema struct {
	classes          map[string]*model.Class
	customClasses    map[string]*model.Class
	attributes       map[string]*model.AttributeClass
	customAttributes map[customAttrKey]*model.AttributeClass
	relations        map[string]*model.RelationClass
	customRelations  map[string]*model.RelationClass
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{
		classes:          make(map[string]*model.Class),
		customClasses:    make(map[string]*model.Class),
		attributes:       make(map[string]*model.AttributeClass),
		customAttributes: make(map[customAttrKey]*model.AttributeClass),
		relations:        make(map[string]*model.RelationClass),
		customRelations:  make(map[string]*model.RelationClass),
	}
}

// AddClass registers a defined class.
func (s *Schema) AddClass(c *model.Class) *model.Class {
	s.classes[c.Name] = c
	return c
}

// AddAttributeClass registers a defined attribute class.
func (s *Schema) AddAttributeClass(a *model.AttributeClass) *model.AttributeClass {
	s.attributes[a.Name] = a
	return a
}

// AddRelationClass registers a defined relation class.
func (s *Schema) AddRelationClass(r *model.RelationClass) *model.RelationClass {
	s.relations[r.Name] = r
	return r
}

// DefinedClass returns the defined class with the given name, or nil.
func (s *Schema) DefinedClass(name string) *model.Class {
	return s.classes[name]
}

// CustomClass returns the custom class with the given name, or nil.
func (s *Schema) CustomClass(name string) *model.Class {
	return s.customClasses[name]
}

// GetOrCreateCustomClass returns the custom class name, creating it with the
// given parent when absent.
func (s *Schema) GetOrCreateCustomClass(name string, parent *model.Class) *model.Class {
	if c, ok := s.customClasses[name]; ok {
		return c
	}

	c := &model.Class{Name: name, Custom: true, Parent: parent}
	s.customClasses[name] = c

	return c
}

// DefinedAttributeClass returns the defined attribute class, or nil.
func (s *Schema) DefinedAttributeClass(name string) *model.AttributeClass {
	return s.attributes[name]
}

// CustomAttributeClass returns the custom attribute class defined for host,
// or nil.
func (s *Schema) CustomAttributeClass(name string, host *model.Class) *model.AttributeClass {
	return s.customAttributes[customAttrKey{name: name, host: host}]
}

// GetOrCreateCustomAttributeClass returns the custom attribute class of
// host, creating it with the given type and parent when absent.
func (s *Schema) GetOrCreateCustomAttributeClass(
	name string,
	dt model.DataType,
	host *model.Class,
	parent *model.AttributeClass,
) *model.AttributeClass {
	key := customAttrKey{name: name, host: host}
	if a, ok := s.customAttributes[key]; ok {
		return a
	}

	a := &model.AttributeClass{Name: name, Custom: true, DataType: dt, Host: host, Parent: parent}
	s.customAttributes[key] = a

	return a
}

// DefinedRelationClass returns the defined relation class, or nil.
func (s *Schema) DefinedRelationClass(name string) *model.RelationClass {
	return s.relations[name]
}

// CustomRelationClass returns the custom relation class, or nil.
func (s *Schema) CustomRelationClass(name string) *model.RelationClass {
	return s.customRelations[name]
}

// GetOrCreateCustomRelationClass returns the custom relation class name,
// creating it when absent. The range and domain classes are added to an
// existing class's sets when missing.
func (s *Schema) GetOrCreateCustomRelationClass(
	name string,
	rangeClass, domainClass *model.Class,
	parent *model.RelationClass,
) *model.RelationClass {
	r, ok := s.customRelations[name]
	if !ok {
		r = &model.RelationClass{Name: name, Custom: true, Parent: parent}
		s.customRelations[name] = r
	}

	r.Range = appendClass(r.Range, rangeClass)
	r.Domain = appendClass(r.Domain, domainClass)

	return r
}

func appendClass(set []*model.Class, c *model.Class) []*model.Class {
	if c == nil {
		return set
	}

	for _, cur := range set {
		if cur == c {
			return set
		}
	}

	return append(set, c)
}

// DefinedProperty returns the defined attribute or relation class with the
// given name, attributes first, or nil.
func (s *Schema) DefinedProperty(name string) model.Property {
	if a, ok := s.attributes[name]; ok {
		return a
	}

	if r, ok := s.relations[name]; ok {
		return r
	}

	return nil
}

// SuggestClasses returns defined class names similar to name.
func (s *Schema) SuggestClasses(name string) []string {
	return match.Suggest(name, sortedKeys(s.classes))
}

// SuggestProperties returns defined attribute and relation names similar to
// name.
func (s *Schema) SuggestProperties(name string) []string {
	names := append(sortedKeys(s.attributes), sortedKeys(s.relations)...)
	return match.Suggest(name, names)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}
