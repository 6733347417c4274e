package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"agetab/internal/common"
	"agetab/internal/model"
)

// File is the YAML representation of a schema.
type File struct {
	Classes    []ClassDef     `yaml:"classes"`
	Attributes []AttributeDef `yaml:"attributes,omitempty"`
	Relations  []RelationDef  `yaml:"relations,omitempty"`
}

// ClassDef defines an object class.
type ClassDef struct {
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent,omitempty"`
	Abstract bool   `yaml:"abstract,omitempty"`
}

// AttributeDef defines an attribute class.
type AttributeDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Target   string `yaml:"target,omitempty"`
	Parent   string `yaml:"parent,omitempty"`
	Abstract bool   `yaml:"abstract,omitempty"`
}

// RelationDef defines a relation class.
type RelationDef struct {
	Name     string               `yaml:"name"`
	Domain   common.StringOrArray `yaml:"domain,omitempty"`
	Range    common.StringOrArray `yaml:"range,omitempty"`
	Inverse  string               `yaml:"inverse,omitempty"`
	Parent   string               `yaml:"parent,omitempty"`
	Abstract bool                 `yaml:"abstract,omitempty"`
}

// LoadFile loads and builds a schema from a YAML file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data and builds a schema from it.
func Parse(data []byte) (*Schema, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	return Build(&f)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	for i := range f.Attributes {
		a := &f.Attributes[i]
		if a.Type == "" {
			if a.Target != "" {
				a.Type = model.DataTypeObject.String()
			} else {
				a.Type = model.DataTypeString.String()
			}
		}
	}
}

// Build creates a schema from its file representation. Every problem is
// reported, joined into the returned error.
func Build(f *File) (*Schema, error) {
	s := New()

	var errs []error

	seen := map[string]string{}
	claim := func(kind, name string) bool {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s with empty name", kind))
			return false
		}

		if prev, ok := seen[kind+":"+name]; ok {
			errs = append(errs, fmt.Errorf("duplicate %s %q (%s)", kind, name, prev))
			return false
		}

		seen[kind+":"+name] = kind

		return true
	}

	// First pass: create every definition so references may point forward.
	for _, cd := range f.Classes {
		if claim("class", cd.Name) {
			s.AddClass(&model.Class{Name: cd.Name, Abstract: cd.Abstract})
		}
	}

	for _, ad := range f.Attributes {
		if !claim("property", ad.Name) {
			continue
		}

		dt, err := model.ParseDataType(ad.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("attribute %q: %w", ad.Name, err))
		}

		s.AddAttributeClass(&model.AttributeClass{Name: ad.Name, Abstract: ad.Abstract, DataType: dt})
	}

	for _, rd := range f.Relations {
		if claim("property", rd.Name) {
			s.AddRelationClass(&model.RelationClass{Name: rd.Name, Abstract: rd.Abstract})
		}
	}

	// Second pass: link names.
	for _, cd := range f.Classes {
		if cd.Parent == "" {
			continue
		}

		if p := s.DefinedClass(cd.Parent); p != nil {
			s.DefinedClass(cd.Name).Parent = p
		} else {
			errs = append(errs, fmt.Errorf("class %q: unknown parent class %q", cd.Name, cd.Parent))
		}
	}

	for _, ad := range f.Attributes {
		errs = append(errs, linkAttribute(s, ad)...)
	}

	for _, rd := range f.Relations {
		errs = append(errs, linkRelation(s, rd)...)
	}

	errs = append(errs, checkClassCycles(s)...)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return s, nil
}

func linkAttribute(s *Schema, ad AttributeDef) []error {
	var errs []error

	a := s.DefinedAttributeClass(ad.Name)
	if a == nil {
		return nil
	}

	if ad.Parent != "" {
		if p := s.DefinedAttributeClass(ad.Parent); p != nil {
			a.Parent = p
		} else {
			errs = append(errs, fmt.Errorf("attribute %q: unknown parent attribute %q", ad.Name, ad.Parent))
		}
	}

	if ad.Target != "" {
		if t := s.DefinedClass(ad.Target); t != nil {
			a.TargetClass = t
		} else {
			errs = append(errs, fmt.Errorf("attribute %q: unknown target class %q", ad.Name, ad.Target))
		}
	}

	return errs
}

func linkRelation(s *Schema, rd RelationDef) []error {
	var errs []error

	r := s.DefinedRelationClass(rd.Name)
	if r == nil {
		return nil
	}

	resolve := func(names common.StringOrArray, what string) []*model.Class {
		var out []*model.Class

		for _, n := range names {
			if c := s.DefinedClass(n); c != nil {
				out = append(out, c)
			} else {
				errs = append(errs, fmt.Errorf("relation %q: unknown %s class %q", rd.Name, what, n))
			}
		}

		return out
	}

	r.Domain = resolve(rd.Domain, "domain")
	r.Range = resolve(rd.Range, "range")

	if rd.Parent != "" {
		if p := s.DefinedRelationClass(rd.Parent); p != nil {
			r.Parent = p
		} else {
			errs = append(errs, fmt.Errorf("relation %q: unknown parent relation %q", rd.Name, rd.Parent))
		}
	}

	if rd.Inverse != "" {
		inv := s.DefinedRelationClass(rd.Inverse)

		switch {
		case inv == nil:
			errs = append(errs, fmt.Errorf("relation %q: unknown inverse relation %q", rd.Name, rd.Inverse))
		case r.Inverse != nil && r.Inverse != inv:
			errs = append(errs, fmt.Errorf("relation %q: inverse %q conflicts with %q", rd.Name, rd.Inverse, r.Inverse.Name))
		case inv.Inverse != nil && inv.Inverse != r:
			errs = append(errs, fmt.Errorf("relation %q: %q is already the inverse of %q", rd.Name, rd.Inverse, inv.Inverse.Name))
		default:
			r.Inverse = inv
			inv.Inverse = r
		}
	}

	return errs
}

func checkClassCycles(s *Schema) []error {
	var errs []error

	for _, name := range sortedKeys(s.classes) {
		slow, fast := s.classes[name], s.classes[name]
		for fast != nil && fast.Parent != nil {
			slow, fast = slow.Parent, fast.Parent.Parent
			if slow == fast {
				errs = append(errs, fmt.Errorf("class %q: inheritance cycle", name))
				break
			}
		}
	}

	return errs
}
