package profile

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"agetab/internal/model"
)

// hclProfileFile is the top-level structure of a profile file.
type hclProfileFile struct {
	Common  *hclDefinition   `hcl:"common,block"`
	Classes []*hclClassBlock `hcl:"class,block"`
}

type hclClassBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclDefinition mirrors Definition with every attribute optional. A nil
// field keeps the inherited value.
type hclDefinition struct {
	ModulePrefix         *string `hcl:"module_prefix,optional"`
	ClusterPrefix        *string `hcl:"cluster_prefix,optional"`
	GlobalPrefix         *string `hcl:"global_prefix,optional"`
	CascadeModulePrefix  *string `hcl:"cascade_module_prefix,optional"`
	CascadeClusterPrefix *string `hcl:"cascade_cluster_prefix,optional"`
	DefaultPrefix        *string `hcl:"default_prefix,optional"`

	ObjectAttributeScope *string `hcl:"default_object_attribute_scope,optional"`
	RelationScope        *string `hcl:"default_relation_scope,optional"`
	FileAttributeScope   *string `hcl:"default_file_attribute_scope,optional"`

	PrototypeObjectID          *string `hcl:"prototype_id,optional"`
	ResetPrototype             *bool   `hcl:"reset_prototype,optional"`
	AllowImplicitCustomClasses *bool   `hcl:"implicit_custom_classes,optional"`
}

// LoadFile parses an HCL profile file.
func LoadFile(path string) (*Profile, error) {
	parser := hclparse.NewParser()

	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	return decode(f, path)
}

// Parse parses HCL profile source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Profile, error) {
	parser := hclparse.NewParser()

	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	return decode(f, filename)
}

func decode(f *hcl.File, filename string) (*Profile, error) {
	var parsed hclProfileFile

	diags := gohcl.DecodeBody(f.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	p := Default()

	var errs []error

	if parsed.Common != nil {
		if err := parsed.Common.overlay(&p.Common); err != nil {
			errs = append(errs, fmt.Errorf("common: %w", err))
		}
	}

	for _, cb := range parsed.Classes {
		if _, dup := p.Classes[cb.Name]; dup {
			errs = append(errs, fmt.Errorf("class %q: defined twice", cb.Name))
			continue
		}

		var def hclDefinition

		diags = gohcl.DecodeBody(cb.Body, nil, &def)
		if diags.HasErrors() {
			errs = append(errs, fmt.Errorf("class %q: %w", cb.Name, diags))
			continue
		}

		d := p.Common
		if err := def.overlay(&d); err != nil {
			errs = append(errs, fmt.Errorf("class %q: %w", cb.Name, err))
		}

		p.Classes[cb.Name] = d
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}

	return p, nil
}

// overlay copies the set fields onto d.
func (h *hclDefinition) overlay(d *Definition) error {
	setString(&d.ModulePrefix, h.ModulePrefix)
	setString(&d.ClusterPrefix, h.ClusterPrefix)
	setString(&d.GlobalPrefix, h.GlobalPrefix)
	setString(&d.CascadeModulePrefix, h.CascadeModulePrefix)
	setString(&d.CascadeClusterPrefix, h.CascadeClusterPrefix)
	setString(&d.DefaultPrefix, h.DefaultPrefix)
	setString(&d.PrototypeObjectID, h.PrototypeObjectID)

	if h.ResetPrototype != nil {
		d.ResetPrototype = *h.ResetPrototype
	}

	if h.AllowImplicitCustomClasses != nil {
		d.AllowImplicitCustomClasses = *h.AllowImplicitCustomClasses
	}

	return errors.Join(
		setScope(&d.ObjectAttributeScope, h.ObjectAttributeScope),
		setScope(&d.RelationScope, h.RelationScope),
		setScope(&d.FileAttributeScope, h.FileAttributeScope),
	)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setScope(dst *model.ResolveScope, v *string) error {
	if v == nil {
		return nil
	}

	s, err := model.ParseResolveScope(*v)
	if err != nil {
		return err
	}

	*dst = s

	return nil
}
