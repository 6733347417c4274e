package profile

import (
	"agetab/internal/model"
)

// Definition is the resolved syntax configuration for one class.
type Definition struct {
	ModulePrefix         string
	ClusterPrefix        string
	GlobalPrefix         string
	CascadeModulePrefix  string
	CascadeClusterPrefix string
	DefaultPrefix        string

	ObjectAttributeScope model.ResolveScope
	RelationScope        model.ResolveScope
	FileAttributeScope   model.ResolveScope

	PrototypeObjectID          string
	ResetPrototype             bool
	AllowImplicitCustomClasses bool
}

// Profile is a common definition with class-specific overrides.
type Profile struct {
	Common  Definition
	Classes map[string]Definition
}

// DefaultDefinition returns the built-in syntax settings.
func DefaultDefinition() Definition {
	return Definition{
		ModulePrefix:         "m:",
		ClusterPrefix:        "c:",
		GlobalPrefix:         "g:",
		CascadeModulePrefix:  "cm:",
		CascadeClusterPrefix: "cc:",
		DefaultPrefix:        "~",

		ObjectAttributeScope: model.ScopeModule,
		RelationScope:        model.ScopeModule,
		FileAttributeScope:   model.ScopeCluster,

		PrototypeObjectID: "*",
	}
}

// Default returns a profile with only the built-in common definition.
func Default() *Profile {
	return &Profile{Common: DefaultDefinition(), Classes: map[string]Definition{}}
}

// ForClass returns the definition that applies to the named class.
func (p *Profile) ForClass(name string) Definition {
	if d, ok := p.Classes[name]; ok {
		return d
	}

	return p.Common
}

// Prefix is a scope prefix and the scope it selects. The default prefix maps
// to the scope passed to Prefixes.
type Prefix struct {
	Text  string
	Scope model.ResolveScope
}

// Prefixes returns the scope prefixes in matching precedence: module,
// cluster, global, cascade module, cascade cluster, then the default prefix
// mapped to def. Empty prefixes are omitted since they would match anything.
func (d Definition) Prefixes(def model.ResolveScope) []Prefix {
	all := []Prefix{
		{Text: d.ModulePrefix, Scope: model.ScopeModule},
		{Text: d.ClusterPrefix, Scope: model.ScopeCluster},
		{Text: d.GlobalPrefix, Scope: model.ScopeGlobal},
		{Text: d.CascadeModulePrefix, Scope: model.ScopeCascadeModule},
		{Text: d.CascadeClusterPrefix, Scope: model.ScopeCascadeCluster},
		{Text: d.DefaultPrefix, Scope: def},
	}

	out := all[:0]

	for _, p := range all {
		if p.Text != "" {
			out = append(out, p)
		}
	}

	return out
}

// FilePrefixes returns the prefixes recognized for file references: cluster,
// global, cascade cluster and the default prefix.
func (d Definition) FilePrefixes() []Prefix {
	all := []Prefix{
		{Text: d.ClusterPrefix, Scope: model.ScopeCluster},
		{Text: d.GlobalPrefix, Scope: model.ScopeGlobal},
		{Text: d.CascadeClusterPrefix, Scope: model.ScopeCascadeCluster},
		{Text: d.DefaultPrefix, Scope: d.FileAttributeScope},
	}

	out := all[:0]

	for _, p := range all {
		if p.Text != "" {
			out = append(out, p)
		}
	}

	return out
}

// ForHeader returns the definition for a block header. Custom classes always
// use the common definition.
func (p *Profile) ForHeader(name string, custom bool) Definition {
	if custom {
		return p.Common
	}

	return p.ForClass(name)
}
