package model

import (
	"cmp"
	"slices"
)

// ObjectRef is a stable handle of an object within its Module.
type ObjectRef int32

// NoObject is the zero handle for "no object".
const NoObject ObjectRef = -1

// RelationRef is a stable handle of a relation within its Module.
type RelationRef int32

// NoRelation is the zero handle for "no relation".
const NoRelation RelationRef = -1

// Module owns every object and relation created by one conversion. Objects
// emitted to the caller are listed separately from the arena, which also
// holds prototypes and embedded objects.
type Module struct {
	objects   []*Object
	relations []*Relation
	emitted   []ObjectRef
	isEmitted map[ObjectRef]bool
	inferred  map[*AttributeClass]DataType
}

// NewModule creates an empty module.
func NewModule() *Module {
	return &Module{
		isEmitted: make(map[ObjectRef]bool),
		inferred:  make(map[*AttributeClass]DataType),
	}
}

// NewObject allocates an object in the arena. An empty id means the id is
// assigned later.
func (m *Module) NewObject(cls *ClassRef, id string) *Object {
	ref := ObjectRef(len(m.objects))
	o := &Object{
		attributeSet: attributeSet{module: m, master: ref},
		ref:          ref,
		Class:        cls,
		ID:           id,
	}
	m.objects = append(m.objects, o)

	return o
}

// Object returns the object for a handle, or nil.
func (m *Module) Object(ref ObjectRef) *Object {
	if ref < 0 || int(ref) >= len(m.objects) {
		return nil
	}

	return m.objects[ref]
}

// Relation returns the relation for a handle, or nil.
func (m *Module) Relation(ref RelationRef) *Relation {
	if ref < 0 || int(ref) >= len(m.relations) {
		return nil
	}

	return m.relations[ref]
}

// Emit appends an object to the module's output collection. An object is
// emitted at most once; later calls keep its first position.
func (m *Module) Emit(o *Object) {
	if m.isEmitted[o.ref] {
		return
	}

	m.isEmitted[o.ref] = true
	m.emitted = append(m.emitted, o.ref)
}

// IsEmitted reports whether o is part of the output collection.
func (m *Module) IsEmitted(o *Object) bool {
	return m.isEmitted[o.ref]
}

// Objects returns the emitted objects in emission order.
func (m *Module) Objects() []*Object {
	out := make([]*Object, 0, len(m.emitted))
	for _, ref := range m.emitted {
		out = append(out, m.objects[ref])
	}

	return out
}

// AllObjects returns every object in the arena, including prototypes and
// embedded objects.
func (m *Module) AllObjects() []*Object {
	return m.objects
}

// SetInferredType records the type resolved for a GUESS attribute class.
func (m *Module) SetInferredType(cls *AttributeClass, t DataType) {
	m.inferred[cls] = t
}

// InferredType returns the type resolved for cls by type inference.
func (m *Module) InferredType(cls *AttributeClass) (DataType, bool) {
	t, ok := m.inferred[cls]
	return t, ok
}

func (m *Module) newRelation(host ObjectRef, cls *RelationClassRef) *Relation {
	ref := RelationRef(len(m.relations))
	r := &Relation{
		attributeSet: attributeSet{module: m, master: host},
		ref:          ref,
		Class:        cls,
		Host:         host,
		Target:       NoObject,
		Inverse:      NoRelation,
	}
	m.relations = append(m.relations, r)

	return r
}

// Object is a node of the graph.
type Object struct {
	attributeSet

	ref   ObjectRef
	Class *ClassRef
	// ID is empty when the id is generated after conversion.
	ID string
	// Order is the source row of the object's first occurrence.
	Order     int
	Prototype bool
	Embedded  bool

	relations []RelationRef
}

// Ref returns the object's handle.
func (o *Object) Ref() ObjectRef {
	return o.ref
}

// Module returns the owning module.
func (o *Object) Module() *Module {
	return o.module
}

// HasGeneratedID reports whether the object still waits for an id.
func (o *Object) HasGeneratedID() bool {
	return o.ID == ""
}

// Relations returns the object's relations in declaration order.
func (o *Object) Relations() []*Relation {
	out := make([]*Relation, 0, len(o.relations))
	for _, ref := range o.relations {
		out = append(out, o.module.relations[ref])
	}

	return out
}

// SortValues restores declaration order after multiline conversion:
// attributes and relations are ordered by column, lines of one column stay
// in source order, and qualifiers are sorted recursively.
func (o *Object) SortValues() {
	o.SortAttributes()

	slices.SortStableFunc(o.relations, func(a, b RelationRef) int {
		return cmp.Compare(o.module.relations[a].Class.Order, o.module.relations[b].Class.Order)
	})

	for _, ref := range o.relations {
		o.module.relations[ref].SortAttributes()
	}
}

// RelationsByClass returns the relations of exactly the given class.
func (o *Object) RelationsByClass(cls *RelationClass) []*Relation {
	var out []*Relation

	for _, ref := range o.relations {
		if r := o.module.relations[ref]; r.Class.Class == cls {
			out = append(out, r)
		}
	}

	return out
}

// CreateRelation creates a relation from o to target.
func (o *Object) CreateRelation(cls *RelationClassRef, target ObjectRef) *Relation {
	r := o.module.newRelation(o.ref, cls)
	r.Target = target
	o.relations = append(o.relations, r.ref)

	return r
}

// CreateExternalRelation creates a relation whose target lies outside the
// module and is resolved later within scope.
func (o *Object) CreateExternalRelation(cls *RelationClassRef, targetID string, scope ResolveScope) *Relation {
	r := o.module.newRelation(o.ref, cls)
	r.TargetID = targetID
	r.Scope = scope
	o.relations = append(o.relations, r.ref)

	return r
}

// RemoveRelation detaches r from o.
func (o *Object) RemoveRelation(r *Relation) {
	for i, ref := range o.relations {
		if ref == r.ref {
			o.relations = append(o.relations[:i], o.relations[i+1:]...)
			return
		}
	}
}

// RemoveRelationsByClass detaches every relation of cls and returns how many
// were removed.
func (o *Object) RemoveRelationsByClass(cls *RelationClass) int {
	kept := o.relations[:0]
	n := 0

	for _, ref := range o.relations {
		if o.module.relations[ref].Class.Class == cls {
			n++
			continue
		}

		kept = append(kept, ref)
	}

	o.relations = kept

	return n
}

// RemoveInheritedRelations detaches prototype-inherited relations of cls.
func (o *Object) RemoveInheritedRelations(cls *RelationClass) {
	kept := o.relations[:0]

	for _, ref := range o.relations {
		r := o.module.relations[ref]
		if r.Class.Class == cls && r.FromPrototype {
			continue
		}

		kept = append(kept, ref)
	}

	o.relations = kept
}

// CloneRelation copies a relation (and its qualifiers) from another object
// onto o, keeping its class and target.
func (o *Object) CloneRelation(src *Relation) *Relation {
	r := o.module.newRelation(o.ref, src.Class)
	r.Target = src.Target
	r.TargetID = src.TargetID
	r.Scope = src.Scope

	for _, a := range src.attrs {
		r.attrs = append(r.attrs, a.Clone(o.ref))
	}

	o.relations = append(o.relations, r.ref)

	return r
}

// Relation links a host object to a target object or an external reference.
type Relation struct {
	attributeSet

	ref   RelationRef
	Class *RelationClassRef
	Host  ObjectRef
	// Target is NoObject for external relations.
	Target ObjectRef
	// TargetID and Scope describe an external target.
	TargetID string
	Scope    ResolveScope
	// Inverse is the counterpart relation on the target, or NoRelation.
	Inverse RelationRef
	// Inferred marks a relation synthesized as an inverse.
	Inferred      bool
	FromPrototype bool
}

// Ref returns the relation's handle.
func (r *Relation) Ref() RelationRef {
	return r.ref
}

// IsExternal reports whether the target lies outside the module.
func (r *Relation) IsExternal() bool {
	return r.Target == NoObject
}

// HostObject returns the object holding the relation.
func (r *Relation) HostObject() *Object {
	return r.module.Object(r.Host)
}

// TargetObject returns the target object, or nil for external relations.
func (r *Relation) TargetObject() *Object {
	return r.module.Object(r.Target)
}

// InverseRelation returns the linked inverse, or nil.
func (r *Relation) InverseRelation() *Relation {
	return r.module.Relation(r.Inverse)
}

// SetInverse links r to its inverse.
func (r *Relation) SetInverse(inv *Relation) {
	r.Inverse = inv.ref
}
