package convert

import (
	"agetab/internal/document"
	"agetab/internal/model"
)

// objectRegistry maps (class, id) to the object being built, so an id seen
// again in the same or another block reuses the object. Rows without an id
// are keyed by the row itself. Each class has at most one prototype.
type objectRegistry struct {
	module     *model.Module
	classes    []*model.Class
	byID       map[*model.Class]map[string]*model.Object
	anonymous  map[*document.Row]*model.Object
	prototypes map[*model.Class]*model.Object
}

func newObjectRegistry(m *model.Module) *objectRegistry {
	return &objectRegistry{
		module:     m,
		byID:       make(map[*model.Class]map[string]*model.Object),
		anonymous:  make(map[*document.Row]*model.Object),
		prototypes: make(map[*model.Class]*model.Object),
	}
}

// register makes sure cls has an id map. Classes keep registration order.
func (r *objectRegistry) register(cls *model.Class) map[string]*model.Object {
	ids, ok := r.byID[cls]
	if !ok {
		ids = make(map[string]*model.Object)
		r.byID[cls] = ids
		r.classes = append(r.classes, cls)
	}

	return ids
}

// getOrCreate returns the object of row, creating it on first encounter.
func (r *objectRegistry) getOrCreate(ref *model.ClassRef, row *document.Row) *model.Object {
	ids := r.register(ref.Class)

	if !row.IDDefined {
		if o, ok := r.anonymous[row]; ok {
			return o
		}

		o := r.module.NewObject(ref, "")
		o.Order = row.Row
		r.anonymous[row] = o

		return o
	}

	if o, ok := ids[row.ID]; ok {
		return o
	}

	o := r.module.NewObject(ref, row.ID)
	o.Order = row.Row
	ids[row.ID] = o

	return o
}

// lookup returns the object pre-created for row.
func (r *objectRegistry) lookup(cls *model.Class, row *document.Row) *model.Object {
	if !row.IDDefined {
		return r.anonymous[row]
	}

	return r.byID[cls][row.ID]
}

// find returns the object of exactly cls with the given id, or nil.
func (r *objectRegistry) find(cls *model.Class, id string) *model.Object {
	return r.byID[cls][id]
}

// candidates returns the registered classes that are a member of rng or a
// subclass of one, in registration order. An empty rng admits every class.
func (r *objectRegistry) candidates(rng []*model.Class) []*model.Class {
	if len(rng) == 0 {
		return r.classes
	}

	var out []*model.Class

	for _, c := range r.classes {
		for _, rc := range rng {
			if c.IsClassOrSubclass(rc) {
				out = append(out, c)
				break
			}
		}
	}

	return out
}

// prototype returns the prototype of cls, or nil.
func (r *objectRegistry) prototype(cls *model.Class) *model.Object {
	return r.prototypes[cls]
}

// getOrCreatePrototype returns the prototype of cls, creating it when absent.
func (r *objectRegistry) getOrCreatePrototype(ref *model.ClassRef, id string, row *document.Row) *model.Object {
	if p, ok := r.prototypes[ref.Class]; ok {
		return p
	}

	return r.newPrototype(ref, id, row)
}

// newPrototype replaces the prototype of the class with a fresh object.
func (r *objectRegistry) newPrototype(ref *model.ClassRef, id string, row *document.Row) *model.Object {
	p := r.module.NewObject(ref, id)
	p.Order = row.Row
	p.Prototype = true
	r.prototypes[ref.Class] = p

	return p
}

// dropPrototype forgets the prototype of cls.
func (r *objectRegistry) dropPrototype(cls *model.Class) {
	delete(r.prototypes, cls)
}
