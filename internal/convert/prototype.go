package convert

import "agetab/internal/model"

// applyPrototype copies the prototype's attributes and relations onto obj,
// class by class, skipping every class obj already has a value for. Copies
// are marked FromPrototype so an explicit value converted later replaces
// them.
func applyPrototype(obj, proto *model.Object) {
	seenAttr := map[*model.AttributeClass]bool{}

	for _, pa := range proto.Attributes() {
		cls := pa.Class.Class
		if seenAttr[cls] {
			continue
		}

		seenAttr[cls] = true

		if obj.Attribute(cls) != nil {
			continue
		}

		for _, a := range proto.AttributesByClass(cls) {
			c := a.Clone(obj.Ref())
			c.FromPrototype = true
			obj.AddAttribute(c)
		}
	}

	seenRel := map[*model.RelationClass]bool{}

	for _, pr := range proto.Relations() {
		cls := pr.Class.Class
		if seenRel[cls] {
			continue
		}

		seenRel[cls] = true

		if len(obj.RelationsByClass(cls)) > 0 {
			continue
		}

		for _, r := range proto.RelationsByClass(cls) {
			obj.CloneRelation(r).FromPrototype = true
		}
	}
}
