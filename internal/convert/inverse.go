package convert

import "agetab/internal/model"

// imputeInverses links every module-internal relation whose class declares
// an inverse to a counterpart on its target, synthesizing the counterpart
// when the target has none. It returns the number of synthesized relations.
func imputeInverses(m *model.Module) int {
	created := 0

	for _, obj := range m.Objects() {
		for _, rel := range obj.Relations() {
			if rel.IsExternal() || rel.Inverse != model.NoRelation {
				continue
			}

			invCls := rel.Class.Class.Inverse
			if invCls == nil {
				continue
			}

			target := rel.TargetObject()

			if inv := findInverse(target, invCls, rel); inv != nil {
				if inv.Inverse == model.NoRelation {
					inv.SetInverse(rel)
				}

				rel.SetInverse(inv)

				continue
			}

			ref := &model.RelationClassRef{Class: invCls, Order: rel.Class.Order, Original: invCls.Name}
			inv := target.CreateRelation(ref, obj.Ref())
			inv.Inferred = true
			inv.SetInverse(rel)
			rel.SetInverse(inv)
			created++
		}
	}

	return created
}

// findInverse returns the relation of target with class invCls pointing back
// at rel's host and not yet linked to another relation.
func findInverse(target *model.Object, invCls *model.RelationClass, rel *model.Relation) *model.Relation {
	for _, cand := range target.Relations() {
		if cand.Class.Class != invCls || cand.IsExternal() || cand.Target != rel.Host {
			continue
		}

		if cand.Inverse == model.NoRelation || cand.Inverse == rel.Ref() {
			return cand
		}
	}

	return nil
}
