package main

import (
	"fmt"
	"strings"

	"agetab/internal/model"
)

// objectView is a cycle-free rendering of an emitted object.
type objectView struct {
	ID         string
	Class      string
	Attributes []attributeView
	Relations  []relationView
}

type attributeView struct {
	Class      string
	Type       string
	Value      string
	Scope      string
	Qualifiers []attributeView
}

type relationView struct {
	Class      string
	Target     string
	Scope      string
	Inferred   bool
	Qualifiers []attributeView
}

func renderModule(m *model.Module) []objectView {
	out := make([]objectView, 0, len(m.Objects()))

	for _, o := range m.Objects() {
		v := objectView{ID: o.ID, Class: o.Class.Class.String()}
		v.Attributes = renderAttributes(o)

		for _, r := range o.Relations() {
			rv := relationView{
				Class:      r.Class.Class.String(),
				Target:     r.TargetID,
				Scope:      r.Scope.String(),
				Inferred:   r.Inferred,
				Qualifiers: renderAttributes(r),
			}

			if t := r.TargetObject(); t != nil {
				rv.Target = t.ID
				rv.Scope = model.ScopeModule.String()
			}

			v.Relations = append(v.Relations, rv)
		}

		out = append(out, v)
	}

	return out
}

func renderAttributes(owner model.Attributed) []attributeView {
	var out []attributeView

	for _, a := range owner.Attributes() {
		av := attributeView{
			Class:      a.Class.Class.String(),
			Type:       a.DataType().String(),
			Value:      a.Text(),
			Qualifiers: renderAttributes(a),
		}

		switch a.DataType() {
		case model.DataTypeFile:
			av.Scope = a.Scope().String()
		case model.DataTypeObject:
			if _, scope, ok := a.External(); ok {
				av.Scope = scope.String()
			}
		}

		out = append(out, av)
	}

	return out
}

// summary is a one-line description of the object.
func (v objectView) summary() string {
	var parts []string

	for _, a := range v.Attributes {
		parts = append(parts, fmt.Sprintf("%s=%q", a.Class, a.Value))
	}

	for _, r := range v.Relations {
		parts = append(parts, fmt.Sprintf("%s->%s", r.Class, r.Target))
	}

	id := v.ID
	if id == "" {
		id = "<anonymous>"
	}

	return fmt.Sprintf("%s %s: %s", v.Class, id, strings.Join(parts, ", "))
}
