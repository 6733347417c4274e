package convert

import (
	"strconv"
	"strings"

	"agetab/internal/model"
)

type guessedValue struct {
	owner   model.Attributed
	attr    *model.Attribute
	boolVal bool
	intVal  int64
	realVal float64
}

// guessInfo tracks which concrete types every value seen so far fits.
type guessInfo struct {
	cls    *model.AttributeClass
	isBool bool
	isInt  bool
	isReal bool
	values []*guessedValue
}

func (g *guessInfo) add(owner model.Attributed, a *model.Attribute) {
	gv := &guessedValue{owner: owner, attr: a}
	g.values = append(g.values, gv)

	v := strings.TrimSpace(a.Text())

	if g.isBool {
		switch {
		case strings.EqualFold(v, "true"):
			gv.boolVal = true
		case strings.EqualFold(v, "false"):
			gv.boolVal = false
		default:
			g.isBool = false
		}
	}

	// Integer and real candidacy are checked on every value, independent of
	// the boolean outcome.
	if g.isInt {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			g.isInt = false
		} else {
			gv.intVal = n
		}
	}

	if g.isReal {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			g.isReal = false
		} else {
			gv.realVal = f
		}
	}
}

func (g *guessInfo) resolved() model.DataType {
	switch {
	case g.isBool:
		return model.DataTypeBoolean
	case g.isInt:
		return model.DataTypeInteger
	case g.isReal:
		return model.DataTypeReal
	default:
		return model.DataTypeString
	}
}

// typeInferencer resolves GUESS attribute classes to the narrowest type
// fitting all of their values in the module.
type typeInferencer struct {
	byClass map[*model.AttributeClass]*guessInfo
	order   []*guessInfo
}

// inferTypes scans every non-prototype object of m, including embedded
// objects, relation attributes and qualifiers, records the resolved type of
// every GUESS attribute class on m and rewrites the attributes in place.
func inferTypes(m *model.Module) map[*model.AttributeClass]model.DataType {
	ti := &typeInferencer{byClass: make(map[*model.AttributeClass]*guessInfo)}

	for _, o := range m.AllObjects() {
		if o.Prototype {
			continue
		}

		ti.scan(o)

		for _, r := range o.Relations() {
			ti.scan(r)
		}
	}

	out := make(map[*model.AttributeClass]model.DataType, len(ti.order))

	for _, g := range ti.order {
		typ := g.resolved()
		m.SetInferredType(g.cls, typ)
		out[g.cls] = typ

		for _, gv := range g.values {
			rewrite(gv, typ)
		}
	}

	return out
}

func (ti *typeInferencer) scan(owner model.Attributed) {
	for _, a := range owner.Attributes() {
		if a.Class.Class.DataType == model.DataTypeGuess && a.DataType() == model.DataTypeGuess {
			g, ok := ti.byClass[a.Class.Class]
			if !ok {
				g = &guessInfo{cls: a.Class.Class, isBool: true, isInt: true, isReal: true}
				ti.byClass[a.Class.Class] = g
				ti.order = append(ti.order, g)
			}

			g.add(owner, a)
		}

		ti.scan(a)
	}
}

// rewrite replaces the attribute by a typed one in the same slot, keeping
// its class reference and qualifiers. String values stay in place.
func rewrite(gv *guessedValue, typ model.DataType) {
	if typ == model.DataTypeString {
		gv.attr.SetText(gv.attr.Text())
		return
	}

	repl := gv.attr.Retyped()

	switch typ {
	case model.DataTypeBoolean:
		repl.SetBool(gv.boolVal)
	case model.DataTypeInteger:
		repl.SetInt(gv.intVal)
	case model.DataTypeReal:
		repl.SetReal(gv.realVal)
	}

	gv.owner.ReplaceAttribute(gv.attr, repl)
}
