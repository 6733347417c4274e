package document

import (
	"fmt"
	"strings"
)

// Document is an ordered sequence of blocks.
type Document struct {
	Blocks []*Block
}

// Block is a group of columns headed by one class reference.
type Block struct {
	Header *ClassReference
	// Columns holds one reference per column in declaration order. A nil
	// entry is a column without a header.
	Columns []*ClassReference
	Rows    []*Row
}

// ClassReference is a single column header occurrence. It is never mutated
// by the converter.
type ClassReference struct {
	Name   string
	Custom bool
	Row    int
	Col    int
	// Original is the header text as written.
	Original string
	// Parent names the superclass of a custom class, attribute or relation.
	Parent string
	// Qualifiers is the qualifier path; the last element is the class of the
	// qualifier column and the preceding ones identify its host.
	Qualifiers []*ClassReference
	// Range is the range class of a custom relation.
	Range *ClassReference
	// Target is the target class of a custom object attribute.
	Target *ClassReference
	// Embedded is the next level of an embedded object chain.
	Embedded *ClassReference
	Flags    map[string]string
}

// TypeFlag is the flag naming the data type of a custom attribute class.
const TypeFlag = "type"

// Flag returns the value of a header flag.
func (r *ClassReference) Flag(name string) (string, bool) {
	v, ok := r.Flags[name]
	return v, ok
}

// IsQualifierFor reports whether r is a qualifier column of host: r names
// the same property with the same qualifier path plus one more level.
func (r *ClassReference) IsQualifierFor(host *ClassReference) bool {
	if host == nil || len(r.Qualifiers) != len(host.Qualifiers)+1 {
		return false
	}

	if !r.sameName(host) {
		return false
	}

	for i, q := range host.Qualifiers {
		if !r.Qualifiers[i].sameName(q) {
			return false
		}
	}

	return true
}

func (r *ClassReference) sameName(o *ClassReference) bool {
	return r.Name == o.Name && r.Custom == o.Custom
}

// String renders the reference in a compact header notation.
func (r *ClassReference) String() string {
	if r == nil {
		return "<none>"
	}

	var b strings.Builder

	if r.Custom {
		b.WriteString("{" + r.Name + "}")
	} else {
		b.WriteString(r.Name)
	}

	if r.Range != nil {
		fmt.Fprintf(&b, "(%s)", r.Range)
	}

	if r.Target != nil {
		fmt.Fprintf(&b, "<%s>", r.Target)
	}

	for _, q := range r.Qualifiers {
		fmt.Fprintf(&b, "[%s]", q)
	}

	if r.Embedded != nil {
		fmt.Fprintf(&b, ">%s", r.Embedded)
	}

	return b.String()
}

// Row is one object instance of a block.
type Row struct {
	// ID is the object id. It is empty when IDDefined is false.
	ID        string
	IDDefined bool
	Prototype bool
	// Row is the source row of the object's first line.
	Row int
	// Cells holds the values of each column, indexed like Block.Columns.
	// A column may carry several values (lines).
	Cells [][]*Value
}

// Values returns the values of column col, or nil.
func (r *Row) Values(col int) []*Value {
	if col < 0 || col >= len(r.Cells) {
		return nil
	}

	return r.Cells[col]
}

// Value is a single cell value.
type Value struct {
	Text string
	Row  int
	Col  int
}

// Trimmed returns the value without surrounding white space.
func (v *Value) Trimmed() string {
	return strings.TrimSpace(v.Text)
}
