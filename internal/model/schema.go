package model

// Class is an object class. Parent forms a single-inheritance chain.
type Class struct {
	Name     string
	Abstract bool
	Custom   bool
	Parent   *Class
}

// String returns the class name, braced for custom classes.
func (c *Class) String() string {
	if c == nil {
		return "<nil>"
	}

	if c.Custom {
		return "{" + c.Name + "}"
	}

	return c.Name
}

// IsClassOrSubclass reports whether c is other or inherits from it.
func (c *Class) IsClassOrSubclass(other *Class) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}

	return false
}

// Property is implemented by AttributeClass and RelationClass.
type Property interface {
	PropertyName() string
	IsAbstract() bool
}

// AttributeClass describes a typed attribute.
type AttributeClass struct {
	Name        string
	Abstract    bool
	Custom      bool
	Parent      *AttributeClass
	DataType    DataType
	TargetClass *Class // OBJECT only
	Host        *Class // owning class of a custom attribute class
}

// PropertyName implements Property.
func (a *AttributeClass) PropertyName() string { return a.Name }

// IsAbstract implements Property.
func (a *AttributeClass) IsAbstract() bool { return a.Abstract }

// String returns the attribute class name.
func (a *AttributeClass) String() string {
	if a.Custom {
		return "{" + a.Name + "}"
	}

	return a.Name
}

// RelationClass describes a typed relation between objects.
type RelationClass struct {
	Name     string
	Abstract bool
	Custom   bool
	Parent   *RelationClass
	Domain   []*Class
	Range    []*Class
	Inverse  *RelationClass
}

// PropertyName implements Property.
func (r *RelationClass) PropertyName() string { return r.Name }

// IsAbstract implements Property.
func (r *RelationClass) IsAbstract() bool { return r.Abstract }

// String returns the relation class name.
func (r *RelationClass) String() string {
	if r.Custom {
		return "{" + r.Name + "}"
	}

	return r.Name
}

// InDomain reports whether objects of cls may host this relation.
// An empty domain admits every class.
func (r *RelationClass) InDomain(cls *Class) bool {
	if len(r.Domain) == 0 {
		return true
	}

	for _, d := range r.Domain {
		if cls.IsClassOrSubclass(d) {
			return true
		}
	}

	return false
}

// InRange reports whether objects of cls may be targets of this relation.
// An empty range admits every class.
func (r *RelationClass) InRange(cls *Class) bool {
	if len(r.Range) == 0 {
		return true
	}

	for _, rg := range r.Range {
		if cls.IsClassOrSubclass(rg) {
			return true
		}
	}

	return false
}

// ClassRef is a class reference bound to its position in the source.
type ClassRef struct {
	Class    *Class
	Order    int
	Original string
}

// AttributeClassRef is an attribute class reference bound to its column.
type AttributeClassRef struct {
	Class    *AttributeClass
	Order    int
	Original string
}

// RelationClassRef is a relation class reference bound to its column.
type RelationClassRef struct {
	Class    *RelationClass
	Order    int
	Original string
}
