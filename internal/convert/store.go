package convert

import "agetab/internal/model"

// Store is the schema the converter reads and extends. Returned pointers must
// stay stable for the lifetime of the store; they are used as map keys.
type Store interface {
	DefinedClass(name string) *model.Class
	CustomClass(name string) *model.Class
	GetOrCreateCustomClass(name string, parent *model.Class) *model.Class

	DefinedAttributeClass(name string) *model.AttributeClass
	CustomAttributeClass(name string, host *model.Class) *model.AttributeClass
	GetOrCreateCustomAttributeClass(
		name string, dt model.DataType, host *model.Class, parent *model.AttributeClass,
	) *model.AttributeClass

	DefinedRelationClass(name string) *model.RelationClass
	GetOrCreateCustomRelationClass(
		name string, rangeClass, domainClass *model.Class, parent *model.RelationClass,
	) *model.RelationClass

	DefinedProperty(name string) model.Property

	SuggestClasses(name string) []string
	SuggestProperties(name string) []string
}
