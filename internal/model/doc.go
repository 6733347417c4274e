// Package model provides the schema types and the object graph produced by
// the converter.
//
// Schema side:
//   - Class: an object class with single inheritance
//   - AttributeClass: a typed attribute (DataType, optional target class)
//   - RelationClass: a relation with domain, range and optional inverse
//   - ClassRef / AttributeClassRef / RelationClassRef: position-carrying handles
//
// Graph side:
//   - Module: the arena owning every object and relation of one conversion
//   - Object: identified by (class, id); holds attributes and relation handles
//   - Attribute: a value that may itself carry qualifier attributes
//   - Relation: a link to a target object (or an external reference) plus an
//     optional inverse, both stored as arena handles
package model
