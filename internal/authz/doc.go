// Package authz provides the permission oracle consulted before a document
// extends the schema with custom classes.
//
// The oracle answers a single question, Permission(action), for four action
// kinds: defining a custom class, a custom attribute class, a custom relation
// class, or a custom qualifier class. Static grants a fixed set of actions
// and AllowAll grants everything.
package authz
