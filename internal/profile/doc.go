// Package profile holds the syntax profile of the tabular format: the
// reference prefixes that select a resolve scope, the default scope of each
// value kind, the prototype-row id and the policy flags.
//
// A Profile has one common Definition and optional per-class overrides.
// Profiles are loaded from HCL:
//
//	common {
//	  module_prefix          = "m:"
//	  global_prefix          = "g:"
//	  default_relation_scope = "CASCADE_MODULE"
//	  prototype_id           = "*"
//	}
//
//	class "Sample" {
//	  reset_prototype = true
//	}
//
// Attributes left out of a class block inherit the common value.
package profile
