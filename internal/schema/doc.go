// Package schema provides the in-memory schema store: the built-in classes,
// attribute classes and relation classes a document may reference, plus the
// custom classes defined ad hoc while converting documents.
//
// A schema is usually loaded from YAML:
//
//	classes:
//	  - name: Sample
//	  - name: Biosample
//	    parent: Sample
//	attributes:
//	  - name: Name
//	    type: STRING
//	  - name: derivedFrom
//	    type: OBJECT
//	    target: Sample
//	relations:
//	  - name: partOf
//	    domain: [Sample]
//	    range: [Sample]
//	    inverse: hasPart
//	  - name: hasPart
//
// Inverses are symmetric: declaring partOf's inverse as hasPart also makes
// partOf the inverse of hasPart.
package schema
