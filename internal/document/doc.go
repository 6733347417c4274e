// Package document defines the parsed tabular document consumed by the
// converter: blocks of class-labeled columns, the class references naming
// each column, and the rows holding per-column cell values.
//
// The tabular lexer is an external collaborator. This package also provides
// a YAML loader producing the same structures, used by the CLI and by tests:
//
//	blocks:
//	  - class: Sample
//	    columns:
//	      - Name
//	      - {name: Name, qualifiers: [Unit]}
//	      - {name: partOf, custom: true, target: Sample}
//	      - ~                       # column without a header
//	    rows:
//	      - id: S1
//	        cells: ["first", "mg", "S2", ""]
//	      - cells: [["line one", "line two"]]   # id-less row, multiline cell
//
// A header is either a plain name or a map with the keys name, custom,
// parent, type, target, qualifiers and embedded. A row whose id equals the
// profile's prototype id (or that sets prototype: true) is a prototype row.
package document
