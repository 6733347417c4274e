// Package convert turns a parsed tabular document into a typed object graph.
//
// Conversion pipeline:
//  1. Resolve the class of every block and pre-create one object per
//     (class, id), diverting prototype rows to the class prototype
//  2. For every block build one column converter per header: attribute,
//     object attribute, file attribute, relation, qualifier, embedded chain,
//     or a placeholder for header-less and invalid columns
//  3. For every row reset the converters, seed the object from the class
//     prototype and feed each converter its column's values line by line
//  4. Infer the concrete type of GUESS attribute classes
//  5. Materialize missing inverse relations
//
// Every schema and conversion problem is recorded and processing goes on, so
// a single run reports all of them. Any error makes the whole conversion fail
// with a *Failure and no module.
package convert
