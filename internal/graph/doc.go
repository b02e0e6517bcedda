// Package graph provides the labeled-graph facade every stage of scenario
// resolution reads from.
//
// # Why Graph Package Exists
//
// Scenario models arrive as a set of typed nodes joined by named predicates
// (a scenario template `has-clause` a fluent clause, a variation `of-sets`
// a combination, and so on). The resolution engine never cares where those
// facts came from, whether HCL files, YAML files, or a test fixture built in
// code. The Graph interface is the single read API they all share:
//
//   - **TypesOf / HasType:** the type-tag set used for handler dispatch
//   - **ObjectsOf:** ordered objects of a subject/predicate pair
//   - **SubjectsOf:** reverse lookup, e.g. which user story owns a variant
//   - **NodesOfType:** entry points such as every bdd:UserStory
//
// # Determinism
//
// Objects come back in edge insertion order and nodes in first-seen order.
// Nothing in the engine iterates a Go map to produce output, so the same
// input files always yield the same clause text in the same order.
//
// # Terms
//
// An object is a Term: a node reference, a literal (a cty.Value, the same
// value model the HCL loader evaluates into) or an ordered list of terms.
// Lists carry literal domains such as `of-sets = [["ex:a", "ex:b"]]`.
//
// # Thread-Safety
//
// Store guards its indexes with a RWMutex. The loaders populate a Store once;
// afterwards it is only read, concurrently, by the user-story workers.
//
// # Key Types
//
// **Graph** (interface.go): the read API.
//
// **Store** (store.go): the in-memory, insertion-ordered implementation.
//
// **Loader** (loader.go): the contract the HCL and YAML adapters implement.
package graph
