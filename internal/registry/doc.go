// Package registry provides the central "glue" for the module system.
//
// The Registry maps graph type tags (e.g. bdd:LocatedAtPredicate, bhv:Pick,
// bdd:CartesianProductVariation) to the compiled Go handlers that load and
// render the nodes carrying them. Every dispatch in the resolution engine
// goes through it, so adding a new fluent or behaviour means adding a module
// that registers one more handler and nothing else.
//
// During application startup, the registry is populated by each module's
// Register method and then validated, so an incomplete handler is caught
// before any graph is read.
package registry
