// internal/nodeid/doc.go

/*
Package nodeid provides the opaque identifier used for every node of a
scenario graph, together with the namespace table that turns compact
`prefix:local` names into full IRIs and back.

Identifiers have value semantics. Two identifiers are equal when their
expanded IRIs are equal, so all lookups across the engine key maps by ID
rather than by pointer.
*/
package nodeid
