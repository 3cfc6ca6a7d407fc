// Package ir provides the tree representation backing conftree configs.
//
// A config is a tree of ir.Node values.  Each Node is a tagged union: the
// Type field says which payload field is meaningful.  Objects keep their
// keys in parallel Fields/Values slices so insertion order is preserved
// and significant; everything that is not an object is a leaf.  Lists are
// leaves as a whole: an embedded sequence is one value, not a container
// of independently tracked settings.
//
// Leaves additionally carry usage state: whether a consuming read has
// happened, and the call sites of the most recent write and consuming
// read.  The higher level conftree package maintains that state; ir only
// stores and copies it.
//
// The structure is a tree, never a graph.  Nothing in this package shares
// a subtree between two parents; Clone performs a deep copy, including
// usage state and per-node mode overrides.
package ir
