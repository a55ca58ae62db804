// Package jsonvalue models arbitrary JSON as an immutable, order-preserving
// tree and merges two such trees structurally.
//
// A [Value] is one of null, boolean, number, string, array, or object.
// Objects keep their members in insertion order and never hold duplicate
// keys. Numbers keep the literal text they were decoded from, so "1.0" is
// written back as "1.0", while [Equal] compares them by exact decimal value.
//
// # Decoding
//
// [Parse] and [FromNode] decode from the github.com/goccy/go-yaml AST. JSON
// is a subset of YAML flow syntax, so the same parser serves both formats
// and callers that need source positions (such as the schema decoder) can
// walk the AST themselves and hand individual nodes to [FromNode].
//
// # Merging
//
// [Merge] combines a source value into a target value:
//
//	Source   Target   Result
//	object   object   union of keys; shared keys merged recursively
//	array    array    target elements, then source elements not in target
//	scalar   scalar   either value if equal, else *ValueConflictError
//	null     null     null
//	kind A   kind B   *TypeConflictError
//
// Argument order matters only for diagnostics: messages always report the
// source side first. [MergeAt] starts path tracking at a caller-supplied
// prefix so errors point into the enclosing document.
package jsonvalue
