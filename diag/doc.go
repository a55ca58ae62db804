// Package diag formats the fragments of human-readable merge diagnostics.
//
// It holds no merge logic. Callers use it to render keyword names, values,
// and the location suffix that ends every conflict or rejection message:
//
//   - [CamelCase] turns a declared keyword name into its display form.
//   - [Format] renders a value for embedding in a message. Strings are
//     written verbatim and JSON-capable values as 2-space indented JSON.
//   - [Position] is a 1-based line/column pair captured when a schema
//     object was decoded. [Position.Suffix] renders " at (line,column)".
//   - [Path] is a JSON path of object keys and array indices.
//     [Path.Suffix] renders " at path 'a.b[0]'".
//
// Both suffixes are empty when no location information exists, so messages
// read naturally either way.
package diag
