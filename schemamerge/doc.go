// Package schemamerge merges partial JSON Schema documents ("fragments")
// into one canonical schema.
//
// Each fragment typically describes the configuration keys owned by one
// module. Overlapping keys are reconciled, permissible values are unioned,
// disagreeing constraints are dropped, and genuine contradictions are
// reported as errors. The result is written in a canonical order, so it
// does not depend on the order in which fragments were found on disk.
//
// # Merge Semantics
//
// [Merge] folds a source [Node] into a target [Node] (the accumulator). For
// every type tag in the source, the matching constraint group is merged
// with the rule "first occurrence adopts, second occurrence narrows":
//
//   - If the target does not yet carry the type, the source's group is
//     copied verbatim.
//   - Otherwise each constraint is kept only if both sides agree. Numeric
//     bounds must match in both value and exclusivity.
//   - Objects union "properties" and "patternProperties", merging shared
//     keys recursively, and intersect "required".
//   - Arrays merge "items" and "contains" only when both sides have them.
//   - Count bounds (minItems, maxProperties, and so on) widen to the
//     looser value when both sides assert one, and are dropped otherwise.
//
// Integer and number share one constraint group but are dispatched
// independently, so a schema typed as both runs the numeric rule twice.
//
// additionalProperties and additionalItems use an [Additional] value with
// three stances. Allow on either side wins, a schema wins over Deny, and
// two schemas are merged.
//
// Metadata (title, description, default, const, $schema, contentEncoding,
// contentMediaType) must be equal when both sides set it; otherwise a
// [*ConflictError] is returned. "enum" is unioned. readOnly and writeOnly
// are kept only while both sides agree and never both true.
//
// Keywords the package does not interpret are kept as extension data and
// merged with [jsonvalue.Merge]. This is how "definitions", "summary", and
// vendor keywords pass through.
//
// # Unsupported Constructs
//
// Keywords whose meaning spans several sub-schemas cannot be merged one
// keyword at a time. [Validate] rejects "not", "oneOf", "anyOf", "allOf",
// "if", "then", "else", the reference keywords ("$ref", "$id", and
// friends), "propertyNames", the dependency keywords, the unevaluated
// keywords, and tuple-form "items". The whole source tree is checked before
// the target is touched, and the first hit is returned as a
// [*UnsupportedConstructError]. Extension data is opaque, so a "$ref" inside
// "definitions" is accepted.
//
// # Canonical Output
//
// [Canonicalize] sorts "type", "required", "properties", and
// "patternProperties", recursing into every sub-schema, then moves "type"
// and "definitions" to the front and "summary" and "description" to the
// end. [Merger.Result] serializes the canonical form.
//
// # Usage
//
//	m := schemamerge.New(schemamerge.WithIndent(2))
//
//	err := m.AddDir(ctx, "src")
//	if err != nil {
//		return err
//	}
//
//	err = m.WriteFile("schema.json")
//
// [Config] registers the equivalent command-line flags.
package schemamerge
