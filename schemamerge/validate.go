package schemamerge

import "slices"

// unsupportedChecks lists rejected constructs in the order they are
// reported. Each construct may be spelled by more than one keyword.
var unsupportedChecks = []struct {
	name     string
	keywords []string
}{
	// Compound constructs.
	{"not", []string{"not"}},
	{"oneOf", []string{"oneOf"}},
	{"anyOf", []string{"anyOf"}},
	{"allOf", []string{"allOf"}},
	{"if", []string{"if"}},
	{"then", []string{"then"}},
	{"else", []string{"else"}},

	// References.
	{"$ref", []string{"$ref"}},
	{"$recursiveRef", []string{"$recursiveRef"}},
	{"$recursiveAnchor", []string{"$recursiveAnchor"}},
	{"$dynamicRef", []string{"$dynamicRef"}},
	{"$anchor", []string{"$anchor"}},
	{"$id", []string{"$id"}},

	// Object constructs.
	{"propertyNames", []string{"propertyNames"}},
	{"dependencies", []string{"dependencies"}},
	{"dependentRequired", []string{"dependentRequired"}},
	{"dependentSchemas", []string{"dependentSchemas"}},
	{"unevaluatedProperties", []string{"unevaluatedProperties", "allowUnevaluatedProperties"}},

	// Array constructs.
	{"unevaluatedItems", []string{"unevaluatedItems", "allowUnevaluatedItems"}},
	{"items (with tuple syntax)", []string{"items", "prefixItems"}},
}

// Validate reports the first unsupported construct in n or any of its
// sub-schemas, checking each node before its children. Extension data is
// opaque and never checked.
func Validate(n *Node) error {
	if n == nil {
		return nil
	}

	for _, check := range unsupportedChecks {
		for _, kw := range check.keywords {
			if slices.Contains(n.Unsupported, kw) {
				return &UnsupportedConstructError{Keyword: check.name, Position: n.Position}
			}
		}
	}

	for _, child := range n.children() {
		err := Validate(child)
		if err != nil {
			return err
		}
	}

	return nil
}

// children returns the direct sub-schemas of n in document-independent
// keyword order.
func (n *Node) children() []*Node {
	var out []*Node

	for _, sub := range n.Object.Properties.All() {
		out = append(out, sub)
	}

	for _, sub := range n.Object.PatternProperties.All() {
		out = append(out, sub)
	}

	if s := n.Object.AdditionalProperties.Schema(); s != nil {
		out = append(out, s)
	}

	if n.Array.Items != nil {
		out = append(out, n.Array.Items)
	}

	if s := n.Array.AdditionalItems.Schema(); s != nil {
		out = append(out, s)
	}

	if n.Array.Contains != nil {
		out = append(out, n.Array.Contains)
	}

	return out
}
