package fragment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/schemamerge/schemamerge"
)

var (
	// ErrReflect indicates a Go type could not be reflected into a schema.
	ErrReflect = errors.New("reflect schema")
	// ErrInvalidInput indicates a sample document could not be parsed.
	ErrInvalidInput = errors.New("invalid input")
)

// For reflects a fragment from T and strips unsupported constructs.
func For[T any]() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[T](&jsonschema.ForOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReflect, err)
	}

	Strip(s)

	return s, nil
}

// Node converts s into a [schemamerge.Node] and checks that it contains no
// unsupported construct.
func Node(s *jsonschema.Schema) (*schemamerge.Node, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}

	// The empty schema encodes as true.
	if string(data) == "true" {
		data = []byte("{}")
	}

	n, err := schemamerge.Decode(data)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped by Decode.
	}

	err = schemamerge.Validate(n)
	if err != nil {
		return nil, err //nolint:wrapcheck // Carries its own position.
	}

	return n, nil
}

// Strip removes from s, recursively, every keyword the merge engine rejects.
// Contents of "$defs" and "definitions" are extension data and left as-is.
func Strip(s *jsonschema.Schema) {
	if s == nil {
		return
	}

	s.ID = ""
	s.Ref = ""
	s.Anchor = ""
	s.DynamicRef = ""
	s.DynamicAnchor = ""

	s.AllOf = nil
	s.AnyOf = nil
	s.OneOf = nil
	s.If = nil
	s.Then = nil
	s.Else = nil

	s.PrefixItems = nil
	s.UnevaluatedItems = nil
	s.UnevaluatedProperties = nil
	s.PropertyNames = nil
	s.DependentRequired = nil
	s.DependentSchemas = nil

	for _, sub := range s.Properties {
		Strip(sub)
	}

	for _, sub := range s.PatternProperties {
		Strip(sub)
	}

	Strip(s.Items)
	Strip(s.Contains)
	stripAdditional(&s.AdditionalProperties)
	stripAdditional(&s.AdditionalItems)

	// The false schema keeps its negation; any other is dropped.
	if s.Not != nil && !isFalse(s) {
		s.Not = nil
	}
}

// stripAdditional strips an additionalProperties or additionalItems schema.
// The false schema is kept, since it denies additional members.
func stripAdditional(p **jsonschema.Schema) {
	if *p == nil || isFalse(*p) {
		return
	}

	Strip(*p)
}

func isFalse(s *jsonschema.Schema) bool {
	if s.Not == nil {
		return false
	}

	got, err := json.Marshal(s)
	if err != nil {
		return false
	}

	return string(got) == "false"
}
