package schemamerge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/schemamerge/schemamerge"
	"go.jacobcolvin.com/schemamerge/stringtest"
)

func TestUnsupportedConstruct(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		keyword string
	}{
		"not": {
			keyword: "not",
			input: `{
			    "type": "object",
			    "properties": {
			        "x": { "type": "integer" }
			    },
			    "required": [ "x" ],
			    "not": { "required": [ "z" ] }
			}`,
		},
		"oneOf": {
			keyword: "oneOf",
			input: `{
			  "oneOf": [
			    { "type": "number", "multipleOf": 5 },
			    { "type": "number", "multipleOf": 3 }
			  ]
			}`,
		},
		"anyOf": {
			keyword: "anyOf",
			input: `{
			  "anyOf": [
			    { "type": "string", "maxLength": 5 },
			    { "type": "number", "minimum": 0 }
			  ]
			}`,
		},
		"allOf": {
			keyword: "allOf",
			input:   `{"allOf": [{ "type": "string" }, { "maxLength": 5 }]}`,
		},
		"if reported before then and else": {
			keyword: "if",
			input: `{
			  "type": "object",
			  "properties": {
			    "street_address": { "type": "string" },
			    "country": {
			      "default": "United States of America",
			      "enum": ["United States of America", "Canada"]
			    }
			  },
			  "if": {
			    "properties": { "country": { "const": "United States of America" } }
			  },
			  "then": {
			    "properties": { "postal_code": { "pattern": "[0-9]{5}(-[0-9]{4})?" } }
			  },
			  "else": {
			    "properties": { "postal_code": { "pattern": "[A-Z][0-9][A-Z] [0-9][A-Z][0-9]" } }
			  }
			}`,
		},
		"then reported before else": {
			keyword: "then",
			input: `{
			  "type": "object",
			  "then": { "properties": { "postal_code": { "pattern": "[0-9]{5}" } } },
			  "else": { "properties": { "postal_code": { "pattern": "[A-Z][0-9]" } } }
			}`,
		},
		"else": {
			keyword: "else",
			input:   `{"type": "object", "else": {"properties": {"postal_code": {"pattern": "[A-Z]"}}}}`,
		},
		"ref": {
			keyword: "$ref",
			input:   `{"$ref": "http://example.com/schema#"}`,
		},
		"recursive ref": {
			keyword: "$recursiveRef",
			input:   `{"$recursiveRef": "#"}`,
		},
		"recursive anchor": {
			keyword: "$recursiveAnchor",
			input:   `{"$recursiveAnchor": true}`,
		},
		"dynamic ref": {
			keyword: "$dynamicRef",
			input:   `{"$dynamicRef": "#node"}`,
		},
		"anchor": {
			keyword: "$anchor",
			input:   `{"$anchor": "example-anchor"}`,
		},
		"id": {
			keyword: "$id",
			input:   `{"$id": "http://example.com/schema#"}`,
		},
		"property names": {
			keyword: "propertyNames",
			input:   `{"type": "object", "propertyNames": {"pattern": "^[A-Z]+$"}}`,
		},
		"dependencies": {
			keyword: "dependencies",
			input: `{
			  "type": "object",
			  "dependencies": {
			    "a": ["b", "c"],
			    "c": {
			      "type": "object",
			      "properties": { "b": { "type": "integer" } }
			    }
			  }
			}`,
		},
		"dependent required": {
			keyword: "dependentRequired",
			input: `{
			  "type": "object",
			  "properties": {
			    "name": { "type": "string" },
			    "credit_card": { "type": "number" },
			    "billing_address": { "type": "string" }
			  },
			  "required": ["name"],
			  "dependentRequired": { "credit_card": ["billing_address"] }
			}`,
		},
		"dependent schemas": {
			keyword: "dependentSchemas",
			input:   `{"type": "object", "dependentSchemas": {"c": {"type": "object"}}}`,
		},
		"unevaluated properties false": {
			keyword: "unevaluatedProperties",
			input: `{
			  "type": "object",
			  "properties": { "type": { "enum": ["residential", "business"] } },
			  "required": ["type"],
			  "unevaluatedProperties": false
			}`,
		},
		"unevaluated properties schema": {
			keyword: "unevaluatedProperties",
			input:   `{"type": "object", "unevaluatedProperties": {"type": "string"}}`,
		},
		"unevaluated items before prefix items": {
			keyword: "unevaluatedItems",
			input: `{
			  "prefixItems": [{ "type": "string" }, { "type": "number" }],
			  "unevaluatedItems": false
			}`,
		},
		"unevaluated items schema": {
			keyword: "unevaluatedItems",
			input:   `{"prefixItems": [{"type": "boolean"}], "unevaluatedItems": {"const": 2}}`,
		},
		"tuple items": {
			keyword: "items (with tuple syntax)",
			input:   `{"items": [{ "type": "string" }, { "type": "number" }]}`,
		},
		"single tuple item": {
			keyword: "items (with tuple syntax)",
			input:   `{"items": [{ "type": "string" }]}`,
		},
		"prefix items": {
			keyword: "items (with tuple syntax)",
			input:   `{"prefixItems": [{ "type": "string" }]}`,
		},
		"false schema": {
			keyword: "not",
			input:   `false`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := schemamerge.New().AddText(tc.input)
			require.ErrorIs(t, err, schemamerge.ErrUnsupported)
			assert.EqualError(t, err, "unsupported schema construct '"+tc.keyword+"' at (1,1)")

			var unsupported *schemamerge.UnsupportedConstructError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tc.keyword, unsupported.Keyword)
		})
	}
}

func TestUnsupportedConstructNested(t *testing.T) {
	t.Parallel()

	input := stringtest.Input(`
		{
		  "type": "object",
		  "properties": {
		    "a": {
		      "type": "array",
		      "items": { "oneOf": [{ "type": "string" }] }
		    }
		  }
		}
	`)

	err := schemamerge.New().AddText(input)
	assert.EqualError(t, err, "unsupported schema construct 'oneOf' at (6,16)")
}

func TestUnsupportedConstructLeavesTargetUntouched(t *testing.T) {
	t.Parallel()

	m := schemamerge.New()
	require.NoError(t, m.AddText(`{"type": "object", "properties": {"a": {"type": "string"}}}`))

	before, err := m.Result()
	require.NoError(t, err)

	err = m.AddText(`{
	  "type": "object",
	  "title": "changed",
	  "properties": {
	    "a": {"type": "number"},
	    "b": {"$ref": "#/definitions/b"}
	  }
	}`)
	require.ErrorIs(t, err, schemamerge.ErrUnsupported)

	after, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSupportedEdgeCases(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty compound collections": {
			input: `{"type": "object", "oneOf": [], "anyOf": [], "allOf": [], "dependencies": {}}`,
			want:  `{"type": "object"}`,
		},
		"ref inside definitions": {
			input: `{"definitions": {"a": {"$ref": "#/definitions/b"}}}`,
			want:  `{"definitions": {"a": {"$ref": "#/definitions/b"}}}`,
		},
		"true schema": {
			input: `true`,
			want:  `{}`,
		},
		"true property schema": {
			input: `{"type": "object", "properties": {"a": true}}`,
			want:  `{"type": "object", "properties": {"a": {}}}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.JSONEq(t, tc.want, mergeDocs(t, tc.input))
		})
	}
}
