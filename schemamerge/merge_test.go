package schemamerge_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/schemamerge/jsonvalue"
	"go.jacobcolvin.com/schemamerge/schemamerge"
	"go.jacobcolvin.com/schemamerge/stringtest"
)

// mergeDocs merges docs in order into a new [schemamerge.Merger] and
// returns the result.
func mergeDocs(t *testing.T, docs ...string) string {
	t.Helper()

	m := schemamerge.New()

	for _, doc := range docs {
		require.NoError(t, m.AddText(doc))
	}

	out, err := m.Result()
	require.NoError(t, err)

	return string(out)
}

// mergeErr merges all but the last doc, which must fail, and returns that
// error.
func mergeErr(t *testing.T, docs ...string) error {
	t.Helper()

	m := schemamerge.New()

	last := len(docs) - 1
	for _, doc := range docs[:last] {
		require.NoError(t, m.AddText(doc))
	}

	err := m.AddText(docs[last])
	require.Error(t, err)

	return err
}

func TestMergeConst(t *testing.T) {
	t.Parallel()

	object := stringtest.Input(`
		{
		  "const": {
		    "a": 1,
		    "b": "2"
		  }
		}
	`)

	t.Run("same", func(t *testing.T) {
		t.Parallel()

		assert.JSONEq(t, object, mergeDocs(t, object, object))
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		assert.JSONEq(t, object, mergeDocs(t, object, `{}`))
		assert.JSONEq(t, object, mergeDocs(t, `{}`, object))
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		other := stringtest.Input(`
			{
			  "const": {
			    "a": 2,
			    "b": "1"
			  }
			}
		`)

		err := mergeErr(t, object, other)
		require.ErrorIs(t, err, schemamerge.ErrConflict)

		want := stringtest.JoinLF(
			`conflict in schema at (1,1) in element 'const': '{`,
			`  "a": 2,`,
			`  "b": "1"`,
			`}' vs '{`,
			`  "a": 1,`,
			`  "b": "2"`,
			`}'`,
		)
		assert.EqualError(t, err, want)

		var conflict *schemamerge.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "const", conflict.Keyword)
	})

	t.Run("equal numbers with different literals", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t, `{"const": 1}`, `{"const": 1.0}`)
		assert.JSONEq(t, `{"const": 1}`, got)
	})
}

func TestMergeNumberLiterals(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		literal string
		equal   string
	}{
		"exponent":           {literal: "1e5", equal: "100000"},
		"negative exponent":  {literal: "-2E-3", equal: "-0.002"},
		"wider than 64 bits": {literal: "123456789012345678901234567890", equal: "123456789012345678901234567890.0"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			constDoc := fmt.Sprintf(`{"const": %s}`, tc.literal)
			assert.Equal(t, fmt.Sprintf("{\n  \"const\": %s\n}\n", tc.literal), mergeDocs(t, constDoc))
			assert.JSONEq(t, constDoc, mergeDocs(t, constDoc, fmt.Sprintf(`{"const": %s}`, tc.equal)))

			minDoc := fmt.Sprintf(`{"type": "number", "minimum": %s}`, tc.literal)
			assert.JSONEq(t, minDoc, mergeDocs(t, minDoc, minDoc))

			ext := fmt.Sprintf(`{"x-limit": %s}`, tc.literal)
			assert.JSONEq(t, ext, mergeDocs(t, ext, fmt.Sprintf(`{"x-limit": %s}`, tc.equal)))
		})
	}

	t.Run("quoted literal stays a string", func(t *testing.T) {
		t.Parallel()

		err := mergeErr(t, `{"const": "1e5"}`, `{"const": 100000}`)
		require.ErrorIs(t, err, schemamerge.ErrConflict)
	})
}

func TestMergeEnum(t *testing.T) {
	t.Parallel()

	t.Run("same", func(t *testing.T) {
		t.Parallel()

		doc := `{"enum": ["a", "b", null, 1]}`
		assert.JSONEq(t, doc, mergeDocs(t, doc, doc))
	})

	t.Run("union", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t,
			`{"enum": ["One", 1.0, false]}`,
			`{"enum": ["Two", 2.0, true, "One"]}`,
		)
		assert.JSONEq(t, `{"enum": ["One", "Two", false, true, 1.0, 2.0]}`, got)
	})

	t.Run("union keeps target order then source additions before canonicalization", func(t *testing.T) {
		t.Parallel()

		target, err := schemamerge.Decode([]byte(`{"enum": ["b", 1]}`))
		require.NoError(t, err)

		source, err := schemamerge.Decode([]byte(`{"enum": ["a", 1.0, "b"]}`))
		require.NoError(t, err)

		require.NoError(t, schemamerge.Merge(source, target))

		assert.Equal(t, `{"enum":["b",1,"a"]}`, target.Value().String())
	})

	t.Run("duplicates within a document collapse", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t, `{"enum": [{"a": 1}, {"a": 1.0}, "x"]}`)
		assert.JSONEq(t, `{"enum": ["x", {"a": 1}]}`, got)
	})
}

func TestMergeMetadataKeyword(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keyword string
		value   string
	}{
		"title":            {keyword: "title", value: "Example title."},
		"description":      {keyword: "description", value: "Example description."},
		"default":          {keyword: "default", value: "Example value"},
		"extension":        {keyword: "schemaVersion", value: "1.2.3"},
		"content encoding": {keyword: "contentEncoding", value: "base64"},
		"media type":       {keyword: "contentMediaType", value: "application/json"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := fmt.Sprintf(`{%q: %q}`, tc.keyword, tc.value)

			assert.JSONEq(t, doc, mergeDocs(t, doc, doc), "same")
			assert.JSONEq(t, doc, mergeDocs(t, doc, `{}`), "missing in source")
			assert.JSONEq(t, doc, mergeDocs(t, `{}`, doc), "missing in target")
		})
	}
}

func TestMergeMetadataConflict(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		keyword string
		value1  string
		value2  string
	}{
		"title": {
			keyword: "title",
			value1:  `"Example title."`,
			value2:  `"Other title."`,
		},
		"description": {
			keyword: "description",
			value1:  `"Example description."`,
			value2:  `"Other description."`,
		},
		"default": {
			keyword: "default",
			value1:  `true`,
			value2:  `false`,
		},
		"schema": {
			keyword: "$schema",
			value1:  `"http://schema.com/1"`,
			value2:  `"http://schema.com/2"`,
		},
		"content encoding": {
			keyword: "contentEncoding",
			value1:  `"base64"`,
			value2:  `"base32"`,
		},
		"media type": {
			keyword: "contentMediaType",
			value1:  `"application/json"`,
			value2:  `"text/javascript"`,
		},
	}

	unquote := func(s string) string {
		if len(s) > 1 && s[0] == '"' {
			return s[1 : len(s)-1]
		}

		return s
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			source1 := fmt.Sprintf("{\n  \"type\": \"boolean\",\n  %q: %s\n}", tc.keyword, tc.value1)
			source2 := fmt.Sprintf("{\n  \"type\": \"boolean\",\n  %q: %s\n}", tc.keyword, tc.value2)

			err := mergeErr(t, source1, source2)
			require.ErrorIs(t, err, schemamerge.ErrConflict)

			want := fmt.Sprintf("conflict in schema at (1,1) in element '%s': '%s' vs '%s'",
				tc.keyword, unquote(tc.value2), unquote(tc.value1))
			assert.EqualError(t, err, want)
		})
	}
}

func TestMergeSchemaURI(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		a, b string
	}{
		"identical":    {a: "http://json-schema.org/draft-07/schema#", b: "http://json-schema.org/draft-07/schema#"},
		"host case":    {a: "http://JSON-Schema.org/draft-07/schema#", b: "http://json-schema.org/draft-07/schema#"},
		"scheme case":  {a: "HTTP://json-schema.org/draft-07/schema#", b: "http://json-schema.org/draft-07/schema#"},
		"default port": {a: "https://example.com:443/s", b: "https://example.com/s"},
		"empty path":   {a: "http://example.com", b: "http://example.com/"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := mergeDocs(t,
				fmt.Sprintf(`{"$schema": %q}`, tc.a),
				fmt.Sprintf(`{"$schema": %q}`, tc.b),
			)
			assert.JSONEq(t, fmt.Sprintf(`{"$schema": %q}`, tc.b), got)
		})
	}
}

func TestMergeAccessModes(t *testing.T) {
	t.Parallel()

	withModes := func(modes string) string {
		return fmt.Sprintf(`{
		  "type": "object",
		  "properties": {
		    "Example": {"type": "string"%s}
		  }
		}`, modes)
	}

	plain := withModes("")

	tcs := map[string]struct {
		source1 string
		source2 string
		want    string
	}{
		"both false": {
			source1: withModes(`, "readOnly": false, "writeOnly": false`),
			source2: withModes(`, "readOnly": false, "writeOnly": false`),
			want:    withModes(`, "readOnly": false, "writeOnly": false`),
		},
		"read only": {
			source1: withModes(`, "readOnly": true, "writeOnly": false`),
			source2: withModes(`, "readOnly": true, "writeOnly": false`),
			want:    withModes(`, "readOnly": true, "writeOnly": false`),
		},
		"write only": {
			source1: withModes(`, "readOnly": false, "writeOnly": true`),
			source2: withModes(`, "readOnly": false, "writeOnly": true`),
			want:    withModes(`, "readOnly": false, "writeOnly": true`),
		},
		"both true is invalid": {
			source1: withModes(`, "readOnly": true, "writeOnly": true`),
			source2: withModes(`, "readOnly": true, "writeOnly": true`),
			want:    plain,
		},
		"read missing": {
			source1: withModes(`, "readOnly": true`),
			source2: plain,
			want:    plain,
		},
		"read different": {
			source1: withModes(`, "readOnly": true`),
			source2: withModes(`, "readOnly": false`),
			want:    plain,
		},
		"write missing": {
			source1: withModes(`, "writeOnly": true`),
			source2: plain,
			want:    plain,
		},
		"write different": {
			source1: withModes(`, "writeOnly": true`),
			source2: withModes(`, "writeOnly": false`),
			want:    plain,
		},
		"false and missing clear": {
			source1: withModes(`, "readOnly": false`),
			source2: plain,
			want:    plain,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.JSONEq(t, tc.want, mergeDocs(t, tc.source1, tc.source2))
		})
	}
}

func TestMergeExtensionData(t *testing.T) {
	t.Parallel()

	t.Run("definitions merge recursively", func(t *testing.T) {
		t.Parallel()

		source1 := `{
		  "definitions": {
		    "logLevel": {
		      "properties": {
		        "One": {"$ref": "#/definitions/logLevelThreshold"}
		      }
		    }
		  }
		}`
		source2 := `{
		  "definitions": {
		    "logLevel": {
		      "properties": {
		        "Two": {"$ref": "#/definitions/logLevelThreshold"}
		      }
		    }
		  }
		}`

		want := `{
		  "definitions": {
		    "logLevel": {
		      "properties": {
		        "One": {"$ref": "#/definitions/logLevelThreshold"},
		        "Two": {"$ref": "#/definitions/logLevelThreshold"}
		      }
		    }
		  }
		}`

		assert.JSONEq(t, want, mergeDocs(t, source1, source2))
	})

	t.Run("value conflict", func(t *testing.T) {
		t.Parallel()

		err := mergeErr(t,
			`{"container": {"test": "two"}}`,
			`{"container": {"test": "one"}}`,
		)
		require.ErrorIs(t, err, jsonvalue.ErrValueConflict)
		assert.EqualError(t, err,
			"conflict in JSON node at path 'container.test' within schema extension data: 'one' vs 'two'")
	})

	t.Run("type conflict", func(t *testing.T) {
		t.Parallel()

		err := mergeErr(t,
			`{"container": {"test": "value"}}`,
			`{"container": {"test": true}}`,
		)
		require.ErrorIs(t, err, jsonvalue.ErrTypeConflict)
		assert.EqualError(t, err,
			"conflict in JSON node type at path 'container.test' within schema extension data: 'boolean' vs 'string'")
	})

	t.Run("arrays union", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t, `{"x-tags": ["a", "b"]}`, `{"x-tags": ["b", "c"]}`)
		assert.JSONEq(t, `{"x-tags": ["a", "b", "c"]}`, got)
	})
}

func TestMergeTypes(t *testing.T) {
	t.Parallel()

	t.Run("missing type constraint is skipped", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t,
			`{"type": "integer", "summary": "Summary for one."}`,
			`{"description": "Description for two."}`,
		)

		want := stringtest.JoinLF(
			`{`,
			`  "type": "integer",`,
			`  "summary": "Summary for one.",`,
			`  "description": "Description for two."`,
			`}`,
			``,
		)
		assert.Equal(t, want, got)
	})

	t.Run("different types union", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t,
			`{"type": "boolean"}`,
			`{"type": "string"}`,
			`{"type": "number"}`,
		)
		assert.JSONEq(t, `{"type": ["boolean", "number", "string"]}`, got)
	})

	t.Run("array form", func(t *testing.T) {
		t.Parallel()

		got := mergeDocs(t, `{"type": ["null", "string"]}`, `{"type": "integer"}`)
		assert.JSONEq(t, `{"type": ["integer", "null", "string"]}`, got)
	})
}

func TestMergeDoesNotRetainSource(t *testing.T) {
	t.Parallel()

	source, err := schemamerge.Decode([]byte(`{
	  "type": "object",
	  "properties": {
	    "a": {"type": "string", "minLength": 1}
	  }
	}`))
	require.NoError(t, err)

	target := &schemamerge.Node{}
	require.NoError(t, schemamerge.Merge(source, target))

	other, err := schemamerge.Decode([]byte(`{
	  "type": "object",
	  "properties": {
	    "a": {"type": "string"}
	  }
	}`))
	require.NoError(t, err)
	require.NoError(t, schemamerge.Merge(other, target))

	a, ok := source.Object.Properties.Get("a")
	require.True(t, ok)
	require.NotNil(t, a.String.MinLength)
	assert.Equal(t, int64(1), *a.String.MinLength)

	merged, ok := target.Object.Properties.Get("a")
	require.True(t, ok)
	assert.Nil(t, merged.String.MinLength)
}
