package schemamerge

import (
	"fmt"
	"net/url"

	"github.com/goccy/go-yaml/ast"

	"go.jacobcolvin.com/schemamerge/diag"
	"go.jacobcolvin.com/schemamerge/jsonvalue"
)

// Keywords outside the mergeable subset. They are recorded in
// [Node.Unsupported] rather than kept as extension data.
var rejectedKeywords = map[string]bool{
	"not": true, "oneOf": true, "anyOf": true, "allOf": true,
	"if": true, "then": true, "else": true,
	"$ref": true, "$recursiveRef": true, "$recursiveAnchor": true,
	"$dynamicRef": true, "$anchor": true, "$id": true,
	"propertyNames": true, "dependencies": true,
	"dependentRequired": true, "dependentSchemas": true,
	"unevaluatedProperties": true, "allowUnevaluatedProperties": true,
	"unevaluatedItems": true, "allowUnevaluatedItems": true,
	"prefixItems": true,
}

// Collection-valued rejected keywords that are harmless when empty.
var emptyAllowed = map[string]bool{
	"oneOf": true, "anyOf": true, "allOf": true,
	"dependencies": true, "dependentRequired": true, "dependentSchemas": true,
}

// Decode parses a JSON (or YAML) schema document into a [Node], recording
// the position of every schema object.
func Decode(data []byte) (*Node, error) {
	body, err := jsonvalue.ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return decodeSchema(body)
}

// decodeSchema decodes a schema object or boolean schema. The boolean
// schema false is equivalent to {"not": {}}.
func decodeSchema(node ast.Node) (*Node, error) {
	node = jsonvalue.Unwrap(node)
	pos := positionOf(node)

	if b, ok := node.(*ast.BoolNode); ok {
		out := &Node{Position: pos}
		if !b.Value {
			out.Unsupported = []string{"not"}
		}

		return out, nil
	}

	pairs, ok := mappingPairs(node)
	if !ok {
		return nil, invalidf(node, "schema must be an object")
	}

	out := &Node{Position: pos}

	var lim limits

	seen := make(map[string]bool, len(pairs))

	for _, pair := range pairs {
		key, err := jsonvalue.KeyText(pair.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		if seen[key] {
			return nil, invalidf(pair.Key, "duplicate keyword %s", diag.Quote(key))
		}

		seen[key] = true

		err = decodeKeyword(out, &lim, key, pair.Value)
		if err != nil {
			return nil, err
		}
	}

	err := lim.apply(out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

//nolint:gocyclo,cyclop,funlen // One case per keyword.
func decodeKeyword(out *Node, lim *limits, key string, node ast.Node) error {
	var err error

	switch key {
	case "type":
		out.Types, err = decodeTypes(node)
	case "title":
		out.Title, err = decodeString(key, node)
	case "description":
		out.Description, err = decodeString(key, node)
	case "$schema":
		out.SchemaVersion, err = decodeURI(key, node)
	case "contentEncoding":
		out.ContentEncoding, err = decodeString(key, node)
	case "contentMediaType":
		out.ContentMediaType, err = decodeString(key, node)
	case "const":
		out.Const, err = decodeValue(node)
	case "default":
		out.Default, err = decodeValue(node)
	case "enum":
		out.Enum, err = decodeEnum(key, node)
	case "readOnly":
		out.ReadOnly, err = decodeBool(key, node)
	case "writeOnly":
		out.WriteOnly, err = decodeBool(key, node)

	case "multipleOf":
		out.Numeric.MultipleOf, err = decodeNumber(key, node)
	case "minimum":
		lim.minimum, err = decodeNumber(key, node)
	case "maximum":
		lim.maximum, err = decodeNumber(key, node)
	case "exclusiveMinimum":
		lim.exclusiveMinimum, err = decodeExclusive(key, node)
	case "exclusiveMaximum":
		lim.exclusiveMaximum, err = decodeExclusive(key, node)

	case "pattern":
		out.String.Pattern, err = decodeString(key, node)
	case "format":
		out.String.Format, err = decodeString(key, node)
	case "minLength":
		out.String.MinLength, err = decodeCount(key, node)
	case "maxLength":
		out.String.MaxLength, err = decodeCount(key, node)

	case "properties":
		err = decodeNodeMap(key, node, &out.Object.Properties)
	case "patternProperties":
		err = decodeNodeMap(key, node, &out.Object.PatternProperties)
	case "required":
		out.Object.Required, err = decodeRequired(key, node)
	case "additionalProperties":
		out.Object.AdditionalProperties, err = decodeAdditional(node)
	case "minProperties":
		out.Object.MinProperties, err = decodeCount(key, node)
	case "maxProperties":
		out.Object.MaxProperties, err = decodeCount(key, node)

	case "items":
		if _, ok := jsonvalue.Unwrap(node).(*ast.SequenceNode); ok {
			out.Unsupported = append(out.Unsupported, key)

			return nil
		}

		out.Array.Items, err = decodeSchema(node)
	case "additionalItems":
		out.Array.AdditionalItems, err = decodeAdditional(node)
	case "contains":
		out.Array.Contains, err = decodeSchema(node)
	case "minContains":
		out.Array.MinContains, err = decodeCount(key, node)
	case "maxContains":
		out.Array.MaxContains, err = decodeCount(key, node)
	case "minItems":
		out.Array.MinItems, err = decodeCount(key, node)
	case "maxItems":
		out.Array.MaxItems, err = decodeCount(key, node)
	case "uniqueItems":
		out.Array.UniqueItems, err = decodeBool(key, node)

	default:
		if rejectedKeywords[key] {
			if !emptyAllowed[key] || !isEmptyCollection(node) {
				out.Unsupported = append(out.Unsupported, key)
			}

			return nil
		}

		var v jsonvalue.Value

		v, err = jsonvalue.FromNode(node)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		out.Extensions = append(out.Extensions, jsonvalue.Member{Key: key, Value: v})
	}

	return err
}

// limits collects the raw bound keywords of one schema object. Draft 4
// pairs a limit with a boolean exclusive flag; draft 6 and later use a
// numeric exclusive limit.
type limits struct {
	minimum          *jsonvalue.Value
	maximum          *jsonvalue.Value
	exclusiveMinimum *jsonvalue.Value
	exclusiveMaximum *jsonvalue.Value
}

func (l limits) apply(out *Node) error {
	lower, err := resolveBound(l.minimum, l.exclusiveMinimum, 1)
	if err != nil {
		return err
	}

	upper, err := resolveBound(l.maximum, l.exclusiveMaximum, -1)
	if err != nil {
		return err
	}

	out.Numeric.Minimum = lower
	out.Numeric.Maximum = upper

	return nil
}

// resolveBound folds a limit and its exclusive keyword into one [Bound].
// When both are numbers, the stricter one wins; stricter is the larger
// value for a lower bound (sign 1) and the smaller for an upper bound
// (sign -1).
func resolveBound(limit, exclusive *jsonvalue.Value, sign int) (*Bound, error) {
	switch {
	case exclusive != nil && exclusive.Kind() == jsonvalue.KindBool:
		if limit == nil {
			return nil, nil //nolint:nilnil // A flag without a limit has no effect.
		}

		return &Bound{Value: *limit, Exclusive: exclusive.Bool()}, nil

	case exclusive != nil:
		if limit != nil {
			l, _ := limit.Rat()
			e, _ := exclusive.Rat()

			if l.Cmp(e)*sign > 0 {
				return &Bound{Value: *limit}, nil
			}
		}

		return &Bound{Value: *exclusive, Exclusive: true}, nil

	case limit != nil:
		return &Bound{Value: *limit}, nil
	}

	return nil, nil //nolint:nilnil // Absent bound.
}

func decodeTypes(node ast.Node) (TypeSet, error) {
	v, err := jsonvalue.FromNode(node)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	names := []jsonvalue.Value{v}
	if v.Kind() == jsonvalue.KindArray {
		names = v.Items()
	}

	var set TypeSet

	for _, name := range names {
		if name.Kind() != jsonvalue.KindString {
			return 0, invalidf(node, "keyword 'type' must be a string or an array of strings")
		}

		t, ok := ParseType(name.Text())
		if !ok {
			return 0, invalidf(node, "unknown type %q", name.Text())
		}

		set |= TypeSet(t)
	}

	return set, nil
}

func decodeValue(node ast.Node) (*jsonvalue.Value, error) {
	v, err := jsonvalue.FromNode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return &v, nil
}

func decodeKind(key string, node ast.Node, kind jsonvalue.Kind) (jsonvalue.Value, error) {
	v, err := jsonvalue.FromNode(node)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if v.Kind() != kind {
		return jsonvalue.Value{}, invalidf(node, "keyword %s must be a %s", diag.Quote(key), kind)
	}

	return v, nil
}

func decodeString(key string, node ast.Node) (*string, error) {
	v, err := decodeKind(key, node, jsonvalue.KindString)
	if err != nil {
		return nil, err
	}

	return Ptr(v.Text()), nil
}

func decodeURI(key string, node ast.Node) (*string, error) {
	s, err := decodeString(key, node)
	if err != nil {
		return nil, err
	}

	_, err = url.Parse(*s)
	if err != nil {
		return nil, invalidf(node, "keyword %s must be a URI: %v", diag.Quote(key), err)
	}

	return s, nil
}

func decodeBool(key string, node ast.Node) (*bool, error) {
	v, err := decodeKind(key, node, jsonvalue.KindBool)
	if err != nil {
		return nil, err
	}

	return Ptr(v.Bool()), nil
}

func decodeNumber(key string, node ast.Node) (*jsonvalue.Value, error) {
	v, err := decodeKind(key, node, jsonvalue.KindNumber)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func decodeExclusive(key string, node ast.Node) (*jsonvalue.Value, error) {
	v, err := jsonvalue.FromNode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if v.Kind() != jsonvalue.KindBool && v.Kind() != jsonvalue.KindNumber {
		return nil, invalidf(node, "keyword %s must be a boolean or a number", diag.Quote(key))
	}

	return &v, nil
}

func decodeCount(key string, node ast.Node) (*int64, error) {
	v, err := decodeKind(key, node, jsonvalue.KindNumber)
	if err != nil {
		return nil, err
	}

	n, ok := v.Int64()
	if !ok || n < 0 {
		return nil, invalidf(node, "keyword %s must be a non-negative integer", diag.Quote(key))
	}

	return &n, nil
}

func decodeEnum(key string, node ast.Node) ([]jsonvalue.Value, error) {
	v, err := decodeKind(key, node, jsonvalue.KindArray)
	if err != nil {
		return nil, err
	}

	var out []jsonvalue.Value

	for _, item := range v.Items() {
		if !jsonvalue.Contains(out, item) {
			out = append(out, item)
		}
	}

	return out, nil
}

func decodeRequired(key string, node ast.Node) ([]string, error) {
	v, err := decodeKind(key, node, jsonvalue.KindArray)
	if err != nil {
		return nil, err
	}

	var out []string

	seen := map[string]bool{}

	for _, item := range v.Items() {
		if item.Kind() != jsonvalue.KindString {
			return nil, invalidf(node, "keyword %s must be an array of strings", diag.Quote(key))
		}

		if !seen[item.Text()] {
			seen[item.Text()] = true
			out = append(out, item.Text())
		}
	}

	return out, nil
}

func decodeNodeMap(key string, node ast.Node, into *NodeMap) error {
	pairs, ok := mappingPairs(jsonvalue.Unwrap(node))
	if !ok {
		return invalidf(node, "keyword %s must be an object", diag.Quote(key))
	}

	for _, pair := range pairs {
		name, err := jsonvalue.KeyText(pair.Key)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		if _, ok := into.Get(name); ok {
			return invalidf(pair.Key, "duplicate key %s in %s", diag.Quote(name), diag.Quote(key))
		}

		sub, err := decodeSchema(pair.Value)
		if err != nil {
			return err
		}

		into.Set(name, sub)
	}

	return nil
}

func decodeAdditional(node ast.Node) (Additional, error) {
	if b, ok := jsonvalue.Unwrap(node).(*ast.BoolNode); ok {
		if b.Value {
			return Allow(), nil
		}

		return Deny(), nil
	}

	sub, err := decodeSchema(node)
	if err != nil {
		return Additional{}, err
	}

	return SchemaOf(sub), nil
}

// mappingPairs returns the key/value pairs of a mapping node. goccy/go-yaml
// represents a single-pair block mapping as a bare MappingValueNode.
func mappingPairs(node ast.Node) ([]*ast.MappingValueNode, bool) {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values, true
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}, true
	}

	return nil, false
}

func isEmptyCollection(node ast.Node) bool {
	switch n := jsonvalue.Unwrap(node).(type) {
	case *ast.SequenceNode:
		return len(n.Values) == 0
	case *ast.MappingNode:
		return len(n.Values) == 0
	}

	return false
}

func positionOf(node ast.Node) diag.Position {
	if node == nil {
		return diag.Position{}
	}

	tk := node.GetToken()
	if tk == nil || tk.Position == nil {
		return diag.Position{}
	}

	return diag.Position{Line: tk.Position.Line, Column: tk.Position.Column}
}

func invalidf(node ast.Node, format string, args ...any) error {
	return fmt.Errorf("%w%s: %s", ErrInvalidDocument, positionOf(node).Suffix(), fmt.Sprintf(format, args...))
}
