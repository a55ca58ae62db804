package jsonvalue

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// Parse decodes a single JSON (or YAML) document.
func Parse(data []byte) (Value, error) {
	node, err := ParseNode(data)
	if err != nil {
		return Value{}, err
	}

	return FromNode(node)
}

// ParseNode parses a single document and returns its body node.
func ParseNode(data []byte) (ast.Node, error) {
	file, err := parser.ParseBytes(Untab(data), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}

	if len(file.Docs) > 1 {
		return nil, fmt.Errorf("%w: expected one document, got %d", ErrInvalid, len(file.Docs))
	}

	return file.Docs[0].Body, nil
}

// Untab replaces tabs outside string literals with spaces when data is a
// JSON document. JSON permits tabs as whitespace but YAML rejects them in
// indentation. A tab and a space occupy one column each, so positions are
// unchanged.
func Untab(data []byte) []byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') || bytes.IndexByte(data, '\t') < 0 {
		return data
	}

	out := bytes.Clone(data)

	var inString, escaped bool

	for i, c := range out {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '\t':
			out[i] = ' '
		}
	}

	return out
}

// FromNode converts a parsed AST node into a [Value]. Tags and anchors are
// ignored; aliases, merge keys, and non-finite numbers are rejected.
func FromNode(node ast.Node) (Value, error) {
	node = Unwrap(node)

	switch n := node.(type) {
	case nil, *ast.NullNode:
		return Null(), nil

	case *ast.BoolNode:
		return Bool(n.Value), nil

	case *ast.IntegerNode:
		return numberFromNode(n.GetToken().Value, fmt.Sprint(n.Value))

	case *ast.FloatNode:
		return numberFromNode(n.GetToken().Value, strconv.FormatFloat(n.Value, 'g', -1, 64))

	case *ast.StringNode:
		if literal, ok := PlainNumber(n); ok {
			return Value{kind: KindNumber, text: literal}, nil
		}

		return String(n.Value), nil

	case *ast.LiteralNode:
		if n.Value == nil {
			return String(""), nil
		}

		return String(n.Value.Value), nil

	case *ast.SequenceNode:
		items := make([]Value, 0, len(n.Values))

		for _, child := range n.Values {
			v, err := FromNode(child)
			if err != nil {
				return Value{}, err
			}

			items = append(items, v)
		}

		return Value{kind: KindArray, items: items}, nil

	case *ast.MappingNode:
		return objectFromPairs(n.Values)

	case *ast.MappingValueNode:
		return objectFromPairs([]*ast.MappingValueNode{n})
	}

	return Value{}, fmt.Errorf("%w: unsupported %s%s", ErrInvalid, node.Type(), positionSuffix(node))
}

// PlainNumber reports whether node is an unquoted scalar holding a JSON
// number that YAML reads as a string, such as "1e5" or an integer wider than
// 64 bits, and returns its literal.
func PlainNumber(node ast.Node) (string, bool) {
	n, ok := Unwrap(node).(*ast.StringNode)
	if !ok {
		return "", false
	}

	tk := n.GetToken()
	if tk == nil || tk.Type == token.DoubleQuoteType || tk.Type == token.SingleQuoteType {
		return "", false
	}

	if !isDecimal(n.Value) {
		return "", false
	}

	return n.Value, true
}

// Unwrap strips tag and anchor wrappers from node.
func Unwrap(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// KeyText returns the text of a mapping key.
func KeyText(key ast.MapKeyNode) (string, error) {
	switch k := Unwrap(key).(type) {
	case *ast.StringNode:
		return k.Value, nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.NullNode:
		return k.GetToken().Value, nil
	}

	return "", fmt.Errorf("%w: unsupported mapping key%s", ErrInvalid, positionSuffix(key))
}

func objectFromPairs(pairs []*ast.MappingValueNode) (Value, error) {
	members := make([]Member, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))

	for _, pair := range pairs {
		key, err := KeyText(pair.Key)
		if err != nil {
			return Value{}, err
		}

		if seen[key] {
			return Value{}, fmt.Errorf("%w: duplicate key %q%s", ErrInvalid, key, positionSuffix(pair.Key))
		}

		seen[key] = true

		v, err := FromNode(pair.Value)
		if err != nil {
			return Value{}, err
		}

		members = append(members, Member{Key: key, Value: v})
	}

	return Value{kind: KindObject, members: members}, nil
}

func numberFromNode(literal, fallback string) (Value, error) {
	if _, ok := parseRat(literal); ok {
		return Value{kind: KindNumber, text: literal}, nil
	}

	return Number(fallback)
}

func positionSuffix(node ast.Node) string {
	tk := node.GetToken()
	if tk == nil || tk.Position == nil {
		return ""
	}

	return fmt.Sprintf(" at (%d,%d)", tk.Position.Line, tk.Position.Column)
}
