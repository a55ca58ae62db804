package fragment

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/schemamerge/jsonvalue"
)

const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

// Infer derives a fragment from a sample YAML or JSON document. Mappings
// become objects, sequences become arrays whose items carry the widened
// element type, and scalars carry their type. Null values are left
// unconstrained. A comment above a key, or trailing its value, becomes the
// property description. Only the first document is used, and an empty
// document produces an empty schema.
func Infer(data []byte) (*jsonschema.Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &jsonschema.Schema{}, nil
	}

	file, err := parser.ParseBytes(jsonvalue.Untab(data), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return &jsonschema.Schema{}, nil
	}

	body := file.Docs[0].Body

	w := &walker{anchors: make(map[string]ast.Node)}
	ast.Walk(w, body)

	return w.walk(body), nil
}

type walker struct {
	anchors map[string]ast.Node
}

// Visit implements [ast.Visitor] to collect anchors.
func (w *walker) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		w.anchors[anchor.Name.String()] = anchor.Value
	}

	return w
}

// resolve follows aliases, tags, and anchors to the underlying value node.
// Unresolvable aliases resolve to nil.
func (w *walker) resolve(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.AliasNode:
			node = w.anchors[n.Value.String()]
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func (w *walker) walk(node ast.Node) *jsonschema.Schema {
	switch n := w.resolve(node).(type) {
	case *ast.MappingNode:
		return w.walkMapping(n.Values)
	case *ast.MappingValueNode:
		return w.walkMapping([]*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		return w.walkSequence(n)
	case nil:
		return &jsonschema.Schema{}
	default:
		return &jsonschema.Schema{Type: inferType(n)}
	}
}

func (w *walker) walkMapping(values []*ast.MappingValueNode) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			w.mergeInto(s, mvn.Value)

			continue
		}

		w.addProperty(s, keyName(mvn.Key), w.walk(mvn.Value), describe(mvn))
	}

	if len(s.Properties) == 0 {
		s.Properties = nil
	}

	return s
}

// mergeInto adds the properties of a YAML merge key (<<) value to s. Keys
// already present in s win.
func (w *walker) mergeInto(s *jsonschema.Schema, value ast.Node) {
	var sources []ast.Node

	switch v := w.resolve(value).(type) {
	case *ast.SequenceNode:
		sources = v.Values
	case nil:
	default:
		sources = []ast.Node{v}
	}

	for _, src := range sources {
		merged := w.walk(src)
		for _, k := range merged.PropertyOrder {
			if _, exists := s.Properties[k]; !exists {
				w.addProperty(s, k, merged.Properties[k], "")
			}
		}
	}
}

func (w *walker) addProperty(s *jsonschema.Schema, name string, sub *jsonschema.Schema, desc string) {
	if _, exists := s.Properties[name]; !exists {
		s.PropertyOrder = append(s.PropertyOrder, name)
	}

	if desc != "" {
		sub.Description = desc
	}

	s.Properties[name] = sub
}

func (w *walker) walkSequence(seq *ast.SequenceNode) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: typeArray}

	var itemType string

	for _, val := range seq.Values {
		t := inferType(w.resolve(val))
		if t == "" {
			continue
		}

		if itemType == "" {
			itemType = t

			continue
		}

		if itemType = widenType(itemType, t); itemType == "" {
			break
		}
	}

	if itemType != "" {
		s.Items = &jsonschema.Schema{Type: itemType}
	}

	return s
}

func keyName(key ast.MapKeyNode) string {
	if sn, ok := key.(*ast.StringNode); ok {
		return sn.Value
	}

	return key.String()
}

// inferType returns the JSON Schema type of a resolved node, or "" for null.
func inferType(node ast.Node) string {
	switch node.(type) {
	case *ast.BoolNode:
		return typeBoolean
	case *ast.IntegerNode:
		return typeInteger
	case *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return typeNumber
	case *ast.StringNode:
		if literal, ok := jsonvalue.PlainNumber(node); ok {
			if strings.ContainsAny(literal, ".eE") {
				return typeNumber
			}

			return typeInteger
		}

		return typeString
	case *ast.LiteralNode:
		return typeString
	case *ast.SequenceNode:
		return typeArray
	case *ast.MappingNode, *ast.MappingValueNode:
		return typeObject
	}

	return ""
}

// widenType combines two element types. Null is transparent, integer and
// number widen to number, and anything else is unconstrained.
func widenType(a, b string) string {
	switch {
	case a == b:
		return a
	case a == "":
		return b
	case b == "":
		return a
	case (a == typeInteger && b == typeNumber) || (a == typeNumber && b == typeInteger):
		return typeNumber
	}

	return ""
}

// describe returns the description for a key from its head comment, or
// else the trailing comment on its value or key.
func describe(mvn *ast.MappingValueNode) string {
	if desc := cleanComment(mvn.GetComment()); desc != "" {
		return desc
	}

	if mvn.Value != nil {
		if desc := cleanComment(mvn.Value.GetComment()); desc != "" {
			return desc
		}
	}

	if mvn.Key != nil {
		return cleanComment(mvn.Key.GetComment())
	}

	return ""
}

// cleanComment strips comment markers and joins the lines of the last
// paragraph with spaces.
func cleanComment(comment *ast.CommentGroupNode) string {
	if comment == nil {
		return ""
	}

	var parts []string

	for line := range strings.SplitSeq(comment.String(), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))

		if line == "" {
			parts = parts[:0]

			continue
		}

		parts = append(parts, line)
	}

	return strings.Join(parts, " ")
}
