package schemamerge

import (
	"slices"

	"go.jacobcolvin.com/schemamerge/diag"
	"go.jacobcolvin.com/schemamerge/jsonvalue"
)

// Node is one JSON Schema object restricted to the mergeable keyword
// subset. Every field is optional; nil means the keyword is absent.
//
// A Node exclusively owns its sub-schemas. Use [Node.Clone] before sharing
// a node between two trees.
type Node struct {
	Title            *string
	Description      *string
	SchemaVersion    *string
	ContentEncoding  *string
	ContentMediaType *string
	Const            *jsonvalue.Value
	Default          *jsonvalue.Value
	ReadOnly         *bool
	WriteOnly        *bool

	// Enum holds no two elements that are [jsonvalue.Equal].
	Enum []jsonvalue.Value

	// Extensions holds every keyword outside the recognized set, in
	// document order.
	Extensions []jsonvalue.Member

	// Unsupported lists rejected keywords seen while decoding. A node
	// with any entry fails validation and is never merged.
	Unsupported []string

	Numeric NumericConstraints
	String  StringConstraints
	Object  ObjectConstraints
	Array   ArrayConstraints

	// Position is where the schema object starts in its source document.
	Position diag.Position

	Types TypeSet
}

// Bound is an inclusive or exclusive numeric limit.
type Bound struct {
	Value     jsonvalue.Value
	Exclusive bool
}

// NumericConstraints applies when a schema allows integer or number.
type NumericConstraints struct {
	MultipleOf *jsonvalue.Value
	Minimum    *Bound
	Maximum    *Bound
}

// StringConstraints applies when a schema allows string.
type StringConstraints struct {
	Pattern   *string
	Format    *string
	MinLength *int64
	MaxLength *int64
}

// ObjectConstraints applies when a schema allows object.
type ObjectConstraints struct {
	Properties           NodeMap
	PatternProperties    NodeMap
	AdditionalProperties Additional
	MinProperties        *int64
	MaxProperties        *int64

	// Required is a set kept in first-seen order.
	Required []string
}

// ArrayConstraints applies when a schema allows array.
type ArrayConstraints struct {
	Items           *Node
	Contains        *Node
	AdditionalItems Additional
	MinContains     *int64
	MaxContains     *int64
	MinItems        *int64
	MaxItems        *int64
	UniqueItems     *bool
}

// Stance is the effective meaning of additionalItems or
// additionalProperties.
type Stance uint8

const (
	// StanceAllow is an explicit true or an absent keyword.
	StanceAllow Stance = iota
	// StanceDeny is an explicit false.
	StanceDeny
	// StanceSchema is a sub-schema.
	StanceSchema
)

func (s Stance) String() string {
	switch s {
	case StanceAllow:
		return "allow"
	case StanceDeny:
		return "deny"
	case StanceSchema:
		return "schema"
	}

	return "unknown"
}

// Additional is the tri-state value of additionalItems or
// additionalProperties. The zero value allows anything.
type Additional struct {
	schema *Node
	stance Stance
}

// Allow returns an [Additional] that permits any extra item or property.
func Allow() Additional {
	return Additional{}
}

// Deny returns an [Additional] that forbids extra items or properties.
func Deny() Additional {
	return Additional{stance: StanceDeny}
}

// SchemaOf returns an [Additional] constraining extra items or properties
// to n. A nil n is treated as [Allow].
func SchemaOf(n *Node) Additional {
	if n == nil {
		return Additional{}
	}

	return Additional{stance: StanceSchema, schema: n}
}

// Stance returns the variant of a.
func (a Additional) Stance() Stance {
	return a.stance
}

// Schema returns the sub-schema of a [StanceSchema] value, or nil.
func (a Additional) Schema() *Node {
	return a.schema
}

// Clone returns a deep copy of a.
func (a Additional) Clone() Additional {
	if a.stance == StanceSchema {
		return SchemaOf(a.schema.Clone())
	}

	return a
}

// Clone returns a deep copy of n. Values are immutable and are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := *n
	out.Title = clonePtr(n.Title)
	out.Description = clonePtr(n.Description)
	out.SchemaVersion = clonePtr(n.SchemaVersion)
	out.ContentEncoding = clonePtr(n.ContentEncoding)
	out.ContentMediaType = clonePtr(n.ContentMediaType)
	out.Const = clonePtr(n.Const)
	out.Default = clonePtr(n.Default)
	out.ReadOnly = clonePtr(n.ReadOnly)
	out.WriteOnly = clonePtr(n.WriteOnly)
	out.Enum = slices.Clone(n.Enum)
	out.Extensions = slices.Clone(n.Extensions)
	out.Unsupported = slices.Clone(n.Unsupported)
	out.Numeric = n.Numeric.clone()
	out.String = n.String.clone()
	out.Object = n.Object.clone()
	out.Array = n.Array.clone()

	return &out
}

func (c NumericConstraints) clone() NumericConstraints {
	return NumericConstraints{
		MultipleOf: clonePtr(c.MultipleOf),
		Minimum:    clonePtr(c.Minimum),
		Maximum:    clonePtr(c.Maximum),
	}
}

func (c StringConstraints) clone() StringConstraints {
	return StringConstraints{
		Pattern:   clonePtr(c.Pattern),
		Format:    clonePtr(c.Format),
		MinLength: clonePtr(c.MinLength),
		MaxLength: clonePtr(c.MaxLength),
	}
}

func (c ObjectConstraints) clone() ObjectConstraints {
	return ObjectConstraints{
		Properties:           c.Properties.Clone(),
		PatternProperties:    c.PatternProperties.Clone(),
		AdditionalProperties: c.AdditionalProperties.Clone(),
		MinProperties:        clonePtr(c.MinProperties),
		MaxProperties:        clonePtr(c.MaxProperties),
		Required:             slices.Clone(c.Required),
	}
}

func (c ArrayConstraints) clone() ArrayConstraints {
	return ArrayConstraints{
		Items:           c.Items.Clone(),
		Contains:        c.Contains.Clone(),
		AdditionalItems: c.AdditionalItems.Clone(),
		MinContains:     clonePtr(c.MinContains),
		MaxContains:     clonePtr(c.MaxContains),
		MinItems:        clonePtr(c.MinItems),
		MaxItems:        clonePtr(c.MaxItems),
		UniqueItems:     clonePtr(c.UniqueItems),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
