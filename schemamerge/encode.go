package schemamerge

import "go.jacobcolvin.com/schemamerge/jsonvalue"

// Value encodes n as a JSON object. Keywords are written in a fixed order
// with extension data last; absent keywords, [StanceAllow], and empty
// collections are omitted. Bounds use the draft 6 form, so an exclusive
// minimum is written as "exclusiveMinimum": <value>.
func (n *Node) Value() jsonvalue.Value {
	if n == nil {
		return jsonvalue.Object()
	}

	var ms members

	ms.str("$schema", n.SchemaVersion)
	ms.str("title", n.Title)
	ms.str("description", n.Description)

	switch names := n.Types.Names(); len(names) {
	case 0:
	case 1:
		ms.add("type", jsonvalue.String(names[0]))
	default:
		ms.add("type", stringArray(names))
	}

	ms.value("const", n.Const)

	if len(n.Enum) > 0 {
		ms.add("enum", jsonvalue.Array(n.Enum...))
	}

	ms.value("default", n.Default)
	ms.boolean("readOnly", n.ReadOnly)
	ms.boolean("writeOnly", n.WriteOnly)
	ms.str("contentEncoding", n.ContentEncoding)
	ms.str("contentMediaType", n.ContentMediaType)

	ms.str("format", n.String.Format)
	ms.str("pattern", n.String.Pattern)
	ms.count("minLength", n.String.MinLength)
	ms.count("maxLength", n.String.MaxLength)

	ms.value("multipleOf", n.Numeric.MultipleOf)
	ms.bound("minimum", "exclusiveMinimum", n.Numeric.Minimum)
	ms.bound("maximum", "exclusiveMaximum", n.Numeric.Maximum)

	ms.nodeMap("properties", &n.Object.Properties)
	ms.nodeMap("patternProperties", &n.Object.PatternProperties)

	if len(n.Object.Required) > 0 {
		ms.add("required", stringArray(n.Object.Required))
	}

	ms.additional("additionalProperties", n.Object.AdditionalProperties)
	ms.count("minProperties", n.Object.MinProperties)
	ms.count("maxProperties", n.Object.MaxProperties)

	ms.node("items", n.Array.Items)
	ms.additional("additionalItems", n.Array.AdditionalItems)
	ms.node("contains", n.Array.Contains)
	ms.count("minContains", n.Array.MinContains)
	ms.count("maxContains", n.Array.MaxContains)
	ms.count("minItems", n.Array.MinItems)
	ms.count("maxItems", n.Array.MaxItems)
	ms.boolean("uniqueItems", n.Array.UniqueItems)

	ms = append(ms, n.Extensions...)

	return jsonvalue.Object(ms...)
}

// MarshalJSON encodes n as returned by [Node.Value].
func (n *Node) MarshalJSON() ([]byte, error) {
	return n.Value().MarshalJSON()
}

type members []jsonvalue.Member

func (ms *members) add(key string, v jsonvalue.Value) {
	*ms = append(*ms, jsonvalue.Member{Key: key, Value: v})
}

func (ms *members) str(key string, s *string) {
	if s != nil {
		ms.add(key, jsonvalue.String(*s))
	}
}

func (ms *members) value(key string, v *jsonvalue.Value) {
	if v != nil {
		ms.add(key, *v)
	}
}

func (ms *members) boolean(key string, b *bool) {
	if b != nil {
		ms.add(key, jsonvalue.Bool(*b))
	}
}

func (ms *members) count(key string, c *int64) {
	if c != nil {
		ms.add(key, jsonvalue.Int(*c))
	}
}

func (ms *members) bound(inclusiveKey, exclusiveKey string, b *Bound) {
	switch {
	case b == nil:
	case b.Exclusive:
		ms.add(exclusiveKey, b.Value)
	default:
		ms.add(inclusiveKey, b.Value)
	}
}

func (ms *members) node(key string, n *Node) {
	if n != nil {
		ms.add(key, n.Value())
	}
}

func (ms *members) nodeMap(key string, m *NodeMap) {
	if m.Len() == 0 {
		return
	}

	props := make([]jsonvalue.Member, 0, m.Len())
	for name, sub := range m.All() {
		props = append(props, jsonvalue.Member{Key: name, Value: sub.Value()})
	}

	ms.add(key, jsonvalue.Object(props...))
}

func (ms *members) additional(key string, a Additional) {
	switch a.Stance() {
	case StanceAllow:
	case StanceDeny:
		ms.add(key, jsonvalue.Bool(false))
	case StanceSchema:
		ms.add(key, a.Schema().Value())
	}
}

func stringArray(ss []string) jsonvalue.Value {
	items := make([]jsonvalue.Value, len(ss))
	for i, s := range ss {
		items[i] = jsonvalue.String(s)
	}

	return jsonvalue.Array(items...)
}
