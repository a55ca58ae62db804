package schemamerge

import (
	"net/url"
	"slices"
	"strings"

	"go.jacobcolvin.com/schemamerge/jsonvalue"
)

// Merge folds source into target. The whole source tree is validated
// first, so an unsupported construct leaves target untouched. Conflicts
// are detected during the merge and leave target partially merged; callers
// abort the run on any error.
//
// Sub-schemas adopted from source are cloned, so source may be merged
// again or discarded afterwards.
func Merge(source, target *Node) error {
	err := Validate(source)
	if err != nil {
		return err
	}

	return mergeNode(source, target)
}

func mergeNode(source, target *Node) error {
	if hasNumeric(source.Types) {
		mergeNumeric(source, target)
	}

	if source.Types.Has(TypeString) {
		mergeString(source, target)
	}

	if source.Types.Has(TypeObject) {
		err := mergeObject(source, target)
		if err != nil {
			return err
		}
	}

	if source.Types.Has(TypeArray) {
		err := mergeArray(source, target)
		if err != nil {
			return err
		}
	}

	// Boolean and null carry no constraints of their own.

	target.Types = target.Types.Union(source.Types)

	return mergeCommon(source, target)
}

// mergeNumeric treats integer and number as one constraint group. The
// group is adopted only when target has neither tag.
func mergeNumeric(source, target *Node) {
	if !hasNumeric(target.Types) {
		target.Numeric = source.Numeric.clone()

		return
	}

	src, dst := &source.Numeric, &target.Numeric

	if !equalValuePtr(src.MultipleOf, dst.MultipleOf) {
		dst.MultipleOf = nil
	}

	if !equalBound(src.Minimum, dst.Minimum) {
		dst.Minimum = nil
	}

	if !equalBound(src.Maximum, dst.Maximum) {
		dst.Maximum = nil
	}
}

func hasNumeric(ts TypeSet) bool {
	return ts.Has(TypeInteger) || ts.Has(TypeNumber)
}

func mergeString(source, target *Node) {
	if !target.Types.Has(TypeString) {
		target.String = source.String.clone()

		return
	}

	src, dst := &source.String, &target.String

	dst.Pattern = keepIfEqual(src.Pattern, dst.Pattern)
	dst.Format = keepIfEqual(src.Format, dst.Format)
	dst.MinLength = keepIfEqual(src.MinLength, dst.MinLength)
	dst.MaxLength = keepIfEqual(src.MaxLength, dst.MaxLength)
}

func mergeObject(source, target *Node) error {
	if !target.Types.Has(TypeObject) {
		target.Object = source.Object.clone()

		return nil
	}

	src, dst := &source.Object, &target.Object

	err := unionNodeMaps(&src.Properties, &dst.Properties)
	if err != nil {
		return err
	}

	err = unionNodeMaps(&src.PatternProperties, &dst.PatternProperties)
	if err != nil {
		return err
	}

	dst.Required = slices.DeleteFunc(dst.Required, func(name string) bool {
		return !slices.Contains(src.Required, name)
	})

	err = mergeAdditional(src.AdditionalProperties, &dst.AdditionalProperties)
	if err != nil {
		return err
	}

	dst.MinProperties = widenMin(src.MinProperties, dst.MinProperties)
	dst.MaxProperties = widenMax(src.MaxProperties, dst.MaxProperties)

	return nil
}

func mergeArray(source, target *Node) error {
	if !target.Types.Has(TypeArray) {
		target.Array = source.Array.clone()

		return nil
	}

	src, dst := &source.Array, &target.Array

	switch {
	case src.Items != nil && dst.Items != nil:
		err := mergeNode(src.Items, dst.Items)
		if err != nil {
			return err
		}
	case src.Items == nil:
		dst.Items = nil
	}

	err := mergeAdditional(src.AdditionalItems, &dst.AdditionalItems)
	if err != nil {
		return err
	}

	if src.Contains != nil && dst.Contains != nil {
		err = mergeNode(src.Contains, dst.Contains)
		if err != nil {
			return err
		}
	} else {
		dst.Contains = nil
	}

	dst.MinContains = widenMin(src.MinContains, dst.MinContains)
	dst.MaxContains = widenMax(src.MaxContains, dst.MaxContains)
	dst.MinItems = widenMin(src.MinItems, dst.MinItems)
	dst.MaxItems = widenMax(src.MaxItems, dst.MaxItems)
	dst.UniqueItems = keepIfEqual(src.UniqueItems, dst.UniqueItems)

	return nil
}

// mergeAdditional resolves the tri-state additionalItems or
// additionalProperties value:
//
//	Source   Target   Result
//	schema   schema   merged schema
//	allow    any      allow
//	any      allow    allow
//	deny     deny     deny
//	schema   deny     source schema
//	deny     schema   target schema
func mergeAdditional(source Additional, target *Additional) error {
	switch {
	case source.stance == StanceSchema && target.stance == StanceSchema:
		return mergeNode(source.schema, target.schema)
	case source.stance == StanceAllow || target.stance == StanceAllow:
		*target = Allow()
	case source.stance == StanceSchema:
		*target = SchemaOf(source.schema.Clone())
	}

	return nil
}

func unionNodeMaps(source, target *NodeMap) error {
	for name, sub := range source.All() {
		existing, ok := target.Get(name)
		if !ok {
			target.Set(name, sub.Clone())

			continue
		}

		err := mergeNode(sub, existing)
		if err != nil {
			return err
		}
	}

	return nil
}

func mergeCommon(source, target *Node) error {
	var err error

	target.Const, err = mergeScalar(source, target, "const", source.Const, target.Const, equalValue)
	if err != nil {
		return err
	}

	for _, v := range source.Enum {
		if !jsonvalue.Contains(target.Enum, v) {
			target.Enum = append(target.Enum, v)
		}
	}

	target.Title, err = mergeScalar(source, target, "title", source.Title, target.Title, equalString)
	if err != nil {
		return err
	}

	target.Description, err = mergeScalar(source, target, "description",
		source.Description, target.Description, equalString)
	if err != nil {
		return err
	}

	target.Default, err = mergeScalar(source, target, "default", source.Default, target.Default, equalValue)
	if err != nil {
		return err
	}

	target.SchemaVersion, err = mergeScalar(source, target, "$schema",
		source.SchemaVersion, target.SchemaVersion, equalURI)
	if err != nil {
		return err
	}

	mergeAccessModes(source, target)

	target.ContentEncoding, err = mergeScalar(source, target, "contentEncoding",
		source.ContentEncoding, target.ContentEncoding, equalString)
	if err != nil {
		return err
	}

	target.ContentMediaType, err = mergeScalar(source, target, "contentMediaType",
		source.ContentMediaType, target.ContentMediaType, equalString)
	if err != nil {
		return err
	}

	return mergeExtensions(source, target)
}

// mergeAccessModes keeps readOnly and writeOnly only when both sides agree,
// treating absent as false. A schema cannot be both, so two agreeing true
// values clear each other.
func mergeAccessModes(source, target *Node) {
	if deref(source.ReadOnly) != deref(target.ReadOnly) {
		target.ReadOnly = nil
	} else {
		target.ReadOnly = clonePtr(source.ReadOnly)
	}

	if deref(source.WriteOnly) != deref(target.WriteOnly) {
		target.WriteOnly = nil
	} else {
		target.WriteOnly = clonePtr(source.WriteOnly)
	}

	if deref(target.ReadOnly) && deref(target.WriteOnly) {
		target.ReadOnly = nil
		target.WriteOnly = nil
	}
}

func mergeExtensions(source, target *Node) error {
	if len(source.Extensions) == 0 {
		return nil
	}

	merged, err := jsonvalue.Merge(jsonvalue.Object(source.Extensions...), jsonvalue.Object(target.Extensions...))
	if err != nil {
		return err //nolint:wrapcheck // Surfaced verbatim.
	}

	target.Extensions = merged.Members()

	return nil
}

// mergeScalar adopts whichever side is present. Two present values must be
// equal.
func mergeScalar[T any](source, target *Node, keyword string, src, dst *T, equal func(a, b T) bool) (*T, error) {
	if src == nil {
		return dst, nil
	}

	if dst != nil && !equal(*src, *dst) {
		pos := source.Position
		if !pos.IsKnown() {
			pos = target.Position
		}

		return nil, &ConflictError{Keyword: keyword, Source: *src, Target: *dst, Position: pos}
	}

	return clonePtr(src), nil
}

// widenMin keeps the looser of two lower count bounds. A bound asserted by
// only one side is dropped.
func widenMin(src, dst *int64) *int64 {
	if src == nil || dst == nil {
		return nil
	}

	return Ptr(min(*src, *dst))
}

// widenMax keeps the looser of two upper count bounds.
func widenMax(src, dst *int64) *int64 {
	if src == nil || dst == nil {
		return nil
	}

	return Ptr(max(*src, *dst))
}

func keepIfEqual[T comparable](src, dst *T) *T {
	if src == nil || dst == nil || *src != *dst {
		return nil
	}

	return dst
}

func equalValuePtr(a, b *jsonvalue.Value) bool {
	if a == nil || b == nil {
		return a == b
	}

	return jsonvalue.Equal(*a, *b)
}

func equalBound(a, b *Bound) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Exclusive == b.Exclusive && jsonvalue.Equal(a.Value, b.Value)
}

func equalValue(a, b jsonvalue.Value) bool {
	return jsonvalue.Equal(a, b)
}

func equalString(a, b string) bool {
	return a == b
}

// equalURI compares two URIs after normalizing scheme and host case,
// default ports, and an empty path.
func equalURI(a, b string) bool {
	return normalizeURI(a) == normalizeURI(b)
}

func normalizeURI(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return s
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if u.Host != "" && u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}

func deref(b *bool) bool {
	return b != nil && *b
}
