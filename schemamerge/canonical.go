package schemamerge

import (
	"cmp"
	"slices"

	"go.jacobcolvin.com/schemamerge/jsonvalue"
)

// Canonicalize returns schema in a deterministic order, so that output does
// not depend on the order in which fragments were merged:
//
//  1. The "type" and "required" arrays are sorted. "enum" is sorted with
//     strings first, then the other values grouped by kind.
//  2. "properties" and "patternProperties" are sorted by name and each
//     sub-schema is canonicalized.
//  3. "items", "contains", "additionalItems" and "additionalProperties"
//     sub-schemas are canonicalized in place.
//  4. "type" moves to the front, followed by "definitions"; "summary" and
//     then "description" move to the end.
//
// Canonicalize is idempotent. Values other than objects are returned as-is.
func Canonicalize(schema jsonvalue.Value) jsonvalue.Value {
	if schema.Kind() != jsonvalue.KindObject {
		return schema
	}

	ms := schema.Members()

	for i, m := range ms {
		switch m.Key {
		case "type", "required":
			ms[i].Value = sortStrings(m.Value)
		case "enum":
			ms[i].Value = sortEnum(m.Value)
		case "properties", "patternProperties":
			ms[i].Value = sortProperties(m.Value)
		case "items", "contains", "additionalItems", "additionalProperties":
			ms[i].Value = Canonicalize(m.Value)
		}
	}

	ms = moveToFront(ms, "definitions")
	ms = moveToFront(ms, "type")
	ms = moveToBack(ms, "summary")
	ms = moveToBack(ms, "description")

	return jsonvalue.Object(ms...)
}

// sortStrings sorts an array of strings. Non-string elements sort first and
// keep their relative order.
func sortStrings(v jsonvalue.Value) jsonvalue.Value {
	if v.Kind() != jsonvalue.KindArray {
		return v
	}

	items := v.Items()

	slices.SortStableFunc(items, func(a, b jsonvalue.Value) int {
		aStr := a.Kind() == jsonvalue.KindString
		bStr := b.Kind() == jsonvalue.KindString

		switch {
		case aStr && bStr:
			return cmp.Compare(a.Text(), b.Text())
		case aStr:
			return 1
		case bStr:
			return -1
		}

		return 0
	})

	return jsonvalue.Array(items...)
}

// sortEnum orders enum values: strings ordinally, then null, booleans,
// numbers by value, arrays and objects by their compact JSON text.
func sortEnum(v jsonvalue.Value) jsonvalue.Value {
	if v.Kind() != jsonvalue.KindArray {
		return v
	}

	items := v.Items()

	slices.SortStableFunc(items, compareEnum)

	return jsonvalue.Array(items...)
}

func compareEnum(a, b jsonvalue.Value) int {
	if c := cmp.Compare(enumRank(a.Kind()), enumRank(b.Kind())); c != 0 {
		return c
	}

	switch a.Kind() {
	case jsonvalue.KindNull:
		return 0
	case jsonvalue.KindString:
		return cmp.Compare(a.Text(), b.Text())
	case jsonvalue.KindNumber:
		ra, okA := a.Rat()
		rb, okB := b.Rat()

		if okA && okB {
			if c := ra.Cmp(rb); c != 0 {
				return c
			}
		}

		return cmp.Compare(a.Text(), b.Text())
	}

	return cmp.Compare(a.String(), b.String())
}

func enumRank(k jsonvalue.Kind) int {
	switch k {
	case jsonvalue.KindString:
		return 0
	case jsonvalue.KindNull:
		return 1
	case jsonvalue.KindBool:
		return 2
	case jsonvalue.KindNumber:
		return 3
	case jsonvalue.KindArray:
		return 4
	}

	return 5
}

func sortProperties(v jsonvalue.Value) jsonvalue.Value {
	if v.Kind() != jsonvalue.KindObject {
		return v
	}

	ms := v.Members()

	slices.SortFunc(ms, func(a, b jsonvalue.Member) int {
		return cmp.Compare(a.Key, b.Key)
	})

	for i := range ms {
		ms[i].Value = Canonicalize(ms[i].Value)
	}

	return jsonvalue.Object(ms...)
}

func moveToFront(ms []jsonvalue.Member, key string) []jsonvalue.Member {
	i := slices.IndexFunc(ms, func(m jsonvalue.Member) bool { return m.Key == key })
	if i <= 0 {
		return ms
	}

	m := ms[i]
	ms = slices.Delete(ms, i, i+1)

	return slices.Insert(ms, 0, m)
}

func moveToBack(ms []jsonvalue.Member, key string) []jsonvalue.Member {
	i := slices.IndexFunc(ms, func(m jsonvalue.Member) bool { return m.Key == key })
	if i < 0 || i == len(ms)-1 {
		return ms
	}

	m := ms[i]
	ms = slices.Delete(ms, i, i+1)

	return append(ms, m)
}
