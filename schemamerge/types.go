package schemamerge

import "strings"

// Type is a single JSON Schema type tag.
type Type uint8

// Type tags, declared in lexicographic order of their names so that
// [TypeSet.Names] is sorted.
const (
	TypeArray Type = 1 << iota
	TypeBoolean
	TypeInteger
	TypeNull
	TypeNumber
	TypeObject
	TypeString
)

var typeNames = []struct {
	name string
	typ  Type
}{
	{"array", TypeArray},
	{"boolean", TypeBoolean},
	{"integer", TypeInteger},
	{"null", TypeNull},
	{"number", TypeNumber},
	{"object", TypeObject},
	{"string", TypeString},
}

// ParseType returns the [Type] named name.
func ParseType(name string) (Type, bool) {
	for _, tn := range typeNames {
		if tn.name == name {
			return tn.typ, true
		}
	}

	return 0, false
}

// String returns the JSON Schema name of t.
func (t Type) String() string {
	for _, tn := range typeNames {
		if tn.typ == t {
			return tn.name
		}
	}

	return "unknown"
}

// TypeSet is a set of [Type] tags. The zero value is empty, which means a
// schema is unconstrained by type.
type TypeSet uint8

// Types returns a [TypeSet] holding ts.
func Types(ts ...Type) TypeSet {
	var s TypeSet
	for _, t := range ts {
		s |= TypeSet(t)
	}

	return s
}

// Has reports whether s contains t.
func (s TypeSet) Has(t Type) bool {
	return s&TypeSet(t) != 0
}

// IsEmpty reports whether s holds no types.
func (s TypeSet) IsEmpty() bool {
	return s == 0
}

// Union returns the union of s and o.
func (s TypeSet) Union(o TypeSet) TypeSet {
	return s | o
}

// Names returns the sorted type names in s.
func (s TypeSet) Names() []string {
	var names []string

	for _, tn := range typeNames {
		if s.Has(tn.typ) {
			names = append(names, tn.name)
		}
	}

	return names
}

func (s TypeSet) String() string {
	return "[" + strings.Join(s.Names(), ",") + "]"
}
