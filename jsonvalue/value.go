package jsonvalue

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
)

// Kind identifies the JSON type of a [Value].
type Kind uint8

// JSON kinds. The zero [Value] has [KindNull].
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON Schema name of k, e.g. "boolean" or "object".
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Member is one key/value pair of an object [Value].
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero value is JSON null.
//
// Values are safe to copy and share: no exported operation mutates a Value
// after construction.
type Value struct {
	text    string
	items   []Value
	members []Member
	kind    Kind
	boolean bool
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Int returns a JSON number holding i.
func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Number returns a JSON number written as literal. The literal must be a
// decimal number, optionally with a fraction and exponent.
func Number(literal string) (Value, error) {
	if _, ok := parseRat(literal); !ok {
		return Value{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalid, literal)
	}

	return Value{kind: KindNumber, text: literal}, nil
}

// Array returns a JSON array of items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

// Object returns a JSON object of members in the given order. If a key
// repeats, the last value wins and keeps the position of the first.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))

	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value

			continue
		}

		index[m.Key] = len(out)
		out = append(out, m)
	}

	return Value{kind: KindObject, members: out}
}

// Kind returns the JSON kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean held by v, or false if v is not a boolean.
func (v Value) Bool() bool {
	return v.boolean
}

// Text returns the contents of a string, or the literal of a number.
// It returns an empty string for any other kind.
func (v Value) Text() string {
	return v.text
}

// Rat returns the exact value of a number.
func (v Value) Rat() (*big.Rat, bool) {
	if v.kind != KindNumber {
		return nil, false
	}

	return parseRat(v.text)
}

// Int64 returns the value of a number that is an integer fitting in int64.
func (v Value) Int64() (int64, bool) {
	r, ok := v.Rat()
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}

	return r.Num().Int64(), true
}

// Len returns the number of array items or object members, or zero.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}

	return 0
}

// Items returns a copy of the items of an array.
func (v Value) Items() []Value {
	return slices.Clone(v.items)
}

// Members returns a copy of the members of an object, in order.
func (v Value) Members() []Member {
	return slices.Clone(v.members)
}

// Keys returns the member keys of an object, in order.
func (v Value) Keys() []string {
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}

	return keys
}

// Get returns the value of the object member named key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}

	return Value{}, false
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	out, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}

	return string(out)
}

func parseRat(literal string) (*big.Rat, bool) {
	if !isDecimal(literal) {
		return nil, false
	}

	return new(big.Rat).SetString(literal)
}

// isDecimal reports whether s matches the JSON number grammar. Rat.SetString
// alone would also accept fractions and base prefixes.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}

		return i - start
	}

	switch n := digits(); {
	case n == 0:
		return false
	case n > 1 && s[i-n] == '0':
		return false
	}

	if i < len(s) && s[i] == '.' {
		i++

		if digits() == 0 {
			return false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++

		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}

		if digits() == 0 {
			return false
		}
	}

	return i == len(s)
}
