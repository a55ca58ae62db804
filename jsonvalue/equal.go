package jsonvalue

// Equal reports whether a and b are the same JSON value.
//
// Numbers compare by exact decimal value, so 1, 1.0 and 1e0 are equal.
// Object members compare regardless of order. Arrays compare element-wise.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindString:
		return a.text == b.text
	case KindNumber:
		return numbersEqual(a.text, b.text)
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}

		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}

		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}

		return true
	}

	return false
}

// Contains reports whether any element of values is [Equal] to v.
func Contains(values []Value, v Value) bool {
	for _, e := range values {
		if Equal(e, v) {
			return true
		}
	}

	return false
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}

	ra, okA := parseRat(a)
	rb, okB := parseRat(b)

	return okA && okB && ra.Cmp(rb) == 0
}
