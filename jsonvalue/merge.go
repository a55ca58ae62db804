package jsonvalue

import "go.jacobcolvin.com/schemamerge/diag"

// Merge combines source into target and returns the result. Neither input
// is modified. See the package documentation for the rules.
func Merge(source, target Value) (Value, error) {
	return MergeAt(nil, source, target)
}

// MergeAt is [Merge] with errors reported relative to path.
func MergeAt(path diag.Path, source, target Value) (Value, error) {
	if source.kind != target.kind {
		return Value{}, &TypeConflictError{Path: path, Source: source.kind, Target: target.kind}
	}

	switch source.kind {
	case KindObject:
		return mergeObject(path, source, target)

	case KindArray:
		return mergeArray(source, target), nil

	case KindNull:
		return target, nil
	}

	if !Equal(source, target) {
		return Value{}, &ValueConflictError{Path: path, Source: source, Target: target}
	}

	return target, nil
}

func mergeObject(path diag.Path, source, target Value) (Value, error) {
	members := make([]Member, len(target.members), len(target.members)+len(source.members))
	copy(members, target.members)

	index := make(map[string]int, len(members))
	for i, m := range members {
		index[m.Key] = i
	}

	for _, m := range source.members {
		i, ok := index[m.Key]
		if !ok {
			index[m.Key] = len(members)
			members = append(members, m)

			continue
		}

		merged, err := MergeAt(path.Child(diag.Key(m.Key)), m.Value, members[i].Value)
		if err != nil {
			return Value{}, err
		}

		members[i].Value = merged
	}

	return Value{kind: KindObject, members: members}, nil
}

// mergeArray appends source elements that do not already appear in the
// result, so duplicates within source collapse too.
func mergeArray(source, target Value) Value {
	items := make([]Value, len(target.items), len(target.items)+len(source.items))
	copy(items, target.items)

	for _, item := range source.items {
		if !Contains(items, item) {
			items = append(items, item)
		}
	}

	return Value{kind: KindArray, items: items}
}
