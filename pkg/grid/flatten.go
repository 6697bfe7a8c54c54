package grid

import "reflect"

// Flatten walks m depth-first in key insertion order and returns one Leaf per
// choice list. Nested native Go maps are accepted and visited in the order
// FromMap would give them. Empty mappings contribute nothing. A Map that
// contains itself is reported as an *InvalidGridError.
func Flatten(m *Map) ([]Leaf, error) {
	shape, err := normalise(m)
	if err != nil {
		return nil, err
	}
	return flatten(shape)
}

// flatten expects a normalised shape: every nested mapping is a *Map.
func flatten(shape *Map) ([]Leaf, error) {
	var leaves []Leaf
	if err := flattenInto(&leaves, nil, shape); err != nil {
		return nil, err
	}
	return leaves, nil
}

func flattenInto(leaves *[]Leaf, prefix Path, m *Map) error {
	for key, value := range m.All() {
		path := prefix.Child(key)

		if nested, ok := value.(*Map); ok {
			if err := flattenInto(leaves, path, nested); err != nil {
				return err
			}
			continue
		}

		candidates, ok := asChoiceList(value)
		if !ok {
			return &InvalidGridError{Path: path, Value: value, Reason: reasonUnsupported}
		}
		if len(candidates) == 0 {
			return &InvalidGridError{Path: path, Value: value, Reason: reasonEmptyList}
		}
		*leaves = append(*leaves, Leaf{Path: path, Candidates: candidates})
	}
	return nil
}

// asChoiceList reports whether value is a slice or array and copies its
// elements out as candidates. Strings are scalars, not lists.
func asChoiceList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return append([]any(nil), v...), true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// normalise clones the mapping structure of m, converting nested native maps
// into Maps so the Unflattener only ever walks *Map nodes.
func normalise(m *Map) (*Map, error) {
	return normaliseMap(nil, m, make(map[*Map]struct{}), newNativeGuard())
}

// normaliseMap tracks the Maps on the current descent in active. Shared
// subtrees are fine; a Map reached again from inside itself is a cycle.
func normaliseMap(path Path, m *Map, active map[*Map]struct{}, natives nativeGuard) (*Map, error) {
	if m == nil {
		return NewMap(), nil
	}
	if _, cycle := active[m]; cycle {
		return nil, &InvalidGridError{Path: path, Reason: reasonCycle}
	}
	active[m] = struct{}{}
	defer delete(active, m)

	out := NewMap()
	for key, value := range m.All() {
		child := path.Child(key)
		switch v := value.(type) {
		case *Map:
			nested, err := normaliseMap(child, v, active, natives)
			if err != nil {
				return nil, err
			}
			value = nested
		case nil:
		default:
			rv := reflect.ValueOf(value)
			if rv.Kind() != reflect.Map {
				break
			}
			converted, err := fromNative(rv, child, natives)
			if err != nil {
				return nil, err
			}
			// Native maps may still hold *Map values.
			nested, err := normaliseMap(child, converted, active, natives)
			if err != nil {
				return nil, err
			}
			value = nested
		}
		out.Set(key, value)
	}
	return out, nil
}
