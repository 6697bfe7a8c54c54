package grid

// Unflatten builds one combination: it clones the mapping structure of shape
// and writes leaves[i].Candidates[indices[i]] at leaves[i].Path. Candidates are
// placed verbatim; they are never cloned or expanded.
func Unflatten(shape *Map, leaves []Leaf, indices []int) *Map {
	out := shape.Clone()
	for i, leaf := range leaves {
		setPath(out, leaf.Path, leaf.Candidates[indices[i]])
	}
	return out
}

// setPath writes value at path, creating intermediate Maps that are missing
// and replacing intermediate values that are not Maps.
func setPath(root *Map, path Path, value any) {
	if len(path) == 0 {
		return
	}
	current := root
	for _, key := range path[:len(path)-1] {
		next, ok := current.values[key].(*Map)
		if !ok {
			next = NewMap()
			current.Set(key, next)
		}
		current = next
	}
	current.Set(path[len(path)-1], value)
}
