package grid

import "iter"

// ParameterGrid enumerates every combination of a grid. It is immutable after
// New and safe for concurrent use.
type ParameterGrid struct {
	shape   *Map
	leaves  []Leaf
	counter Counter
}

// New flattens m once and validates it. It returns an *InvalidGridError when a
// node is neither a choice list nor a mapping, when a choice list is empty,
// when a mapping contains itself, or when the number of combinations
// overflows int. A nil or empty grid yields a single empty combination.
func New(m *Map) (*ParameterGrid, error) {
	shape, err := normalise(m)
	if err != nil {
		return nil, err
	}

	leaves, err := flatten(shape)
	if err != nil {
		return nil, err
	}

	radices := make([]int, len(leaves))
	for i, leaf := range leaves {
		radices[i] = len(leaf.Candidates)
	}
	counter, err := NewCounter(radices)
	if err != nil {
		return nil, &InvalidGridError{Reason: reasonOverflow}
	}

	return &ParameterGrid{shape: shape, leaves: leaves, counter: counter}, nil
}

// MustNew is like New but panics on error. Useful for tests and static grids.
func MustNew(m *Map) *ParameterGrid {
	g, err := New(m)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of combinations.
func (g *ParameterGrid) Len() int {
	return g.counter.Len()
}

// Leaves returns a copy of the flattened choice lists in discovery order.
func (g *ParameterGrid) Leaves() []Leaf {
	out := make([]Leaf, len(g.leaves))
	for i, leaf := range g.leaves {
		out[i] = leaf.clone()
	}
	return out
}

// All yields every combination in order. Each call starts a fresh traversal
// and each yielded Map is newly allocated.
func (g *ParameterGrid) All() iter.Seq[*Map] {
	return func(yield func(*Map) bool) {
		for digits := range g.counter.All() {
			if !yield(Unflatten(g.shape, g.leaves, digits)) {
				return
			}
		}
	}
}

// At returns the i-th combination without iterating the ones before it.
func (g *ParameterGrid) At(i int) (*Map, error) {
	if i < 0 || i >= g.Len() {
		return nil, &IndexError{Index: i, Len: g.Len()}
	}
	return Unflatten(g.shape, g.leaves, g.counter.Decode(i)), nil
}

// Iter returns a pull-style iterator over the combinations.
func (g *ParameterGrid) Iter() *Iterator {
	return &Iterator{grid: g}
}

// Iterator walks a ParameterGrid one combination at a time:
//
//	it := g.Iter()
//	for it.Next() {
//		use(it.Value())
//	}
type Iterator struct {
	grid    *ParameterGrid
	digits  []int
	started bool
	done    bool
	current *Map
}

// Next advances to the next combination and reports whether one exists.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		if it.grid.Len() == 0 {
			it.done = true
			return false
		}
		it.digits = make([]int, it.grid.counter.Digits())
	} else if !it.grid.counter.Increment(it.digits) {
		it.done = true
		it.current = nil
		return false
	}
	it.current = Unflatten(it.grid.shape, it.grid.leaves, it.digits)
	return true
}

// Value returns the combination produced by the last successful Next.
func (it *Iterator) Value() *Map {
	return it.current
}

// Index returns the position of Value in the sequence, or -1 before the
// first call to Next and after exhaustion.
func (it *Iterator) Index() int {
	if !it.started || it.done {
		return -1
	}
	index := 0
	for i, digit := range it.digits {
		index = index*it.grid.counter.radices[i] + digit
	}
	return index
}
