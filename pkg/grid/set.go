package grid

import (
	"fmt"
	"iter"
	"math"
)

// Set concatenates the combinations of several grids, which lets callers
// skip combinations that make no sense together by splitting them into
// separate grids.
type Set struct {
	grids []*ParameterGrid
	total int
}

// NewSet builds one ParameterGrid per member. Member errors are wrapped with
// the member position and still match ErrInvalidGrid.
func NewSet(members ...*Map) (*Set, error) {
	set := &Set{grids: make([]*ParameterGrid, 0, len(members))}
	for i, member := range members {
		g, err := New(member)
		if err != nil {
			return nil, fmt.Errorf("paramgrid: grid %d: %w", i, err)
		}
		if set.total > math.MaxInt-g.Len() {
			return nil, &InvalidGridError{Reason: reasonOverflow}
		}
		set.total += g.Len()
		set.grids = append(set.grids, g)
	}
	return set, nil
}

// Len returns the total number of combinations across all members.
func (s *Set) Len() int {
	return s.total
}

// Grids returns the member grids in order.
func (s *Set) Grids() []*ParameterGrid {
	return append([]*ParameterGrid(nil), s.grids...)
}

// All yields the combinations of every member in order.
func (s *Set) All() iter.Seq[*Map] {
	return func(yield func(*Map) bool) {
		for _, g := range s.grids {
			for combination := range g.All() {
				if !yield(combination) {
					return
				}
			}
		}
	}
}

// At returns the i-th combination of the concatenated sequence.
func (s *Set) At(i int) (*Map, error) {
	if i < 0 || i >= s.total {
		return nil, &IndexError{Index: i, Len: s.total}
	}
	for _, g := range s.grids {
		if i < g.Len() {
			return g.At(i)
		}
		i -= g.Len()
	}
	return nil, &IndexError{Index: i, Len: s.total}
}
