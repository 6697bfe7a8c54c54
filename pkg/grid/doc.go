// Package grid expands nested parameter grids into every concrete combination
// of their values. A grid is an insertion-ordered Map whose leaves are choice
// lists (any Go slice or array of candidates) or further nested Maps. The
// Flattener records every choice list with its key path, a mixed-radix Counter
// walks the Cartesian product with the last discovered leaf varying fastest,
// and the Unflattener rebuilds a fresh Map per index tuple so each
// combination keeps the nested shape of the grid it came from.
//
// Validation happens once in New. A ParameterGrid that was constructed
// successfully never fails during iteration and can be iterated any number of
// times, concurrently if needed.
package grid
