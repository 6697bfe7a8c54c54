// Package paramgrid expands nested parameter grids into every combination of
// their values. The root package is the quick-start surface: it re-exports the
// core types from pkg/grid and wires the document loader, the YAML/JSON
// decoder, and the OpenAPI deriver together.
//
//	g, err := paramgrid.New(paramgrid.Of(
//		"lr", []float64{0.1, 0.01},
//		"model", paramgrid.Of("width", []int{64, 128}),
//	))
//	for combination := range g.All() {
//		run(combination)
//	}
package paramgrid

import (
	"context"

	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/grid"
	"github.com/goliatone/go-paramgrid/pkg/gridfile"
	"github.com/goliatone/go-paramgrid/pkg/openapigrid"
)

// Map is the insertion-ordered mapping used for grids and combinations.
type Map = grid.Map

// Path locates a value inside a grid, root key first.
type Path = grid.Path

// Leaf pairs a choice list with its path.
type Leaf = grid.Leaf

// ParameterGrid enumerates the combinations of one grid.
type ParameterGrid = grid.ParameterGrid

// Set concatenates the combinations of several grids.
type Set = grid.Set

// InvalidGridError is returned when a grid cannot be expanded.
type InvalidGridError = grid.InvalidGridError

// IndexError is returned by At for out-of-range indices.
type IndexError = grid.IndexError

var (
	// ErrInvalidGrid matches every InvalidGridError.
	ErrInvalidGrid = grid.ErrInvalidGrid
	// ErrIndexOutOfRange matches every IndexError.
	ErrIndexOutOfRange = grid.ErrIndexOutOfRange
)

// New validates m and returns its ParameterGrid.
func New(m *Map) (*ParameterGrid, error) {
	return grid.New(m)
}

// NewSet builds a grid set from several grids.
func NewSet(members ...*Map) (*Set, error) {
	return grid.NewSet(members...)
}

// Of builds a Map from alternating key/value arguments.
func Of(pairs ...any) *Map {
	return grid.Of(pairs...)
}

// FromMap builds a ParameterGrid from a native Go map. Keys are sorted since
// Go maps carry no declaration order; use Of or a grid document when order
// matters.
func FromMap(native any) (*ParameterGrid, error) {
	m, err := grid.FromMap(native)
	if err != nil {
		return nil, err
	}
	return grid.New(m)
}

// Parse decodes a YAML or JSON grid document and validates it.
func Parse(data []byte, options ...gridfile.Option) (*ParameterGrid, error) {
	m, err := gridfile.Parse(data, options...)
	if err != nil {
		return nil, err
	}
	return grid.New(m)
}

// ParseSet decodes a document holding one grid or a sequence of grids.
func ParseSet(data []byte, options ...gridfile.Option) (*Set, error) {
	members, err := gridfile.ParseSet(data, options...)
	if err != nil {
		return nil, err
	}
	return grid.NewSet(members...)
}

// Load fetches a grid document from src and validates it.
func Load(ctx context.Context, src document.Source, options ...document.LoaderOption) (*ParameterGrid, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return Parse(doc.Raw(), documentOptions(doc)...)
}

// LoadSet fetches a document holding one grid or a sequence of grids.
func LoadSet(ctx context.Context, src document.Source, options ...document.LoaderOption) (*Set, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return ParseSet(doc.Raw(), documentOptions(doc)...)
}

func documentOptions(doc document.Document) []gridfile.Option {
	return []gridfile.Option{
		gridfile.WithSourceName(doc.Location()),
		gridfile.WithFormat(doc.Format()),
	}
}

// FromOpenAPI derives a grid from the named component schema of an OpenAPI 3
// document and validates it.
func FromOpenAPI(ctx context.Context, doc document.Document, schema string, options ...openapigrid.Option) (*ParameterGrid, error) {
	m, err := NewDeriver(options...).Derive(ctx, doc, schema)
	if err != nil {
		return nil, err
	}
	return grid.New(m)
}
