package openapigrid

import (
	"context"

	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/grid"
)

// DefaultExtensionKey is the schema extension holding explicit candidates.
const DefaultExtensionKey = "x-paramgrid"

// DefaultMaxDepth bounds recursion through self-referencing schemas.
const DefaultMaxDepth = 16

// Deriver turns a named component schema into a grid.
type Deriver interface {
	Derive(ctx context.Context, doc document.Document, schema string) (*grid.Map, error)
}

// Options configures a Deriver.
type Options struct {
	// ExtensionKey names the property extension listing explicit candidates.
	ExtensionKey string

	// SkipBooleans leaves boolean properties without enum or extension out of
	// the grid instead of sweeping [true, false].
	SkipBooleans bool

	// MaxDepth caps how deep nested object properties are followed.
	MaxDepth int

	// ResolveReferences allows external $ref resolution while loading.
	ResolveReferences bool
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithExtensionKey overrides DefaultExtensionKey.
func WithExtensionKey(key string) Option {
	return func(opts *Options) {
		if key != "" {
			opts.ExtensionKey = key
		}
	}
}

// WithoutBooleans disables the implicit [true, false] sweep.
func WithoutBooleans() Option {
	return func(opts *Options) {
		opts.SkipBooleans = true
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		if depth > 0 {
			opts.MaxDepth = depth
		}
	}
}

// WithExternalReferences enables external $ref resolution.
func WithExternalReferences() Option {
	return func(opts *Options) {
		opts.ResolveReferences = true
	}
}

// NewOptions applies options on top of the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{
		ExtensionKey: DefaultExtensionKey,
		MaxDepth:     DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
