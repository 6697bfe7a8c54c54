package paramgrid

import (
	internalLoader "github.com/goliatone/go-paramgrid/internal/loader"
	"github.com/goliatone/go-paramgrid/internal/openapi/extractor"
	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/openapigrid"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...document.LoaderOption) document.Loader {
	cfg := document.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewDeriver constructs an OpenAPI deriver backed by kin-openapi.
func NewDeriver(options ...openapigrid.Option) openapigrid.Deriver {
	cfg := openapigrid.NewOptions(options...)
	return extractor.New(cfg)
}
