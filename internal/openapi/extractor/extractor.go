package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/grid"
	"github.com/goliatone/go-paramgrid/pkg/openapigrid"
)

// Extractor implements openapigrid.Deriver using kin-openapi.
type Extractor struct {
	options openapigrid.Options
}

// Ensure the implementation satisfies the public interface.
var _ openapigrid.Deriver = (*Extractor)(nil)

// New constructs an Extractor with the given options.
func New(options openapigrid.Options) openapigrid.Deriver {
	return &Extractor{options: options}
}

// Derive loads doc and converts the named component schema into a grid.
// Properties are visited in name order because kin-openapi exposes them as a
// Go map.
func (e *Extractor) Derive(ctx context.Context, doc document.Document, name string) (*grid.Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapigrid: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: e.options.ResolveReferences,
	}
	var (
		api *openapi3.T
		err error
	)
	if base := baseLocation(doc); base != nil {
		api, err = loader.LoadFromDataWithPath(raw, base)
	} else {
		api, err = loader.LoadFromData(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("openapigrid: load document: %w", err)
	}
	if api.Components == nil || len(api.Components.Schemas) == 0 {
		return nil, errors.New("openapigrid: document does not define component schemas")
	}

	ref, ok := api.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapigrid: schema %q not found", name)
	}

	out := grid.NewMap()
	if err := e.collect(out, ref.Value, grid.Path{name}, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// baseLocation anchors relative $ref targets to where the document was read
// from. fs.FS entries have no location kin-openapi can follow.
func baseLocation(doc document.Document) *url.URL {
	if doc.Source() == nil {
		return nil
	}
	switch doc.Source().Kind() {
	case document.SourceKindFile:
		abs, err := filepath.Abs(doc.Location())
		if err != nil {
			return nil
		}
		return &url.URL{Path: filepath.ToSlash(abs)}
	case document.SourceKindURL:
		u, err := url.Parse(doc.Location())
		if err != nil {
			return nil
		}
		return u
	}
	return nil
}

func (e *Extractor) collect(out *grid.Map, schema *openapi3.Schema, path grid.Path, depth int) error {
	if depth >= e.options.MaxDepth {
		return nil
	}

	for _, member := range schema.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		if err := e.collect(out, member.Value, path, depth+1); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		names = append(names, propName)
	}
	slices.Sort(names)

	for _, propName := range names {
		ref := schema.Properties[propName]
		if ref == nil || ref.Value == nil {
			continue
		}
		value, ok, err := e.property(ref.Value, path.Child(propName), depth)
		if err != nil {
			return err
		}
		if ok {
			out.Set(propName, value)
		}
	}
	return nil
}

func (e *Extractor) property(prop *openapi3.Schema, path grid.Path, depth int) (any, bool, error) {
	if raw, ok := prop.Extensions[e.options.ExtensionKey]; ok {
		candidates, ok := raw.([]any)
		if !ok || len(candidates) == 0 {
			return nil, false, fmt.Errorf("openapigrid: %s: %s must be a non-empty array", path, e.options.ExtensionKey)
		}
		return append([]any(nil), candidates...), true, nil
	}

	switch {
	case len(prop.Enum) > 0:
		return append([]any(nil), prop.Enum...), true, nil
	case prop.Type.Is("boolean"):
		if e.options.SkipBooleans {
			return nil, false, nil
		}
		return []any{true, false}, true, nil
	case prop.Type.Is("object") || len(prop.Properties) > 0 || len(prop.AllOf) > 0:
		nested := grid.NewMap()
		if err := e.collect(nested, prop, path, depth+1); err != nil {
			return nil, false, err
		}
		if nested.Len() == 0 {
			return nil, false, nil
		}
		return nested, true, nil
	default:
		return nil, false, nil
	}
}
