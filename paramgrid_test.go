package paramgrid_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgrid"
	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/gridfile"
	"github.com/goliatone/go-paramgrid/pkg/testsupport"
)

var nestedExample = []map[string]any{
	{"a": 1, "b": map[string]any{"c": true}},
	{"a": 1, "b": map[string]any{"c": false}},
	{"a": 2, "b": map[string]any{"c": true}},
	{"a": 2, "b": map[string]any{"c": false}},
}

func TestNew(t *testing.T) {
	g, err := paramgrid.New(paramgrid.Of(
		"a", []int{1, 2},
		"b", paramgrid.Of("c", []bool{true, false}),
	))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff(nestedExample, testsupport.CollectNative(g.All())); diff != "" {
		t.Fatalf("combinations mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := paramgrid.New(paramgrid.Of("a", []int{})); !errors.Is(err, paramgrid.ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for empty list, got %v", err)
	}
	if _, err := paramgrid.New(paramgrid.Of("a", 5)); !errors.Is(err, paramgrid.ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for scalar, got %v", err)
	}
}

func TestFromMap(t *testing.T) {
	g, err := paramgrid.FromMap(map[string]any{
		"b": map[string]any{"c": []bool{true, false}},
		"a": []int{1, 2},
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if diff := cmp.Diff(nestedExample, testsupport.CollectNative(g.All())); diff != "" {
		t.Fatalf("combinations mismatch (-want +got):\n%s", diff)
	}

	_, err = paramgrid.FromMap(5)
	var invalid *paramgrid.InvalidGridError
	if !errors.As(err, &invalid) || !errors.Is(err, paramgrid.ErrInvalidGrid) {
		t.Fatalf("expected *InvalidGridError for scalar input, got %v", err)
	}
	if invalid.Value != 5 {
		t.Fatalf("expected offending value 5, got %v", invalid.Value)
	}
}

func TestLoad(t *testing.T) {
	g, err := paramgrid.Load(context.Background(), document.SourceFromFile(filepath.Join("testdata", "sweep.yaml")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(nestedExample, testsupport.CollectNative(g.All())); diff != "" {
		t.Fatalf("combinations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSet_FS(t *testing.T) {
	files := fstest.MapFS{
		"kernels.json": {Data: []byte(`[{"kernel": ["linear"]}, {"kernel": ["rbf"], "gamma": [1, 10]}]`)},
	}
	set, err := paramgrid.LoadSet(context.Background(), document.SourceFromFS("kernels.json"), document.WithFileSystem(files))
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("expected 3 combinations, got %d", set.Len())
	}
	second, err := set.At(1)
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	want := map[string]any{"kernel": "rbf", "gamma": 1}
	if diff := cmp.Diff(want, second.ToNative()); diff != "" {
		t.Fatalf("combination mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Diagnostics(t *testing.T) {
	files := fstest.MapFS{
		"broken.json": {Data: []byte(`{"a": [1, 2}`)},
		"loop.yaml":   {Data: []byte("a: &x [1, *x]\n")},
	}

	_, err := paramgrid.Load(context.Background(), document.SourceFromFS("broken.json"), document.WithFileSystem(files))
	if err == nil || !strings.Contains(err.Error(), "broken.json as JSON") {
		t.Fatalf("expected a JSON diagnostic naming the document, got %v", err)
	}

	_, err = paramgrid.Load(context.Background(), document.SourceFromFS("loop.yaml"), document.WithFileSystem(files))
	var syntaxErr *gridfile.SyntaxError
	if !errors.As(err, &syntaxErr) || syntaxErr.Source != "loop.yaml" {
		t.Fatalf("expected *SyntaxError for loop.yaml, got %v", err)
	}
}

func TestFromOpenAPI(t *testing.T) {
	payload := []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {},
  "components": {"schemas": {"Job": {
    "type": "object",
    "properties": {
      "priority": {"type": "string", "enum": ["low", "high"]},
      "retry": {"type": "boolean"}
    }
  }}}
}`)
	doc := document.MustNewDocument(document.SourceFromFile("job.json"), payload)

	g, err := paramgrid.FromOpenAPI(context.Background(), doc, "Job")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if g.Len() != 4 {
		t.Fatalf("expected 4 combinations, got %d", g.Len())
	}
	first, _ := g.At(0)
	want := map[string]any{"priority": "low", "retry": true}
	if diff := cmp.Diff(want, first.ToNative()); diff != "" {
		t.Fatalf("combination mismatch (-want +got):\n%s", diff)
	}
}
