package extractor_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgrid/internal/openapi/extractor"
	"github.com/goliatone/go-paramgrid/pkg/document"
	"github.com/goliatone/go-paramgrid/pkg/grid"
	"github.com/goliatone/go-paramgrid/pkg/openapigrid"
)

func loadDocument(t *testing.T) document.Document {
	t.Helper()
	return loadFixture(t, "training.yaml")
}

func loadFixture(t *testing.T, name string) document.Document {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return document.MustNewDocument(document.SourceFromFile(path), data)
}

func TestExtractor_Derive(t *testing.T) {
	deriver := extractor.New(openapigrid.NewOptions())

	m, err := deriver.Derive(context.Background(), loadDocument(t), "TrainingConfig")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	want := map[string]any{
		"optimizer": map[string]any{
			"lr":   []any{0.1, 0.01},
			"name": []any{"sgd", "adam"},
		},
		"shuffle": []any{true, false},
	}
	if diff := cmp.Diff(want, m.ToNative()); diff != "" {
		t.Fatalf("derived grid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"optimizer", "shuffle"}, m.Keys()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	g, err := grid.New(m)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	if g.Len() != 8 {
		t.Fatalf("expected 8 combinations, got %d", g.Len())
	}
}

func TestExtractor_WithoutBooleans(t *testing.T) {
	deriver := extractor.New(openapigrid.NewOptions(openapigrid.WithoutBooleans()))

	m, err := deriver.Derive(context.Background(), loadDocument(t), "TrainingConfig")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if _, ok := m.Get("shuffle"); ok {
		t.Fatalf("boolean property should be skipped: %s", m)
	}
}

func TestExtractor_Errors(t *testing.T) {
	deriver := extractor.New(openapigrid.NewOptions())
	doc := loadDocument(t)

	if _, err := deriver.Derive(context.Background(), doc, "Missing"); err == nil || !strings.Contains(err.Error(), `schema "Missing" not found`) {
		t.Fatalf("expected missing schema error, got %v", err)
	}

	_, err := deriver.Derive(context.Background(), doc, "Broken")
	if err == nil || !strings.Contains(err.Error(), "Broken.mode: x-paramgrid must be a non-empty array") {
		t.Fatalf("expected extension error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := deriver.Derive(ctx, doc, "TrainingConfig"); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}

// childDepth counts how many levels of "child" the derived tree holds.
func childDepth(m *grid.Map) int {
	depth := 1
	for {
		next, ok := m.Get("child")
		if !ok {
			return depth
		}
		m = next.(*grid.Map)
		depth++
	}
}

func TestExtractor_SelfReferencingSchema(t *testing.T) {
	doc := loadFixture(t, "tree.yaml")

	m, err := extractor.New(openapigrid.NewOptions()).Derive(context.Background(), doc, "Node")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if got := childDepth(m); got != openapigrid.DefaultMaxDepth {
		t.Fatalf("expected recursion to stop at %d levels, got %d", openapigrid.DefaultMaxDepth, got)
	}

	shallow, err := extractor.New(openapigrid.NewOptions(openapigrid.WithMaxDepth(2))).Derive(context.Background(), doc, "Node")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	want := map[string]any{
		"split": []any{"gini", "entropy"},
		"child": map[string]any{"split": []any{"gini", "entropy"}},
	}
	if diff := cmp.Diff(want, shallow.ToNative()); diff != "" {
		t.Fatalf("depth-limited grid mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_WithExtensionKey(t *testing.T) {
	doc := loadFixture(t, "tree.yaml")

	m, err := extractor.New(openapigrid.NewOptions()).Derive(context.Background(), doc, "Tuned")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"bootstrap": []any{true}}, m.ToNative()); diff != "" {
		t.Fatalf("default key mismatch (-want +got):\n%s", diff)
	}

	custom, err := extractor.New(openapigrid.NewOptions(openapigrid.WithExtensionKey("x-sweep"))).Derive(context.Background(), doc, "Tuned")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	want := map[string]any{
		"bootstrap": []any{true, false},
		"criterion": []any{"gini", "entropy"},
	}
	if diff := cmp.Diff(want, custom.ToNative()); diff != "" {
		t.Fatalf("custom key mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_ExternalReferences(t *testing.T) {
	doc := loadFixture(t, "scheduled.yaml")

	_, err := extractor.New(openapigrid.NewOptions()).Derive(context.Background(), doc, "Scheduled")
	if err == nil || !strings.Contains(err.Error(), "disallowed external reference") {
		t.Fatalf("expected external refs to be refused by default, got %v", err)
	}

	m, err := extractor.New(openapigrid.NewOptions(openapigrid.WithExternalReferences())).Derive(context.Background(), doc, "Scheduled")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	want := map[string]any{"schedule": map[string]any{"policy": []any{"cosine", "step"}}}
	if diff := cmp.Diff(want, m.ToNative()); diff != "" {
		t.Fatalf("external grid mismatch (-want +got):\n%s", diff)
	}
}
