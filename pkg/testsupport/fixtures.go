package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgrid/pkg/grid"
	"github.com/goliatone/go-paramgrid/pkg/gridfile"
)

// LoadGrid reads a YAML or JSON fixture into an ordered grid. Testing helpers
// fail the test on error to keep table tests concise.
func LoadGrid(t *testing.T, path string) *grid.Map {
	t.Helper()

	m, err := LoadGridFromPath(path)
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	return m
}

// LoadGridFromPath returns a grid without requiring testing.T.
func LoadGridFromPath(path string) (*grid.Map, error) {
	if path == "" {
		return nil, errors.New("testsupport: grid path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read grid: %w", err)
	}
	m, err := gridfile.Parse(data, gridfile.WithSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse grid: %w", err)
	}
	return m, nil
}

// Collect drains a combination sequence into a slice.
func Collect(seq iter.Seq[*grid.Map]) []*grid.Map {
	var out []*grid.Map
	for combination := range seq {
		out = append(out, combination)
	}
	return out
}

// CollectNative drains a combination sequence into native maps, which diff
// more readably with cmp.
func CollectNative(seq iter.Seq[*grid.Map]) []map[string]any {
	var out []map[string]any
	for combination := range seq {
		out = append(out, combination.ToNative())
	}
	return out
}

// WriteGolden writes arbitrary data as indented JSON when UPDATE_GOLDENS is
// set. Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := MarshalGolden(value)
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MarshalGolden renders value the way WriteGolden stores it.
func MarshalGolden(value any) ([]byte, error) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(payload, '\n'), nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}
