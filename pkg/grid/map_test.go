package grid_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgrid/pkg/grid"
)

func TestMap_SetKeepsFirstPosition(t *testing.T) {
	m := grid.Of("b", 1, "a", 2)
	m.Set("b", 3).Set("c", 4)

	if diff := cmp.Diff([]any{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if value, _ := m.Get("b"); value != 3 {
		t.Fatalf("expected overwritten value 3, got %v", value)
	}
}

func TestMap_CloneIsStructural(t *testing.T) {
	shared := []int{1, 2}
	original := grid.Of("list", shared, "nested", grid.Of("x", 1))
	clone := original.Clone()

	nested, _ := clone.Get("nested")
	nested.(*grid.Map).Set("x", 2)
	if value, _ := original.Lookup(grid.Path{"nested", "x"}); value != 1 {
		t.Fatalf("clone shares nested map with original")
	}

	list, _ := clone.Get("list")
	if &list.([]int)[0] != &shared[0] {
		t.Fatalf("clone should share non-map values")
	}
}

func TestMap_Equal(t *testing.T) {
	a := grid.Of("x", 1, "y", grid.Of("z", []int{1}))
	b := grid.Of("x", 1, "y", grid.Of("z", []int{1}))
	c := grid.Of("y", grid.Of("z", []int{1}), "x", 1)

	if !a.Equal(b) {
		t.Fatalf("expected maps to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("maps with different key order should differ")
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("cmp should use Equal (-a +b):\n%s", diff)
	}
}

func TestMap_MarshalJSONPreservesOrder(t *testing.T) {
	m := grid.Of("zeta", 1, "alpha", grid.Of("b", true, "a", "s"))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":1,"alpha":{"b":true,"a":"s"}}`
	if string(data) != want {
		t.Fatalf("json mismatch:\nwant %s\ngot  %s", want, data)
	}
}

func TestMap_String(t *testing.T) {
	m := grid.Of("a", 1, "b", grid.Of("c", true))
	if got, want := m.String(), "{a: 1, b: {c: true}}"; got != want {
		t.Fatalf("string mismatch: want %q, got %q", want, got)
	}
}

func TestFromMap(t *testing.T) {
	m, err := grid.FromMap(map[string]any{
		"b": []int{1},
		"a": map[string]any{"d": []int{2}, "c": []int{3}},
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if diff := cmp.Diff([]any{"a", "b"}, m.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	nested, _ := m.Get("a")
	if diff := cmp.Diff([]any{"c", "d"}, nested.(*grid.Map).Keys()); diff != "" {
		t.Fatalf("nested key order mismatch (-want +got):\n%s", diff)
	}

	numeric, err := grid.FromMap(map[int][]string{10: {"x"}, 2: {"y"}})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if diff := cmp.Diff([]any{2, 10}, numeric.Keys()); diff != "" {
		t.Fatalf("numeric keys should sort by value (-want +got):\n%s", diff)
	}

	_, err = grid.FromMap(5)
	if !errors.Is(err, grid.ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for non-map input, got %v", err)
	}
	if want := "paramgrid: invalid grid: expected a mapping (got int)"; err.Error() != want {
		t.Fatalf("message mismatch:\nwant %s\ngot  %s", want, err.Error())
	}
	if _, err := grid.FromMap([]int{1}); !errors.Is(err, grid.ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for slice input, got %v", err)
	}
}

func TestPath(t *testing.T) {
	root := grid.Path{"model"}
	child := root.Child("lr")
	sibling := root.Child("momentum")

	if child.String() != "model.lr" || sibling.String() != "model.momentum" {
		t.Fatalf("child paths alias each other: %s, %s", child, sibling)
	}
	if grid.Path(nil).String() != "" {
		t.Fatalf("empty path should render as empty string")
	}
}
