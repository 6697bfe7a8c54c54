package grid_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramgrid/pkg/grid"
)

func TestCounter_Order(t *testing.T) {
	counter, err := grid.NewCounter([]int{2, 3})
	if err != nil {
		t.Fatalf("new counter: %v", err)
	}
	if counter.Len() != 6 {
		t.Fatalf("expected 6 tuples, got %d", counter.Len())
	}

	var got [][]int
	for digits := range counter.All() {
		got = append(got, append([]int(nil), digits...))
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tuple order mismatch (-want +got):\n%s", diff)
	}

	for i, tuple := range want {
		if diff := cmp.Diff(tuple, counter.Decode(i)); diff != "" {
			t.Fatalf("Decode(%d) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestCounter_NoDigits(t *testing.T) {
	counter, err := grid.NewCounter(nil)
	if err != nil {
		t.Fatalf("new counter: %v", err)
	}
	if counter.Len() != 1 {
		t.Fatalf("expected a single empty tuple, got %d", counter.Len())
	}
	count := 0
	for digits := range counter.All() {
		if len(digits) != 0 {
			t.Fatalf("expected empty tuple, got %v", digits)
		}
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 tuple, got %d", count)
	}
}

func TestCounter_RejectsNonPositiveRadix(t *testing.T) {
	if _, err := grid.NewCounter([]int{3, 0}); err == nil {
		t.Fatalf("expected error for zero radix")
	}
}
