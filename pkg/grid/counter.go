package grid

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

var errCountOverflow = errors.New(reasonOverflow)

// Counter is a mixed-radix counter: digit i counts from 0 to radices[i]-1 and
// the last digit turns fastest. Its sequence of digit tuples is the
// Cartesian product of the candidate lists in declaration order.
type Counter struct {
	radices []int
	total   int
}

// NewCounter validates the radices and precomputes the number of tuples. A
// counter without digits has exactly one (empty) tuple.
func NewCounter(radices []int) (Counter, error) {
	total := 1
	for i, radix := range radices {
		if radix <= 0 {
			return Counter{}, fmt.Errorf("grid: radix %d at digit %d must be positive", radix, i)
		}
		if total > math.MaxInt/radix {
			return Counter{}, errCountOverflow
		}
		total *= radix
	}
	return Counter{radices: append([]int(nil), radices...), total: total}, nil
}

// Len returns the number of tuples the counter produces.
func (c Counter) Len() int {
	return c.total
}

// Digits returns the number of digits.
func (c Counter) Digits() int {
	return len(c.radices)
}

// Increment advances digits in place. It returns false once the counter wraps
// around past its last tuple.
func (c Counter) Increment(digits []int) bool {
	for i := len(c.radices) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < c.radices[i] {
			return true
		}
		digits[i] = 0
	}
	return false
}

// Decode returns the digits of the n-th tuple. n must be in [0, Len()).
func (c Counter) Decode(n int) []int {
	digits := make([]int, len(c.radices))
	for i := len(c.radices) - 1; i >= 0; i-- {
		digits[i] = n % c.radices[i]
		n /= c.radices[i]
	}
	return digits
}

// All yields every tuple in order. The yielded slice is reused between
// iterations; callers that keep it must copy it.
func (c Counter) All() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if c.total == 0 {
			return
		}
		digits := make([]int, len(c.radices))
		for {
			if !yield(digits) {
				return
			}
			if !c.Increment(digits) {
				return
			}
		}
	}
}
