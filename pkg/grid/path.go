package grid

import (
	"fmt"
	"strings"
)

// Path locates a value inside a grid, root key first.
type Path []any

// String renders the path as dotted segments, e.g. "model.optimizer.lr".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, key := range p {
		parts[i] = fmt.Sprint(key)
	}
	return strings.Join(parts, ".")
}

// Child returns a new path extended with key. The receiver is never aliased.
func (p Path) Child(key any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Leaf pairs the location of a choice list with its candidates.
type Leaf struct {
	Path       Path
	Candidates []any
}

func (l Leaf) clone() Leaf {
	return Leaf{
		Path:       append(Path(nil), l.Path...),
		Candidates: append([]any(nil), l.Candidates...),
	}
}
