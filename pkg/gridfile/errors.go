package gridfile

import "fmt"

// SyntaxError reports a structural problem at a position in the document.
type SyntaxError struct {
	Source  string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("gridfile: %s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("gridfile: line %d column %d: %s", e.Line, e.Column, e.Message)
}
