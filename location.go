package glintc

import "fmt"

// SourceLocation identifies a single point in a source file. It is
// copied by value and never mutated after construction.
type SourceLocation struct {
	File   string
	Line   int
	Column int
	Offset int
}

// NewSourceLocation builds a SourceLocation from its four components.
func NewSourceLocation(file string, line, column, offset int) SourceLocation {
	return SourceLocation{File: file, Line: line, Column: column, Offset: offset}
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Zero reports whether the location carries no useful information,
// which happens for synthetic nodes created by the generic engine.
func (l SourceLocation) Zero() bool {
	return l == SourceLocation{}
}
