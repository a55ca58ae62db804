package diag

import "fmt"

// Position is a location in a source document. Line and Column are 1-based;
// a zero Line means the location is unknown.
type Position struct {
	Line   int
	Column int
}

// IsKnown reports whether p carries line information.
func (p Position) IsKnown() bool {
	return p.Line > 0
}

// String returns "(line,column)", or an empty string when p is unknown.
func (p Position) String() string {
	if !p.IsKnown() {
		return ""
	}

	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Suffix returns " at (line,column)" for use at the end of a message, or an
// empty string when p is unknown.
func (p Position) Suffix() string {
	if !p.IsKnown() {
		return ""
	}

	return " at " + p.String()
}
