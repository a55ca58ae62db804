package schemamerge

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/schemamerge/diag"
)

// Sentinel errors for schema merging.
var (
	ErrConflict        = errors.New("schema conflict")
	ErrUnsupported     = errors.New("unsupported schema construct")
	ErrInvalidDocument = errors.New("invalid schema document")
	ErrInvalidResult   = errors.New("invalid merged schema")
	ErrInvalidOption   = errors.New("invalid option")
	ErrReadInput       = errors.New("read input")
	ErrWriteOutput     = errors.New("write output")
)

// ConflictError reports a keyword for which two sources assert different
// values that cannot be reconciled.
//
// Position locates the schema in the document being merged in. It falls
// back to the accumulated schema's position only when that document carries
// none, as for a [Node] built in code.
type ConflictError struct {
	Source   any
	Target   any
	Keyword  string
	Position diag.Position
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict in schema%s in element %s: %s vs %s",
		e.Position.Suffix(),
		diag.Quote(diag.CamelCase(e.Keyword)),
		diag.Quote(diag.Format(e.Source)),
		diag.Quote(diag.Format(e.Target)),
	)
}

// Is reports whether target is [ErrConflict].
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// UnsupportedConstructError reports a keyword outside the mergeable subset.
type UnsupportedConstructError struct {
	Keyword  string
	Position diag.Position
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported schema construct %s%s",
		diag.Quote(diag.CamelCase(e.Keyword)), e.Position.Suffix())
}

// Is reports whether target is [ErrUnsupported].
func (e *UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupported
}
