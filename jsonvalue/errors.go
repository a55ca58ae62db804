package jsonvalue

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/schemamerge/diag"
)

var (
	// ErrInvalid indicates input that is not a supported JSON value.
	ErrInvalid = errors.New("invalid json")

	// ErrTypeConflict indicates two values of different kinds at one path.
	ErrTypeConflict = errors.New("json node type conflict")

	// ErrValueConflict indicates two unequal scalars at one path.
	ErrValueConflict = errors.New("json node value conflict")
)

// TypeConflictError is returned by [Merge] when the source and target hold
// different kinds at the same path.
type TypeConflictError struct {
	Path   diag.Path
	Source Kind
	Target Kind
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("conflict in JSON node type%s within schema extension data: %s vs %s",
		e.Path.Suffix(), diag.Quote(e.Source.String()), diag.Quote(e.Target.String()))
}

// Is reports whether target is [ErrTypeConflict].
func (e *TypeConflictError) Is(target error) bool {
	return target == ErrTypeConflict
}

// ValueConflictError is returned by [Merge] when the source and target hold
// unequal scalars at the same path.
type ValueConflictError struct {
	Path   diag.Path
	Source Value
	Target Value
}

func (e *ValueConflictError) Error() string {
	return fmt.Sprintf("conflict in JSON node%s within schema extension data: %s vs %s",
		e.Path.Suffix(), diag.Quote(display(e.Source)), diag.Quote(display(e.Target)))
}

// Is reports whether target is [ErrValueConflict].
func (e *ValueConflictError) Is(target error) bool {
	return target == ErrValueConflict
}

// display renders strings verbatim and everything else as compact JSON.
func display(v Value) string {
	if v.kind == KindString {
		return v.text
	}

	return v.String()
}
