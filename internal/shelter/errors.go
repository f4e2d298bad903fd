package shelter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySlice is returned when a filter matches no observations.
	ErrEmptySlice = errors.New("no observations match slice")

	// ErrMissingColumn is returned when a source lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)

// EmptySliceError reports the slice that matched no rows.
type EmptySliceError struct {
	Slice Slice
}

func (e *EmptySliceError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrEmptySlice.Error(), e.Slice)
}

func (e *EmptySliceError) Unwrap() error {
	return ErrEmptySlice
}

// MissingColumnError lists every required column a source did not provide.
type MissingColumnError struct {
	Source  string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s in %s", ErrMissingColumn.Error(), strings.Join(e.Columns, ", "), e.Source)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}
