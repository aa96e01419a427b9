package model

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound means the input file is missing or unreadable.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedInput means the export does not have the expected layout or content.
	ErrMalformedInput = errors.New("malformed input")
	// ErrPermissionDenied means the output file could not be written,
	// usually because it is open in another application.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNameCollision means the output file exists and the conflict policy is abort.
	ErrNameCollision = errors.New("output file already exists")
)

// InputError points at the offending row and column of the input file.
// It matches ErrMalformedInput with errors.Is.
type InputError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *InputError) Error() string {
	loc := e.Path
	if e.Row > 0 {
		loc = fmt.Sprintf("%s row %d", loc, e.Row)
	}
	if e.Column != "" {
		loc = fmt.Sprintf("%s column %q", loc, e.Column)
	}
	return fmt.Sprintf("malformed input in %s: %v", loc, e.Err)
}

func (e *InputError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}
