package notes

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("note not found")
	ErrValidation   = errors.New("title and content are required")
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
)

// ValidationError lists the fields that were blank after trimming.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields are blank: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
