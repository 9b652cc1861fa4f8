// Package storage holds the single JSON document the note store persists to.
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when no document has been written yet.
var ErrNotExist = errors.New("document does not exist")

// Backend reads and fully overwrites one document.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Describe() string
}
