package listing

import (
	"errors"
	"fmt"
)

// Kind names the entity an error or search refers to.
type Kind string

const (
	KindVenue  Kind = "venue"
	KindArtist Kind = "artist"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports that a requested venue or artist does not exist.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReferenceIntegrityError reports a show whose venue or artist cannot be resolved.
type ReferenceIntegrityError struct {
	ShowID    int64
	Kind      Kind
	MissingID int64
}

func (e *ReferenceIntegrityError) Error() string {
	return fmt.Sprintf("show %d references missing %s %d", e.ShowID, e.Kind, e.MissingID)
}

// StoreUnavailableError wraps a failed store read.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func unavailable(op string, err error) error {
	var unavailableErr *StoreUnavailableError
	if errors.As(err, &unavailableErr) {
		return err
	}
	return &StoreUnavailableError{Op: op, Err: err}
}
