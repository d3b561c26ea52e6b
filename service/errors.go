package service

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned for an unknown canvas session id
	ErrSessionNotFound = errors.New("canvas session not found")
	// ErrCatalogItemNotFound is returned when a dropped item id is not in the catalog
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	// ErrOutfitNotFound is returned when the store has no outfit with the given id
	ErrOutfitNotFound = errors.New("outfit not found")
	// ErrDraftsDisabled is returned when no database is configured for drafts
	ErrDraftsDisabled = errors.New("drafts are not enabled")
	// ErrSaveInProgress is returned when a session is saved twice concurrently
	ErrSaveInProgress = errors.New("a save is already in progress for this session")
)

// ValidationError is a user-facing required-field violation.
// It is raised before anything is sent to the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError is a network or store failure on a store call.
// Message carries the store's own message verbatim when it sent one.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: store returned status %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
