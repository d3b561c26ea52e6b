package canvas

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidReference is returned when an item lacks a usable catalog id
	ErrInvalidReference = errors.New("invalid catalog item reference")
	// ErrEmptyCanvas is returned when the save flow is opened with no items
	ErrEmptyCanvas = errors.New("canvas has no items")
	// ErrDropOutside is returned when a release point is below the canvas region
	ErrDropOutside = errors.New("drop point is outside the canvas")
	// ErrItemNotFound is returned when an instance id is not on the canvas
	ErrItemNotFound = errors.New("placed item not found")
	// ErrNotDragging is returned when a move or release arrives without an active drag
	ErrNotDragging = errors.New("no active drag")
	// ErrDragInProgress is returned when a drag is started twice
	ErrDragInProgress = errors.New("drag already in progress")
	// ErrGestureCancelled is returned when a tracked gesture ends without a release
	ErrGestureCancelled = errors.New("gesture cancelled")
)

// InvalidReferenceError names the items whose catalog reference is unusable
type InvalidReferenceError struct {
	Names []string
}

func (e *InvalidReferenceError) Error() string {
	return "invalid catalog item reference for: " + strings.Join(e.Names, ", ")
}

// Is makes errors.Is(err, ErrInvalidReference) match
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

func displayNameOrPlaceholder(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed item)"
	}
	return name
}
