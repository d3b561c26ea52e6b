package utils

import "strings"

// InvalidReferenceMarker is the sentinel left behind by clients that
// stringify a missing identifier
const InvalidReferenceMarker = "undefined"

// IsValidReference reports whether id can be used as a catalog item reference.
// The id must be non-empty after trimming and must not contain the sentinel marker.
func IsValidReference(id string) bool {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return false
	}
	return !strings.Contains(trimmed, InvalidReferenceMarker)
}

// FirstNonEmpty returns the first value that is non-empty after trimming
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
