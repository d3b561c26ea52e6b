package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"armario-outfits/canvas"
	"armario-outfits/service"
)

// ErrorResponse is the JSON body of every failed request.
// Items lists the offending item names of an invalid reference error.
type ErrorResponse struct {
	Message string   `json:"message"`
	Items   []string `json:"items,omitempty"`
}

// writeJSON encodes v with the given status
func writeJSON(w http.ResponseWriter, handler string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", handler, err)
	}
}

// writeBinary writes a rendered file body
func writeBinary(w http.ResponseWriter, handler, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", filename))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ %s: Error writing response: %v", handler, err)
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var refErr *canvas.InvalidReferenceError
	var validationErr *service.ValidationError
	var transportErr *service.TransportError

	switch {
	case errors.As(err, &refErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, canvas.ErrEmptyCanvas),
		errors.Is(err, service.ErrSaveInProgress),
		errors.Is(err, canvas.ErrNotDragging),
		errors.Is(err, canvas.ErrDragInProgress):
		return http.StatusConflict
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDraftsDisabled):
		return http.StatusNotImplemented
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes it as an ErrorResponse.
// Store messages are passed through verbatim.
func writeError(w http.ResponseWriter, handler string, err error) {
	status := statusFor(err)
	log.Printf("❌ %s: %v (status=%d)", handler, err, status)

	body := ErrorResponse{Message: err.Error()}
	var refErr *canvas.InvalidReferenceError
	if errors.As(err, &refErr) {
		body.Items = refErr.Names
	}
	writeJSON(w, handler, status, body)
}

// methodNotAllowed rejects a request made with an unsupported method
func methodNotAllowed(w http.ResponseWriter, handler string, r *http.Request) {
	log.Printf("❌ %s: Method not allowed: %s", handler, r.Method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// decodeBody decodes a JSON body; an empty body leaves v untouched
func decodeBody(w http.ResponseWriter, r *http.Request, handler string, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("❌ %s: Failed to decode request body: %v", handler, err)
		writeJSON(w, handler, http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("Invalid request body: %v", err)})
		return false
	}
	return true
}
