package reviews

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/revisor/internal/workflow"
	"github.com/JaimeStill/revisor/pkg/storage"
)

// Domain errors for review operations.
var (
	ErrNotFound     = errors.New("review not found")
	ErrDuplicate    = errors.New("review already exists")
	ErrNoFiles      = errors.New("no files submitted")
	ErrInvalidFile  = errors.New("file is not a PDF")
	ErrFileTooLarge = errors.New("upload exceeds maximum size")
)

// MapHTTPStatus maps review domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoFiles) || errors.Is(err, workflow.ErrNoInputs) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusUnsupportedMediaType
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
