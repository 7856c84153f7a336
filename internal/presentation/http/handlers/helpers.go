// Package handlers provides HTTP handlers for the editor and renderer APIs
package handlers

import (
	"errors"
	"net/http"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
)

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
