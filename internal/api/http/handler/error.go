package handler

import (
	"errors"
	"net/http"

	"github.com/inklet/inklet-server/internal/model"
)

// handleError maps domain errors to HTTP statuses. Anything not in the
// taxonomy is a store failure and must not leak to the client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrMissingField):
		writeError(w, http.StatusForbidden, model.ErrMissingField.Error())
	case errors.Is(err, model.ErrDuplicateEmail):
		writeError(w, http.StatusForbidden, model.ErrDuplicateEmail.Error())
	case errors.Is(err, model.ErrUserNotFound):
		writeError(w, http.StatusForbidden, model.ErrUserNotFound.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusForbidden, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrEmptyPatch):
		writeError(w, http.StatusForbidden, model.ErrEmptyPatch.Error())
	case errors.Is(err, model.ErrMissingQuery):
		writeError(w, http.StatusBadRequest, model.ErrMissingQuery.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "note not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
