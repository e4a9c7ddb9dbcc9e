// Package handlers exposes the election core as a JSON HTTP API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pemira-fti/backend/internal/auth"
	"github.com/pemira-fti/backend/internal/middleware"
	"github.com/pemira-fti/backend/internal/service"
)

// writeServiceError maps the service failure kinds to HTTP statuses.
// Anything outside the known set is a store or encoding failure: log it and
// answer 500 without leaking details.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIncompleteSubmission):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrVerificationFailed):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDuplicateIdentity):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrRejected):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
