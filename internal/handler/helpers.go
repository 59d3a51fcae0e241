package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"inkwell/internal/domain"
	"inkwell/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Anything not recognized is logged and answered with a generic 500.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var concurrencyErr *domain.ConcurrencyError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &concurrencyErr):
		logger.Warn("concurrent modification", "error", err)
		w.Header().Set("Retry-After", "1")
		httputil.RespondErrorWithExtras(w, http.StatusConflict,
			"the resource is being modified by another request, retry shortly",
			map[string]interface{}{"retryable": concurrencyErr.Retryable()})
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseVersionNumber parses a positive version number path segment
func parseVersionNumber(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &domain.ValidationError{Message: "version number must be a positive integer"}
	}
	return n, nil
}

type deletedResponse struct {
	DeletedID string `json:"deleted_id"`
}
