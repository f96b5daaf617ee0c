package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
)

// RespondWithJSON sends a JSON response with the given status code
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already written, so only log the failure
		slog.Error("Failed to encode JSON response", "error", err, "statusCode", statusCode)
	}
}

// RespondWithError sends a JSON error response built from a plain message
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	apiErr := apierrors.NewAPIError(apierrors.ErrorTypeInternal, "ERROR", message, statusCode)
	switch statusCode {
	case http.StatusBadRequest:
		apiErr = apierrors.ValidationError(message)
	case http.StatusUnauthorized:
		apiErr = apierrors.AuthenticationError(message)
	case http.StatusForbidden:
		apiErr = apierrors.AuthorizationError(message)
	case http.StatusConflict:
		apiErr = apierrors.ConflictError(message)
	case http.StatusMethodNotAllowed:
		apiErr = apierrors.NewAPIError(apierrors.ErrorTypeValidation, "METHOD_NOT_ALLOWED", message, statusCode)
	}
	RespondWithJSON(w, statusCode, apierrors.ErrorResponse{Error: apiErr})
}

// RespondWithAPIError maps a service error onto the stable JSON error contract.
// Unknown error values are reported as opaque internal errors.
func RespondWithAPIError(w http.ResponseWriter, err error) {
	apiErr := apierrors.GetAPIError(err)
	if apiErr == nil {
		slog.Error("Unexpected error reached the handler boundary", "error", err)
		apiErr = apierrors.InternalError("An unexpected error occurred")
	} else if apiErr.Type == apierrors.ErrorTypeInternal && apiErr.InternalErr != nil {
		slog.Error("Internal error", "error", apiErr.InternalErr, "code", apiErr.Code)
	}
	RespondWithJSON(w, apiErr.HTTPStatus, apierrors.ErrorResponse{Error: apiErr})
}
