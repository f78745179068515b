package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"promptlens/apimodels"
	apperrors "promptlens/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError renders every failure as the error envelope. Errors outside
// the taxonomy become internal_error with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("internal server error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.Error("request failed", "kind", appErr.Kind, "error", err)
	} else {
		slog.Warn("request rejected", "kind", appErr.Kind, "message", appErr.Message)
	}

	writeJSON(w, appErr.StatusCode, apimodels.ErrorResponse{
		Error:   string(appErr.Kind),
		Message: appErr.Message,
	})
}

// decodeError classifies a JSON body decode failure.
func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperrors.NewPayloadTooLargeError("request body exceeds the size limit", err)
	}
	return apperrors.NewValidationError("invalid JSON body", err)
}

// multipartError classifies a multipart parse failure.
func multipartError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperrors.NewPayloadTooLargeError("request body exceeds the upload limit", err)
	}
	return apperrors.NewValidationError("invalid multipart form", err)
}
