package http

import (
	"encoding/json"
	"net/http"

	apperrors "evently/pkg/errors"
)

// ErrorResponse is the failure envelope: a human-readable message plus a
// stable error code, with optional structured details.
type ErrorResponse struct {
	Message string         `json:"message"`
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteData writes the success envelope: a message plus the payload under
// its domain key ("event", "events", "booking", ...).
func WriteData(w http.ResponseWriter, statusCode int, message, key string, data any) error {
	return WriteJSON(w, statusCode, map[string]any{
		"message": message,
		key:       data,
	})
}

// WritePaginated is WriteData with the listing metadata the collection
// endpoints return alongside their payload.
func WritePaginated(w http.ResponseWriter, message, key string, data any, totalCount int64, limit int, offset int64) error {
	return WriteJSON(w, http.StatusOK, map[string]any{
		"message":     message,
		key:           data,
		"total_count": totalCount,
		"limit":       limit,
		"offset":      offset,
	})
}

// WriteError maps any error onto the failure envelope using the AppError
// status mapping; unknown errors surface as 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Message: appErr.Message,
		Error:   appErr.Code,
		Details: appErr.Details,
	})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
