package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/bamboorat/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// storeError writes the response for a failed repository call.
func storeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, store.ErrPermissionDenied):
		slog.Warn(msg, "error", err)
		jsonError(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, store.ErrBackendUnavailable):
		slog.Error(msg, "error", err)
		jsonError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		slog.Error(msg, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
