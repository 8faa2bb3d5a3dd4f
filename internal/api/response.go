package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// serverError logs err and writes a 500 with the given client-facing message.
func serverError(w http.ResponseWriter, r *http.Request, message string, err error) {
	slog.Error(message, "method", r.Method, "path", r.URL.Path, "error", err)
	jsonError(w, http.StatusInternalServerError, message)
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// decodeBody decodes a JSON body and writes a 400 when it is missing or
// malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	err := decodeJSON(r, target)
	switch {
	case errors.Is(err, io.EOF):
		jsonError(w, http.StatusBadRequest, "No data provided")
		return false
	case err != nil:
		jsonError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
