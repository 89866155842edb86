package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// StatusResponse is the body of the health check.
type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	respondWithContentType(w, code, "application/json", payload)
}

func respondWithContentType(w http.ResponseWriter, code int, contentType string, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		// This indicates a server-side programming error (e.g., trying to marshal a channel).
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
