package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v as a JSON response. Every endpoint, including
// every failure path, answers with JSON so a programmatic caller can
// always parse the response.
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(payload)
}

// errorResponse writes the {"error": message} failure shape.
func errorResponse(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}
