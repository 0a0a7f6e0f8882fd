package handlers

import (
	"encoding/json"
	"net/http"
)

// jsonError writes the error envelope every API route responds with.
// The dashboard page keeps plain-text errors.
func jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: message})
}
