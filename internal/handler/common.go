// Package handler contains the JSON API handlers. Handlers validate input,
// call the service layer, and map its results onto HTTP responses; they hold
// no business rules of their own.
package handler

import (
	"encoding/json"
	"net/http"
)

func idParam(r *http.Request) string {
	return r.PathValue("id")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
