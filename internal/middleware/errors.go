package middleware

import (
	"encoding/json"
	"net/http"
)

// writeErrorJSON writes the API's error envelope,
// {"error":{"code":...,"message":...}}, for responses that never reach a handler.
func writeErrorJSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
