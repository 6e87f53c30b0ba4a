package utils

import (
	"encoding/json"
	"net/http"
)

// Payload is the standard response envelope: success responses carry a
// message and optional data, error responses a message and optional detail.
type Payload struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONResponse sends a JSON response with the given status and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
