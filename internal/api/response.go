package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// Payload is a success response body. Handlers add their own keys next to
// the "success" flag.
type Payload map[string]interface{}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// WriteSuccess writes a success envelope merging payload into
// {"success": true, ...}.
func WriteSuccess(w http.ResponseWriter, status int, payload Payload) {
	body := Payload{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

// WriteError maps err onto the taxonomy and emits
// {"success": false, "message": ...}. Internal detail is logged, never sent.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	WriteJSON(w, status, Payload{
		"success": false,
		"message": ClientMessage(err),
	})
}
