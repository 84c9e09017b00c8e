package websockets

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Upgrader is the WebSocket upgrader configuration
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The staff screens live on the restaurant's local network; restrict
	// origins here when exposing the service more widely.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
		http.Error(w, reason.Error(), status)
	},
}

// SetCheckOrigin updates the CheckOrigin function
func SetCheckOrigin(checkOrigin func(r *http.Request) bool) {
	Upgrader.CheckOrigin = checkOrigin
}
