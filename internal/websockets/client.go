package websockets

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
)

type MessageType string

const (
	TypeOrderCreated MessageType = "client_order.created"
	TypeOrderStatus  MessageType = "client_order.status"
	TypeError        MessageType = "error"
	TypePing         MessageType = "ping"
	TypePong         MessageType = "pong"
)

// ClientType identifies which staff screen is connected.
type ClientType string

const (
	ClientTypeAdmin   ClientType = "admin"
	ClientTypeKitchen ClientType = "kitchen"
)

// ValidClientType reports whether t is a known client type.
func ValidClientType(t ClientType) bool {
	return t == ClientTypeAdmin || t == ClientTypeKitchen
}

type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	userID string

	clientType ClientType
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string, clientType ClientType) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		userID:     userID,
		clientType: clientType,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var wsMessage Message
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("error unmarshaling message: %v", err)
			continue
		}

		// Staff clients are listeners; the only inbound message we answer
		// is the keepalive.
		if wsMessage.Type == TypePing {
			pongMsg, _ := json.Marshal(Message{Type: TypePong})
			c.send <- pongMsg
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func ServeWs(hub *Hub, conn *websocket.Conn, userID string, clientType ClientType) {
	client := NewClient(hub, conn, userID, clientType)

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
