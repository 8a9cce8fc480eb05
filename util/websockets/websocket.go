package websockets

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketManager fans poll-change events out to subscribed clients
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketManager initializes a WebSocketManager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan PollEvent),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
	}
}

// Run starts the WebSocket manager
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.Conn] = client
			manager.mu.Unlock()

		case conn := <-manager.unregister:
			manager.mu.Lock()
			if client, exists := manager.clients[conn]; exists {
				delete(manager.clients, conn)
				conn.Close()
				log.Printf("Client %s disconnected", client.UserID)
			}
			manager.mu.Unlock()

		case event := <-manager.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				log.Println("error marshalling poll event:", err)
				continue
			}
			manager.mu.Lock()
			for _, client := range manager.clients {
				if _, subscribed := client.PollIDs[event.PollID]; !subscribed {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					client.Conn.Close()
					delete(manager.clients, client.Conn)
				}
			}
			manager.mu.Unlock()
		}
	}
}

// HandleConnections upgrades HTTP requests to WebSocket connections
func (manager *WebSocketManager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	client := &Client{Conn: conn, PollIDs: make(map[string]struct{})}
	manager.register <- client

	defer func() {
		manager.unregister <- conn
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			manager.unregister <- conn
			break
		}

		var message Message
		if err := json.Unmarshal(msg, &message); err != nil {
			log.Println("Invalid JSON:", err)
			continue
		}

		switch message.Type {
		case MsgTypeSubscribe:
			manager.mu.Lock()
			if message.UserID != "" {
				client.UserID = message.UserID
			}
			if message.PollID != "" {
				client.PollIDs[message.PollID] = struct{}{}
			}
			manager.mu.Unlock()

		case MsgTypeUnsubscribe:
			if message.PollID != "" {
				manager.mu.Lock()
				delete(client.PollIDs, message.PollID)
				manager.mu.Unlock()
			}
		}
	}
}

// BroadcastPollUpdate notifies subscribers that a poll was created, edited,
// deleted or voted on. Subscribers refetch through the API so the usual
// visibility rules still apply to what they see.
func (manager *WebSocketManager) BroadcastPollUpdate(pollID, action string) {
	manager.broadcast <- PollEvent{
		Type:   MsgTypePollUpdate,
		PollID: pollID,
		Action: action,
	}
}
