package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe   = "subscribe"
	MsgTypeUnsubscribe = "unsubscribe"
	MsgTypePollUpdate  = "poll_update"
)

// Client represents a connected WebSocket user
type Client struct {
	Conn    *websocket.Conn
	UserID  string
	PollIDs map[string]struct{}
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan PollEvent
	register   chan *Client
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// PollEvent tells subscribers that a poll changed and they should refetch it.
type PollEvent struct {
	Type   string `json:"type"`
	PollID string `json:"poll_id"`
	Action string `json:"action"`
}

// Message struct for incoming WebSocket messages
type Message struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
	PollID string `json:"poll_id,omitempty"`
}
