package websockets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestManager(t *testing.T, manager *WebSocketManager) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscription(t *testing.T, manager *WebSocketManager, pollID string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		manager.mu.Lock()
		subscribed := false
		for _, client := range manager.clients {
			if _, ok := client.PollIDs[pollID]; ok {
				subscribed = true
			}
		}
		manager.mu.Unlock()
		if subscribed {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("subscription was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSubscribeReceivesPollUpdates(t *testing.T) {
	manager := NewWebSocketManager()
	go manager.Run()

	conn := dialTestManager(t, manager)

	sub := Message{Type: MsgTypeSubscribe, UserID: "voter-1", PollID: "poll-1"}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	waitForSubscription(t, manager, "poll-1")

	manager.BroadcastPollUpdate("poll-1", "voted")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event PollEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("expected a poll event, got error: %v", err)
	}
	if event.Type != MsgTypePollUpdate || event.PollID != "poll-1" || event.Action != "voted" {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestUnsubscribedClientGetsNothing(t *testing.T) {
	manager := NewWebSocketManager()
	go manager.Run()

	subscribed := dialTestManager(t, manager)
	bystander := dialTestManager(t, manager)

	if err := subscribed.WriteJSON(Message{Type: MsgTypeSubscribe, PollID: "poll-1"}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	waitForSubscription(t, manager, "poll-1")

	manager.BroadcastPollUpdate("poll-1", "updated")

	subscribed.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event PollEvent
	if err := subscribed.ReadJSON(&event); err != nil {
		t.Fatalf("subscriber should receive the event: %v", err)
	}

	bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := bystander.ReadMessage(); err == nil {
		t.Error("client without a subscription must not receive the event")
	}
}
