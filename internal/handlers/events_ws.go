package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/devyanshh69/feedback-box-backend/internal/services"
)

var boardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// BoardWebSocket streams board events (new feedback, votes, comments,
// status changes) to a connected client so open boards stay current
// without polling.
func BoardWebSocket(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessions.Current(r.Context()); !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	conn, err := boardUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := services.SubscribeBoardEvents()
	defer unsubscribe()

	// Writer goroutine: forward hub events to this connection. Exits when
	// unsubscribe closes the channel or the write fails.
	go func() {
		for evt := range events {
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}()

	// Reader loop: the client sends nothing meaningful; reads detect
	// disconnects and answer pings.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}
