package dev

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func dialEvents(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dialEvents(t, srv.URL)
	hello := readMessage(t, conn)
	if hello.Type != MessageHello {
		t.Fatalf("first message type = %q, want hello", hello.Type)
	}
	if _, err := uuid.Parse(hello.ID); err != nil {
		t.Errorf("hello id %q is not a uuid: %v", hello.ID, err)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	if ids := hub.ClientIDs(); len(ids) != 1 || ids[0] != hello.ID {
		t.Errorf("ClientIDs() = %v, want [%s]", ids, hello.ID)
	}

	hub.Broadcast(Message{Type: MessageReload, File: "index.html"})
	if msg := readMessage(t, conn); msg.Type != MessageReload || msg.File != "index.html" {
		t.Errorf("broadcast = %+v", msg)
	}

	conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dialEvents(t, srv.URL)
	readMessage(t, conn)
	hub.Close()
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() after Close = %d, want 0", hub.ClientCount())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("read after Close should fail")
	}
}
