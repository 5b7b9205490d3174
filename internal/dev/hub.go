package dev

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/widgets/pkg/middleware"
)

// MessageType is the type of an event stream message.
type MessageType string

const (
	MessageHello  MessageType = "hello"
	MessageChange MessageType = "change"
	MessageReload MessageType = "reload"
	MessageError  MessageType = "error"
)

// Message is sent to browsers over the event stream.
type Message struct {
	Type   MessageType `json:"type"`
	ID     string      `json:"id,omitempty"`
	OldID  string      `json:"oldId,omitempty"`
	PageID string      `json:"pageId,omitempty"`
	File   string      `json:"file,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Hub manages WebSocket clients of the event stream.
type Hub struct {
	clients  map[*websocket.Conn]string
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and keeps the client registered
// until it disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.clients[conn] = id
	h.mu.Unlock()
	middleware.RecordConnectionOpen()

	h.send(conn, Message{Type: MessageHello, ID: id})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		middleware.RecordConnectionClose()
		conn.Close()
	}
}

func (h *Hub) send(conn *websocket.Conn, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	h.writeMu.Unlock()
	if err != nil {
		h.drop(conn)
	}
}

// Broadcast sends msg to every client. Clients that fail are dropped.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.send(client, msg)
	}
}

// ClientIDs returns the ids of the connected clients.
func (h *Hub) ClientIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for _, id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*websocket.Conn]string)
	h.mu.Unlock()

	for client := range clients {
		middleware.RecordConnectionClose()
		client.Close()
	}
}

// ClientScript connects a page to the event stream. It is appended to the
// rendered document.
const ClientScript = `(function() {
  var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/events');
  ws.onmessage = function(e) {
    var msg = JSON.parse(e.data);
    if (msg.type === 'reload' || msg.type === 'change') location.reload();
    if (msg.type === 'error') console.error('[widgets]', msg.error);
  };
})();`
