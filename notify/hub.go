package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Event is the payload pushed to connected clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub broadcasts catalog events to all connected websocket clients.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte // Buffered channel to prevent blocking
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for message := range h.broadcast {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

// Broadcast queues an event for delivery. Safe to call on a nil hub and
// never blocks the mutating request.
func (h *Hub) Broadcast(event string, data any) {
	if h == nil {
		return
	}
	message, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal notify event %q: %v", event, err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
		log.Printf("Notify buffer full, dropping event %q", event)
	}
}

// Handler upgrades the connection and keeps it registered until the client
// goes away. Inbound messages are ignored.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				return
			}
		}
	}
}
