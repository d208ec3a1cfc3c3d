package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"task-management/internal/models"
)

// TaskEvent adalah pesan yang dikirim ke klien websocket setiap kali
// sebuah task dibuat, diubah, atau dihapus.
type TaskEvent struct {
	Action string      `json:"action"` // created, updated, deleted
	Task   models.Task `json:"task"`
}

// Conn adalah bagian dari *websocket.Conn yang dipakai Hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client merepresentasikan klien WebSocket.
type Client struct {
	Conn Conn
	Mu   sync.Mutex
}

// Hub mengelola koneksi WebSocket.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

// NewHub membuat instance Hub baru.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// BroadcastTaskEvent mengirim event task ke semua klien yang terhubung.
// Jika buffer penuh event dibuang, feed ini best-effort saja.
func (h *Hub) BroadcastTaskEvent(action string, task *models.Task) {
	message, err := json.Marshal(TaskEvent{Action: action, Task: *task})
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- message:
	default:
	}
}

// Run menjalankan loop Hub untuk mengelola register, unregister, dan Broadcast.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					// Run adalah satu-satunya penerima Unregister, jadi
					// lepas klien langsung di sini
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
