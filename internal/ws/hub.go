package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"quicksell-pos/internal/model"
)

type Action string

const (
	ActionProductCreated   Action = "product_created"
	ActionProductUpdated   Action = "product_updated"
	ActionProductDeleted   Action = "product_deleted"
	ActionProductRestocked Action = "product_restocked"
	ActionSaleSettled      Action = "sale_settled"
	ActionSaleVoided       Action = "sale_voided"
)

// Event is the JSON message pushed to every connected client.
type Event struct {
	Type    string         `json:"type"`
	Action  Action         `json:"action"`
	Product *model.Product `json:"product,omitempty"`
	Sale    *model.Sale    `json:"sale,omitempty"`
	Message string         `json:"message,omitempty"`
}

func ProductEvent(action Action, p model.Product, msg string) Event {
	return Event{Type: "stock_update", Action: action, Product: &p, Message: msg}
}

func SaleEvent(action Action, s model.Sale, msg string) Event {
	return Event{Type: "sale_update", Action: action, Sale: &s, Message: msg}
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	logger     *slog.Logger
	done       chan struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Join registers conn with the running hub. It returns false once the hub
// has shut down.
func (h *Hub) Join(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters conn. After shutdown it returns immediately.
func (h *Hub) Leave(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

// Publish queues e for broadcast. It never blocks the caller; events are
// dropped when the queue is full.
func (h *Hub) Publish(e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.logger.Error("failed to encode ws event", slog.String("action", string(e.Action)), slog.Any("error", err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.logger.Warn("ws broadcast queue full, dropping event", slog.String("action", string(e.Action)))
	}
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Run serves the channels until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.logger.Debug("ws client connected", slog.Int("clients", h.Count()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
