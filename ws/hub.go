package ws

import (
	"context"
	"encoding/json"
	"time"

	"prepvio_backend/internal/logger"
)

// Envelope is the frame pushed to clients.
type Envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sentAt"`
}

type directMessage struct {
	userID string
	data   []byte
}

// Hub tracks connected clients per user and routes pushes to them. It
// implements the notification publisher interface, so services depend
// on the interface and never on the hub itself.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
	broadcast  chan []byte
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMessage, 64),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run owns the clients map. All mutation happens on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			logger.Debug("websocket client connected", "user_id", client.userID)

		case client := <-h.unregister:
			if set, ok := h.clients[client.userID]; ok {
				if set[client] {
					delete(set, client)
					close(client.send)
					if len(set) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}

		case msg := <-h.direct:
			for client := range h.clients[msg.userID] {
				h.deliver(client, msg.data)
			}

		case data := <-h.broadcast:
			for _, set := range h.clients {
				for client := range set {
					h.deliver(client, data)
				}
			}
		}
	}
}

// deliver drops the frame for clients whose buffer is full instead of
// blocking the hub loop.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		delete(h.clients[client.userID], client)
		close(client.send)
		if len(h.clients[client.userID]) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) closeAll() {
	for _, set := range h.clients {
		for client := range set {
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
}

// Publish pushes an event to every connection of one user. Marshal or
// routing failures are logged, never returned: a push is best effort.
func (h *Hub) Publish(userID string, event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload, SentAt: time.Now()})
	if err != nil {
		logger.WithError(err).Error("failed to marshal websocket envelope", "event", event)
		return
	}
	select {
	case h.direct <- directMessage{userID: userID, data: data}:
	default:
		logger.Warn("websocket direct queue full, dropping event", "user_id", userID, "event", event)
	}
}

// Broadcast pushes an event to every connected client.
func (h *Hub) Broadcast(event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload, SentAt: time.Now()})
	if err != nil {
		logger.WithError(err).Error("failed to marshal websocket envelope", "event", event)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		logger.Warn("websocket broadcast queue full, dropping event", "event", event)
	}
}
