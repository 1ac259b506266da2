package ws

import (
	"context"
	"log/slog"
	"sync"
)

// Hub tracks connected players and feeds their messages to a single
// dispatch goroutine, so handlers never run concurrently with each other.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	mu         sync.RWMutex

	// done is closed once Run has returned and every client was released.
	done chan struct{}

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called once per client, when it disconnects or when
	// the hub stops.
	OnDisconnect func(client *Client)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run dispatches hub traffic until ctx is cancelled. On the way out every
// remaining client is disconnected so its room is torn down.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.disconnectAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			count := len(h.Clients)
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID, "clients", count)

		case client := <-h.Unregister:
			h.disconnect(client)

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

// Done is closed after Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Add registers a client. It returns false once the hub has stopped.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// disconnect drops a client and reports it once; repeated calls for the
// same client are ignored.
func (h *Hub) disconnect(client *Client) {
	h.mu.Lock()
	_, ok := h.Clients[client]
	if ok {
		delete(h.Clients, client)
		client.Close()
	}
	count := len(h.Clients)
	h.mu.Unlock()
	if !ok {
		return
	}

	slog.Info("client disconnected", "client", client.ID, "clients", count)
	if h.OnDisconnect != nil {
		h.OnDisconnect(client)
	}
}

func (h *Hub) disconnectAll() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.Clients))
	for c := range h.Clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.disconnect(c)
	}
	slog.Info("hub stopped", "disconnected", len(clients))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
