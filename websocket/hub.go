package websocket

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Client is one connected browser tab, subscribed to a single review thread.
type Client struct {
	Conn   *websocket.Conn
	Thread string
	Send   chan []byte
}

// Hub fans review-thread events out to subscribed clients. Threads are keyed
// by application id plus requirement name, matching the chat-thread key used
// by the normalizer.
type Hub struct {
	threads    map[string]map[*Client]bool
	broadcast  chan threadEvent
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type threadEvent struct {
	thread  string
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		threads:    make(map[string]map[*Client]bool),
		broadcast:  make(chan threadEvent),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// ThreadKey builds the subscription key for a requirement's review thread.
func ThreadKey(applicationID, requirementName string) string {
	return applicationID + "/" + requirementName
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.threads[client.Thread] == nil {
				h.threads[client.Thread] = make(map[*Client]bool)
			}
			h.threads[client.Thread][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.threads[client.Thread]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
				}
				if len(clients) == 0 {
					delete(h.threads, client.Thread)
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// BroadcastToThread pushes an event to every client watching the thread.
func (h *Hub) BroadcastToThread(applicationID, requirementName string, payload []byte) {
	h.broadcast <- threadEvent{
		thread:  ThreadKey(applicationID, requirementName),
		payload: payload,
	}
}

func (h *Hub) deliver(event threadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.threads[event.thread] {
		select {
		case client.Send <- event.payload:
		default:
			// Slow consumer; drop it rather than block the hub.
			close(client.Send)
			delete(h.threads[event.thread], client)
		}
	}
}
