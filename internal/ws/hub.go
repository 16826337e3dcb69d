package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients keyed by profile so match alerts reach only
// the profile they belong to.
type Hub struct {
	clients    map[*Client]bool
	byProfile  map[uuid.UUID]map[*Client]bool
	broadcast  chan []byte
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

type directMessage struct {
	profileID uuid.UUID
	payload   []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byProfile:  make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		direct:     make(chan directMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			if client.profileID != uuid.Nil {
				if h.byProfile[client.profileID] == nil {
					h.byProfile[client.profileID] = make(map[*Client]bool)
				}
				h.byProfile[client.profileID][client] = true
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | profile=%s total_clients=%d", client.profileID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if peers, ok := h.byProfile[client.profileID]; ok {
					delete(peers, client)
					if len(peers) == 0 {
						delete(h.byProfile, client.profileID)
					}
				}
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | profile=%s total_clients=%d", client.profileID, total)
			}

		case message := <-h.broadcast:
			h.mutex.RLock()
			clientsSnapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				clientsSnapshot = append(clientsSnapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range clientsSnapshot {
				h.deliver(client, message)
			}

		case msg := <-h.direct:
			h.mutex.RLock()
			clientsSnapshot := make([]*Client, 0, len(h.byProfile[msg.profileID]))
			for c := range h.byProfile[msg.profileID] {
				clientsSnapshot = append(clientsSnapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range clientsSnapshot {
				h.deliver(client, msg.payload)
			}
		}
	}
}

func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		h.unregister <- client
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | reason=buffer_full")
		}
	}
}

// SendToProfile queues a message for every open connection of the given
// profile. Messages for offline profiles are dropped.
func (h *Hub) SendToProfile(profileID uuid.UUID, message []byte) {
	if h == nil || profileID == uuid.Nil {
		return
	}
	select {
	case h.direct <- directMessage{profileID: profileID, payload: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS direct dropped | profile=%s reason=buffer_full", profileID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
