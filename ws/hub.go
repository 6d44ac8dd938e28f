package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// EventPublisher, service katmanının kullandığı push interface'i.
// Service'ler Hub'a değil bu interface'e bağımlıdır (testte fake kullanılır).
type EventPublisher interface {
	BroadcastToUser(userID int64, event Event)
}

// Hub, tüm bağlantıları userID → client set olarak tutar.
// Bir kullanıcının birden fazla sekmesi olabilir.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	closeOnce  sync.Once

	seq atomic.Int64
	log logrus.FieldLogger
}

// NewHub, yeni bir Hub oluşturur. Run ayrı goroutine'de başlatılmalı.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run, register/unregister event loop'u. Shutdown'a kadar döner.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.log.WithFields(logrus.Fields{
		"user_id":     client.userID,
		"connections": len(h.clients[client.userID]),
	}).Debug("client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.log.WithFields(logrus.Fields{
		"user_id":     client.userID,
		"connections": len(clients),
	}).Debug("client disconnected")
}

// requestUnregister, hub kapanmışsa bloklamadan döner.
func (h *Hub) requestUnregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToUser, kullanıcının tüm bağlantılarına event gönderir.
// Buffer'ı dolu (yavaş) client düşürülür.
func (h *Hub) BroadcastToUser(userID int64, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).WithField("op", event.Op).Error("failed to marshal user event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			go h.requestUnregister(client)
		}
	}
}

// GetOnlineUserIDs, en az bir bağlantısı olan kullanıcılar.
func (h *Hub) GetOnlineUserIDs() []int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]int64, 0, len(h.clients))
	for userID := range h.clients {
		ids = append(ids, userID)
	}
	return ids
}

// Shutdown, event loop'u durdurur ve tüm bağlantıları kapatır.
func (h *Hub) Shutdown() {
	h.closeOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()

		for _, clients := range h.clients {
			for client := range clients {
				close(client.send)
			}
		}
		h.clients = make(map[int64]map[*Client]bool)
		h.log.Info("hub shut down, all connections closed")
	})
}
