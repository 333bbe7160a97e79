package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/thereayou/minitweet/internal/logger"
)

// Event — сообщение, уходящее подписчикам ленты
type Event struct {
	Type      string      `json:"type"`
	Post      interface{} `json:"post,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const TypePost = "post"

// FeedHub рассылает новые посты всем подключённым клиентам ленты
type FeedHub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

func NewFeedHub() *FeedHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &FeedHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub; вызывается в отдельной горутине
func (h *FeedHub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Log.Info("feed client connected", zap.String("user_id", client.UserID.String()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает читать, отключаем
					go h.Unregister(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *FeedHub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		client.conn.Close()
		delete(h.clients, client)
	}
}

func (h *FeedHub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

func (h *FeedHub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// BroadcastPost рассылает свежесозданный пост всем подписчикам
func (h *FeedHub) BroadcastPost(post interface{}) {
	event := Event{
		Type:      TypePost,
		Post:      post,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("feed event marshal failed", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.ctx.Done():
	}
}
