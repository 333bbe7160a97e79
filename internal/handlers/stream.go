package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/thereayou/minitweet/internal/logger"
	"github.com/thereayou/minitweet/internal/websocket"
)

type StreamHandler struct {
	hub      *websocket.FeedHub
	upgrader gorillaws.Upgrader
}

func NewStreamHandler(hub *websocket.FeedHub) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// FeedStream апгрейдит соединение и подписывает клиента на новые посты
func (h *StreamHandler) FeedStream(c *gin.Context) {
	userID := currentUserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, userID)
	go client.Serve()
}
