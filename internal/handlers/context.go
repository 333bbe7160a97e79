package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/minitweet/internal/middleware"
)

// currentUserID достаёт userID, положенный auth-middleware.
// Вызывается только за RequireAuth, иначе это ошибка маршрутизации
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.UserIDKey).(uuid.UUID)
}
