package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/minitweet/pkg/auth"
)

const UserIDKey = "userID"

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
	c.Abort()
}

func resolveToken(c *gin.Context, jwtManager *auth.JWTManager, blacklist auth.Blacklist, token string) bool {
	// Отозванный на logout токен равнозначен отсутствующему
	revoked, err := blacklist.Contains(c.Request.Context(), token)
	if err != nil || revoked {
		abortUnauthenticated(c)
		return false
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		abortUnauthenticated(c)
		return false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		abortUnauthenticated(c)
		return false
	}

	c.Set(UserIDKey, userID)
	return true
}

// RequireAuth проверяет bearer-токен и кладёт userID в контекст
func RequireAuth(jwtManager *auth.JWTManager, blacklist auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		if resolveToken(c, jwtManager, blacklist, token) {
			c.Next()
		}
	}
}

// OptionalAuth пускает запросы без токена как анонимные,
// но предъявленный невалидный токен отклоняет с 401
func OptionalAuth(jwtManager *auth.JWTManager, blacklist auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		if resolveToken(c, jwtManager, blacklist, token) {
			c.Next()
		}
	}
}

// WSAuth — вариант для websocket: браузер не умеет ставить заголовки
// на upgrade-запрос, поэтому токен принимается и из query
func WSAuth(jwtManager *auth.JWTManager, blacklist auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			var err error
			token, err = auth.ExtractTokenFromHeader(c.Request)
			if err != nil {
				abortUnauthenticated(c)
				return
			}
		}

		if resolveToken(c, jwtManager, blacklist, token) {
			c.Next()
		}
	}
}

// ViewerID достаёт userID из контекста, если запрос аутентифицирован
func ViewerID(c *gin.Context) *uuid.UUID {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
