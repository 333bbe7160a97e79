package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/minitweet/internal/handlers"
	"github.com/thereayou/minitweet/internal/middleware"
	"github.com/thereayou/minitweet/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	blacklist auth.Blacklist,
	authH *handlers.AuthHandler,
	postH *handlers.PostHandler,
	streamH *handlers.StreamHandler,
) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	{
		api.POST("/register", authH.Register)
		api.POST("/login", authH.Login)

		// Лента читается и без токена, но предъявленный токен проверяется
		api.GET("/posts", middleware.OptionalAuth(jwtMgr, blacklist), postH.ListPosts)
	}

	protected := r.Group("/api", middleware.RequireAuth(jwtMgr, blacklist))
	{
		protected.POST("/logout", authH.Logout)
		protected.GET("/user", authH.Me)

		protected.POST("/posts", postH.CreatePost)
		protected.POST("/posts/:id/reaction", postH.ToggleReaction)
	}

	r.GET("/api/feed/live", middleware.WSAuth(jwtMgr, blacklist), streamH.FeedStream)
}
