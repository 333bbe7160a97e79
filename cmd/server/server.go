package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/minitweet/internal/config"
	"github.com/thereayou/minitweet/internal/database"
	"github.com/thereayou/minitweet/internal/handlers"
	"github.com/thereayou/minitweet/internal/logger"
	"github.com/thereayou/minitweet/internal/websocket"
	"github.com/thereayou/minitweet/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	Config     *config.Config
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.FeedHub
}

func NewServer() *Server {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger.Init(cfg.LogLevel)

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	blacklist := auth.NewRedisBlacklist(rdb)

	hub := websocket.NewFeedHub()
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, blacklist)
	postH := handlers.NewPostHandler(dbConn, hub)
	streamH := handlers.NewStreamHandler(hub)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, blacklist, authH, postH, streamH)

	return &Server{
		Router:     router,
		Config:     cfg,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	logger.Log.Sugar().Infof("server starting on port %s", s.Config.Port)
	if err := s.Router.Run(":" + s.Config.Port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
