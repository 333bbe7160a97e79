package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/thereayou/minitweet/internal/handlers/dto"
	"github.com/thereayou/minitweet/internal/logger"
	"github.com/thereayou/minitweet/internal/models"
	"github.com/thereayou/minitweet/internal/services"
	"github.com/thereayou/minitweet/pkg/auth"
)

type AuthHandler struct {
	store      services.UserStore
	jwtManager *auth.JWTManager
	blacklist  auth.Blacklist
}

func NewAuthHandler(store services.UserStore, jwtMgr *auth.JWTManager, blacklist auth.Blacklist) *AuthHandler {
	return &AuthHandler{store: store, jwtManager: jwtMgr, blacklist: blacklist}
}

// Register создаёт пользователя и сразу выдаёт токен сессии
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	taken, err := h.store.EmailTaken(req.Email)
	if err != nil {
		logger.Log.Error("email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}
	if taken {
		respondFieldError(c, "email", "The email has already been taken.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("password hash failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	user := &models.User{
		FirstName:    req.FirstName,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := h.store.SaveUser(user); err != nil {
		logger.Log.Error("user creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		logger.Log.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	logger.Log.Info("user registered", zap.String("user_id", user.ID.String()))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    user,
		"token":   token,
	})
}

// Login проверяет пару email/пароль и выдаёт новый токен, не трогая
// уже выданные. Ответ при неизвестном email и при неверном пароле
// одинаковый, чтобы не раскрывать, существует ли пользователь
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.store.FindUserByEmail(req.Email)
	if err != nil {
		logger.Log.Warn("login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Log.Warn("login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		logger.Log.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	logger.Log.Info("login successful", zap.String("user_id", user.ID.String()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Logout отзывает только предъявленный токен: он попадает в черный
// список до своего истечения, остальные сессии живут дальше
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
		return
	}

	if err := h.blacklist.Add(c.Request.Context(), rawToken, time.Until(exp)); err != nil {
		logger.Log.Error("token revoke failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Me возвращает текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	viewer := currentUserID(c)
	user, err := h.store.GetUser(viewer.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		logger.Log.Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
