package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/thereayou/minitweet/internal/handlers/dto"
	"github.com/thereayou/minitweet/internal/logger"
	"github.com/thereayou/minitweet/internal/middleware"
	"github.com/thereayou/minitweet/internal/models"
	"github.com/thereayou/minitweet/internal/services"
	"github.com/thereayou/minitweet/internal/websocket"
)

type PostHandler struct {
	store services.PostStore
	hub   *websocket.FeedHub
}

// NewPostHandler создаёт обработчик постов; hub может быть nil,
// тогда новые посты просто не транслируются подписчикам ленты
func NewPostHandler(store services.PostStore, hub *websocket.FeedHub) *PostHandler {
	return &PostHandler{store: store, hub: hub}
}

// CreatePost сохраняет новый пост текущего пользователя.
// Контент хранится как прислали, но пустой после trim отклоняется
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := currentUserID(c)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		respondFieldError(c, "content", "The content field is required.")
		return
	}

	post := &models.Post{
		UserID:  userID,
		Content: req.Content,
	}

	if err := h.store.CreatePost(post); err != nil {
		logger.Log.Error("post creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create post"})
		return
	}

	logger.Log.Info("post created",
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", userID.String()),
	)

	view := newPostView(models.PostRow{Post: *post})
	if h.hub != nil {
		h.hub.BroadcastPost(view)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Post created successfully",
		"post":    view,
	})
}

// ListPosts отдаёт ленту от новых к старым. Без токена лента тоже
// доступна, но is_reacted тогда всегда false
func (h *PostHandler) ListPosts(c *gin.Context) {
	viewer := middleware.ViewerID(c)

	rows, err := h.store.ListPosts(viewer)
	if err != nil {
		logger.Log.Error("feed query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}

	posts := make([]dto.PostView, len(rows))
	for i, row := range rows {
		posts[i] = newPostView(row)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// ToggleReaction ставит либо снимает лайк текущего пользователя
func (h *PostHandler) ToggleReaction(c *gin.Context) {
	userID := currentUserID(c)

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	isReacted, count, err := h.store.ToggleReaction(userID, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
			return
		}
		logger.Log.Error("reaction toggle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to toggle reaction"})
		return
	}

	message := "Reaction removed"
	if isReacted {
		message = "Reaction added"
	}

	logger.Log.Info("reaction toggled",
		zap.String("post_id", postID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("is_reacted", isReacted),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         message,
		"is_reacted":      isReacted,
		"reactions_count": count,
	})
}

func newPostView(row models.PostRow) dto.PostView {
	user := row.Post.User
	return dto.PostView{
		ID:        row.Post.ID,
		Content:   row.Post.Content,
		CreatedAt: humanize.Time(row.Post.CreatedAt),
		User: dto.PostAuthor{
			ID:        user.ID,
			FullName:  user.FullName(),
			FirstName: user.FirstName,
			Surname:   user.Surname,
			Avatar:    user.AvatarURL(),
		},
		ReactionsCount: row.ReactionsCount,
		IsReacted:      row.IsReacted,
	}
}
