package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func authHeader(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// stubServer — минимальный сервер MiniTweet API для тестов клиента
func stubServer(t *testing.T) (*httptest.Server, *uuid.UUID) {
	t.Helper()

	postID := uuid.New()
	user := map[string]interface{}{
		"id":         uuid.New(),
		"first_name": "John",
		"surname":    "Doe",
		"email":      "john@example.com",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "user": user, "token": "token-1",
		})
	})
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "Invalid credentials",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "user": user, "token": "token-2",
		})
	})
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		if authHeader(r) == "expired" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "Unauthenticated",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"posts": []map[string]interface{}{
				{
					"id": postID, "content": "hello", "created_at": "2 minutes ago",
					"user": user, "reactions_count": 0, "is_reacted": false,
				},
			},
		})
	})
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if len(req["content"]) > 280 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"errors":  map[string][]string{"content": {"The content may not be greater than 280 characters."}},
			})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"post":    map[string]interface{}{"id": uuid.New(), "content": req["content"], "user": user},
		})
	})
	mux.HandleFunc("POST /api/posts/{id}/reaction", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "message": "Reaction added",
			"is_reacted": true, "reactions_count": 1,
		})
	})

	return httptest.NewServer(mux), &postID
}

func TestClientAuthFlow(t *testing.T) {
	srv, _ := stubServer(t)
	defer srv.Close()

	storage := NewMemoryStorage()
	session := NewSession(storage, nil)
	c := New(srv.URL, session)

	result, err := c.Register(context.Background(), "John", "Doe", "john@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "token-1", result.Token)
	assert.True(t, session.Authenticated())

	// Токен и пользователь отражены в хранилище
	token, ok := storage.Get(TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)
	rawUser, ok := storage.Get(UserKey)
	assert.True(t, ok)
	assert.Contains(t, rawUser, "john@example.com")

	_, err = c.Login(context.Background(), "john@example.com", "wrongpassword")
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

// Сессия поднимается из того же хранилища, что и у прошлого клиента
func TestSessionRestoredFromStorage(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Set(TokenKey, "stored-token")
	storage.Set(UserKey, `{"first_name":"John","surname":"Doe","email":"john@example.com"}`)

	session := NewSession(storage, nil)
	assert.True(t, session.Authenticated())
	assert.Equal(t, "stored-token", session.Token())
	assert.Equal(t, "John", session.User().FirstName)
}

func TestClientInvalidatesSessionOn401(t *testing.T) {
	srv, _ := stubServer(t)
	defer srv.Close()

	invalidated := false
	storage := NewMemoryStorage()
	storage.Set(TokenKey, "expired")

	session := NewSession(storage, func() { invalidated = true })
	c := New(srv.URL, session)

	_, err := c.Posts(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.True(t, invalidated)
	assert.False(t, session.Authenticated())

	_, ok := storage.Get(TokenKey)
	assert.False(t, ok)
}

func TestFeedSubmitRefetches(t *testing.T) {
	srv, _ := stubServer(t)
	defer srv.Close()

	session := NewSession(NewMemoryStorage(), nil)
	c := New(srv.URL, session)
	feed := NewFeed(c)

	feed.Draft = "hello"
	assert.NoError(t, feed.Submit(context.Background()))
	assert.Empty(t, feed.Draft)
	assert.Len(t, feed.Posts, 1)
	assert.Equal(t, "hello", feed.Posts[0].Content)

	// Пустой черновик не публикуется
	feed.Draft = "   "
	assert.NoError(t, feed.Submit(context.Background()))
}

func TestFeedSubmitSurfacesFieldError(t *testing.T) {
	srv, _ := stubServer(t)
	defer srv.Close()

	session := NewSession(NewMemoryStorage(), nil)
	c := New(srv.URL, session)
	feed := NewFeed(c)

	feed.Draft = strings.Repeat("a", 281)
	err := feed.Submit(context.Background())
	assert.Error(t, err)
	assert.Contains(t, feed.Err, "280 characters")
}

func TestFeedTogglePatchesInPlace(t *testing.T) {
	srv, postID := stubServer(t)
	defer srv.Close()

	session := NewSession(NewMemoryStorage(), nil)
	c := New(srv.URL, session)
	feed := NewFeed(c)

	assert.NoError(t, feed.Load(context.Background()))
	assert.Len(t, feed.Posts, 1)
	assert.False(t, feed.Posts[0].IsReacted)

	assert.NoError(t, feed.Toggle(context.Background(), postID.String()))
	assert.True(t, feed.Posts[0].IsReacted)
	assert.Equal(t, int64(1), feed.Posts[0].ReactionsCount)
}
