package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthenticated возвращается, когда сервер ответил 401;
// сессия к этому моменту уже сброшена
var ErrUnauthenticated = errors.New("unauthenticated")

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
}

type PostAuthor struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	FirstName string    `json:"first_name"`
	Surname   string    `json:"surname"`
	Avatar    string    `json:"avatar"`
}

type Post struct {
	ID             uuid.UUID  `json:"id"`
	Content        string     `json:"content"`
	CreatedAt      string     `json:"created_at"`
	User           PostAuthor `json:"user"`
	ReactionsCount int64      `json:"reactions_count"`
	IsReacted      bool       `json:"is_reacted"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type ReactionResult struct {
	Message        string `json:"message"`
	IsReacted      bool   `json:"is_reacted"`
	ReactionsCount int64  `json:"reactions_count"`
}

// APIError — ошибка уровня API: либо общее сообщение,
// либо ошибки валидации по полям
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// FieldError возвращает первое сообщение валидации для поля
func (e *APIError) FieldError(field string) string {
	if msgs, ok := e.Errors[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Client ходит в MiniTweet API. Все вызовы принимают context,
// аутентифицированные берут токен из привязанной сессии
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		session:    session,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// Register создаёт аккаунт и сразу устанавливает сессию
func (c *Client) Register(ctx context.Context, firstName, surname, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"first_name": firstName,
		"surname":    surname,
		"email":      email,
		"password":   password,
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &result, false); err != nil {
		return nil, err
	}

	c.session.establish(result.Token, &result.User)
	return &result, nil
}

// Login устанавливает сессию по паре email/пароль
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &result, false); err != nil {
		return nil, err
	}

	c.session.establish(result.Token, &result.User)
	return &result, nil
}

// Logout отзывает токен на сервере и сбрасывает локальную сессию
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil, true)
	if err != nil && !errors.Is(err, ErrUnauthenticated) {
		return err
	}
	c.session.Clear()
	return nil
}

// Posts загружает ленту
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var result struct {
		Posts []Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &result, true); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

// CreatePost публикует новый пост
func (c *Client) CreatePost(ctx context.Context, content string) (*Post, error) {
	body := map[string]string{"content": content}

	var result struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, &result, true); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// ToggleReaction переключает лайк на посте
func (c *Client) ToggleReaction(ctx context.Context, postID uuid.UUID) (*ReactionResult, error) {
	path := fmt.Sprintf("/api/posts/%s/reaction", postID)

	var result ReactionResult
	if err := c.do(ctx, http.MethodPost, path, nil, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authed {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Любой 401 на аутентифицированном вызове завершает сессию;
	// других автоматических путей завершения нет. 401 на публичном
	// вызове (неверный пароль) текущую сессию не трогает
	if resp.StatusCode == http.StatusUnauthorized && authed {
		c.session.Invalidate()
		return ErrUnauthenticated
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
