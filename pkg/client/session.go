package client

import (
	"encoding/json"
	"sync"
)

// Ключи, под которыми клиент хранит состояние сессии
const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

// Storage — долговременное хранилище на стороне клиента
// (аналог localStorage в браузерном клиенте)
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStorage — простое in-memory хранилище
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Session держит токен и пользователя текущей сессии, зеркалируя их
// в Storage. Никаких глобальных синглтонов: сессия передаётся явно
// каждому аутентифицированному вызову. OnInvalidate — единственная
// точка автоматического завершения сессии, дёргается на любой 401.
type Session struct {
	mu           sync.Mutex
	token        string
	user         *User
	storage      Storage
	onInvalidate func()
}

// NewSession поднимает сессию из хранилища, если она там сохранена
func NewSession(storage Storage, onInvalidate func()) *Session {
	s := &Session{storage: storage, onInvalidate: onInvalidate}

	if token, ok := storage.Get(TokenKey); ok {
		s.token = token
	}
	if raw, ok := storage.Get(UserKey); ok {
		var user User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = &user
		}
	}

	return s
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated сообщает, есть ли сохранённая сессия.
// Клиент без сессии не делает защищённых вызовов, а уходит на логин
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) establish(token string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user

	s.storage.Set(TokenKey, token)
	if raw, err := json.Marshal(user); err == nil {
		s.storage.Set(UserKey, string(raw))
	}
}

// Clear сбрасывает сессию без вызова хука (логаут по желанию пользователя)
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Invalidate сбрасывает сессию и дёргает хук (сервер ответил 401)
func (s *Session) Invalidate() {
	s.mu.Lock()
	hook := s.onInvalidate
	s.clearLocked()
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (s *Session) clearLocked() {
	s.token = ""
	s.user = nil
	s.storage.Delete(TokenKey)
	s.storage.Delete(UserKey)
}
