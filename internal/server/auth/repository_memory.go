package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryUserRepository keeps users in a map. It backs the server when
// no database is configured, and the tests.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewInMemoryUserRepository creates an empty in-memory repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*User)}
}

// Save stores the user, generating an identifier and creation timestamp
// when absent. The Postgres schema defaults created_at the same way.
func (r *InMemoryUserRepository) Save(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// FindByLogin matches username or email, case-insensitive.
func (r *InMemoryUserRepository) FindByLogin(_ context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lowered := strings.ToLower(login)
	for _, user := range r.users {
		if strings.ToLower(user.Username) == lowered || strings.ToLower(user.Email) == lowered {
			found := *user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID returns the user with the identifier.
func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *user
	return &found, nil
}

// FindConflict returns a user already holding the username or email.
func (r *InMemoryUserRepository) FindConflict(_ context.Context, username, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loweredUsername := strings.ToLower(username)
	loweredEmail := strings.ToLower(email)
	for _, user := range r.users {
		if strings.ToLower(user.Username) == loweredUsername || strings.ToLower(user.Email) == loweredEmail {
			found := *user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}
