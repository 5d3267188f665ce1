package bearer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
)

// UserStore is the key-value identity store consumed by UserProvider. It
// stands in for a real database and can be swapped for any implementation.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, user *User) error
	List(ctx context.Context) ([]*User, error)
}

// MemoryStore is an in-memory UserStore. Reads dominate after seeding, so a
// RWMutex keeps concurrent lookups cheap while still allowing registration.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryStore creates an empty in-memory user store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[string]*User{},
	}
}

var _ UserStore = (*MemoryStore)(nil)

// GetByUsername retrieves a user record by its unique username
func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return user, nil
}

// Insert adds a user record. The username must not already exist.
func (s *MemoryStore) Insert(ctx context.Context, user *User) error {
	if user == nil || user.Username == "" {
		return errors.New("user requires a username", errors.CategoryBadInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return errors.New("username already taken", errors.CategoryConflict).
			WithMetadata(map[string]any{"username": user.Username})
	}

	if user.CreatedAt == nil {
		now := time.Now()
		user.CreatedAt = &now
	}

	s.users[user.Username] = user
	return nil
}

// List returns all user records ordered by username
func (s *MemoryStore) List(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Username < out[j].Username
	})

	return out, nil
}

// Register hashes the plaintext password and inserts the resulting record.
// It is the only place a plaintext password crosses the store boundary.
func (s *MemoryStore) Register(ctx context.Context, username, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.Insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
