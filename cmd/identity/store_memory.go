package identity

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a dev/test fallback when DB is not configured.
// It mirrors PostgresStore semantics: unique usernames, hashed tokens,
// last-writer-wins token assignment.
type MemoryStore struct {
	mu sync.Mutex

	nextID     int64
	users      map[int64]User
	byUsername map[string]int64
	byToken    map[string]int64 // token hash -> user id
}

// NewMemoryStore constructs an in-memory Store implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]User),
		byUsername: make(map[string]int64),
		byToken:    make(map[string]int64),
	}
}

// CreateUser creates a new user, enforcing username uniqueness.
func (s *MemoryStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	const op = "identity.CreateUser"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "username is required"}
	}
	if strings.TrimSpace(in.PasswordHash) == "" {
		return User{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "password hash is required"}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return User{}, ConflictError{Op: op, Field: "username"}
	}

	s.nextID++
	u := User{
		ID:           s.nextID,
		Username:     username,
		Name:         in.Name,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	s.byUsername[username] = u.ID

	return u, nil
}

// GetUserByUsername looks up a user by exact username.
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	const op = "identity.GetUserByUsername"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[strings.TrimSpace(username)]
	if !ok {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}
	return s.users[id], nil
}

// GetUserByToken resolves a plain session token to its user.
func (s *MemoryStore) GetUserByToken(ctx context.Context, token string) (User, error) {
	const op = "identity.GetUserByToken"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byToken[HashSessionTokenHex(token)]
	if !ok {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}
	return s.users[id], nil
}

// SetToken stores the hash of a fresh token, or clears it when token is nil.
func (s *MemoryStore) SetToken(ctx context.Context, userID int64, token *string, now time.Time) error {
	const op = "identity.SetToken"

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return NotFoundError{Op: op, Resource: "user"}
	}

	if u.TokenHash != nil {
		delete(s.byToken, *u.TokenHash)
	}

	if token == nil {
		u.TokenHash = nil
	} else {
		h := HashSessionTokenHex(*token)
		u.TokenHash = &h
		s.byToken[h] = userID
	}
	u.UpdatedAt = nowOrUTC(now)
	s.users[userID] = u

	return nil
}

// UpdateProfile applies a partial profile patch under a single lock hold.
func (s *MemoryStore) UpdateProfile(ctx context.Context, userID int64, name *string, passwordHash *string, now time.Time) error {
	const op = "identity.UpdateProfile"

	if passwordHash != nil && strings.TrimSpace(*passwordHash) == "" {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "password hash is required"}
	}
	return s.update(ctx, op, userID, now, func(u *User) {
		if name != nil {
			u.Name = *name
		}
		if passwordHash != nil {
			u.PasswordHash = *passwordHash
		}
	})
}

func (s *MemoryStore) update(ctx context.Context, op string, userID int64, now time.Time, fn func(*User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return NotFoundError{Op: op, Resource: "user"}
	}
	fn(&u)
	u.UpdatedAt = nowOrUTC(now)
	s.users[userID] = u
	return nil
}
