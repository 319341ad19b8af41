package identity

import (
	"context"
	"time"
)

// User is the canonical security principal.
//
// A user has exactly two session states: anonymous (TokenHash == nil) and
// authenticated (TokenHash != nil). Login overwrites any prior token, logout
// clears it; at most one live token per user.
//
// IMPORTANT: TokenHash is the server-stored digest; the plain session token is
// never stored.
type User struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	TokenHash    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Authenticated reports whether the user currently holds a live session token.
func (u User) Authenticated() bool { return u.TokenHash != nil }

// CreateUserInput describes a user registration request.
// PasswordHash must already be an encoded Argon2id hash.
type CreateUserInput struct {
	Username     string
	Name         string
	PasswordHash string
	Now          time.Time
}

// Store is the identity persistence boundary.
//
// Implementations rely on the underlying store's own uniqueness guarantees;
// token assignment is last-writer-wins.
type Store interface {
	// CreateUser creates a new user. A duplicate username surfaces as
	// ConflictError with Field "username".
	CreateUser(ctx context.Context, in CreateUserInput) (User, error)

	// GetUserByUsername returns the user with the given username, or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (User, error)

	// GetUserByToken resolves a plain session token to its user, or ErrNotFound.
	// The token is hashed before lookup; unknown and revoked tokens are
	// indistinguishable from never-issued ones.
	GetUserByToken(ctx context.Context, token string) (User, error)

	// SetToken stores the hash of a fresh plain token, or clears the stored
	// token when token is nil (logout).
	SetToken(ctx context.Context, userID int64, token *string, now time.Time) error

	// UpdateProfile applies a partial profile patch in one operation: nil
	// fields are left untouched, and either both present fields persist or
	// neither does.
	UpdateProfile(ctx context.Context, userID int64, name *string, passwordHash *string, now time.Time) error
}
