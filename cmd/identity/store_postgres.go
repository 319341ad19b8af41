package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements identity persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Uniqueness is enforced by the database; a duplicate insert simply fails
//   and is classified into a ConflictError.
// - Errors are mapped to identity sentinel kinds where appropriate.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const userColumns = `id, username, name, password_hash, token_hash, created_at, updated_at`

// CreateUser creates a new user row.
func (s *PostgresStore) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
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

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id`,
		username, in.Name, in.PasswordHash, now,
	).Scan(&id)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return User{}, ConflictError{Op: op, Field: field}
		}
		return User{}, err
	}

	return User{
		ID:           id,
		Username:     username,
		Name:         in.Name,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetUserByUsername looks up a user by exact username.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	const op = "identity.GetUserByUsername"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	return s.getUser(ctx, op,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		strings.TrimSpace(username),
	)
}

// GetUserByToken resolves a plain session token to its user.
// Unknown, cleared, and never-issued tokens all surface as ErrNotFound.
func (s *PostgresStore) GetUserByToken(ctx context.Context, token string) (User, error) {
	const op = "identity.GetUserByToken"

	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, NotFoundError{Op: op, Resource: "user"}
	}

	return s.getUser(ctx, op,
		`SELECT `+userColumns+` FROM users WHERE token_hash = $1`,
		HashSessionTokenHex(token),
	)
}

// SetToken stores the hash of a fresh token, or clears it when token is nil.
// Last-writer-wins: a second login overwrites the prior token.
func (s *PostgresStore) SetToken(ctx context.Context, userID int64, token *string, now time.Time) error {
	const op = "identity.SetToken"

	var hash *string
	if token != nil {
		h := HashSessionTokenHex(*token)
		hash = &h
	}

	return s.updateUser(ctx, op,
		`UPDATE users SET token_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, nowOrUTC(now), userID,
	)
}

// UpdateProfile applies a partial profile patch in a single statement, so a
// combined name+password change persists atomically.
func (s *PostgresStore) UpdateProfile(ctx context.Context, userID int64, name *string, passwordHash *string, now time.Time) error {
	const op = "identity.UpdateProfile"

	if passwordHash != nil && strings.TrimSpace(*passwordHash) == "" {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "password hash is required"}
	}

	return s.updateUser(ctx, op,
		`UPDATE users
		    SET name = COALESCE($1, name),
		        password_hash = COALESCE($2, password_hash),
		        updated_at = $3
		  WHERE id = $4`,
		name, passwordHash, nowOrUTC(now), userID,
	)
}

// ---- helpers ----

func (s *PostgresStore) getUser(ctx context.Context, op, query string, arg any) (User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Name,
		&u.PasswordHash,
		&u.TokenHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, NotFoundError{Op: op, Resource: "user"}
		}
		return User{}, err
	}
	return u, nil
}

func (s *PostgresStore) updateUser(ctx context.Context, op, query string, args ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return ConflictError{Op: op, Field: field}
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "user"}
	}
	return nil
}

func nowOrUTC(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}

func pgClassifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != "23505" { // unique_violation
		return "", false
	}

	// Prefer stable schema constraint names. Fall back to heuristic substring matching.
	c := strings.ToLower(strings.TrimSpace(pgErr.ConstraintName))

	switch c {
	case "uq_users_username":
		return "username", true
	case "uq_users_token_hash":
		return "token", true
	default:
		switch {
		case strings.Contains(c, "username"):
			return "username", true
		case strings.Contains(c, "token"):
			return "token", true
		default:
			return "unique", true
		}
	}
}
