package identity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func mustCreateUser(t *testing.T, s Store, username, name string) User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), CreateUserInput{
		Username:     username,
		Name:         name,
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
	})
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return u
}

func TestMemoryStore_CreateUser_DuplicateUsername(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	mustCreateUser(t, s, "achmadrifqi09", "Achmad Rifqi")

	_, err := s.CreateUser(context.Background(), CreateUserInput{
		Username:     "achmadrifqi09",
		Name:         "Someone Else",
		PasswordHash: "hash",
	})
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	var ce ConflictError
	if !errors.As(err, &ce) || ce.Field != "username" {
		t.Fatalf("expected username-scoped conflict, got %v", err)
	}
}

func TestMemoryStore_TokenLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	u := mustCreateUser(t, s, "rifqi09", "rifqi")

	// Anonymous: no token resolves.
	if u.Authenticated() {
		t.Fatalf("fresh user must be anonymous")
	}
	if _, err := s.GetUserByToken(ctx, "anything"); !IsNotFound(err) {
		t.Fatalf("expected not found for unissued token, got %v", err)
	}

	// Login: token resolves to the user, stored only as a hash.
	tok := "session-token-1"
	if err := s.SetToken(ctx, u.ID, &tok, time.Now().UTC()); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	got, err := s.GetUserByToken(ctx, tok)
	if err != nil {
		t.Fatalf("GetUserByToken: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("token resolved to user %d, want %d", got.ID, u.ID)
	}
	if !got.Authenticated() {
		t.Fatalf("user must be authenticated after login")
	}
	if got.TokenHash == nil || *got.TokenHash == tok {
		t.Fatalf("stored token must be a hash, not the plain token")
	}

	// Re-login overwrites: the old token stops resolving.
	tok2 := "session-token-2"
	if err := s.SetToken(ctx, u.ID, &tok2, time.Now().UTC()); err != nil {
		t.Fatalf("SetToken (overwrite): %v", err)
	}
	if _, err := s.GetUserByToken(ctx, tok); !IsNotFound(err) {
		t.Fatalf("old token must stop resolving after overwrite, got %v", err)
	}
	if _, err := s.GetUserByToken(ctx, tok2); err != nil {
		t.Fatalf("new token must resolve: %v", err)
	}

	// Logout clears: no token resolves.
	if err := s.SetToken(ctx, u.ID, nil, time.Now().UTC()); err != nil {
		t.Fatalf("SetToken(nil): %v", err)
	}
	if _, err := s.GetUserByToken(ctx, tok2); !IsNotFound(err) {
		t.Fatalf("cleared token must stop resolving, got %v", err)
	}

	got, err = s.GetUserByUsername(ctx, "rifqi09")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.Authenticated() {
		t.Fatalf("user must be anonymous after logout")
	}
	if got.TokenHash != nil {
		t.Fatalf("token hash must be nil after logout")
	}
}

func TestMemoryStore_Mutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	u := mustCreateUser(t, s, "rifqi09", "rifqi")

	// Name and password land together in one call.
	name := "Achmad"
	hash := "new-hash"
	if err := s.UpdateProfile(ctx, u.ID, &name, &hash, time.Now().UTC()); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := s.GetUserByUsername(ctx, "rifqi09")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.Name != "Achmad" || got.PasswordHash != "new-hash" {
		t.Fatalf("mutations not applied: %+v", got)
	}

	// Nil fields are left untouched.
	name2 := "Achmad Rifqi"
	if err := s.UpdateProfile(ctx, u.ID, &name2, nil, time.Now().UTC()); err != nil {
		t.Fatalf("UpdateProfile (name only): %v", err)
	}
	got, err = s.GetUserByUsername(ctx, "rifqi09")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.Name != "Achmad Rifqi" || got.PasswordHash != "new-hash" {
		t.Fatalf("partial patch touched an absent field: %+v", got)
	}

	empty := ""
	if err := s.UpdateProfile(ctx, u.ID, nil, &empty, time.Now().UTC()); !IsInvalidInput(err) {
		t.Fatalf("expected invalid input for empty hash, got %v", err)
	}

	name3 := "x"
	if err := s.UpdateProfile(ctx, 999, &name3, nil, time.Now().UTC()); !IsNotFound(err) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}
