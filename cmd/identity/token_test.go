package identity

import "testing"

func TestNewSessionToken(t *testing.T) {
	t.Parallel()

	a, err := NewSessionToken(32)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	b, err := NewSessionToken(32)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	if a == b {
		t.Fatalf("two tokens must not collide")
	}
	// 32 random bytes -> 43 base64url chars, no padding.
	if len(a) != 43 {
		t.Fatalf("token length=%d want 43", len(a))
	}
	for _, r := range a {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			t.Fatalf("token contains non-URL-safe rune %q", r)
		}
	}
}

func TestNewSessionToken_DefaultSize(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken(0)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if len(tok) != 43 {
		t.Fatalf("default token length=%d want 43", len(tok))
	}
}

func TestHashSessionTokenHex_Stable(t *testing.T) {
	t.Parallel()

	a := HashSessionTokenHex("tok")
	b := HashSessionTokenHex("tok")
	if a != b {
		t.Fatalf("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("hash length=%d want 64", len(a))
	}
	if a == "tok" {
		t.Fatalf("hash must differ from input")
	}
}
