package identity

import (
	"crypto/rand"
	"encoding/base64"

	"rolodex/cmd/security/token"
)

// Token hashing hardening:
//
// - identity delegates session-token hashing to cmd/security/token as the
//   single source of truth.
// - Output is always a 64-char hex string.
//
// Recommendation (prod):
// - Set ROLODEX_TOKEN_HMAC_KEY to a long random secret (>= 32 bytes).

// NewSessionToken returns a cryptographically random token suitable for
// session authentication. It is URL-safe (base64url) and SHOULD be stored only
// on the client. The server stores only a hash (see HashSessionTokenHex).
func NewSessionToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}

	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// URL-safe, no padding.
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashSessionTokenHex returns the server-stored hash for session tokens.
// It uses HMAC-SHA256 if ROLODEX_TOKEN_HMAC_KEY is set; otherwise falls back to SHA-256.
func HashSessionTokenHex(tokenStr string) string { return token.HashSessionTokenHex(tokenStr) }
