// Package identity implements the user identity store and session tokens.
//
// It contains the security primitives (password hashing, token generation and
// hashing) and the store interface used by the HTTP layer.
//
// This package is intentionally dependency-light and security-first.
package identity
