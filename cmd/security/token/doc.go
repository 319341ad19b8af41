// Package token provides session-token hashing primitives.
//
// It is the single source of truth for how session tokens are stored
// server-side: the plain token lives only on the client, the store keeps
// a 64-char hex digest suitable for constant-time comparison.
//
// Environment:
// - ROLODEX_TOKEN_HMAC_KEY: when set, enables HMAC mode.
// Policy:
//   - If RequireTokenHMAC=true, callers MUST enforce a minimum key size (>= 32 bytes)
//     and MUST use HMAC (no SHA fallback).
package token
