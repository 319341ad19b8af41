package app

import (
	"errors"

	"rolodex/cmd/security/token"
)

// ValidateSecurityConfig enforces the startup security policy.
//
// Fail-fast is intentional: silently falling back to weaker hashing in
// production is unacceptable. Enforcement validates the same module that
// performs the hashing (security/token).
func ValidateSecurityConfig(cfg Config) error {
	if !cfg.RequireTokenHMAC {
		return nil
	}

	// Minimum 32 bytes for an HMAC-SHA256 secret, measured in bytes because
	// the key is used raw.
	if _, err := token.HMACKeyFromEnv(32); err != nil {
		switch {
		case errors.Is(err, token.ErrHMACKeyMissing):
			return errors.New("security policy: ROLODEX_REQUIRE_TOKEN_HMAC=true but ROLODEX_TOKEN_HMAC_KEY is missing")
		case errors.Is(err, token.ErrHMACKeyTooShort):
			return errors.New("security policy: ROLODEX_REQUIRE_TOKEN_HMAC=true but ROLODEX_TOKEN_HMAC_KEY is too short (min 32 bytes)")
		default:
			return err
		}
	}

	// Hard assertion: session token hashing must actually be in HMAC mode in
	// this runtime, so a future fallback cannot slip in under policy.
	if !token.HMACEnabled() {
		return errors.New("security policy: ROLODEX_REQUIRE_TOKEN_HMAC=true but token hasher is not in HMAC mode")
	}

	return nil
}
