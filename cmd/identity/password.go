package identity

import "rolodex/cmd/security/password"

// HashPassword returns a PHC-style Argon2id hash string using the effective
// parameters (defaults plus env overrides).
func HashPassword(plain string) (string, error) {
	return password.Hash(plain, password.ParamsFromEnv())
}

// VerifyPassword checks a password against a PHC Argon2id hash.
// (false, nil) means a clean mismatch; any error means the hash is unusable.
func VerifyPassword(plain string, encodedPHC string) (bool, error) {
	return password.Verify(encodedPHC, plain, password.ParamsFromEnv())
}
