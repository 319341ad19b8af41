package password

import (
	"os"
	"strconv"
	"strings"
)

// Argon2idParams defines Argon2id hashing parameters.
// These values must be chosen carefully to balance security and performance.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams returns production-safe Argon2id defaults.
func DefaultParams() Argon2idParams {
	return Argon2idParams{
		MemoryKiB:   64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ParamsFromEnv returns DefaultParams with optional env overrides.
// Invalid or out-of-range values fall back to the default for that field.
func ParamsFromEnv() Argon2idParams {
	p := DefaultParams()

	if v, ok := envUint32("ROLODEX_ARGON2_MEMORY_KIB"); ok && v >= 8*1024 {
		p.MemoryKiB = v
	}
	if v, ok := envUint32("ROLODEX_ARGON2_ITERATIONS"); ok && v >= 1 {
		p.Iterations = v
	}
	if v, ok := envUint32("ROLODEX_ARGON2_PARALLELISM"); ok && v >= 1 && v <= 255 {
		p.Parallelism = uint8(v)
	}

	return p
}

func envUint32(key string) (uint32, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
