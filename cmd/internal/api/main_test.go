package api

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Reduced Argon2id cost keeps the handler tests fast; the defaults are
	// sized for production hardware.
	os.Setenv("ROLODEX_ARGON2_MEMORY_KIB", "8192")
	os.Setenv("ROLODEX_ARGON2_ITERATIONS", "1")
	os.Setenv("ROLODEX_ARGON2_PARALLELISM", "1")

	os.Exit(m.Run())
}
