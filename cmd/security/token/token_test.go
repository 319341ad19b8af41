package token

import "testing"

func TestHashSHA256Hex(t *testing.T) {
	t.Parallel()

	got := HashSHA256Hex("test")
	const want = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	if got != want {
		t.Fatalf("HashSHA256Hex(test)=%q want=%q", got, want)
	}
	if len(got) != 64 {
		t.Fatalf("digest length=%d want 64", len(got))
	}
}

func TestHashHMACSHA256Hex(t *testing.T) {
	t.Parallel()

	a := HashHMACSHA256Hex("test", []byte("key-1"))
	b := HashHMACSHA256Hex("test", []byte("key-2"))
	if a == b {
		t.Fatalf("different keys must produce different digests")
	}
	if len(a) != 64 || len(b) != 64 {
		t.Fatalf("digest lengths=%d,%d want 64", len(a), len(b))
	}
	if a == HashSHA256Hex("test") {
		t.Fatalf("HMAC digest must differ from plain SHA-256")
	}
}

func TestHashSessionTokenHex_FallbackWithoutKey(t *testing.T) {
	t.Setenv(HMACEnvKey, "")

	if got := HashSessionTokenHex("abc"); got != HashSHA256Hex("abc") {
		t.Fatalf("expected SHA-256 fallback when no HMAC key is set")
	}
}

func TestHashSessionTokenHex_HMACWithKey(t *testing.T) {
	t.Setenv(HMACEnvKey, "0123456789abcdef0123456789abcdef")

	want := HashHMACSHA256Hex("abc", []byte("0123456789abcdef0123456789abcdef"))
	if got := HashSessionTokenHex("abc"); got != want {
		t.Fatalf("expected HMAC digest when key is set")
	}
}

func TestHMACKeyFromEnv(t *testing.T) {
	t.Setenv(HMACEnvKey, "")
	if _, err := HMACKeyFromEnv(32); err != ErrHMACKeyMissing {
		t.Fatalf("missing key: got err=%v want=%v", err, ErrHMACKeyMissing)
	}

	t.Setenv(HMACEnvKey, "short")
	if _, err := HMACKeyFromEnv(32); err != ErrHMACKeyTooShort {
		t.Fatalf("short key: got err=%v want=%v", err, ErrHMACKeyTooShort)
	}

	t.Setenv(HMACEnvKey, "0123456789abcdef0123456789abcdef")
	key, err := HMACKeyFromEnv(32)
	if err != nil {
		t.Fatalf("valid key: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("key length=%d want 32", len(key))
	}
}
