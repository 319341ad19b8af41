package password

import (
	"strings"
	"testing"
)

// testParams keeps hashing fast in tests while staying within Verify bounds.
func testParams() Argon2idParams {
	return Argon2idParams{
		MemoryKiB:   8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	p := testParams()

	enc, err := Hash("rahasia", p)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(enc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC prefix: %q", enc)
	}

	ok, err := Verify(enc, "rahasia", p)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected match for correct password")
	}

	ok, err = Verify(enc, "wrong", p)
	if err != nil {
		t.Fatalf("Verify mismatch: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	p := testParams()
	a, err := Hash("rahasia", p)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("rahasia", p)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	t.Parallel()

	if _, err := Hash("", testParams()); err != ErrEmptyPassword {
		t.Fatalf("got err=%v want=%v", err, ErrEmptyPassword)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$AAAA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$AAAA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$AAAA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!$AAAA",
	}
	for _, enc := range cases {
		if _, err := Verify(enc, "x", testParams()); err != ErrInvalidHash {
			t.Fatalf("Verify(%q): got err=%v want=%v", enc, err, ErrInvalidHash)
		}
	}
}

func TestVerifyRejectsOversizedParams(t *testing.T) {
	t.Parallel()

	// Hash with large params, verify with tight limits.
	big := Argon2idParams{
		MemoryKiB:   32 * 1024,
		Iterations:  4,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
	enc, err := Hash("rahasia", big)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if _, err := Verify(enc, "rahasia", testParams()); err != ErrInvalidHash {
		t.Fatalf("got err=%v want=%v", err, ErrInvalidHash)
	}
}
