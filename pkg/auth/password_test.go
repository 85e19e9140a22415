package auth

import "testing"

func TestHashPasswordAndCheckPasswordBcrypt(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "" || hash == "s3cret" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}
	if !CheckPassword("s3cret", hash) {
		t.Fatalf("expected bcrypt password check to pass")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("expected bcrypt password check to fail")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected empty password to fail")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if CheckPassword("s3cret", "salt$deadbeef") {
		t.Fatalf("expected malformed hash to fail")
	}
}
