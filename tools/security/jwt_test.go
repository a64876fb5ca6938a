package security

import (
	"testing"
	"time"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))
	token, hash, exp, err := Generate(opts, "user-1", []string{"app"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" || hash == "" {
		t.Fatal("empty token or hash")
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v not in the future", exp)
	}
	if hash != HashToken(token) {
		t.Error("hash mismatch")
	}

	claims, err := Verify(opts, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.UserID())
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, _, err := Generate(DefaultOptions([]byte("secret-a")), "user-1", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := Verify(DefaultOptions([]byte("secret-b")), token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	opts := DefaultOptions([]byte("secret"))
	opts.TTL = time.Millisecond
	token, _, _, err := Generate(opts, "user-1", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	time.Sleep(1100 * time.Millisecond) // exp has second resolution
	if _, err := Verify(opts, token); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}

func TestUnsupportedAlg(t *testing.T) {
	opts := Options{Secret: []byte("secret"), Alg: "RS256"}
	if _, _, _, err := Generate(opts, "user-1", nil); err == nil {
		t.Fatal("expected error for unsupported alg")
	}
}
