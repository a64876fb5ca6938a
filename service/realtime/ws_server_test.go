package realtime

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwtlib "github.com/JacobHeater/upsign/tools/security"
)

const testCookie = "upsign_token"

func testWSServer() (*WSServer, jwtlib.Options) {
	opts := jwtlib.DefaultOptions([]byte("test-secret"))
	return NewWSServer(NewHub(), opts, testCookie), opts
}

func TestAuthenticateFromQuery(t *testing.T) {
	s, opts := testWSServer()
	token, _, _, err := jwtlib.Generate(opts, "alice", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	userID, err := s.authenticate(req)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if userID != "alice" {
		t.Errorf("userID = %q, want alice", userID)
	}
}

func TestAuthenticateFromCookie(t *testing.T) {
	s, opts := testWSServer()
	token, _, _, err := jwtlib.Generate(opts, "bob", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	userID, err := s.authenticate(req)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if userID != "bob" {
		t.Errorf("userID = %q, want bob", userID)
	}
}

func TestAuthenticateFromBearerHeader(t *testing.T) {
	s, opts := testWSServer()
	token, _, _, err := jwtlib.Generate(opts, "carol", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	userID, err := s.authenticate(req)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if userID != "carol" {
		t.Errorf("userID = %q, want carol", userID)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	s, _ := testWSServer()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if _, err := s.authenticate(req); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	s, _ := testWSServer()
	other := jwtlib.DefaultOptions([]byte("other-secret"))
	token, _, _, err := jwtlib.Generate(other, "mallory", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	if _, err := s.authenticate(req); err == nil {
		t.Fatal("expected error for forged token")
	}
	// nothing registered for the rejected attempt
	if s.hub.Registry().Len() != 0 {
		t.Error("rejected connection left registry state behind")
	}
}
