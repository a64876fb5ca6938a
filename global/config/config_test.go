package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Global.Server.Port == 0 {
		t.Error("defaults lost")
	}
}

func TestLoadOverlaysYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("server:\n  port: 9999\nauth:\n  otp_ttl_minutes: 10\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Global.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", Global.Server.Port)
	}
	if got := OTPTTL().Minutes(); got != 10 {
		t.Errorf("otp ttl = %v minutes, want 10", got)
	}
	// untouched keys keep their defaults
	if Global.Mongo.Database == "" {
		t.Error("mongo defaults lost on partial overlay")
	}
}

func TestEnvWins(t *testing.T) {
	t.Setenv("UPSIGN_PORT", "7001")
	t.Setenv("UPSIGN_JWT_SECRET", "env-secret")
	if err := Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Global.Server.Port != 7001 {
		t.Errorf("port = %d, want 7001", Global.Server.Port)
	}
	if string(GetJwtSecret()) != "env-secret" {
		t.Error("jwt secret not taken from env")
	}
}

func TestUnconfiguredJwtSecretIsRandomAndStable(t *testing.T) {
	prev := Global.Auth.JWTSecret
	Global.Auth.JWTSecret = ""
	defer func() { Global.Auth.JWTSecret = prev }()

	a := GetJwtSecret()
	if len(a) < 32 {
		t.Fatalf("fallback secret too short: %d bytes", len(a))
	}
	if string(a) != string(GetJwtSecret()) {
		t.Error("fallback secret changed between calls")
	}
}
