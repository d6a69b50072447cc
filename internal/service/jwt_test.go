package service

import (
	"strings"
	"testing"

	"fanquest/internal/domain"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "unit-test-secret")
	InitJWT()
}

func TestJWTRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42, domain.RoleCreator)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	profileID, role, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if profileID != 42 {
		t.Errorf("profile id = %d, want 42", profileID)
	}
	if role != domain.RoleCreator {
		t.Errorf("role = %s, want creator", role)
	}
}

func TestJWTMissingRoleDefaultsToFan(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(7, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, role, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if role != domain.RoleFan {
		t.Errorf("role = %s, want fan", role)
	}
}

func TestJWTTamperedTokenRejected(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateJWT(42, domain.RoleFan)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// flip a character in the signature part
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, _, err := ParseJWT(tampered); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestJWTGarbageRejected(t *testing.T) {
	initTestJWT(t)

	if _, _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected garbage to be rejected")
	}
}
