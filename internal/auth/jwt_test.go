package auth

import (
	"strings"
	"testing"

	"github.com/civicsense/backend/internal/models"
)

const testSecret = "jwt-test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("jane@example.com", models.RoleMunicipal, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("email: got %q", claims.Email)
	}
	if claims.Role != models.RoleMunicipal {
		t.Errorf("role: got %q", claims.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("jane@example.com", models.RoleUser, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(token, "a-different-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseToken_Tampered(t *testing.T) {
	token, err := GenerateToken("jane@example.com", models.RoleUser, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	parts := strings.Split(token, ".")
	tampered := parts[0] + ".eyJlbWFpbCI6ImV2aWxAZXhhbXBsZS5jb20ifQ." + parts[2]
	if _, err := ParseToken(tampered, testSecret); err == nil {
		t.Fatal("expected error for tampered payload")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", testSecret); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
