package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	userID := uuid.New().String()
	email := "staff@example.com"

	token, err := GenerateToken(userID, email, RoleStaff)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	extractedUserID, extractedEmail, extractedRole, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if extractedUserID != userID {
		t.Fatalf("Expected userID %s, got %s", userID, extractedUserID)
	}
	if extractedEmail != email {
		t.Fatalf("Expected email %s, got %s", email, extractedEmail)
	}
	if extractedRole != RoleStaff {
		t.Fatalf("Expected role %s, got %s", RoleStaff, extractedRole)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestGenerateTokenRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken(uuid.New().String(), "a@example.com", "CHEF"); err == nil {
		t.Fatal("expected error for role outside the known set")
	}
}

// A well-signed token whose role is not in the known set must still be
// rejected at validation.
func TestValidateTokenRejectsForeignRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	claims := jwt.MapClaims{
		"userID": uuid.New().String(),
		"email":  "a@example.com",
		"role":   "CHEF",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key-12345"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, _, _, err := ValidateToken(token); err == nil {
		t.Fatal("expected error for token with unknown role")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	claims := jwt.MapClaims{
		"userID": uuid.New().String(),
		"email":  "a@example.com",
		"role":   RoleStaff,
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key-12345"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, _, _, err := ValidateToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenLifetimeConfigurable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")
	t.Setenv("JWT_TTL_HOURS", "2")

	token, err := GenerateToken(uuid.New().String(), "a@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret-key-12345"), nil
	}); err != nil {
		t.Fatalf("parsing token: %v", err)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < time.Hour || ttl > 2*time.Hour {
		t.Fatalf("expected roughly a 2h lifetime, got %s", ttl)
	}
}
