package auth

import (
	"testing"

	"guarderia/internal/faults"
)

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register("Test User", "test@example.com", password, RoleStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}

	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	if _, err := service.Register("A", "dup@example.com", "Password@123", RoleStaff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.Register("B", "dup@example.com", "Password@456", RoleStaff)
	if !faults.Is(err, faults.Conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service := NewService(NewInMemoryUserRepository())

	_, err := service.Register("A", "a@example.com", "Password@123", "CHEF")
	if !faults.Is(err, faults.Validation) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestRegisterDefaultsToStaffRole(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	user, err := service.Register("A", "a@example.com", "Password@123", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != RoleStaff {
		t.Fatalf("expected default role STAFF, got %s", user.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := NewInMemoryUserRepository()
	service := NewService(repo)

	if _, err := service.Register("A", "a@example.com", "Password@123", RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login("a@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
