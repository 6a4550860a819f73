package auth

import (
	"errors"
	"testing"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/domain"
)

func setupAuth(t *testing.T) *Service {
	store, err := db.Open(":memory:", db.Options{})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewService(store)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuth(t)

	usr, err := svc.Register("Alice", "alice@example.com", "123456", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if usr != "1" {
		t.Errorf("Expected first usr to be 1, got %s", usr)
	}

	user, err := svc.Login(usr, "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("Expected Alice, got %s", user.Name)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := setupAuth(t)
	usr, err := svc.Register("Alice", "alice@example.com", "123456", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(usr, "wrong"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Wrong password should fail with invalid input, got %v", err)
	}
	if _, err := svc.Login("99", "secret"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Unknown user should fail identically, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := setupAuth(t)

	cases := []struct {
		name, email, phone, password string
	}{
		{"", "a@b.com", "123", "secret"},
		{"Alice", "not-an-email", "123", "secret"},
		{"Alice", "a@b.com", "phone", "secret"},
		{"Alice", "a@b.com", "123", "x"},
	}
	for _, c := range cases {
		if _, err := svc.Register(c.name, c.email, c.phone, c.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Register(%q, %q, %q, %q) should fail validation, got %v",
				c.name, c.email, c.phone, c.password, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuth(t)
	if _, err := svc.Register("Alice", "alice@example.com", "123456", "secret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register("Alicia", "alice@example.com", "654321", "secret"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Duplicate email should conflict, got %v", err)
	}
}

func TestPasswordsAreHashed(t *testing.T) {
	svc := setupAuth(t)
	usr, err := svc.Register("Alice", "alice@example.com", "123456", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err2, hash := svc.store.ReadPasswordHash(usr)
	if err2 != nil {
		t.Fatalf("Failed to read hash: %v", err2)
	}
	if *hash == "secret" {
		t.Error("Password must not be stored in plain text")
	}
}
