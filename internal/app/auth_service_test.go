package app_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/xivind/gas-gauge/internal/adapter/memory"
	"github.com/xivind/gas-gauge/internal/app"
)

func newAuthService(t *testing.T) (*app.AuthService, *memory.DB) {
	t.Helper()
	db := memory.New()
	return app.NewAuthService(db, db), db
}

func TestLogin(t *testing.T) {
	svc, db := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateUser(context.Background(), "alex", string(hash)); err != nil {
		t.Fatal(err)
	}

	token, err := svc.Login(context.Background(), "alex", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	user, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.Username != "alex" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, db := newAuthService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if _, err := db.CreateUser(context.Background(), "alex", string(hash)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name               string
		username, password string
	}{
		{"wrong password", "alex", "nope"},
		{"unknown user", "nobody", "hunter22"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, app.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	svc, db := newAuthService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if _, err := db.CreateUser(context.Background(), "alex", string(hash)); err != nil {
		t.Fatal(err)
	}
	token, err := svc.Login(context.Background(), "alex", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ValidateSession(context.Background(), token); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateSession_UnknownToken(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.ValidateSession(context.Background(), "bogus")
	if !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCreateInitialUser(t *testing.T) {
	svc, db := newAuthService(t)

	if err := svc.CreateInitialUser(context.Background(), "alex", "hunter22"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := db.CountUsers(context.Background())
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}

	if err := svc.CreateInitialUser(context.Background(), "eve", "letmein1"); err == nil {
		t.Fatal("expected error once a user exists")
	}
}

func TestLoginSSO_ProvisionsUser(t *testing.T) {
	svc, db := newAuthService(t)

	token, err := svc.LoginSSO(context.Background(), "alex@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	user, err := db.GetUserByName(context.Background(), "alex@example.com")
	if err != nil || user == nil {
		t.Fatalf("expected auto-provisioned user, got %v, %v", user, err)
	}

	// Second login reuses the account.
	if _, err := svc.LoginSSO(context.Background(), "alex@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := db.CountUsers(context.Background())
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}
