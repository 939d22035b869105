package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"oak-ledger/internal/model"
	"oak-ledger/pkg/ledgerapi"
)

type fakeAuth struct {
	token     string
	err       error
	updateMsg string
	calls     int
}

func (f *fakeAuth) Login(ctx context.Context, creds model.Credentials) (string, error) {
	f.calls++
	return f.token, f.err
}

func (f *fakeAuth) UpdateAccount(ctx context.Context, upd model.AccountUpdate) (string, error) {
	f.calls++
	return f.updateMsg, f.err
}

type failingStorage struct{ *MemoryStorage }

func (failingStorage) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func signed(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginPersistsToken(t *testing.T) {
	storage := NewMemoryStorage()
	app := NewAppContext(storage, RoleAdmin, nil)
	auth := &fakeAuth{token: "opaque-token"}

	if app.Authenticated() {
		t.Fatal("expected no session before login")
	}
	if err := app.Login(context.Background(), auth, model.Credentials{Email: "admin@oakwoods.com", Password: "secret"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !app.Authenticated() || app.Token() != "opaque-token" {
		t.Fatal("expected session after login")
	}
	if v, ok, _ := storage.Get(context.Background(), TokenKey); !ok || v != "opaque-token" {
		t.Fatalf("expected token persisted under %q, got %q", TokenKey, v)
	}

	// a fresh process picks the token back up
	restored := NewAppContext(storage, RoleAdmin, nil)
	if err := restored.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if !restored.Authenticated() {
		t.Error("expected restored session")
	}

	if err := app.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if app.Authenticated() {
		t.Error("expected no session after logout")
	}
	if _, ok, _ := storage.Get(context.Background(), TokenKey); ok {
		t.Error("expected token removed from storage")
	}
}

func TestLoginRejectedKeepsSession(t *testing.T) {
	app := NewAppContext(NewMemoryStorage(), RoleAdmin, nil)
	auth := &fakeAuth{err: &ledgerapi.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}}

	err := app.Login(context.Background(), auth, model.Credentials{Email: "admin@oakwoods.com", Password: "wrong"})
	var aerr *AuthError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if aerr.Message != "Invalid email or password" {
		t.Errorf("expected server message verbatim, got %q", aerr.Message)
	}
	if app.Authenticated() {
		t.Error("expected no session after rejected login")
	}
}

func TestLoginValidatesLocally(t *testing.T) {
	app := NewAppContext(NewMemoryStorage(), RoleAdmin, nil)
	auth := &fakeAuth{token: "t"}

	err := app.Login(context.Background(), auth, model.Credentials{Email: " ", Password: "x"})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if auth.calls != 0 {
		t.Error("expected no remote call")
	}
}

func TestLoginStorageFailure(t *testing.T) {
	app := NewAppContext(failingStorage{NewMemoryStorage()}, RoleAdmin, nil)
	err := app.Login(context.Background(), &fakeAuth{token: "t"}, model.Credentials{Email: "a@b.c", Password: "x"})
	if err == nil {
		t.Fatal("expected storage error")
	}
	if app.Authenticated() {
		t.Error("expected no session when the token could not be saved")
	}
}

func TestJWTExpiryAndIdentity(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	storage := NewMemoryStorage()
	app := NewAppContext(storage, RoleAdmin, nil)
	app.now = func() time.Time { return now }

	testCases := []struct {
		name          string
		claims        Claims
		authenticated bool
		identity      string
	}{
		{
			name: "valid with email",
			claims: Claims{Email: "admin@oakwoods.com", RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
			authenticated: true,
			identity:      "admin@oakwoods.com",
		},
		{
			name: "subject only",
			claims: Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "owner@oakwoods.com",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			}},
			authenticated: true,
			identity:      "owner@oakwoods.com",
		},
		{
			name: "expired",
			claims: Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin@oakwoods.com",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}},
			authenticated: false,
			identity:      "admin@oakwoods.com",
		},
		{
			name:          "no exp",
			claims:        Claims{Email: "admin@oakwoods.com"},
			authenticated: true,
			identity:      "admin@oakwoods.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_ = storage.Set(context.Background(), TokenKey, signed(t, tc.claims))
			if err := app.Bootstrap(context.Background()); err != nil {
				t.Fatalf("bootstrap failed: %v", err)
			}
			if got := app.Authenticated(); got != tc.authenticated {
				t.Errorf("expected authenticated=%v, got %v", tc.authenticated, got)
			}
			if got := app.Identity(); got != tc.identity {
				t.Errorf("expected identity %q, got %q", tc.identity, got)
			}
		})
	}
}

func TestUpdateAccount(t *testing.T) {
	app := NewAppContext(NewMemoryStorage(), RoleAdmin, nil)

	auth := &fakeAuth{updateMsg: "Account updated successfully"}
	msg, err := app.UpdateAccount(context.Background(), auth, model.AccountUpdate{Email: "new@oakwoods.com", CurrentPassword: "secret"})
	if err != nil || msg != "Account updated successfully" {
		t.Fatalf("expected server message, got %q %v", msg, err)
	}

	if _, err := app.UpdateAccount(context.Background(), auth, model.AccountUpdate{Email: "new@oakwoods.com"}); err == nil {
		t.Error("expected missing current password to be rejected")
	}

	auth = &fakeAuth{err: &ledgerapi.APIError{StatusCode: http.StatusBadRequest, Message: "Current password is incorrect"}}
	_, err = app.UpdateAccount(context.Background(), auth, model.AccountUpdate{Email: "new@oakwoods.com", CurrentPassword: "nope"})
	var aerr *AuthError
	if !errors.As(err, &aerr) || aerr.Message != "Current password is incorrect" {
		t.Fatalf("expected verbatim server message, got %v", err)
	}
}

func TestRoleFlag(t *testing.T) {
	app := NewAppContext(NewMemoryStorage(), RoleViewer, nil)
	if app.IsAdmin() || app.Role() != RoleViewer {
		t.Fatal("expected viewer by default")
	}
	app.SetAdmin(true)
	if !app.IsAdmin() || app.Role() != RoleAdmin {
		t.Fatal("expected admin after toggle")
	}
}
