// Package session owns the signed-in state of the application: the access
// token, its durable copy and the admin/viewer role flag.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"oak-ledger/internal/model"
	"oak-ledger/pkg/ledgerapi"
	"oak-ledger/pkg/logger"
	"oak-ledger/prometheus"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Authenticator is the remote side of login and account changes
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	UpdateAccount(ctx context.Context, upd model.AccountUpdate) (string, error)
}

// AuthError carries the server's rejection message verbatim
type AuthError struct {
	Action  string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AppContext is the process-wide session. It satisfies ledgerapi.TokenSource
// and store.Session.
type AppContext struct {
	storage Storage
	log     *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex
	token   string
	isAdmin bool
}

func NewAppContext(storage Storage, defaultRole string, log *zap.Logger) *AppContext {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppContext{
		storage: storage,
		log:     log,
		now:     time.Now,
		isAdmin: defaultRole != RoleViewer,
	}
}

// Bootstrap restores the token saved by an earlier login
func (a *AppContext) Bootstrap(ctx context.Context) error {
	token, ok, err := a.storage.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	a.mu.Lock()
	if ok {
		a.token = token
	}
	a.mu.Unlock()

	if ok && !a.Authenticated() {
		a.log.Info("Stored session token has expired")
	}
	return nil
}

func (a *AppContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Authenticated reports whether a usable token is held. Tokens that are not
// JWTs are accepted as opaque; JWTs must not be past their exp.
func (a *AppContext) Authenticated() bool {
	token := a.Token()
	if token == "" {
		return false
	}
	claims, err := parseClaims(token)
	if err != nil {
		return true
	}
	return claims.VerifyExpiresAt(a.now(), false)
}

// Identity returns the account the token was issued to, if it says
func (a *AppContext) Identity() string {
	claims, err := parseClaims(a.Token())
	if err != nil {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.Subject
}

// Login validates the form, exchanges it for a token and persists the token.
// A rejected login leaves the session as it was.
func (a *AppContext) Login(ctx context.Context, auth Authenticator, creds model.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	log := logger.Ctx(ctx, a.log)

	token, err := auth.Login(ctx, creds)
	if err != nil {
		prometheus.RecordAuthAttempt("login", false)
		log.Warn("Login rejected", zap.String("email", creds.Email), zap.Error(err))
		return &AuthError{Action: "login", Message: serverMessage(err, "Login failed"), Err: err}
	}

	if err := a.storage.Set(ctx, TokenKey, token); err != nil {
		prometheus.RecordAuthAttempt("login", false)
		return fmt.Errorf("persist session: %w", err)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	prometheus.RecordAuthAttempt("login", true)
	log.Info("Logged in", zap.String("email", creds.Email))
	return nil
}

// Logout forgets the token in memory and in storage
func (a *AppContext) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.token = ""
	a.mu.Unlock()

	if err := a.storage.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Ctx(ctx, a.log).Info("Logged out")
	return nil
}

// UpdateAccount changes the account email and optionally its password. The
// server's message is returned on success and carried in AuthError on failure.
func (a *AppContext) UpdateAccount(ctx context.Context, auth Authenticator, upd model.AccountUpdate) (string, error) {
	if err := upd.Validate(); err != nil {
		return "", err
	}

	msg, err := auth.UpdateAccount(ctx, upd)
	if err != nil {
		prometheus.RecordAuthAttempt("update_account", false)
		logger.Ctx(ctx, a.log).Warn("Account update rejected", zap.Error(err))
		return "", &AuthError{Action: "update account", Message: serverMessage(err, "Update failed"), Err: err}
	}
	prometheus.RecordAuthAttempt("update_account", true)
	if msg == "" {
		msg = "Account updated"
	}
	return msg, nil
}

func (a *AppContext) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isAdmin
}

func (a *AppContext) SetAdmin(admin bool) {
	a.mu.Lock()
	a.isAdmin = admin
	a.mu.Unlock()
}

// Role names the current role flag
func (a *AppContext) Role() string {
	if a.IsAdmin() {
		return RoleAdmin
	}
	return RoleViewer
}

func serverMessage(err error, fallback string) string {
	var apiErr *ledgerapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
